// Command docindex is the one-shot and interactive client for docindexd
// (spec.md §4.7, §6): it encodes a command-line invocation into a
// request frame, sends it over the local FIFO transport, and prints the
// decoded reply.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/peterh/liner"
	flag "github.com/spf13/pflag"

	"github.com/nmattia/docindex/internal/schema"
	"github.com/nmattia/docindex/internal/transport"
	"github.com/nmattia/docindex/internal/wire"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags := flag.NewFlagSet("docindex", flag.ContinueOnError)
	listenDir := flags.String("listen-dir", "/tmp", "FIFO listen directory shared with docindexd")
	interactive := flags.BoolP("interactive", "i", false, "start an interactive session")

	// Command flags such as "-a" belong to internal/schema, not to this
	// flag set: only the arguments before the first one are parsed here.
	split := len(args)
	for i, a := range args {
		if _, ok := schema.LookupByFlag(a); ok {
			split = i
			break
		}
	}

	if err := flags.Parse(args[:split]); err != nil {
		if err == flag.ErrHelp {
			return 0
		}

		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	if *interactive {
		return runInteractive(*listenDir)
	}

	rest := append(flags.Args(), args[split:]...)

	entry, ok := schema.ParseCLI(rest)
	if !ok {
		fmt.Fprintln(os.Stderr, "docindex: unrecognised command or wrong argument count")
		printUsage()
		return 2
	}

	reply, err := sendCommand(*listenDir, entry, rest[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "docindex:", err)
		return 1
	}

	fmt.Println(reply)

	return 0
}

func runInteractive(listenDir string) int {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)

	for {
		input, err := line.Prompt("docindex> ")
		if err != nil {
			break // EOF or Ctrl-C
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		line.AppendHistory(input)

		fields := strings.Fields(input)

		entry, ok := schema.ParseCLI(fields)
		if !ok {
			fmt.Fprintln(os.Stderr, "docindex: unrecognised command or wrong argument count")
			continue
		}

		reply, err := sendCommand(listenDir, entry, fields[1:])
		if err != nil {
			fmt.Fprintln(os.Stderr, "docindex:", err)
			continue
		}

		fmt.Println(reply)

		if entry.Opcode == wire.OpFlush {
			return 0
		}
	}

	return 0
}

// sendCommand encodes entry with the given string arguments, sends the
// request to docindexd, and returns the decoded reply string.
func sendCommand(listenDir string, entry schema.Entry, args []string) (string, error) {
	pid := os.Getpid()

	req, err := encodeRequest(entry, pid, args)
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	toServer, fromServer, err := transport.OpenClient(listenDir, pid)
	if err != nil {
		return "", fmt.Errorf("connecting to server: %w", err)
	}
	defer transport.CloseClient(listenDir, pid, toServer, fromServer)

	if err := transport.WriteFull(toServer, req); err != nil {
		return "", fmt.Errorf("sending request: %w", err)
	}

	frame, _, err := transport.ReadResponseFrame(fromServer)
	if err != nil {
		return "", fmt.Errorf("reading reply: %w", err)
	}

	return decodeReply(frame)
}

func encodeRequest(entry schema.Entry, pid int, args []string) ([]byte, error) {
	b := wire.NewReqBuilder(entry.Opcode, uint32(pid))

	for i, want := range entry.Types {
		if i >= len(args) {
			break
		}

		switch want {
		case schema.ArgU32:
			v, err := wire.EncodeU32(args[i])
			if err != nil {
				return nil, err
			}

			if err := b.AddTLV(wire.TypeU32, v); err != nil {
				return nil, err
			}

		case schema.ArgStr:
			v, err := wire.EncodeStr(args[i])
			if err != nil {
				return nil, err
			}

			if err := b.AddTLV(wire.TypeStr, v); err != nil {
				return nil, err
			}
		}
	}

	return b.Finish()
}

func decodeReply(frame []byte) (string, error) {
	steps, ok := wire.NewCursor(frame[wire.RespHeaderSize:]).All()
	if !ok || len(steps) == 0 {
		return "", fmt.Errorf("malformed reply frame")
	}

	lines := make([]string, 0, len(steps))

	for _, s := range steps {
		if s.Type == wire.TypeU32 {
			v, err := wire.DecodeU32(s.Value)
			if err != nil {
				return "", err
			}

			lines = append(lines, fmt.Sprint(v))

			continue
		}

		lines = append(lines, wire.DecodeStr(s.Value))
	}

	return strings.Join(lines, "\n"), nil
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "commands:")

	for _, e := range schema.Table {
		fmt.Fprintf(os.Stderr, "  %s (%s)\n", e.Flag, e.Name)
	}
}
