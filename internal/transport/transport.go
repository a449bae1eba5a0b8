// Package transport implements the local, connectionless IPC link
// described in spec.md §4.2: named FIFOs in a well-known directory, one
// per client, addressed by the client's process id.
//
// Per spec.md §9's "Connectionless IPC" redesign note, the transport is
// expressed behind a narrow seam (plain *os.File handles plus the
// free functions below) so a future net.UnixConn-based implementation
// can replace the FIFO plumbing without touching the dispatcher; see
// DESIGN.md for why only the FIFO implementation is built here.
package transport

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"syscall"

	"golang.org/x/sys/unix"

	"github.com/nmattia/docindex/internal/protoerr"
)

const (
	// ListenName is the server's well-known FIFO file name.
	ListenName = "server.fifo"

	clientPrefix = "client_"
	clientSuffix = ".fifo"
)

// ClientPath derives a client's private reply endpoint path from its pid.
func ClientPath(dir string, pid int) string {
	return filepath.Join(dir, fmt.Sprintf("%s%d%s", clientPrefix, pid, clientSuffix))
}

// ListenPath returns the server's well-known listen endpoint path.
func ListenPath(dir string) string {
	return filepath.Join(dir, ListenName)
}

func mkfifo(path string) error {
	err := unix.Mkfifo(path, 0o600)
	if err != nil && err != unix.EEXIST {
		return wrapTransport(err)
	}

	return nil
}

// OpenServer creates the listen endpoint and opens it for reading.
//
// The endpoint is opened O_RDWR rather than O_RDONLY: on Linux a FIFO
// opened O_RDWR never blocks and is simultaneously a reader and a
// writer, which has the same effect spec.md §4.2 asks for by holding a
// separate writer fd open — the read end never observes EOF just
// because no client is currently connected.
func OpenServer(dir string) (*os.File, error) {
	path := ListenPath(dir)

	if err := mkfifo(path); err != nil {
		return nil, err
	}

	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, wrapTransport(err)
	}

	return f, nil
}

// CloseServer closes f and removes the listen endpoint.
func CloseServer(dir string, f *os.File) error {
	closeErr := f.Close()
	removeErr := os.Remove(ListenPath(dir))

	if closeErr != nil {
		return wrapTransport(closeErr)
	}

	if removeErr != nil && !os.IsNotExist(removeErr) {
		return wrapTransport(removeErr)
	}

	return nil
}

// OpenClient creates the client's private reply endpoint, probes that the
// server is accepting connections, then opens the server endpoint for
// writing and its own endpoint for reading. The own endpoint is opened
// O_RDWR for the same reason as in [OpenServer]: an O_RDONLY open of a
// FIFO blocks until a writer appears, and the server only opens it to
// reply after the request has been sent.
func OpenClient(dir string, pid int) (toServer *os.File, fromServer *os.File, err error) {
	listenPath := ListenPath(dir)
	ownPath := ClientPath(dir, pid)

	if err := mkfifo(ownPath); err != nil {
		return nil, nil, err
	}

	if err := probeServerAccepting(listenPath); err != nil {
		_ = os.Remove(ownPath)
		return nil, nil, err
	}

	toServer, err = os.OpenFile(listenPath, os.O_WRONLY, 0)
	if err != nil {
		_ = os.Remove(ownPath)
		return nil, nil, wrapTransport(err)
	}

	fromServer, err = os.OpenFile(ownPath, os.O_RDWR, 0)
	if err != nil {
		_ = toServer.Close()
		_ = os.Remove(ownPath)

		return nil, nil, wrapTransport(err)
	}

	return toServer, fromServer, nil
}

// CloseClient closes the client's file handles and removes its endpoint.
func CloseClient(dir string, pid int, toServer, fromServer *os.File) error {
	_ = toServer.Close()
	_ = fromServer.Close()

	if err := os.Remove(ClientPath(dir, pid)); err != nil && !os.IsNotExist(err) {
		return wrapTransport(err)
	}

	return nil
}

func probeServerAccepting(listenPath string) error {
	fd, err := unix.Open(listenPath, unix.O_WRONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return wrapTransport(fmt.Errorf("server not accepting at %s: %w", listenPath, err))
	}

	_ = unix.Close(fd)

	return nil
}

// ReadFull repeats short reads until exactly len(buf) bytes are filled.
// EINTR retries; EOF or any other error returns [protoerr.ErrTransport].
func ReadFull(r io.Reader, buf []byte) error {
	total := 0

	for total < len(buf) {
		n, err := r.Read(buf[total:])
		total += n

		if err != nil {
			if err == syscall.EINTR {
				continue
			}

			return wrapTransport(err)
		}
	}

	return nil
}

// WriteFull repeats short writes until buf is fully drained. EINTR and
// EAGAIN/EWOULDBLOCK retry (the reader is expected to be draining).
func WriteFull(w io.Writer, buf []byte) error {
	total := 0

	for total < len(buf) {
		n, err := w.Write(buf[total:])
		total += n

		if err != nil {
			if err == syscall.EINTR || err == syscall.EAGAIN {
				continue
			}

			return wrapTransport(err)
		}
	}

	return nil
}

// ReplyTo opens the client's reply endpoint, writes frame in full, and
// closes it. Errors are returned, never panicked: the dispatcher never
// unwinds on a failed reply (spec.md §4.2 "Reply to pid").
func ReplyTo(dir string, pid int, frame []byte) error {
	path := ClientPath(dir, pid)

	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return wrapTransport(err)
	}
	defer f.Close()

	return WriteFull(f, frame)
}

func wrapTransport(err error) error {
	return fmt.Errorf("transport: %w: %w", err, protoerr.ErrTransport)
}
