// Package dispatcher implements the server's accept loop: it reads one
// request frame at a time off the listen endpoint, validates it against
// internal/schema, and runs the matching handler (spec.md §4.6).
//
// Blocking operations (those that mutate the document store or control
// server lifecycle) run inline, on the same goroutine that reads
// requests, so they can never race each other. Non-blocking operations
// run on a freshly spawned goroutine standing in for spec.md's forked
// worker process; its result is handed back over a channel, and the
// accept loop waits for it and replies (caching search results) before
// it reads the next request, so no worker runs while a store mutation
// does.
package dispatcher

import (
	"context"
	"fmt"
	"os"

	"github.com/nmattia/docindex/internal/cache"
	"github.com/nmattia/docindex/internal/docstore"
	"github.com/nmattia/docindex/internal/logx"
	"github.com/nmattia/docindex/internal/schema"
	"github.com/nmattia/docindex/internal/transport"
	"github.com/nmattia/docindex/internal/wire"
)

// Config bundles the dispatcher's runtime dependencies that are not
// themselves objects with their own lifecycle (store, cache).
type Config struct {
	// DocRoot is the directory document paths are resolved against for scanning.
	DocRoot string

	// ListenDir is the directory holding the server and client FIFO endpoints.
	ListenDir string

	// WorkerCapMultiplier bounds scan fan-out at WorkerCapMultiplier*NumCPU.
	WorkerCapMultiplier int
}

// Dispatcher owns the document store and response cache and serializes
// all mutation through its own goroutine.
type Dispatcher struct {
	store *docstore.Store
	cache cache.Cache
	cfg   Config
	log   *logx.Logger
}

// New constructs a Dispatcher. store and c are not copied; the
// dispatcher becomes their sole owner for the lifetime of Serve.
func New(store *docstore.Store, c cache.Cache, cfg Config, log *logx.Logger) *Dispatcher {
	return &Dispatcher{store: store, cache: c, cfg: cfg, log: log}
}

type workResult struct {
	pid      int
	cacheKey string
	frame    []byte
}

// Serve runs the accept loop against server until a flush request is
// handled or ctx is cancelled, whichever comes first. A clean shutdown
// (flush handled, or ctx cancelled) returns nil.
func (d *Dispatcher) Serve(ctx context.Context, server *os.File) error {
	results := make(chan workResult, 256)

	// Closing server on cancellation unblocks a pending read, so the loop
	// sees ctx.Done without waiting for another request to arrive.
	stopClose := context.AfterFunc(ctx, func() { _ = server.Close() })
	defer stopClose()

	for {
		d.drain(results)

		select {
		case <-ctx.Done():
			return nil
		default:
		}

		frame, hdr, err := transport.ReadRequestFrame(server)
		if err != nil {
			d.log.Errorf("reading request: %v", err)
			continue
		}

		entry, ok := schema.LookupByOpcode(hdr.Opcode)
		if !ok {
			d.log.Warnf("dropping request with unknown opcode %q from pid %d", byte(hdr.Opcode), hdr.Pid)
			continue
		}

		args, err := decodeArgs(entry, frame[wire.ReqHeaderSize:])
		if err != nil {
			d.log.Warnf("dropping malformed %s request from pid %d: %v", entry.Name, hdr.Pid, err)
			continue
		}

		if entry.Opcode == wire.OpFlush {
			return d.shutdown(results, int(hdr.Pid))
		}

		if entry.Opcode == wire.OpSearch {
			if cached, ok := d.cache.Get(args[0].Str); ok {
				d.reply(int(hdr.Pid), cached)
				continue
			}
		}

		if entry.Blocking {
			d.reply(int(hdr.Pid), d.runBlocking(entry.Opcode, args))
			continue
		}

		pid := int(hdr.Pid)
		opcode := entry.Opcode
		workerArgs := args

		go func() {
			frame, cacheKey := d.runNonBlocking(opcode, workerArgs)
			results <- workResult{pid: pid, cacheKey: cacheKey, frame: frame}
		}()

		r := <-results
		if r.cacheKey != "" {
			d.cache.Put(r.cacheKey, r.frame)
		}

		d.reply(r.pid, r.frame)
	}
}

// shutdown replies to the flush request, drains any worker results that
// already arrived, persists the cache, and returns.
func (d *Dispatcher) shutdown(results chan workResult, pid int) error {
	reply, err := wire.SimpleString(wire.OpFlush, wire.StatusOK, "Server is shutting down")
	if err != nil {
		d.log.Errorf("building shutdown reply: %v", err)
	} else {
		d.reply(pid, reply)
	}

	d.drain(results)

	if err := d.cache.Cleanup(); err != nil {
		d.log.Errorf("persisting cache: %v", err)
	}

	return nil
}

func (d *Dispatcher) reply(pid int, frame []byte) {
	if err := transport.ReplyTo(d.cfg.ListenDir, pid, frame); err != nil {
		d.log.Errorf("replying to pid %d: %v", pid, err)
	}
}

// drain replies to every worker result that has already arrived,
// without blocking when none have.
func (d *Dispatcher) drain(results chan workResult) {
	for {
		select {
		case r := <-results:
			if r.cacheKey != "" {
				d.cache.Put(r.cacheKey, r.frame)
			}

			d.reply(r.pid, r.frame)
		default:
			return
		}
	}
}

func (d *Dispatcher) runBlocking(opcode wire.Opcode, args []Arg) []byte {
	var (
		parts []replyPart
		err   error
	)

	switch opcode {
	case wire.OpAdd:
		parts, err = d.handleAdd(args)
	case wire.OpDelete:
		parts, err = d.handleDelete(args)
	default:
		err = fmt.Errorf("dispatcher: unexpected blocking opcode %q", byte(opcode))
	}

	return d.buildReply(opcode, parts, err)
}

// runNonBlocking runs a non-blocking handler off the accept goroutine.
// It must not touch d.cache: only the accept goroutine (via drain) does.
func (d *Dispatcher) runNonBlocking(opcode wire.Opcode, args []Arg) (frame []byte, cacheKey string) {
	var (
		parts []replyPart
		err   error
	)

	switch opcode {
	case wire.OpCheck:
		parts, err = d.handleCheck(args)
	case wire.OpList:
		parts, err = d.handleList(args)
	case wire.OpSearch:
		parts, err = d.handleSearch(args)
		cacheKey = args[0].Str
	default:
		err = fmt.Errorf("dispatcher: unexpected non-blocking opcode %q", byte(opcode))
	}

	frame = d.buildReply(opcode, parts, err)
	if err != nil {
		cacheKey = "" // never cache an error reply
	}

	return frame, cacheKey
}
