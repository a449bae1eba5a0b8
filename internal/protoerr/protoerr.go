// Package protoerr declares the sentinel error kinds shared by the wire
// codec, transport, document store, and dispatcher.
//
// Callers check these with [errors.Is]; layers above wrap them with
// fmt.Errorf("...: %w", err) to add context without losing the sentinel.
package protoerr

import "errors"

// Error kinds from spec.md §7.
var (
	// ErrCapacityExceeded means a builder or frame could not accommodate
	// the requested bytes within the payload limit.
	ErrCapacityExceeded = errors.New("protoerr: capacity exceeded")

	// ErrValueTooLarge means a TLV value's length exceeds the wire limit (65535).
	ErrValueTooLarge = errors.New("protoerr: value too large")

	// ErrCorruptFrame means a cursor encountered a TLV header that would
	// overrun the payload, or a frame header failed to parse.
	ErrCorruptFrame = errors.New("protoerr: corrupt frame")

	// ErrTypeMismatch means a decoded TLV's type did not match the schema's
	// expected argument type.
	ErrTypeMismatch = errors.New("protoerr: type mismatch")

	// ErrArityError means a request had fewer or more TLVs than the
	// schema's [argc_min, argc_max] allows.
	ErrArityError = errors.New("protoerr: arity error")

	// ErrNotFound means a lookup (document key, cache key) found nothing.
	ErrNotFound = errors.New("protoerr: not found")

	// ErrStorage means an I/O failure in the document store.
	ErrStorage = errors.New("protoerr: storage error")

	// ErrTransport means an I/O failure in the IPC transport.
	ErrTransport = errors.New("protoerr: transport error")

	// ErrState means an operation was invoked in a disallowed state
	// (e.g. double-initializing the cache).
	ErrState = errors.New("protoerr: state error")

	// ErrShutdown is the distinguished non-error shutdown kind. The
	// dispatcher does not return it: it recognises the flush opcode
	// directly and exits its serve loop cleanly.
	ErrShutdown = errors.New("protoerr: shutdown")
)
