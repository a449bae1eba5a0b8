// Package schema defines the table of recognised operations — flag,
// opcode, argument-type vector, arity, and blocking bit — shared by the
// client (which uses it to encode a request) and the server (which uses
// it to validate one).
//
// The table stays a flat lookup, per spec.md §4.7: a tagged-enum-plus-
// dispatch shape (suggested by spec.md §9's REDESIGN FLAGS for the
// *handler* side) lives in internal/dispatcher instead, which owns the
// actual per-opcode behaviour.
package schema

import "github.com/nmattia/docindex/internal/wire"

// ArgType is the type of one positional command argument.
type ArgType int

const (
	ArgU32 ArgType = iota
	ArgStr
)

// Entry describes one recognised operation (spec.md §3, §4.7).
type Entry struct {
	// Flag is the client CLI flag, e.g. "-a".
	Flag string

	// Opcode is the protocol operation code.
	Opcode wire.Opcode

	// Types is the argument-type vector, indexed positionally.
	Types []ArgType

	// MinArgs and MaxArgs bound the number of TLVs/CLI args accepted.
	MinArgs, MaxArgs int

	// Blocking is true when the operation must run in the dispatcher's
	// own goroutine (it mutates shared state or controls server
	// lifecycle); false means it is safe to run in a worker goroutine.
	Blocking bool

	// Name is a short human label used in help text and logs.
	Name string
}

// Table is the canonical command table from spec.md §3.
var Table = []Entry{
	{
		Flag: "-a", Opcode: wire.OpAdd, Name: "add",
		Types: []ArgType{ArgStr, ArgStr, ArgU32, ArgStr}, MinArgs: 4, MaxArgs: 4,
		Blocking: true,
	},
	{
		Flag: "-c", Opcode: wire.OpCheck, Name: "check",
		Types: []ArgType{ArgU32}, MinArgs: 1, MaxArgs: 1,
		Blocking: false,
	},
	{
		Flag: "-d", Opcode: wire.OpDelete, Name: "delete",
		Types: []ArgType{ArgU32}, MinArgs: 1, MaxArgs: 1,
		Blocking: true,
	},
	{
		Flag: "-l", Opcode: wire.OpList, Name: "count-lines",
		Types: []ArgType{ArgU32, ArgStr}, MinArgs: 2, MaxArgs: 2,
		Blocking: false,
	},
	{
		Flag: "-s", Opcode: wire.OpSearch, Name: "search",
		Types: []ArgType{ArgStr, ArgU32}, MinArgs: 1, MaxArgs: 2,
		Blocking: false,
	},
	{
		Flag: "-f", Opcode: wire.OpFlush, Name: "flush",
		Types: nil, MinArgs: 0, MaxArgs: 0,
		Blocking: true,
	},
}

// LookupByOpcode finds the table entry for op.
func LookupByOpcode(op wire.Opcode) (Entry, bool) {
	for _, e := range Table {
		if e.Opcode == op {
			return e, true
		}
	}

	return Entry{}, false
}

// LookupByFlag finds the table entry for a client CLI flag such as "-s".
func LookupByFlag(flag string) (Entry, bool) {
	for _, e := range Table {
		if e.Flag == flag {
			return e, true
		}
	}

	return Entry{}, false
}

// ParseCLI matches args[0] against the table's flags and checks that the
// remaining argument count falls within [MinArgs, MaxArgs]. It mirrors
// the original command_parse(argc, argv) contract (spec.md §4.7), taking
// the flag-plus-arguments slice directly rather than a raw argv including
// argv[0].
func ParseCLI(args []string) (Entry, bool) {
	if len(args) == 0 {
		return Entry{}, false
	}

	e, ok := LookupByFlag(args[0])
	if !ok {
		return Entry{}, false
	}

	n := len(args) - 1
	if n < e.MinArgs || n > e.MaxArgs {
		return Entry{}, false
	}

	return e, true
}
