package dispatcher

import (
	"github.com/nmattia/docindex/internal/protoerr"
	"github.com/nmattia/docindex/internal/schema"
	"github.com/nmattia/docindex/internal/wire"
)

// Arg is one decoded, type-checked request argument.
type Arg struct {
	IsU32 bool
	U32   uint32
	Str   string
}

// decodeArgs walks payload's TLV sequence and checks it against entry's
// argument-type vector and arity bounds. A malformed request (corrupt
// TLV stream, wrong arity, or a TLV type that doesn't match the schema)
// is reported as an error; the caller drops the request rather than
// replying to it (spec.md §4.6 step 2).
func decodeArgs(entry schema.Entry, payload []byte) ([]Arg, error) {
	steps, ok := wire.NewCursor(payload).All()
	if !ok {
		return nil, protoerr.ErrCorruptFrame
	}

	n := len(steps)
	if n < entry.MinArgs || n > entry.MaxArgs || n > len(entry.Types) {
		return nil, protoerr.ErrArityError
	}

	args := make([]Arg, n)

	for i, s := range steps {
		switch entry.Types[i] {
		case schema.ArgU32:
			if s.Type != wire.TypeU32 {
				return nil, protoerr.ErrTypeMismatch
			}

			v, err := wire.DecodeU32(s.Value)
			if err != nil {
				return nil, err
			}

			args[i] = Arg{IsU32: true, U32: v}

		case schema.ArgStr:
			if s.Type != wire.TypeStr {
				return nil, protoerr.ErrTypeMismatch
			}

			args[i] = Arg{Str: wire.DecodeStr(s.Value)}
		}
	}

	return args, nil
}
