package dispatcher

import (
	"encoding/binary"

	"github.com/nmattia/docindex/internal/wire"
)

// replyPart is one TLV of a handler's reply, before it is framed.
type replyPart struct {
	Type  byte
	Value []byte
}

func strPart(s string) replyPart {
	return replyPart{Type: wire.TypeStr, Value: []byte(s)}
}

func u32Part(v uint32) replyPart {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, v)

	return replyPart{Type: wire.TypeU32, Value: buf}
}

// buildReply frames parts as a response, or a minimal {opcode, "ERR"}
// reply if err is non-nil. A request that merely fails schema validation
// never reaches here — it is dropped, not replied to (spec.md §4.6 step 2).
func (d *Dispatcher) buildReply(opcode wire.Opcode, parts []replyPart, err error) []byte {
	if err != nil {
		d.log.Errorf("%s request failed: %v", opcode, err)

		frame, buildErr := wire.SimpleString(opcode, wire.StatusErr, "ERR")
		if buildErr != nil {
			return emptyErrorFrame(opcode)
		}

		return frame
	}

	b := wire.NewRespBuilder(opcode, wire.StatusOK)

	for _, p := range parts {
		if err := b.AddTLV(p.Type, p.Value); err != nil {
			d.log.Errorf("%s reply too large to encode: %v", opcode, err)
			return emptyErrorFrame(opcode)
		}
	}

	frame, buildErr := b.Finish()
	if buildErr != nil {
		d.log.Errorf("%s reply too large to encode: %v", opcode, buildErr)
		return emptyErrorFrame(opcode)
	}

	return frame
}

func emptyErrorFrame(opcode wire.Opcode) []byte {
	b := wire.NewRespBuilder(opcode, wire.StatusErr)
	frame, _ := b.Finish()

	return frame
}
