package wire

import "encoding/binary"

// ReqBuilder assembles a request frame one TLV at a time.
//
// Zero value is not usable; construct with [NewReqBuilder]. Not safe for
// concurrent use.
type ReqBuilder struct {
	frame [MaxFrameSize]byte
	used  int
}

// NewReqBuilder initializes a builder for opcode, stamping the opcode and
// sender pid into the header and exposing a write window over the payload.
func NewReqBuilder(opcode Opcode, pid uint32) *ReqBuilder {
	b := &ReqBuilder{}
	b.frame[2] = byte(opcode)
	binary.LittleEndian.PutUint32(b.frame[3:7], pid)

	return b
}

// AddTLV appends a {type, len, value} triple to the payload.
//
// Returns [protoerr.ErrValueTooLarge] if len(value) > 65535, and
// [protoerr.ErrCapacityExceeded] if the TLV would not fit in the
// remaining payload capacity.
func (b *ReqBuilder) AddTLV(typ byte, value []byte) error {
	if len(value) > 0xFFFF {
		return errValueTooLarge
	}

	need := TLVHeaderSize + len(value)
	capacity := len(b.frame) - ReqHeaderSize

	if b.used+need > capacity {
		return errCapacity
	}

	off := ReqHeaderSize + b.used
	b.frame[off] = typ
	binary.LittleEndian.PutUint16(b.frame[off+1:off+3], uint16(len(value)))
	copy(b.frame[off+3:off+3+len(value)], value)
	b.used += need

	return nil
}

// Finish stamps the header's total-length field and returns the frame
// ready for I/O. The returned slice aliases the builder's internal buffer
// and must not be retained across another call into the builder.
func (b *ReqBuilder) Finish() ([]byte, error) {
	total := ReqHeaderSize + b.used
	if total > MaxFrameSize {
		return nil, errCapacity
	}

	binary.LittleEndian.PutUint16(b.frame[0:2], uint16(total))

	return b.frame[:total], nil
}

// RespBuilder assembles a response frame one TLV at a time.
//
// Zero value is not usable; construct with [NewRespBuilder]. Not safe for
// concurrent use.
type RespBuilder struct {
	frame [MaxFrameSize]byte
	used  int
}

// NewRespBuilder initializes a builder for opcode and status.
func NewRespBuilder(opcode Opcode, status uint8) *RespBuilder {
	b := &RespBuilder{}
	b.frame[2] = byte(opcode)
	b.frame[3] = status

	return b
}

// AddTLV appends a {type, len, value} triple to the payload. See
// [ReqBuilder.AddTLV] for error semantics.
func (b *RespBuilder) AddTLV(typ byte, value []byte) error {
	if len(value) > 0xFFFF {
		return errValueTooLarge
	}

	need := TLVHeaderSize + len(value)
	capacity := len(b.frame) - RespHeaderSize

	if b.used+need > capacity {
		return errCapacity
	}

	off := RespHeaderSize + b.used
	b.frame[off] = typ
	binary.LittleEndian.PutUint16(b.frame[off+1:off+3], uint16(len(value)))
	copy(b.frame[off+3:off+3+len(value)], value)
	b.used += need

	return nil
}

// Finish stamps the header's total-length field and returns the frame
// ready for I/O. See [ReqBuilder.Finish] for aliasing caveats.
func (b *RespBuilder) Finish() ([]byte, error) {
	total := RespHeaderSize + b.used
	if total > MaxFrameSize {
		return nil, errCapacity
	}

	binary.LittleEndian.PutUint16(b.frame[0:2], uint16(total))

	return b.frame[:total], nil
}

// SimpleString builds a single-TLV response frame carrying one string
// value, the common shape for handler replies (spec.md §4.6).
func SimpleString(opcode Opcode, status uint8, s string) ([]byte, error) {
	b := NewRespBuilder(opcode, status)

	if err := b.AddTLV(TypeStr, []byte(s)); err != nil {
		return nil, err
	}

	return b.Finish()
}
