// Package wire implements the binary TLV request/response protocol shared
// by the docindex client and server: frame headers, a payload builder, a
// decode cursor, and scalar argument codecs.
//
// Wire format (spec.md §3, §4.1): little-endian, packed, no padding.
// A request frame is a 7-byte header (uint16 length, uint8 opcode,
// uint32 pid) followed by back-to-back TLVs. A response frame is a 4-byte
// header (uint16 length, uint8 opcode, uint8 status) followed by the same
// TLV encoding. Maximum frame size is 65535 bytes.
package wire

import "encoding/binary"

// Opcode selects the server operation a request performs.
type Opcode uint8

// The six recognised opcodes (spec.md §3).
const (
	OpAdd    Opcode = 'A'
	OpCheck  Opcode = 'C'
	OpDelete Opcode = 'D'
	OpList   Opcode = 'L'
	OpSearch Opcode = 'S'
	OpFlush  Opcode = 'F'
)

func (op Opcode) String() string {
	switch op {
	case OpAdd:
		return "A"
	case OpCheck:
		return "C"
	case OpDelete:
		return "D"
	case OpList:
		return "L"
	case OpSearch:
		return "S"
	case OpFlush:
		return "F"
	default:
		return "?"
	}
}

// TLV value type tags.
const (
	TypeU32 byte = 0 // 32-bit unsigned integer; wire length must be exactly 4
	TypeStr byte = 1 // UTF-8 bytes, not null-terminated; length is authoritative
)

// Status codes for the response header.
const (
	StatusOK  uint8 = 0
	StatusErr uint8 = 1
)

const (
	// ReqHeaderSize is the byte size of a request header: len(2) + opcode(1) + pid(4).
	ReqHeaderSize = 7

	// RespHeaderSize is the byte size of a response header: len(2) + opcode(1) + status(1).
	RespHeaderSize = 4

	// TLVHeaderSize is the byte size of a TLV's type+length prefix.
	TLVHeaderSize = 3

	// MaxFrameSize is the largest frame (header + payload) the wire format allows.
	MaxFrameSize = 65535
)

// ReqHeader is the decoded form of a request frame's fixed header.
type ReqHeader struct {
	Len    uint16
	Opcode Opcode
	Pid    uint32
}

// DecodeReqHeader parses the first [ReqHeaderSize] bytes of buf.
func DecodeReqHeader(buf []byte) (ReqHeader, error) {
	if len(buf) < ReqHeaderSize {
		return ReqHeader{}, errCorruptHeader
	}

	return ReqHeader{
		Len:    binary.LittleEndian.Uint16(buf[0:2]),
		Opcode: Opcode(buf[2]),
		Pid:    binary.LittleEndian.Uint32(buf[3:7]),
	}, nil
}

// RespHeader is the decoded form of a response frame's fixed header.
type RespHeader struct {
	Len    uint16
	Opcode Opcode
	Status uint8
}

// DecodeRespHeader parses the first [RespHeaderSize] bytes of buf.
func DecodeRespHeader(buf []byte) (RespHeader, error) {
	if len(buf) < RespHeaderSize {
		return RespHeader{}, errCorruptHeader
	}

	return RespHeader{
		Len:    binary.LittleEndian.Uint16(buf[0:2]),
		Opcode: Opcode(buf[2]),
		Status: buf[3],
	}, nil
}
