package wire

import "encoding/binary"

// EncodeU32 parses s as a decimal, non-negative integer and emits it as
// 4 little-endian bytes. It rejects an empty string, trailing non-digit
// characters, and values greater than 2^32-1.
func EncodeU32(s string) ([]byte, error) {
	if s == "" {
		return nil, errU32Empty
	}

	var v uint64

	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return nil, errU32NonDigit
		}

		v = v*10 + uint64(c-'0')
		if v > 0xFFFFFFFF {
			return nil, errU32Overflow
		}
	}

	out := make([]byte, 4)
	binary.LittleEndian.PutUint32(out, uint32(v))

	return out, nil
}

// DecodeU32 reads a little-endian uint32 from b. b must be exactly 4 bytes.
func DecodeU32(b []byte) (uint32, error) {
	if len(b) != 4 {
		return 0, errU32BadLen
	}

	return binary.LittleEndian.Uint32(b), nil
}

// EncodeStr validates s can be carried as a string TLV value and returns
// its raw bytes. It rejects strings longer than 65535 bytes.
func EncodeStr(s string) ([]byte, error) {
	if len(s) > 0xFFFF {
		return nil, errStrTooLarge
	}

	return []byte(s), nil
}

// DecodeStr returns b as a string. The wire format carries no null
// terminator; b's length is authoritative.
func DecodeStr(b []byte) string {
	return string(b)
}
