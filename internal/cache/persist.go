package cache

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"os"

	"github.com/natefinch/atomic"

	"github.com/nmattia/docindex/internal/wire"
)

// Persisted record bounds (spec.md §4.5, §6): klen in (0, 255], rlen in
// [0, wire.MaxFrameSize].
const maxKeyLen = 255

// load reads the persistence file (if any) and inserts up to c.capacity
// entries, preserving file order at the front (spec.md §4.5 "Init").
// A missing file is not an error; a malformed record stops loading
// early without failing.
func (c *LRU) load() error {
	data, err := os.ReadFile(c.persistPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}

		return err
	}

	r := bytes.NewReader(data)

	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil // truncated header: treat as empty, matches "malformed stops loading"
	}

	for i := uint32(0); i < count && i < uint32(c.capacity); i++ {
		key, frame, ok := readRecord(r)
		if !ok {
			break
		}

		el := c.order.PushBack(&entry{key: key, frame: frame})
		c.index[key] = el
	}

	return nil
}

func readRecord(r *bytes.Reader) (key string, frame []byte, ok bool) {
	var klen uint16
	if err := binary.Read(r, binary.LittleEndian, &klen); err != nil {
		return "", nil, false
	}

	if klen == 0 || klen > maxKeyLen {
		return "", nil, false
	}

	keyBuf := make([]byte, klen)
	if _, err := io.ReadFull(r, keyBuf); err != nil {
		return "", nil, false
	}

	var rlen uint16
	if err := binary.Read(r, binary.LittleEndian, &rlen); err != nil {
		return "", nil, false
	}

	if int(rlen) > wire.MaxFrameSize {
		return "", nil, false
	}

	frameBuf := make([]byte, rlen)
	if _, err := io.ReadFull(r, frameBuf); err != nil {
		return "", nil, false
	}

	return string(keyBuf), frameBuf, true
}

// save writes count followed by every entry in MRU-first order, then
// atomically replaces the persistence file (spec.md §4.5 "Cleanup").
func (c *LRU) save() error {
	var buf bytes.Buffer

	_ = binary.Write(&buf, binary.LittleEndian, uint32(c.order.Len()))

	for el := c.order.Front(); el != nil; el = el.Next() {
		e := el.Value.(*entry)

		_ = binary.Write(&buf, binary.LittleEndian, uint16(len(e.key)))
		buf.WriteString(e.key)
		_ = binary.Write(&buf, binary.LittleEndian, uint16(len(e.frame)))
		buf.Write(e.frame)
	}

	return atomic.WriteFile(c.persistPath, bytes.NewReader(buf.Bytes()))
}
