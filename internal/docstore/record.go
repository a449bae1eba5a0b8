package docstore

import "encoding/binary"

// Field widths for the fixed-size document record (spec.md §3).
const (
	titleWidth   = 200
	authorsWidth = 200
	pathWidth    = 64

	// RecordSize is the on-disk byte size of one document row:
	// key(4) + title(200) + authors(200) + path(64) + year(4).
	RecordSize = 4 + titleWidth + authorsWidth + pathWidth + 4
)

// TombstoneKey is the sentinel stored in a deleted row's key field.
const TombstoneKey int32 = -1

// Document is one row of the document store.
type Document struct {
	Key     int32
	Title   string
	Authors string
	Path    string
	Year    uint32
}

// Live reports whether d represents a live (non-tombstoned) row.
func (d Document) Live() bool {
	return d.Key != TombstoneKey
}

func encodeRecord(d Document) ([]byte, error) {
	if len(d.Title) > titleWidth {
		return nil, errFieldTooLong
	}

	if len(d.Authors) > authorsWidth {
		return nil, errFieldTooLong
	}

	if len(d.Path) > pathWidth {
		return nil, errFieldTooLong
	}

	buf := make([]byte, RecordSize)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(d.Key))
	copy(buf[4:4+titleWidth], d.Title)
	copy(buf[4+titleWidth:4+titleWidth+authorsWidth], d.Authors)
	copy(buf[4+titleWidth+authorsWidth:4+titleWidth+authorsWidth+pathWidth], d.Path)
	binary.LittleEndian.PutUint32(buf[RecordSize-4:RecordSize], d.Year)

	return buf, nil
}

func decodeRecord(buf []byte) (Document, error) {
	if len(buf) != RecordSize {
		return Document{}, errShortRecord
	}

	title := fixedField(buf[4 : 4+titleWidth])
	authors := fixedField(buf[4+titleWidth : 4+titleWidth+authorsWidth])
	path := fixedField(buf[4+titleWidth+authorsWidth : 4+titleWidth+authorsWidth+pathWidth])

	return Document{
		Key:     int32(binary.LittleEndian.Uint32(buf[0:4])),
		Title:   title,
		Authors: authors,
		Path:    path,
		Year:    binary.LittleEndian.Uint32(buf[RecordSize-4 : RecordSize]),
	}, nil
}

// fixedField trims the trailing NUL padding from a fixed-width text field.
func fixedField(b []byte) string {
	n := len(b)
	for n > 0 && b[n-1] == 0 {
		n--
	}

	return string(b[:n])
}

func zeroedTombstone() []byte {
	buf := make([]byte, RecordSize)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(TombstoneKey))

	return buf
}
