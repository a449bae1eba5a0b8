// Package docstore implements the fixed-record, append-only document
// index described in spec.md §3 and §4.3: a document's key equals its
// row index in the store file, deletion zeroes the row and tombstones its
// key, and space is never reclaimed.
//
// Ordering is not enforced here: spec.md §4.3 requires the caller to
// serialize all store operations. The dispatcher satisfies this by
// running [Store.Add] and [Store.Delete] only in its own goroutine
// (the "blocking" commands), while read-only worker goroutines hold a
// stable view because no mutation runs concurrently with them.
package docstore

import (
	"os"

	"github.com/nmattia/docindex/internal/protoerr"
	"github.com/nmattia/docindex/pkg/fs"
)

// Store is a fixed-record append-only document file.
type Store struct {
	fsys fs.FS
	file fs.File
}

// Open opens (creating if necessary) the store file at path.
func Open(fsys fs.FS, path string) (*Store, error) {
	f, err := fsys.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return nil, wrapStorage(err)
	}

	return &Store{fsys: fsys, file: f}, nil
}

// Close closes the underlying file.
func (s *Store) Close() error {
	return s.file.Close()
}

// Total returns the number of slots in the store, including tombstoned
// ones: file length / [RecordSize].
func (s *Store) Total() (int, error) {
	info, err := s.file.Stat()
	if err != nil {
		return 0, wrapStorage(err)
	}

	return int(info.Size() / RecordSize), nil
}

// Add appends doc to the end of the store and returns its assigned key.
// The key is computed from the write offset, so keys are dense and
// monotonically increasing from 0.
func (s *Store) Add(doc Document) (int32, error) {
	info, err := s.file.Stat()
	if err != nil {
		return 0, wrapStorage(err)
	}

	offset := info.Size()
	key := int32(offset / RecordSize)

	doc.Key = key

	buf, err := encodeRecord(doc)
	if err != nil {
		return 0, err
	}

	n, err := s.file.WriteAt(buf, offset)
	if err != nil {
		return 0, wrapStorage(err)
	}

	if n != len(buf) {
		return 0, errShortWrite
	}

	return key, nil
}

// Get reads the record at key. It returns [protoerr.ErrNotFound] if key
// is out of range or the row is tombstoned.
func (s *Store) Get(key int32) (Document, error) {
	if key < 0 {
		return Document{}, errTombstoned
	}

	offset := int64(key) * RecordSize

	info, err := s.file.Stat()
	if err != nil {
		return Document{}, wrapStorage(err)
	}

	if offset+RecordSize > info.Size() {
		return Document{}, errKeyMismatch
	}

	buf := make([]byte, RecordSize)
	if _, err := s.file.ReadAt(buf, offset); err != nil {
		return Document{}, wrapStorage(err)
	}

	doc, err := decodeRecord(buf)
	if err != nil {
		return Document{}, err
	}

	if doc.Key != key {
		return Document{}, errKeyMismatch
	}

	return doc, nil
}

// Delete tombstones the row at key: it must currently be live. The slot
// is zeroed and its key set to [TombstoneKey]; space is not reclaimed.
func (s *Store) Delete(key int32) error {
	_, err := s.Get(key) // require live
	if err != nil {
		return err
	}

	offset := int64(key) * RecordSize

	buf := zeroedTombstone()
	if _, err := s.file.WriteAt(buf, offset); err != nil {
		return wrapStorage(err)
	}

	return nil
}

func wrapStorage(err error) error {
	if err == nil {
		return nil
	}

	return &storageError{err: err}
}

type storageError struct{ err error }

func (e *storageError) Error() string { return "docstore: " + e.err.Error() }
func (e *storageError) Unwrap() []error {
	return []error{e.err, protoerr.ErrStorage}
}
