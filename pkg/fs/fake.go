package fs

import (
	"io"
	"os"
	"sync"
	"time"
)

// Fake is an in-memory [FS] for unit tests that should not touch the real
// filesystem. It is safe for concurrent use.
type Fake struct {
	mu    sync.Mutex
	files map[string]*fakeFile
}

// NewFake returns an empty in-memory filesystem.
func NewFake() *Fake {
	return &Fake{files: make(map[string]*fakeFile)}
}

// OpenFile implements [FS]. Only O_CREATE is honored; the access-mode
// flags (O_RDONLY/O_WRONLY/O_RDWR), O_EXCL, O_APPEND and O_TRUNC are
// ignored, and every returned handle can both read and write.
func (f *Fake) OpenFile(path string, flag int, _ os.FileMode) (File, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	fi, ok := f.files[path]
	if !ok {
		if flag&os.O_CREATE == 0 {
			return nil, os.ErrNotExist
		}

		fi = &fakeFile{name: path}
		f.files[path] = fi
	}

	return &fakeHandle{f: fi}, nil
}

// Stat implements [FS].
func (f *Fake) Stat(path string) (os.FileInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	fi, ok := f.files[path]
	if !ok {
		return nil, os.ErrNotExist
	}

	fi.mu.Lock()
	defer fi.mu.Unlock()

	return fakeInfo{name: path, size: int64(len(fi.data))}, nil
}

// Remove implements [FS].
func (f *Fake) Remove(path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.files, path)

	return nil
}

// MkdirAll implements [FS] as a no-op: the fake has no directory tree.
func (f *Fake) MkdirAll(string, os.FileMode) error {
	return nil
}

var _ FS = (*Fake)(nil)

type fakeFile struct {
	mu   sync.Mutex
	name string
	data []byte
}

type fakeHandle struct {
	f   *fakeFile
	pos int64
}

func (h *fakeHandle) ReadAt(p []byte, off int64) (int, error) {
	h.f.mu.Lock()
	defer h.f.mu.Unlock()

	if off >= int64(len(h.f.data)) {
		return 0, io.EOF
	}

	n := copy(p, h.f.data[off:])
	if n < len(p) {
		return n, io.EOF
	}

	return n, nil
}

func (h *fakeHandle) WriteAt(p []byte, off int64) (int, error) {
	h.f.mu.Lock()
	defer h.f.mu.Unlock()

	end := off + int64(len(p))
	if end > int64(len(h.f.data)) {
		grown := make([]byte, end)
		copy(grown, h.f.data)
		h.f.data = grown
	}

	copy(h.f.data[off:end], p)

	return len(p), nil
}

func (h *fakeHandle) Read(p []byte) (int, error) {
	n, err := h.ReadAt(p, h.pos)
	h.pos += int64(n)

	return n, err
}

func (h *fakeHandle) Write(p []byte) (int, error) {
	n, err := h.WriteAt(p, h.pos)
	h.pos += int64(n)

	return n, err
}

func (h *fakeHandle) Seek(offset int64, whence int) (int64, error) {
	h.f.mu.Lock()
	size := int64(len(h.f.data))
	h.f.mu.Unlock()

	switch whence {
	case 0:
		h.pos = offset
	case 1:
		h.pos += offset
	case 2:
		h.pos = size + offset
	}

	return h.pos, nil
}

func (h *fakeHandle) Close() error { return nil }

func (h *fakeHandle) Stat() (os.FileInfo, error) {
	h.f.mu.Lock()
	defer h.f.mu.Unlock()

	return fakeInfo{name: h.f.name, size: int64(len(h.f.data))}, nil
}

func (h *fakeHandle) Truncate(size int64) error {
	h.f.mu.Lock()
	defer h.f.mu.Unlock()

	if size <= int64(len(h.f.data)) {
		h.f.data = h.f.data[:size]
		return nil
	}

	grown := make([]byte, size)
	copy(grown, h.f.data)
	h.f.data = grown

	return nil
}

var _ File = (*fakeHandle)(nil)

type fakeInfo struct {
	name string
	size int64
}

func (i fakeInfo) Name() string       { return i.name }
func (i fakeInfo) Size() int64        { return i.size }
func (i fakeInfo) Mode() os.FileMode  { return 0o600 }
func (i fakeInfo) ModTime() time.Time { return time.Time{} }
func (i fakeInfo) IsDir() bool        { return false }
func (i fakeInfo) Sys() any           { return nil }

