package mmap

import (
	"io"
	"os"
	"sync/atomic"
)

const maxSize = int64(^uint(0) >> 1)

// Mapping is a read-only view of a whole file. Its bytes stay valid until
// Close.
type Mapping struct {
	name   string
	data   []byte
	closed atomic.Bool
}

// Open maps the regular file at path and applies hint. The file descriptor is
// closed before Open returns; the mapping keeps the pages alive.
func Open(path string, hint AccessPattern) (*Mapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, &os.PathError{Op: "mmap", Path: path, Err: ErrNotRegular}
	}
	if info.Size() > maxSize {
		return nil, &os.PathError{Op: "mmap", Path: path, Err: ErrTooLarge}
	}

	m := &Mapping{name: path}
	// mmap(2) rejects zero-length maps.
	if info.Size() == 0 {
		return m, nil
	}

	data, err := mmap(f, int(info.Size()))
	if err != nil {
		return nil, &os.PathError{Op: "mmap", Path: path, Err: err}
	}
	m.data = data

	if hint != AccessDefault {
		_ = madvise(data, hint) // advisory only
	}
	return m, nil
}

// Name returns the path the mapping was opened with.
func (m *Mapping) Name() string { return m.name }

// Size returns the length of the mapped file.
func (m *Mapping) Size() int64 { return int64(len(m.data)) }

// Bytes returns the mapped file, or nil once the mapping is closed.
func (m *Mapping) Bytes() []byte {
	if m.closed.Load() {
		return nil
	}
	return m.data
}

// ReadAt implements io.ReaderAt over the mapped bytes.
func (m *Mapping) ReadAt(p []byte, off int64) (int, error) {
	if m.closed.Load() {
		return 0, ErrClosed
	}
	if off < 0 {
		return 0, &os.PathError{Op: "readat", Path: m.name, Err: os.ErrInvalid}
	}
	if off >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n := copy(p, m.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Close unmaps the file. Calling it again is a no-op.
func (m *Mapping) Close() error {
	if m.closed.Swap(true) || m.data == nil {
		return nil
	}
	return munmap(m.data)
}
