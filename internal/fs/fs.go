package fs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
)

// File is the write side of a file being staged.
type File interface {
	io.WriteCloser
	Sync() error
	Name() string
}

// FileSystem is the set of operations WriteFileAtomic needs.
type FileSystem interface {
	OpenFile(name string, flag int, perm os.FileMode) (File, error)
	Remove(name string) error
	Rename(oldpath, newpath string) error
	MkdirAll(path string, perm os.FileMode) error
}

// OS is the FileSystem of the host, backed by package os.
type OS struct{}

func (OS) OpenFile(name string, flag int, perm os.FileMode) (File, error) {
	return os.OpenFile(name, flag, perm) //nolint:gosec // G304: names are built by the blob store
}

func (OS) Remove(name string) error { return os.Remove(name) }

func (OS) Rename(oldpath, newpath string) error { return os.Rename(oldpath, newpath) }

func (OS) MkdirAll(path string, perm os.FileMode) error { return os.MkdirAll(path, perm) }

// Default is the host file system.
var Default FileSystem = OS{}

// TempPrefix starts the name of every staging file. Directory listings should
// skip names with this prefix.
const TempPrefix = ".tmp-"

var tempSeq atomic.Uint64

// WriteFileAtomic writes data to a staging file next to path, syncs it and
// renames it over path. On error the staging file is removed and path keeps
// its previous content, if any.
func WriteFileAtomic(fsys FileSystem, path string, data []byte, perm os.FileMode) (err error) {
	dir := filepath.Dir(path)
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp := filepath.Join(dir, fmt.Sprintf("%s%s-%d-%d", TempPrefix, filepath.Base(path), os.Getpid(), tempSeq.Add(1)))
	f, err := fsys.OpenFile(tmp, os.O_CREATE|os.O_EXCL|os.O_WRONLY, perm)
	if err != nil {
		return err
	}

	closed := false
	defer func() {
		if err == nil {
			return
		}
		if !closed {
			_ = f.Close()
		}
		_ = fsys.Remove(tmp)
	}()

	if _, err = f.Write(data); err != nil {
		return err
	}
	if err = f.Sync(); err != nil {
		return err
	}
	closed = true
	if err = f.Close(); err != nil {
		return err
	}
	return fsys.Rename(tmp, path)
}
