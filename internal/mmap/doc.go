// Package mmap maps dataset files read-only into memory for the local blob
// store, so CSV parsing reads straight from the page cache instead of through
// a buffered file handle.
//
//	m, err := mmap.Open("points.csv", mmap.AccessSequential)
//	if err != nil { ... }
//	defer m.Close()
//	data := m.Bytes()
//
// Unix uses mmap(2) and madvise(2) from golang.org/x/sys/unix. Windows uses
// CreateFileMapping and MapViewOfFile and ignores the access hint.
package mmap
