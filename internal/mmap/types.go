package mmap

import "errors"

// AccessPattern is the madvise(2) hint applied when a file is mapped.
type AccessPattern int

const (
	AccessDefault AccessPattern = iota
	// AccessSequential suits parsers that scan the file once, front to back.
	AccessSequential
	AccessRandom
)

var (
	ErrClosed = errors.New("mmap: mapping closed")
	// ErrNotRegular is returned for directories and other special files.
	ErrNotRegular = errors.New("mmap: not a regular file")
	// ErrTooLarge is returned when the file does not fit the address space.
	ErrTooLarge = errors.New("mmap: file too large")
)
