package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFinite is returned for NaN or infinite coordinates.
	ErrNotFinite = errors.New("value is not finite")

	// ErrTooFewColumns is returned for rows shorter than the requested columns.
	ErrTooFewColumns = errors.New("too few columns")

	// ErrInvalidColumns is returned when WithColumns is given a negative count.
	ErrInvalidColumns = errors.New("dataset: column count must not be negative")
)

// ParseError describes a malformed row.
// Line and Column are 1-based; Column counts fields, not bytes.
type ParseError struct {
	Source string
	Line   int
	Column int
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("dataset: %s:%d:%d: %v", e.Source, e.Line, e.Column, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IOError is returned when a source cannot be opened or read.
type IOError struct {
	Source string
	Err    error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("dataset: reading %s: %v", e.Source, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
