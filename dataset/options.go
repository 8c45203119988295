package dataset

import (
	"time"

	"github.com/hupe1980/lloyd/resource"
)

// LoadInfo describes one completed load.
type LoadInfo struct {
	Source   string
	Bytes    int64 // stored (possibly compressed) size
	Points   int
	Duration time.Duration
}

type options struct {
	columns    int
	comma      rune
	header     bool
	source     string
	controller *resource.Controller
	onLoad     func(LoadInfo)
}

// Option configures reading and loading.
type Option func(*options)

// WithColumns takes only the first n fields of every row.
// The default (0) takes every field and fixes the dimension from the first row.
// A negative n fails reading with ErrInvalidColumns.
func WithColumns(n int) Option {
	return func(o *options) {
		o.columns = n
	}
}

// WithComma sets the field delimiter. Defaults to ','.
func WithComma(r rune) Option {
	return func(o *options) {
		o.comma = r
	}
}

// WithHeader skips the first row.
func WithHeader() Option {
	return func(o *options) {
		o.header = true
	}
}

// WithSourceName sets the name used in errors returned by Read.
// Load and LoadAll use the blob name.
func WithSourceName(name string) Option {
	return func(o *options) {
		o.source = name
	}
}

// WithController bounds loading by the given resource controller.
func WithController(c *resource.Controller) Option {
	return func(o *options) {
		o.controller = c
	}
}

// WithLoadHook registers a callback invoked after every successful blob load.
// LoadAll may call it concurrently.
func WithLoadHook(fn func(LoadInfo)) Option {
	return func(o *options) {
		o.onLoad = fn
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		comma:  ',',
		source: "<input>",
	}
	for _, fn := range optFns {
		fn(&o)
	}
	return o
}
