package dataset

import (
	"context"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/lloyd/blobstore"
	"github.com/hupe1980/lloyd/resource"
)

// Load reads a single CSV blob from store.
//
// A failure to open or read the blob is returned as *IOError; a missing blob
// also satisfies errors.Is(err, blobstore.ErrNotFound).
func Load(ctx context.Context, store blobstore.BlobStore, name string, optFns ...Option) (*Dataset, error) {
	o := applyOptions(optFns)
	o.source = name
	return load(ctx, store, name, o)
}

func load(ctx context.Context, store blobstore.BlobStore, name string, o options) (*Dataset, error) {
	start := time.Now()

	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, &IOError{Source: name, Err: err}
	}
	defer func() { _ = blob.Close() }()

	size := blob.Size()
	release, err := o.controller.Reserve(ctx, size)
	if err != nil {
		return nil, &IOError{Source: name, Err: err}
	}
	defer release()

	rc, err := blobstore.NewReader(ctx, blob)
	if err != nil {
		return nil, &IOError{Source: name, Err: err}
	}
	defer func() { _ = rc.Close() }()

	plain, err := decompress(o.controller.Reader(ctx, rc), DetectCompression(name))
	if err != nil {
		return nil, &IOError{Source: name, Err: err}
	}
	defer func() { _ = plain.Close() }()

	ds, err := read(plain, o)
	if err != nil {
		return nil, err
	}

	if o.onLoad != nil {
		o.onLoad(LoadInfo{
			Source:   name,
			Bytes:    size,
			Points:   ds.Len(),
			Duration: time.Since(start),
		})
	}

	return ds, nil
}

// LoadAll loads every blob whose name starts with prefix and concatenates
// them in lexical name order. Blobs are fetched concurrently, bounded by the
// controller's load slots; the first failure cancels the rest.
func LoadAll(ctx context.Context, store blobstore.BlobStore, prefix string, optFns ...Option) (*Dataset, error) {
	o := applyOptions(optFns)
	if o.controller == nil {
		o.controller = resource.NewController(resource.Config{})
	}

	names, err := store.List(ctx, prefix)
	if err != nil {
		return nil, &IOError{Source: prefix, Err: err}
	}
	if len(names) == 0 {
		return nil, &IOError{Source: prefix, Err: ErrEmpty}
	}
	slices.Sort(names)

	parts := make([]*Dataset, len(names))

	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			release, err := o.controller.Slot(gctx)
			if err != nil {
				return &IOError{Source: name, Err: err}
			}
			defer release()

			po := o
			po.source = name
			ds, err := load(gctx, store, name, po)
			if err != nil {
				return err
			}
			parts[i] = ds
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return Concat(parts...)
}
