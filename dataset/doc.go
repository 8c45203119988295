// Package dataset loads the points to be clustered.
//
// A Dataset is an ordered, immutable collection of equal-dimension points.
// The index of a point is its identity: assignments produced by the
// clustering algorithm refer to points by index.
//
// Points are read from CSV, either directly from an io.Reader (Read) or from
// a blobstore.BlobStore (Load, LoadAll). Blobs whose names end in ".gz",
// ".zst" or ".lz4" are decompressed transparently.
//
//	store := blobstore.NewLocalStore("data")
//	ds, err := dataset.Load(ctx, store, "points.csv.zst", dataset.WithColumns(2))
package dataset
