// Package testutil provides testing utilities for lloyd.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seedable, thread-safe RNG and helpers for generating
// point clouds with a known cluster structure.
//
// # Random Point Generation
//
//	rng := testutil.NewRNG(seed)
//	pts := rng.UniformPoints(1000, 2)                    // uniform [0, 1)
//	pts, truth := rng.ClusteredPoints(1000, 2, 4, 0.1)   // gaussian blobs
//
// # Encoding
//
//	data := testutil.CSV(pts) // comma-separated rows for loader tests
package testutil
