package geometry

import (
	"errors"
	"fmt"
	"slices"
)

// ErrEmptyGroup is returned when a centroid is requested for zero points.
var ErrEmptyGroup = errors.New("empty group")

// ErrDimensionMismatch is a named error type for dimension mismatch.
type ErrDimensionMismatch struct {
	Expected int // Expected dimensions
	Actual   int // Actual dimensions
}

// Error returns the error message for dimension mismatch.
func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// Point is an ordered, fixed-length sequence of coordinates.
//
// Points handed to the clusterer are treated as immutable.
type Point []float64

// Dim returns the dimension of the point.
func (p Point) Dim() int { return len(p) }

// Clone returns a copy of p that shares no memory with it.
func (p Point) Clone() Point { return slices.Clone(p) }

// Equal reports whether p and q have the same dimension and coordinates.
func (p Point) Equal(q Point) bool { return slices.Equal(p, q) }

// SquaredDistance calculates the squared L2 distance between a and b.
func SquaredDistance(a, b Point) (float64, error) {
	if len(a) != len(b) {
		return 0, &ErrDimensionMismatch{Expected: len(a), Actual: len(b)}
	}

	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum, nil
}

// Centroid returns the per-dimension arithmetic mean of points.
//
// The dimension is taken from the first point; every other point must match.
func Centroid(points []Point) (Point, error) {
	if len(points) == 0 {
		return nil, ErrEmptyGroup
	}

	dim := len(points[0])
	for _, p := range points[1:] {
		if len(p) != dim {
			return nil, &ErrDimensionMismatch{Expected: dim, Actual: len(p)}
		}
	}

	n := float64(len(points))
	center := make(Point, dim)
	for d := range center {
		center[d] = foldDimension(points, d) / n
	}
	return center, nil
}

// foldDimension sums coordinate d across points.
func foldDimension(points []Point, d int) float64 {
	var sum float64
	for _, p := range points {
		sum += p[d]
	}
	return sum
}
