package dataset

import (
	"errors"
	"slices"

	"github.com/hupe1980/lloyd/geometry"
)

// ErrEmpty is returned when a dataset would contain no points.
var ErrEmpty = errors.New("dataset: no points")

// Dataset is an ordered, immutable collection of points sharing one dimension.
type Dataset struct {
	points []geometry.Point
	dim    int
}

// New creates a Dataset from a copy of points.
// All points must share the dimension of the first one.
func New(points []geometry.Point) (*Dataset, error) {
	if len(points) == 0 {
		return nil, ErrEmpty
	}

	dim := points[0].Dim()
	owned := make([]geometry.Point, len(points))
	for i, p := range points {
		if p.Dim() != dim {
			return nil, &geometry.ErrDimensionMismatch{Expected: dim, Actual: p.Dim()}
		}
		owned[i] = p.Clone()
	}

	return &Dataset{points: owned, dim: dim}, nil
}

// Concat joins datasets in order. All parts must share one dimension.
func Concat(parts ...*Dataset) (*Dataset, error) {
	total := 0
	for _, p := range parts {
		if p != nil {
			total += p.Len()
		}
	}
	if total == 0 {
		return nil, ErrEmpty
	}

	out := &Dataset{points: make([]geometry.Point, 0, total), dim: -1}
	for _, p := range parts {
		if p == nil {
			continue
		}
		if out.dim < 0 {
			out.dim = p.dim
		}
		if p.dim != out.dim {
			return nil, &geometry.ErrDimensionMismatch{Expected: out.dim, Actual: p.dim}
		}
		out.points = append(out.points, p.points...)
	}

	return out, nil
}

// Len returns the number of points.
func (d *Dataset) Len() int { return len(d.points) }

// Dim returns the dimension shared by all points.
func (d *Dataset) Dim() int { return d.dim }

// At returns the point at index i. The returned point must not be modified.
func (d *Dataset) At(i int) geometry.Point { return d.points[i] }

// Points returns the points in order. The slice is a copy; the points
// themselves are shared and must not be modified.
func (d *Dataset) Points() []geometry.Point { return slices.Clone(d.points) }

// All iterates over the points in index order.
func (d *Dataset) All() func(yield func(int, geometry.Point) bool) {
	return func(yield func(int, geometry.Point) bool) {
		for i, p := range d.points {
			if !yield(i, p) {
				return
			}
		}
	}
}
