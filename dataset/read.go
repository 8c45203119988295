package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/hupe1980/lloyd/geometry"
)

// Read parses CSV rows of numbers from r.
//
// Blank lines and lines starting with '#' are skipped. Every row must yield
// the same number of coordinates.
func Read(r io.Reader, optFns ...Option) (*Dataset, error) {
	o := applyOptions(optFns)
	return read(r, o)
}

func read(r io.Reader, o options) (*Dataset, error) {
	if o.columns < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidColumns, o.columns)
	}

	cr := csv.NewReader(r)
	cr.Comma = o.comma
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	var points []geometry.Point
	dim := o.columns
	first := true

	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return nil, &ParseError{Source: o.source, Line: pe.Line, Column: pe.Column, Err: pe.Err}
			}
			return nil, &IOError{Source: o.source, Err: err}
		}

		if first && o.header {
			first = false
			continue
		}
		first = false

		if dim == 0 {
			dim = len(record)
		}
		if len(record) < dim {
			line, _ := cr.FieldPos(0)
			return nil, &ParseError{Source: o.source, Line: line, Column: len(record) + 1, Err: ErrTooFewColumns}
		}
		if o.columns == 0 && len(record) != dim {
			line, _ := cr.FieldPos(0)
			return nil, &ParseError{
				Source: o.source,
				Line:   line,
				Column: dim + 1,
				Err:    &geometry.ErrDimensionMismatch{Expected: dim, Actual: len(record)},
			}
		}

		p := make(geometry.Point, dim)
		for j := 0; j < dim; j++ {
			v, err := parseCoordinate(record[j])
			if err != nil {
				line, _ := cr.FieldPos(j)
				return nil, &ParseError{Source: o.source, Line: line, Column: j + 1, Err: err}
			}
			p[j] = v
		}
		points = append(points, p)
	}

	if len(points) == 0 {
		return nil, &IOError{Source: o.source, Err: ErrEmpty}
	}

	// Rows were freshly allocated above; skip the defensive copy in New.
	return &Dataset{points: points, dim: dim}, nil
}

func parseCoordinate(field string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
	if err != nil {
		var ne *strconv.NumError
		if errors.As(err, &ne) {
			return 0, ne.Err
		}
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrNotFinite
	}
	return v, nil
}
