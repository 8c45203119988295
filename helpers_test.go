package lloyd

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hupe1980/lloyd/dataset"
	"github.com/hupe1980/lloyd/geometry"
)

// seqSource replays a fixed sequence of draws, reduced modulo n.
type seqSource struct {
	vals []int
	i    int
}

func (s *seqSource) Intn(n int) int {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v % n
}

func mustDataset(t *testing.T, points ...geometry.Point) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.New(points)
	require.NoError(t, err)
	return ds
}

// twoBlobs is two tight groups of three points far apart.
func twoBlobs(t *testing.T) *dataset.Dataset {
	return mustDataset(t,
		geometry.Point{0, 0}, geometry.Point{0, 1}, geometry.Point{1, 0},
		geometry.Point{10, 10}, geometry.Point{10, 11}, geometry.Point{11, 10},
	)
}

// line is 0..9 plus an outlier at 20; starting from centers 0 and 1 it
// needs several updates to converge.
func line(t *testing.T) *dataset.Dataset {
	points := make([]geometry.Point, 0, 11)
	for i := 0; i < 10; i++ {
		points = append(points, geometry.Point{float64(i)})
	}
	points = append(points, geometry.Point{20})
	return mustDataset(t, points...)
}
