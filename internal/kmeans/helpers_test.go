package kmeans

import "github.com/hupe1980/lloyd/geometry"

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

func pts(coords ...[]float64) []geometry.Point {
	out := make([]geometry.Point, len(coords))
	for i, c := range coords {
		out[i] = geometry.Point(c)
	}
	return out
}
