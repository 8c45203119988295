package kmeans

import (
	"fmt"

	"github.com/hupe1980/lloyd/geometry"
)

// RandomSource supplies uniform integers in [0, n).
//
// *math/rand.Rand satisfies it.
type RandomSource interface {
	Intn(n int) int
}

// SampleInitialCenters draws k distinct points uniformly at random, without
// replacement, and returns copies of them in draw order.
//
// k must satisfy 0 < k <= len(points)-1.
func SampleInitialCenters(points []geometry.Point, k int, rnd RandomSource) ([]geometry.Point, error) {
	n := len(points)
	if k <= 0 || k > n-1 {
		return nil, &ErrInvalidK{K: k, N: n}
	}
	if rnd == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrConfiguration)
	}

	// Partial Fisher-Yates: after step i, perm[:i+1] holds i+1 distinct indices.
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}

	centers := make([]geometry.Point, k)
	for i := 0; i < k; i++ {
		j := i + rnd.Intn(n-i)
		perm[i], perm[j] = perm[j], perm[i]
		centers[i] = points[perm[i]].Clone()
	}

	return centers, nil
}
