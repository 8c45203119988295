package testutil

import (
	"bytes"
	"math/rand"
	"strconv"
	"sync"

	"github.com/hupe1980/lloyd/geometry"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// UniformPoints generates random points with coordinates in range [0, 1).
// Uses a single backing array for efficiency.
func (r *RNG) UniformPoints(num int, dimensions int) []geometry.Point {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float64, num*dimensions)
	points := make([]geometry.Point, num)

	for i := range num {
		p := data[i*dimensions : (i+1)*dimensions : (i+1)*dimensions]
		for j := range p {
			p[j] = r.rand.Float64()
		}
		points[i] = p
	}

	return points
}

// GaussianPoints generates points with coordinates from a standard normal distribution.
func (r *RNG) GaussianPoints(num int, dimensions int) []geometry.Point {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float64, num*dimensions)
	points := make([]geometry.Point, num)

	for i := range num {
		p := data[i*dimensions : (i+1)*dimensions : (i+1)*dimensions]
		for j := range p {
			p[j] = r.rand.NormFloat64()
		}
		points[i] = p
	}

	return points
}

// ClusteredPoints generates points around `clusters` well separated centers.
// Centers sit on a grid with unit spacing scaled by 10, and every point gets
// gaussian noise scaled by spread. The second return value holds the index
// of the generating center for every point.
func (r *RNG) ClusteredPoints(num, dim, clusters int, spread float64) ([]geometry.Point, []int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	centers := make([]geometry.Point, clusters)
	for c := range centers {
		center := make(geometry.Point, dim)
		for j := range center {
			// Spread the cluster id across dimensions so centers stay distinct.
			center[j] = float64((c+j)%clusters) * 10
		}
		center[0] = float64(c) * 10
		centers[c] = center
	}

	data := make([]float64, num*dim)
	points := make([]geometry.Point, num)
	truth := make([]int, num)

	for i := range num {
		c := i % clusters
		p := data[i*dim : (i+1)*dim : (i+1)*dim]
		for j := range p {
			p[j] = centers[c][j] + r.rand.NormFloat64()*spread
		}
		points[i] = p
		truth[i] = c
	}

	return points, truth
}

// CSV encodes points as comma-separated rows terminated by newlines.
func CSV(points []geometry.Point) []byte {
	var buf bytes.Buffer
	for _, p := range points {
		for j, v := range p {
			if j > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}
