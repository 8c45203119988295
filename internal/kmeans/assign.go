package kmeans

import (
	"fmt"
	"math"

	"github.com/hupe1980/lloyd/geometry"
)

// AssignPoints returns, for every point, the index of its nearest center.
//
// Centers are scanned in index order and only a strictly smaller distance
// replaces the current best, so exact ties go to the lowest index.
func AssignPoints(points, centers []geometry.Point) ([]int, error) {
	if len(centers) == 0 {
		return nil, fmt.Errorf("%w: no centers", ErrConfiguration)
	}

	assignments := make([]int, len(points))
	for i, p := range points {
		label, err := nearestCenter(p, centers)
		if err != nil {
			return nil, err
		}
		assignments[i] = label
	}

	return assignments, nil
}

func nearestCenter(p geometry.Point, centers []geometry.Point) (int, error) {
	bestCluster := 0
	minDist := math.Inf(1)

	for j, center := range centers {
		d, err := geometry.SquaredDistance(p, center)
		if err != nil {
			return 0, err
		}
		if d < minDist {
			minDist = d
			bestCluster = j
		}
	}

	return bestCluster, nil
}
