package kmeans

import (
	"fmt"
	"maps"
	"slices"

	"github.com/hupe1980/lloyd/geometry"
)

// Group folds points into a label -> members map. Labels without members
// are absent from the result.
func Group(points []geometry.Point, assignments []int) map[int][]geometry.Point {
	clustering := make(map[int][]geometry.Point)
	for i, label := range assignments {
		clustering[label] = append(clustering[label], points[i])
	}
	return clustering
}

// TotalCost returns the within-cluster sum of squared distances.
//
// Each label's centroid is recomputed from its members. Labels are visited
// in ascending order so the floating point sum is reproducible.
func TotalCost(clustering map[int][]geometry.Point) (float64, error) {
	var cost float64
	for _, label := range slices.Sorted(maps.Keys(clustering)) {
		members := clustering[label]
		center, err := geometry.Centroid(members)
		if err != nil {
			return 0, fmt.Errorf("cluster %d: %w", label, err)
		}
		for _, p := range members {
			d, err := geometry.SquaredDistance(center, p)
			if err != nil {
				return 0, fmt.Errorf("cluster %d: %w", label, err)
			}
			cost += d
		}
	}
	return cost, nil
}
