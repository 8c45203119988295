package kmeans

import (
	"fmt"

	"github.com/hupe1980/lloyd/geometry"
)

// EmptyClusterPolicy decides what an update does with a label that has no members.
type EmptyClusterPolicy int

const (
	// EmptyClusterFail aborts the update with *ErrEmptyCluster.
	EmptyClusterFail EmptyClusterPolicy = iota
	// EmptyClusterReseed moves the empty label's center onto a random dataset point.
	EmptyClusterReseed
)

func (p EmptyClusterPolicy) String() string {
	switch p {
	case EmptyClusterFail:
		return "fail"
	case EmptyClusterReseed:
		return "reseed"
	default:
		return fmt.Sprintf("Unknown(%d)", int(p))
	}
}

// UpdateCenters recomputes one centroid per label 0..k-1.
//
// A label without members fails with *ErrEmptyCluster.
func UpdateCenters(points []geometry.Point, assignments []int, k int) ([]geometry.Point, error) {
	return UpdateCentersWithPolicy(points, assignments, k, EmptyClusterFail, nil)
}

// UpdateCentersWithPolicy is UpdateCenters with an explicit empty cluster policy.
// rnd is only consulted by EmptyClusterReseed.
func UpdateCentersWithPolicy(points []geometry.Point, assignments []int, k int, policy EmptyClusterPolicy, rnd RandomSource) ([]geometry.Point, error) {
	buckets, err := bucketize(points, assignments, k)
	if err != nil {
		return nil, err
	}

	centers := make([]geometry.Point, k)
	for label, members := range buckets {
		if len(members) == 0 {
			switch policy {
			case EmptyClusterReseed:
				if rnd == nil {
					return nil, fmt.Errorf("%w: reseeding requires a random source", ErrConfiguration)
				}
				centers[label] = points[rnd.Intn(len(points))].Clone()
				continue
			default:
				return nil, &ErrEmptyCluster{Label: label}
			}
		}

		c, err := geometry.Centroid(members)
		if err != nil {
			return nil, err
		}
		centers[label] = c
	}

	return centers, nil
}

// bucketize groups points into k buckets indexed by label.
func bucketize(points []geometry.Point, assignments []int, k int) ([][]geometry.Point, error) {
	if k <= 0 {
		return nil, &ErrInvalidK{K: k, N: len(points)}
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: no points", ErrConfiguration)
	}
	if len(assignments) != len(points) {
		return nil, fmt.Errorf("%w: %d assignments for %d points", ErrConfiguration, len(assignments), len(points))
	}

	buckets := make([][]geometry.Point, k)
	for i, label := range assignments {
		if label < 0 || label >= k {
			return nil, fmt.Errorf("%w: label %d of point %d outside [0, %d]", ErrConfiguration, label, i, k-1)
		}
		buckets[label] = append(buckets[label], points[i])
	}

	return buckets, nil
}
