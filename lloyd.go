package lloyd

import (
	"context"
	"fmt"
	"time"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/lloyd/dataset"
	"github.com/hupe1980/lloyd/geometry"
	"github.com/hupe1980/lloyd/internal/kmeans"
)

// Result is the outcome of a converged run.
type Result struct {
	// Clustering maps each label to its member points in dataset order.
	// Labels without members are absent.
	Clustering map[int][]geometry.Point

	// Assignments holds the label of every dataset point, by index.
	Assignments []int

	// Centers holds the final center of every label.
	Centers []geometry.Point

	// Iterations is the number of update steps performed.
	Iterations int

	// Cost is the within-cluster sum of squared distances of Clustering.
	Cost float64

	members []*roaring.Bitmap
}

// Cluster partitions ds into k clusters with Lloyd's algorithm.
//
// It returns *ErrInvalidK unless 0 < k <= ds.Len()-1, *ErrEmptyCluster if a
// cluster loses all members under EmptyClusterFail, and *ErrNotConverged if
// the iteration limit is reached. Context cancellation is returned wrapped.
func Cluster(ctx context.Context, ds *dataset.Dataset, k int, optFns ...Option) (*Result, error) {
	o := applyOptions(optFns)
	if err := o.validate(); err != nil {
		return nil, err
	}
	if ds == nil {
		return nil, fmt.Errorf("%w: nil dataset", ErrConfiguration)
	}

	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	logger := o.logger.WithRun(k, ds.Len(), ds.Dim())
	logger.DebugContext(ctx, "clustering started",
		"seed", o.seed,
		"max_iterations", o.maxIterations,
		"empty_cluster_policy", o.emptyClusterPolicy.String(),
	)

	iterations := 0
	cfg := kmeans.Config{
		Rand:               o.rand,
		MaxIterations:      o.maxIterations,
		EmptyClusterPolicy: o.emptyClusterPolicy,
		TrackCost:          o.iterationCost,
		OnIteration: func(it kmeans.Iteration) {
			iterations = it.Iteration
			logger.LogIteration(ctx, it)
			o.metricsCollector.RecordIteration(it.Changed, it.Cost)
			if o.onIteration != nil {
				o.onIteration(it)
			}
		},
	}

	start := time.Now()
	points := ds.Points()

	res, err := run(ctx, points, k, cfg)
	o.metricsCollector.RecordRun(k, iterations, time.Since(start), err)
	if err != nil {
		logger.LogRun(ctx, iterations, 0, err)
		return nil, err
	}

	logger.LogRun(ctx, res.Iterations, res.Cost, nil)
	return res, nil
}

func run(ctx context.Context, points []geometry.Point, k int, cfg kmeans.Config) (*Result, error) {
	out, err := kmeans.Run(ctx, points, k, cfg)
	if err != nil {
		return nil, translateError(err)
	}

	clustering := out.Clustering(points)
	cost, err := kmeans.TotalCost(clustering)
	if err != nil {
		return nil, translateError(err)
	}

	return newResult(clustering, out, k, cost), nil
}

func newResult(clustering map[int][]geometry.Point, out *kmeans.Outcome, k int, cost float64) *Result {
	members := make([]*roaring.Bitmap, k)
	for i := range members {
		members[i] = roaring.New()
	}
	for i, label := range out.Assignments {
		members[label].Add(uint32(i))
	}
	for _, bm := range members {
		bm.RunOptimize()
	}

	return &Result{
		Clustering:  clustering,
		Assignments: out.Assignments,
		Centers:     out.Centers,
		Iterations:  out.Iterations,
		Cost:        cost,
		members:     members,
	}
}

// K returns the number of clusters.
func (r *Result) K() int { return len(r.Centers) }

// Members returns the dataset indices assigned to label, or nil if the label
// is out of range. The bitmap is a copy and may be modified freely.
func (r *Result) Members(label int) *roaring.Bitmap {
	if label < 0 || label >= len(r.members) {
		return nil
	}
	return r.members[label].Clone()
}

// Sizes returns the number of members of every label.
func (r *Result) Sizes() []int {
	sizes := make([]int, len(r.members))
	for i, bm := range r.members {
		sizes[i] = int(bm.GetCardinality())
	}
	return sizes
}

// Predict returns the label of the center nearest to p, breaking ties
// towards the lowest label.
func (r *Result) Predict(p geometry.Point) (int, error) {
	labels, err := kmeans.AssignPoints([]geometry.Point{p}, r.Centers)
	if err != nil {
		return 0, translateError(err)
	}
	return labels[0], nil
}

// TotalCost returns the within-cluster sum of squared distances of a
// clustering. Every label's centroid is recomputed from its members.
// A label with no members yields ErrEmptyGroup.
func TotalCost(clustering map[int][]geometry.Point) (float64, error) {
	cost, err := kmeans.TotalCost(clustering)
	if err != nil {
		return 0, translateError(err)
	}
	return cost, nil
}
