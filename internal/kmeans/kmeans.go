package kmeans

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/hupe1980/lloyd/geometry"
)

// DefaultMaxIterations bounds the loop when Config.MaxIterations is not set.
const DefaultMaxIterations = 300

// Config controls a single run.
type Config struct {
	// Rand draws the initial centers and, under EmptyClusterReseed, replacement centers.
	Rand RandomSource

	// MaxIterations caps the number of update steps. Zero means unbounded.
	MaxIterations int

	// EmptyClusterPolicy defaults to EmptyClusterFail.
	EmptyClusterPolicy EmptyClusterPolicy

	// OnIteration, if set, is called after every update step.
	OnIteration func(Iteration)

	// TrackCost computes Iteration.Cost for every step. Costs an extra O(n·d).
	TrackCost bool
}

// Iteration describes one completed assign/update cycle.
type Iteration struct {
	// Iteration counts update steps, starting at 1.
	Iteration int
	// Changed is the number of points whose label differs from the previous assignment.
	Changed int
	// Cost is the WCSS of the assignment that fed this update, or NaN if not tracked.
	Cost float64
}

// Outcome is the terminal state of a converged run.
type Outcome struct {
	Assignments []int
	Centers     []geometry.Point
	Iterations  int
}

// Clustering folds the outcome into a label -> members map.
func (o *Outcome) Clustering(points []geometry.Point) map[int][]geometry.Point {
	return Group(points, o.Assignments)
}

type state int

const (
	stateInit state = iota
	stateAssigning
	stateUpdating
	stateConverged
)

func (s state) String() string {
	switch s {
	case stateInit:
		return "init"
	case stateAssigning:
		return "assigning"
	case stateUpdating:
		return "updating"
	case stateConverged:
		return "converged"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// Run clusters points into k groups with Lloyd's algorithm.
//
// The loop stops once an assignment pass reproduces the previous assignment
// vector exactly. The context is checked before every update step.
func Run(ctx context.Context, points []geometry.Point, k int, cfg Config) (*Outcome, error) {
	var (
		centers    []geometry.Point
		current    []int
		previous   []int
		iterations int
		err        error
	)

	st := stateInit
	for {
		switch st {
		case stateInit:
			centers, err = SampleInitialCenters(points, k, cfg.Rand)
			if err != nil {
				return nil, err
			}
			st = stateAssigning

		case stateAssigning:
			current, err = AssignPoints(points, centers)
			if err != nil {
				return nil, err
			}
			if previous != nil && slices.Equal(current, previous) {
				st = stateConverged
			} else {
				st = stateUpdating
			}

		case stateUpdating:
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("kmeans stopped after %d iterations: %w", iterations, err)
			}
			if cfg.MaxIterations > 0 && iterations >= cfg.MaxIterations {
				return nil, &ErrNotConverged{Iterations: iterations}
			}

			centers, err = UpdateCentersWithPolicy(points, current, k, cfg.EmptyClusterPolicy, cfg.Rand)
			if err != nil {
				var ec *ErrEmptyCluster
				if errors.As(err, &ec) {
					ec.Iteration = iterations + 1
				}
				return nil, err
			}
			iterations++

			if cfg.OnIteration != nil {
				it := Iteration{
					Iteration: iterations,
					Changed:   changed(previous, current),
					Cost:      math.NaN(),
				}
				if cfg.TrackCost {
					if it.Cost, err = TotalCost(Group(points, current)); err != nil {
						return nil, err
					}
				}
				cfg.OnIteration(it)
			}

			previous = current
			st = stateAssigning

		case stateConverged:
			return &Outcome{
				Assignments: current,
				Centers:     centers,
				Iterations:  iterations,
			}, nil
		}
	}
}

// changed counts positions where the two assignment vectors differ.
// A nil previous vector counts every point as changed.
func changed(previous, current []int) int {
	if previous == nil {
		return len(current)
	}
	n := 0
	for i := range current {
		if current[i] != previous[i] {
			n++
		}
	}
	return n
}
