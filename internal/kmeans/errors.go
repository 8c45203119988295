package kmeans

import (
	"errors"
	"fmt"

	"github.com/hupe1980/lloyd/geometry"
)

var (
	// ErrConfiguration is returned for arguments the algorithm cannot run with.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrNonConvergence is returned when the iteration guard trips.
	ErrNonConvergence = errors.New("did not converge")
)

// ErrInvalidK indicates a cluster count that is not valid for the dataset size.
//
// Valid values satisfy 0 < K <= N-1.
type ErrInvalidK struct {
	K int
	N int
}

func (e *ErrInvalidK) Error() string {
	return fmt.Sprintf("k=%d is invalid for %d points (need 0 < k <= %d)", e.K, e.N, e.N-1)
}

func (e *ErrInvalidK) Unwrap() error { return ErrConfiguration }

// ErrEmptyCluster indicates that a label lost all of its members during an update.
type ErrEmptyCluster struct {
	Label     int
	Iteration int
}

func (e *ErrEmptyCluster) Error() string {
	return fmt.Sprintf("cluster %d has no members at iteration %d", e.Label, e.Iteration)
}

func (e *ErrEmptyCluster) Unwrap() error { return geometry.ErrEmptyGroup }

// ErrNotConverged indicates that the assignment vector was still changing
// after the configured number of iterations.
type ErrNotConverged struct {
	Iterations int
}

func (e *ErrNotConverged) Error() string {
	return fmt.Sprintf("assignments still changing after %d iterations", e.Iterations)
}

func (e *ErrNotConverged) Unwrap() error { return ErrNonConvergence }
