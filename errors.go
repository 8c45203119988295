package lloyd

import (
	"errors"
	"fmt"

	"github.com/hupe1980/lloyd/geometry"
	"github.com/hupe1980/lloyd/internal/kmeans"
)

var (
	// ErrConfiguration is returned for arguments a run cannot start with.
	ErrConfiguration = kmeans.ErrConfiguration

	// ErrEmptyGroup is returned when a centroid is requested for no points.
	ErrEmptyGroup = geometry.ErrEmptyGroup

	// ErrNonConvergence is returned when the iteration limit is reached.
	ErrNonConvergence = kmeans.ErrNonConvergence
)

// ErrInvalidK indicates a cluster count outside 0 < K <= N-1.
//
// errors.Is(err, ErrConfiguration) reports true for it.
type ErrInvalidK struct {
	K     int
	N     int
	cause error
}

func (e *ErrInvalidK) Error() string {
	return fmt.Sprintf("invalid k: %d for %d points", e.K, e.N)
}

func (e *ErrInvalidK) Unwrap() error { return e.cause }

// ErrDimensionMismatch indicates points or centers of different dimension.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
	cause    error
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func (e *ErrDimensionMismatch) Unwrap() error { return e.cause }

// ErrEmptyCluster indicates that a cluster lost all members.
//
// errors.Is(err, ErrEmptyGroup) reports true for it.
type ErrEmptyCluster struct {
	Label     int
	Iteration int
	cause     error
}

func (e *ErrEmptyCluster) Error() string {
	return fmt.Sprintf("empty cluster: label %d at iteration %d", e.Label, e.Iteration)
}

func (e *ErrEmptyCluster) Unwrap() error { return e.cause }

// ErrNotConverged indicates that assignments were still changing when the
// iteration limit was reached.
//
// errors.Is(err, ErrNonConvergence) reports true for it.
type ErrNotConverged struct {
	Iterations int
	cause      error
}

func (e *ErrNotConverged) Error() string {
	return fmt.Sprintf("not converged after %d iterations", e.Iterations)
}

func (e *ErrNotConverged) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	var ik *kmeans.ErrInvalidK
	if errors.As(err, &ik) {
		return &ErrInvalidK{K: ik.K, N: ik.N, cause: err}
	}
	var dm *geometry.ErrDimensionMismatch
	if errors.As(err, &dm) {
		return &ErrDimensionMismatch{Expected: dm.Expected, Actual: dm.Actual, cause: err}
	}
	var ec *kmeans.ErrEmptyCluster
	if errors.As(err, &ec) {
		return &ErrEmptyCluster{Label: ec.Label, Iteration: ec.Iteration, cause: err}
	}
	var nc *kmeans.ErrNotConverged
	if errors.As(err, &nc) {
		return &ErrNotConverged{Iterations: nc.Iterations, cause: err}
	}

	return err
}
