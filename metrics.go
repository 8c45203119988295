package lloyd

import (
	"math"
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus;
// the lloyd command ships such an implementation.
type MetricsCollector interface {
	// RecordRun is called after each clustering run.
	// iterations is the number of completed update steps, err is nil if the run converged.
	RecordRun(k, iterations int, duration time.Duration, err error)

	// RecordIteration is called after each update step.
	// cost is NaN unless per-iteration cost tracking is enabled.
	RecordIteration(changed int, cost float64)

	// RecordLoad is called after a dataset has been loaded.
	RecordLoad(points int, bytes int64, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordRun(int, int, time.Duration, error)    {}
func (NoopMetricsCollector) RecordIteration(int, float64)                {}
func (NoopMetricsCollector) RecordLoad(int, int64, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	RunCount       atomic.Int64
	RunErrors      atomic.Int64
	RunTotalNanos  atomic.Int64
	IterationCount atomic.Int64
	PointsChanged  atomic.Int64
	lastCostBits   atomic.Uint64
	LoadCount      atomic.Int64
	LoadErrors     atomic.Int64
	LoadPoints     atomic.Int64
	LoadBytes      atomic.Int64
	LoadTotalNanos atomic.Int64
}

// RecordRun implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRun(k, iterations int, duration time.Duration, err error) {
	b.RunCount.Add(1)
	b.RunTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.RunErrors.Add(1)
	}
}

// RecordIteration implements MetricsCollector.
func (b *BasicMetricsCollector) RecordIteration(changed int, cost float64) {
	b.IterationCount.Add(1)
	b.PointsChanged.Add(int64(changed))
	b.lastCostBits.Store(math.Float64bits(cost))
}

// RecordLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLoad(points int, bytes int64, duration time.Duration, err error) {
	b.LoadCount.Add(1)
	b.LoadTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.LoadErrors.Add(1)
		return
	}
	b.LoadPoints.Add(int64(points))
	b.LoadBytes.Add(bytes)
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	lastCost := math.NaN()
	if b.IterationCount.Load() > 0 {
		lastCost = math.Float64frombits(b.lastCostBits.Load())
	}
	return BasicMetricsStats{
		RunCount:       b.RunCount.Load(),
		RunErrors:      b.RunErrors.Load(),
		RunAvgNanos:    avg(b.RunTotalNanos.Load(), b.RunCount.Load()),
		IterationCount: b.IterationCount.Load(),
		PointsChanged:  b.PointsChanged.Load(),
		LastCost:       lastCost,
		LoadCount:      b.LoadCount.Load(),
		LoadErrors:     b.LoadErrors.Load(),
		LoadPoints:     b.LoadPoints.Load(),
		LoadBytes:      b.LoadBytes.Load(),
		LoadAvgNanos:   avg(b.LoadTotalNanos.Load(), b.LoadCount.Load()),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	RunCount       int64
	RunErrors      int64
	RunAvgNanos    int64
	IterationCount int64
	PointsChanged  int64
	LastCost       float64 // NaN before the first iteration or when cost is not tracked
	LoadCount      int64
	LoadErrors     int64
	LoadPoints     int64
	LoadBytes      int64
	LoadAvgNanos   int64
}
