package lloyd

import (
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/hupe1980/lloyd/internal/kmeans"
)

// RandomSource supplies the randomness of a run. *math/rand.Rand satisfies it.
type RandomSource interface {
	// Intn returns a uniform integer in [0, n).
	Intn(n int) int
}

// EmptyClusterPolicy decides what happens when a cluster loses all members.
type EmptyClusterPolicy = kmeans.EmptyClusterPolicy

const (
	// EmptyClusterFail aborts the run with *ErrEmptyCluster. This is the default.
	EmptyClusterFail = kmeans.EmptyClusterFail
	// EmptyClusterReseed moves the empty cluster's center onto a random dataset point.
	EmptyClusterReseed = kmeans.EmptyClusterReseed
)

// ParseEmptyClusterPolicy parses "fail" or "reseed".
func ParseEmptyClusterPolicy(s string) (EmptyClusterPolicy, error) {
	switch s {
	case "fail", "":
		return EmptyClusterFail, nil
	case "reseed":
		return EmptyClusterReseed, nil
	default:
		return EmptyClusterFail, fmt.Errorf("%w: unknown empty cluster policy %q", ErrConfiguration, s)
	}
}

// Iteration describes one completed assign/update cycle.
type Iteration = kmeans.Iteration

// DefaultMaxIterations is the iteration limit used when none is configured.
const DefaultMaxIterations = kmeans.DefaultMaxIterations

type options struct {
	rand               RandomSource
	seed               int64
	maxIterations      int
	timeout            time.Duration
	emptyClusterPolicy EmptyClusterPolicy
	metricsCollector   MetricsCollector
	logger             *Logger
	onIteration        func(Iteration)
	iterationCost      bool
}

// Option configures a clustering run.
type Option func(*options)

// WithRand sets the random source used to pick initial centers (and
// replacement centers under EmptyClusterReseed). Takes precedence over WithSeed.
func WithRand(r RandomSource) Option {
	return func(o *options) {
		o.rand = r
	}
}

// WithSeed makes a run reproducible by seeding a math/rand source.
// Without it, runs are seeded from the clock and the seed is logged.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithMaxIterations caps the number of update steps. The run fails with
// *ErrNotConverged when the cap is reached. Zero disables the cap.
func WithMaxIterations(n int) Option {
	return func(o *options) {
		o.maxIterations = n
	}
}

// WithTimeout bounds the run's wall-clock time in addition to the context.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithEmptyClusterPolicy selects how a cluster that lost all members is handled.
func WithEmptyClusterPolicy(p EmptyClusterPolicy) Option {
	return func(o *options) {
		o.emptyClusterPolicy = p
	}
}

// WithMetricsCollector configures a metrics collector for monitoring runs.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &lloyd.BasicMetricsCollector{}
//	res, _ := lloyd.Cluster(ctx, ds, 3, lloyd.WithMetricsCollector(metrics))
//	stats := metrics.GetStats()
//	fmt.Printf("Iterations: %d, Avg run: %dns\n", stats.IterationCount, stats.RunAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for runs.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := lloyd.NewJSONLogger(os.Stderr, slog.LevelInfo)
//	res, _ := lloyd.Cluster(ctx, ds, 3, lloyd.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel logs text to stderr at or above level.
// Shorthand for WithLogger(NewTextLogger(os.Stderr, level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(os.Stderr, level)
	}
}

// WithIterationHook registers a callback invoked after every update step.
func WithIterationHook(fn func(Iteration)) Option {
	return func(o *options) {
		o.onIteration = fn
	}
}

// WithIterationCost computes the WCSS after every update step and reports it
// to the iteration hook, the logger and the metrics collector.
// Each computation costs an extra pass over the dataset.
func WithIterationCost(enabled bool) Option {
	return func(o *options) {
		o.iterationCost = enabled
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		seed:             time.Now().UnixNano(),
		maxIterations:    DefaultMaxIterations,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.rand == nil {
		o.rand = rand.New(rand.NewSource(o.seed)) //nolint:gosec // clustering needs no cryptographic randomness
	}
	return o
}

func (o *options) validate() error {
	if o.maxIterations < 0 {
		return fmt.Errorf("%w: max iterations must not be negative, got %d", ErrConfiguration, o.maxIterations)
	}
	if o.timeout < 0 {
		return fmt.Errorf("%w: timeout must not be negative, got %s", ErrConfiguration, o.timeout)
	}
	switch o.emptyClusterPolicy {
	case EmptyClusterFail, EmptyClusterReseed:
	default:
		return fmt.Errorf("%w: unknown empty cluster policy %d", ErrConfiguration, o.emptyClusterPolicy)
	}
	return nil
}
