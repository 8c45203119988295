package resource

import (
	"context"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// DefaultMaxConcurrentLoads is used when Config.MaxConcurrentLoads is not set.
const DefaultMaxConcurrentLoads = 4

// Config holds the limits of a Controller. Zero values mean "unlimited",
// except MaxConcurrentLoads which falls back to DefaultMaxConcurrentLoads.
type Config struct {
	// MemoryLimitBytes caps the raw blob bytes held by parsers at once.
	MemoryLimitBytes int64

	// MaxConcurrentLoads caps the blobs fetched at once.
	MaxConcurrentLoads int64

	// IOLimitBytesPerSec caps read throughput across all loads.
	IOLimitBytesPerSec int64
}

// Stats is a snapshot of a Controller's accounting.
type Stats struct {
	MemoryInUse   int64
	PeakMemory    int64
	LoadsInFlight int64
}

// Controller bounds the resources of dataset loading. It is safe for
// concurrent use; a nil *Controller imposes no limits.
type Controller struct {
	cfg Config

	mem     *semaphore.Weighted // nil when unlimited
	loads   *semaphore.Weighted
	limiter *rate.Limiter // nil when unlimited

	inUse    atomic.Int64
	peak     atomic.Int64
	inFlight atomic.Int64
}

// NewController returns a Controller enforcing cfg.
func NewController(cfg Config) *Controller {
	if cfg.MaxConcurrentLoads <= 0 {
		cfg.MaxConcurrentLoads = DefaultMaxConcurrentLoads
	}

	c := &Controller{
		cfg:   cfg,
		loads: semaphore.NewWeighted(cfg.MaxConcurrentLoads),
	}
	if cfg.MemoryLimitBytes > 0 {
		c.mem = semaphore.NewWeighted(cfg.MemoryLimitBytes)
	}
	if cfg.IOLimitBytesPerSec > 0 {
		// One second of throughput may be spent at once.
		c.limiter = rate.NewLimiter(rate.Limit(cfg.IOLimitBytesPerSec), int(cfg.IOLimitBytesPerSec))
	}
	return c
}

// Config returns the effective limits.
func (c *Controller) Config() Config {
	if c == nil {
		return Config{}
	}
	return c.cfg
}

// Reserve blocks until n bytes fit under the memory limit and returns a func
// that gives them back. A reservation larger than the limit waits for the
// whole budget instead of failing, so one oversized blob can still load on
// its own. Calling release more than once is a no-op.
func (c *Controller) Reserve(ctx context.Context, n int64) (release func(), err error) {
	if c == nil || n <= 0 {
		return func() {}, nil
	}

	weight := n
	if c.mem != nil {
		weight = min(n, c.cfg.MemoryLimitBytes)
		if err := c.mem.Acquire(ctx, weight); err != nil {
			return nil, err
		}
	}
	c.account(n)

	return c.releaser(func() {
		c.inUse.Add(-n)
		if c.mem != nil {
			c.mem.Release(weight)
		}
	}), nil
}

func (c *Controller) account(n int64) {
	used := c.inUse.Add(n)
	for {
		peak := c.peak.Load()
		if used <= peak || c.peak.CompareAndSwap(peak, used) {
			return
		}
	}
}

// Slot blocks until one of the MaxConcurrentLoads slots is free.
func (c *Controller) Slot(ctx context.Context) (release func(), err error) {
	if c == nil {
		return func() {}, nil
	}
	if err := c.loads.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	c.inFlight.Add(1)

	return c.releaser(func() {
		c.inFlight.Add(-1)
		c.loads.Release(1)
	}), nil
}

func (c *Controller) releaser(fn func()) func() {
	var once sync.Once
	return func() { once.Do(fn) }
}

// Stats returns the current accounting.
func (c *Controller) Stats() Stats {
	if c == nil {
		return Stats{}
	}
	return Stats{
		MemoryInUse:   c.inUse.Load(),
		PeakMemory:    c.peak.Load(),
		LoadsInFlight: c.inFlight.Load(),
	}
}

// waitIO blocks until n bytes may be read. n must not exceed burst().
func (c *Controller) waitIO(ctx context.Context, n int) error {
	if c == nil || c.limiter == nil {
		return nil
	}
	return c.limiter.WaitN(ctx, n)
}

func (c *Controller) burst() int {
	if c == nil || c.limiter == nil {
		return 0
	}
	return c.limiter.Burst()
}
