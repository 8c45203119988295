package main

import (
	"math"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// promCollector implements lloyd.MetricsCollector on a private registry so
// the metrics can be written to a node_exporter textfile at exit.
type promCollector struct {
	registry *prometheus.Registry

	runs          *prometheus.CounterVec
	runDuration   prometheus.Histogram
	iterations    prometheus.Gauge
	pointsChanged prometheus.Counter
	cost          prometheus.Gauge
	loads         *prometheus.CounterVec
	loadedPoints  prometheus.Counter
	loadedBytes   prometheus.Counter
	loadDuration  prometheus.Histogram
}

func newPromCollector() *promCollector {
	c := &promCollector{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lloyd_runs_total",
			Help: "Total clustering runs",
		}, []string{"status"}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "lloyd_run_duration_seconds",
			Help:    "Wall-clock time of clustering runs",
			Buckets: prometheus.DefBuckets,
		}),
		iterations: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "lloyd_iterations",
			Help: "Update steps performed by the last run",
		}),
		pointsChanged: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lloyd_points_changed_total",
			Help: "Total label changes across all update steps",
		}),
		cost: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "lloyd_cost",
			Help: "Within-cluster sum of squared distances after the last tracked update",
		}),
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lloyd_loads_total",
			Help: "Total blob loads",
		}, []string{"status"}),
		loadedPoints: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lloyd_loaded_points_total",
			Help: "Total points loaded",
		}),
		loadedBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lloyd_loaded_bytes_total",
			Help: "Total stored bytes loaded",
		}),
		loadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "lloyd_load_duration_seconds",
			Help:    "Time to fetch and parse a blob",
			Buckets: prometheus.DefBuckets,
		}),
	}

	c.registry.MustRegister(
		c.runs,
		c.runDuration,
		c.iterations,
		c.pointsChanged,
		c.cost,
		c.loads,
		c.loadedPoints,
		c.loadedBytes,
		c.loadDuration,
	)
	return c
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func (c *promCollector) RecordRun(k, iterations int, d time.Duration, err error) {
	c.runs.WithLabelValues(status(err)).Inc()
	c.runDuration.Observe(d.Seconds())
	c.iterations.Set(float64(iterations))
}

func (c *promCollector) RecordIteration(changed int, cost float64) {
	c.pointsChanged.Add(float64(changed))
	if !math.IsNaN(cost) {
		c.cost.Set(cost)
	}
}

func (c *promCollector) RecordLoad(points int, bytes int64, d time.Duration, err error) {
	c.loads.WithLabelValues(status(err)).Inc()
	c.loadDuration.Observe(d.Seconds())
	if err != nil {
		return
	}
	c.loadedPoints.Add(float64(points))
	c.loadedBytes.Add(float64(bytes))
}

// WriteTextfile writes all metrics in the Prometheus text format.
func (c *promCollector) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}
