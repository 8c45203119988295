package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/urfave/cli/v2"

	"github.com/hupe1980/lloyd"
	"github.com/hupe1980/lloyd/codec"
	"github.com/hupe1980/lloyd/dataset"
	"github.com/hupe1980/lloyd/resource"
)

func clusterCommand() *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:    "source",
			Aliases: []string{"s"},
			Usage:   "CSV blob to cluster; a trailing / loads every blob under the prefix",
			EnvVars: []string{"LLOYD_SOURCE"},
		},
		&cli.IntFlag{
			Name:     "k",
			Usage:    "Number of clusters (0 < k < number of points)",
			Required: true,
			EnvVars:  []string{"LLOYD_K"},
		},
		&cli.Int64Flag{
			Name:    "seed",
			Usage:   "Seed for the initial centers (default: clock)",
			EnvVars: []string{"LLOYD_SEED"},
		},
		&cli.IntFlag{
			Name:    "max-iter",
			Value:   lloyd.DefaultMaxIterations,
			Usage:   "Maximum number of update steps, 0 for unbounded",
			EnvVars: []string{"LLOYD_MAX_ITER"},
		},
		&cli.DurationFlag{
			Name:    "timeout",
			Usage:   "Abort the run after this long",
			EnvVars: []string{"LLOYD_TIMEOUT"},
		},
		&cli.StringFlag{
			Name:    "empty-policy",
			Value:   "fail",
			Usage:   "What to do with a cluster that loses all members: fail or reseed",
			EnvVars: []string{"LLOYD_EMPTY_POLICY"},
		},
		&cli.BoolFlag{
			Name:    "track-cost",
			Usage:   "Compute the cost after every update step",
			EnvVars: []string{"LLOYD_TRACK_COST"},
		},
		&cli.IntFlag{
			Name:    "columns",
			Usage:   "Use only the first N columns of every row (default: all)",
			EnvVars: []string{"LLOYD_COLUMNS"},
		},
		&cli.StringFlag{
			Name:    "comma",
			Value:   ",",
			Usage:   "Field delimiter",
			EnvVars: []string{"LLOYD_COMMA"},
		},
		&cli.BoolFlag{
			Name:    "header",
			Usage:   "Skip the first row of every blob",
			EnvVars: []string{"LLOYD_HEADER"},
		},
		&cli.Int64Flag{
			Name:    "max-concurrent-loads",
			Value:   4,
			Usage:   "Blobs fetched at once when loading a prefix",
			EnvVars: []string{"LLOYD_MAX_CONCURRENT_LOADS"},
		},
		&cli.Int64Flag{
			Name:    "memory-limit",
			Usage:   "Bytes of raw input held at once while parsing, 0 for unlimited",
			EnvVars: []string{"LLOYD_MEMORY_LIMIT"},
		},
		&cli.Int64Flag{
			Name:    "io-limit",
			Usage:   "Read throughput in bytes per second, 0 for unlimited",
			EnvVars: []string{"LLOYD_IO_LIMIT"},
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Value:   "-",
			Usage:   "Write the report to this file, - for stdout",
			EnvVars: []string{"LLOYD_OUTPUT"},
		},
		&cli.StringFlag{
			Name:    "upload",
			Usage:   "Also store the report as this blob in the source store, outside any source prefix",
			EnvVars: []string{"LLOYD_UPLOAD"},
		},
		&cli.StringFlag{
			Name:    "codec",
			Value:   "go-json",
			Usage:   "Report codec: json, go-json or yaml",
			EnvVars: []string{"LLOYD_CODEC"},
		},
		&cli.StringFlag{
			Name:    "metrics-file",
			Usage:   "Write Prometheus metrics to this textfile after the run",
			EnvVars: []string{"LLOYD_METRICS_FILE"},
		},
	}
	flags = append(flags, storeFlags()...)
	flags = append(flags, logFlags()...)

	return &cli.Command{
		Name:      "cluster",
		Usage:     "Partition the points of a CSV source into k clusters",
		UsageText: "lloyd cluster --source FILE|PREFIX/ --k N [--seed S] [--output FILE] [--store local|s3|minio|azure]",
		Flags:     flags,
		Action:    clusterAction,
	}
}

func clusterAction(cCtx *cli.Context) (err error) {
	ctx := cCtx.Context
	out := cCtx.App.Writer

	logger, err := newLogger(cCtx, cCtx.App.ErrWriter)
	if err != nil {
		return err
	}

	c, err := codec.Lookup(cCtx.String("codec"))
	if err != nil {
		return err
	}

	policy, err := lloyd.ParseEmptyClusterPolicy(cCtx.String("empty-policy"))
	if err != nil {
		return err
	}

	comma, size := utf8.DecodeRuneInString(cCtx.String("comma"))
	if size == 0 || size != len(cCtx.String("comma")) {
		return fmt.Errorf("--comma must be a single character")
	}

	if n := cCtx.Int("columns"); n < 0 {
		return fmt.Errorf("--columns must not be negative, got %d", n)
	}

	src, err := openSource(cCtx)
	if err != nil {
		return err
	}

	// A report stored under the loaded prefix would be read as a shard on the
	// next run.
	if name := cCtx.String("upload"); name != "" && src.prefix && strings.HasPrefix(name, src.name) {
		return fmt.Errorf("--upload %q is inside the source prefix %q", name, cCtx.String("source"))
	}

	metrics := newPromCollector()
	if path := cCtx.String("metrics-file"); path != "" {
		defer func() {
			if werr := metrics.WriteTextfile(path); werr != nil && err == nil {
				err = fmt.Errorf("write metrics: %w", werr)
			}
		}()
	}

	rc := resource.NewController(resource.Config{
		MemoryLimitBytes:   cCtx.Int64("memory-limit"),
		MaxConcurrentLoads: cCtx.Int64("max-concurrent-loads"),
		IOLimitBytesPerSec: cCtx.Int64("io-limit"),
	})

	loadOpts := []dataset.Option{
		dataset.WithColumns(cCtx.Int("columns")),
		dataset.WithComma(comma),
		dataset.WithController(rc),
		dataset.WithLoadHook(func(li dataset.LoadInfo) {
			metrics.RecordLoad(li.Points, li.Bytes, li.Duration, nil)
			logger.LogLoad(ctx, li.Source, li.Points, li.Bytes, nil)
		}),
	}
	if cCtx.Bool("header") {
		loadOpts = append(loadOpts, dataset.WithHeader())
	}

	start := time.Now()
	var ds *dataset.Dataset
	if src.prefix {
		ds, err = dataset.LoadAll(ctx, src.store, src.name, loadOpts...)
	} else {
		ds, err = dataset.Load(ctx, src.store, src.name, loadOpts...)
	}
	if err != nil {
		metrics.RecordLoad(0, 0, time.Since(start), err)
		logger.LogLoad(ctx, cCtx.String("source"), 0, 0, err)
		return err
	}
	logger.DebugContext(ctx, "load finished",
		"points", ds.Len(),
		"peak_memory_bytes", rc.Stats().PeakMemory,
		"duration", time.Since(start))

	opts := []lloyd.Option{
		lloyd.WithMaxIterations(cCtx.Int("max-iter")),
		lloyd.WithTimeout(cCtx.Duration("timeout")),
		lloyd.WithEmptyClusterPolicy(policy),
		lloyd.WithIterationCost(cCtx.Bool("track-cost")),
		lloyd.WithLogger(logger),
		lloyd.WithMetricsCollector(metrics),
	}
	if cCtx.IsSet("seed") {
		opts = append(opts, lloyd.WithSeed(cCtx.Int64("seed")))
	}

	res, err := lloyd.Cluster(ctx, ds, cCtx.Int("k"), opts...)
	if err != nil {
		return err
	}

	data, err := res.Report().Encode(c)
	if err != nil {
		return err
	}

	if name := cCtx.String("upload"); name != "" {
		if err := src.store.Put(ctx, name, data); err != nil {
			return fmt.Errorf("upload report: %w", err)
		}
	}

	if path := cCtx.String("output"); path != "-" {
		if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // G306: reports are not secret
			return fmt.Errorf("write report: %w", err)
		}
		_, err := fmt.Fprintf(out, "clustered %d points into %d clusters in %d iterations, cost %g\n",
			ds.Len(), res.K(), res.Iterations, res.Cost)
		return err
	}

	return writeLine(out, data)
}

func writeLine(w io.Writer, data []byte) error {
	if _, err := w.Write(data); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
