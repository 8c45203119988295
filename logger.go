package lloyd

import (
	"context"
	"io"
	"log/slog"
	"math"
)

// Logger is a slog.Logger with helpers for the events of a clustering run.
// Field names are stable so log pipelines can key on them.
type Logger struct {
	*slog.Logger
}

// NewLogger wraps handler. A nil handler discards everything.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.DiscardHandler
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewJSONLogger logs JSON lines at or above level to w.
func NewJSONLogger(w io.Writer, level slog.Leveler) *Logger {
	return NewLogger(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewTextLogger logs logfmt-style lines at or above level to w.
func NewTextLogger(w io.Writer, level slog.Leveler) *Logger {
	return NewLogger(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NoopLogger discards all output. It is the default of Cluster.
func NoopLogger() *Logger {
	return NewLogger(nil)
}

// WithRun annotates every record with the shape of a run under the "run" group.
func (l *Logger) WithRun(k, points, dimension int) *Logger {
	return &Logger{Logger: l.With(slog.Group("run",
		slog.Int("k", k),
		slog.Int("points", points),
		slog.Int("dimension", dimension),
	))}
}

// LogRun logs the outcome of a run.
func (l *Logger) LogRun(ctx context.Context, iterations int, cost float64, err error) {
	if err != nil {
		l.LogAttrs(ctx, slog.LevelError, "clustering failed",
			slog.Int("iterations", iterations),
			slog.Any("error", err))
		return
	}
	l.LogAttrs(ctx, slog.LevelInfo, "clustering converged",
		slog.Int("iterations", iterations),
		slog.Float64("cost", cost))
}

// LogIteration logs one update step at debug level. The cost is only
// present when per-iteration cost tracking is on.
func (l *Logger) LogIteration(ctx context.Context, it Iteration) {
	if !l.Enabled(ctx, slog.LevelDebug) {
		return
	}
	attrs := []slog.Attr{
		slog.Int("iteration", it.Iteration),
		slog.Int("changed", it.Changed),
	}
	if !math.IsNaN(it.Cost) {
		attrs = append(attrs, slog.Float64("cost", it.Cost))
	}
	l.LogAttrs(ctx, slog.LevelDebug, "iteration completed", attrs...)
}

// LogLoad logs the outcome of loading source.
func (l *Logger) LogLoad(ctx context.Context, source string, points int, bytes int64, err error) {
	if err != nil {
		l.LogAttrs(ctx, slog.LevelError, "load failed",
			slog.String("source", source),
			slog.Any("error", err))
		return
	}
	l.LogAttrs(ctx, slog.LevelInfo, "dataset loaded",
		slog.String("source", source),
		slog.Int("points", points),
		slog.Int64("bytes", bytes))
}
