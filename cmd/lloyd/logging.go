package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/urfave/cli/v2"

	"github.com/hupe1980/lloyd"
)

func newLogger(cCtx *cli.Context, w io.Writer) (*lloyd.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cCtx.String("log-level"))); err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	switch format := cCtx.String("log-format"); format {
	case "text":
		return lloyd.NewTextLogger(w, level), nil
	case "json":
		return lloyd.NewJSONLogger(w, level), nil
	default:
		return nil, fmt.Errorf("invalid --log-format %q (want text or json)", format)
	}
}
