// Command lloyd clusters CSV points with Lloyd's k-means algorithm.
//
// Usage:
//
//	lloyd cluster --source points.csv --k 3 [--output report.json]
//	lloyd cluster --store s3 --bucket data --source shards/ --k 8
//	lloyd cost --report report.json
//
// Every flag can also be set through an LLOYD_* environment variable.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "lloyd:", err)
		stop()
		os.Exit(1)
	}
}
