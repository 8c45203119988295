package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/hupe1980/lloyd"
	"github.com/hupe1980/lloyd/codec"
)

func costCommand() *cli.Command {
	return &cli.Command{
		Name:      "cost",
		Usage:     "Recompute the within-cluster sum of squared distances of a saved report",
		UsageText: "lloyd cost --report FILE [--codec json|go-json|yaml]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "report",
				Aliases:  []string{"r"},
				Usage:    "Report written by lloyd cluster",
				Required: true,
				EnvVars:  []string{"LLOYD_REPORT"},
			},
			&cli.StringFlag{
				Name:    "codec",
				Value:   "go-json",
				Usage:   "Report codec: json, go-json or yaml",
				EnvVars: []string{"LLOYD_CODEC"},
			},
		},
		Action: costAction,
	}
}

func costAction(cCtx *cli.Context) error {
	c, err := codec.Lookup(cCtx.String("codec"))
	if err != nil {
		return err
	}

	data, err := os.ReadFile(cCtx.String("report"))
	if err != nil {
		return err
	}

	rep, err := lloyd.DecodeReport(c, data)
	if err != nil {
		return err
	}

	cost, err := rep.TotalCost()
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(cCtx.App.Writer, "cost %g (recorded %g)\n", cost, rep.Cost)
	return err
}
