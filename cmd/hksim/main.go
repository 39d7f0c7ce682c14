// hksim simulates a Hegselmann-Krause bounded-confidence opinion model and
// writes per-sample cluster records to a data file.

package main

import (
	"fmt"
	"os"

	"github.com/npillmayer/hk"
	"github.com/npillmayer/hk/report"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/urfave/cli/v2"
)

func main() {
	gtrace.CoreTracer = gologadapter.New()

	app := &cli.App{
		Name:   "hksim",
		Usage:  "simulate a Hegselmann-Krause model",
		Action: simulate,
	}

	app.Flags = []cli.Flag{
		&cli.IntFlag{
			Name:     "num-agents",
			Aliases:  []string{"n"},
			Usage:    "number of interacting agents",
			Required: true,
		},
		&cli.Float64Flag{
			Name:    "min-confidence",
			Aliases: []string{"l"},
			Usage:   "minimum confidence of agents (uniformly distributed)",
			Value:   0.0,
		},
		&cli.Float64Flag{
			Name:    "max-confidence",
			Aliases: []string{"u"},
			Usage:   "maximum confidence of agents (uniformly distributed)",
			Value:   1.0,
		},
		&cli.Uint64Flag{
			Name:    "seed",
			Aliases: []string{"s"},
			Usage:   "seed to use for the simulation",
			Value:   1,
		},
		&cli.IntFlag{
			Name:  "samples",
			Usage: "number of times to repeat the simulation",
			Value: 1,
		},
		&cli.StringFlag{
			Name:    "outname",
			Aliases: []string{"o"},
			Usage:   "name of the output data file",
			Value:   "out",
		},
		&cli.StringFlag{
			Name:  "policy",
			Usage: "update sequencing within a sweep (synchronous|sequential)",
			Value: "synchronous",
		},
		&cli.BoolFlag{
			Name:  "naive",
			Usage: "use the quadratic reference sweep instead of the tree sweep",
		},
		&cli.IntFlag{
			Name:  "max-sweeps",
			Usage: "abort a sample after this many sweeps (0 means no bound)",
			Value: 0,
		},
		&cli.BoolFlag{
			Name:  "report",
			Usage: "render the final sample to the terminal",
		},
	}

	app.RunAndExitOnError()
}

func simulate(cctx *cli.Context) error {
	policy, err := hk.ParsePolicy(cctx.String("policy"))
	if err != nil {
		return err
	}
	model, err := hk.New(hk.Config{
		N:             cctx.Int("num-agents"),
		MinConfidence: cctx.Float64("min-confidence"),
		MaxConfidence: cctx.Float64("max-confidence"),
		Seed:          cctx.Uint64("seed"),
		Policy:        policy,
	})
	if err != nil {
		return err
	}
	defer model.Close()

	output, err := os.Create(cctx.String("outname"))
	if err != nil {
		return err
	}
	defer output.Close()

	samples := cctx.Int("samples")
	maxSweeps := cctx.Int("max-sweeps")
	naive := cctx.Bool("naive")
	for sample := 0; sample < samples; sample++ {
		if sample > 0 {
			if err := model.Reset(); err != nil {
				return err
			}
		}
		if err := runSample(model, naive, maxSweeps); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(output, "# sweeps: %d\n", model.Sweeps()); err != nil {
			return err
		}
		if err := model.WriteClusterSizes(output); err != nil {
			return err
		}
	}

	if cctx.Bool("report") {
		console := report.NewConsole(nil)
		return console.Render(os.Stdout, model)
	}
	return nil
}

func runSample(model *hk.Model, naive bool, maxSweeps int) error {
	if !naive {
		_, err := model.Run(maxSweeps)
		return err
	}
	for {
		if err := model.SweepNaive(); err != nil {
			return err
		}
		if model.Converged() {
			return nil
		}
		if maxSweeps > 0 && model.Sweeps() >= maxSweeps {
			return nil
		}
	}
}
