package main

import (
	"fmt"

	"github.com/lox/seededrand/cmd/seededrand/shared"
	"github.com/lox/seededrand/internal/check"
)

// CheckCmd runs the statistical self-check suite
type CheckCmd struct {
	SeedFlags
	Samples     int     `default:"20000" help:"Samples per distribution check"`
	Seeds       int     `default:"10000" help:"Seeds per property check"`
	Alpha       float64 `default:"0.01" help:"Significance level for goodness-of-fit tests"`
	Parallelism int     `short:"j" default:"0" help:"Maximum concurrent checks (0 for unlimited)"`
}

func (c *CheckCmd) Run(g *Globals) error {
	logger := g.Logger()

	cfg := check.DefaultConfig()
	cfg.Samples = c.Samples
	cfg.Seeds = c.Seeds
	cfg.Alpha = c.Alpha
	cfg.Parallelism = c.Parallelism
	cfg.Logger = shared.SetupRunnerLogger(g.logLevel())
	if c.Seed != "" || c.Stream != nil {
		spec, err := c.Spec(g.Env)
		if err != nil {
			return err
		}
		cfg.Seed = spec
	}

	ctx, cancel := shared.SetupSignalHandler(logger)
	defer cancel()

	logger.Debug().Stringer("seed", cfg.Seed).Int("samples", cfg.Samples).Int("seeds", cfg.Seeds).Msg("Running checks")
	report, err := check.New(cfg).Run(ctx)
	if err != nil {
		return err
	}
	if err := renderReport(g.out(), report); err != nil {
		return err
	}

	if !report.Passed() {
		failed := 0
		for _, r := range report.Results {
			if !r.Passed {
				failed++
			}
		}
		return fmt.Errorf("%d checks failed", failed)
	}
	return nil
}
