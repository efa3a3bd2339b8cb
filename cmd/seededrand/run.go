package main

import (
	"fmt"
	"strconv"

	"github.com/lox/seededrand/cmd/seededrand/shared"
	"github.com/lox/seededrand/internal/export"
	"github.com/lox/seededrand/internal/plan"
)

// RunCmd executes a sampling plan
type RunCmd struct {
	SeedFlags
	Plan   string `arg:"" type:"existingfile" help:"Plan file (.hcl, .yaml or .yml)"`
	Out    string `short:"o" help:"Write results to this file instead of stdout"`
	Format string `short:"f" enum:"auto,table,csv,json" default:"auto" help:"Output format: auto, table, csv or json"`
}

func (c *RunCmd) Validate() error {
	if c.Out != "" && c.Format == "table" {
		return fmt.Errorf("table output cannot be written to a file, use csv or json")
	}
	return nil
}

func (c *RunCmd) Run(g *Globals) error {
	logger := g.Logger()

	p, err := plan.Load(c.Plan)
	if err != nil {
		return err
	}
	// command-line seeds beat the plan's own
	if c.Seed != "" {
		p.Seed = c.Seed
	}
	if c.Stream != nil {
		p.Stream = strconv.FormatUint(*c.Stream, 10)
	}

	def, err := SeedFlags{}.Spec(g.Env)
	if err != nil {
		return err
	}
	runner := plan.NewRunner(plan.Config{
		DefaultSeed: def,
		Logger:      shared.SetupRunnerLogger(g.logLevel()),
	})

	ctx, cancel := shared.SetupSignalHandler(logger)
	defer cancel()

	results, err := runner.Run(ctx, p)
	if err != nil {
		return err
	}
	logger.Debug().Str("plan", c.Plan).Int("steps", len(results)).Msg("Plan complete")

	format := c.Format
	if format == "auto" {
		format = "table"
		if c.Out != "" {
			format = string(export.FormatFor(c.Out))
		}
	}

	if c.Out != "" {
		if err := export.WriteFile(c.Out, export.Format(format), results); err != nil {
			return err
		}
		logger.Info().Str("path", c.Out).Str("format", format).Msg("Wrote results")
		return nil
	}
	if format == "table" {
		return renderResults(g.out(), results)
	}
	return export.Encode(g.out(), export.Format(format), results)
}
