package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lox/seededrand/internal/randutil"
	"github.com/lox/seededrand/pcg"
	"github.com/lox/seededrand/sample"
)

// SampleCmd groups the one-shot samplers
type SampleCmd struct {
	Uniform SampleUniformCmd `cmd:"" help:"Reals in a closed interval"`
	Int     SampleIntCmd     `cmd:"" name:"int" help:"Integers in a closed interval"`
	Pick    SamplePickCmd    `cmd:"" help:"Choose among options, optionally weighted"`
	Rect    SampleRectCmd    `cmd:"" help:"Points in an axis-aligned rectangle"`
	Disc    SampleDiscCmd    `cmd:"" help:"Points in a disc or annulus"`
	Normal  SampleNormalCmd  `cmd:"" help:"Normally distributed reals"`
}

// SampleFlags are shared by every sampler
type SampleFlags struct {
	SeedFlags
	Count int `short:"n" default:"1" help:"Number of samples"`
}

// session resolves the seed and runs draw once per sample, turning sampling
// precondition panics into errors.
func (f SampleFlags) session(g *Globals, kind string, draw func(src *pcg.PCG64) string) (err error) {
	spec, err := f.Spec(g.Env)
	if err != nil {
		return err
	}
	logger := g.Logger()
	logger.Debug().Str("kind", kind).Stringer("seed", spec).Int("count", f.Count).Msg("Sampling")

	defer func() {
		if rec := recover(); rec != nil {
			e, ok := rec.(error)
			if !ok {
				panic(rec)
			}
			err = fmt.Errorf("%s: %w", kind, e)
		}
	}()

	src := spec.New()
	return writeLines(g.out(), f.Count, func() string { return draw(src) })
}

func writeLines(w io.Writer, n int, line func() string) error {
	for i := 0; i < n; i++ {
		if _, err := io.WriteString(w, line()+"\n"); err != nil {
			return err
		}
	}
	return nil
}

func formatFloats(values ...float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, "\t")
}

type SampleUniformCmd struct {
	SampleFlags
	Min float64 `default:"0" help:"Lower bound (inclusive)"`
	Max float64 `default:"1" help:"Upper bound (inclusive)"`
}

func (c *SampleUniformCmd) Run(g *Globals) error {
	return c.session(g, "uniform", func(src *pcg.PCG64) string {
		return formatFloats(sample.UniformReal(src, c.Min, c.Max))
	})
}

type SampleIntCmd struct {
	SampleFlags
	Min int64 `default:"1" help:"Lower bound (inclusive)"`
	Max int64 `default:"6" help:"Upper bound (inclusive)"`
}

func (c *SampleIntCmd) Run(g *Globals) error {
	return c.session(g, "int", func(src *pcg.PCG64) string {
		return strconv.FormatInt(sample.UniformInt(src, c.Min, c.Max), 10)
	})
}

type SamplePickCmd struct {
	SampleFlags
	Options []string  `arg:"" help:"Options to choose from"`
	Weights []float64 `short:"w" help:"Comma-separated weights, one per option"`
}

func (c *SamplePickCmd) Validate() error {
	if len(c.Weights) > 0 && len(c.Weights) != len(c.Options) {
		return fmt.Errorf("got %d weights for %d options", len(c.Weights), len(c.Options))
	}
	return nil
}

func (c *SamplePickCmd) Run(g *Globals) error {
	return c.session(g, "pick", func(src *pcg.PCG64) string {
		if len(c.Weights) > 0 {
			return c.Options[sample.PickWeighted(src, c.Weights)]
		}
		return sample.PickOne(src, c.Options)
	})
}

type SampleRectCmd struct {
	SampleFlags
	Bounds []float64 `default:"0,0,1,1" help:"Rectangle as min_x,min_y,max_x,max_y"`
}

func (c *SampleRectCmd) Validate() error {
	if len(c.Bounds) != 4 {
		return errors.New("--bounds needs exactly four values")
	}
	return nil
}

func (c *SampleRectCmd) Run(g *Globals) error {
	r := sample.NewRect(c.Bounds[0], c.Bounds[1], c.Bounds[2], c.Bounds[3])
	return c.session(g, "rect", func(src *pcg.PCG64) string {
		p := sample.PointInRectangle(src, r)
		return formatFloats(p.X, p.Y)
	})
}

type SampleDiscCmd struct {
	SampleFlags
	Center    []float64 `default:"0,0" help:"Center as x,y"`
	MinRadius float64   `default:"0" help:"Inner radius"`
	MaxRadius float64   `default:"1" help:"Outer radius"`
	Exact     bool      `help:"Keep annuli area-uniform when the inner radius is positive"`
}

func (c *SampleDiscCmd) Validate() error {
	if len(c.Center) != 2 {
		return errors.New("--center needs exactly two values")
	}
	if c.MinRadius < 0 || c.MaxRadius < c.MinRadius {
		return fmt.Errorf("need 0 <= min-radius <= max-radius, got %g and %g", c.MinRadius, c.MaxRadius)
	}
	return nil
}

func (c *SampleDiscCmd) Run(g *Globals) error {
	center := sample.Point{X: c.Center[0], Y: c.Center[1]}
	radius := sample.RadiusRange{Min: c.MinRadius, Max: c.MaxRadius}
	return c.session(g, "disc", func(src *pcg.PCG64) string {
		var p sample.Point
		if c.Exact {
			p = sample.PointInAnnulus(src, center, radius)
		} else {
			p = sample.PointAtDistance(src, center, radius)
		}
		return formatFloats(p.X, p.Y)
	})
}

// SampleNormalCmd draws through math/rand/v2 on top of the seeded generator
type SampleNormalCmd struct {
	SeedFlags
	Count  int     `short:"n" default:"1" help:"Number of samples"`
	Mean   float64 `default:"0" help:"Mean"`
	StdDev float64 `name:"stddev" default:"1" help:"Standard deviation"`
}

func (c *SampleNormalCmd) Run(g *Globals) error {
	spec, err := c.Spec(g.Env)
	if err != nil {
		return err
	}
	rng := randutil.FromSpec(spec)
	return writeLines(g.out(), c.Count, func() string {
		return formatFloats(c.Mean + c.StdDev*rng.NormFloat64())
	})
}
