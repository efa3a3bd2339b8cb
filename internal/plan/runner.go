package plan

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/lox/seededrand/pcg"
	"github.com/lox/seededrand/sample"
	"github.com/lox/seededrand/seed"
)

// Config holds configuration for running plans
type Config struct {
	// DefaultSeed is used when the plan does not name a seed
	DefaultSeed seed.Spec
	Logger      *log.Logger
}

// Runner executes plans. Each step is its own session: a fresh generator on
// the plan's seed, with the step index added to the stream so that steps are
// independent of each other and of their order in the file.
type Runner struct {
	config Config
	logger *log.Logger
}

// NewRunner creates a runner with the given configuration
func NewRunner(config Config) *Runner {
	logger := config.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{config: config, logger: logger}
}

// Sample is one drawn value. Label is set for categorical steps, Values for
// numeric ones.
type Sample struct {
	Step   string    `json:"step"`
	Index  int       `json:"index"`
	Label  string    `json:"label,omitempty"`
	Values []float64 `json:"values,omitempty"`
}

// Result holds the samples of one step
type Result struct {
	Step    string   `json:"step"`
	Kind    string   `json:"kind"`
	Stream  uint64   `json:"stream"`
	Samples []Sample `json:"samples"`
}

// Run executes every step of p in order
func (r *Runner) Run(ctx context.Context, p *Plan) ([]Result, error) {
	spec, err := p.SeedSpec(r.config.DefaultSeed)
	if err != nil {
		return nil, err
	}
	base, ok := spec.Stream()
	if !ok {
		base = pcg.DefaultStream
	}
	r.logger.Debug("Running plan", "seed", spec, "steps", len(p.Steps))

	results := make([]Result, 0, len(p.Steps))
	for i, step := range p.Steps {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("plan interrupted before step %q: %w", step.Name, err)
		}

		stream := base + uint64(i)
		src := pcg.NewWithStream(spec.Seed(), stream)
		samples, err := runStep(src, step)
		if err != nil {
			return nil, fmt.Errorf("step %q: %w", step.Name, err)
		}
		r.logger.Debug("Step complete", "step", step.Name, "kind", step.Kind, "samples", len(samples))

		results = append(results, Result{
			Step:    step.Name,
			Kind:    step.Kind,
			Stream:  stream,
			Samples: samples,
		})
	}
	return results, nil
}

// runStep converts sampling panics into errors so a bad plan can never crash
// the caller.
func runStep(src *pcg.PCG64, step Step) (samples []Sample, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			if e, ok := rec.(error); ok {
				err = e
				return
			}
			panic(rec)
		}
	}()

	for i := 0; i < step.Count; i++ {
		s := Sample{Step: step.Name, Index: i}
		switch step.Kind {
		case KindUniform:
			s.Values = []float64{sample.UniformReal(src, *step.Min, *step.Max)}
		case KindInt:
			lo, hi, err := step.IntRange()
			if err != nil {
				return nil, err
			}
			v := sample.UniformInt(src, lo, hi)
			s.Values = []float64{float64(v)}
			s.Label = strconv.FormatInt(v, 10)
		case KindPick:
			s.Label = sample.PickOne(src, step.Options)
		case KindWeighted:
			s.Label = step.Options[sample.PickWeighted(src, step.Weights)]
		case KindShuffle:
			order := append([]string(nil), step.Options...)
			sample.Shuffle(src, order)
			s.Label = fmt.Sprint(order)
		case KindRect:
			pt := sample.PointInRectangle(src, sample.NewRect(step.Rect[0], step.Rect[1], step.Rect[2], step.Rect[3]))
			s.Values = []float64{pt.X, pt.Y}
		case KindDisc:
			center := sample.Point{X: step.Center[0], Y: step.Center[1]}
			rr := sample.RadiusRange{Min: step.MinRadius, Max: step.MaxRadius}
			var pt sample.Point
			if step.AreaExact {
				pt = sample.PointInAnnulus(src, center, rr)
			} else {
				pt = sample.PointAtDistance(src, center, rr)
			}
			s.Values = []float64{pt.X, pt.Y}
		case KindCircle:
			pt := sample.PointOnCircle(src, sample.Point{X: step.Center[0], Y: step.Center[1]}, step.MaxRadius)
			s.Values = []float64{pt.X, pt.Y}
		case KindLerp:
			s.Values = sample.Interpolate(src, sample.Vector(step.From), sample.Vector(step.Towards))
		case KindWords:
			w := src.Next()
			s.Label = fmt.Sprintf("0x%016x", w)
		default:
			return nil, fmt.Errorf("unknown kind %q", step.Kind)
		}
		samples = append(samples, s)
	}
	return samples, nil
}
