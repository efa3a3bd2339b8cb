// Package plan describes batches of sampling steps in HCL or YAML files and
// executes them reproducibly.
package plan

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"gopkg.in/yaml.v3"

	"github.com/lox/seededrand/seed"
)

// Step kinds
const (
	KindUniform  = "uniform"
	KindInt      = "int"
	KindPick     = "pick"
	KindWeighted = "weighted"
	KindRect     = "rect"
	KindDisc     = "disc"
	KindCircle   = "circle"
	KindLerp     = "lerp"
	KindShuffle  = "shuffle"
	KindWords    = "words"
)

// ErrUnsupportedFormat is returned for plan files that are neither HCL nor YAML.
var ErrUnsupportedFormat = errors.New("unsupported plan format")

// Plan is a seeded list of sampling steps
type Plan struct {
	Seed   string `hcl:"seed,optional" yaml:"seed"`
	Stream string `hcl:"stream,optional" yaml:"stream"`
	Steps  []Step `hcl:"step,block" yaml:"steps"`
}

// Step is one sampling session
type Step struct {
	Name  string `hcl:"name,label" yaml:"name"`
	Kind  string `hcl:"kind" yaml:"kind"`
	Count int    `hcl:"count,optional" yaml:"count"`

	// uniform, int
	Min *float64 `hcl:"min,optional" yaml:"min"`
	Max *float64 `hcl:"max,optional" yaml:"max"`

	// pick, weighted, shuffle
	Options []string  `hcl:"options,optional" yaml:"options"`
	Weights []float64 `hcl:"weights,optional" yaml:"weights"`

	// rect: [min_x, min_y, max_x, max_y]
	Rect []float64 `hcl:"rect,optional" yaml:"rect"`

	// disc, circle
	Center    []float64 `hcl:"center,optional" yaml:"center"`
	MinRadius float64   `hcl:"min_radius,optional" yaml:"min_radius"`
	MaxRadius float64   `hcl:"max_radius,optional" yaml:"max_radius"`
	AreaExact bool      `hcl:"area_exact,optional" yaml:"area_exact"`

	// lerp
	From    []float64 `hcl:"from,optional" yaml:"from"`
	Towards []float64 `hcl:"towards,optional" yaml:"towards"`
}

// Load reads a plan from an .hcl, .yaml or .yml file
func Load(filename string) (*Plan, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan: %w", err)
	}
	return Parse(data, filename)
}

// Parse decodes plan source, choosing the format from filename's extension
func Parse(data []byte, filename string) (*Plan, error) {
	var p Plan
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".hcl":
		parser := hclparse.NewParser()
		file, diags := parser.ParseHCL(data, filename)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
		}
		diags = gohcl.DecodeBody(file.Body, nil, &p)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("failed to decode YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filename)
	}

	p.applyDefaults()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

func (p *Plan) applyDefaults() {
	for i := range p.Steps {
		s := &p.Steps[i]
		s.Kind = strings.ToLower(strings.TrimSpace(s.Kind))
		if s.Count == 0 {
			s.Count = 1
		}
		if s.Kind == KindUniform && s.Min == nil && s.Max == nil {
			zero, one := 0.0, 1.0
			s.Min, s.Max = &zero, &one
		}
		if len(s.Center) == 0 && (s.Kind == KindDisc || s.Kind == KindCircle) {
			s.Center = []float64{0, 0}
		}
	}
}

// SeedSpec resolves the plan's seed and stream. An empty seed falls back to
// def.
func (p *Plan) SeedSpec(def seed.Spec) (seed.Spec, error) {
	spec := def
	if p.Seed != "" {
		var err error
		spec, err = seed.Parse(p.Seed)
		if err != nil {
			return seed.Spec{}, err
		}
	}
	if p.Stream != "" {
		stream, err := strconv.ParseUint(p.Stream, 0, 64)
		if err != nil {
			return seed.Spec{}, fmt.Errorf("invalid stream %q: %w", p.Stream, err)
		}
		spec = spec.WithStream(stream)
	}
	return spec, nil
}

// IntRange returns the integers covered by [min, max] for an int step, in
// either order. It fails when the interval holds no integer or does not fit
// in an int64.
func (s Step) IntRange() (lo, hi int64, err error) {
	if s.Min == nil || s.Max == nil {
		return 0, 0, errors.New("min and max are required")
	}
	a, b := math.Min(*s.Min, *s.Max), math.Max(*s.Min, *s.Max)
	if !isFinite(a) || !isFinite(b) {
		return 0, 0, errors.New("min and max must be finite")
	}
	ceil, floor := math.Ceil(a), math.Floor(b)
	if ceil > floor {
		return 0, 0, fmt.Errorf("no integer between %g and %g", *s.Min, *s.Max)
	}
	// -2^63 is exact in float64; 2^63 is the first value past MaxInt64
	if ceil < math.MinInt64 || floor >= 1<<63 {
		return 0, 0, fmt.Errorf("range %g to %g does not fit in int64", *s.Min, *s.Max)
	}
	return int64(ceil), int64(floor), nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Validate checks semantic constraints, reporting every problem at once
func (p *Plan) Validate() error {
	var errs []string

	if _, err := p.SeedSpec(seed.Fixed(0)); err != nil {
		errs = append(errs, err.Error())
	}
	if len(p.Steps) == 0 {
		errs = append(errs, "plan has no steps")
	}

	names := make(map[string]bool)
	for i, s := range p.Steps {
		where := fmt.Sprintf("step %d (%s)", i, s.Name)
		if s.Name == "" {
			errs = append(errs, fmt.Sprintf("step %d has no name", i))
		} else if names[s.Name] {
			errs = append(errs, where+": duplicate name")
		}
		names[s.Name] = true

		if s.Count < 0 {
			errs = append(errs, where+": count must be >= 0")
		}

		switch s.Kind {
		case KindUniform, KindInt:
			if s.Min == nil || s.Max == nil {
				errs = append(errs, where+": min and max are required")
				break
			}
			if !isFinite(*s.Min) || !isFinite(*s.Max) {
				errs = append(errs, where+": min and max must be finite")
				break
			}
			if s.Kind == KindInt {
				if _, _, err := s.IntRange(); err != nil {
					errs = append(errs, where+": "+err.Error())
				}
			}
		case KindPick, KindShuffle:
			if len(s.Options) == 0 {
				errs = append(errs, where+": options must not be empty")
			}
		case KindWeighted:
			if len(s.Options) == 0 || len(s.Options) != len(s.Weights) {
				errs = append(errs, where+": options and weights must be non-empty and the same length")
			}
			total := 0.0
			for j, w := range s.Weights {
				if w < 0 {
					errs = append(errs, fmt.Sprintf("%s: weights[%d] must be >= 0", where, j))
				}
				total += w
			}
			if total <= 0 {
				errs = append(errs, where+": weights must sum to more than 0")
			}
		case KindRect:
			if len(s.Rect) != 4 {
				errs = append(errs, where+": rect must be [min_x, min_y, max_x, max_y]")
			}
		case KindDisc, KindCircle:
			if len(s.Center) != 2 {
				errs = append(errs, where+": center must be [x, y]")
			}
			if s.MinRadius < 0 || s.MaxRadius < 0 {
				errs = append(errs, where+": radii must be >= 0")
			}
			if s.Kind == KindDisc && s.MinRadius > s.MaxRadius {
				errs = append(errs, where+": min_radius must not exceed max_radius")
			}
		case KindLerp:
			if len(s.From) == 0 || len(s.From) != len(s.Towards) {
				errs = append(errs, where+": from and towards must be non-empty and the same length")
			}
		case KindWords:
		default:
			errs = append(errs, fmt.Sprintf("%s: unknown kind %q", where, s.Kind))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("plan validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
