package plan

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/seededrand/pcg"
	"github.com/lox/seededrand/sample"
	"github.com/lox/seededrand/seed"
)

func TestLoadHCLAndYAMLAgree(t *testing.T) {
	fromHCL, err := Load(filepath.Join("testdata", "showcase.hcl"))
	require.NoError(t, err)
	fromYAML, err := Load(filepath.Join("testdata", "showcase.yaml"))
	require.NoError(t, err)

	assert.Equal(t, fromHCL, fromYAML)
	require.Len(t, fromHCL.Steps, 6)
	assert.Equal(t, "jitter", fromHCL.Steps[0].Name)
	assert.Equal(t, 1, fromHCL.Steps[4].Count, "count defaults to 1")
	assert.Equal(t, -1.0, *fromHCL.Steps[0].Min)
}

func TestParseUnsupportedFormat(t *testing.T) {
	_, err := Parse([]byte("{}"), "plan.json")
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestParseHCLSyntaxError(t *testing.T) {
	_, err := Parse([]byte(`step "x" {`), "bad.hcl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse HCL")
}

func TestValidateCollectsErrors(t *testing.T) {
	src := `
seed = "bogus:1"
step "a" { kind = "pick" }
step "a" {
  kind = "rect"
  rect = [1, 2]
}
step "c" { kind = "teleport" }
`
	_, err := Parse([]byte(src), "bad.hcl")
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "invalid seed spec")
	assert.Contains(t, msg, "options must not be empty")
	assert.Contains(t, msg, "duplicate name")
	assert.Contains(t, msg, "rect must be")
	assert.Contains(t, msg, `unknown kind "teleport"`)
}

func TestRunDeterministic(t *testing.T) {
	p, err := Load(filepath.Join("testdata", "showcase.hcl"))
	require.NoError(t, err)

	r := NewRunner(Config{})
	first, err := r.Run(context.Background(), p)
	require.NoError(t, err)
	second, err := r.Run(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	require.Len(t, first, 6)
	for _, s := range first[0].Samples {
		assert.True(t, s.Values[0] >= -1 && s.Values[0] <= 1)
	}
	for _, s := range first[1].Samples {
		assert.Contains(t, []string{"red", "green", "blue"}, s.Label)
	}
	for _, s := range first[3].Samples {
		d := sample.Point{X: s.Values[0], Y: s.Values[1]}.Distance(sample.Point{X: 10, Y: -10})
		assert.True(t, d >= 2-1e-9 && d <= 8+1e-9, "distance %f", d)
	}
	for _, s := range first[5].Samples {
		assert.True(t, s.Values[0] >= 1 && s.Values[0] <= 6)
	}
}

func TestRunStepsAreIndependent(t *testing.T) {
	p, err := Load(filepath.Join("testdata", "showcase.hcl"))
	require.NoError(t, err)
	full, err := NewRunner(Config{}).Run(context.Background(), p)
	require.NoError(t, err)

	// growing the first step must not disturb the second
	p.Steps[0].Count = 500
	grown, err := NewRunner(Config{}).Run(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, full[1], grown[1])
}

func TestRunFirstStepMatchesSeedSession(t *testing.T) {
	p := &Plan{Seed: "0x2288", Steps: []Step{{Name: "w", Kind: KindWords, Count: 1}}}
	require.NoError(t, p.Validate())

	results, err := NewRunner(Config{}).Run(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, uint64(pcg.DefaultStream), results[0].Stream)

	want := seed.Fixed(0x2288).New().Next()
	assert.Equal(t, want, parseHex(t, results[0].Samples[0].Label))
}

func TestRunUsesDefaultSeed(t *testing.T) {
	p := &Plan{Steps: []Step{{Name: "w", Kind: KindWords, Count: 1}}}
	results, err := NewRunner(Config{DefaultSeed: seed.Fixed(0).WithStream(0)}).Run(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, "0x9361e1e0d2e4ecd5", mustRun(t, &Plan{Seed: "0x2288@0", Steps: p.Steps})[0].Samples[0].Label)
	assert.Equal(t, pcg.NewWithStream(0, 0).Next(), parseHex(t, results[0].Samples[0].Label))
}

func TestRunCancelled(t *testing.T) {
	p, err := Load(filepath.Join("testdata", "showcase.yaml"))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewRunner(Config{}).Run(ctx, p)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRunWeightedAndShuffle(t *testing.T) {
	src := `
step "loot" {
  kind    = "weighted"
  count   = 50
  options = ["common", "rare", "never"]
  weights = [9, 1, 0]
}
step "deal" {
  kind    = "shuffle"
  options = ["a", "b", "c"]
}
`
	p, err := Parse([]byte(src), "loot.hcl")
	require.NoError(t, err)
	results, err := NewRunner(Config{}).Run(context.Background(), p)
	require.NoError(t, err)
	for _, s := range results[0].Samples {
		assert.NotEqual(t, "never", s.Label)
	}
	assert.Len(t, results[1].Samples, 1)
}

func mustRun(t *testing.T, p *Plan) []Result {
	t.Helper()
	results, err := NewRunner(Config{}).Run(context.Background(), p)
	require.NoError(t, err)
	return results
}

func parseHex(t *testing.T, s string) uint64 {
	t.Helper()
	spec, err := seed.Parse(s)
	require.NoError(t, err)
	return spec.Value
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.hcl"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestStepIntRange(t *testing.T) {
	f := func(v float64) *float64 { return &v }
	tests := []struct {
		name    string
		min     *float64
		max     *float64
		lo, hi  int64
		wantErr string
	}{
		{name: "whole", min: f(1), max: f(6), lo: 1, hi: 6},
		{name: "fractional bounds", min: f(0.5), max: f(3.5), lo: 1, hi: 3},
		{name: "reversed", min: f(6), max: f(1), lo: 1, hi: 6},
		{name: "single integer", min: f(1.5), max: f(2.5), lo: 2, hi: 2},
		{name: "no integer", min: f(1.5), max: f(1.7), wantErr: "no integer"},
		{name: "infinite", min: f(0), max: f(math.Inf(1)), wantErr: "finite"},
		{name: "nan", min: f(math.NaN()), max: f(1), wantErr: "finite"},
		{name: "too large", min: f(0), max: f(1e19), wantErr: "int64"},
		{name: "too small", min: f(-1e19), max: f(0), wantErr: "int64"},
		{name: "missing", max: f(1), wantErr: "required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi, err := Step{Kind: KindInt, Min: tt.min, Max: tt.max}.IntRange()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.lo, lo)
			assert.Equal(t, tt.hi, hi)
		})
	}
}

func TestValidateRejectsEmptyIntRange(t *testing.T) {
	src := `
step "roll" {
  kind = "int"
  min  = 1.5
  max  = 1.7
}
`
	_, err := Parse([]byte(src), "roll.hcl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no integer between 1.5 and 1.7")
}

func TestRunIntStaysInRange(t *testing.T) {
	lo, hi := 1.5, 2.5
	p := &Plan{Steps: []Step{{Name: "roll", Kind: KindInt, Count: 50, Min: &lo, Max: &hi}}}
	results := mustRun(t, p)
	for _, s := range results[0].Samples {
		assert.Equal(t, "2", s.Label)
	}

	empty, top := 1.5, 1.7
	p = &Plan{Steps: []Step{{Name: "roll", Kind: KindInt, Count: 1, Min: &empty, Max: &top}}}
	_, err := NewRunner(Config{}).Run(context.Background(), p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no integer")
}
