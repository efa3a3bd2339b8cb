// Package check runs the statistical self-checks that guard the generator
// and sampling layers against regressions.
package check

import (
	"context"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/seededrand/internal/statistics"
	"github.com/lox/seededrand/pcg"
	"github.com/lox/seededrand/sample"
	"github.com/lox/seededrand/seed"
)

// Config holds configuration for a check run
type Config struct {
	Samples     int       // samples per distribution check
	Seeds       int       // seeds per property check
	Alpha       float64   // significance level for goodness-of-fit tests
	Seed        seed.Spec // base seed; every check derives its own session from it
	Parallelism int       // max concurrent checks, 0 means unlimited
	Clock       quartz.Clock
	Logger      *log.Logger
}

// DefaultConfig returns the configuration used by `seededrand check`
func DefaultConfig() Config {
	return Config{
		Samples: 20000,
		Seeds:   10000,
		Alpha:   0.01,
		Seed:    seed.Fixed(0x2288),
	}
}

// Result is the outcome of one check
type Result struct {
	Name     string
	Passed   bool
	Detail   string
	Duration time.Duration
}

// Report collects every result of a run
type Report struct {
	Results []Result
	Elapsed time.Duration
}

// Passed reports whether every check passed
func (r Report) Passed() bool {
	for _, res := range r.Results {
		if !res.Passed {
			return false
		}
	}
	return true
}

type checkFunc func(cfg Config, src *pcg.PCG64) (bool, string)

type namedCheck struct {
	name string
	fn   checkFunc
}

var checks = []namedCheck{
	{"pinned words", checkPinnedWords},
	{"determinism", checkDeterminism},
	{"decorrelation", checkDecorrelation},
	{"stream oddness", checkStreamOddness},
	{"range closure", checkRangeClosure},
	{"unit uniformity", checkUnitUniform},
	{"index uniformity", checkIndexUniform},
	{"disc area uniformity", checkDiscArea},
	{"interpolation endpoints", checkLerpEndpoints},
}

// Suite runs the checks
type Suite struct {
	config Config
	clock  quartz.Clock
	logger *log.Logger
}

// New creates a suite, filling unset fields from DefaultConfig
func New(config Config) *Suite {
	def := DefaultConfig()
	if config.Samples <= 0 {
		config.Samples = def.Samples
	}
	if config.Seeds <= 0 {
		config.Seeds = def.Seeds
	}
	if config.Alpha <= 0 {
		config.Alpha = def.Alpha
	}
	clock := config.Clock
	if clock == nil {
		clock = quartz.NewReal()
	}
	logger := config.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Suite{config: config, clock: clock, logger: logger}
}

// Names lists the checks in run order
func Names() []string {
	names := make([]string, len(checks))
	for i, c := range checks {
		names[i] = c.name
	}
	return names
}

// Run executes every check concurrently. Each goroutine owns its generator,
// derived from the configured seed and the check's position.
func (s *Suite) Run(ctx context.Context) (Report, error) {
	start := s.clock.Now()
	results := make([]Result, len(checks))

	g, ctx := errgroup.WithContext(ctx)
	if s.config.Parallelism > 0 {
		g.SetLimit(s.config.Parallelism)
	}

	var mu sync.Mutex
	for i, c := range checks {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			begin := s.clock.Now()
			src := pcg.NewWithStream(s.config.Seed.Seed(), uint64(i))
			passed, detail := c.fn(s.config, src)
			res := Result{Name: c.name, Passed: passed, Detail: detail, Duration: s.clock.Since(begin)}

			mu.Lock()
			results[i] = res
			mu.Unlock()

			if passed {
				s.logger.Debug("Check passed", "check", c.name, "detail", detail)
			} else {
				s.logger.Warn("Check failed", "check", c.name, "detail", detail)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, fmt.Errorf("check run aborted: %w", err)
	}

	return Report{Results: results, Elapsed: s.clock.Since(start)}, nil
}

func checkPinnedWords(Config, *pcg.PCG64) (bool, string) {
	want := []uint64{0x9361e1e0d2e4ecd5, 0x2e0124112e8673f7, 0x1f92dfd8947bf03b}
	gen := pcg.NewWithStream(0x2288, 0)
	for i, w := range want {
		if got := gen.Next(); got != w {
			return false, fmt.Sprintf("word %d: got %#x, want %#x", i, got, w)
		}
	}
	return true, "seed 0x2288 stream 0 matches reference"
}

func checkDeterminism(cfg Config, src *pcg.PCG64) (bool, string) {
	for i := 0; i < cfg.Seeds; i++ {
		s := src.Next()
		a, b := pcg.New(s), pcg.New(s)
		for j := 0; j < 16; j++ {
			if a.Next() != b.Next() {
				return false, fmt.Sprintf("seed %#x diverged at word %d", s, j)
			}
		}
	}
	return true, fmt.Sprintf("%d seeds replayed", cfg.Seeds)
}

func checkDecorrelation(cfg Config, src *pcg.PCG64) (bool, string) {
	for i := 0; i < cfg.Seeds; i++ {
		s, seq := src.Next(), src.Next()
		gen := pcg.NewWithStream(s, seq)
		identical := true
		for j := 0; j < 4; j++ {
			w := gen.Next()
			if uint32(w>>32) != uint32(w) {
				identical = false
				break
			}
		}
		if identical {
			return false, fmt.Sprintf("seed %#x stream %#x halves identical", s, seq)
		}
	}
	return true, fmt.Sprintf("%d equal-stream generators diverge", cfg.Seeds)
}

func checkStreamOddness(cfg Config, src *pcg.PCG64) (bool, string) {
	for i := 0; i < cfg.Seeds; i++ {
		low, high := pcg.NewPCG64(0, 0, src.Next(), src.Next()).Streams()
		if low&1 == 0 || high&1 == 0 {
			return false, fmt.Sprintf("even stream %#x/%#x", low, high)
		}
	}
	return true, fmt.Sprintf("%d stream pairs odd", cfg.Seeds)
}

func checkRangeClosure(cfg Config, src *pcg.PCG64) (bool, string) {
	for i := 0; i < cfg.Seeds; i++ {
		a := sample.UniformReal(src, -1e9, 1e9)
		b := sample.UniformReal(src, -1e9, 1e9)
		if i%10 == 0 {
			b = a
		}
		v := sample.UniformReal(pcg.New(uint64(i)), a, b)
		if v < math.Min(a, b) || v > math.Max(a, b) || (a == b && v != a) {
			return false, fmt.Sprintf("UniformReal(%g, %g) = %g", a, b, v)
		}
	}
	return true, fmt.Sprintf("%d ranges closed", cfg.Seeds)
}

func checkUnitUniform(cfg Config, src *pcg.PCG64) (bool, string) {
	values := make([]float64, cfg.Samples)
	for i := range values {
		values[i] = sample.Unit(src)
	}
	return fit(cfg, values, statistics.UniformCDF(0, 1))
}

func checkIndexUniform(cfg Config, src *pcg.PCG64) (bool, string) {
	counts := make([]int, 10)
	for i := 0; i < cfg.Samples; i++ {
		counts[sample.Index(src, len(counts))]++
	}
	res, err := statistics.ChiSquareUniform(counts)
	if err != nil {
		return false, err.Error()
	}
	return !res.Reject(cfg.Alpha), fmt.Sprintf("chi2=%.3f p=%.4f", res.Statistic, res.PValue)
}

func checkDiscArea(cfg Config, src *pcg.PCG64) (bool, string) {
	const radius = 3.0
	center := sample.Point{X: -1, Y: 2}
	squared := make([]float64, cfg.Samples)
	for i := range squared {
		d := sample.PointAtDistance(src, center, sample.RadiusRange{Max: radius}).Distance(center)
		squared[i] = d * d
	}
	return fit(cfg, squared, statistics.UniformCDF(0, radius*radius))
}

func checkLerpEndpoints(cfg Config, src *pcg.PCG64) (bool, string) {
	for i := 0; i < cfg.Seeds; i++ {
		from := sample.Color{R: sample.Unit(src), G: sample.Unit(src), B: sample.Unit(src), A: 1}
		towards := sample.Color{R: sample.Unit(src), G: sample.Unit(src), B: sample.Unit(src), A: 0}
		if from.Lerp(towards, 0) != from || from.Lerp(towards, 1) != towards {
			return false, fmt.Sprintf("endpoints drifted for %+v -> %+v", from, towards)
		}
	}
	return true, fmt.Sprintf("%d colour pairs exact", cfg.Seeds)
}

func fit(cfg Config, values []float64, cdf statistics.CDF) (bool, string) {
	res, err := statistics.KolmogorovSmirnov(values, cdf)
	if err != nil {
		return false, err.Error()
	}
	return !res.Reject(cfg.Alpha), fmt.Sprintf("D=%.5f p=%.4f n=%d", res.Statistic, res.PValue, res.N)
}
