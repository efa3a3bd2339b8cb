package statistics

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"
)

// ErrNoSamples is returned by goodness-of-fit tests given nothing to test.
var ErrNoSamples = errors.New("no samples")

// CDF is a cumulative distribution function.
type CDF func(x float64) float64

// UniformCDF returns the CDF of the continuous uniform distribution on
// [min, max].
func UniformCDF(min, max float64) CDF {
	return distuv.Uniform{Min: min, Max: max}.CDF
}

// FitResult reports a goodness-of-fit statistic and its p-value.
type FitResult struct {
	Statistic float64
	PValue    float64
	N         int
}

// Reject reports whether the null hypothesis is rejected at level alpha.
func (r FitResult) Reject(alpha float64) bool {
	return r.PValue < alpha
}

// KolmogorovSmirnov runs the one-sample KS test of values against cdf. The
// p-value uses the asymptotic Kolmogorov distribution with Stephens'
// small-sample correction.
func KolmogorovSmirnov(values []float64, cdf CDF) (FitResult, error) {
	n := len(values)
	if n == 0 {
		return FitResult{}, ErrNoSamples
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	d := 0.0
	for i, x := range sorted {
		f := cdf(x)
		lo := f - float64(i)/float64(n)
		hi := float64(i+1)/float64(n) - f
		d = math.Max(d, math.Max(lo, hi))
	}

	sqrtN := math.Sqrt(float64(n))
	lambda := (sqrtN + 0.12 + 0.11/sqrtN) * d
	return FitResult{Statistic: d, PValue: kolmogorovSurvival(lambda), N: n}, nil
}

// kolmogorovSurvival returns P(K > lambda) for the Kolmogorov distribution.
func kolmogorovSurvival(lambda float64) float64 {
	if lambda < 1e-3 {
		return 1
	}
	sum := 0.0
	sign := 1.0
	for k := 1; k <= 100; k++ {
		term := sign * math.Exp(-2*float64(k*k)*lambda*lambda)
		sum += term
		if math.Abs(term) < 1e-12 {
			break
		}
		sign = -sign
	}
	p := 2 * sum
	return math.Min(1, math.Max(0, p))
}

// ChiSquareUniform tests whether counts are consistent with every bucket
// being equally likely.
func ChiSquareUniform(counts []int) (FitResult, error) {
	total := 0
	for _, c := range counts {
		total += c
	}
	if len(counts) < 2 || total == 0 {
		return FitResult{}, ErrNoSamples
	}
	expected := float64(total) / float64(len(counts))
	chi := 0.0
	for _, c := range counts {
		d := float64(c) - expected
		chi += d * d / expected
	}
	dist := distuv.ChiSquared{K: float64(len(counts) - 1)}
	return FitResult{Statistic: chi, PValue: dist.Survival(chi), N: total}, nil
}
