// Package numeric provides the descriptive statistics the bootstrap engine
// recomputes on every resample. Functions never mutate their inputs.
package numeric

import (
	"fmt"
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"bootstrapstats/domain/core"
)

// Regression holds ordinary least squares coefficients
type Regression struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
}

// Mean returns the arithmetic mean
func Mean(s []float64) (float64, error) {
	if len(s) == 0 {
		return 0, fmt.Errorf("mean: %w", core.ErrEmptySample)
	}
	return stats.Mean(s)
}

// Variance returns the sample variance (n-1 denominator)
func Variance(s []float64) (float64, error) {
	if len(s) == 0 {
		return 0, fmt.Errorf("variance: %w", core.ErrEmptySample)
	}
	if len(s) < 2 {
		return 0, core.NewInvalidInputError("variance", "needs at least 2 observations")
	}
	return stats.SampleVariance(s)
}

// Std returns the sample standard deviation
func Std(s []float64) (float64, error) {
	if len(s) == 0 {
		return 0, fmt.Errorf("std: %w", core.ErrEmptySample)
	}
	if len(s) < 2 {
		return 0, core.NewInvalidInputError("std", "needs at least 2 observations")
	}
	return stats.StandardDeviationSample(s)
}

// Median returns the middle value, or the average of the two middle values
// for even lengths
func Median(s []float64) (float64, error) {
	if len(s) == 0 {
		return 0, fmt.Errorf("median: %w", core.ErrEmptySample)
	}
	return stats.Median(s)
}

// Percentile returns the p-th percentile (p in [0,100]) using linear
// interpolation between the closest ranks of a sorted copy
func Percentile(s []float64, p float64) (float64, error) {
	if len(s) == 0 {
		return 0, fmt.Errorf("percentile: %w", core.ErrEmptySample)
	}
	sorted := make([]float64, len(s))
	copy(sorted, s)
	sort.Float64s(sorted)
	return PercentileSorted(sorted, p)
}

// PercentileSorted is Percentile for input already sorted ascending
func PercentileSorted(sorted []float64, p float64) (float64, error) {
	if len(sorted) == 0 {
		return 0, fmt.Errorf("percentile: %w", core.ErrEmptySample)
	}
	if math.IsNaN(p) || p < 0 || p > 100 {
		return 0, core.NewInvalidInputError("percentile", fmt.Sprintf("%v outside [0,100]", p))
	}

	idx := p / 100 * float64(len(sorted)-1)
	lower := int(math.Floor(idx))
	upper := int(math.Ceil(idx))
	return sorted[lower] + (idx-float64(lower))*(sorted[upper]-sorted[lower]), nil
}

// Correlation returns Pearson's product-moment correlation. A constant
// series has no defined correlation and yields core.ErrDegenerate.
func Correlation(x, y []float64) (float64, error) {
	if err := checkPaired(x, y); err != nil {
		return 0, fmt.Errorf("correlation: %w", err)
	}
	if isConstant(x) || isConstant(y) {
		return 0, core.NewDegenerateError("correlation of a constant series")
	}
	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, core.NewDegenerateError("correlation denominator is zero")
	}
	// Clamp rounding overshoot so perfect relationships report exactly ±1.
	return math.Max(-1, math.Min(1, r)), nil
}

// LinearRegression fits y = Intercept + Slope*x by ordinary least squares
func LinearRegression(x, y []float64) (Regression, error) {
	if err := checkPaired(x, y); err != nil {
		return Regression{}, fmt.Errorf("regression: %w", err)
	}
	if isConstant(x) {
		return Regression{}, core.NewDegenerateError("regression on a constant predictor")
	}
	alpha, beta := stat.LinearRegression(x, y, nil, false)
	return Regression{Slope: beta, Intercept: alpha}, nil
}

// Proportion returns the share of entries equal to v
func Proportion(s []float64, v float64) (float64, error) {
	if len(s) == 0 {
		return 0, fmt.Errorf("proportion: %w", core.ErrEmptySample)
	}
	hits := 0
	for _, x := range s {
		if x == v {
			hits++
		}
	}
	return float64(hits) / float64(len(s)), nil
}

// Round rounds half away from zero to the given number of decimal places
func Round(v float64, places int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	r, err := stats.Round(v, places)
	if err != nil {
		return v
	}
	return r
}

func checkPaired(x, y []float64) error {
	if len(x) == 0 || len(y) == 0 {
		return core.ErrEmptySample
	}
	if len(x) != len(y) {
		return core.NewLengthMismatchError(len(x), len(y))
	}
	return nil
}

func isConstant(s []float64) bool {
	for _, v := range s[1:] {
		if v != s[0] {
			return false
		}
	}
	return true
}
