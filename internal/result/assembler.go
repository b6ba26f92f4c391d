// Package result turns a bootstrap distribution into an AnalysisResult.
package result

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"

	"bootstrapstats/domain/bootstrap"
	"bootstrapstats/domain/core"
	"bootstrapstats/internal/numeric"
)

const (
	// DisplayPlaces is the rounding applied to every reported scalar
	DisplayPlaces = 4

	DefaultPreviewSize = 50
	MaxPreviewSize     = 100
)

// Outcome is what a procedure hands to the assembler
type Outcome struct {
	Spec         bootstrap.EstimatorSpec
	Estimate     float64
	Distribution []float64 // Sorted ascending
	Skipped      int
}

// Assembler packages outcomes. It holds no per-run state and is safe for
// concurrent use.
type Assembler struct {
	previewSize int
}

// NewAssembler creates an assembler; previewSize is clamped to [1, MaxPreviewSize]
// and zero selects DefaultPreviewSize
func NewAssembler(previewSize int) *Assembler {
	return &Assembler{previewSize: ClampPreviewSize(previewSize)}
}

// ClampPreviewSize normalizes a requested preview length
func ClampPreviewSize(n int) int {
	switch {
	case n == 0:
		return DefaultPreviewSize
	case n < 1:
		return 1
	case n > MaxPreviewSize:
		return MaxPreviewSize
	}
	return n
}

// PreviewSize returns the configured preview length
func (a *Assembler) PreviewSize() int { return a.previewSize }

// Assemble derives summary fields, intervals and the verdict from o
func (a *Assembler) Assemble(o Outcome) (*bootstrap.AnalysisResult, error) {
	dist := o.Distribution
	if len(dist) == 0 {
		return nil, core.NewDegenerateError("bootstrap distribution is empty")
	}
	if !sort.Float64sAreSorted(dist) {
		return nil, fmt.Errorf("assemble: distribution must be sorted")
	}

	bootMean, err := numeric.Mean(dist)
	if err != nil {
		return nil, err
	}
	stdErr := 0.0
	if len(dist) > 1 {
		if stdErr, err = numeric.Std(dist); err != nil {
			return nil, err
		}
	}
	if err := requireFinite("estimate", o.Estimate); err != nil {
		return nil, err
	}
	if err := requireFinite("bootstrap mean", bootMean); err != nil {
		return nil, err
	}
	if err := requireFinite("standard error", stdErr); err != nil {
		return nil, err
	}

	res := &bootstrap.AnalysisResult{
		Analysis:      o.Spec.Analysis,
		Statistic:     o.Spec.Statistic,
		Estimate:      display(o.Estimate),
		BootstrapMean: display(bootMean),
		StdError:      display(stdErr),
		Replicates:    len(dist),
		Skipped:       o.Skipped,
	}

	var primary *bootstrap.Interval
	for _, level := range o.Spec.Levels {
		pct, err := PercentileInterval(dist, level)
		if err != nil {
			return nil, err
		}
		if err := requireFinite("interval bound", pct.Lower, pct.Upper); err != nil {
			return nil, err
		}
		if primary == nil {
			p := pct
			primary = &p
		}
		res.Intervals = append(res.Intervals, roundInterval(pct))
	}
	for _, level := range o.Spec.Levels {
		normal := NormalInterval(bootMean, stdErr, level)
		if err := requireFinite("interval bound", normal.Lower, normal.Upper); err != nil {
			return nil, err
		}
		res.Intervals = append(res.Intervals, roundInterval(normal))
	}

	if o.Spec.Verdict && primary != nil {
		significant := primary.ExcludesZero()
		res.Significant = &significant
	}

	n := a.previewSize
	if n > len(dist) {
		n = len(dist)
	}
	res.Preview = make([]float64, n)
	for i := 0; i < n; i++ {
		res.Preview[i] = display(dist[i])
	}

	return res, nil
}

// PercentileInterval reads the (1-level)/2 and (1+level)/2 quantiles off a
// sorted distribution, e.g. 2.5/97.5 for level 0.95
func PercentileInterval(sorted []float64, level float64) (bootstrap.Interval, error) {
	if level <= 0 || level >= 1 {
		return bootstrap.Interval{}, core.NewInvalidInputError("confidence level", fmt.Sprintf("%v outside (0,1)", level))
	}
	// Snap to 1e-9 so 0.90 maps to exactly 5 and 95 rather than 4.999...
	alpha := math.Round((1-level)*50*1e9) / 1e9
	lower, err := numeric.PercentileSorted(sorted, alpha)
	if err != nil {
		return bootstrap.Interval{}, err
	}
	upper, err := numeric.PercentileSorted(sorted, 100-alpha)
	if err != nil {
		return bootstrap.Interval{}, err
	}
	return bootstrap.Interval{Level: level, Method: bootstrap.MethodPercentile, Lower: lower, Upper: upper}, nil
}

// NormalInterval is center ± z·stdErr with z from the standard normal
func NormalInterval(center, stdErr float64, level float64) bootstrap.Interval {
	z := distuv.UnitNormal.Quantile(1 - (1-level)/2)
	margin := z * stdErr
	return bootstrap.Interval{Level: level, Method: bootstrap.MethodNormal, Lower: center - margin, Upper: center + margin}
}

func roundInterval(iv bootstrap.Interval) bootstrap.Interval {
	iv.Lower = display(iv.Lower)
	iv.Upper = display(iv.Upper)
	return iv
}

// display rounds to DisplayPlaces and folds -0 into 0
func display(v float64) float64 {
	r := numeric.Round(v, DisplayPlaces)
	if r == 0 {
		return 0
	}
	return r
}

func requireFinite(name string, values ...float64) error {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return core.NewDegenerateError(name + " is not finite")
		}
	}
	return nil
}
