package estimator

import (
	"errors"

	"bootstrapstats/domain/bootstrap"
	"bootstrapstats/domain/core"
	"bootstrapstats/internal/numeric"
	"bootstrapstats/internal/resample"
)

var (
	levels95 = []float64{0.95}
	levels90 = []float64{0.90}
)

// drawStatus tells the engine what to do with one replicate
type drawStatus int

const (
	drawAccepted drawStatus = iota
	drawSkipped             // counted toward the replicate budget, not recorded
	drawRetry               // degenerate draw, redrawn without consuming the budget
)

// input is the validated request payload handed to a procedure
type input struct {
	primary   []float64
	secondary []float64
	blockSize int
}

// Procedure is one catalog variant. The set is closed: only this package
// can implement it.
type Procedure interface {
	Spec() bootstrap.EstimatorSpec
	validate(in input) error
	estimate(in input) (float64, error)
	replicate(src resample.Source, in input) (float64, drawStatus, error)
}

// procedures lists every catalog variant, implemented or not
func procedures() []Procedure {
	return []Procedure{
		meanProcedure{},
		meanDifferenceProcedure{},
		proportionProcedure{},
		correlationProcedure{},
		medianProcedure{},
		varianceRatioProcedure{},
		unimplemented{id: bootstrap.AnalysisRegression, statistic: "slope", reason: "regression coefficients are not specified"},
		unimplemented{id: bootstrap.AnalysisProportionDifference, statistic: "prop_diff", reason: "difference of proportions is not specified"},
		unimplemented{id: bootstrap.AnalysisParametric, statistic: "rate", reason: "parametric exponential bootstrap is not specified"},
		blockVolatilityProcedure{},
	}
}

// Mean (1)

type meanProcedure struct{}

func (meanProcedure) Spec() bootstrap.EstimatorSpec {
	return bootstrap.EstimatorSpec{
		Analysis:    bootstrap.AnalysisMean,
		Statistic:   "mean",
		Resampler:   bootstrap.ResamplerIID,
		Levels:      levels95,
		Implemented: true,
	}
}

func (meanProcedure) validate(in input) error { return nil }

func (meanProcedure) estimate(in input) (float64, error) { return numeric.Mean(in.primary) }

func (meanProcedure) replicate(src resample.Source, in input) (float64, drawStatus, error) {
	draw, err := resample.IID(src, in.primary, 0)
	if err != nil {
		return 0, drawAccepted, err
	}
	v, err := numeric.Mean(draw)
	return v, drawAccepted, err
}

// Difference of means (2)

type meanDifferenceProcedure struct{}

func (meanDifferenceProcedure) Spec() bootstrap.EstimatorSpec {
	return bootstrap.EstimatorSpec{
		Analysis:       bootstrap.AnalysisMeanDifference,
		Statistic:      "diff",
		Resampler:      bootstrap.ResamplerIID,
		Levels:         levels95,
		RequiresSecond: true,
		Verdict:        true,
		Implemented:    true,
	}
}

func (meanDifferenceProcedure) validate(in input) error { return nil }

func (meanDifferenceProcedure) estimate(in input) (float64, error) {
	return meanDifference(in.primary, in.secondary)
}

func (meanDifferenceProcedure) replicate(src resample.Source, in input) (float64, drawStatus, error) {
	a, err := resample.IID(src, in.primary, 0)
	if err != nil {
		return 0, drawAccepted, err
	}
	b, err := resample.IID(src, in.secondary, 0)
	if err != nil {
		return 0, drawAccepted, err
	}
	v, err := meanDifference(a, b)
	return v, drawAccepted, err
}

func meanDifference(a, b []float64) (float64, error) {
	ma, err := numeric.Mean(a)
	if err != nil {
		return 0, err
	}
	mb, err := numeric.Mean(b)
	if err != nil {
		return 0, err
	}
	return ma - mb, nil
}

// Proportion of successes (3)

type proportionProcedure struct{}

// successValue marks a success in proportion data
const successValue = 1

func (proportionProcedure) Spec() bootstrap.EstimatorSpec {
	return bootstrap.EstimatorSpec{
		Analysis:    bootstrap.AnalysisProportion,
		Statistic:   "prop",
		Resampler:   bootstrap.ResamplerIID,
		Levels:      levels90,
		Implemented: true,
	}
}

func (proportionProcedure) validate(in input) error { return nil }

func (proportionProcedure) estimate(in input) (float64, error) {
	return numeric.Proportion(in.primary, successValue)
}

func (proportionProcedure) replicate(src resample.Source, in input) (float64, drawStatus, error) {
	draw, err := resample.IID(src, in.primary, 0)
	if err != nil {
		return 0, drawAccepted, err
	}
	v, err := numeric.Proportion(draw, successValue)
	return v, drawAccepted, err
}

// Pearson correlation (4)

type correlationProcedure struct{}

func (correlationProcedure) Spec() bootstrap.EstimatorSpec {
	return bootstrap.EstimatorSpec{
		Analysis:            bootstrap.AnalysisCorrelation,
		Statistic:           "corr",
		Resampler:           bootstrap.ResamplerPairedIndex,
		Levels:              levels95,
		RequiresSecond:      true,
		RequiresEqualLength: true,
		Implemented:         true,
	}
}

func (correlationProcedure) validate(in input) error { return nil }

func (correlationProcedure) estimate(in input) (float64, error) {
	return numeric.Correlation(in.primary, in.secondary)
}

func (correlationProcedure) replicate(src resample.Source, in input) (float64, drawStatus, error) {
	x, y, err := resample.PairedIndex(src, in.primary, in.secondary, 0)
	if err != nil {
		return 0, drawAccepted, err
	}
	r, err := numeric.Correlation(x, y)
	if errors.Is(err, core.ErrDegenerate) {
		return 0, drawRetry, nil
	}
	return r, drawAccepted, err
}

// Median (5)

type medianProcedure struct{}

func (medianProcedure) Spec() bootstrap.EstimatorSpec {
	return bootstrap.EstimatorSpec{
		Analysis:    bootstrap.AnalysisMedian,
		Statistic:   "median",
		Resampler:   bootstrap.ResamplerIID,
		Levels:      levels95,
		Implemented: true,
	}
}

func (medianProcedure) validate(in input) error { return nil }

func (medianProcedure) estimate(in input) (float64, error) { return numeric.Median(in.primary) }

func (medianProcedure) replicate(src resample.Source, in input) (float64, drawStatus, error) {
	draw, err := resample.IID(src, in.primary, 0)
	if err != nil {
		return 0, drawAccepted, err
	}
	v, err := numeric.Median(draw)
	return v, drawAccepted, err
}

// Variance ratio (6)

type varianceRatioProcedure struct{}

func (varianceRatioProcedure) Spec() bootstrap.EstimatorSpec {
	return bootstrap.EstimatorSpec{
		Analysis:       bootstrap.AnalysisVarianceRatio,
		Statistic:      "ratio",
		Resampler:      bootstrap.ResamplerIID,
		Levels:         levels95,
		RequiresSecond: true,
		Implemented:    true,
	}
}

func (varianceRatioProcedure) validate(in input) error {
	if len(in.primary) < 2 {
		return core.NewInvalidInputError("first sample", "needs at least 2 observations for a variance")
	}
	if len(in.secondary) < 2 {
		return core.NewInvalidInputError("second sample", "needs at least 2 observations for a variance")
	}
	return nil
}

func (varianceRatioProcedure) estimate(in input) (float64, error) {
	ratio, ok, err := varianceRatio(in.primary, in.secondary)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, core.NewDegenerateError("second sample has zero variance")
	}
	return ratio, nil
}

func (varianceRatioProcedure) replicate(src resample.Source, in input) (float64, drawStatus, error) {
	a, err := resample.IID(src, in.primary, 0)
	if err != nil {
		return 0, drawAccepted, err
	}
	b, err := resample.IID(src, in.secondary, 0)
	if err != nil {
		return 0, drawAccepted, err
	}
	ratio, ok, err := varianceRatio(a, b)
	if err != nil {
		return 0, drawAccepted, err
	}
	if !ok {
		return 0, drawSkipped, nil
	}
	return ratio, drawAccepted, nil
}

// varianceRatio reports ok=false when the denominator variance is zero
func varianceRatio(a, b []float64) (float64, bool, error) {
	va, err := numeric.Variance(a)
	if err != nil {
		return 0, false, err
	}
	vb, err := numeric.Variance(b)
	if err != nil {
		return 0, false, err
	}
	if vb == 0 {
		return 0, false, nil
	}
	return va / vb, true, nil
}

// Block bootstrap of the standard deviation (10)

type blockVolatilityProcedure struct{}

func (blockVolatilityProcedure) Spec() bootstrap.EstimatorSpec {
	return bootstrap.EstimatorSpec{
		Analysis:    bootstrap.AnalysisBlockVolatility,
		Statistic:   "volatility",
		Resampler:   bootstrap.ResamplerBlock,
		Levels:      levels95,
		Implemented: true,
	}
}

func (blockVolatilityProcedure) validate(in input) error {
	if len(in.primary) < 2 {
		return core.NewInvalidInputError("series", "needs at least 2 observations for a standard deviation")
	}
	return resample.CheckBlockSize(len(in.primary), in.blockSize)
}

func (blockVolatilityProcedure) estimate(in input) (float64, error) { return numeric.Std(in.primary) }

func (blockVolatilityProcedure) replicate(src resample.Source, in input) (float64, drawStatus, error) {
	draw, err := resample.Block(src, in.primary, in.blockSize)
	if err != nil {
		return 0, drawAccepted, err
	}
	v, err := numeric.Std(draw)
	return v, drawAccepted, err
}

// Catalogued but unimplemented (7, 8, 9)

type unimplemented struct {
	id        bootstrap.AnalysisID
	statistic string
	reason    string
}

func (u unimplemented) Spec() bootstrap.EstimatorSpec {
	return bootstrap.EstimatorSpec{
		Analysis:  u.id,
		Statistic: u.statistic,
		Resampler: bootstrap.ResamplerNone,
	}
}

func (u unimplemented) validate(in input) error {
	return core.NewUnsupportedAnalysisError(u.id.String(), u.reason)
}

func (u unimplemented) estimate(in input) (float64, error) {
	return 0, core.NewUnsupportedAnalysisError(u.id.String(), u.reason)
}

func (u unimplemented) replicate(src resample.Source, in input) (float64, drawStatus, error) {
	return 0, drawAccepted, core.NewUnsupportedAnalysisError(u.id.String(), u.reason)
}
