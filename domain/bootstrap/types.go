package bootstrap

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"bootstrapstats/domain/core"
)

// DefaultReplicates is the number of resamples drawn per analysis
const DefaultReplicates = 1000

// Sample is an ordered sequence of finite observations
type Sample []float64

// Len returns the number of observations
func (s Sample) Len() int { return len(s) }

// Clone returns an independent copy
func (s Sample) Clone() Sample {
	if s == nil {
		return nil
	}
	out := make(Sample, len(s))
	copy(out, s)
	return out
}

// Validate checks that the sample is non-empty and every entry is finite
func (s Sample) Validate(field string) error {
	if len(s) == 0 {
		return fmt.Errorf("%s: %w", field, core.ErrEmptySample)
	}
	for i, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return core.NewInvalidInputError(field, fmt.Sprintf("has non-finite value at index %d", i))
		}
	}
	return nil
}

// AnalysisID selects one procedure from the catalog
type AnalysisID int

const (
	AnalysisMean                 AnalysisID = 1
	AnalysisMeanDifference       AnalysisID = 2
	AnalysisProportion           AnalysisID = 3
	AnalysisCorrelation          AnalysisID = 4
	AnalysisMedian               AnalysisID = 5
	AnalysisVarianceRatio        AnalysisID = 6
	AnalysisRegression           AnalysisID = 7
	AnalysisProportionDifference AnalysisID = 8
	AnalysisParametric           AnalysisID = 9
	AnalysisBlockVolatility      AnalysisID = 10
)

var allAnalyses = []AnalysisID{
	AnalysisMean,
	AnalysisMeanDifference,
	AnalysisProportion,
	AnalysisCorrelation,
	AnalysisMedian,
	AnalysisVarianceRatio,
	AnalysisRegression,
	AnalysisProportionDifference,
	AnalysisParametric,
	AnalysisBlockVolatility,
}

// AllAnalyses returns every catalogued analysis in display order
func AllAnalyses() []AnalysisID {
	out := make([]AnalysisID, len(allAnalyses))
	copy(out, allAnalyses)
	return out
}

// Known reports whether the id belongs to the catalog
func (id AnalysisID) Known() bool {
	for _, a := range allAnalyses {
		if a == id {
			return true
		}
	}
	return false
}

func (id AnalysisID) String() string { return strconv.Itoa(int(id)) }

// ParseAnalysisID parses a catalog identifier such as "4"
func ParseAnalysisID(s string) (AnalysisID, error) {
	trimmed := strings.TrimSpace(s)
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, core.NewUnsupportedAnalysisError(strconv.Quote(trimmed), "not a catalog identifier")
	}
	id := AnalysisID(n)
	if !id.Known() {
		return 0, core.NewUnsupportedAnalysisError(trimmed, "not in catalog")
	}
	return id, nil
}

// ResamplerKind names the resampling policy a procedure uses
type ResamplerKind string

const (
	ResamplerIID         ResamplerKind = "iid"
	ResamplerPairedIndex ResamplerKind = "paired_index"
	ResamplerBlock       ResamplerKind = "block"
	ResamplerNone        ResamplerKind = "none"
)

// EstimatorSpec describes how a procedure is assembled
type EstimatorSpec struct {
	Analysis            AnalysisID    `json:"analysis"`
	Statistic           string        `json:"statistic"`            // Short field stem, e.g. "mean", "corr"
	Resampler           ResamplerKind `json:"resampler"`
	Levels              []float64     `json:"levels"`               // Confidence levels, e.g. 0.95
	RequiresSecond      bool          `json:"requires_second"`
	RequiresEqualLength bool          `json:"requires_equal_length"`
	Verdict             bool          `json:"verdict"`              // Zero-exclusion significance verdict
	Implemented         bool          `json:"implemented"`
}

// IntervalMethod distinguishes how interval bounds were derived
type IntervalMethod string

const (
	MethodPercentile IntervalMethod = "percentile"
	MethodNormal     IntervalMethod = "normal"
)

// Interval is a two-sided confidence interval
type Interval struct {
	Level  float64        `json:"level"`
	Method IntervalMethod `json:"method"`
	Lower  float64        `json:"lower"`
	Upper  float64        `json:"upper"`
}

// Label returns the display name, e.g. "ci95" or "ci90_normal"
func (i Interval) Label() string {
	label := fmt.Sprintf("ci%d", int(math.Round(i.Level*100)))
	if i.Method == MethodNormal {
		label += "_normal"
	}
	return label
}

// Contains reports whether v lies within the closed interval
func (i Interval) Contains(v float64) bool {
	return v >= i.Lower && v <= i.Upper
}

// ExcludesZero reports whether both bounds are strictly on the same side of zero
func (i Interval) ExcludesZero() bool {
	return (i.Lower > 0 && i.Upper > 0) || (i.Lower < 0 && i.Upper < 0)
}

// AnalysisResult is the packaged outcome of one bootstrap run
type AnalysisResult struct {
	RunID         core.RunID     `json:"run_id"`
	Analysis      AnalysisID     `json:"analysis"`
	Statistic     string         `json:"statistic"`
	Estimate      float64        `json:"estimate"`       // Statistic on the original sample(s)
	BootstrapMean float64        `json:"bootstrap_mean"` // Mean of the bootstrap distribution
	StdError      float64        `json:"std_error"`      // Std deviation of the bootstrap distribution
	Intervals     []Interval     `json:"intervals"`
	Significant   *bool          `json:"significant,omitempty"`
	Replicates    int            `json:"replicates"` // Values in the distribution
	Skipped       int            `json:"skipped,omitempty"`
	Preview       []float64      `json:"preview"` // Leading sorted distribution values
	Seed          *int64         `json:"seed,omitempty"`
	InputHash     core.Hash      `json:"input_hash"`
	CompletedAt   core.Timestamp `json:"completed_at"`
}

// Field is one named display value
type Field struct {
	Name  string      `json:"name"`
	Value interface{} `json:"value"`
}

// Fields returns the named-field view of the result in display order
func (r *AnalysisResult) Fields() []Field {
	fields := []Field{
		{Name: "original_" + r.Statistic, Value: r.Estimate},
		{Name: "bootstrap_" + r.Statistic, Value: r.BootstrapMean},
		{Name: "std_error", Value: r.StdError},
	}
	for _, iv := range r.Intervals {
		fields = append(fields, Field{Name: iv.Label(), Value: []float64{iv.Lower, iv.Upper}})
	}
	if r.Significant != nil {
		fields = append(fields, Field{Name: "significant", Value: *r.Significant})
	}
	fields = append(fields, Field{Name: "replicates", Value: r.Replicates})
	if r.Skipped > 0 {
		fields = append(fields, Field{Name: "skipped", Value: r.Skipped})
	}
	return fields
}

// Interval returns the interval with the given label
func (r *AnalysisResult) Interval(label string) (Interval, bool) {
	for _, iv := range r.Intervals {
		if iv.Label() == label {
			return iv, true
		}
	}
	return Interval{}, false
}

// PrimaryInterval returns the first percentile interval
func (r *AnalysisResult) PrimaryInterval() (Interval, bool) {
	for _, iv := range r.Intervals {
		if iv.Method == MethodPercentile {
			return iv, true
		}
	}
	return Interval{}, false
}
