// Package catalog holds the display metadata for each bootstrap exercise.
package catalog

import (
	"bootstrapstats/domain/bootstrap"
)

// Exercise describes one catalog entry for presentation layers
type Exercise struct {
	ID          bootstrap.AnalysisID `json:"id"`
	Name        string               `json:"name"`
	Summary     string               `json:"summary"`
	Description string               `json:"description"` // Markdown
	Icon        string               `json:"icon"`
	Label1      string               `json:"label1"`
	Label2      string               `json:"label2,omitempty"` // Empty when no second sample is taken
}

// HasSecondInput reports whether the exercise asks for a second sample
func (e Exercise) HasSecondInput() bool { return e.Label2 != "" }

var exercises = []Exercise{
	{
		ID:      bootstrap.AnalysisMean,
		Name:    "Mean Estimation",
		Summary: "Confidence interval for the population mean",
		Description: "Resamples the data with replacement and recomputes the **mean** each time.\n\n" +
			"The 2.5th and 97.5th percentiles of the bootstrap distribution form a 95% interval.",
		Icon:   "📊",
		Label1: "Data:",
	},
	{
		ID:      bootstrap.AnalysisMeanDifference,
		Name:    "Comparison of Two Means",
		Summary: "Significant difference between two systems",
		Description: "Resamples each system independently and records `mean(A) - mean(B)`.\n\n" +
			"The difference is flagged *significant* when the 95% interval excludes zero.",
		Icon:   "⚖️",
		Label1: "System A:",
		Label2: "System B:",
	},
	{
		ID:      bootstrap.AnalysisProportion,
		Name:    "Proportion Estimation",
		Summary: "Success rate of a medical treatment",
		Description: "Enter outcomes as `1` (success) and `0` (failure).\n\n" +
			"The share of ones is bootstrapped and reported with a 90% interval.",
		Icon:   "📈",
		Label1: "Data:",
	},
	{
		ID:      bootstrap.AnalysisCorrelation,
		Name:    "Bootstrap Correlation",
		Summary: "Correlation coefficient between two variables",
		Description: "Draws observation *pairs* so each x stays with its y, then recomputes Pearson's r.\n\n" +
			"Both variables must have the same number of observations.",
		Icon:   "🔗",
		Label1: "Study hours:",
		Label2: "Grades:",
	},
	{
		ID:          bootstrap.AnalysisMedian,
		Name:        "Median and Percentiles",
		Summary:     "Robust statistics with bootstrap",
		Description: "Bootstraps the **median**, which is less sensitive to outliers than the mean.",
		Icon:        "📏",
		Label1:      "Data:",
	},
	{
		ID:      bootstrap.AnalysisVarianceRatio,
		Name:    "Variance Ratio",
		Summary: "Comparing variability between processes",
		Description: "Bootstraps `var(A) / var(B)` from independent resamples.\n\n" +
			"Resamples where process 2 has zero variance are skipped.",
		Icon:   "📐",
		Label1: "Process 1:",
		Label2: "Process 2:",
	},
	{
		ID:          bootstrap.AnalysisRegression,
		Name:        "Bootstrap Regression",
		Summary:     "Linear regression coefficients",
		Description: "Not available yet.",
		Icon:        "📉",
		Label1:      "Advertising (x):",
		Label2:      "Sales (y):",
	},
	{
		ID:          bootstrap.AnalysisProportionDifference,
		Name:        "Difference of Proportions",
		Summary:     "Comparing treatment effectiveness",
		Description: "Not available yet.",
		Icon:        "🧪",
		Label1:      "Treatment A:",
		Label2:      "Treatment B:",
	},
	{
		ID:          bootstrap.AnalysisParametric,
		Name:        "Parametric Bootstrap",
		Summary:     "Estimation with an exponential distribution",
		Description: "Not available yet.",
		Icon:        "⚡",
		Label1:      "Data:",
	},
	{
		ID:      bootstrap.AnalysisBlockVolatility,
		Name:    "Bootstrap with Dependent Data",
		Summary: "Block bootstrap for time series",
		Description: "Resamples overlapping blocks of consecutive observations so local " +
			"autocorrelation survives, then recomputes the standard deviation (volatility).\n\n" +
			"The series must be at least as long as the block size.",
		Icon:   "🔄",
		Label1: "Series:",
	},
}

// All returns every exercise in display order
func All() []Exercise {
	out := make([]Exercise, len(exercises))
	copy(out, exercises)
	return out
}

// Lookup returns the exercise for id
func Lookup(id bootstrap.AnalysisID) (Exercise, bool) {
	for _, e := range exercises {
		if e.ID == id {
			return e, true
		}
	}
	return Exercise{}, false
}
