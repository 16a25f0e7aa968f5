package trend

import (
	"github.com/eskmag/greenpulse/internal/analytics"
	"github.com/eskmag/greenpulse/internal/analytics/forecast"
)

// DefaultYearsAhead is the forecast horizon used when a caller gives none
const DefaultYearsAhead = 5

// Report bundles every analysis output for one series
type Report struct {
	Metrics       *TrendMetrics      `json:"metrics"`
	Patterns      *PatternProfile    `json:"patterns"`
	Forecast      forecast.Series    `json:"forecast"`
	ForecastModel forecast.ModelInfo `json:"forecast_model"`
	SummaryReport string             `json:"summary_report"`
}

// Analyze runs metrics, patterns and a yearsAhead forecast over series and
// renders the summary from their results. The first failure is returned.
func Analyze(series analytics.TimeSeriesData, yearsAhead int) (*Report, error) {
	metrics, err := ComputeTrendMetrics(series)
	if err != nil {
		return nil, err
	}

	patterns, err := IdentifyPatterns(series)
	if err != nil {
		return nil, err
	}

	projection, err := forecast.Linear(series, yearsAhead)
	if err != nil {
		return nil, err
	}

	return &Report{
		Metrics:       metrics,
		Patterns:      patterns,
		Forecast:      projection.Series,
		ForecastModel: projection.Model,
		SummaryReport: RenderSummary(metrics, patterns),
	}, nil
}
