package trend

import (
	"encoding/json"
	"testing"

	"github.com/eskmag/greenpulse/internal/analytics"
	"github.com/eskmag/greenpulse/internal/analytics/forecast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze_Bundle(t *testing.T) {
	report, err := Analyze(norwaySample(), DefaultYearsAhead)
	require.NoError(t, err)

	assert.NotNil(t, report.Metrics)
	assert.NotNil(t, report.Patterns)
	assert.Len(t, report.Forecast, 5+DefaultYearsAhead)
	assert.Len(t, report.Forecast.Projected(), DefaultYearsAhead)
	assert.Equal(t, "linear", report.ForecastModel.Algorithm)
	assert.Equal(t, RenderSummary(report.Metrics, report.Patterns), report.SummaryReport)
}

func TestAnalyze_JSONShape(t *testing.T) {
	report, err := Analyze(norwaySample(), 2)
	require.NoError(t, err)

	raw, err := json.Marshal(report)
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &decoded))
	for _, key := range []string{"metrics", "patterns", "forecast", "forecast_model", "summary_report"} {
		assert.Contains(t, decoded, key)
	}

	var points []forecast.Point
	require.NoError(t, json.Unmarshal(decoded["forecast"], &points))
	assert.Equal(t, forecast.Projected, points[len(points)-1].Type)
}

func TestAnalyze_PropagatesFailures(t *testing.T) {
	_, err := Analyze(norwaySample(), 0)
	assert.ErrorIs(t, err, analytics.ErrInvalidForecastHorizon)

	_, err = Analyze(analytics.TimeSeriesData{{Year: 2020, Value: 1}}, 3)
	assert.ErrorIs(t, err, analytics.ErrInsufficientHistory)
}

func TestAnalyze_TwoPoints(t *testing.T) {
	report, err := Analyze(analytics.TimeSeriesData{{Year: 2020, Value: 50}, {Year: 2021, Value: 40}}, 2)
	require.NoError(t, err)
	assert.Len(t, report.Patterns.YearOverYear, 1)
	assert.Equal(t, 0.0, report.Patterns.Volatility.StdDeviationPct)
	assert.Len(t, report.Forecast.Projected(), 2)
	assert.NotEmpty(t, report.SummaryReport)

	_, err = Analyze(analytics.TimeSeriesData{{Year: 2020, Value: 0}, {Year: 2021, Value: 5}}, 2)
	assert.ErrorIs(t, err, analytics.ErrDivisionByZero)
}

func BenchmarkAnalyze(b *testing.B) {
	data := make(analytics.TimeSeriesData, 0, 34)
	for year := 1990; year <= 2023; year++ {
		data = append(data, analytics.TimeSeriesPoint{Year: year, Value: 50 + float64(year%7) - float64(year-1990)*0.2})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Analyze(data, DefaultYearsAhead)
	}
}
