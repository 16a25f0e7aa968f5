// Package forecast projects a yearly series forward with a least-squares
// trend line fitted to its most recent decade.
package forecast

import (
	"fmt"
	"math"

	"github.com/eskmag/greenpulse/internal/analytics"
)

// TrendWindowYears bounds the history used for the fit: points with
// year >= max_year - TrendWindowYears.
const TrendWindowYears = 10

// PointType tags a point as observed or projected
type PointType string

const (
	Historical PointType = "historical"
	Projected  PointType = "forecast"
)

// Point is a single year of a forecast series
type Point struct {
	Year  int       `json:"year"`
	Value float64   `json:"emissions_mt"`
	Type  PointType `json:"type"`
}

// Series holds the historical points in ascending year order followed by
// the projected points in ascending year order.
type Series []Point

// Filter returns the points carrying the given tag, preserving order.
func (s Series) Filter(t PointType) Series {
	out := make(Series, 0, len(s))
	for _, p := range s {
		if p.Type == t {
			out = append(out, p)
		}
	}
	return out
}

// Historical returns the observed part of the series
func (s Series) Historical() Series {
	return s.Filter(Historical)
}

// Projected returns the forecast part of the series
func (s Series) Projected() Series {
	return s.Filter(Projected)
}

// ParsePointType converts a query value into a PointType
func ParsePointType(s string) (PointType, error) {
	switch PointType(s) {
	case Historical, Projected:
		return PointType(s), nil
	default:
		return "", fmt.Errorf("unknown point type %q (expected %q or %q)", s, Historical, Projected)
	}
}

// ModelInfo contains metadata about the fitted trend line
type ModelInfo struct {
	Algorithm   string  `json:"algorithm"`
	Slope       float64 `json:"slope"`
	Intercept   float64 `json:"intercept"`
	WindowStart int     `json:"window_start"`
	WindowEnd   int     `json:"window_end"`
	DataPoints  int     `json:"data_points"`
	MAPE        float64 `json:"mape"` // Mean Absolute Percentage Error
	MAE         float64 `json:"mae"`  // Mean Absolute Error
	RMSE        float64 `json:"rmse"` // Root Mean Squared Error
}

// Result contains the tagged series and the model that produced it
type Result struct {
	Series Series    `json:"series"`
	Model  ModelInfo `json:"model"`
}

// Forecast returns the historical series followed by yearsAhead projected years.
func Forecast(series analytics.TimeSeriesData, yearsAhead int) (Series, error) {
	result, err := Linear(series, yearsAhead)
	if err != nil {
		return nil, err
	}
	return result.Series, nil
}

// Linear fits a line to the trailing TrendWindowYears of history and
// extrapolates it for yearsAhead years. Projected values never go below zero.
func Linear(series analytics.TimeSeriesData, yearsAhead int) (*Result, error) {
	const op = "forecast"

	if yearsAhead <= 0 {
		return nil, analytics.NewError(op, analytics.ErrInvalidForecastHorizon,
			fmt.Sprintf("years ahead must be positive, got %d", yearsAhead))
	}

	sorted, err := series.Prepare(op)
	if err != nil {
		return nil, err
	}

	last := sorted.Last()
	window := sorted.Since(last.Year - TrendWindowYears)

	model, err := FitLinear(window)
	if err != nil {
		return nil, err
	}

	out := make(Series, 0, len(sorted)+yearsAhead)
	for _, p := range sorted {
		out = append(out, Point{Year: p.Year, Value: p.Value, Type: Historical})
	}
	for year := last.Year + 1; year <= last.Year+yearsAhead; year++ {
		out = append(out, Point{
			Year:  year,
			Value: math.Max(0, model.Predict(year)),
			Type:  Projected,
		})
	}

	return &Result{Series: out, Model: model.Info()}, nil
}

// CalculateMAPE calculates Mean Absolute Percentage Error
func CalculateMAPE(actual, predicted []float64) float64 {
	if len(actual) != len(predicted) || len(actual) == 0 {
		return 0
	}

	sum := 0.0
	count := 0
	for i := range actual {
		if actual[i] != 0 {
			sum += math.Abs((actual[i] - predicted[i]) / actual[i])
			count++
		}
	}

	if count == 0 {
		return 0
	}
	return (sum / float64(count)) * 100
}

// CalculateMAE calculates Mean Absolute Error
func CalculateMAE(actual, predicted []float64) float64 {
	if len(actual) != len(predicted) || len(actual) == 0 {
		return 0
	}

	sum := 0.0
	for i := range actual {
		sum += math.Abs(actual[i] - predicted[i])
	}
	return sum / float64(len(actual))
}

// CalculateRMSE calculates Root Mean Squared Error
func CalculateRMSE(actual, predicted []float64) float64 {
	if len(actual) != len(predicted) || len(actual) == 0 {
		return 0
	}

	sum := 0.0
	for i := range actual {
		diff := actual[i] - predicted[i]
		sum += diff * diff
	}
	return math.Sqrt(sum / float64(len(actual)))
}
