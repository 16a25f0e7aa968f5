package forecast

import (
	"fmt"

	"github.com/eskmag/greenpulse/internal/analytics"
	"gonum.org/v1/gonum/stat"
)

// LinearModel is a least-squares line value = Slope*year + Intercept
type LinearModel struct {
	Slope     float64
	Intercept float64

	window analytics.TimeSeriesData
	fitted []float64
}

// FitLinear fits a degree-1 polynomial over the (year, value) pairs of
// points, which must be sorted by year with unique years.
func FitLinear(points analytics.TimeSeriesData) (*LinearModel, error) {
	if len(points) < 2 {
		return nil, analytics.NewError("forecast", analytics.ErrInsufficientHistory,
			fmt.Sprintf("linear fit needs at least 2 points in the trend window, have %d", len(points)))
	}

	years := points.Years()
	values := points.Values()

	// Years are unique, so the x variance is never zero.
	intercept, slope := stat.LinearRegression(years, values, nil, false)

	m := &LinearModel{
		Slope:     slope,
		Intercept: intercept,
		window:    points,
		fitted:    make([]float64, len(points)),
	}
	for i, p := range points {
		m.fitted[i] = m.Predict(p.Year)
	}
	return m, nil
}

// Predict evaluates the line at year
func (m *LinearModel) Predict(year int) float64 {
	return m.Slope*float64(year) + m.Intercept
}

// Info summarises the model and its in-sample fit quality
func (m *LinearModel) Info() ModelInfo {
	actual := m.window.Values()
	return ModelInfo{
		Algorithm:   "linear",
		Slope:       m.Slope,
		Intercept:   m.Intercept,
		WindowStart: m.window.First().Year,
		WindowEnd:   m.window.Last().Year,
		DataPoints:  len(m.window),
		MAPE:        CalculateMAPE(actual, m.fitted),
		MAE:         CalculateMAE(actual, m.fitted),
		RMSE:        CalculateRMSE(actual, m.fitted),
	}
}
