// Package analytics provides the common types used by the emissions
// analysis packages (trend, forecast) together with the error taxonomy
// every analysis operation reports through.
package analytics

import (
	"fmt"
	"math"
	"sort"
)

// TimeSeriesPoint is one annual observation.
type TimeSeriesPoint struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// TimeSeriesData is a yearly series. Input order is not significant:
// every analysis works on a copy sorted ascending by year.
type TimeSeriesData []TimeSeriesPoint

// Len returns the number of data points
func (ts TimeSeriesData) Len() int {
	return len(ts)
}

// Values extracts just the values from the time series
func (ts TimeSeriesData) Values() []float64 {
	values := make([]float64, len(ts))
	for i, p := range ts {
		values[i] = p.Value
	}
	return values
}

// Years extracts the years as float64, ready for regression.
func (ts TimeSeriesData) Years() []float64 {
	years := make([]float64, len(ts))
	for i, p := range ts {
		years[i] = float64(p.Year)
	}
	return years
}

// First returns the first point. The series must be non-empty.
func (ts TimeSeriesData) First() TimeSeriesPoint {
	return ts[0]
}

// Last returns the last point. The series must be non-empty.
func (ts TimeSeriesData) Last() TimeSeriesPoint {
	return ts[len(ts)-1]
}

// Sorted returns a copy ordered ascending by year. The receiver is not modified.
func (ts TimeSeriesData) Sorted() TimeSeriesData {
	sorted := make(TimeSeriesData, len(ts))
	copy(sorted, ts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Year < sorted[j].Year
	})
	return sorted
}

// Since returns the points with Year >= year. The receiver must be sorted.
func (ts TimeSeriesData) Since(year int) TimeSeriesData {
	idx := sort.Search(len(ts), func(i int) bool {
		return ts[i].Year >= year
	})
	return ts[idx:]
}

// Validate checks that the series is usable for analysis: non-empty, unique
// years, finite non-negative values.
func (ts TimeSeriesData) Validate(op string) error {
	if len(ts) == 0 {
		return NewError(op, ErrEmptySeries, "series has no points")
	}

	seen := make(map[int]struct{}, len(ts))
	for _, p := range ts {
		if _, dup := seen[p.Year]; dup {
			return NewYearError(op, ErrMalformedInput, p.Year, "duplicate year")
		}
		seen[p.Year] = struct{}{}

		if math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
			return NewYearError(op, ErrMalformedInput, p.Year, "value is not a finite number")
		}
		if p.Value < 0 {
			return NewYearError(op, ErrMalformedInput, p.Year, fmt.Sprintf("negative value %g", p.Value))
		}
	}
	return nil
}

// Prepare validates the series and returns a sorted copy.
func (ts TimeSeriesData) Prepare(op string) (TimeSeriesData, error) {
	if err := ts.Validate(op); err != nil {
		return nil, err
	}
	return ts.Sorted(), nil
}
