// Package trend computes trend metrics and year-over-year patterns for a
// yearly emissions series and renders them as a text report.
//
// Every function is a pure computation over its input: the series is
// validated and a sorted copy is analysed, so callers may share a series
// across goroutines.
package trend

import (
	"fmt"

	"github.com/eskmag/greenpulse/internal/analytics"
)

// RecentWindowYears is the look-back of the recent-trend window.
const RecentWindowYears = 10

// Observation is a single year's emissions
type Observation struct {
	Year        int     `json:"year"`
	EmissionsMt float64 `json:"emissions_mt"`
}

// Change is the movement between two observations
type Change struct {
	FromYear    int     `json:"from_year"`
	ToYear      int     `json:"to_year"`
	AbsoluteMt  float64 `json:"absolute_mt"`
	Percentage  float64 `json:"percentage"`
	YearsSpan   int     `json:"years_span"`
	WindowYears int     `json:"window_years,omitempty"`
}

// AnnualRate is an average change per year
type AnnualRate struct {
	AbsoluteMt float64 `json:"absolute_mt"`
	Percentage float64 `json:"percentage"`
}

// TrendMetrics summarises how a series moved from its first to its last year
type TrendMetrics struct {
	Baseline      Observation `json:"baseline"`
	Latest        Observation `json:"latest"`
	Peak          Observation `json:"peak"`
	TotalChange   Change      `json:"total_change"`
	RecentTrend   Change      `json:"recent_trend"`
	AverageAnnual AnnualRate  `json:"average_annual"`
}

// ComputeTrendMetrics computes baseline, latest, peak, total, recent and
// average annual change. A single-point series has no span and fails with
// ErrInsufficientHistory; a zero baseline fails with ErrDivisionByZero.
func ComputeTrendMetrics(series analytics.TimeSeriesData) (*TrendMetrics, error) {
	const op = "trend_metrics"

	sorted, err := series.Prepare(op)
	if err != nil {
		return nil, err
	}
	if sorted.Len() < 2 {
		return nil, analytics.NewYearError(op, analytics.ErrInsufficientHistory, sorted.First().Year,
			"a single point has no year span")
	}

	baseline := sorted.First()
	latest := sorted.Last()

	peak := baseline
	for _, p := range sorted[1:] {
		if p.Value > peak.Value {
			peak = p
		}
	}

	total, err := change(op, baseline, latest)
	if err != nil {
		return nil, err
	}

	window := sorted.Since(latest.Year - RecentWindowYears)
	if window.Len() < 2 {
		return nil, analytics.NewYearError(op, analytics.ErrInsufficientHistory, latest.Year,
			fmt.Sprintf("no other point within %d years of the latest", RecentWindowYears))
	}
	recent, err := change(op, window.First(), window.Last())
	if err != nil {
		return nil, err
	}
	recent.WindowYears = RecentWindowYears

	span := float64(total.YearsSpan)

	return &TrendMetrics{
		Baseline:    observation(baseline),
		Latest:      observation(latest),
		Peak:        observation(peak),
		TotalChange: total,
		RecentTrend: recent,
		AverageAnnual: AnnualRate{
			AbsoluteMt: total.AbsoluteMt / span,
			Percentage: total.Percentage / span,
		},
	}, nil
}

func change(op string, from, to analytics.TimeSeriesPoint) (Change, error) {
	if from.Value == 0 {
		return Change{}, analytics.NewYearError(op, analytics.ErrDivisionByZero, from.Year,
			"percentage change from a zero value")
	}
	abs := to.Value - from.Value
	return Change{
		FromYear:   from.Year,
		ToYear:     to.Year,
		AbsoluteMt: abs,
		Percentage: abs / from.Value * 100,
		YearsSpan:  to.Year - from.Year,
	}, nil
}

func observation(p analytics.TimeSeriesPoint) Observation {
	return Observation{Year: p.Year, EmissionsMt: p.Value}
}
