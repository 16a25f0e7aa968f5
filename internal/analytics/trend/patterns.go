package trend

import (
	"fmt"

	"github.com/eskmag/greenpulse/internal/analytics"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const (
	// RecentTrendPoints is how many trailing YoY changes decide IsDeclining.
	RecentTrendPoints = 3
	// recentAveragePoints matches the five-year average reported alongside it.
	recentAveragePoints = 5
)

// YearChange is the change into Year from the previous observed year
type YearChange struct {
	Year       int     `json:"year"`
	FromYear   int     `json:"from_year"`
	Percentage float64 `json:"percentage"`
	AbsoluteMt float64 `json:"absolute_mt"`
}

// Volatility describes the spread of year-over-year percentage changes.
// StdDeviationPct is the sample standard deviation (N-1 divisor).
type Volatility struct {
	StdDeviationPct      float64 `json:"std_deviation_pct"`
	MaxAnnualIncreasePct float64 `json:"max_annual_increase_pct"`
	MaxAnnualDecreasePct float64 `json:"max_annual_decrease_pct"`
}

// Streaks holds the longest runs of strictly falling and rising years
type Streaks struct {
	LongestDeclineYears  int `json:"longest_decline_years"`
	LongestIncreaseYears int `json:"longest_increase_years"`
}

// RecentTrend describes the tail of the series
type RecentTrend struct {
	Last5YearsAvgChange float64 `json:"last_5_years_avg_change"`
	IsDeclining         bool    `json:"is_declining"`
}

// PatternProfile is the year-over-year view of a series
type PatternProfile struct {
	YearOverYear []YearChange `json:"year_over_year"`
	Volatility   Volatility   `json:"volatility"`
	Streaks      Streaks      `json:"streaks"`
	RecentTrend  RecentTrend  `json:"recent_trend"`
}

// IdentifyPatterns computes year-over-year changes, their volatility, the
// longest decline and increase streaks and the recent direction.
//
// A zero value followed by another year fails with ErrDivisionByZero for that
// step. At least two points are needed for a change to exist. With a single
// change the sample standard deviation is undefined and reported as 0.
func IdentifyPatterns(series analytics.TimeSeriesData) (*PatternProfile, error) {
	const op = "patterns"

	sorted, err := series.Prepare(op)
	if err != nil {
		return nil, err
	}

	changes := make([]YearChange, 0, sorted.Len()-1)
	pcts := make([]float64, 0, sorted.Len()-1)
	for i := 1; i < sorted.Len(); i++ {
		prev, cur := sorted[i-1], sorted[i]
		if prev.Value == 0 {
			return nil, analytics.NewYearError(op, analytics.ErrDivisionByZero, cur.Year,
				fmt.Sprintf("previous value in %d is zero", prev.Year))
		}
		abs := cur.Value - prev.Value
		pct := abs / prev.Value * 100
		changes = append(changes, YearChange{
			Year:       cur.Year,
			FromYear:   prev.Year,
			Percentage: pct,
			AbsoluteMt: abs,
		})
		pcts = append(pcts, pct)
	}
	if len(pcts) == 0 {
		return nil, analytics.NewError(op, analytics.ErrInsufficientHistory,
			fmt.Sprintf("year-over-year changes need at least 2 points, have %d", sorted.Len()))
	}

	var stdDev float64
	if len(pcts) > 1 {
		stdDev = stat.StdDev(pcts, nil)
	}

	return &PatternProfile{
		YearOverYear: changes,
		Volatility: Volatility{
			StdDeviationPct:      stdDev,
			MaxAnnualIncreasePct: floats.Max(pcts),
			MaxAnnualDecreasePct: floats.Min(pcts),
		},
		Streaks: LongestStreaks(pcts),
		RecentTrend: RecentTrend{
			Last5YearsAvgChange: tailMean(pcts, recentAveragePoints),
			IsDeclining:         tailMean(pcts, RecentTrendPoints) < 0,
		},
	}, nil
}

// LongestStreaks scans changes in order. A negative change extends the
// decline run and resets the increase run, a positive change does the
// opposite, and a zero change resets both.
func LongestStreaks(changes []float64) Streaks {
	var s Streaks
	decline, increase := 0, 0

	for _, c := range changes {
		switch {
		case c < 0:
			decline++
			increase = 0
			s.LongestDeclineYears = max(s.LongestDeclineYears, decline)
		case c > 0:
			increase++
			decline = 0
			s.LongestIncreaseYears = max(s.LongestIncreaseYears, increase)
		default:
			decline, increase = 0, 0
		}
	}
	return s
}

// tailMean is the mean of the last n values (all of them if fewer). values
// must be non-empty.
func tailMean(values []float64, n int) float64 {
	if len(values) > n {
		values = values[len(values)-n:]
	}
	return stat.Mean(values, nil)
}
