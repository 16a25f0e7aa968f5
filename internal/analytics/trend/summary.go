package trend

import (
	"fmt"
	"strings"

	"github.com/eskmag/greenpulse/internal/analytics"
)

// Assessment buckets the overall percentage change
type Assessment string

const (
	StrongProgress   Assessment = "strong progress"
	ModerateProgress Assessment = "moderate progress"
	LimitedProgress  Assessment = "limited progress"
)

// Assess classifies a total percentage change:
// below -10 is strong, [-10, 0) is moderate, 0 and above is limited.
func Assess(totalChangePct float64) Assessment {
	switch {
	case totalChangePct < -10:
		return StrongProgress
	case totalChangePct < 0:
		return ModerateProgress
	default:
		return LimitedProgress
	}
}

// DirectionLabel renders the recent-trend flag
func DirectionLabel(isDeclining bool) string {
	if isDeclining {
		return "Declining"
	}
	return "Stable/Increasing"
}

// GenerateSummary renders the text report for series.
func GenerateSummary(series analytics.TimeSeriesData) (string, error) {
	metrics, err := ComputeTrendMetrics(series)
	if err != nil {
		return "", err
	}
	patterns, err := IdentifyPatterns(series)
	if err != nil {
		return "", err
	}
	return RenderSummary(metrics, patterns), nil
}

// RenderSummary formats already computed metrics and patterns. Mt figures
// and percentages carry one decimal place.
func RenderSummary(m *TrendMetrics, p *PatternProfile) string {
	var b strings.Builder

	b.WriteString("# Emissions Analysis Report\n\n")

	b.WriteString("## Key Metrics\n")
	fmt.Fprintf(&b, "- **Time Period**: %d - %d\n", m.Baseline.Year, m.Latest.Year)
	fmt.Fprintf(&b, "- **Baseline Emissions (%d)**: %.1f Mt CO2eq\n", m.Baseline.Year, m.Baseline.EmissionsMt)
	fmt.Fprintf(&b, "- **Latest Emissions (%d)**: %.1f Mt CO2eq\n", m.Latest.Year, m.Latest.EmissionsMt)
	fmt.Fprintf(&b, "- **Peak Emissions**: %.1f Mt CO2eq in %d\n", m.Peak.EmissionsMt, m.Peak.Year)
	b.WriteString("\n")

	b.WriteString("## Overall Trend\n")
	fmt.Fprintf(&b, "- **Total Change**: %.1f%% (%.1f Mt CO2eq)\n", m.TotalChange.Percentage, m.TotalChange.AbsoluteMt)
	fmt.Fprintf(&b, "- **Average Annual Change**: %.1f%% per year\n", m.AverageAnnual.Percentage)
	fmt.Fprintf(&b, "- **Recent %d-Year Trend**: %.1f%%\n", m.RecentTrend.WindowYears, m.RecentTrend.Percentage)
	b.WriteString("\n")

	b.WriteString("## Pattern Analysis\n")
	fmt.Fprintf(&b, "- **Volatility**: %.1f%% standard deviation\n", p.Volatility.StdDeviationPct)
	fmt.Fprintf(&b, "- **Longest Decline Period**: %d consecutive years\n", p.Streaks.LongestDeclineYears)
	fmt.Fprintf(&b, "- **Recent Trend**: %s\n", DirectionLabel(p.RecentTrend.IsDeclining))
	b.WriteString("\n")

	b.WriteString("## Assessment\n")
	switch Assess(m.TotalChange.Percentage) {
	case StrongProgress:
		b.WriteString("- **Strong Progress**: Significant emissions reduction achieved.\n")
	case ModerateProgress:
		b.WriteString("- **Moderate Progress**: Some emissions reduction achieved.\n")
	default:
		b.WriteString("- **Limited Progress**: Emissions have increased overall.\n")
	}
	if p.RecentTrend.IsDeclining {
		b.WriteString("- **Recent Trend**: Positive - emissions are declining in recent years.\n")
	} else {
		b.WriteString("- **Recent Trend**: Concerning - emissions stable or increasing recently.\n")
	}

	return b.String()
}
