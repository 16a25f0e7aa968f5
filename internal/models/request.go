package models

import (
	"github.com/eskmag/greenpulse/internal/analytics"
)

// AnalysisRequest represents an inline analysis request. Points may be in
// any year order. A nil YearsAhead selects the configured default.
type AnalysisRequest struct {
	Name       string                      `json:"name,omitempty"`
	YearsAhead *int                        `json:"years_ahead,omitempty"`
	Points     []analytics.TimeSeriesPoint `json:"points"`
}

// Series converts the request points into a series
func (r *AnalysisRequest) Series() analytics.TimeSeriesData {
	return analytics.TimeSeriesData(r.Points)
}
