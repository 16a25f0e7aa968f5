package models

import (
	"github.com/eskmag/greenpulse/internal/analytics/forecast"
)

// HealthResponse represents health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// DatasetListResponse represents list datasets response
type DatasetListResponse struct {
	Datasets []string `json:"datasets"`
	Count    int      `json:"count"`
}

// ForecastResponse represents a forecast series response, optionally
// filtered to one point type
type ForecastResponse struct {
	Dataset    string             `json:"dataset"`
	YearsAhead int                `json:"years_ahead"`
	Type       string             `json:"type,omitempty"`
	Points     forecast.Series    `json:"points"`
	Count      int                `json:"count"`
	Model      forecast.ModelInfo `json:"model"`
}

// ErrorResponse represents error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail represents error details
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Path    string                 `json:"path,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}
