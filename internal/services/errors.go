// Package services provides the business logic layer between the HTTP
// handlers and the analysis core. Services load datasets, run analyses,
// cache reports and publish completion events.
package services

import (
	"errors"

	"github.com/eskmag/greenpulse/internal/analytics"
)

// Service error codes
const (
	CodeEmptySeries            = "EMPTY_SERIES"
	CodeInsufficientHistory    = "INSUFFICIENT_HISTORY"
	CodeDivisionByZero         = "DIVISION_BY_ZERO"
	CodeInvalidForecastHorizon = "INVALID_FORECAST_HORIZON"
	CodeMalformedInput         = "MALFORMED_INPUT"
	CodeDatasetNotFound        = "DATASET_NOT_FOUND"
	CodeSourceFailed           = "SOURCE_FAILED"
	CodeAnalysisFailed         = "ANALYSIS_FAILED"
	CodeInvalidParameter       = "INVALID_PARAMETER"
	CodeInvalidJSON            = "INVALID_JSON"
	CodeInvalidType            = "INVALID_TYPE"
)

// ServiceError represents a service layer error
type ServiceError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func (e *ServiceError) Error() string {
	return e.Message
}

// NewServiceError creates a new ServiceError
func NewServiceError(code, message string) *ServiceError {
	return &ServiceError{
		Code:    code,
		Message: message,
	}
}

// NewServiceErrorWithDetails creates a new ServiceError with details
func NewServiceErrorWithDetails(code, message string, details map[string]interface{}) *ServiceError {
	return &ServiceError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// FromAnalysisError converts an analyzer failure into a ServiceError whose
// code names the failure kind. Errors that are not analysis failures become
// ANALYSIS_FAILED.
func FromAnalysisError(err error) *ServiceError {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr
	}

	code := CodeAnalysisFailed
	switch {
	case errors.Is(err, analytics.ErrEmptySeries):
		code = CodeEmptySeries
	case errors.Is(err, analytics.ErrInsufficientHistory):
		code = CodeInsufficientHistory
	case errors.Is(err, analytics.ErrDivisionByZero):
		code = CodeDivisionByZero
	case errors.Is(err, analytics.ErrInvalidForecastHorizon):
		code = CodeInvalidForecastHorizon
	case errors.Is(err, analytics.ErrMalformedInput):
		code = CodeMalformedInput
	}

	var aerr *analytics.AnalysisError
	if !errors.As(err, &aerr) {
		return NewServiceError(code, err.Error())
	}

	details := map[string]interface{}{
		"kind":      analytics.KindName(err),
		"operation": aerr.Op,
	}
	if aerr.Year != 0 {
		details["year"] = aerr.Year
	}
	return NewServiceErrorWithDetails(code, err.Error(), details)
}
