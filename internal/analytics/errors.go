package analytics

import (
	"errors"
	"fmt"
)

// Failure kinds. Every analysis error unwraps to exactly one of these.
var (
	ErrEmptySeries            = errors.New("empty series")
	ErrInsufficientHistory    = errors.New("insufficient history")
	ErrDivisionByZero         = errors.New("division by zero")
	ErrInvalidForecastHorizon = errors.New("invalid forecast horizon")
	ErrMalformedInput         = errors.New("malformed input")
)

// AnalysisError describes a failed analysis step.
type AnalysisError struct {
	Op     string // operation that failed, e.g. "trend_metrics"
	Kind   error  // one of the Err* sentinels
	Year   int    // offending year, 0 when not tied to a point
	Detail string
}

func (e *AnalysisError) Error() string {
	msg := e.Kind.Error()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Year != 0 {
		msg = fmt.Sprintf("%s at year %d", msg, e.Year)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *AnalysisError) Unwrap() error {
	return e.Kind
}

// NewError creates an AnalysisError not tied to a specific year
func NewError(op string, kind error, detail string) *AnalysisError {
	return &AnalysisError{Op: op, Kind: kind, Detail: detail}
}

// NewYearError creates an AnalysisError for a specific year
func NewYearError(op string, kind error, year int, detail string) *AnalysisError {
	return &AnalysisError{Op: op, Kind: kind, Year: year, Detail: detail}
}

// KindName returns the taxonomy name of err's kind ("EmptySeries", ...), or
// an empty string if err is not an analysis failure.
func KindName(err error) string {
	switch {
	case errors.Is(err, ErrEmptySeries):
		return "EmptySeries"
	case errors.Is(err, ErrInsufficientHistory):
		return "InsufficientHistory"
	case errors.Is(err, ErrDivisionByZero):
		return "DivisionByZero"
	case errors.Is(err, ErrInvalidForecastHorizon):
		return "InvalidForecastHorizon"
	case errors.Is(err, ErrMalformedInput):
		return "MalformedInput"
	default:
		return ""
	}
}
