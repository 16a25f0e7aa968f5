// Package dataset reads yearly emissions series from CSV files and writes
// forecast series back out.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/eskmag/greenpulse/internal/analytics"
	"github.com/eskmag/greenpulse/internal/analytics/forecast"
)

const (
	DefaultYearColumn  = "year"
	DefaultValueColumn = "emissions_MtCO2e"
)

// CSVOptions selects the columns holding the year and the value
type CSVOptions struct {
	YearColumn  string // default: "year"
	ValueColumn string // default: "emissions_MtCO2e"
	Delimiter   rune   // default: ','
}

// DefaultCSVOptions returns the options matching the processed SSB export
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		YearColumn:  DefaultYearColumn,
		ValueColumn: DefaultValueColumn,
		Delimiter:   ',',
	}
}

func (o *CSVOptions) withDefaults() CSVOptions {
	out := *DefaultCSVOptions()
	if o == nil {
		return out
	}
	if o.YearColumn != "" {
		out.YearColumn = o.YearColumn
	}
	if o.ValueColumn != "" {
		out.ValueColumn = o.ValueColumn
	}
	if o.Delimiter != 0 {
		out.Delimiter = o.Delimiter
	}
	return out
}

// LoadCSV loads a series from a CSV file. A missing file is reported as
// ErrDatasetNotFound.
func LoadCSV(path string, opts *CSVOptions) (analytics.TimeSeriesData, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDatasetNotFound, path)
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	return ReadCSV(file, opts)
}

// ReadCSV parses a series from r. The first record is the header; columns
// other than the year and value columns are ignored.
func ReadCSV(r io.Reader, opts *CSVOptions) (analytics.TimeSeriesData, error) {
	const op = "load_csv"
	o := opts.withDefaults()

	reader := csv.NewReader(r)
	reader.Comma = o.Delimiter
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, analytics.NewError(op, analytics.ErrEmptySeries, "no header row")
	}
	if err != nil {
		return nil, analytics.NewError(op, analytics.ErrMalformedInput, err.Error())
	}

	yearIdx, valueIdx := -1, -1
	for i, h := range header {
		switch strings.TrimSpace(h) {
		case o.YearColumn:
			yearIdx = i
		case o.ValueColumn:
			valueIdx = i
		}
	}
	if yearIdx < 0 {
		return nil, analytics.NewError(op, analytics.ErrMalformedInput,
			fmt.Sprintf("missing column %q", o.YearColumn))
	}
	if valueIdx < 0 {
		return nil, analytics.NewError(op, analytics.ErrMalformedInput,
			fmt.Sprintf("missing column %q", o.ValueColumn))
	}

	var series analytics.TimeSeriesData
	seen := make(map[int]int)

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, analytics.NewError(op, analytics.ErrMalformedInput, err.Error())
		}
		line, _ := reader.FieldPos(0)
		if len(record) <= yearIdx || len(record) <= valueIdx {
			return nil, analytics.NewError(op, analytics.ErrMalformedInput,
				fmt.Sprintf("line %d: expected at least %d fields, got %d", line, max(yearIdx, valueIdx)+1, len(record)))
		}

		year, err := strconv.Atoi(strings.TrimSpace(record[yearIdx]))
		if err != nil {
			return nil, analytics.NewError(op, analytics.ErrMalformedInput,
				fmt.Sprintf("line %d: invalid year %q", line, record[yearIdx]))
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(record[valueIdx]), 64)
		if err != nil {
			return nil, analytics.NewYearError(op, analytics.ErrMalformedInput, year,
				fmt.Sprintf("line %d: invalid value %q", line, record[valueIdx]))
		}
		if first, ok := seen[year]; ok {
			return nil, analytics.NewYearError(op, analytics.ErrMalformedInput, year,
				fmt.Sprintf("line %d: duplicate of line %d", line, first))
		}
		seen[year] = line

		series = append(series, analytics.TimeSeriesPoint{Year: year, Value: value})
	}

	if len(series) == 0 {
		return nil, analytics.NewError(op, analytics.ErrEmptySeries, "no data rows")
	}
	if err := series.Validate(op); err != nil {
		return nil, err
	}
	return series, nil
}

// WriteForecastCSV writes series as year,emissions_MtCO2e,type rows
func WriteForecastCSV(w io.Writer, series forecast.Series) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{DefaultYearColumn, DefaultValueColumn, "type"}); err != nil {
		return err
	}
	for _, p := range series {
		record := []string{
			strconv.Itoa(p.Year),
			strconv.FormatFloat(p.Value, 'f', -1, 64),
			string(p.Type),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
