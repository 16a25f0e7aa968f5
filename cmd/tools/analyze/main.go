package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/eskmag/greenpulse/internal/analytics"
	"github.com/eskmag/greenpulse/internal/analytics/trend"
	"github.com/eskmag/greenpulse/internal/dataset"
)

const defaultDataPath = "data/processed/ssb_emissions_clean.csv"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	fs.SetOutput(stderr)

	dataPath := fs.String("data", defaultDataPath, "Path to the emissions CSV")
	years := fs.Int("years", trend.DefaultYearsAhead, "Years to forecast")
	format := fs.String("format", "text", "Output format (text, json)")
	export := fs.String("export", "", "Write the forecast series to this CSV path (optional)")
	yearColumn := fs.String("year-column", dataset.DefaultYearColumn, "Name of the year column")
	valueColumn := fs.String("value-column", dataset.DefaultValueColumn, "Name of the emissions column")

	if err := fs.Parse(args); err != nil {
		return 1
	}
	if *format != "text" && *format != "json" {
		fmt.Fprintf(stderr, "Error: unknown format %q (expected text or json)\n", *format)
		return 1
	}

	series, err := dataset.LoadCSV(*dataPath, &dataset.CSVOptions{
		YearColumn:  *yearColumn,
		ValueColumn: *valueColumn,
	})
	if err != nil {
		if errors.Is(err, dataset.ErrDatasetNotFound) {
			fmt.Fprintf(stderr, "Emissions data not found at %s\n", *dataPath)
			fmt.Fprintln(stderr, "Run the data fetch first to produce the processed CSV.")
			return 1
		}
		fmt.Fprintf(stderr, "Error loading data: %v\n", err)
		return 1
	}

	if *format == "text" {
		fmt.Fprintln(stdout, "Analyzing emissions data...")
	}

	report, err := trend.Analyze(series, *years)
	if err != nil {
		fmt.Fprintf(stderr, "Error during analysis (%s): %v\n", analytics.KindName(err), err)
		return 1
	}

	if *export != "" {
		if err := exportForecast(*export, report); err != nil {
			fmt.Fprintf(stderr, "Error exporting forecast: %v\n", err)
			return 1
		}
	}

	if *format == "json" {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			fmt.Fprintf(stderr, "Error encoding report: %v\n", err)
			return 1
		}
		return 0
	}

	printText(stdout, report, *years)
	if *export != "" {
		fmt.Fprintf(stdout, "Forecast written to %s\n", *export)
	}
	return 0
}

func printText(w io.Writer, report *trend.Report, years int) {
	fmt.Fprintln(w, report.SummaryReport)

	if projected := report.Forecast.Projected(); len(projected) > 0 {
		fmt.Fprintf(w, "## %d-Year Forecast\n", years)
		for _, p := range projected {
			fmt.Fprintf(w, "- **%d**: %.1f Mt CO2eq\n", p.Year, p.Value)
		}
	}

	fmt.Fprintf(w, "\nAnalysis complete! Data spans %d years\n", len(report.Forecast.Historical()))
}

func exportForecast(path string, report *trend.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := dataset.WriteForecastCSV(f, report.Forecast); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
