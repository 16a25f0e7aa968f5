package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/eskmag/greenpulse/internal/queue"
)

func TestPrintEvent(t *testing.T) {
	var buf bytes.Buffer
	printEvent(&buf, queue.AnalysisEvent{
		Dataset:           "norway",
		BaselineYear:      1990,
		LatestYear:        2023,
		LatestEmissionsMt: 45,
		TotalChangePct:    -11.7647,
		Assessment:        "strong progress",
		IsDeclining:       true,
		ForecastFinalYear: 2028,
		ForecastFinalMt:   38.24,
		GeneratedAt:       time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	})

	want := "2024-03-01T12:00:00Z norway       1990-2023 latest 45.0 Mt total -11.8% strong progress, declining; 2028 projected 38.2 Mt\n"
	if got := buf.String(); got != want {
		t.Errorf("printEvent() =\n%q\nwant\n%q", got, want)
	}
}
