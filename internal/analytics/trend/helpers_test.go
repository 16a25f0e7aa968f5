package trend

import "github.com/eskmag/greenpulse/internal/analytics"

// norwaySample is the reference five-point series used across the tests
func norwaySample() analytics.TimeSeriesData {
	return analytics.TimeSeriesData{
		{Year: 1990, Value: 51.0},
		{Year: 2000, Value: 55.0},
		{Year: 2010, Value: 53.0},
		{Year: 2020, Value: 48.0},
		{Year: 2023, Value: 45.0},
	}
}

// reversed returns a copy of ts in reverse order
func reversed(ts analytics.TimeSeriesData) analytics.TimeSeriesData {
	out := make(analytics.TimeSeriesData, len(ts))
	for i, p := range ts {
		out[len(ts)-1-i] = p
	}
	return out
}
