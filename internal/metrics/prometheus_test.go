package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sample returns the value of the series of name whose labels include all of
// labels, or -1 if absent
func sample(t *testing.T, r *Recorder, name string, labels map[string]string) float64 {
	t.Helper()

	families, err := r.Registry().Gather()
	require.NoError(t, err)

	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	metrics:
		for _, m := range mf.GetMetric() {
			got := make(map[string]string)
			for _, lp := range m.GetLabel() {
				got[lp.GetName()] = lp.GetValue()
			}
			for k, v := range labels {
				if got[k] != v {
					continue metrics
				}
			}
			switch {
			case m.Counter != nil:
				return m.GetCounter().GetValue()
			case m.Gauge != nil:
				return m.GetGauge().GetValue()
			case m.Histogram != nil:
				return float64(m.GetHistogram().GetSampleCount())
			}
		}
	}
	return -1
}

func TestRecorder_Counters(t *testing.T) {
	r := New()

	r.RecordAnalysis("norway", 45.0)
	r.RecordAnalysis("norway", 44.5)
	r.RecordFailure("INSUFFICIENT_HISTORY")
	r.RecordCacheHit()
	r.RecordCacheMiss()
	r.RecordCacheMiss()
	r.RecordPublishFailure()

	assert.Equal(t, 2.0, sample(t, r, "greenpulse_analyses_total", map[string]string{"dataset": "norway"}))
	assert.Equal(t, 44.5, sample(t, r, "greenpulse_latest_emissions_mt", map[string]string{"dataset": "norway"}))
	assert.Equal(t, 1.0, sample(t, r, "greenpulse_analysis_failures_total", map[string]string{"code": "INSUFFICIENT_HISTORY"}))
	assert.Equal(t, 1.0, sample(t, r, "greenpulse_cache_lookups_total", map[string]string{"result": "hit"}))
	assert.Equal(t, 2.0, sample(t, r, "greenpulse_cache_lookups_total", map[string]string{"result": "miss"}))
	assert.Equal(t, 1.0, sample(t, r, "greenpulse_events_publish_failures_total", nil))
}

func TestRecorder_IndependentRegistries(t *testing.T) {
	a, b := New(), New()
	a.RecordFailure("X")

	assert.Equal(t, 1.0, sample(t, a, "greenpulse_analysis_failures_total", map[string]string{"code": "X"}))
	assert.Equal(t, -1.0, sample(t, b, "greenpulse_analysis_failures_total", map[string]string{"code": "X"}))
}

func TestRecorder_Handler(t *testing.T) {
	r := New()
	r.RecordAnalysis("norway", 45.0)
	r.ObserveDuration("analyze", time.Now().Add(-10*time.Millisecond))

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	text := string(body)

	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, text, `greenpulse_analyses_total{dataset="norway"} 1`)
	assert.Contains(t, text, `greenpulse_analysis_duration_seconds_count{operation="analyze"} 1`)
	assert.Contains(t, text, "go_goroutines")
}
