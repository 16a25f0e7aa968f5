package services

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/eskmag/greenpulse/internal/analytics"
	"github.com/eskmag/greenpulse/internal/analytics/trend"
	"github.com/eskmag/greenpulse/internal/cache"
	"github.com/eskmag/greenpulse/internal/config"
	"github.com/eskmag/greenpulse/internal/dataset"
	"github.com/eskmag/greenpulse/internal/logging"
	"github.com/eskmag/greenpulse/internal/metrics"
	"github.com/eskmag/greenpulse/internal/queue"
	"github.com/google/uuid"
)

// AnalysisService runs emissions analyses for configured datasets and
// inline series
type AnalysisService struct {
	logger   *logging.Logger
	source   dataset.Source
	policy   config.AnalysisConfig
	cache    cache.Cache
	cacheTTL time.Duration
	events   *queue.EventPublisher
	metrics  *metrics.Recorder
	now      func() time.Time
}

// NewAnalysisService creates a new AnalysisService. reportCache, events and
// recorder may be nil to disable caching, event publishing and metrics.
func NewAnalysisService(
	logger *logging.Logger,
	source dataset.Source,
	policy config.AnalysisConfig,
	reportCache cache.Cache,
	cacheTTL time.Duration,
	events *queue.EventPublisher,
	recorder *metrics.Recorder,
) *AnalysisService {
	return &AnalysisService{
		logger:   logger,
		source:   source,
		policy:   policy,
		cache:    reportCache,
		cacheTTL: cacheTTL,
		events:   events,
		metrics:  recorder,
		now:      time.Now,
	}
}

// AnalysisRequest selects a configured dataset. A zero YearsAhead uses the
// configured default horizon.
type AnalysisRequest struct {
	Dataset    string
	YearsAhead int
}

// AnalysisResponse is a full analysis bundle for one dataset and horizon
type AnalysisResponse struct {
	Dataset     string    `json:"dataset"`
	YearsAhead  int       `json:"years_ahead"`
	Cached      bool      `json:"cached"`
	GeneratedAt time.Time `json:"generated_at"`
	*trend.Report
}

// Datasets returns the names of the configured datasets
func (s *AnalysisService) Datasets() []string {
	return s.source.Datasets()
}

// Execute loads the requested dataset and analyzes it
func (s *AnalysisService) Execute(ctx context.Context, req AnalysisRequest) (*AnalysisResponse, error) {
	yearsAhead, svcErr := s.resolveYearsAhead(req.YearsAhead)
	if svcErr != nil {
		return nil, s.fail(svcErr)
	}

	start := time.Now()
	series, err := s.source.Load(ctx, req.Dataset)
	if err != nil {
		return nil, s.fail(s.sourceError(req.Dataset, err))
	}
	s.observe("load", start)

	return s.analyze(ctx, req.Dataset, series, yearsAhead)
}

// AnalyzeSeries analyzes an inline series under name. Series of any order
// are accepted.
func (s *AnalysisService) AnalyzeSeries(ctx context.Context, name string, series analytics.TimeSeriesData, yearsAhead int) (*AnalysisResponse, error) {
	resolved, svcErr := s.resolveYearsAhead(yearsAhead)
	if svcErr != nil {
		return nil, s.fail(svcErr)
	}
	if name == "" {
		name = "inline"
	}
	return s.analyze(ctx, name, series, resolved)
}

func (s *AnalysisService) analyze(ctx context.Context, name string, series analytics.TimeSeriesData, yearsAhead int) (*AnalysisResponse, error) {
	key := CacheKey(name, yearsAhead, series)
	logger := s.logger.WithContext(ctx)

	if resp, ok := s.lookup(ctx, key); ok {
		logger.Debug("Analysis served from cache", "dataset", name, "years_ahead", yearsAhead)
		return resp, nil
	}

	start := time.Now()
	report, err := trend.Analyze(series, yearsAhead)
	if err != nil {
		logger.Warn("Analysis failed",
			"dataset", name,
			"years_ahead", yearsAhead,
			"kind", analytics.KindName(err),
			"error", err)
		return nil, s.fail(FromAnalysisError(err))
	}
	s.observe("analyze", start)

	resp := &AnalysisResponse{
		Dataset:     name,
		YearsAhead:  yearsAhead,
		GeneratedAt: s.now().UTC(),
		Report:      report,
	}

	s.store(ctx, key, resp)
	if s.metrics != nil {
		s.metrics.RecordAnalysis(name, report.Metrics.Latest.EmissionsMt)
	}
	s.publish(ctx, resp)

	logger.Info("Analysis completed",
		"dataset", name,
		"years_ahead", yearsAhead,
		"points", len(series),
		"total_change_pct", report.Metrics.TotalChange.Percentage,
		"latency_ms", time.Since(start).Milliseconds())

	return resp, nil
}

func (s *AnalysisService) resolveYearsAhead(n int) (int, *ServiceError) {
	resolved, err := s.policy.ResolveYearsAhead(n)
	if err != nil {
		return 0, NewServiceErrorWithDetails(CodeInvalidForecastHorizon, err.Error(), map[string]interface{}{
			"max_years_ahead": s.policy.MaxYearsAhead,
		})
	}
	return resolved, nil
}

func (s *AnalysisService) sourceError(name string, err error) *ServiceError {
	if errors.Is(err, dataset.ErrDatasetNotFound) {
		return NewServiceErrorWithDetails(CodeDatasetNotFound,
			fmt.Sprintf("dataset %q not found", name),
			map[string]interface{}{"available": s.source.Datasets()})
	}

	var aerr *analytics.AnalysisError
	if errors.As(err, &aerr) {
		return FromAnalysisError(err)
	}

	s.logger.Error("Failed to load dataset", "dataset", name, "error", err)
	return NewServiceErrorWithDetails(CodeSourceFailed, "Failed to load dataset",
		map[string]interface{}{"error": err.Error()})
}

func (s *AnalysisService) lookup(ctx context.Context, key string) (*AnalysisResponse, bool) {
	if s.cache == nil {
		return nil, false
	}

	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("Cache lookup failed", "key", key, "error", err)
		}
		if s.metrics != nil {
			s.metrics.RecordCacheMiss()
		}
		return nil, false
	}

	var resp AnalysisResponse
	if err := json.Unmarshal(data, &resp); err != nil || resp.Report == nil {
		s.logger.Warn("Discarding undecodable cache entry", "key", key, "error", err)
		_ = s.cache.Delete(ctx, key)
		if s.metrics != nil {
			s.metrics.RecordCacheMiss()
		}
		return nil, false
	}

	if s.metrics != nil {
		s.metrics.RecordCacheHit()
	}
	resp.Cached = true
	return &resp, true
}

func (s *AnalysisService) store(ctx context.Context, key string, resp *AnalysisResponse) {
	if s.cache == nil {
		return
	}

	data, err := json.Marshal(resp)
	if err != nil {
		s.logger.Warn("Failed to encode report for cache", "key", key, "error", err)
		return
	}
	if err := s.cache.Set(ctx, key, data, s.cacheTTL); err != nil {
		s.logger.Warn("Failed to cache report", "key", key, "error", err)
	}
}

// publish sends the completion event. Failures are logged and counted, never
// returned.
func (s *AnalysisService) publish(ctx context.Context, resp *AnalysisResponse) {
	if s.events == nil {
		return
	}

	ev := NewAnalysisEvent(resp)
	if err := s.events.PublishAnalysis(ctx, ev); err != nil {
		s.logger.Warn("Failed to publish analysis event",
			"dataset", resp.Dataset,
			"subject", s.events.Subject(),
			"error", err)
		if s.metrics != nil {
			s.metrics.RecordPublishFailure()
		}
	}
}

func (s *AnalysisService) fail(err *ServiceError) *ServiceError {
	if s.metrics != nil {
		s.metrics.RecordFailure(err.Code)
	}
	return err
}

func (s *AnalysisService) observe(op string, start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveDuration(op, start)
	}
}

// NewAnalysisEvent summarises resp as an analysis.completed event
func NewAnalysisEvent(resp *AnalysisResponse) queue.AnalysisEvent {
	m := resp.Metrics
	ev := queue.AnalysisEvent{
		ID:                uuid.NewString(),
		Dataset:           resp.Dataset,
		YearsAhead:        resp.YearsAhead,
		BaselineYear:      m.Baseline.Year,
		LatestYear:        m.Latest.Year,
		LatestEmissionsMt: m.Latest.EmissionsMt,
		TotalChangePct:    m.TotalChange.Percentage,
		Assessment:        string(trend.Assess(m.TotalChange.Percentage)),
		IsDeclining:       resp.Patterns.RecentTrend.IsDeclining,
		GeneratedAt:       resp.GeneratedAt,
	}
	if projected := resp.Forecast.Projected(); len(projected) > 0 {
		final := projected[len(projected)-1]
		ev.ForecastFinalYear = final.Year
		ev.ForecastFinalMt = final.Value
	}
	return ev
}

// CacheKey identifies a report by dataset name, horizon and an xxhash
// fingerprint of the series in year order
func CacheKey(name string, yearsAhead int, series analytics.TimeSeriesData) string {
	h := xxhash.New()
	var buf [16]byte
	for _, p := range series.Sorted() {
		binary.LittleEndian.PutUint64(buf[:8], uint64(int64(p.Year)))
		binary.LittleEndian.PutUint64(buf[8:], math.Float64bits(p.Value))
		_, _ = h.Write(buf[:])
	}
	return name + ":" + strconv.Itoa(yearsAhead) + ":" + strconv.FormatUint(h.Sum64(), 16)
}
