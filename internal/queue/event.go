package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// AnalysisEvent announces a completed analysis
type AnalysisEvent struct {
	ID                string    `json:"id"`
	Dataset           string    `json:"dataset"`
	YearsAhead        int       `json:"years_ahead"`
	BaselineYear      int       `json:"baseline_year"`
	LatestYear        int       `json:"latest_year"`
	LatestEmissionsMt float64   `json:"latest_emissions_mt"`
	TotalChangePct    float64   `json:"total_change_pct"`
	Assessment        string    `json:"assessment"`
	IsDeclining       bool      `json:"is_declining"`
	ForecastFinalYear int       `json:"forecast_final_year"`
	ForecastFinalMt   float64   `json:"forecast_final_mt"`
	GeneratedAt       time.Time `json:"generated_at"`
}

// EventPublisher encodes analysis events onto a fixed subject
type EventPublisher struct {
	publisher Publisher
	subject   string
}

// NewEventPublisher creates an EventPublisher on subject
func NewEventPublisher(p Publisher, subject string) *EventPublisher {
	return &EventPublisher{publisher: p, subject: subject}
}

// Subject returns the subject events are published on
func (p *EventPublisher) Subject() string {
	return p.subject
}

// Underlying returns the wrapped publisher
func (p *EventPublisher) Underlying() Publisher {
	return p.publisher
}

// PublishAnalysis encodes and publishes ev
func (p *EventPublisher) PublishAnalysis(ctx context.Context, ev AnalysisEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to encode analysis event: %w", err)
	}
	return p.publisher.Publish(ctx, p.subject, data)
}

// Close closes the underlying publisher
func (p *EventPublisher) Close() error {
	return p.publisher.Close()
}

// DecodeAnalysisEvent parses an event published by EventPublisher
func DecodeAnalysisEvent(data []byte) (AnalysisEvent, error) {
	var ev AnalysisEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return AnalysisEvent{}, fmt.Errorf("failed to decode analysis event: %w", err)
	}
	return ev, nil
}
