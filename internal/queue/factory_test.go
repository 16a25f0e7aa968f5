package queue

import (
	"context"
	"testing"
	"time"

	"github.com/eskmag/greenpulse/internal/config"
)

func TestNewQueue_Disabled(t *testing.T) {
	for _, typ := range []string{"", "none", "NONE"} {
		q, err := NewQueue(config.EventsConfig{Type: typ})
		if err != nil || q != nil {
			t.Errorf("type %q: expected nil queue, got %v (%v)", typ, q, err)
		}
	}
}

func TestNewQueue_Memory(t *testing.T) {
	q, err := NewQueue(config.EventsConfig{Type: "memory"})
	if err != nil {
		t.Fatalf("Failed to create memory queue: %v", err)
	}
	defer func() { _ = q.Close() }()

	if _, ok := q.(*MemoryQueue); !ok {
		t.Errorf("expected *MemoryQueue, got %T", q)
	}
}

func TestNewQueue_NATS(t *testing.T) {
	url, cleanup := setupTestNATS(t)
	defer cleanup()

	q, err := NewQueue(config.EventsConfig{Type: "nats", URL: url})
	if err != nil {
		t.Fatalf("Failed to create NATS queue: %v", err)
	}
	defer func() { _ = q.Close() }()

	if _, ok := q.(*NATSQueue); !ok {
		t.Errorf("expected *NATSQueue, got %T", q)
	}
}

func TestNewQueue_NATSUnreachable(t *testing.T) {
	q, err := NewQueue(config.EventsConfig{Type: "nats", URL: "nats://127.0.0.1:1"})
	if err == nil {
		t.Fatal("expected connection error")
	}
	if q != nil {
		t.Error("queue must be nil on error")
	}
}

func TestNewQueue_KafkaFromURL(t *testing.T) {
	q, err := NewQueue(config.EventsConfig{Type: "kafka", URL: "k1:9092,k2:9092"})
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = q.Close() }()

	kq := q.(*KafkaQueue)
	if len(kq.config.Brokers) != 2 || kq.config.Brokers[1] != "k2:9092" {
		t.Errorf("unexpected brokers %v", kq.config.Brokers)
	}
}

func TestNewQueue_UnsupportedType(t *testing.T) {
	if _, err := NewQueue(config.EventsConfig{Type: "amqp"}); err == nil {
		t.Fatal("Expected error for unsupported type")
	}
}

func TestEventPublisher_RoundTrip(t *testing.T) {
	p, err := NewEventPublisherFromConfig(config.EventsConfig{Type: "memory", Subject: config.DefaultSubject})
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = p.Close() }()

	want := AnalysisEvent{
		ID:                "evt-1",
		Dataset:           "norway",
		YearsAhead:        5,
		BaselineYear:      1990,
		LatestYear:        2023,
		LatestEmissionsMt: 45,
		TotalChangePct:    -11.76,
		Assessment:        "strong progress",
		IsDeclining:       true,
		ForecastFinalYear: 2028,
		ForecastFinalMt:   40.5,
		GeneratedAt:       time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	if err := p.PublishAnalysis(context.Background(), want); err != nil {
		t.Fatal(err)
	}

	mq := p.publisher.(*MemoryQueue)
	msgs := mq.Messages(p.Subject())
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}

	got, err := DecodeAnalysisEvent(msgs[0])
	if err != nil {
		t.Fatal(err)
	}
	if !got.GeneratedAt.Equal(want.GeneratedAt) {
		t.Errorf("generated_at mismatch: got %v want %v", got.GeneratedAt, want.GeneratedAt)
	}
	got.GeneratedAt = want.GeneratedAt
	if got != want {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestEventPublisher_Disabled(t *testing.T) {
	p, err := NewEventPublisherFromConfig(config.EventsConfig{Type: "none"})
	if err != nil || p != nil {
		t.Errorf("expected nil publisher, got %v (%v)", p, err)
	}
}

func TestDecodeAnalysisEvent_Invalid(t *testing.T) {
	if _, err := DecodeAnalysisEvent([]byte("{")); err == nil {
		t.Error("expected decode error")
	}
}
