package services

import (
	"testing"

	"github.com/eskmag/greenpulse/internal/config"
	"github.com/eskmag/greenpulse/internal/queue"
)

func newTestMemoryQueue(t *testing.T) queue.Queue {
	t.Helper()
	q, err := queue.NewQueue(config.EventsConfig{Type: queue.TypeMemory})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = q.Close() })
	return q
}

func memoryMessages(t *testing.T, p *queue.EventPublisher) [][]byte {
	t.Helper()
	mq, ok := p.Underlying().(*queue.MemoryQueue)
	if !ok {
		t.Fatalf("expected memory queue, got %T", p.Underlying())
	}
	return mq.Messages(p.Subject())
}
