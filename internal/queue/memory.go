package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrQueueClosed is returned when publishing to a closed queue
var ErrQueueClosed = errors.New("queue closed")

const defaultMemoryHistory = 1000

// MemoryQueue delivers messages synchronously to in-process subscribers and
// keeps the most recent messages per subject. It needs no external broker.
type MemoryQueue struct {
	handlers map[string]MessageHandler
	history  map[string][][]byte
	limit    int
	closed   bool
	mu       sync.RWMutex
}

// newMemoryQueue creates a new in-memory queue instance
func newMemoryQueue() *MemoryQueue {
	return &MemoryQueue{
		handlers: make(map[string]MessageHandler),
		history:  make(map[string][][]byte),
		limit:    defaultMemoryHistory,
	}
}

// Publish records a copy of data and hands it to the subject's subscriber,
// if any. Handler errors are not returned to the publisher.
func (q *MemoryQueue) Publish(ctx context.Context, subject string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrQueueClosed
	}
	msgs := append(q.history[subject], dataCopy)
	if len(msgs) > q.limit {
		msgs = msgs[len(msgs)-q.limit:]
	}
	q.history[subject] = msgs
	handler := q.handlers[subject]
	q.mu.Unlock()

	if handler != nil {
		if err := handler(dataCopy); err != nil {
			componentLog("queue.memory").Warn("Message handler failed", "subject", subject, "error", err)
		}
	}
	return nil
}

// Subscribe registers handler for subject
func (q *MemoryQueue) Subscribe(subject string, handler MessageHandler) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrQueueClosed
	}
	if _, exists := q.handlers[subject]; exists {
		return fmt.Errorf("already subscribed to subject: %s", subject)
	}

	q.handlers[subject] = handler
	return nil
}

// Unsubscribe removes the subject's handler
func (q *MemoryQueue) Unsubscribe(subject string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if _, exists := q.handlers[subject]; !exists {
		return fmt.Errorf("not subscribed to subject: %s", subject)
	}

	delete(q.handlers, subject)
	return nil
}

// Messages returns copies of the retained messages for subject, oldest first
func (q *MemoryQueue) Messages(subject string) [][]byte {
	q.mu.RLock()
	defer q.mu.RUnlock()

	out := make([][]byte, len(q.history[subject]))
	for i, m := range q.history[subject] {
		out[i] = append([]byte(nil), m...)
	}
	return out
}

// Close drops all subscriptions; later publishes fail with ErrQueueClosed
func (q *MemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.closed = true
	q.handlers = make(map[string]MessageHandler)
	return nil
}
