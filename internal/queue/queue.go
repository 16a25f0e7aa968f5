// Package queue carries analysis events over an in-process bus or an
// external broker (NATS, Redis Streams, Kafka).
package queue

import (
	"context"

	"github.com/eskmag/greenpulse/internal/logging"
)

// Publisher publishes messages to a queue
type Publisher interface {
	// Publish publishes a message to a subject/topic
	Publish(ctx context.Context, subject string, data []byte) error

	// Close closes the connection
	Close() error
}

// Subscriber subscribes to messages from a queue
type Subscriber interface {
	// Subscribe subscribes to a subject/topic with a handler
	Subscribe(subject string, handler MessageHandler) error

	// Unsubscribe unsubscribes from a subject/topic
	Unsubscribe(subject string) error

	// Close closes the connection
	Close() error
}

// MessageHandler handles incoming messages
type MessageHandler func(data []byte) error

// componentLog tags the global logger with a transport name. It is looked
// up per call so the logger installed by main is used.
func componentLog(component string) *logging.Logger {
	return logging.Global().With("component", component)
}

// Queue combines Publisher and Subscriber interfaces
type Queue interface {
	Publisher
	Subscriber
}
