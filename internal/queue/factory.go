package queue

import (
	"fmt"
	"strings"

	"github.com/eskmag/greenpulse/internal/config"
)

// Transport names accepted in events.type
const (
	TypeNone   = "none"
	TypeMemory = "memory"
	TypeNATS   = "nats"
	TypeRedis  = "redis"
	TypeKafka  = "kafka"
)

// NewQueue creates a Queue for cfg.Type. It returns a nil Queue when events
// are disabled.
func NewQueue(cfg config.EventsConfig) (Queue, error) {
	switch strings.ToLower(cfg.Type) {
	case "", TypeNone:
		return nil, nil

	case TypeMemory:
		return newMemoryQueue(), nil

	case TypeNATS:
		q, err := newNATSQueue(cfg.URL)
		if err != nil {
			return nil, err
		}
		return q, nil

	case TypeRedis:
		q, err := newRedisQueue(RedisConfig{
			URL:    cfg.URL,
			Stream: cfg.RedisStream,
		})
		if err != nil {
			return nil, err
		}
		return q, nil

	case TypeKafka:
		brokers := cfg.KafkaBrokers
		if len(brokers) == 0 && cfg.URL != "" {
			brokers = strings.Split(cfg.URL, ",")
		}
		q, err := newKafkaQueue(KafkaConfig{Brokers: brokers})
		if err != nil {
			return nil, err
		}
		return q, nil

	default:
		return nil, fmt.Errorf("unsupported events type: %s (supported: none, memory, nats, redis, kafka)", cfg.Type)
	}
}

// NewEventPublisherFromConfig creates the transport and wraps it for
// analysis events on cfg.Subject. It returns nil when events are disabled.
func NewEventPublisherFromConfig(cfg config.EventsConfig) (*EventPublisher, error) {
	q, err := NewQueue(cfg)
	if err != nil || q == nil {
		return nil, err
	}
	return NewEventPublisher(q, cfg.Subject), nil
}
