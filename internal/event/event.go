package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/dshills/keyline/internal/event/topic"
)

// TopicProvider is what Publish requires of an event.
type TopicProvider interface {
	EventTopic() topic.Topic
}

// Event wraps a payload with its topic and delivery metadata.
type Event[T any] struct {
	Type     topic.Topic
	Payload  T
	Metadata Metadata
}

// Metadata identifies one published event.
type Metadata struct {
	ID        string // random UUID
	Timestamp time.Time
	Source    string // publishing component, e.g. "engine"
}

// NewEvent stamps payload with a fresh ID and the current time.
func NewEvent[T any](t topic.Topic, payload T, source string) Event[T] {
	return Event[T]{
		Type:    t,
		Payload: payload,
		Metadata: Metadata{
			ID:        uuid.NewString(),
			Timestamp: time.Now(),
			Source:    source,
		},
	}
}

func (e Event[T]) EventTopic() topic.Topic {
	return e.Type
}
