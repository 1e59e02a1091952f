// Package pubsub fans typed events out from a publisher to any number of
// subscribers, and bridges subscriptions into Bubble Tea programs.
package pubsub

import (
	"context"
	"time"
)

// EventType names what happened to a payload.
type EventType string

const (
	// ReloadedEvent carries fresh content for a watched source.
	ReloadedEvent EventType = "reloaded"
	// FailedEvent reports that a watched source could not be reloaded.
	FailedEvent EventType = "failed"
)

// Event is a published payload stamped with its type and publish time.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber hands out event channels that close when ctx ends.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher delivers payloads to every current subscriber.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T) int
}
