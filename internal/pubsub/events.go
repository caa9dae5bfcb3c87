// Package pubsub fans out typed events to any number of subscribers.
// The editor publishes buffer, mode and command events on it and the log
// package publishes formatted entries.
package pubsub

import (
	"context"
	"time"
)

// EventType names what happened.
type EventType string

const (
	CreatedEvent EventType = "created"
	UpdatedEvent EventType = "updated"
	DeletedEvent EventType = "deleted"

	// Editor events.
	BufferChanged   EventType = "buffer_changed"
	ModeChanged     EventType = "mode_changed"
	CommandExecuted EventType = "command_executed"
	CommandRejected EventType = "command_rejected"
)

// Event is one published payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber provides a subscription channel for events.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher allows publishing events with a typed payload.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T) int
}
