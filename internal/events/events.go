package events

import "time"

// EventType discriminates audit events.
type EventType string

const (
	EventUserRegistered EventType = "user.registered"
	EventClothCreated   EventType = "cloth.created"
	EventClothDeleted   EventType = "cloth.deleted"
)

// Event is an in-process audit record.
type Event struct {
	Type       EventType
	OccurredAt time.Time
	Fields     map[string]any
}

// NewEvent builds an event stamped with the current time.
func NewEvent(eventType EventType, fields map[string]any) Event {
	return Event{Type: eventType, OccurredAt: time.Now(), Fields: fields}
}
