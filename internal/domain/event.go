package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventType doubles as the routing key when events are published to a broker
type EventType string

const (
	EventPropertyCreated EventType = "property.created"
	EventPropertyUpdated EventType = "property.updated"
	EventPropertyDeleted EventType = "property.deleted"
	EventMortgageCreated EventType = "mortgage.created"
	EventMortgageUpdated EventType = "mortgage.updated"
	EventMortgageDeleted EventType = "mortgage.deleted"
)

// Event describes a completed write against the record store
type Event struct {
	ID         uuid.UUID
	Type       EventType
	EntityID   uuid.UUID
	OccurredAt time.Time
}

// NewEvent stamps a new event for the given entity
func NewEvent(eventType EventType, entityID uuid.UUID) Event {
	return Event{
		ID:         uuid.New(),
		Type:       eventType,
		EntityID:   entityID,
		OccurredAt: time.Now().UTC(),
	}
}
