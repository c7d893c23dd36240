package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/simaogato/mortgagecalc-backend/internal/domain"
)

// ChangeMessage is the wire form of a domain.Event.
// Consumers fetch the full record by EntityID when they need it.
type ChangeMessage struct {
	ID         uuid.UUID `json:"id"`
	Type       string    `json:"type"`
	EntityID   uuid.UUID `json:"entity_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewChangeMessage converts a domain event into its message form
func NewChangeMessage(event domain.Event) *ChangeMessage {
	return &ChangeMessage{
		ID:         event.ID,
		Type:       string(event.Type),
		EntityID:   event.EntityID,
		OccurredAt: event.OccurredAt,
	}
}

// ToJSON converts the message to JSON bytes
func (m *ChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ChangeMessageFromJSON creates a message from JSON bytes
func ChangeMessageFromJSON(data []byte) (*ChangeMessage, error) {
	var msg ChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
