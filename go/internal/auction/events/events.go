package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EventType identifies an auction broadcast event.
type EventType string

const (
	EventTypeLotStarted   EventType = "lot-started"
	EventTypeTimerTick    EventType = "timer-tick"
	EventTypeBidPlaced    EventType = "bid-placed"
	EventTypeBidApplied   EventType = "bid-applied"
	EventTypeLotResult    EventType = "lot-result"
	EventTypeSessionEnded EventType = "session-ended"

	// EventTypeError is never broadcast; it is addressed to the single
	// connection whose command was rejected.
	EventTypeError EventType = "error"
)

// Event is the envelope every auction message travels in, both over the
// WebSocket fan-out and on the NATS relay.
type Event struct {
	ID        string          `json:"id"`
	Type      EventType       `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// New wraps a payload into an Event envelope.
func New(eventType EventType, payload any) (*Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", eventType, err)
	}
	return &Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
	}, nil
}
