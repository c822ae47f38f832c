package models

import (
	"time"

	"github.com/google/uuid"
)

// BidRecord is the immutable ledger entry written when a lot settles.
type BidRecord struct {
	ID        uuid.UUID `json:"id"`
	EventID   uuid.UUID `json:"event_id"`
	PlayerID  uuid.UUID `json:"player_id"`
	TeamID    uuid.UUID `json:"team_id"`
	Amount    int64     `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}
