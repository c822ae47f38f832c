package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/ipl-auction/go/internal/models"
)

// LotView is the slice of a player record that viewers need while the lot
// is under the hammer. RegistrantID lets a connected player client decide
// locally that a result concerns them.
type LotView struct {
	ID           uuid.UUID         `json:"id"`
	Name         string            `json:"name"`
	Role         models.PlayerRole `json:"role"`
	BasePrice    int64             `json:"basePrice"`
	EventID      uuid.UUID         `json:"eventId"`
	RegistrantID uuid.UUID         `json:"registrantId"`
}

// HistoryEntry is one accepted bid, most recent first in payload order.
type HistoryEntry struct {
	BidderLabel string    `json:"bidderLabel"`
	Amount      int64     `json:"amount"`
	Timestamp   time.Time `json:"timestamp"`
}

// LotStartedPayload announces a new lot entering auction. It doubles as the
// authoritative state snapshot sent to viewers connecting mid-lot.
type LotStartedPayload struct {
	Lot              LotView        `json:"lot"`
	HighestBid       int64          `json:"highestBid"`
	HighestBidder    string         `json:"highestBidder"`
	RemainingSeconds int            `json:"remainingSeconds"`
	History          []HistoryEntry `json:"history"`
}

// TimerTickPayload carries the countdown value after each one-second tick.
type TimerTickPayload struct {
	RemainingSeconds int `json:"remainingSeconds"`
}

// BidPlacedPayload is the transient toast-style notice for an accepted bid.
type BidPlacedPayload struct {
	BidderLabel string `json:"bidderLabel"`
	Amount      int64  `json:"amount"`
}

// BidAppliedPayload is the authoritative session state after a bid lands.
type BidAppliedPayload struct {
	HighestBid       int64          `json:"highestBid"`
	HighestBidder    string         `json:"highestBidder"`
	RemainingSeconds int            `json:"remainingSeconds"`
	History          []HistoryEntry `json:"history"`
}

// LotStatus is the terminal outcome of an auction attempt.
type LotStatus string

const (
	LotStatusSold   LotStatus = "Sold"
	LotStatusUnsold LotStatus = "Unsold"
)

// LotResultPayload announces the terminal outcome. Buyer fields are set only
// on a sale; BuyerOwnerID plus Lot.RegistrantID make the payload
// self-describing so clients filter relevance without server-side routing.
type LotResultPayload struct {
	Status       LotStatus  `json:"status"`
	Lot          LotView    `json:"lot"`
	BuyerTeamID  *uuid.UUID `json:"buyerTeamId,omitempty"`
	BuyerName    string     `json:"buyerName,omitempty"`
	BuyerOwnerID *uuid.UUID `json:"buyerOwnerId,omitempty"`
	Amount       *int64     `json:"amount,omitempty"`
}

// SessionEndedPayload signals the coordinator has returned to idle.
type SessionEndedPayload struct{}

// ErrorPayload carries an explicit rejection back to a single requester.
type ErrorPayload struct {
	Message string `json:"message"`
}
