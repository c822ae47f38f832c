package auction

import (
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/ipl-auction/go/internal/auction/events"
	"github.com/mcdev12/ipl-auction/go/internal/models"
)

// baseBidderLabel is the history label used before any team has bid.
const baseBidderLabel = "Base Price"

// State is the coordinator's lifecycle position.
type State string

const (
	StateIdle     State = "Idle"
	StateActive   State = "Active"
	StateSettling State = "Settling"
)

// session is the single mutable record describing the in-progress lot.
// It is owned exclusively by the Coordinator and only ever touched under
// its mutex.
type session struct {
	lot                *models.Player
	highestBid         int64
	highestBidderLabel string
	highestBidderTeam  *uuid.UUID
	highestBidderOwner *uuid.UUID
	remainingSeconds   int
	history            []events.HistoryEntry // most recent first
}

func newSession(lot *models.Player, timerSec int, now time.Time) *session {
	return &session{
		lot:                lot,
		highestBid:         lot.BasePrice,
		highestBidderLabel: baseBidderLabel,
		remainingSeconds:   timerSec,
		history: []events.HistoryEntry{{
			BidderLabel: baseBidderLabel,
			Amount:      lot.BasePrice,
			Timestamp:   now,
		}},
	}
}

// applyBid records an accepted bid. Caller holds the coordinator mutex and
// has already validated the amount, so the history head stays equal to
// highestBid by construction.
func (s *session) applyBid(team *TeamSnapshot, amount int64, now time.Time) {
	s.highestBid = amount
	s.highestBidderLabel = team.Name
	teamID := team.ID
	ownerID := team.OwnerID
	s.highestBidderTeam = &teamID
	s.highestBidderOwner = &ownerID
	s.history = append([]events.HistoryEntry{{
		BidderLabel: team.Name,
		Amount:      amount,
		Timestamp:   now,
	}}, s.history...)
}

func (s *session) lotView() events.LotView {
	return events.LotView{
		ID:           s.lot.ID,
		Name:         s.lot.Name,
		Role:         s.lot.Role,
		BasePrice:    s.lot.BasePrice,
		EventID:      s.lot.EventID,
		RegistrantID: s.lot.UserID,
	}
}

func (s *session) historyCopy() []events.HistoryEntry {
	out := make([]events.HistoryEntry, len(s.history))
	copy(out, s.history)
	return out
}

// Snapshot is a read-only view of the coordinator state, used by the
// gateway to sync viewers who connect mid-lot.
type Snapshot struct {
	State            State
	Lot              *events.LotView
	HighestBid       int64
	HighestBidder    string
	RemainingSeconds int
	History          []events.HistoryEntry
}
