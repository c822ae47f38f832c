package auction

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/ipl-auction/go/internal/auction/events"
	"github.com/rs/zerolog/log"
)

// settleTimeout bounds the durable work of one finalization.
const settleTimeout = 30 * time.Second

// finalSnapshot is the immutable view of the session taken before any
// settlement mutation happens.
type finalSnapshot struct {
	lot       events.LotView
	amount    int64
	teamID    *uuid.UUID
	ownerID   *uuid.UUID
	buyerName string
}

// finalSnapshot captures the session outcome. Caller holds the mutex.
func (c *Coordinator) finalSnapshot() finalSnapshot {
	return finalSnapshot{
		lot:       c.sess.lotView(),
		amount:    c.sess.highestBid,
		teamID:    c.sess.highestBidderTeam,
		ownerID:   c.sess.highestBidderOwner,
		buyerName: c.sess.highestBidderLabel,
	}
}

// finalize settles or voids the lot, then returns the coordinator to idle.
// It runs exactly once per session generation, from the zero tick. The
// session stays in Settling until the durable work is done and the result
// has been handed to the broadcaster, so no new lot can race the budget
// writes or publish ahead of this session's terminal events.
func (c *Coordinator) finalize(snap finalSnapshot) {
	ctx, cancel := context.WithTimeout(context.Background(), settleTimeout)
	defer cancel()

	result := events.LotResultPayload{
		Status: events.LotStatusUnsold,
		Lot:    snap.lot,
	}

	if snap.teamID == nil {
		// No bid above base price was ever accepted.
		c.markUnsold(ctx, snap.lot.ID)
	} else if err := c.settler.SettleLot(ctx, snap.lot.ID, *snap.teamID, snap.amount); err != nil {
		// Settlement failed — budget re-check or store trouble. Fall back to
		// Unsold rather than announce a result the ledger does not back.
		log.Error().
			Err(err).
			Str("lot_id", snap.lot.ID.String()).
			Str("team_id", snap.teamID.String()).
			Int64("amount", snap.amount).
			Msg("settlement failed, marking lot unsold; manual reconciliation may be needed")
		c.markUnsold(ctx, snap.lot.ID)
	} else {
		amount := snap.amount
		result.Status = events.LotStatusSold
		result.BuyerTeamID = snap.teamID
		result.BuyerName = snap.buyerName
		result.BuyerOwnerID = snap.ownerID
		result.Amount = &amount
		log.Info().
			Str("lot_id", snap.lot.ID.String()).
			Str("team", snap.buyerName).
			Int64("amount", amount).
			Msg("lot sold")
	}

	// The result goes out while the state is still Settling. Flipping to
	// Idle first would let a new lot-started overtake this session's
	// lot-result on the wire.
	c.publish(events.EventTypeLotResult, result)
	c.publish(events.EventTypeSessionEnded, events.SessionEndedPayload{})

	c.mu.Lock()
	c.state = StateIdle
	c.sess = nil
	if c.timerStop != nil {
		close(c.timerStop)
		c.timerStop = nil
	}
	c.mu.Unlock()
}

func (c *Coordinator) markUnsold(ctx context.Context, lotID uuid.UUID) {
	if err := c.settler.MarkUnsold(ctx, lotID); err != nil {
		log.Error().
			Err(err).
			Str("lot_id", lotID.String()).
			Msg("failed to mark lot unsold; manual reconciliation needed")
	} else {
		log.Info().Str("lot_id", lotID.String()).Msg("lot unsold")
	}
}
