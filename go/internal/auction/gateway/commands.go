package gateway

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/mcdev12/ipl-auction/go/internal/auction"
	"github.com/mcdev12/ipl-auction/go/internal/auction/events"
	"github.com/rs/zerolog/log"
)

// AuctionCommands is what the command router needs from the coordinator.
type AuctionCommands interface {
	StartLot(ctx context.Context, caller auction.Caller, lotID uuid.UUID) error
	PlaceBid(ctx context.Context, caller auction.Caller, teamID uuid.UUID, amount int64) (bool, error)
	Snapshot() auction.Snapshot
}

// Command names accepted from clients.
const (
	commandStartLot  = "start-lot"
	commandSubmitBid = "submit-bid"
)

type clientCommand struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type startLotCommand struct {
	LotID uuid.UUID `json:"lotId"`
}

type submitBidCommand struct {
	TeamID uuid.UUID `json:"teamId"`
	Amount int64     `json:"amount"`
}

// CommandRouter parses inbound client frames and feeds them to the
// coordinator. Explicit rejections go back to the requesting connection
// only; silent bid rejections produce no traffic at all.
type CommandRouter struct {
	coordinator AuctionCommands
	manager     *ConnectionManager
}

// NewCommandRouter creates a router for the given coordinator. The manager
// is attached when the router is passed to NewConnectionManager.
func NewCommandRouter(coordinator AuctionCommands) *CommandRouter {
	return &CommandRouter{coordinator: coordinator}
}

// Route dispatches one raw client frame.
func (r *CommandRouter) Route(ctx context.Context, conn *Connection, raw []byte) {
	var cmd clientCommand
	if err := json.Unmarshal(raw, &cmd); err != nil {
		log.Debug().
			Err(err).
			Str("connection_id", conn.ID).
			Msg("dropping malformed client frame")
		return
	}

	switch cmd.Type {
	case commandStartLot:
		var payload startLotCommand
		if err := json.Unmarshal(cmd.Data, &payload); err != nil {
			r.sendError(conn, "invalid start-lot payload")
			return
		}
		if err := r.coordinator.StartLot(ctx, conn.Identity, payload.LotID); err != nil {
			r.sendError(conn, err.Error())
		}

	case commandSubmitBid:
		var payload submitBidCommand
		if err := json.Unmarshal(cmd.Data, &payload); err != nil {
			r.sendError(conn, "invalid submit-bid payload")
			return
		}
		if _, err := r.coordinator.PlaceBid(ctx, conn.Identity, payload.TeamID, payload.Amount); err != nil {
			r.sendError(conn, err.Error())
		}

	default:
		log.Debug().
			Str("connection_id", conn.ID).
			Str("command", cmd.Type).
			Msg("unknown client command - ignoring")
	}
}

func (r *CommandRouter) sendError(conn *Connection, message string) {
	ev, err := events.New(events.EventTypeError, events.ErrorPayload{Message: message})
	if err != nil {
		log.Error().Err(err).Msg("failed to build error event")
		return
	}
	r.manager.SendTo(conn, ev)
}
