package gateway

import (
	"fmt"
	"net/http"

	"github.com/mcdev12/ipl-auction/go/internal/auction"
	"github.com/mcdev12/ipl-auction/go/internal/auction/events"
	"github.com/rs/zerolog/log"
)

// TokenParser turns a bearer token into a caller identity.
type TokenParser interface {
	ParseCaller(token string) (auction.Caller, error)
}

// WebSocketHandler handles WebSocket upgrade requests for the auction room.
type WebSocketHandler struct {
	connectionManager *ConnectionManager
	coordinator       AuctionCommands
	tokens            TokenParser
}

// NewWebSocketHandler creates a new WebSocket handler.
func NewWebSocketHandler(cm *ConnectionManager, coordinator AuctionCommands, tokens TokenParser) *WebSocketHandler {
	return &WebSocketHandler{
		connectionManager: cm,
		coordinator:       coordinator,
		tokens:            tokens,
	}
}

// HandleAuctionConnection upgrades a client into the auction room.
// A `token` query parameter attaches an identity; anonymous viewers are
// allowed and can watch but never command.
func (h *WebSocketHandler) HandleAuctionConnection(w http.ResponseWriter, r *http.Request) {
	identity := auction.Caller{}
	if token := r.URL.Query().Get("token"); token != "" {
		parsed, err := h.tokens.ParseCaller(token)
		if err != nil {
			log.Debug().Err(err).Msg("ignoring invalid websocket token, treating as anonymous")
		} else {
			identity = parsed
		}
	}

	conn, err := h.connectionManager.UpgradeConnection(w, r, identity)
	if err != nil {
		log.Error().Err(err).Msg("failed to upgrade WebSocket connection")
		http.Error(w, "failed to upgrade connection", http.StatusInternalServerError)
		return
	}

	h.syncState(conn)
}

// syncState sends the authoritative session snapshot to a viewer that
// connected while a lot is already under the hammer.
func (h *WebSocketHandler) syncState(conn *Connection) {
	snap := h.coordinator.Snapshot()
	if snap.State != auction.StateActive || snap.Lot == nil {
		return
	}

	ev, err := events.New(events.EventTypeLotStarted, events.LotStartedPayload{
		Lot:              *snap.Lot,
		HighestBid:       snap.HighestBid,
		HighestBidder:    snap.HighestBidder,
		RemainingSeconds: snap.RemainingSeconds,
		History:          snap.History,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to build state sync event")
		return
	}
	h.connectionManager.SendTo(conn, ev)
}

// HandleConnectionStats reports the live connection count.
func (h *WebSocketHandler) HandleConnectionStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"total_connections":%d}`, h.connectionManager.ConnectionCount())
}

// RegisterRoutes registers WebSocket routes with an HTTP mux.
func (h *WebSocketHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/ws/auction", h.HandleAuctionConnection)
	mux.HandleFunc("/ws/stats", h.HandleConnectionStats)
}
