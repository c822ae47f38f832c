package gateway

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/mcdev12/ipl-auction/go/internal/auction"
	"github.com/mcdev12/ipl-auction/go/internal/auction/events"
	"github.com/peterldowns/testy/assert"
	"github.com/peterldowns/testy/check"
)

type fakeCoordinator struct {
	startErr error
	bidErr   error

	startedLot uuid.UUID
	bidTeam    uuid.UUID
	bidAmount  int64
}

func (f *fakeCoordinator) StartLot(_ context.Context, _ auction.Caller, lotID uuid.UUID) error {
	f.startedLot = lotID
	return f.startErr
}

func (f *fakeCoordinator) PlaceBid(_ context.Context, _ auction.Caller, teamID uuid.UUID, amount int64) (bool, error) {
	f.bidTeam = teamID
	f.bidAmount = amount
	return f.bidErr == nil, f.bidErr
}

func (f *fakeCoordinator) Snapshot() auction.Snapshot {
	return auction.Snapshot{State: auction.StateIdle}
}

func newTestRouter(coordinator AuctionCommands) (*CommandRouter, *Connection) {
	router := NewCommandRouter(coordinator)
	NewConnectionManager(DefaultConnectionConfig(), router)
	conn := &Connection{
		ID:   uuid.New().String(),
		Send: make(chan []byte, 4),
	}
	return router, conn
}

func frame(t *testing.T, cmdType string, payload any) []byte {
	t.Helper()
	data, err := json.Marshal(payload)
	assert.Nil(t, err)
	raw, err := json.Marshal(clientCommand{Type: cmdType, Data: data})
	assert.Nil(t, err)
	return raw
}

func receivedError(t *testing.T, conn *Connection) string {
	t.Helper()
	select {
	case raw := <-conn.Send:
		var ev events.Event
		assert.Nil(t, json.Unmarshal(raw, &ev))
		assert.Equal(t, events.EventTypeError, ev.Type)
		var payload events.ErrorPayload
		assert.Nil(t, json.Unmarshal(ev.Data, &payload))
		return payload.Message
	default:
		t.Fatal("expected an error frame, got none")
		return ""
	}
}

func TestRoute_SubmitBidReachesCoordinator(t *testing.T) {
	coordinator := &fakeCoordinator{}
	router, conn := newTestRouter(coordinator)
	teamID := uuid.New()

	router.Route(context.Background(), conn, frame(t, "submit-bid", submitBidCommand{TeamID: teamID, Amount: 500}))

	check.Equal(t, teamID, coordinator.bidTeam)
	check.Equal(t, int64(500), coordinator.bidAmount)
	check.Equal(t, 0, len(conn.Send))
}

func TestRoute_ExplicitBidRejectionGoesBackToSender(t *testing.T) {
	coordinator := &fakeCoordinator{bidErr: auction.ErrNotTeamOwner}
	router, conn := newTestRouter(coordinator)

	router.Route(context.Background(), conn, frame(t, "submit-bid", submitBidCommand{TeamID: uuid.New(), Amount: 500}))

	check.Equal(t, auction.ErrNotTeamOwner.Error(), receivedError(t, conn))
}

func TestRoute_StartLotReachesCoordinator(t *testing.T) {
	coordinator := &fakeCoordinator{}
	router, conn := newTestRouter(coordinator)
	lotID := uuid.New()

	router.Route(context.Background(), conn, frame(t, "start-lot", startLotCommand{LotID: lotID}))

	check.Equal(t, lotID, coordinator.startedLot)
	check.Equal(t, 0, len(conn.Send))
}

func TestRoute_StartLotErrorGoesBackToSender(t *testing.T) {
	coordinator := &fakeCoordinator{startErr: auction.ErrSessionBusy}
	router, conn := newTestRouter(coordinator)

	router.Route(context.Background(), conn, frame(t, "start-lot", startLotCommand{LotID: uuid.New()}))

	check.Equal(t, auction.ErrSessionBusy.Error(), receivedError(t, conn))
}

func TestRoute_DropsMalformedAndUnknownFrames(t *testing.T) {
	coordinator := &fakeCoordinator{}
	router, conn := newTestRouter(coordinator)

	router.Route(context.Background(), conn, []byte("not json"))
	router.Route(context.Background(), conn, frame(t, "shuffle-lots", struct{}{}))

	check.Equal(t, uuid.Nil, coordinator.startedLot)
	check.Equal(t, uuid.Nil, coordinator.bidTeam)
	check.Equal(t, 0, len(conn.Send))
}
