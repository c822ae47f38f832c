package auction

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/ipl-auction/go/internal/auction/events"
	"github.com/mcdev12/ipl-auction/go/internal/models"
	"github.com/peterldowns/testy/assert"
	"github.com/peterldowns/testy/check"
)

type fakeLotStore struct {
	lots map[uuid.UUID]*models.Player
}

func (f *fakeLotStore) GetLot(_ context.Context, id uuid.UUID) (*models.Player, error) {
	lot, ok := f.lots[id]
	if !ok {
		return nil, fmt.Errorf("lot %s not found", id)
	}
	return lot, nil
}

type fakeTeamStore struct {
	teams map[uuid.UUID]*TeamSnapshot
}

func (f *fakeTeamStore) GetTeamSnapshot(_ context.Context, id uuid.UUID) (*TeamSnapshot, error) {
	team, ok := f.teams[id]
	if !ok {
		return nil, fmt.Errorf("team %s not found", id)
	}
	snap := *team
	return &snap, nil
}

type fakeEventStore struct {
	active *models.Event
	limits models.RoleLimits
}

func (f *fakeEventStore) GetActiveEvent(_ context.Context) (*models.Event, error) {
	if f.active == nil {
		return nil, errors.New("no active event")
	}
	return f.active, nil
}

func (f *fakeEventStore) GetRoleLimits(_ context.Context, _ uuid.UUID) (models.RoleLimits, error) {
	return f.limits, nil
}

type settleCall struct {
	lotID  uuid.UUID
	teamID uuid.UUID
	amount int64
}

type fakeSettler struct {
	mu        sync.Mutex
	settled   []settleCall
	unsold    []uuid.UUID
	settleErr error
}

func (f *fakeSettler) SettleLot(_ context.Context, lotID, teamID uuid.UUID, amount int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.settleErr != nil {
		return f.settleErr
	}
	f.settled = append(f.settled, settleCall{lotID: lotID, teamID: teamID, amount: amount})
	return nil
}

func (f *fakeSettler) MarkUnsold(_ context.Context, lotID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unsold = append(f.unsold, lotID)
	return nil
}

func (f *fakeSettler) settleCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.settled)
}

func (f *fakeSettler) unsoldCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.unsold)
}

type fakeBroadcaster struct {
	mu     sync.Mutex
	events []*events.Event
}

func (f *fakeBroadcaster) Broadcast(ev *events.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, ev)
}

func (f *fakeBroadcaster) countOf(eventType events.EventType) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, ev := range f.events {
		if ev.Type == eventType {
			n++
		}
	}
	return n
}

func (f *fakeBroadcaster) types() []events.EventType {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]events.EventType, len(f.events))
	for i, ev := range f.events {
		out[i] = ev.Type
	}
	return out
}

func (f *fakeBroadcaster) last(eventType events.EventType) *events.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.events) - 1; i >= 0; i-- {
		if f.events[i].Type == eventType {
			return f.events[i]
		}
	}
	return nil
}

// harness bundles a coordinator with its fakes and one approved lot ready
// to go under the hammer.
type harness struct {
	coordinator *Coordinator
	clock       *clockwork.FakeClock
	settler     *fakeSettler
	broadcast   *fakeBroadcaster

	admin  Caller
	owner  Caller
	lotID  uuid.UUID
	teamID uuid.UUID
}

func newHarness(t *testing.T, cfg Config) *harness {
	return newHarnessWithBroadcaster(t, cfg, nil)
}

// newHarnessWithBroadcaster lets a test intercept events on their way to the
// recording broadcaster. A nil wrap delivers straight to the recorder.
func newHarnessWithBroadcaster(t *testing.T, cfg Config, wrap func(Broadcaster) Broadcaster) *harness {
	t.Helper()

	eventID := uuid.New()
	lotID := uuid.New()
	teamID := uuid.New()
	ownerID := uuid.New()

	lots := &fakeLotStore{lots: map[uuid.UUID]*models.Player{
		lotID: {
			ID:        lotID,
			UserID:    uuid.New(),
			EventID:   eventID,
			Name:      "R Sharma",
			Role:      models.PlayerRoleBatsman,
			BasePrice: 100,
			Status:    models.PlayerStatusApproved,
		},
	}}
	teamStore := &fakeTeamStore{teams: map[uuid.UUID]*TeamSnapshot{
		teamID: {
			ID:              teamID,
			Name:            "Mumbai Blues",
			OwnerID:         ownerID,
			EventID:         eventID,
			RemainingBudget: 10_000,
		},
	}}
	eventStore := &fakeEventStore{active: &models.Event{ID: eventID, IsActive: true}}

	settler := &fakeSettler{}
	broadcast := &fakeBroadcaster{}
	var sink Broadcaster = broadcast
	if wrap != nil {
		sink = wrap(broadcast)
	}
	clock := clockwork.NewFakeClock()

	return &harness{
		coordinator: NewCoordinator(lots, teamStore, eventStore, settler, sink, cfg, clock),
		clock:       clock,
		settler:     settler,
		broadcast:   broadcast,
		admin:       Caller{UserID: uuid.New(), Role: models.UserRoleAdmin, Authenticated: true},
		owner:       Caller{UserID: ownerID, Role: models.UserRoleOwner, Authenticated: true},
		lotID:       lotID,
		teamID:      teamID,
	}
}

func (h *harness) startLot(t *testing.T) {
	t.Helper()
	assert.Nil(t, h.coordinator.StartLot(context.Background(), h.admin, h.lotID))
	// Wait for the timer goroutine to arm its ticker before any Advance.
	h.clock.BlockUntil(1)
}

// advanceSecond moves the fake clock one tick and waits for the coordinator
// to apply it.
func (h *harness) advanceSecond(t *testing.T) {
	t.Helper()
	before := h.broadcast.countOf(events.EventTypeTimerTick)
	h.clock.Advance(time.Second)
	waitFor(t, func() bool {
		return h.broadcast.countOf(events.EventTypeTimerTick) > before
	})
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("timed out waiting for condition")
}

func TestStartLot_BroadcastsSnapshotAndActivates(t *testing.T) {
	h := newHarness(t, DefaultConfig())

	h.startLot(t)

	snap := h.coordinator.Snapshot()
	check.Equal(t, StateActive, snap.State)
	check.Equal(t, int64(100), snap.HighestBid)
	check.Equal(t, "Base Price", snap.HighestBidder)
	check.Equal(t, 30, snap.RemainingSeconds)
	check.Equal(t, 1, len(snap.History))
	check.Equal(t, 1, h.broadcast.countOf(events.EventTypeLotStarted))
}

func TestStartLot_RejectsNonAdmin(t *testing.T) {
	h := newHarness(t, DefaultConfig())

	err := h.coordinator.StartLot(context.Background(), h.owner, h.lotID)

	check.True(t, errors.Is(err, ErrUnauthorized))
	check.Equal(t, StateIdle, h.coordinator.Snapshot().State)
}

func TestStartLot_RejectsWhileSessionActive(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	h.startLot(t)

	err := h.coordinator.StartLot(context.Background(), h.admin, h.lotID)

	check.True(t, errors.Is(err, ErrSessionBusy))
}

func TestPlaceBid_AcceptsAndBroadcasts(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	h.startLot(t)

	accepted, err := h.coordinator.PlaceBid(context.Background(), h.owner, h.teamID, 150)

	assert.Nil(t, err)
	check.True(t, accepted)

	snap := h.coordinator.Snapshot()
	check.Equal(t, int64(150), snap.HighestBid)
	check.Equal(t, "Mumbai Blues", snap.HighestBidder)
	check.Equal(t, 2, len(snap.History))
	check.Equal(t, "Mumbai Blues", snap.History[0].BidderLabel)
	check.Equal(t, 1, h.broadcast.countOf(events.EventTypeBidPlaced))
	check.Equal(t, 1, h.broadcast.countOf(events.EventTypeBidApplied))
}

func TestPlaceBid_SilentlyDropsNonIncreasingAmount(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	h.startLot(t)

	accepted, err := h.coordinator.PlaceBid(context.Background(), h.owner, h.teamID, 150)
	assert.Nil(t, err)
	check.True(t, accepted)

	// A second bid at the same amount lost the race and vanishes quietly.
	accepted, err = h.coordinator.PlaceBid(context.Background(), h.owner, h.teamID, 150)
	check.Nil(t, err)
	check.False(t, accepted)
	check.Equal(t, 1, h.broadcast.countOf(events.EventTypeBidApplied))
}

func TestPlaceBid_SilentlyDropsWhenIdle(t *testing.T) {
	h := newHarness(t, DefaultConfig())

	accepted, err := h.coordinator.PlaceBid(context.Background(), h.owner, h.teamID, 150)

	check.Nil(t, err)
	check.False(t, accepted)
}

func TestPlaceBid_RejectsUnauthenticated(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	h.startLot(t)

	accepted, err := h.coordinator.PlaceBid(context.Background(), Caller{}, h.teamID, 150)

	check.True(t, errors.Is(err, ErrUnauthorized))
	check.False(t, accepted)
}

func TestPlaceBid_RejectsNonOwner(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	h.startLot(t)
	stranger := Caller{UserID: uuid.New(), Role: models.UserRoleOwner, Authenticated: true}

	accepted, err := h.coordinator.PlaceBid(context.Background(), stranger, h.teamID, 150)

	check.True(t, errors.Is(err, ErrNotTeamOwner))
	check.False(t, accepted)
}

func TestTimer_CountsDownAndBroadcastsTicks(t *testing.T) {
	h := newHarness(t, Config{InitialTimerSec: 5, AntiSnipeThresholdSec: 3, AntiSnipeResetSec: 4, MaxTimerSec: 60})
	h.startLot(t)

	h.advanceSecond(t)
	h.advanceSecond(t)

	check.Equal(t, 3, h.coordinator.Snapshot().RemainingSeconds)
}

func TestAntiSnipe_LateBidResetsTimer(t *testing.T) {
	h := newHarness(t, Config{InitialTimerSec: 5, AntiSnipeThresholdSec: 3, AntiSnipeResetSec: 4, MaxTimerSec: 60})
	h.startLot(t)

	// Run down to 2 seconds, inside the threshold.
	h.advanceSecond(t)
	h.advanceSecond(t)
	h.advanceSecond(t)
	check.Equal(t, 2, h.coordinator.Snapshot().RemainingSeconds)

	accepted, err := h.coordinator.PlaceBid(context.Background(), h.owner, h.teamID, 150)
	assert.Nil(t, err)
	check.True(t, accepted)

	check.Equal(t, 4, h.coordinator.Snapshot().RemainingSeconds)
}

func TestAntiSnipe_EarlyBidDoesNotTouchTimer(t *testing.T) {
	h := newHarness(t, Config{InitialTimerSec: 10, AntiSnipeThresholdSec: 3, AntiSnipeResetSec: 4, MaxTimerSec: 60})
	h.startLot(t)

	h.advanceSecond(t)
	accepted, err := h.coordinator.PlaceBid(context.Background(), h.owner, h.teamID, 150)
	assert.Nil(t, err)
	check.True(t, accepted)

	check.Equal(t, 9, h.coordinator.Snapshot().RemainingSeconds)
}

func TestFinalize_SellsToHighestBidder(t *testing.T) {
	h := newHarness(t, Config{InitialTimerSec: 2, AntiSnipeThresholdSec: 1, AntiSnipeResetSec: 2, MaxTimerSec: 60})
	h.startLot(t)

	accepted, err := h.coordinator.PlaceBid(context.Background(), h.owner, h.teamID, 250)
	assert.Nil(t, err)
	check.True(t, accepted)

	h.advanceSecond(t)
	h.clock.Advance(time.Second)
	waitFor(t, func() bool { return h.coordinator.Snapshot().State == StateIdle })

	assert.Equal(t, 1, h.settler.settleCount())
	check.Equal(t, h.lotID, h.settler.settled[0].lotID)
	check.Equal(t, h.teamID, h.settler.settled[0].teamID)
	check.Equal(t, int64(250), h.settler.settled[0].amount)

	check.Equal(t, 1, h.broadcast.countOf(events.EventTypeLotResult))
	check.Equal(t, 1, h.broadcast.countOf(events.EventTypeSessionEnded))
	check.Nil(t, h.coordinator.Snapshot().Lot)
}

func TestFinalize_NoBidsMarksUnsold(t *testing.T) {
	h := newHarness(t, Config{InitialTimerSec: 1, AntiSnipeThresholdSec: 1, AntiSnipeResetSec: 1, MaxTimerSec: 60})
	h.startLot(t)

	h.clock.Advance(time.Second)
	waitFor(t, func() bool { return h.coordinator.Snapshot().State == StateIdle })

	check.Equal(t, 0, h.settler.settleCount())
	check.Equal(t, 1, h.settler.unsoldCount())
	check.Equal(t, 1, h.broadcast.countOf(events.EventTypeLotResult))
}

func TestFinalize_SettlementFailureFallsBackToUnsold(t *testing.T) {
	h := newHarness(t, Config{InitialTimerSec: 1, AntiSnipeThresholdSec: 1, AntiSnipeResetSec: 1, MaxTimerSec: 60})
	h.settler.settleErr = errors.New("insufficient budget at settlement")
	h.startLot(t)

	accepted, err := h.coordinator.PlaceBid(context.Background(), h.owner, h.teamID, 250)
	assert.Nil(t, err)
	check.True(t, accepted)

	h.clock.Advance(time.Second)
	waitFor(t, func() bool { return h.coordinator.Snapshot().State == StateIdle })

	check.Equal(t, 0, h.settler.settleCount())
	check.Equal(t, 1, h.settler.unsoldCount())
}

func TestFinalize_RunsExactlyOnce(t *testing.T) {
	h := newHarness(t, Config{InitialTimerSec: 1, AntiSnipeThresholdSec: 1, AntiSnipeResetSec: 1, MaxTimerSec: 60})
	h.startLot(t)

	accepted, err := h.coordinator.PlaceBid(context.Background(), h.owner, h.teamID, 250)
	assert.Nil(t, err)
	check.True(t, accepted)

	h.clock.Advance(time.Second)
	waitFor(t, func() bool { return h.coordinator.Snapshot().State == StateIdle })

	// Extra clock movement after the session ended must not settle again.
	h.clock.Advance(5 * time.Second)
	time.Sleep(10 * time.Millisecond)

	check.Equal(t, 1, h.settler.settleCount())
	check.Equal(t, 1, h.broadcast.countOf(events.EventTypeLotResult))
}

func TestPlaceBid_SilentlyDroppedAfterFinalize(t *testing.T) {
	h := newHarness(t, Config{InitialTimerSec: 1, AntiSnipeThresholdSec: 1, AntiSnipeResetSec: 1, MaxTimerSec: 60})
	h.startLot(t)

	h.clock.Advance(time.Second)
	waitFor(t, func() bool { return h.coordinator.Snapshot().State == StateIdle })

	accepted, err := h.coordinator.PlaceBid(context.Background(), h.owner, h.teamID, 500)
	check.Nil(t, err)
	check.False(t, accepted)
}

// broadcastGate stalls the first lot-result on its way to the recorder so a
// test can observe the coordinator mid-finalization.
type broadcastGate struct {
	next    Broadcaster
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (g *broadcastGate) Broadcast(ev *events.Event) {
	if ev.Type == events.EventTypeLotResult {
		g.once.Do(func() {
			close(g.entered)
			<-g.release
		})
	}
	g.next.Broadcast(ev)
}

func TestFinalize_HoldsSettlingUntilResultIsBroadcast(t *testing.T) {
	gate := &broadcastGate{entered: make(chan struct{}), release: make(chan struct{})}
	h := newHarnessWithBroadcaster(t, Config{InitialTimerSec: 1, AntiSnipeThresholdSec: 1, AntiSnipeResetSec: 1, MaxTimerSec: 60},
		func(next Broadcaster) Broadcaster {
			gate.next = next
			return gate
		})
	h.startLot(t)

	h.clock.Advance(time.Second)
	select {
	case <-gate.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the result broadcast")
	}

	// The result is in flight but not delivered: the session must still be
	// Settling and a new lot must not be able to start and publish ahead
	// of it.
	check.Equal(t, StateSettling, h.coordinator.Snapshot().State)
	err := h.coordinator.StartLot(context.Background(), h.admin, h.lotID)
	check.True(t, errors.Is(err, ErrSessionBusy))

	close(gate.release)
	waitFor(t, func() bool { return h.coordinator.Snapshot().State == StateIdle })

	seq := h.broadcast.types()
	assert.True(t, len(seq) >= 2)
	check.Equal(t, events.EventTypeLotResult, seq[len(seq)-2])
	check.Equal(t, events.EventTypeSessionEnded, seq[len(seq)-1])

	// Only now may the next lot open, after this session's terminal events.
	assert.Nil(t, h.coordinator.StartLot(context.Background(), h.admin, h.lotID))
	seq = h.broadcast.types()
	check.Equal(t, events.EventTypeLotStarted, seq[len(seq)-1])
}

func TestPlaceBid_ConcurrentSameAmountAcceptsExactlyOnce(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	h.startLot(t)

	const bidders = 16
	var wg sync.WaitGroup
	var accepted int32
	for i := 0; i < bidders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := h.coordinator.PlaceBid(context.Background(), h.owner, h.teamID, 200)
			if err == nil && ok {
				atomic.AddInt32(&accepted, 1)
			}
		}()
	}
	wg.Wait()

	// All sixteen bids raced the same highest bid; exactly one may win.
	check.Equal(t, int32(1), accepted)
	check.Equal(t, 1, h.broadcast.countOf(events.EventTypeBidPlaced))
	check.Equal(t, 1, h.broadcast.countOf(events.EventTypeBidApplied))

	snap := h.coordinator.Snapshot()
	check.Equal(t, int64(200), snap.HighestBid)
	check.Equal(t, 2, len(snap.History))
}

func TestCoordinator_NextLotCanStartAfterFinalize(t *testing.T) {
	h := newHarness(t, Config{InitialTimerSec: 1, AntiSnipeThresholdSec: 1, AntiSnipeResetSec: 1, MaxTimerSec: 60})
	h.startLot(t)

	h.clock.Advance(time.Second)
	waitFor(t, func() bool { return h.coordinator.Snapshot().State == StateIdle })

	assert.Nil(t, h.coordinator.StartLot(context.Background(), h.admin, h.lotID))
	check.Equal(t, StateActive, h.coordinator.Snapshot().State)
}
