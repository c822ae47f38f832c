package auction

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/ipl-auction/go/internal/auction/events"
	"github.com/mcdev12/ipl-auction/go/internal/models"
	"github.com/rs/zerolog/log"
)

// LotStore reads lot (player) records from the durable store.
type LotStore interface {
	GetLot(ctx context.Context, id uuid.UUID) (*models.Player, error)
}

// TeamStore reads team snapshots from the durable store.
type TeamStore interface {
	GetTeamSnapshot(ctx context.Context, id uuid.UUID) (*TeamSnapshot, error)
}

// EventStore reads event state and role-quota configuration.
type EventStore interface {
	GetActiveEvent(ctx context.Context) (*models.Event, error)
	GetRoleLimits(ctx context.Context, eventID uuid.UUID) (models.RoleLimits, error)
}

// Settler performs the durable side of finalization.
type Settler interface {
	// SettleLot atomically debits the team, appends the lot to its roster,
	// marks the lot Sold and writes the ledger entry. Returns
	// settlement.ErrInsufficientBudget if the re-checked budget no longer
	// covers the amount.
	SettleLot(ctx context.Context, lotID, teamID uuid.UUID, amount int64) error
	MarkUnsold(ctx context.Context, lotID uuid.UUID) error
}

// Broadcaster fans an event out to every connected viewer.
type Broadcaster interface {
	Broadcast(ev *events.Event)
}

// Coordinator owns the single auction session. Every mutation — bid
// acceptance, timer tick, finalization — is serialized through its mutex,
// so two near-simultaneous bids can never both be judged against the same
// stale highest bid.
type Coordinator struct {
	lots        LotStore
	teams       TeamStore
	eventStore  EventStore
	settler     Settler
	broadcaster Broadcaster
	clock       clockwork.Clock
	cfg         Config

	mu    sync.Mutex
	state State
	sess  *session
	// gen identifies the session incarnation. The timer goroutine carries
	// the gen it was started with; a tick whose gen no longer matches
	// belongs to a finalized lot and must do nothing.
	gen       uint64
	timerStop chan struct{}
}

// NewCoordinator wires the coordinator. A nil clock gets the real clock;
// tests inject a clockwork.FakeClock.
func NewCoordinator(lots LotStore, teams TeamStore, eventStore EventStore, settler Settler, broadcaster Broadcaster, cfg Config, clock clockwork.Clock) *Coordinator {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if cfg.MaxTimerSec <= 0 {
		cfg.MaxTimerSec = DefaultConfig().MaxTimerSec
	}
	if cfg.InitialTimerSec <= 0 || cfg.InitialTimerSec > cfg.MaxTimerSec {
		cfg.InitialTimerSec = DefaultConfig().InitialTimerSec
	}
	if cfg.AntiSnipeResetSec <= 0 || cfg.AntiSnipeResetSec > cfg.MaxTimerSec {
		cfg.AntiSnipeResetSec = DefaultConfig().AntiSnipeResetSec
	}
	return &Coordinator{
		lots:        lots,
		teams:       teams,
		eventStore:  eventStore,
		settler:     settler,
		broadcaster: broadcaster,
		clock:       clock,
		cfg:         cfg,
		state:       StateIdle,
	}
}

// StartLot puts an approved lot of the active event under the hammer.
// Admin only. Rejections are explicit and mutate nothing.
func (c *Coordinator) StartLot(ctx context.Context, caller Caller, lotID uuid.UUID) error {
	if !caller.IsAdmin() {
		return ErrUnauthorized
	}

	c.mu.Lock()
	if c.state != StateIdle {
		c.mu.Unlock()
		return ErrSessionBusy
	}
	c.mu.Unlock()

	lot, err := c.lots.GetLot(ctx, lotID)
	if err != nil {
		return fmt.Errorf("fetch lot: %w", err)
	}
	if lot.Status != models.PlayerStatusApproved {
		return ErrLotNotApproved
	}
	active, err := c.eventStore.GetActiveEvent(ctx)
	if err != nil {
		return ErrNoActiveEvent
	}
	if lot.EventID != active.ID {
		return ErrLotWrongEvent
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// State may have moved while we were reading the store.
	if c.state != StateIdle {
		return ErrSessionBusy
	}

	c.gen++
	c.state = StateActive
	c.sess = newSession(lot, c.cfg.InitialTimerSec, c.clock.Now())
	c.timerStop = make(chan struct{})
	go c.runTimer(c.gen, c.timerStop)

	c.publish(events.EventTypeLotStarted, events.LotStartedPayload{
		Lot:              c.sess.lotView(),
		HighestBid:       c.sess.highestBid,
		HighestBidder:    c.sess.highestBidderLabel,
		RemainingSeconds: c.sess.remainingSeconds,
		History:          c.sess.historyCopy(),
	})

	log.Info().
		Str("lot_id", lot.ID.String()).
		Str("lot_name", lot.Name).
		Int64("base_price", lot.BasePrice).
		Int("timer_sec", c.sess.remainingSeconds).
		Msg("lot started")
	return nil
}

// PlaceBid proposes a bid for the active lot. Authorization and ownership
// violations come back as errors; every other invalid bid is a silent
// no-op — accepted=false, err=nil — which is the deliberate contract.
func (c *Coordinator) PlaceBid(ctx context.Context, caller Caller, teamID uuid.UUID, amount int64) (bool, error) {
	// Cheap pre-check against the live session before touching the store.
	// The authoritative decision is re-made under the lock below.
	c.mu.Lock()
	if c.state != StateActive || amount <= c.sess.highestBid {
		c.mu.Unlock()
		return false, nil
	}
	gen := c.gen
	lotEventID := c.sess.lot.EventID
	c.mu.Unlock()

	team, err := c.teams.GetTeamSnapshot(ctx, teamID)
	if err != nil {
		log.Debug().Err(err).Str("team_id", teamID.String()).Msg("bid dropped: team lookup failed")
		return false, nil
	}
	limits, err := c.eventStore.GetRoleLimits(ctx, lotEventID)
	if err != nil {
		// Missing config means no quota to enforce.
		log.Debug().Err(err).Str("event_id", lotEventID.String()).Msg("role limits unavailable, treating as unlimited")
		limits = nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen || c.state != StateActive {
		// Lot finalized while we were reading the store.
		return false, nil
	}

	view := SessionView{
		Active:     true,
		HighestBid: c.sess.highestBid,
		LotRole:    c.sess.lot.Role,
		LotEventID: c.sess.lot.EventID,
	}
	decision := Decide(view, team, limits, amount, caller)
	if !decision.Accepted {
		log.Debug().
			Str("team_id", teamID.String()).
			Int64("amount", amount).
			Str("reason", string(decision.Reason)).
			Msg("bid rejected")
		switch decision.Reason {
		case RejectUnauthenticated:
			return false, ErrUnauthorized
		case RejectNotOwner:
			return false, ErrNotTeamOwner
		}
		return false, nil
	}

	c.sess.applyBid(team, amount, c.clock.Now())
	if c.sess.remainingSeconds < c.cfg.AntiSnipeThresholdSec {
		c.sess.remainingSeconds = c.cfg.AntiSnipeResetSec
	}

	c.publish(events.EventTypeBidPlaced, events.BidPlacedPayload{
		BidderLabel: team.Name,
		Amount:      amount,
	})
	c.publish(events.EventTypeBidApplied, events.BidAppliedPayload{
		HighestBid:       c.sess.highestBid,
		HighestBidder:    c.sess.highestBidderLabel,
		RemainingSeconds: c.sess.remainingSeconds,
		History:          c.sess.historyCopy(),
	})

	log.Info().
		Str("team", team.Name).
		Int64("amount", amount).
		Int("timer_sec", c.sess.remainingSeconds).
		Msg("bid accepted")
	return true, nil
}

// Snapshot returns a read-only view of the current session for state sync.
func (c *Coordinator) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{State: c.state}
	if c.sess != nil {
		view := c.sess.lotView()
		snap.Lot = &view
		snap.HighestBid = c.sess.highestBid
		snap.HighestBidder = c.sess.highestBidderLabel
		snap.RemainingSeconds = c.sess.remainingSeconds
		snap.History = c.sess.historyCopy()
	}
	return snap
}

// runTimer drives the one-second countdown for a single session generation.
func (c *Coordinator) runTimer(gen uint64, stop <-chan struct{}) {
	ticker := c.clock.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.Chan():
			if done := c.tick(gen); done {
				return
			}
		}
	}
}

// tick applies one countdown second. Returns true once this generation's
// timer must stop, either because the session moved on or because the
// countdown hit zero and finalization ran.
func (c *Coordinator) tick(gen uint64) bool {
	c.mu.Lock()
	if c.gen != gen || c.state != StateActive {
		c.mu.Unlock()
		return true
	}

	c.sess.remainingSeconds--
	if c.sess.remainingSeconds < 0 {
		c.sess.remainingSeconds = 0
	}
	c.publish(events.EventTypeTimerTick, events.TimerTickPayload{
		RemainingSeconds: c.sess.remainingSeconds,
	})
	if c.sess.remainingSeconds > 0 {
		c.mu.Unlock()
		return false
	}

	// Countdown exhausted. Bump the generation before anything else so a
	// duplicate tick can never reach finalization, then hold Settling until
	// the durable work is done — a new lot must not start against budgets
	// that are still being written.
	c.gen++
	c.state = StateSettling
	snap := c.finalSnapshot()
	c.mu.Unlock()

	c.finalize(snap)
	return true
}

func (c *Coordinator) publish(eventType events.EventType, payload any) {
	ev, err := events.New(eventType, payload)
	if err != nil {
		log.Error().Err(err).Str("event_type", string(eventType)).Msg("failed to build event")
		return
	}
	c.broadcaster.Broadcast(ev)
}
