package player

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mcdev12/ipl-auction/go/internal/event"
	"github.com/mcdev12/ipl-auction/go/internal/models"
)

// ActiveEventSource resolves which event registrations are taken against.
type ActiveEventSource interface {
	GetActiveEvent(ctx context.Context) (*models.Event, error)
}

// App layers registration and lifecycle rules on top of the player
// repository. It also serves the auction coordinator's lot reads.
type App struct {
	repo   *Repository
	events ActiveEventSource
}

func NewApp(repo *Repository, events ActiveEventSource) *App {
	return &App{repo: repo, events: events}
}

// RegisterPlayerRequest is a self-service registration for the active event.
type RegisterPlayerRequest struct {
	Name      string             `json:"name"`
	Age       int                `json:"age"`
	PhotoURL  string             `json:"photo_url"`
	Role      models.PlayerRole  `json:"role"`
	BasePrice int64              `json:"base_price"`
	Stats     models.PlayerStats `json:"stats"`
}

// RegisterPlayer creates a Pending profile for the calling user against the
// active event. One profile per user per event.
func (a *App) RegisterPlayer(ctx context.Context, userID uuid.UUID, req RegisterPlayerRequest) (*models.Player, error) {
	if err := validateProfile(req.Name, req.Age, req.Role, req.BasePrice); err != nil {
		return nil, err
	}

	active, err := a.events.GetActiveEvent(ctx)
	if err != nil {
		if errors.Is(err, event.ErrNoActiveEvent) {
			return nil, ErrRegistrationClosed
		}
		return nil, fmt.Errorf("resolve active event: %w", err)
	}

	if _, err := a.repo.GetPlayerByUserAndEvent(ctx, userID, active.ID); err == nil {
		return nil, ErrAlreadyRegistered
	} else if !errors.Is(err, ErrPlayerNotFound) {
		return nil, err
	}

	return a.repo.InsertPlayer(ctx, insertPlayerParams{
		UserID:    userID,
		EventID:   active.ID,
		Name:      req.Name,
		Age:       req.Age,
		PhotoURL:  req.PhotoURL,
		Role:      req.Role,
		BasePrice: req.BasePrice,
		Stats:     req.Stats,
		Status:    models.PlayerStatusPending,
	})
}

// CreatePlayer is the admin path: the profile lands Approved immediately.
func (a *App) CreatePlayer(ctx context.Context, eventID uuid.UUID, req RegisterPlayerRequest) (*models.Player, error) {
	if err := validateProfile(req.Name, req.Age, req.Role, req.BasePrice); err != nil {
		return nil, err
	}
	return a.repo.InsertPlayer(ctx, insertPlayerParams{
		UserID:    uuid.Nil,
		EventID:   eventID,
		Name:      req.Name,
		Age:       req.Age,
		PhotoURL:  req.PhotoURL,
		Role:      req.Role,
		BasePrice: req.BasePrice,
		Stats:     req.Stats,
		Status:    models.PlayerStatusApproved,
	})
}

func (a *App) GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	return a.repo.GetPlayer(ctx, id)
}

// GetMyPlayer returns the calling user's profile for the active event.
func (a *App) GetMyPlayer(ctx context.Context, userID uuid.UUID) (*models.Player, error) {
	active, err := a.events.GetActiveEvent(ctx)
	if err != nil {
		return nil, ErrPlayerNotFound
	}
	return a.repo.GetPlayerByUserAndEvent(ctx, userID, active.ID)
}

// UpdateMyPlayer edits the calling user's profile. Approved and later
// profiles are locked; the auction card must not shift under the admin.
func (a *App) UpdateMyPlayer(ctx context.Context, userID uuid.UUID, req RegisterPlayerRequest) (*models.Player, error) {
	p, err := a.GetMyPlayer(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p.Status != models.PlayerStatusPending {
		return nil, fmt.Errorf("profile is %s and can no longer be edited", p.Status)
	}
	if err := validateProfile(req.Name, req.Age, req.Role, req.BasePrice); err != nil {
		return nil, err
	}
	return a.repo.UpdateProfile(ctx, p.ID, insertPlayerParams{
		Name:      req.Name,
		Age:       req.Age,
		PhotoURL:  req.PhotoURL,
		Role:      req.Role,
		BasePrice: req.BasePrice,
		Stats:     req.Stats,
	})
}

func (a *App) ListPlayersByEvent(ctx context.Context, eventID uuid.UUID) ([]models.Player, error) {
	return a.repo.ListPlayersByEvent(ctx, eventID)
}

func (a *App) ListPlayersByStatus(ctx context.Context, eventID uuid.UUID, status models.PlayerStatus) ([]models.Player, error) {
	return a.repo.ListPlayersByStatus(ctx, eventID, status)
}

// ApprovePlayer moves a Pending profile to Approved, making it eligible
// for the block.
func (a *App) ApprovePlayer(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	p, err := a.repo.GetPlayer(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Status != models.PlayerStatusPending {
		return nil, fmt.Errorf("player %s is %s, only Pending players can be approved", id, p.Status)
	}
	return a.repo.UpdatePlayerStatus(ctx, id, models.PlayerStatusApproved)
}

// ReauctionPlayer resets a Sold or Unsold player for another run.
func (a *App) ReauctionPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	p, err := a.repo.GetPlayer(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Status != models.PlayerStatusSold && p.Status != models.PlayerStatusUnsold {
		return nil, fmt.Errorf("player %s is %s, only Sold or Unsold players can be re-auctioned", id, p.Status)
	}
	return a.repo.ResetForReauction(ctx, id)
}

func (a *App) DeletePlayer(ctx context.Context, id uuid.UUID) error {
	return a.repo.DeletePlayer(ctx, id)
}

// GetLot serves the coordinator's lot reads.
func (a *App) GetLot(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	return a.repo.GetPlayer(ctx, id)
}

func validateProfile(name string, age int, role models.PlayerRole, basePrice int64) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("player name is required")
	}
	if age < 14 || age > 60 {
		return fmt.Errorf("player age must be between 14 and 60")
	}
	switch role {
	case models.PlayerRoleBatsman, models.PlayerRoleBowler, models.PlayerRoleAllRounder, models.PlayerRoleWicketkeeper:
	default:
		return fmt.Errorf("unknown player role %q", role)
	}
	if basePrice <= 0 {
		return fmt.Errorf("base price must be positive")
	}
	return nil
}
