package teams

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mcdev12/ipl-auction/go/internal/auction"
	"github.com/mcdev12/ipl-auction/go/internal/models"
)

// ActiveEventSource resolves which event team registrations are taken
// against, and the budget they start with.
type ActiveEventSource interface {
	GetActiveEvent(ctx context.Context) (*models.Event, error)
}

// App layers registration rules on top of the team repository. It also
// serves the auction coordinator's team reads.
type App struct {
	repo   *Repository
	events ActiveEventSource
}

func NewApp(repo *Repository, events ActiveEventSource) *App {
	return &App{repo: repo, events: events}
}

type RegisterTeamRequest struct {
	Name    string `json:"name"`
	LogoURL string `json:"logo_url"`
}

// RegisterTeam creates a team for the calling owner against the active
// event, seeded with the event's full budget. One team per owner per event.
func (a *App) RegisterTeam(ctx context.Context, ownerID uuid.UUID, req RegisterTeamRequest) (*models.Team, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("team name is required")
	}

	active, err := a.events.GetActiveEvent(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve active event: %w", err)
	}

	if _, err := a.repo.GetTeamByOwnerAndEvent(ctx, ownerID, active.ID); err == nil {
		return nil, ErrOwnerHasTeam
	} else if !errors.Is(err, ErrTeamNotFound) {
		return nil, err
	}

	return a.repo.InsertTeam(ctx, insertTeamParams{
		Name:    req.Name,
		LogoURL: req.LogoURL,
		OwnerID: ownerID,
		EventID: active.ID,
		Budget:  active.TeamBudget,
	})
}

// GetTeam returns a team with its roster attached.
func (a *App) GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	t, err := a.repo.GetTeam(ctx, id)
	if err != nil {
		return nil, err
	}
	roster, err := a.repo.GetRoster(ctx, id)
	if err != nil {
		return nil, err
	}
	t.Roster = roster
	return t, nil
}

// GetMyTeam returns the calling owner's team for the active event.
func (a *App) GetMyTeam(ctx context.Context, ownerID uuid.UUID) (*models.Team, error) {
	active, err := a.events.GetActiveEvent(ctx)
	if err != nil {
		return nil, ErrTeamNotFound
	}
	t, err := a.repo.GetTeamByOwnerAndEvent(ctx, ownerID, active.ID)
	if err != nil {
		return nil, err
	}
	roster, err := a.repo.GetRoster(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	t.Roster = roster
	return t, nil
}

// ListTeamsByEvent returns an event's teams with rosters attached.
func (a *App) ListTeamsByEvent(ctx context.Context, eventID uuid.UUID) ([]models.Team, error) {
	ts, err := a.repo.ListTeamsByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	for i := range ts {
		roster, err := a.repo.GetRoster(ctx, ts[i].ID)
		if err != nil {
			return nil, err
		}
		ts[i].Roster = roster
	}
	return ts, nil
}

func (a *App) DeleteTeam(ctx context.Context, id uuid.UUID) error {
	return a.repo.DeleteTeam(ctx, id)
}

// GetTeamSnapshot serves the coordinator's bid validation reads.
func (a *App) GetTeamSnapshot(ctx context.Context, id uuid.UUID) (*auction.TeamSnapshot, error) {
	t, err := a.repo.GetTeam(ctx, id)
	if err != nil {
		return nil, err
	}
	counts, err := a.repo.CountRosterByRole(ctx, id)
	if err != nil {
		return nil, err
	}
	var roles []models.PlayerRole
	for role, n := range counts {
		for i := 0; i < n; i++ {
			roles = append(roles, role)
		}
	}
	return &auction.TeamSnapshot{
		ID:              t.ID,
		Name:            t.Name,
		OwnerID:         t.OwnerID,
		EventID:         t.EventID,
		RemainingBudget: t.RemainingBudget,
		RosterRoles:     roles,
	}, nil
}
