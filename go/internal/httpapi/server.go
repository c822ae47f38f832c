package httpapi

import (
	"net/http"

	"github.com/mcdev12/ipl-auction/go/internal/auth"
	"github.com/mcdev12/ipl-auction/go/internal/event"
	"github.com/mcdev12/ipl-auction/go/internal/fixture"
	"github.com/mcdev12/ipl-auction/go/internal/models"
	"github.com/mcdev12/ipl-auction/go/internal/player"
	"github.com/mcdev12/ipl-auction/go/internal/settlement"
	"github.com/mcdev12/ipl-auction/go/internal/teams"
	"github.com/mcdev12/ipl-auction/go/internal/users"
)

// Server carries the app layers behind the REST surface. The live auction
// itself runs over WebSocket; everything here is registration, curation and
// read models.
type Server struct {
	users      *users.App
	events     *event.App
	players    *player.App
	teams      *teams.App
	fixtures   *fixture.App
	settlement *settlement.Repository
}

func NewServer(users *users.App, events *event.App, players *player.App, teams *teams.App, fixtures *fixture.App, settlement *settlement.Repository) *Server {
	return &Server{
		users:      users,
		events:     events,
		players:    players,
		teams:      teams,
		fixtures:   fixtures,
		settlement: settlement,
	}
}

// RegisterRoutes mounts the REST API on mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return auth.RequireRole(models.UserRoleAdmin, h)
	}

	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)

	mux.HandleFunc("GET /api/events", s.handleListEvents)
	mux.HandleFunc("GET /api/events/active", s.handleActiveEvent)
	mux.HandleFunc("GET /api/events/{id}", s.handleGetEvent)
	mux.HandleFunc("POST /api/events", admin(s.handleCreateEvent))
	mux.HandleFunc("POST /api/events/{id}/activate", admin(s.handleActivateEvent))
	mux.HandleFunc("DELETE /api/events/{id}", admin(s.handleDeleteEvent))

	mux.HandleFunc("GET /api/events/{id}/players", s.handleListPlayers)
	mux.HandleFunc("POST /api/players/register", auth.RequireAuth(s.handleRegisterPlayer))
	mux.HandleFunc("GET /api/players/me", auth.RequireAuth(s.handleMyPlayer))
	mux.HandleFunc("PUT /api/players/me", auth.RequireAuth(s.handleUpdateMyPlayer))
	mux.HandleFunc("POST /api/events/{id}/players", admin(s.handleCreatePlayer))
	mux.HandleFunc("POST /api/players/{id}/approve", admin(s.handleApprovePlayer))
	mux.HandleFunc("POST /api/players/{id}/reauction", admin(s.handleReauctionPlayer))
	mux.HandleFunc("DELETE /api/players/{id}", admin(s.handleDeletePlayer))

	mux.HandleFunc("POST /api/teams/register", auth.RequireAuth(s.handleRegisterTeam))
	mux.HandleFunc("GET /api/teams/me", auth.RequireAuth(s.handleMyTeam))
	mux.HandleFunc("GET /api/teams/{id}", s.handleGetTeam)
	mux.HandleFunc("GET /api/events/{id}/teams", s.handleListTeams)

	mux.HandleFunc("POST /api/events/{id}/fixtures", admin(s.handleSyncFixtures))
	mux.HandleFunc("GET /api/events/{id}/fixtures", s.handleListFixtures)

	mux.HandleFunc("GET /api/events/{id}/sales", s.handleListSales)
}
