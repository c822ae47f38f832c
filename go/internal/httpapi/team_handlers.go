package httpapi

import (
	"errors"
	"net/http"

	"github.com/mcdev12/ipl-auction/go/internal/auth"
	"github.com/mcdev12/ipl-auction/go/internal/teams"
	"github.com/rs/zerolog/log"
)

func (s *Server) handleRegisterTeam(w http.ResponseWriter, r *http.Request) {
	var req teams.RegisterTeamRequest
	if !decodeBody(w, r, &req) {
		return
	}

	caller := auth.CallerFromContext(r.Context())
	t, err := s.teams.RegisterTeam(r.Context(), caller.UserID, req)
	if err != nil {
		if errors.Is(err, teams.ErrOwnerHasTeam) {
			respondError(w, http.StatusConflict, err.Error())
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Every new team extends the round-robin schedule. A scheduling hiccup
	// must not fail the registration itself.
	if _, err := s.fixtures.SyncFixtures(r.Context(), t.EventID); err != nil {
		log.Warn().Err(err).Str("event_id", t.EventID.String()).Msg("failed to extend fixtures after team registration")
	}

	respondJSON(w, http.StatusCreated, t)
}

func (s *Server) handleMyTeam(w http.ResponseWriter, r *http.Request) {
	caller := auth.CallerFromContext(r.Context())
	t, err := s.teams.GetMyTeam(r.Context(), caller.UserID)
	if err != nil {
		if errors.Is(err, teams.ErrTeamNotFound) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to get team")
		return
	}
	respondJSON(w, http.StatusOK, t)
}

func (s *Server) handleGetTeam(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	t, err := s.teams.GetTeam(r.Context(), id)
	if err != nil {
		if errors.Is(err, teams.ErrTeamNotFound) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to get team")
		return
	}
	respondJSON(w, http.StatusOK, t)
}

func (s *Server) handleListTeams(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r)
	if !ok {
		return
	}
	ts, err := s.teams.ListTeamsByEvent(r.Context(), eventID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list teams")
		return
	}
	respondJSON(w, http.StatusOK, ts)
}
