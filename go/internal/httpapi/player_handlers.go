package httpapi

import (
	"errors"
	"net/http"

	"github.com/mcdev12/ipl-auction/go/internal/auth"
	"github.com/mcdev12/ipl-auction/go/internal/models"
	"github.com/mcdev12/ipl-auction/go/internal/player"
)

func (s *Server) handleListPlayers(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r)
	if !ok {
		return
	}

	if status := r.URL.Query().Get("status"); status != "" {
		ps, err := s.players.ListPlayersByStatus(r.Context(), eventID, models.PlayerStatus(status))
		if err != nil {
			respondError(w, http.StatusInternalServerError, "failed to list players")
			return
		}
		respondJSON(w, http.StatusOK, ps)
		return
	}

	ps, err := s.players.ListPlayersByEvent(r.Context(), eventID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list players")
		return
	}
	respondJSON(w, http.StatusOK, ps)
}

func (s *Server) handleRegisterPlayer(w http.ResponseWriter, r *http.Request) {
	var req player.RegisterPlayerRequest
	if !decodeBody(w, r, &req) {
		return
	}

	caller := auth.CallerFromContext(r.Context())
	p, err := s.players.RegisterPlayer(r.Context(), caller.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, player.ErrAlreadyRegistered):
			respondError(w, http.StatusConflict, err.Error())
		case errors.Is(err, player.ErrRegistrationClosed):
			respondError(w, http.StatusServiceUnavailable, err.Error())
		default:
			respondError(w, http.StatusBadRequest, err.Error())
		}
		return
	}
	respondJSON(w, http.StatusCreated, p)
}

func (s *Server) handleMyPlayer(w http.ResponseWriter, r *http.Request) {
	caller := auth.CallerFromContext(r.Context())
	p, err := s.players.GetMyPlayer(r.Context(), caller.UserID)
	if err != nil {
		if errors.Is(err, player.ErrPlayerNotFound) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to get player")
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (s *Server) handleUpdateMyPlayer(w http.ResponseWriter, r *http.Request) {
	var req player.RegisterPlayerRequest
	if !decodeBody(w, r, &req) {
		return
	}

	caller := auth.CallerFromContext(r.Context())
	p, err := s.players.UpdateMyPlayer(r.Context(), caller.UserID, req)
	if err != nil {
		if errors.Is(err, player.ErrPlayerNotFound) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (s *Server) handleCreatePlayer(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r)
	if !ok {
		return
	}
	var req player.RegisterPlayerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	p, err := s.players.CreatePlayer(r.Context(), eventID, req)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, p)
}

func (s *Server) handleApprovePlayer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	p, err := s.players.ApprovePlayer(r.Context(), id)
	if err != nil {
		if errors.Is(err, player.ErrPlayerNotFound) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondError(w, http.StatusConflict, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (s *Server) handleReauctionPlayer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	p, err := s.players.ReauctionPlayer(r.Context(), id)
	if err != nil {
		if errors.Is(err, player.ErrPlayerNotFound) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondError(w, http.StatusConflict, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (s *Server) handleDeletePlayer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.players.DeletePlayer(r.Context(), id); err != nil {
		if errors.Is(err, player.ErrPlayerNotFound) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to delete player")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
