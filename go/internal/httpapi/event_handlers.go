package httpapi

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/mcdev12/ipl-auction/go/internal/event"
)

func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}

func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	var req event.CreateEventRequest
	if !decodeBody(w, r, &req) {
		return
	}
	e, err := s.events.CreateEvent(r.Context(), req)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, e)
}

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	es, err := s.events.ListEvents(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list events")
		return
	}
	respondJSON(w, http.StatusOK, es)
}

func (s *Server) handleActiveEvent(w http.ResponseWriter, r *http.Request) {
	e, err := s.events.GetActiveEvent(r.Context())
	if err != nil {
		if errors.Is(err, event.ErrNoActiveEvent) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to get active event")
		return
	}
	respondJSON(w, http.StatusOK, e)
}

func (s *Server) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	e, err := s.events.GetEvent(r.Context(), id)
	if err != nil {
		if errors.Is(err, event.ErrEventNotFound) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to get event")
		return
	}
	respondJSON(w, http.StatusOK, e)
}

func (s *Server) handleActivateEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	e, err := s.events.ActivateEvent(r.Context(), id)
	if err != nil {
		if errors.Is(err, event.ErrEventNotFound) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to activate event")
		return
	}
	respondJSON(w, http.StatusOK, e)
}

func (s *Server) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.events.DeleteEvent(r.Context(), id); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to delete event")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
