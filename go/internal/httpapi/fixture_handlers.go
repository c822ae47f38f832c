package httpapi

import (
	"net/http"
)

func (s *Server) handleSyncFixtures(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r)
	if !ok {
		return
	}
	fs, err := s.fixtures.SyncFixtures(r.Context(), eventID)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, fs)
}

func (s *Server) handleListFixtures(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r)
	if !ok {
		return
	}
	fs, err := s.fixtures.ListFixtures(r.Context(), eventID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list fixtures")
		return
	}
	respondJSON(w, http.StatusOK, fs)
}

func (s *Server) handleListSales(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r)
	if !ok {
		return
	}
	sales, err := s.settlement.ListSales(r.Context(), eventID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list sales")
		return
	}
	respondJSON(w, http.StatusOK, sales)
}
