package httpapi

import (
	"errors"
	"net/http"

	"github.com/mcdev12/ipl-auction/go/internal/users"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req users.RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := s.users.Register(r.Context(), req)
	if err != nil {
		if errors.Is(err, users.ErrEmailTaken) {
			respondError(w, http.StatusConflict, err.Error())
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req users.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := s.users.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, users.ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "login failed")
		return
	}
	respondJSON(w, http.StatusOK, resp)
}
