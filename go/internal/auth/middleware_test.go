package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/ipl-auction/go/internal/auction"
	"github.com/mcdev12/ipl-auction/go/internal/models"
	"github.com/peterldowns/testy/assert"
	"github.com/peterldowns/testy/check"
)

func TestMiddleware_AttachesCallerFromBearerToken(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	user := &models.User{ID: uuid.New(), Role: models.UserRoleAdmin}
	token, err := m.Issue(user)
	assert.Nil(t, err)

	var got auction.Caller
	handler := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = CallerFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	check.True(t, got.Authenticated)
	check.Equal(t, user.ID, got.UserID)
}

func TestMiddleware_InvalidTokenDegradesToAnonymous(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	var got auction.Caller
	handler := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = CallerFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	check.False(t, got.Authenticated)
}

func TestRequireAuth_RejectsAnonymous(t *testing.T) {
	called := false
	handler := RequireAuth(func(w http.ResponseWriter, r *http.Request) { called = true })

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	check.Equal(t, http.StatusUnauthorized, rec.Code)
	check.False(t, called)
}

func TestRequireRole_RejectsWrongRole(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	token, err := m.Issue(&models.User{ID: uuid.New(), Role: models.UserRoleOwner})
	assert.Nil(t, err)

	called := false
	handler := m.Middleware(http.HandlerFunc(
		RequireRole(models.UserRoleAdmin, func(w http.ResponseWriter, r *http.Request) { called = true }),
	))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	check.Equal(t, http.StatusForbidden, rec.Code)
	check.False(t, called)
}
