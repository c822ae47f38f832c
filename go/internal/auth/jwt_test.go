package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/mcdev12/ipl-auction/go/internal/models"
	"github.com/peterldowns/testy/assert"
	"github.com/peterldowns/testy/check"
)

func TestManager_IssueAndParseRoundTrip(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	user := &models.User{ID: uuid.New(), Role: models.UserRoleOwner}

	token, err := m.Issue(user)
	assert.Nil(t, err)

	caller, err := m.ParseCaller(token)
	assert.Nil(t, err)
	check.True(t, caller.Authenticated)
	check.Equal(t, user.ID, caller.UserID)
	check.Equal(t, models.UserRoleOwner, caller.Role)
}

func TestManager_RejectsGarbageToken(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	_, err := m.ParseCaller("not-a-token")

	check.Equal(t, ErrInvalidToken, err, cmpopts.EquateErrors())
}

func TestManager_RejectsTokenSignedWithOtherSecret(t *testing.T) {
	issuer := NewManager("secret-a", time.Hour)
	verifier := NewManager("secret-b", time.Hour)
	user := &models.User{ID: uuid.New(), Role: models.UserRoleAdmin}

	token, err := issuer.Issue(user)
	assert.Nil(t, err)

	_, err = verifier.ParseCaller(token)
	check.Equal(t, ErrInvalidToken, err, cmpopts.EquateErrors())
}

func TestManager_RejectsExpiredToken(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	claims := Claims{
		Role: models.UserRolePlayer,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	assert.Nil(t, err)

	_, err = m.ParseCaller(token)
	check.Equal(t, ErrInvalidToken, err, cmpopts.EquateErrors())
}
