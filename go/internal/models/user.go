package models

import (
	"time"

	"github.com/google/uuid"
)

// UserRole defines what a user may do on the platform.
type UserRole string

const (
	UserRoleAdmin  UserRole = "Admin"
	UserRoleOwner  UserRole = "Owner"
	UserRolePlayer UserRole = "Player"
)

// User is an authenticated account. Owners control teams, players register
// profiles, admins run the auction.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
