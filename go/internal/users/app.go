package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mcdev12/ipl-auction/go/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// TokenIssuer mints an access token for a user. Implemented by the auth
// manager.
type TokenIssuer interface {
	Issue(user *models.User) (string, error)
}

// App handles account registration and login.
type App struct {
	repo   *Repository
	tokens TokenIssuer
}

func NewApp(repo *Repository, tokens TokenIssuer) *App {
	return &App{repo: repo, tokens: tokens}
}

type RegisterRequest struct {
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Password string          `json:"password"`
	Role     models.UserRole `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by both register and login.
type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Register creates an account and logs it straight in. The Admin role can
// not be self-assigned; admin accounts are provisioned out of band.
func (a *App) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("name is required")
	}
	if !strings.Contains(req.Email, "@") {
		return nil, fmt.Errorf("a valid email is required")
	}
	if len(req.Password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}
	switch req.Role {
	case models.UserRoleOwner, models.UserRolePlayer:
	case "":
		req.Role = models.UserRolePlayer
	default:
		return nil, fmt.Errorf("role must be Owner or Player")
	}

	if _, err := a.repo.GetUserByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := a.repo.InsertUser(ctx, req.Name, req.Email, string(hash), req.Role)
	if err != nil {
		return nil, err
	}

	token, err := a.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &AuthResponse{Token: token, User: user}, nil
}

// Login verifies credentials and issues a token.
func (a *App) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := a.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := a.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &AuthResponse{Token: token, User: user}, nil
}
