package command

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pixelpour/storefront/internal/session"
	"github.com/pixelpour/storefront/internal/session/domain"
	"github.com/pixelpour/storefront/pkg/auth"
)

// RegisterUserCommand represents the command to register a new shopper.
type RegisterUserCommand struct {
	Name     string
	Email    string
	Password string
}

// AuthResponse is returned by register and login: a session token plus the
// user record now held by the session manager.
type AuthResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// RegisterUserHandler handles shopper registration.
type RegisterUserHandler struct {
	repo     domain.AccountRepository
	sessions *session.Manager
}

// NewRegisterUserHandler creates a new register user handler.
func NewRegisterUserHandler(repo domain.AccountRepository, sessions *session.Manager) *RegisterUserHandler {
	return &RegisterUserHandler{repo: repo, sessions: sessions}
}

// Handle executes the register user command. A successful registration also
// starts the session, the same transition a login performs.
func (h *RegisterUserHandler) Handle(cmd RegisterUserCommand) (*AuthResponse, error) {
	if strings.TrimSpace(cmd.Name) == "" {
		return nil, fmt.Errorf("name is required")
	}
	if !strings.Contains(cmd.Email, "@") {
		return nil, fmt.Errorf("a valid email is required")
	}
	if len(cmd.Password) < 6 {
		return nil, fmt.Errorf("password must be at least 6 characters")
	}

	if existing, _ := h.repo.FindByEmail(cmd.Email); existing != nil {
		return nil, domain.ErrEmailTaken
	}

	hash, err := auth.HashPassword(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &domain.Account{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(cmd.Name),
		Email:        strings.TrimSpace(cmd.Email),
		PasswordHash: hash,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := h.repo.Create(account); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	user := account.User()
	token, err := auth.GenerateToken(user.ID, user.Email, user.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	h.sessions.Begin(user)

	return &AuthResponse{Token: token, User: user}, nil
}
