package command

import (
	"fmt"
	"strings"
	"time"

	"github.com/pixelpour/storefront/internal/session"
	"github.com/pixelpour/storefront/internal/session/domain"
	"github.com/pixelpour/storefront/pkg/auth"
)

// UpdateProfileCommand represents the command to update the shopper's own
// profile. Empty fields keep their current values.
type UpdateProfileCommand struct {
	UserID   string
	Name     string
	Email    string
	Password string
}

// UpdateProfileHandler handles profile updates.
type UpdateProfileHandler struct {
	repo     domain.AccountRepository
	sessions *session.Manager
}

// NewUpdateProfileHandler creates a new update profile handler.
func NewUpdateProfileHandler(repo domain.AccountRepository, sessions *session.Manager) *UpdateProfileHandler {
	return &UpdateProfileHandler{repo: repo, sessions: sessions}
}

// Handle executes the update profile command. The refreshed record is
// re-submitted to the session manager, the same transition as a fresh login.
func (h *UpdateProfileHandler) Handle(cmd UpdateProfileCommand) (*domain.User, error) {
	if cmd.UserID == "" {
		return nil, fmt.Errorf("user id is required")
	}

	account, err := h.repo.FindByID(cmd.UserID)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(cmd.Name); name != "" {
		account.Name = name
	}
	if email := strings.TrimSpace(cmd.Email); email != "" {
		if !strings.Contains(email, "@") {
			return nil, fmt.Errorf("a valid email is required")
		}
		account.Email = email
	}
	if cmd.Password != "" {
		if len(cmd.Password) < 6 {
			return nil, fmt.Errorf("password must be at least 6 characters")
		}
		hash, err := auth.HashPassword(cmd.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		account.PasswordHash = hash
	}
	account.UpdatedAt = time.Now()

	if err := h.repo.Update(account); err != nil {
		return nil, err
	}

	user := account.User()
	h.sessions.Begin(user)

	return &user, nil
}
