package command

import (
	"fmt"

	"github.com/pixelpour/storefront/internal/session"
	"github.com/pixelpour/storefront/internal/session/domain"
	"github.com/pixelpour/storefront/pkg/auth"
)

// LoginUserCommand represents the command to log a shopper in.
type LoginUserCommand struct {
	Email    string
	Password string
}

// LoginUserHandler handles shopper login.
type LoginUserHandler struct {
	repo     domain.AccountRepository
	sessions *session.Manager
}

// NewLoginUserHandler creates a new login user handler.
func NewLoginUserHandler(repo domain.AccountRepository, sessions *session.Manager) *LoginUserHandler {
	return &LoginUserHandler{repo: repo, sessions: sessions}
}

// Handle executes the login user command.
func (h *LoginUserHandler) Handle(cmd LoginUserCommand) (*AuthResponse, error) {
	if cmd.Email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if cmd.Password == "" {
		return nil, fmt.Errorf("password is required")
	}

	account, err := h.repo.FindByEmail(cmd.Email)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	if !auth.CheckPassword(account.PasswordHash, cmd.Password) {
		return nil, fmt.Errorf("invalid credentials")
	}

	user := account.User()
	token, err := auth.GenerateToken(user.ID, user.Email, user.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	h.sessions.Begin(user)

	return &AuthResponse{Token: token, User: user}, nil
}
