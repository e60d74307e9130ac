package command

import (
	"fmt"

	"github.com/pixelpour/storefront/internal/session"
)

// LogoutUserCommand represents the command to end a shopper's session.
type LogoutUserCommand struct {
	UserID string
}

// LogoutUserHandler handles logout.
type LogoutUserHandler struct {
	sessions *session.Manager
}

// NewLogoutUserHandler creates a new logout handler.
func NewLogoutUserHandler(sessions *session.Manager) *LogoutUserHandler {
	return &LogoutUserHandler{sessions: sessions}
}

// Handle executes the logout command. Ending the session triggers the cart and
// favorites containers to drop their in-memory collections.
func (h *LogoutUserHandler) Handle(cmd LogoutUserCommand) error {
	if cmd.UserID == "" {
		return fmt.Errorf("user id is required")
	}

	h.sessions.End(cmd.UserID)
	return nil
}
