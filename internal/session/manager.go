// Package session tracks which shoppers currently hold an authenticated
// session and notifies the other state containers when a session ends.
package session

import (
	"sync"

	"github.com/pixelpour/storefront/internal/session/domain"
	"github.com/pixelpour/storefront/pkg/logger"
)

// Listener is notified of session transitions. The cart and favorites
// repositories register as listeners and discard their in-memory collections
// when a session ends; stored state stays untouched.
type Listener interface {
	SessionStarted(userID string)
	SessionEnded(userID string)
}

// Manager holds the active session records. A session exists between a
// successful login (or registration) and the matching logout; a valid token
// whose session was ended is rejected until the shopper logs in again.
type Manager struct {
	mu        sync.RWMutex
	active    map[string]domain.User
	listeners []Listener
}

// NewManager creates a manager with no active sessions.
func NewManager() *Manager {
	return &Manager{active: make(map[string]domain.User)}
}

// AddListener registers a listener for session transitions. Not safe to call
// concurrently with Begin/End; wire listeners up at startup.
func (m *Manager) AddListener(l Listener) {
	m.listeners = append(m.listeners, l)
}

// Begin records user as authenticated, replacing any previous record for the
// same id. Profile updates re-submit through here, indistinguishable from a
// fresh login.
func (m *Manager) Begin(user domain.User) {
	m.mu.Lock()
	m.active[user.ID] = user
	m.mu.Unlock()

	logger.Logger.Info().
		Str("user_id", user.ID).
		Str("email", user.Email).
		Msg("Session started")

	for _, l := range m.listeners {
		l.SessionStarted(user.ID)
	}
}

// End clears the user's session. Listeners fire only when a session actually
// existed.
func (m *Manager) End(userID string) {
	m.mu.Lock()
	_, existed := m.active[userID]
	delete(m.active, userID)
	m.mu.Unlock()

	if !existed {
		return
	}

	logger.Logger.Info().
		Str("user_id", userID).
		Msg("Session ended")

	for _, l := range m.listeners {
		l.SessionEnded(userID)
	}
}

// Current returns the session's user record, if the user is authenticated.
func (m *Manager) Current(userID string) (domain.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.active[userID]
	return user, ok
}

// Authenticated reports whether the user holds an active session.
func (m *Manager) Authenticated(userID string) bool {
	_, ok := m.Current(userID)
	return ok
}
