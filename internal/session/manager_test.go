package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pixelpour/storefront/internal/session/domain"
)

type recordingListener struct {
	started []string
	ended   []string
}

func (l *recordingListener) SessionStarted(userID string) { l.started = append(l.started, userID) }
func (l *recordingListener) SessionEnded(userID string)   { l.ended = append(l.ended, userID) }

func TestManager_BeginEnd(t *testing.T) {
	m := NewManager()
	user := domain.User{ID: "u1", Name: "Ada", Email: "ada@example.com"}

	assert.False(t, m.Authenticated("u1"))

	m.Begin(user)
	assert.True(t, m.Authenticated("u1"))

	current, ok := m.Current("u1")
	assert.True(t, ok)
	assert.Equal(t, "Ada", current.Name)

	m.End("u1")
	assert.False(t, m.Authenticated("u1"))
}

func TestManager_BeginReplacesExistingSession(t *testing.T) {
	m := NewManager()
	m.Begin(domain.User{ID: "u1", Name: "Ada"})
	m.Begin(domain.User{ID: "u1", Name: "Ada Lovelace"})

	current, ok := m.Current("u1")
	assert.True(t, ok)
	assert.Equal(t, "Ada Lovelace", current.Name)
}

func TestManager_ListenersFireOnTransitions(t *testing.T) {
	m := NewManager()
	listener := &recordingListener{}
	m.AddListener(listener)

	m.Begin(domain.User{ID: "u1"})
	m.End("u1")

	assert.Equal(t, []string{"u1"}, listener.started)
	assert.Equal(t, []string{"u1"}, listener.ended)
}

func TestManager_EndWithoutSessionIsSilent(t *testing.T) {
	m := NewManager()
	listener := &recordingListener{}
	m.AddListener(listener)

	m.End("nobody")
	assert.Empty(t, listener.ended)
}

func TestManager_SessionsAreIndependent(t *testing.T) {
	m := NewManager()
	m.Begin(domain.User{ID: "alice"})
	m.Begin(domain.User{ID: "bob"})

	m.End("alice")
	assert.False(t, m.Authenticated("alice"))
	assert.True(t, m.Authenticated("bob"))
}
