package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelpour/storefront/internal/session"
	"github.com/pixelpour/storefront/internal/session/domain"
	"github.com/pixelpour/storefront/internal/session/repository"
	"github.com/pixelpour/storefront/pkg/auth"
)

func newHandlers(t *testing.T) (*RegisterUserHandler, *LoginUserHandler, *LogoutUserHandler, *session.Manager) {
	t.Helper()
	repo := repository.NewMemoryAccountRepository()
	sessions := session.NewManager()
	return NewRegisterUserHandler(repo, sessions),
		NewLoginUserHandler(repo, sessions),
		NewLogoutUserHandler(sessions),
		sessions
}

func TestRegister_StartsSessionAndReturnsToken(t *testing.T) {
	register, _, _, sessions := newHandlers(t)

	resp, err := register.Handle(RegisterUserCommand{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token)
	assert.NotEmpty(t, resp.User.ID)
	assert.Equal(t, "Ada", resp.User.Name)
	assert.True(t, sessions.Authenticated(resp.User.ID))

	claims, err := auth.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
}

func TestRegister_ValidatesInput(t *testing.T) {
	register, _, _, _ := newHandlers(t)

	cases := []struct {
		name string
		cmd  RegisterUserCommand
	}{
		{"missing name", RegisterUserCommand{Email: "a@b.c", Password: "secret123"}},
		{"invalid email", RegisterUserCommand{Name: "Ada", Email: "not-an-email", Password: "secret123"}},
		{"short password", RegisterUserCommand{Name: "Ada", Email: "a@b.c", Password: "short"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := register.Handle(tc.cmd)
			assert.Error(t, err)
		})
	}
}

func TestRegister_RejectsDuplicateEmail(t *testing.T) {
	register, _, _, _ := newHandlers(t)

	_, err := register.Handle(RegisterUserCommand{Name: "Ada", Email: "ada@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = register.Handle(RegisterUserCommand{Name: "Imposter", Email: "ADA@example.com", Password: "secret123"})
	require.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestLogin_Succeeds(t *testing.T) {
	register, login, _, sessions := newHandlers(t)

	reg, err := register.Handle(RegisterUserCommand{Name: "Ada", Email: "ada@example.com", Password: "secret123"})
	require.NoError(t, err)

	sessions.End(reg.User.ID)
	require.False(t, sessions.Authenticated(reg.User.ID))

	resp, err := login.Handle(LoginUserCommand{Email: "ada@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, resp.User.ID)
	assert.True(t, sessions.Authenticated(reg.User.ID))
}

func TestLogin_RejectsBadCredentials(t *testing.T) {
	register, login, _, _ := newHandlers(t)

	_, err := register.Handle(RegisterUserCommand{Name: "Ada", Email: "ada@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = login.Handle(LoginUserCommand{Email: "ada@example.com", Password: "wrong-password"})
	assert.Error(t, err)

	_, err = login.Handle(LoginUserCommand{Email: "nobody@example.com", Password: "secret123"})
	assert.Error(t, err)
}

func TestLogout_EndsSession(t *testing.T) {
	register, _, logout, sessions := newHandlers(t)

	resp, err := register.Handle(RegisterUserCommand{Name: "Ada", Email: "ada@example.com", Password: "secret123"})
	require.NoError(t, err)

	require.NoError(t, logout.Handle(LogoutUserCommand{UserID: resp.User.ID}))
	assert.False(t, sessions.Authenticated(resp.User.ID))

	// Logging out twice is harmless
	require.NoError(t, logout.Handle(LogoutUserCommand{UserID: resp.User.ID}))
}

func TestUpdateProfile_RefreshesSessionRecord(t *testing.T) {
	repo := repository.NewMemoryAccountRepository()
	sessions := session.NewManager()
	register := NewRegisterUserHandler(repo, sessions)
	update := NewUpdateProfileHandler(repo, sessions)

	resp, err := register.Handle(RegisterUserCommand{Name: "Ada", Email: "ada@example.com", Password: "secret123"})
	require.NoError(t, err)

	user, err := update.Handle(UpdateProfileCommand{UserID: resp.User.ID, Name: "Ada Lovelace"})
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", user.Name)
	assert.Equal(t, "ada@example.com", user.Email)

	current, ok := sessions.Current(resp.User.ID)
	require.True(t, ok)
	assert.Equal(t, "Ada Lovelace", current.Name)
}
