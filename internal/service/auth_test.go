package service

import (
	"context"
	"testing"
	"time"

	"cosmetics-store-api/internal/cache"
	"cosmetics-store-api/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuth(t *testing.T) (*AuthService, *SessionService, *repository.Store) {
	t.Helper()
	store := newTestStore(t)
	mem := cache.NewMemoryCache()
	t.Cleanup(func() { mem.Close() })

	sessions := NewSessionService(mem, time.Hour)
	auth := NewAuthService(store, sessions, 10000)
	auth.cost = bcrypt.MinCost
	return auth, sessions, store
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	auth, sessions, _ := newTestAuth(t)
	ctx := context.Background()

	reg, err := auth.Register(ctx, " Alice@Example.com ", "alice", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", reg.User.Email)
	assert.Equal(t, int64(10000), reg.User.Balance)
	assert.NotEqual(t, "s3cret-pass", reg.User.PasswordHash)

	sess, err := sessions.Resolve(ctx, reg.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, sess.UserID)

	login, err := auth.Login(ctx, "alice@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, login.User.ID)
	assert.NotEqual(t, reg.Token, login.Token)

	_, err = auth.Login(ctx, "alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = auth.Login(ctx, "nobody@example.com", "s3cret-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_RegisterDuplicates(t *testing.T) {
	auth, _, _ := newTestAuth(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, "alice@example.com", "alice", "password1")
	require.NoError(t, err)

	_, err = auth.Register(ctx, "ALICE@example.com", "other", "password1")
	assert.ErrorIs(t, err, repository.ErrEmailTaken)

	_, err = auth.Register(ctx, "other@example.com", "alice", "password1")
	assert.ErrorIs(t, err, repository.ErrUsernameTaken)
}

func TestAuthService_Logout(t *testing.T) {
	auth, sessions, _ := newTestAuth(t)
	ctx := context.Background()

	reg, err := auth.Register(ctx, "alice@example.com", "alice", "password1")
	require.NoError(t, err)

	require.NoError(t, auth.Logout(ctx, reg.Token))
	_, err = sessions.Resolve(ctx, reg.Token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestSessionService_Expiry(t *testing.T) {
	clock := &testClock{now: baseTime}
	mem := cache.NewMemoryCacheWithClock(clock.Now, time.Hour)
	defer mem.Close()

	sessions := NewSessionService(mem, time.Minute)
	sessions.now = clock.Now
	ctx := context.Background()

	token, err := sessions.Create(ctx, 7)
	require.NoError(t, err)
	assert.Contains(t, token, SessionTokenPrefix)

	sess, err := sessions.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), sess.UserID)

	clock.Advance(2 * time.Minute)
	_, err = sessions.Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestSessionService_RejectsMalformedTokens(t *testing.T) {
	mem := cache.NewMemoryCache()
	defer mem.Close()
	sessions := NewSessionService(mem, time.Minute)

	for _, token := range []string{"", "cst_", "abc", "cst_deadbeef"} {
		_, err := sessions.Resolve(context.Background(), token)
		assert.ErrorIs(t, err, ErrInvalidSession, token)
	}
}
