package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cavemanlearn/bff/internal/core/sessions"
)

func newTestStore(t *testing.T, ttl time.Duration) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewSessionStore(client, ttl), mr
}

func TestGetMissingSession(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)

	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, sessions.ErrNotFound)
}

func TestSaveGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t, time.Hour)

	sess := sessions.New("sid-1")
	sess.BeginAuth("state-abc")
	require.NoError(t, store.Save(ctx, sess))

	got, err := store.Get(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, "sid-1", got.ID)
	assert.Equal(t, sessions.PhasePendingAuth, got.Phase)
	assert.Equal(t, "state-abc", got.OAuthState)
	assert.Empty(t, got.AccessToken)
}

func TestSaveReplacesExisting(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t, time.Hour)

	sess := sessions.New("sid-1")
	sess.BeginAuth("state-abc")
	require.NoError(t, store.Save(ctx, sess))

	sess.Authenticate("tok123")
	require.NoError(t, store.Save(ctx, sess))

	got, err := store.Get(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, sessions.PhaseAuthenticated, got.Phase)
	assert.Equal(t, "tok123", got.AccessToken)
	assert.Empty(t, got.OAuthState)
}

func TestSaveAppliesTTL(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t, time.Hour)

	require.NoError(t, store.Save(ctx, sessions.New("sid-1")))
	assert.Equal(t, time.Hour, mr.TTL("session:sid-1"))

	// Once the TTL elapses the session is gone.
	mr.FastForward(2 * time.Hour)
	_, err := store.Get(ctx, "sid-1")
	assert.ErrorIs(t, err, sessions.ErrNotFound)
}

func TestZeroTTLDefaults(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t, 0)

	require.NoError(t, store.Save(ctx, sessions.New("sid-1")))
	assert.Equal(t, 24*time.Hour, mr.TTL("session:sid-1"))
}

func TestDeleteSession(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t, time.Hour)

	require.NoError(t, store.Save(ctx, sessions.New("sid-1")))
	require.NoError(t, store.Delete(ctx, "sid-1"))

	_, err := store.Get(ctx, "sid-1")
	assert.ErrorIs(t, err, sessions.ErrNotFound)

	// Deleting a missing session is not an error.
	assert.NoError(t, store.Delete(ctx, "sid-1"))
}

func TestConnect(t *testing.T) {
	t.Run("connects and pings", func(t *testing.T) {
		mr := miniredis.RunT(t)
		client, err := Connect(context.Background(), "redis://"+mr.Addr())
		require.NoError(t, err)
		defer client.Close()
	})

	t.Run("rejects malformed URL", func(t *testing.T) {
		_, err := Connect(context.Background(), "not-a-url")
		assert.Error(t, err)
	})
}
