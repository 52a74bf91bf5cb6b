package session_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reservas/entities"
	"reservas/session"
)

func newTestStore(t *testing.T) *session.Store {
	t.Helper()

	rdb := redis.NewClient(&redis.Options{
		Addr: os.Getenv("REDIS_ADDR"),
	})
	t.Cleanup(func() { rdb.Close() })

	return session.NewStore(rdb, time.Minute)
}

func TestStore_CreateGetClear(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.Create(ctx, entities.Session{UserID: 42, AuthToken: "token-42"})
	require.NoError(t, err)

	sess, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 42, sess.UserID)
	assert.Equal(t, "token-42", sess.AuthToken)

	user, err := store.RequireAuthenticated(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 42, user.UserID)
	assert.Equal(t, "token-42", user.Token)

	require.NoError(t, store.Clear(ctx, id))

	// token and user id are gone together
	_, err = store.Get(ctx, id)
	assert.ErrorIs(t, err, session.ErrNotFound)
	_, err = store.RequireAuthenticated(ctx, id)
	assert.ErrorIs(t, err, session.ErrUnauthenticated)
}

func TestStore_RejectsUnauthenticatedSessions(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Create(ctx, entities.Session{UserID: 42})
	assert.ErrorIs(t, err, session.ErrUnauthenticated)

	_, err = store.Create(ctx, entities.Session{AuthToken: "token-42"})
	assert.ErrorIs(t, err, session.ErrUnauthenticated)
}

func TestStore_UnknownSession(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), "does-not-exist")
	assert.ErrorIs(t, err, session.ErrNotFound)
}
