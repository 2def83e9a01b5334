package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/model"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	sess := &Session{
		ID:          "sess-1",
		AccessToken: "remote-token",
		User:        &model.User{ID: 7, Email: "admin@salon.test"},
		CreatedAt:   time.Now(),
	}
	require.NoError(t, store.Set(ctx, sess, time.Minute))

	got, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "remote-token", got.AccessToken)
	assert.Equal(t, int64(7), got.User.ID)
}

func TestMemoryStoreMissing(t *testing.T) {
	store := NewMemoryStore(time.Minute)

	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, &Session{ID: "sess-2"}, time.Minute))
	require.NoError(t, store.Delete(ctx, "sess-2"))

	_, err := store.Get(ctx, "sess-2")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, &Session{ID: "sess-3"}, 10*time.Millisecond))
	time.Sleep(30 * time.Millisecond)

	_, err := store.Get(ctx, "sess-3")
	assert.ErrorIs(t, err, ErrNotFound)
}
