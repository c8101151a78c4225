package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStateStoreConsumesOnce(t *testing.T) {
	store := NewMemoryStateStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "state-1", time.Minute))
	ok, err := store.Consume(ctx, "state-1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Consume(ctx, "state-1")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = store.Consume(ctx, "never-issued")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStateStoreExpiry(t *testing.T) {
	now := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)
	store := NewMemoryStateStore()
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "old", time.Minute))
	now = now.Add(2 * time.Minute)

	ok, err := store.Consume(ctx, "old")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Put(ctx, "fresh", time.Minute))
	assert.Len(t, store.items, 1)
}
