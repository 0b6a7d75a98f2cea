package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type entry struct {
	Name string `json:"name"`
}

func TestMemoryStoreGetSetDelete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	var out []entry
	assert.ErrorIs(t, store.Get(ctx, "k", &out), ErrMiss)

	require.NoError(t, store.Set(ctx, "k", []entry{{Name: "Ana"}}, time.Minute))
	require.NoError(t, store.Get(ctx, "k", &out))
	assert.Equal(t, []entry{{Name: "Ana"}}, out)

	require.NoError(t, store.Delete(ctx, "k", "missing"))
	assert.ErrorIs(t, store.Get(ctx, "k", &out), ErrMiss)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	clock := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return clock }

	require.NoError(t, store.Set(ctx, "short", 1, time.Second))
	require.NoError(t, store.Set(ctx, "long", 2, time.Hour))

	clock = clock.Add(2 * time.Second)
	var n int
	assert.ErrorIs(t, store.Get(ctx, "short", &n), ErrMiss)
	require.NoError(t, store.Get(ctx, "long", &n))
	assert.Equal(t, 2, n)

	assert.Equal(t, 2, store.Len())
	assert.Equal(t, 1, store.CleanExpired())
	assert.Equal(t, 1, store.Len())
}

func TestMemoryStoreSweeper(t *testing.T) {
	store := NewMemoryStore()
	assert.Error(t, store.StartSweeper("not a schedule", zap.NewNop()))

	require.NoError(t, store.StartSweeper("@every 1h", zap.NewNop()))
	store.StopSweeper()
}
