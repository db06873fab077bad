package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(t *testing.T) *RedisAdapter {
	t.Helper()

	mr := miniredis.RunT(t)

	adapter, err := NewRedisAdapter("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { adapter.Close() })

	return adapter
}

func TestRedisAdapter_GetSet(t *testing.T) {
	adapter := newTestAdapter(t)
	ctx := context.Background()

	value := []byte(`{"id":"run-1","trigger":"scheduler","total":3}`)

	err := adapter.Set(ctx, "latest_tracking_run", value, 0)
	assert.NoError(t, err)

	retrieved, err := adapter.Get(ctx, "latest_tracking_run")
	assert.NoError(t, err)
	assert.Equal(t, value, retrieved)
}

func TestRedisAdapter_GetNotFound(t *testing.T) {
	adapter := newTestAdapter(t)

	_, err := adapter.Get(context.Background(), "latest_tracking_run")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrKeyNotFound)
	assert.Contains(t, err.Error(), "latest_tracking_run")
}

func TestRedisAdapter_Delete(t *testing.T) {
	adapter := newTestAdapter(t)
	ctx := context.Background()

	require.NoError(t, adapter.Set(ctx, "latest_tracking_run", []byte(`{}`), 0))
	assert.NoError(t, adapter.Delete(ctx, "latest_tracking_run"))

	_, err := adapter.Get(ctx, "latest_tracking_run")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	// Deleting an absent key is not an error
	assert.NoError(t, adapter.Delete(ctx, "latest_tracking_run"))
}

func TestRedisAdapter_TTL(t *testing.T) {
	mr := miniredis.RunT(t)

	adapter, err := NewRedisAdapter("redis://" + mr.Addr())
	require.NoError(t, err)
	defer adapter.Close()

	ctx := context.Background()

	require.NoError(t, adapter.Set(ctx, "expiring", []byte("soon gone"), 1*time.Second))

	_, err = adapter.Get(ctx, "expiring")
	assert.NoError(t, err)

	mr.FastForward(2 * time.Second)

	_, err = adapter.Get(ctx, "expiring")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestRedisAdapter_Ping(t *testing.T) {
	adapter := newTestAdapter(t)

	assert.NoError(t, adapter.Ping(context.Background()))
}

func TestRedisAdapter_InvalidURL(t *testing.T) {
	_, err := NewRedisAdapter("invalid://url")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse Redis URL")
}
