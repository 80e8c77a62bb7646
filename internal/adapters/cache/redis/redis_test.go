package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/nulzo/autorouter/internal/core/domain"
	"github.com/nulzo/autorouter/internal/core/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	c, err := New(context.Background(), Config{Addr: srv.Addr(), KeyPrefix: "autorouter:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, srv
}

func TestCache_RoundTrip(t *testing.T) {
	c, srv := newTestCache(t)
	ctx := context.Background()

	var out []domain.ModelRecord
	assert.ErrorIs(t, c.Get(ctx, "catalog", &out), ports.ErrCacheMiss)

	rank := 1
	in := []domain.ModelRecord{{ID: "openai/gpt-4o", Provider: "openai", Flagship: true, Rank: &rank}}
	require.NoError(t, c.Set(ctx, "catalog", in, time.Minute))

	// keys are namespaced
	assert.True(t, srv.Exists("autorouter:catalog"))

	require.NoError(t, c.Get(ctx, "catalog", &out))
	require.Len(t, out, 1)
	assert.Equal(t, "openai/gpt-4o", out[0].ID)
	assert.Equal(t, 1, *out[0].Rank)

	require.NoError(t, c.Delete(ctx, "catalog"))
	assert.ErrorIs(t, c.Get(ctx, "catalog", &out), ports.ErrCacheMiss)
}

func TestCache_Expiry(t *testing.T) {
	c, srv := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "bench", map[string]int{"rank": 2}, time.Hour))
	assert.Equal(t, time.Hour, srv.TTL("autorouter:bench"))

	srv.FastForward(time.Hour + time.Second)

	var out map[string]int
	assert.ErrorIs(t, c.Get(ctx, "bench", &out), ports.ErrCacheMiss)
}

func TestCache_ServerDown(t *testing.T) {
	c, srv := newTestCache(t)
	srv.Close()

	var out map[string]int
	err := c.Get(context.Background(), "catalog", &out)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ports.ErrCacheMiss)
}

func TestNew_Unreachable(t *testing.T) {
	srv := miniredis.RunT(t)
	addr := srv.Addr()
	srv.Close()

	_, err := New(context.Background(), Config{Addr: addr})
	assert.Error(t, err)
}
