package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/infrastructure/cache"
)

func newCache(t *testing.T, ttl time.Duration) (*cache.DashboardCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return cache.NewDashboardCache(client, ttl), mr
}

func TestDashboardCache_GetSetInvalidate(t *testing.T) {
	c, _ := newCache(t, time.Minute)
	ctx := context.Background()

	gen, err := c.Generation(ctx)
	require.NoError(t, err)
	assert.Zero(t, gen)

	_, ok, err := c.Get(ctx, gen)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, gen, []byte(`{"total_products":3}`)))
	val, ok, err := c.Get(ctx, gen)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"total_products":3}`, string(val))

	require.NoError(t, c.Invalidate(ctx))
	next, err := c.Generation(ctx)
	require.NoError(t, err)
	assert.Equal(t, gen+1, next)
	_, ok, err = c.Get(ctx, next)
	require.NoError(t, err)
	assert.False(t, ok)
}

// Un resumen calculado antes de una escritura y guardado después de invalidar no se sirve.
func TestDashboardCache_SetTardioNoSobreviveInvalidate(t *testing.T) {
	c, mr := newCache(t, time.Minute)
	ctx := context.Background()

	gen, err := c.Generation(ctx)
	require.NoError(t, err)

	require.NoError(t, c.Invalidate(ctx))
	require.NoError(t, c.Set(ctx, gen, []byte(`{"total_products":1}`)))

	current, err := c.Generation(ctx)
	require.NoError(t, err)
	_, ok, err := c.Get(ctx, current)
	require.NoError(t, err)
	assert.False(t, ok, "el Set tardío no debe ser visible en la generación vigente")

	// La clave huérfana expira sola.
	mr.FastForward(61 * time.Second)
	assert.False(t, mr.Exists("almacen:dashboard:summary:0"))
}

func TestDashboardCache_Expira(t *testing.T) {
	c, mr := newCache(t, 30*time.Second)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, 0, []byte("x")))
	mr.FastForward(31 * time.Second)

	_, ok, err := c.Get(ctx, 0)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDashboardCache_SinTTLUsaElPorDefecto(t *testing.T) {
	c, mr := newCache(t, 0)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, 0, []byte("x")))
	assert.Equal(t, cache.DefaultTTL, mr.TTL("almacen:dashboard:summary:0"))
}

func TestDashboardCache_NilEsCacheVacia(t *testing.T) {
	c := cache.NewDashboardCache(nil, time.Minute)
	ctx := context.Background()

	gen, err := c.Generation(ctx)
	assert.NoError(t, err)
	assert.NoError(t, c.Set(ctx, gen, []byte("x")))
	_, ok, err := c.Get(ctx, gen)
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, c.Invalidate(ctx))
}

func TestNewClient_FallaSinServidor(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := cache.NewClient(context.Background(), addr, "", 0)
	assert.Error(t, err)
}
