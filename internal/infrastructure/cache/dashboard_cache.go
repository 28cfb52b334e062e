// Package cache guarda en Redis el resumen del tablero.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// El resumen se guarda bajo la generación vigente. Invalidate incrementa la generación, así
// un Set calculado antes de una escritura queda en una clave que ya nadie lee.
const (
	generationKey = "almacen:dashboard:generation"
	summaryPrefix = "almacen:dashboard:summary:"
)

// DefaultTTL expiración de los resúmenes cuando no se configura otra.
const DefaultTTL = time.Minute

func summaryKey(gen int64) string {
	return summaryPrefix + strconv.FormatInt(gen, 10)
}

// DashboardCache caché del tablero sobre Redis. Un valor nil se comporta como caché vacía.
type DashboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDashboardCache construye la caché. ttl <= 0 usa DefaultTTL.
func NewDashboardCache(client *redis.Client, ttl time.Duration) *DashboardCache {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &DashboardCache{client: client, ttl: ttl}
}

// NewClient abre un cliente Redis y verifica la conexión con PING.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// Generation devuelve la generación vigente (0 si nunca se invalidó).
func (c *DashboardCache) Generation(ctx context.Context) (int64, error) {
	if c == nil {
		return 0, nil
	}
	gen, err := c.client.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis get generation: %w", err)
	}
	return gen, nil
}

// Get devuelve el resumen guardado para la generación. ok=false si no hay valor.
func (c *DashboardCache) Get(ctx context.Context, gen int64) ([]byte, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	val, err := c.client.Get(ctx, summaryKey(gen)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	return val, true, nil
}

// Set guarda el resumen calculado durante la generación gen.
func (c *DashboardCache) Set(ctx context.Context, gen int64, val []byte) error {
	if c == nil || len(val) == 0 {
		return nil
	}
	if err := c.client.Set(ctx, summaryKey(gen), val, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Invalidate abre una generación nueva y borra el resumen de la anterior.
func (c *DashboardCache) Invalidate(ctx context.Context) error {
	if c == nil {
		return nil
	}
	gen, err := c.client.Incr(ctx, generationKey).Result()
	if err != nil {
		return fmt.Errorf("redis incr: %w", err)
	}
	if err := c.client.Del(ctx, summaryKey(gen-1)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
