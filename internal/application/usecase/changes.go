package usecase

import (
	"context"

	"github.com/jhoicas/almacen-api/pkg/logger"
)

// CacheInvalidator descarta lecturas cacheadas que muestran datos del catálogo (tablero).
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

// Option configura los casos de uso del catálogo.
type Option func(*changes)

// WithInvalidator invalida inv después de cada escritura confirmada.
func WithInvalidator(inv CacheInvalidator) Option {
	return func(c *changes) { c.inv = inv }
}

// WithLogger registra los fallos de invalidación.
func WithLogger(log *logger.Logger) Option {
	return func(c *changes) { c.log = log }
}

type changes struct {
	inv CacheInvalidator
	log *logger.Logger
}

func newChanges(opts []Option) changes {
	c := changes{log: logger.Nop()}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// notify se llama tras una escritura exitosa. Un fallo de la caché no revierte la escritura.
func (c changes) notify(ctx context.Context, entity, id string) {
	if c.inv == nil {
		return
	}
	if err := c.inv.Invalidate(ctx); err != nil {
		c.log.Warn().Err(err).Str("entity", entity).Str("id", id).Msg("invalidar caché del tablero")
	}
}
