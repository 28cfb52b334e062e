package ledger

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad del ciclo bloquear → leer cantidad → validar → escribir.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		invRepo repository.InventoryRepository,
		txRepo repository.TransactionRepository,
	) error) error
}

// CacheInvalidator descarta lecturas cacheadas que dependen de las cantidades.
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}
