package repository

import (
	"context"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// WarehouseRepository define el puerto de persistencia para Warehouse (DIP).
type WarehouseRepository interface {
	Create(ctx context.Context, warehouse *entity.Warehouse) error
	GetByID(ctx context.Context, id string) (*entity.Warehouse, error)
	Update(ctx context.Context, warehouse *entity.Warehouse) error
	List(ctx context.Context, f ListFilter) ([]*entity.Warehouse, int, error)
	// SetActive activa o desactiva (borrado lógico). Desactivar sella deleted_at con at.
	SetActive(ctx context.Context, id string, active bool, at time.Time) error
}
