package repository

import (
	"context"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// InventoryFilter filtro de listado de inventarios con cantidad derivada.
type InventoryFilter struct {
	ListFilter
	ProductID    string
	LocationID   string
	Availability entity.Availability
	// ByQuantity ordena por cantidad descendente (inventarios con más stock primero).
	ByQuantity bool
}

// InventoryRepository define el puerto de persistencia para el par (producto, ubicación).
// Usado dentro de transacciones para serializar escrituras por inventario.
type InventoryRepository interface {
	// GetOrCreate devuelve el inventario del par o lo crea. ErrNotFound si producto o ubicación
	// no existen o están inactivos.
	GetOrCreate(ctx context.Context, productID, locationID string) (*entity.Inventory, error)
	GetByID(ctx context.Context, id string) (*entity.Inventory, error)
	// LockForUpdate obtiene el inventario y bloquea la fila hasta el fin de la transacción
	// (SELECT FOR UPDATE). Devuelve nil si no existe.
	LockForUpdate(ctx context.Context, id string) (*entity.Inventory, error)
	GetLevel(ctx context.Context, id string) (*entity.InventoryLevel, error)
	ListLevels(ctx context.Context, f InventoryFilter) ([]*entity.InventoryLevel, int, error)
	SetActive(ctx context.Context, id string, active bool, at time.Time) error
}
