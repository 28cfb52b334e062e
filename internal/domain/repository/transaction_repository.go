package repository

import (
	"context"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/inventory"
)

// TransactionFilter filtro de listado de transacciones.
type TransactionFilter struct {
	ListFilter
	InventoryID string
	PersonID    string
	Movement    entity.Movement
	Type        entity.TransactionType
}

// TransactionEntry transacción con los nombres necesarios para mostrarla.
type TransactionEntry struct {
	entity.Transaction
	ProductName   string
	LocationName  string
	WarehouseName string
	PersonName    string
}

// TransactionRepository define el puerto de persistencia del libro de inventario.
// Las transacciones nunca se borran ni se modifican salvo su estado activo.
type TransactionRepository interface {
	// Create persiste la transacción. ErrNotFound si la persona referida no existe.
	Create(ctx context.Context, tx *entity.Transaction) error
	GetByID(ctx context.Context, id string) (*entity.Transaction, error)
	GetEntry(ctx context.Context, id string) (*TransactionEntry, error)
	// Totals suma entradas y salidas activas del inventario.
	Totals(ctx context.Context, inventoryID string) (inventory.Totals, error)
	List(ctx context.Context, f TransactionFilter) ([]*TransactionEntry, int, error)
	SetActive(ctx context.Context, id string, active bool, at time.Time) error
}
