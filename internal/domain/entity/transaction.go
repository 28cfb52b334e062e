package entity

import "time"

// Movement dirección de una transacción de inventario.
type Movement string

// Movimientos posibles.
const (
	MovementIn  Movement = "IN"  // entrada
	MovementOut Movement = "OUT" // salida
)

// TransactionType motivo de negocio de una transacción.
type TransactionType string

// Tipos de transacción.
const (
	TypePurchase TransactionType = "PURCHASE" // compra
	TypeReturn   TransactionType = "RETURN"   // devolución
	TypeSale     TransactionType = "SALE"     // venta
	TypeLost     TransactionType = "LOST"     // perdido
	TypeDamaged  TransactionType = "DAMAGED"  // dañado
	TypeLoan     TransactionType = "LOAN"     // préstamo
)

// Transaction movimiento inmutable del libro de inventario. Solo cambia su ciclo de vida.
type Transaction struct {
	ID          string
	InventoryID string
	PersonID    string // vacío si no hay persona asociada
	Quantity    int64
	Movement    Movement
	Type        TransactionType
	Description string
	CreatedBy   string
	Lifecycle
	CreatedAt time.Time
	UpdatedAt time.Time
}
