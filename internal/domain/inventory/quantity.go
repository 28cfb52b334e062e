package inventory

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// Límites superiores (inclusivos) de cada nivel de disponibilidad.
const (
	LowMax    = 10
	MediumMax = 50
)

// Totals sumas de entradas y salidas activas de un inventario.
type Totals struct {
	In  int64
	Out int64
}

// Quantity cantidad derivada: entradas menos salidas.
func (t Totals) Quantity() int64 {
	return t.In - t.Out
}

// Availability nivel de disponibilidad de la cantidad derivada.
func (t Totals) Availability() entity.Availability {
	return AvailabilityFor(t.Quantity())
}

// Apply suma el aporte de una transacción activa. Las inactivas no aportan.
func (t Totals) Apply(tx entity.Transaction) Totals {
	if !tx.IsActive {
		return t
	}
	switch tx.Movement {
	case entity.MovementIn:
		t.In += tx.Quantity
	case entity.MovementOut:
		t.Out += tx.Quantity
	}
	return t
}

// ResolveQuantity agrega las transacciones de un inventario.
// Función pura del conjunto de transacciones: sin transacciones devuelve cero.
func ResolveQuantity(txs []entity.Transaction) Totals {
	var t Totals
	for _, tx := range txs {
		t = t.Apply(tx)
	}
	return t
}

// AvailabilityFor clasifica una cantidad. Los valores frontera pertenecen al nivel inferior:
// 10 es LOW, 11 es MEDIUM, 50 es MEDIUM, 51 es HIGH.
func AvailabilityFor(quantity int64) entity.Availability {
	switch {
	case quantity <= 0:
		return entity.AvailabilityOutOfStock
	case quantity <= LowMax:
		return entity.AvailabilityLow
	case quantity <= MediumMax:
		return entity.AvailabilityMedium
	default:
		return entity.AvailabilityHigh
	}
}
