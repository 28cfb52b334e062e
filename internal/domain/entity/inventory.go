package entity

import "time"

// Availability nivel de disponibilidad derivado de la cantidad.
type Availability string

// Niveles de disponibilidad.
const (
	AvailabilityOutOfStock Availability = "OUT_OF_STOCK"
	AvailabilityLow        Availability = "LOW"
	AvailabilityMedium     Availability = "MEDIUM"
	AvailabilityHigh       Availability = "HIGH"
)

// Inventory es el par (producto, ubicación) cuyo stock se controla.
// No guarda cantidad: la cantidad se deriva de sus transacciones activas.
type Inventory struct {
	ID         string
	ProductID  string
	LocationID string
	Lifecycle
	CreatedAt time.Time
	UpdatedAt time.Time
}
