package entity

import "time"

// Location representa una ubicación física dentro de un almacén.
type Location struct {
	ID          string
	WarehouseID string
	Name        string
	Description string
	Lifecycle
	CreatedAt time.Time
	UpdatedAt time.Time
}
