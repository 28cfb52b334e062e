package entity

import "time"

// Warehouse representa un almacén (campus) que agrupa ubicaciones.
type Warehouse struct {
	ID          string
	Name        string
	Description string
	Lifecycle
	CreatedAt time.Time
	UpdatedAt time.Time
}
