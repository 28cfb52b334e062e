package entity

import "time"

// Rango válido del código numérico de una categoría (partida).
const (
	CategoryCodeMin = 10000
	CategoryCodeMax = 30000
)

// Category representa una categoría (partida) de productos.
type Category struct {
	ID          string
	Code        int
	Name        string
	Description string
	Lifecycle
	CreatedAt time.Time
	UpdatedAt time.Time
}
