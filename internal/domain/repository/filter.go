package repository

// ListFilter parámetros comunes de listado.
// Por defecto solo se listan entidades activas.
type ListFilter struct {
	Search          string // coincidencia parcial, sin distinguir mayúsculas
	IncludeInactive bool
	Limit           int
	Offset          int
}
