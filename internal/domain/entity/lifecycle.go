package entity

import "time"

// Lifecycle estado de borrado lógico compartido por todas las entidades.
// Una entidad inactiva se conserva (auditoría) pero no participa en consultas por defecto
// ni en el cálculo de cantidades del inventario.
type Lifecycle struct {
	IsActive  bool
	DeletedAt *time.Time
}

// Active construye un ciclo de vida activo.
func Active() Lifecycle {
	return Lifecycle{IsActive: true}
}

// Deactivate marca la entidad como inactiva y sella la fecha de baja.
func (l *Lifecycle) Deactivate(at time.Time) {
	l.IsActive = false
	l.DeletedAt = &at
}

// Reactivate vuelve a activar la entidad y limpia la fecha de baja.
func (l *Lifecycle) Reactivate() {
	l.IsActive = true
	l.DeletedAt = nil
}
