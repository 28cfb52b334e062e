package entity

import "time"

// Roles válidos para User. Cada usuario tiene exactamente un rol.
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
	RoleViewer   = "viewer"
)

// User representa un usuario del sistema.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	FirstName    string
	LastName     string
	Role         string // admin, employee, viewer
	Lifecycle
	CreatedAt time.Time
	UpdatedAt time.Time
}
