// Package policy decide qué operaciones puede invocar un rol.
// Cada usuario tiene un único rol; los componentes del libro de inventario nunca lo consultan,
// se invocan solo después de que la capa HTTP confirma Permits.
package policy

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// Operation operación protegida.
type Operation string

// Operaciones protegidas.
const (
	OpRead        Operation = "read"         // consultar catálogo, inventarios, transacciones y tablero
	OpWrite       Operation = "write"        // crear/editar/desactivar catálogo y registrar transacciones
	OpManageUsers Operation = "manage_users" // alta de usuarios y cambio de rol
)

var grants = map[string][]Operation{
	entity.RoleAdmin:    {OpRead, OpWrite, OpManageUsers},
	entity.RoleEmployee: {OpRead, OpWrite},
	entity.RoleViewer:   {OpRead},
}

// Permits indica si el rol puede invocar la operación. Un rol vacío o desconocido no puede nada.
func Permits(role string, op Operation) bool {
	for _, granted := range grants[role] {
		if granted == op {
			return true
		}
	}
	return false
}

// RolesFor devuelve los roles que pueden invocar la operación.
func RolesFor(op Operation) []string {
	var roles []string
	for _, role := range []string{entity.RoleAdmin, entity.RoleEmployee, entity.RoleViewer} {
		if Permits(role, op) {
			roles = append(roles, role)
		}
	}
	return roles
}
