package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
)

// Errores del libro de inventario. Son el resultado tipado de la validación de una
// transacción: nunca se corrigen en silencio.
var (
	ErrInvalidQuantity        = errors.New("la cantidad debe ser un entero positivo")
	ErrInsufficientStock      = errors.New("stock insuficiente")
	ErrInvalidTypeForMovement = errors.New("el tipo de transacción no es válido para el movimiento")
)
