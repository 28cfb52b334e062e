package inventory

import (
	"errors"
	"strings"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// allowedTypes lista blanca de tipos por movimiento. Un tipo fuera de la lista se rechaza.
var allowedTypes = map[entity.Movement][]entity.TransactionType{
	entity.MovementIn:  {entity.TypePurchase, entity.TypeReturn},
	entity.MovementOut: {entity.TypeSale, entity.TypeLost, entity.TypeDamaged, entity.TypeLoan},
}

// Candidate campos de una transacción propuesta que participan en la validación.
type Candidate struct {
	Quantity int64
	Movement entity.Movement
	Type     entity.TransactionType
}

// FieldError fallo de una regla asociado al campo que lo provoca.
type FieldError struct {
	Field string
	Err   error
}

func (e FieldError) Error() string { return e.Field + ": " + e.Err.Error() }

func (e FieldError) Unwrap() error { return e.Err }

// ValidationErrors fallos de validación en orden de regla. El primero es el que manda
// cuando solo se puede reportar uno.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, fe := range v {
		msgs = append(msgs, fe.Error())
	}
	return strings.Join(msgs, "; ")
}

// Unwrap permite errors.Is sobre cualquiera de los fallos.
func (v ValidationErrors) Unwrap() []error {
	errs := make([]error, 0, len(v))
	for _, fe := range v {
		errs = append(errs, fe.Err)
	}
	return errs
}

// First devuelve el error de dominio de la primera regla fallida, o nil.
func (v ValidationErrors) First() error {
	if len(v) == 0 {
		return nil
	}
	return v[0].Err
}

// AllowedTypes devuelve los tipos válidos para un movimiento (nil si el movimiento no existe).
func AllowedTypes(m entity.Movement) []entity.TransactionType {
	return allowedTypes[m]
}

// TypeAllowed indica si el tipo está en la lista blanca del movimiento.
func TypeAllowed(m entity.Movement, t entity.TransactionType) bool {
	for _, allowed := range allowedTypes[m] {
		if allowed == t {
			return true
		}
	}
	return false
}

// ValidateAll evalúa todas las reglas contra la cantidad actual del inventario:
//  1. cantidad > 0                      -> ErrInvalidQuantity
//  2. OUT no supera la cantidad actual  -> ErrInsufficientStock
//  3. tipo permitido para el movimiento -> ErrInvalidTypeForMovement
func ValidateAll(c Candidate, current int64) ValidationErrors {
	var errs ValidationErrors
	if c.Quantity <= 0 {
		errs = append(errs, FieldError{Field: "quantity", Err: domain.ErrInvalidQuantity})
	}
	if c.Movement == entity.MovementOut && c.Quantity > current {
		errs = append(errs, FieldError{Field: "quantity", Err: domain.ErrInsufficientStock})
	}
	if !TypeAllowed(c.Movement, c.Type) {
		errs = append(errs, FieldError{Field: "type", Err: domain.ErrInvalidTypeForMovement})
	}
	return errs
}

// Validate devuelve el fallo autoritativo (primera regla en orden) o nil.
func Validate(c Candidate, current int64) error {
	return ValidateAll(c, current).First()
}

// IsRejection indica si err es uno de los rechazos tipados del validador.
func IsRejection(err error) bool {
	return errors.Is(err, domain.ErrInvalidQuantity) ||
		errors.Is(err, domain.ErrInsufficientStock) ||
		errors.Is(err, domain.ErrInvalidTypeForMovement)
}

// CheckToggle valida que activar o desactivar tx deje la cantidad resultante en cero o más.
// totals ya incluye (o excluye) a tx según su estado actual.
func CheckToggle(totals Totals, tx entity.Transaction, activate bool) error {
	if tx.IsActive == activate {
		return nil
	}
	next := totals
	switch {
	case activate && tx.Movement == entity.MovementOut:
		next.Out += tx.Quantity
	case !activate && tx.Movement == entity.MovementIn:
		next.In -= tx.Quantity
	}
	if next.Quantity() < 0 {
		return domain.ErrInsufficientStock
	}
	return nil
}

// RejectionError rechazo de una transacción. Se comporta como el error autoritativo
// (errors.Is) y conserva todos los fallos para reportarlos por campo.
type RejectionError struct {
	Movement entity.Movement
	Errors   ValidationErrors
}

func (e *RejectionError) Error() string { return e.Errors.First().Error() }

func (e *RejectionError) Unwrap() error { return e.Errors.First() }

// AllowedTypes tipos aceptados por el movimiento cuando el rechazo incluye el tipo; nil en otro caso.
func (e *RejectionError) AllowedTypes() []entity.TransactionType {
	for _, fe := range e.Errors {
		if errors.Is(fe.Err, domain.ErrInvalidTypeForMovement) {
			return AllowedTypes(e.Movement)
		}
	}
	return nil
}

// Reject valida el candidato y devuelve *RejectionError o nil.
func Reject(c Candidate, current int64) error {
	errs := ValidateAll(c, current)
	if len(errs) == 0 {
		return nil
	}
	return &RejectionError{Movement: c.Movement, Errors: errs}
}
