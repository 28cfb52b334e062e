package inventory_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/inventory"
)

func TestValidate_CantidadNoPositiva(t *testing.T) {
	for _, q := range []int64{0, -1, -50} {
		for _, m := range []entity.Movement{entity.MovementIn, entity.MovementOut} {
			err := inventory.Validate(inventory.Candidate{Quantity: q, Movement: m, Type: entity.TypeLost}, 100)
			assert.ErrorIs(t, err, domain.ErrInvalidQuantity, "q=%d m=%s", q, m)
		}
	}
}

func TestValidate_SalidaSuperaStock(t *testing.T) {
	err := inventory.Validate(inventory.Candidate{Quantity: 6, Movement: entity.MovementOut, Type: entity.TypeSale}, 5)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	err = inventory.Validate(inventory.Candidate{Quantity: 5, Movement: entity.MovementOut, Type: entity.TypeSale}, 5)
	assert.NoError(t, err, "retirar exactamente el stock disponible es válido")
}

func TestValidate_EntradaNoDependeDelStock(t *testing.T) {
	err := inventory.Validate(inventory.Candidate{Quantity: 500, Movement: entity.MovementIn, Type: entity.TypePurchase}, 0)
	assert.NoError(t, err)
}

func TestValidate_ListaBlancaPorMovimiento(t *testing.T) {
	cases := []struct {
		movement entity.Movement
		typ      entity.TransactionType
		ok       bool
	}{
		{entity.MovementIn, entity.TypePurchase, true},
		{entity.MovementIn, entity.TypeReturn, true},
		{entity.MovementIn, entity.TypeLost, false},
		{entity.MovementIn, entity.TypeDamaged, false},
		{entity.MovementIn, entity.TypeSale, false},
		{entity.MovementIn, entity.TypeLoan, false},
		{entity.MovementOut, entity.TypeSale, true},
		{entity.MovementOut, entity.TypeLost, true},
		{entity.MovementOut, entity.TypeDamaged, true},
		{entity.MovementOut, entity.TypeLoan, true},
		{entity.MovementOut, entity.TypePurchase, false},
		{entity.MovementOut, entity.TypeReturn, false},
		{entity.Movement("SIDEWAYS"), entity.TypePurchase, false},
	}
	for _, c := range cases {
		err := inventory.Validate(inventory.Candidate{Quantity: 1, Movement: c.movement, Type: c.typ}, 10)
		if c.ok {
			assert.NoError(t, err, "%s/%s", c.movement, c.typ)
		} else {
			assert.ErrorIs(t, err, domain.ErrInvalidTypeForMovement, "%s/%s", c.movement, c.typ)
		}
	}
}

func TestValidateAll_ReportaTodosEnOrden(t *testing.T) {
	errs := inventory.ValidateAll(inventory.Candidate{Quantity: 20, Movement: entity.MovementOut, Type: entity.TypePurchase}, 3)

	require.Len(t, errs, 2)
	assert.Equal(t, "quantity", errs[0].Field)
	assert.ErrorIs(t, errs[0], domain.ErrInsufficientStock)
	assert.Equal(t, "type", errs[1].Field)
	assert.ErrorIs(t, errs[1], domain.ErrInvalidTypeForMovement)

	assert.ErrorIs(t, errs.First(), domain.ErrInsufficientStock)
	assert.True(t, errors.Is(errs, domain.ErrInvalidTypeForMovement))
}

func TestValidateAll_CantidadInvalidaTieneprioridad(t *testing.T) {
	errs := inventory.ValidateAll(inventory.Candidate{Quantity: 0, Movement: entity.MovementIn, Type: entity.TypeLost}, 0)

	require.Len(t, errs, 2)
	assert.ErrorIs(t, errs.First(), domain.ErrInvalidQuantity)
}

func TestValidateAll_SinFallos(t *testing.T) {
	errs := inventory.ValidateAll(inventory.Candidate{Quantity: 1, Movement: entity.MovementIn, Type: entity.TypeReturn}, 0)

	assert.Empty(t, errs)
	assert.NoError(t, errs.First())
}

func TestCheckToggle(t *testing.T) {
	in20 := entity.Transaction{Movement: entity.MovementIn, Quantity: 20, Lifecycle: entity.Active()}
	out15 := entity.Transaction{Movement: entity.MovementOut, Quantity: 15, Lifecycle: entity.Lifecycle{IsActive: false}}

	// Desactivar la entrada dejaría -15.
	totals := inventory.Totals{In: 20, Out: 15}
	assert.ErrorIs(t, inventory.CheckToggle(totals, in20, false), domain.ErrInsufficientStock)

	// Reactivar una salida que cabe en el stock es válido.
	assert.NoError(t, inventory.CheckToggle(inventory.Totals{In: 20}, out15, true))

	// Reactivar una salida que no cabe se rechaza.
	assert.ErrorIs(t, inventory.CheckToggle(inventory.Totals{In: 10}, out15, true), domain.ErrInsufficientStock)

	// Sin cambio de estado no hay nada que validar.
	assert.NoError(t, inventory.CheckToggle(totals, in20, true))
}

func TestReject_SeComportaComoElErrorAutoritativo(t *testing.T) {
	err := inventory.Reject(inventory.Candidate{Quantity: -3, Movement: entity.MovementOut, Type: entity.TypePurchase}, 0)
	require.Error(t, err)

	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	assert.NotErrorIs(t, err, domain.ErrInvalidTypeForMovement, "solo el primer fallo es autoritativo")

	var rej *inventory.RejectionError
	require.ErrorAs(t, err, &rej)
	assert.Len(t, rej.Errors, 2)

	assert.NoError(t, inventory.Reject(inventory.Candidate{Quantity: 1, Movement: entity.MovementIn, Type: entity.TypePurchase}, 0))
}

func TestReject_TiposPermitidosSoloCuandoFallaElTipo(t *testing.T) {
	var rej *inventory.RejectionError

	err := inventory.Reject(inventory.Candidate{Quantity: 5, Movement: entity.MovementIn, Type: entity.TypeSale}, 0)
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, []entity.TransactionType{entity.TypePurchase, entity.TypeReturn}, rej.AllowedTypes())

	// Sin stock pero con tipo válido: no hay tipos que sugerir.
	err = inventory.Reject(inventory.Candidate{Quantity: 5, Movement: entity.MovementOut, Type: entity.TypeSale}, 0)
	require.ErrorAs(t, err, &rej)
	assert.Nil(t, rej.AllowedTypes())
}
