package ledger

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/inventory"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// RecordInput entrada para registrar una transacción.
// Se indica InventoryID, o bien ProductID + LocationID (el par se crea si no existe).
type RecordInput struct {
	InventoryID string
	ProductID   string
	LocationID  string
	PersonID    string
	Quantity    int64
	Movement    entity.Movement
	Type        entity.TransactionType
	Description string
	CreatedBy   string
}

// RecordTransaction inicia una transacción de BD, bloquea la fila del inventario (SELECT FOR UPDATE),
// recalcula la cantidad actual, valida el movimiento y persiste la transacción.
// Si la validación falla no se escribe nada y se devuelve el rechazo tipado
// (domain.ErrInvalidQuantity, domain.ErrInsufficientStock o domain.ErrInvalidTypeForMovement).
func (uc *UseCase) RecordTransaction(ctx context.Context, in RecordInput) (*entity.Transaction, error) {
	ctx, span := uc.tracer.Start(ctx, "ledger.RecordTransaction", trace.WithAttributes(
		attribute.String("transaction.movement", string(in.Movement)),
		attribute.String("transaction.type", string(in.Type)),
		attribute.Int64("transaction.quantity", in.Quantity),
	))
	defer span.End()

	if in.InventoryID == "" && (in.ProductID == "" || in.LocationID == "") {
		return nil, fail(span, domain.ErrInvalidInput)
	}

	var created *entity.Transaction
	var current int64
	err := uc.txRunner.Run(ctx, func(
		invRepo repository.InventoryRepository,
		txRepo repository.TransactionRepository,
	) error {
		inventoryID := in.InventoryID
		if inventoryID == "" {
			inv, err := invRepo.GetOrCreate(ctx, in.ProductID, in.LocationID)
			if err != nil {
				return err
			}
			inventoryID = inv.ID
		}

		// Bloquea la fila del inventario hasta Commit/Rollback: dos salidas concurrentes
		// sobre el mismo par se serializan y la segunda ve la cantidad ya descontada.
		inv, err := invRepo.LockForUpdate(ctx, inventoryID)
		if err != nil {
			return err
		}
		if inv == nil || !inv.IsActive {
			return domain.ErrNotFound
		}

		totals, err := txRepo.Totals(ctx, inv.ID)
		if err != nil {
			return err
		}
		current = totals.Quantity()

		candidate := inventory.Candidate{Quantity: in.Quantity, Movement: in.Movement, Type: in.Type}
		if err := inventory.Reject(candidate, current); err != nil {
			return err
		}

		now := uc.now()
		t := &entity.Transaction{
			ID:          uuid.New().String(),
			InventoryID: inv.ID,
			PersonID:    in.PersonID,
			Quantity:    in.Quantity,
			Movement:    in.Movement,
			Type:        in.Type,
			Description: in.Description,
			CreatedBy:   in.CreatedBy,
			Lifecycle:   entity.Active(),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := txRepo.Create(ctx, t); err != nil {
			return err
		}
		created = t
		return nil
	})
	if err != nil {
		uc.logFailure(err, in, current)
		return nil, fail(span, err)
	}

	span.SetAttributes(attribute.String("inventory.id", created.InventoryID))
	uc.log.Info().
		Str("transaction_id", created.ID).
		Str("inventory_id", created.InventoryID).
		Str("movement", string(created.Movement)).
		Str("type", string(created.Type)).
		Int64("quantity", created.Quantity).
		Msg("transacción registrada")
	uc.invalidate(ctx)
	return created, nil
}

// DeactivateTransaction desactiva una transacción: deja de contar en la cantidad del inventario.
// Se rechaza con domain.ErrInsufficientStock si la cantidad resultante quedaría negativa.
func (uc *UseCase) DeactivateTransaction(ctx context.Context, id string) error {
	return uc.setTransactionActive(ctx, id, false)
}

// ReactivateTransaction vuelve a contar una transacción desactivada, con la misma validación de stock.
func (uc *UseCase) ReactivateTransaction(ctx context.Context, id string) error {
	return uc.setTransactionActive(ctx, id, true)
}

func (uc *UseCase) setTransactionActive(ctx context.Context, id string, active bool) error {
	ctx, span := uc.tracer.Start(ctx, "ledger.SetTransactionActive", trace.WithAttributes(
		attribute.String("transaction.id", id),
		attribute.Bool("transaction.active", active),
	))
	defer span.End()

	changed := false
	err := uc.txRunner.Run(ctx, func(
		invRepo repository.InventoryRepository,
		txRepo repository.TransactionRepository,
	) error {
		t, err := txRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if t == nil {
			return domain.ErrNotFound
		}
		if _, err := invRepo.LockForUpdate(ctx, t.InventoryID); err != nil {
			return err
		}
		// Releer con el inventario bloqueado: otro escritor pudo cambiar el estado.
		t, err = txRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if t.IsActive == active {
			return nil
		}
		totals, err := txRepo.Totals(ctx, t.InventoryID)
		if err != nil {
			return err
		}
		if err := inventory.CheckToggle(totals, *t, active); err != nil {
			return err
		}
		changed = true
		return txRepo.SetActive(ctx, id, active, uc.now())
	})
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			uc.log.Warn().Err(err).Str("transaction_id", id).Bool("active", active).Msg("cambio de estado de transacción rechazado")
		}
		return fail(span, err)
	}
	if changed {
		uc.log.Info().Str("transaction_id", id).Bool("active", active).Msg("estado de transacción actualizado")
		uc.invalidate(ctx)
	}
	return nil
}

func (uc *UseCase) logFailure(err error, in RecordInput, current int64) {
	switch {
	case inventory.IsRejection(err):
		uc.log.Warn().
			Err(err).
			Str("inventory_id", in.InventoryID).
			Str("movement", string(in.Movement)).
			Str("type", string(in.Type)).
			Int64("quantity", in.Quantity).
			Int64("current", current).
			Msg("transacción rechazada")
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrInvalidInput):
		uc.log.Debug().Err(err).Msg("transacción con referencias inválidas")
	default:
		uc.log.Error().Err(err).Msg("registrar transacción")
	}
}
