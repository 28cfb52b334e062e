package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// TransactionHandler registra y consulta transacciones del libro de inventario.
type TransactionHandler struct {
	uc *ledger.UseCase
}

// NewTransactionHandler construye el handler.
func NewTransactionHandler(uc *ledger.UseCase) *TransactionHandler {
	return &TransactionHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar transacción de inventario
// @Description  Se indica inventory_id o el par product_id + location_id (el inventario se crea
//               si no existe). IN admite PURCHASE y RETURN; OUT admite SALE, LOST, DAMAGED y LOAN.
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransactionRequest  true  "quantity, movement, type"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transactions [post]
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	tx, err := h.uc.RecordTransaction(c.Context(), ledger.RecordInput{
		InventoryID: in.InventoryID,
		ProductID:   in.ProductID,
		LocationID:  in.LocationID,
		PersonID:    in.PersonID,
		Quantity:    in.Quantity,
		Movement:    entity.Movement(strings.ToUpper(strings.TrimSpace(in.Movement))),
		Type:        entity.TransactionType(strings.ToUpper(strings.TrimSpace(in.Type))),
		Description: strings.TrimSpace(in.Description),
		CreatedBy:   GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	entry, err := h.uc.GetTransaction(c.Context(), tx.ID)
	if err != nil {
		return c.Status(fiber.StatusCreated).JSON(ledger.ToTransactionResponse(tx, nil))
	}
	return c.Status(fiber.StatusCreated).JSON(ledger.EntryResponse(entry))
}

// GetByID godoc
// @Summary      Obtener transacción por ID
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la transacción"
// @Success      200  {object}  dto.TransactionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transactions/{id} [get]
func (h *TransactionHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	entry, err := h.uc.GetTransaction(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(ledger.EntryResponse(entry))
}

// List godoc
// @Summary      Listar transacciones (más recientes primero)
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        limit             query  int     false  "Límite"  default(20)
// @Param        offset            query  int     false  "Offset"  default(0)
// @Param        search            query  string  false  "Búsqueda por producto o descripción"
// @Param        inventory_id      query  string  false  "Filtrar por inventario"
// @Param        person_id         query  string  false  "Filtrar por persona"
// @Param        movement          query  string  false  "IN u OUT"
// @Param        type              query  string  false  "Tipo de transacción"
// @Param        include_inactive  query  bool    false  "Incluir desactivadas"
// @Success      200  {object}  dto.ListResponse[dto.TransactionResponse]
// @Router       /api/transactions [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	page, err := pageFrom(c)
	if err != nil {
		return invalidQuery(c)
	}
	entries, total, err := h.uc.ListTransactions(c.Context(), repository.TransactionFilter{
		ListFilter: repository.ListFilter{
			Search:          page.Search,
			IncludeInactive: page.IncludeInactive,
			Limit:           page.Limit,
			Offset:          page.Offset,
		},
		InventoryID: c.Query("inventory_id"),
		PersonID:    c.Query("person_id"),
		Movement:    entity.Movement(strings.ToUpper(c.Query("movement"))),
		Type:        entity.TransactionType(strings.ToUpper(c.Query("type"))),
	})
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.TransactionResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, ledger.EntryResponse(e))
	}
	return c.JSON(dto.NewListResponse(items, page, total))
}

// Deactivate godoc
// @Summary      Desactivar transacción
// @Description  La transacción deja de contar en la cantidad. 409 si la cantidad quedaría negativa.
// @Tags         transactions
// @Security     Bearer
// @Param        id   path  string  true  "ID de la transacción"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/transactions/{id} [delete]
func (h *TransactionHandler) Deactivate(c *fiber.Ctx) error {
	return toggle(c, func(ctx context.Context, id string, _ bool) error {
		return h.uc.DeactivateTransaction(ctx, id)
	}, false)
}

// Activate godoc
// @Summary      Reactivar transacción
// @Tags         transactions
// @Security     Bearer
// @Param        id   path  string  true  "ID de la transacción"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/transactions/{id}/activate [post]
func (h *TransactionHandler) Activate(c *fiber.Ctx) error {
	return toggle(c, func(ctx context.Context, id string, _ bool) error {
		return h.uc.ReactivateTransaction(ctx, id)
	}, true)
}
