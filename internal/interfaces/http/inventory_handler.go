package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// InventoryHandler consulta inventarios (producto en ubicación) con su cantidad derivada.
type InventoryHandler struct {
	uc *ledger.UseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *ledger.UseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// List godoc
// @Summary      Listar inventarios con cantidad y disponibilidad
// @Tags         inventories
// @Security     Bearer
// @Produce      json
// @Param        limit             query  int     false  "Límite"  default(20)
// @Param        offset            query  int     false  "Offset"  default(0)
// @Param        search            query  string  false  "Búsqueda por producto o ubicación"
// @Param        availability      query  string  false  "OUT_OF_STOCK, LOW, MEDIUM o HIGH"
// @Param        product_id        query  string  false  "Filtrar por producto"
// @Param        location_id       query  string  false  "Filtrar por ubicación"
// @Param        include_inactive  query  bool    false  "Incluir desactivados"
// @Success      200  {object}  dto.ListResponse[dto.InventoryResponse]
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventories [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	page, err := pageFrom(c)
	if err != nil {
		return invalidQuery(c)
	}
	availability := entity.Availability(strings.ToUpper(c.Query("availability")))
	switch availability {
	case "", entity.AvailabilityOutOfStock, entity.AvailabilityLow, entity.AvailabilityMedium, entity.AvailabilityHigh:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "availability inválida",
			Errors: map[string]string{"availability": "debe ser OUT_OF_STOCK, LOW, MEDIUM o HIGH"},
		})
	}
	levels, total, err := h.uc.ListInventories(c.Context(), repository.InventoryFilter{
		ListFilter: repository.ListFilter{
			Search:          page.Search,
			IncludeInactive: page.IncludeInactive,
			Limit:           page.Limit,
			Offset:          page.Offset,
		},
		ProductID:    c.Query("product_id"),
		LocationID:   c.Query("location_id"),
		Availability: availability,
	})
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.InventoryResponse, 0, len(levels))
	for _, l := range levels {
		items = append(items, ledger.ToInventoryResponse(l))
	}
	return c.JSON(dto.NewListResponse(items, page, total))
}

// GetByID godoc
// @Summary      Obtener inventario con cantidad derivada
// @Tags         inventories
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del inventario"
// @Success      200  {object}  dto.InventoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventories/{id} [get]
func (h *InventoryHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	level, err := h.uc.GetInventory(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(ledger.ToInventoryResponse(level))
}

// Deactivate desactiva un inventario; sus transacciones se conservan.
// DELETE /api/inventories/:id
func (h *InventoryHandler) Deactivate(c *fiber.Ctx) error {
	return toggle(c, h.uc.SetInventoryActive, false)
}

// Activate reactiva un inventario.
// POST /api/inventories/:id/activate
func (h *InventoryHandler) Activate(c *fiber.Ctx) error {
	return toggle(c, h.uc.SetInventoryActive, true)
}
