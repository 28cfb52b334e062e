package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/almacen-api/internal/application/analytics"
)

// DashboardHandler maneja el endpoint del tablero.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve el resumen del tablero.
// GET /api/dashboard
//
// Respuesta: DashboardDTO (total_products, total_locations, total_warehouses,
// total_inventories, latest_transactions[5], top_inventories[5]).
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}
