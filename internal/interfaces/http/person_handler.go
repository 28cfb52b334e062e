package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
)

// PersonHandler maneja estudiantes y proveedores a los que se atribuyen transacciones.
type PersonHandler struct {
	uc *usecase.PersonUseCase
}

// NewPersonHandler construye el handler.
func NewPersonHandler(uc *usecase.PersonUseCase) *PersonHandler {
	return &PersonHandler{uc: uc}
}

// Create godoc
// @Summary      Crear persona
// @Tags         persons
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePersonRequest  true  "Datos de la persona"
// @Success      201   {object}  dto.PersonResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/persons [post]
func (h *PersonHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePersonRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener persona por ID
// @Tags         persons
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la persona"
// @Success      200  {object}  dto.PersonResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/persons/{id} [get]
func (h *PersonHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	out, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar persona
// @Tags         persons
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID de la persona"
// @Param        body  body  dto.UpdatePersonRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.PersonResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/persons/{id} [put]
func (h *PersonHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePersonRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar personas
// @Tags         persons
// @Security     Bearer
// @Produce      json
// @Param        limit             query  int     false  "Límite"  default(20)
// @Param        offset            query  int     false  "Offset"  default(0)
// @Param        search            query  string  false  "Búsqueda por nombre"
// @Param        include_inactive  query  bool    false  "Incluir desactivados"
// @Param        kind              query  string  false  "STUDENT o PROVIDER"
// @Success      200  {object}  dto.ListResponse[dto.PersonResponse]
// @Router       /api/persons [get]
func (h *PersonHandler) List(c *fiber.Ctx) error {
	page, err := pageFrom(c)
	if err != nil {
		return invalidQuery(c)
	}
	out, err := h.uc.List(c.Context(), page, c.Query("kind"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Deactivate godoc
// @Summary      Desactivar persona (borrado lógico)
// @Tags         persons
// @Security     Bearer
// @Param        id   path  string  true  "ID de la persona"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/persons/{id} [delete]
func (h *PersonHandler) Deactivate(c *fiber.Ctx) error {
	return toggle(c, h.uc.SetActive, false)
}

// Activate godoc
// @Summary      Reactivar persona
// @Tags         persons
// @Security     Bearer
// @Param        id   path  string  true  "ID de la persona"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/persons/{id}/activate [post]
func (h *PersonHandler) Activate(c *fiber.Ctx) error {
	return toggle(c, h.uc.SetActive, true)
}
