package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/inventory"
	"github.com/jhoicas/almacen-api/internal/domain/validation"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// LocalLogger key de Locals con el logger de la petición.
const LocalLogger = "logger"

func requestLogger(c *fiber.Ctx) *logger.Logger {
	if l, ok := c.Locals(LocalLogger).(*logger.Logger); ok && l != nil {
		return l
	}
	return logger.Nop()
}

// respondError traduce errores de dominio a códigos HTTP.
func respondError(c *fiber.Ctx, err error) error {
	var rejection *inventory.RejectionError
	if errors.As(err, &rejection) {
		fields := make(map[string]string, len(rejection.Errors))
		for _, fe := range rejection.Errors {
			if _, ok := fields[fe.Field]; !ok {
				fields[fe.Field] = fe.Err.Error()
			}
		}
		var allowed []string
		for _, t := range rejection.AllowedTypes() {
			allowed = append(allowed, string(t))
		}
		status, code := rejectionStatus(err)
		return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error(), Errors: fields, AllowedTypes: allowed})
	}
	var fields validation.Errors
	if errors.As(err, &fields) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos", Errors: fields})
	}
	if inventory.IsRejection(err) {
		status, code := rejectionStatus(err)
		return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
	}

	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	}
	// El detalle queda en el log; al cliente solo un mensaje fijo.
	requestLogger(c).Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("error no controlado")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno del servidor"})
}

func rejectionStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidQuantity):
		return fiber.StatusBadRequest, "INVALID_QUANTITY"
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusConflict, "INSUFFICIENT_STOCK"
	default:
		return fiber.StatusBadRequest, "INVALID_TYPE_FOR_MOVEMENT"
	}
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

func invalidQuery(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos"})
}

func missingID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
}

// pageFrom lee limit, offset, search e include_inactive de la query.
func pageFrom(c *fiber.Ctx) (dto.PageRequest, error) {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return page, err
	}
	page.DefaultPage()
	return page, nil
}

// toggle aplica SetActive sobre el :id de la ruta y responde 204.
func toggle(c *fiber.Ctx, setActive func(ctx context.Context, id string, active bool) error, active bool) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	if err := setActive(c.Context(), id, active); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
