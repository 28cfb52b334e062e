package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain/policy"
)

// RequirePermission devuelve un middleware que consulta la política de acceso para el rol
// del token. Debe usarse DESPUÉS de AuthMiddleware (necesita LocalRole).
//
// Comportamiento:
//   - 401 Unauthorized → el token no trae rol.
//   - 403 Forbidden    → el rol no puede invocar la operación.
func RequirePermission(op policy.Operation) fiber.Handler {
	return RequireRole(policy.RolesFor(op)...)
}

// RequireRole restringe la ruta a una lista explícita de roles.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return missingRole(c)
		}
		if _, ok := allowed[role]; !ok {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "acceso denegado para el rol '" + role + "'",
			})
		}
		return c.Next()
	}
}

func missingRole(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Code:    "MISSING_ROLE",
		Message: "el token no incluye un rol",
	})
}
