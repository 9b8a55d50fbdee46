package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/dmarulanda/ventas-api/internal/application/dto"
)

// moduleChecker es lo único que el middleware necesita del servicio de
// módulos; la interfaz local evita el import circular con application.
type moduleChecker interface {
	HasActiveModule(ctx context.Context, companyID, moduleName string) (bool, error)
}

// RequireModule corta las rutas de un módulo contratable (imports, reports)
// cuando la empresa del token no lo tiene activo. Va siempre detrás de
// AuthMiddleware, que es quien deja company_id en el contexto.
//
// Un módulo vencido o nunca contratado responde 403. Si la consulta de
// activación falla el problema es nuestro y no del cliente: 503 para que
// reintente, con el detalle en el log.
func RequireModule(moduleName string, checker moduleChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID := GetCompanyID(c)
		if companyID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "company_id no encontrado en el token",
			})
		}

		active, err := checker.HasActiveModule(c.Context(), companyID, moduleName)
		switch {
		case err != nil:
			log.Error().Err(err).
				Str("company_id", companyID).
				Str("module", moduleName).
				Msg("no se pudo verificar la activación del módulo")
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "MODULE_CHECK_FAILED",
				Message: "no se pudo verificar el módulo, intente más tarde",
			})
		case !active:
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "MODULE_DISABLED",
				Message: "el módulo '" + moduleName + "' no está activo para esta empresa",
			})
		}
		return c.Next()
	}
}
