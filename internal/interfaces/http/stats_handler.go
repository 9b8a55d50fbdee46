package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/dmarulanda/ventas-api/internal/application/analytics"
	"github.com/dmarulanda/ventas-api/internal/application/dto"
	"github.com/dmarulanda/ventas-api/internal/domain"
)

// StatsHandler maneja los endpoints de estadísticas agregadas (protegido).
type StatsHandler struct {
	uc *analytics.StatsUseCase
}

// NewStatsHandler construye el handler.
func NewStatsHandler(uc *analytics.StatsUseCase) *StatsHandler {
	return &StatsHandler{uc: uc}
}

// GetSalesStats godoc
// @Summary      Estadísticas de ventas del período
// @Description  Ingresos, costo, utilidad, número de órdenes y ticket promedio.
// @Description  Sin year agrega todo el histórico; month requiere year.
// @Tags         stats
// @Security     Bearer
// @Produce      json
// @Param        year   query  int  false  "año, ej. 2026"
// @Param        month  query  int  false  "mes 1-12 (requiere year)"
// @Success      200  {object}  dto.SalesStatsDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/stats/sales [get]
func (h *StatsHandler) GetSalesStats(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id no encontrado en el token"})
	}
	var in dto.SalesStatsRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros de consulta inválidos"})
	}
	out, err := h.uc.GetSalesStats(c.Context(), companyID, in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetInventoryStats godoc
// @Summary      Estadísticas del inventario de bodega
// @Description  Número de productos, unidades totales, valor a costo y productos
// @Description  con stock bajo el umbral.
// @Tags         stats
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InventoryStatsDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/stats/inventory [get]
func (h *StatsHandler) GetInventoryStats(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id no encontrado en el token"})
	}
	out, err := h.uc.GetInventoryStats(c.Context(), companyID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
