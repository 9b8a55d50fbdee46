package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/dmarulanda/ventas-api/internal/application/dto"
	"github.com/dmarulanda/ventas-api/internal/application/inventory"
	"github.com/dmarulanda/ventas-api/internal/domain"
)

// DistributionHandler maneja el traslado de mercancía de bodega a sucursales.
type DistributionHandler struct {
	uc *inventory.DistributeStockUseCase
}

// NewDistributionHandler construye el handler.
func NewDistributionHandler(uc *inventory.DistributeStockUseCase) *DistributionHandler {
	return &DistributionHandler{uc: uc}
}

// Distribute godoc
// @Summary      Distribuir stock a una sucursal
// @Description  Suma unidades al par (sucursal, producto); crea la fila de inventario
// @Description  si no existía. El stock de bodega del catálogo no se descuenta.
// @Tags         distributions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DistributeStockRequest  true  "branch_id, product_id, quantity"
// @Success      200   {object}  dto.DistributeStockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/distributions [post]
func (h *DistributionHandler) Distribute(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id no encontrado en el token"})
	}
	var in dto.DistributeStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Distribute(companyID, in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
