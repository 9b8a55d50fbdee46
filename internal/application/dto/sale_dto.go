package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleRequest body para POST /api/sales.
// Date opcional en formato YYYY-MM-DD (medianoche local); vacío = ahora.
// Cantidad entera positiva; UnitPrice y Discount se validan en el use case
// (precio > 0, descuento >= 0).
type CreateSaleRequest struct {
	BranchID  string          `json:"branch_id" validate:"required"`
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  int             `json:"quantity" validate:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Discount  decimal.Decimal `json:"discount"`
	Date      string          `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

// SaleResponse venta registrada, con el snapshot denormalizado.
type SaleResponse struct {
	ID             string          `json:"id"`
	BranchID       string          `json:"branch_id"`
	BranchName     string          `json:"branch_name"`
	ProductID      string          `json:"product_id"`
	ProductName    string          `json:"product_name"`
	ProductCost    decimal.Decimal `json:"product_cost"`
	Quantity       int             `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	Discount       decimal.Decimal `json:"discount"`
	Amount         decimal.Decimal `json:"amount"`
	Cost           decimal.Decimal `json:"cost"`
	Date           time.Time       `json:"date"`
	CreatedBy      string          `json:"created_by"`
	CreatedAt      time.Time       `json:"created_at"`
	// RemainingStock es la existencia del par tras la venta. Solo la respuesta
	// de creación la conoce; en listados y consultas el campo viaja omitido,
	// por eso es puntero: un 0 real (venta que vació la estantería) se
	// serializa, la ausencia de dato no.
	RemainingStock *int `json:"remaining_stock,omitempty"`
}

// ListSalesRequest query params de GET /api/sales.
// Month requiere Year (igual que el selector de la vista de ventas).
type ListSalesRequest struct {
	Year     int    `query:"year" validate:"omitempty,min=2000,max=2100"`
	Month    int    `query:"month" validate:"omitempty,min=1,max=12"`
	BranchID string `query:"branch_id" validate:"omitempty,uuid"`
	PageRequest
}

// SaleListResponse lista paginada de ventas (más recientes primero).
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
