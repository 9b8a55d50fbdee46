package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
// Cost y ShippingCost se validan como no negativos en el use case.
type CreateProductRequest struct {
	SKU          string          `json:"sku" validate:"required,min=1,max=100"`
	Barcode      string          `json:"barcode" validate:"omitempty,max=100"`
	Brand        string          `json:"brand" validate:"omitempty,max=120"`
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	Cost         decimal.Decimal `json:"cost"`
	ShippingCost decimal.Decimal `json:"shipping_cost"`
	Stock        int             `json:"stock" validate:"min=0"`
}

// UpdateProductRequest entrada para actualizar un producto (campos opcionales).
type UpdateProductRequest struct {
	SKU          *string          `json:"sku" validate:"omitempty,min=1,max=100"`
	Barcode      *string          `json:"barcode" validate:"omitempty,max=100"`
	Brand        *string          `json:"brand" validate:"omitempty,max=120"`
	Name         *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Cost         *decimal.Decimal `json:"cost"`
	ShippingCost *decimal.Decimal `json:"shipping_cost"`
	Stock        *int             `json:"stock" validate:"omitempty,min=0"`
}

// ProductResponse salida de un producto del catálogo.
type ProductResponse struct {
	ID           string          `json:"id"`
	CompanyID    string          `json:"company_id"`
	SKU          string          `json:"sku"`
	Barcode      string          `json:"barcode"`
	Brand        string          `json:"brand"`
	Name         string          `json:"name"`
	Cost         decimal.Decimal `json:"cost"`
	ShippingCost decimal.Decimal `json:"shipping_cost"`
	Stock        int             `json:"stock"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
