package dto

import "time"

// DistributeStockRequest body para POST /api/distributions.
// Asigna unidades del catálogo al inventario de una sucursal; el stock de
// bodega no se descuenta (catálogo y asignación por sucursal son
// independientes).
type DistributeStockRequest struct {
	BranchID  string `json:"branch_id" validate:"required"`
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// DistributeStockResponse existencia resultante del par tras distribuir.
type DistributeStockResponse struct {
	BranchID  string `json:"branch_id"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// BranchStockItemResponse fila del inventario de una sucursal.
// ProductName/SKU van vacíos si el producto ya no existe en el catálogo.
type BranchStockItemResponse struct {
	BranchID    string    `json:"branch_id"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name,omitempty"`
	SKU         string    `json:"sku,omitempty"`
	Quantity    int       `json:"quantity"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BranchStockListResponse inventario paginado de una sucursal.
type BranchStockListResponse struct {
	BranchID   string                    `json:"branch_id"`
	BranchName string                    `json:"branch_name"`
	Items      []BranchStockItemResponse `json:"items"`
	Page       PageResponse              `json:"page"`
}
