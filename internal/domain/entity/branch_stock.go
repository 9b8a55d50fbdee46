package entity

import "time"

// BranchStock es la existencia de un producto asignada a una sucursal.
// Existe a lo sumo una fila por par (sucursal, producto); se crea en la
// primera distribución y nunca se elimina, aunque la cantidad llegue a cero.
type BranchStock struct {
	BranchID  string
	ProductID string
	CompanyID string
	Quantity  int
	UpdatedAt time.Time
}

// BranchStockItem es una fila del inventario de sucursal enriquecida con los
// datos del producto para listados. ProductName/SKU quedan vacíos si el
// producto fue eliminado del catálogo (la fila de stock sobrevive).
type BranchStockItem struct {
	BranchID    string
	ProductID   string
	ProductName string
	SKU         string
	Quantity    int
	UpdatedAt   time.Time
}
