package repository

import "github.com/dmarulanda/ventas-api/internal/domain/entity"

// BranchStockRepository define el puerto para el inventario por sucursal.
//
// Las mutaciones de cantidad son sentencias condicionales atómicas en la base
// de datos (upsert-incremento y decremento comparado), de modo que dos
// escritores concurrentes sobre el mismo par (sucursal, producto) no puedan
// duplicar filas ni perder incrementos.
type BranchStockRepository interface {
	// Get devuelve la fila del par, o nil (sin error) si el producto nunca se
	// ha distribuido a esa sucursal.
	Get(branchID, productID string) (*entity.BranchStock, error)
	// AddQuantity crea la fila con qty en la primera distribución o incrementa
	// la existente, en una sola sentencia INSERT ... ON CONFLICT DO UPDATE.
	// Devuelve la cantidad resultante.
	AddQuantity(companyID, branchID, productID string, qty int) (int, error)
	// DeductQuantity descuenta qty solo si la existencia alcanza
	// (UPDATE ... SET quantity = quantity - qty WHERE quantity >= qty) y
	// devuelve la cantidad restante. Si ninguna fila fue afectada devuelve
	// domain.ErrInsufficientStock.
	DeductQuantity(companyID, branchID, productID string, qty int) (int, error)
	// ListByBranch lista el inventario de la sucursal con datos de producto
	// (LEFT JOIN: las filas sobreviven a productos eliminados del catálogo).
	ListByBranch(branchID string, limit, offset int) ([]*entity.BranchStockItem, error)
}
