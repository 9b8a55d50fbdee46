package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dmarulanda/ventas-api/internal/domain"
	"github.com/dmarulanda/ventas-api/internal/domain/entity"
	"github.com/dmarulanda/ventas-api/internal/domain/repository"
)

var _ repository.BranchStockRepository = (*BranchStockRepo)(nil)

// BranchStockRepo implementación de BranchStockRepository sobre PostgreSQL
// (usable con pool o tx: el descuento por venta corre tx-bound).
type BranchStockRepo struct {
	q Querier
}

// NewBranchStockRepository construye el adaptador de inventario por sucursal. Pasar pool o tx (Querier).
func NewBranchStockRepository(q Querier) *BranchStockRepo {
	return &BranchStockRepo{q: q}
}

// Get obtiene la existencia de un producto en una sucursal. Devuelve nil si
// el producto nunca se ha distribuido a esa sucursal.
func (r *BranchStockRepo) Get(branchID, productID string) (*entity.BranchStock, error) {
	query := `
		SELECT branch_id, product_id, company_id, quantity, updated_at
		FROM branch_stock WHERE branch_id = $1 AND product_id = $2`
	var s entity.BranchStock
	err := r.q.QueryRow(context.Background(), query, branchID, productID).Scan(
		&s.BranchID, &s.ProductID, &s.CompanyID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get branch stock: %w", err)
	}
	return &s, nil
}

// AddQuantity crea la fila en la primera distribución o acumula sobre la
// existente, en una sola sentencia. La restricción UNIQUE (branch_id,
// product_id) garantiza que dos distribuciones concurrentes no dupliquen la
// fila ni pierdan incrementos.
func (r *BranchStockRepo) AddQuantity(companyID, branchID, productID string, qty int) (int, error) {
	query := `
		INSERT INTO branch_stock (branch_id, product_id, company_id, quantity, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (branch_id, product_id)
		DO UPDATE SET quantity = branch_stock.quantity + EXCLUDED.quantity, updated_at = now()
		RETURNING quantity`
	var result int
	err := r.q.QueryRow(context.Background(), query, branchID, productID, companyID, qty).Scan(&result)
	if err != nil {
		return 0, fmt.Errorf("add branch stock: %w", err)
	}
	return result, nil
}

// DeductQuantity descuenta qty de forma condicional: la sentencia solo afecta
// la fila si la existencia alcanza, así el chequeo y el descuento son un solo
// paso atómico en la base de datos. Si ninguna fila fue afectada (par
// inexistente o cantidad insuficiente) devuelve domain.ErrInsufficientStock.
func (r *BranchStockRepo) DeductQuantity(companyID, branchID, productID string, qty int) (int, error) {
	query := `
		UPDATE branch_stock
		SET quantity = quantity - $4, updated_at = now()
		WHERE branch_id = $1 AND product_id = $2 AND company_id = $3 AND quantity >= $4
		RETURNING quantity`
	var remaining int
	err := r.q.QueryRow(context.Background(), query, branchID, productID, companyID, qty).Scan(&remaining)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrInsufficientStock
		}
		return 0, fmt.Errorf("deduct branch stock: %w", err)
	}
	return remaining, nil
}

// ListByBranch lista el inventario de la sucursal con los datos del producto.
// LEFT JOIN: la fila de stock sobrevive si el producto fue eliminado del
// catálogo, con nombre y SKU vacíos.
func (r *BranchStockRepo) ListByBranch(branchID string, limit, offset int) ([]*entity.BranchStockItem, error) {
	query := `
		SELECT bs.branch_id, bs.product_id, COALESCE(p.name, ''), COALESCE(p.sku, ''), bs.quantity, bs.updated_at
		FROM branch_stock bs
		LEFT JOIN products p ON p.id = bs.product_id
		WHERE bs.branch_id = $1
		ORDER BY COALESCE(p.name, ''), bs.product_id
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, branchID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list branch stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.BranchStockItem
	for rows.Next() {
		var item entity.BranchStockItem
		if err := rows.Scan(&item.BranchID, &item.ProductID, &item.ProductName, &item.SKU,
			&item.Quantity, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan branch stock: %w", err)
		}
		list = append(list, &item)
	}
	return list, rows.Err()
}
