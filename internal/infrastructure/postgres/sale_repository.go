package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dmarulanda/ventas-api/internal/domain/entity"
	"github.com/dmarulanda/ventas-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre PostgreSQL (usable con pool
// o tx: el registro de venta corre tx-bound junto al descuento de stock).
//
// El libro de ventas es append-only: no hay UPDATE ni DELETE.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador del libro de ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste una venta con sus snapshots de producto y sucursal.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, company_id, branch_id, branch_name, product_id, product_name, product_cost, quantity, unit_price, discount, amount, cost, date, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.CompanyID, sale.BranchID, sale.BranchName,
		sale.ProductID, sale.ProductName, sale.ProductCost,
		sale.Quantity, sale.UnitPrice, sale.Discount, sale.Amount, sale.Cost,
		sale.Date, sale.CreatedBy, sale.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetByID obtiene una venta por ID.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `
		SELECT id, company_id, branch_id, branch_name, product_id, product_name, product_cost, quantity, unit_price, discount, amount, cost, date, created_by, created_at
		FROM sales WHERE id = $1`
	var s entity.Sale
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.CompanyID, &s.BranchID, &s.BranchName,
		&s.ProductID, &s.ProductName, &s.ProductCost,
		&s.Quantity, &s.UnitPrice, &s.Discount, &s.Amount, &s.Cost,
		&s.Date, &s.CreatedBy, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return &s, nil
}

// ListByCompany lista ventas de la empresa, más recientes primero. El rango
// de fecha es semiabierto: date >= From y date < To.
func (r *SaleRepo) ListByCompany(companyID string, filters repository.SaleFilters) ([]*entity.Sale, error) {
	query := `
		SELECT id, company_id, branch_id, branch_name, product_id, product_name, product_cost, quantity, unit_price, discount, amount, cost, date, created_by, created_at
		FROM sales WHERE company_id = $1`
	args := []any{companyID}
	pos := 2
	if filters.From != nil {
		query += fmt.Sprintf(" AND date >= $%d", pos)
		args = append(args, *filters.From)
		pos++
	}
	if filters.To != nil {
		query += fmt.Sprintf(" AND date < $%d", pos)
		args = append(args, *filters.To)
		pos++
	}
	if filters.BranchID != "" {
		query += fmt.Sprintf(" AND branch_id = $%d", pos)
		args = append(args, filters.BranchID)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY date DESC, created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filters.Limit, filters.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.CompanyID, &s.BranchID, &s.BranchName,
			&s.ProductID, &s.ProductName, &s.ProductCost,
			&s.Quantity, &s.UnitPrice, &s.Discount, &s.Amount, &s.Cost,
			&s.Date, &s.CreatedBy, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
