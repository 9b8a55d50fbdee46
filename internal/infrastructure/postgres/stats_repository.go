package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmarulanda/ventas-api/internal/domain/repository"
)

var _ repository.StatsRepository = (*StatsRepo)(nil)

// StatsRepo consultas de solo lectura para estadísticas de ventas e inventario.
type StatsRepo struct {
	pool *pgxpool.Pool
}

// NewStatsRepository construye el adaptador de estadísticas.
func NewStatsRepository(pool *pgxpool.Pool) *StatsRepo {
	return &StatsRepo{pool: pool}
}

// GetSalesTotals agrega ingresos, costo y número de órdenes del período.
// from/to nil = sin límite por ese extremo; el rango es semiabierto [from, to).
// Usa COALESCE para devolver cero si no hay filas (período sin ventas).
func (r *StatsRepo) GetSalesTotals(
	ctx context.Context,
	companyID string,
	from, to *time.Time,
) (repository.SalesTotalsResult, error) {
	query := `
		SELECT
		    COALESCE(SUM(amount), 0) AS revenue,
		    COALESCE(SUM(cost),   0) AS cost,
		    COUNT(*)                 AS orders
		FROM sales WHERE company_id = $1`
	args := []any{companyID}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND date >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND date < $%d", pos)
		args = append(args, *to)
	}

	var result repository.SalesTotalsResult
	err := r.pool.QueryRow(ctx, query, args...).
		Scan(&result.Revenue, &result.Cost, &result.Orders)
	if err != nil {
		return repository.SalesTotalsResult{}, fmt.Errorf("stats.GetSalesTotals: %w", err)
	}
	return result, nil
}

// GetTopProducts devuelve los `limit` productos con mayor ingreso en el rango,
// agrupando por los snapshots del libro de ventas (sobrevive a renombres y a
// productos eliminados del catálogo). Si el nombre cambió dentro del período
// se toma uno de los snapshots.
func (r *StatsRepo) GetTopProducts(
	ctx context.Context,
	companyID string,
	from, to time.Time,
	limit int,
) ([]repository.TopProductResult, error) {
	const query = `
		SELECT
		    product_id,
		    MAX(product_name)  AS product_name,
		    SUM(quantity)      AS units_sold,
		    SUM(amount)        AS revenue
		FROM sales
		WHERE company_id = $1 AND date >= $2 AND date < $3
		GROUP BY product_id
		ORDER BY revenue DESC
		LIMIT $4`

	rows, err := r.pool.Query(ctx, query, companyID, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("stats.GetTopProducts: %w", err)
	}
	defer rows.Close()

	var results []repository.TopProductResult
	for rows.Next() {
		var row repository.TopProductResult
		if err := rows.Scan(
			&row.ProductID,
			&row.ProductName,
			&row.UnitsSold,
			&row.Revenue,
		); err != nil {
			return nil, fmt.Errorf("stats.GetTopProducts scan: %w", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("stats.GetTopProducts rows: %w", err)
	}
	if results == nil {
		results = []repository.TopProductResult{}
	}
	return results, nil
}

// GetInventoryTotals agrega el catálogo actual: cantidad de productos,
// unidades en bodega, valor a costo y productos bajo el umbral de stock.
func (r *StatsRepo) GetInventoryTotals(
	ctx context.Context,
	companyID string,
	lowStockThreshold int,
) (repository.InventoryTotalsResult, error) {
	const query = `
		SELECT
		    COUNT(*)                              AS product_count,
		    COALESCE(SUM(stock), 0)               AS total_units,
		    COALESCE(SUM(cost * stock), 0)        AS total_value,
		    COUNT(*) FILTER (WHERE stock < $2)    AS low_stock
		FROM products WHERE company_id = $1`

	var result repository.InventoryTotalsResult
	err := r.pool.QueryRow(ctx, query, companyID, lowStockThreshold).
		Scan(&result.ProductCount, &result.TotalUnits, &result.TotalValue, &result.LowStock)
	if err != nil {
		return repository.InventoryTotalsResult{}, fmt.Errorf("stats.GetInventoryTotals: %w", err)
	}
	return result, nil
}
