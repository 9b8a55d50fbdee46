package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SalesTotalsResult agregado crudo del libro de ventas en un período.
// Lo produce la DB; el use case deriva utilidad y ticket promedio.
type SalesTotalsResult struct {
	Revenue decimal.Decimal // Σ amount
	Cost    decimal.Decimal // Σ cost
	Orders  int64
}

// TopProductResult fila del ranking de productos por ingreso.
type TopProductResult struct {
	ProductID   string
	ProductName string
	UnitsSold   int64
	Revenue     decimal.Decimal
}

// InventoryTotalsResult agregado crudo del catálogo.
type InventoryTotalsResult struct {
	ProductCount int64
	TotalUnits   int64           // Σ stock de bodega
	TotalValue   decimal.Decimal // Σ cost*stock (valor a costo)
	LowStock     int64           // productos con stock bajo el umbral
}

// StatsRepository define las consultas de lectura para estadísticas.
// Las implementaciones son read-only y usan COALESCE para devolver ceros
// cuando el período no tiene filas.
type StatsRepository interface {
	// GetSalesTotals agrega revenue, costo y número de órdenes de la empresa.
	// from/to nil = todo el histórico; el rango es semiabierto [from, to).
	GetSalesTotals(ctx context.Context, companyID string, from, to *time.Time) (SalesTotalsResult, error)

	// GetTopProducts devuelve los `limit` productos con mayor ingreso en el
	// rango, según los snapshots de las ventas (sobrevive a renombres).
	GetTopProducts(ctx context.Context, companyID string, from, to time.Time, limit int) ([]TopProductResult, error)

	// GetInventoryTotals agrega el catálogo actual de la empresa.
	GetInventoryTotals(ctx context.Context, companyID string, lowStockThreshold int) (InventoryTotalsResult, error)
}
