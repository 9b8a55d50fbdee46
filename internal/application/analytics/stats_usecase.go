// Package analytics contiene los casos de uso de agregados del negocio:
// estadísticas de ventas e inventario y el resumen del dashboard.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/dmarulanda/ventas-api/internal/application/dto"
	"github.com/dmarulanda/ventas-api/internal/domain/entity"
	"github.com/dmarulanda/ventas-api/internal/domain/repository"
	"github.com/dmarulanda/ventas-api/internal/domain/sales"
)

// StatsUseCase agregados del libro de ventas y del catálogo.
//
// La DB entrega los totales crudos (Σ amount, Σ cost, conteos); la derivación
// utilidad = ingresos - costos y ticket promedio = ingresos/órdenes se hace
// aquí, con el promedio definido como 0 cuando no hay órdenes.
type StatsUseCase struct {
	statsRepo repository.StatsRepository
}

// NewStatsUseCase construye el caso de uso.
func NewStatsUseCase(statsRepo repository.StatsRepository) *StatsUseCase {
	return &StatsUseCase{statsRepo: statsRepo}
}

// GetSalesStats agrega las ventas del período año/mes (hora local).
func (uc *StatsUseCase) GetSalesStats(ctx context.Context, companyID string, in dto.SalesStatsRequest) (*dto.SalesStatsDTO, error) {
	from, to, err := sales.PeriodRange(in.Year, in.Month, time.Local)
	if err != nil {
		return nil, err
	}

	totals, err := uc.statsRepo.GetSalesTotals(ctx, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("stats: totales de ventas: %w", err)
	}

	return &dto.SalesStatsDTO{
		Revenue:       totals.Revenue,
		Cost:          totals.Cost,
		Profit:        sales.Profit(totals.Revenue, totals.Cost),
		Orders:        totals.Orders,
		AverageTicket: sales.AverageTicket(totals.Revenue, totals.Orders),
		Period:        dto.PeriodDTO{Year: in.Year, Month: in.Month},
	}, nil
}

// GetInventoryStats agrega el catálogo actual: número de productos, unidades
// totales en bodega, valor a costo y productos bajo el umbral de stock.
func (uc *StatsUseCase) GetInventoryStats(ctx context.Context, companyID string) (*dto.InventoryStatsDTO, error) {
	totals, err := uc.statsRepo.GetInventoryTotals(ctx, companyID, entity.LowStockThreshold)
	if err != nil {
		return nil, fmt.Errorf("stats: totales de inventario: %w", err)
	}

	return &dto.InventoryStatsDTO{
		ProductCount:      totals.ProductCount,
		TotalUnits:        totals.TotalUnits,
		TotalValue:        totals.TotalValue,
		LowStock:          totals.LowStock,
		LowStockThreshold: entity.LowStockThreshold,
	}, nil
}
