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

const dashboardTopProducts = 5 // número de productos en el widget del dashboard

// DashboardUseCase genera el resumen del día y del mes en curso.
//
// Fuente de datos: StatsRepository (consultas read-only). No accede
// directamente al libro de ventas; delega todo en el repositorio.
type DashboardUseCase struct {
	statsRepo repository.StatsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(statsRepo repository.StatsRepository) *DashboardUseCase {
	return &DashboardUseCase{statsRepo: statsRepo}
}

// GetSummary construye el DashboardSummaryDTO para la empresa indicada.
//
// Cuatro llamadas en paralelo:
//  1. GetSalesTotals(hoy)          → TodaySales + TodayProfit
//  2. GetSalesTotals(mes)          → MonthSales + MonthProfit
//  3. GetTopProducts(mes, top 5)   → TopProducts
//  4. GetInventoryTotals           → LowStock
func (uc *DashboardUseCase) GetSummary(ctx context.Context, companyID string) (*dto.DashboardSummaryDTO, error) {
	now := time.Now()

	// Hoy: [00:00 de hoy, 00:00 de mañana). Mes en curso: [día 1, hoy+1d).
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.AddDate(0, 0, 1)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := todayEnd

	type totalsResult struct {
		totals repository.SalesTotalsResult
		err    error
	}
	type topResult struct {
		rows []repository.TopProductResult
		err  error
	}
	type invResult struct {
		totals repository.InventoryTotalsResult
		err    error
	}

	todayCh := make(chan totalsResult, 1)
	monthCh := make(chan totalsResult, 1)
	topCh := make(chan topResult, 1)
	invCh := make(chan invResult, 1)

	go func() {
		t, err := uc.statsRepo.GetSalesTotals(ctx, companyID, &todayStart, &todayEnd)
		todayCh <- totalsResult{t, err}
	}()
	go func() {
		t, err := uc.statsRepo.GetSalesTotals(ctx, companyID, &monthStart, &monthEnd)
		monthCh <- totalsResult{t, err}
	}()
	go func() {
		rows, err := uc.statsRepo.GetTopProducts(ctx, companyID, monthStart, monthEnd, dashboardTopProducts)
		topCh <- topResult{rows, err}
	}()
	go func() {
		t, err := uc.statsRepo.GetInventoryTotals(ctx, companyID, entity.LowStockThreshold)
		invCh <- invResult{t, err}
	}()

	today := <-todayCh
	month := <-monthCh
	top := <-topCh
	inv := <-invCh

	if today.err != nil {
		return nil, fmt.Errorf("dashboard: métricas de hoy: %w", today.err)
	}
	if month.err != nil {
		return nil, fmt.Errorf("dashboard: métricas del mes: %w", month.err)
	}
	if top.err != nil {
		return nil, fmt.Errorf("dashboard: top productos: %w", top.err)
	}
	if inv.err != nil {
		return nil, fmt.Errorf("dashboard: inventario: %w", inv.err)
	}

	topProducts := make([]dto.TopProductDTO, 0, len(top.rows))
	for _, r := range top.rows {
		topProducts = append(topProducts, dto.TopProductDTO{
			ProductID:   r.ProductID,
			ProductName: r.ProductName,
			UnitsSold:   r.UnitsSold,
			Revenue:     r.Revenue.Round(2),
		})
	}

	return &dto.DashboardSummaryDTO{
		TodaySales:  today.totals.Revenue.Round(2),
		TodayProfit: sales.Profit(today.totals.Revenue, today.totals.Cost).Round(2),
		MonthSales:  month.totals.Revenue.Round(2),
		MonthProfit: sales.Profit(month.totals.Revenue, month.totals.Cost).Round(2),
		TopProducts: topProducts,
		LowStock:    inv.totals.LowStock,
		DateLabel:   fmt.Sprintf("%s %d", sales.MonthName(now.Month()), now.Year()),
	}, nil
}
