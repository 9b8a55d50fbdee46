package analytics_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmarulanda/ventas-api/internal/application/analytics"
	"github.com/dmarulanda/ventas-api/internal/application/dto"
	"github.com/dmarulanda/ventas-api/internal/domain"
	"github.com/dmarulanda/ventas-api/internal/domain/entity"
	"github.com/dmarulanda/ventas-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Agregados de ventas e inventario: la DB entrega sumas crudas y aquí se
// derivan utilidad y ticket promedio (0 cuando no hay órdenes).
// ──────────────────────────────────────────────────────────────────────────────

const testCompanyID = "co-1"

func TestGetSalesStats_DerivaUtilidadYPromedio(t *testing.T) {
	repo := &fakeStatsRepo{totals: repository.SalesTotalsResult{
		Revenue: decimal.NewFromInt(1000),
		Cost:    decimal.NewFromInt(400),
		Orders:  4,
	}}
	uc := analytics.NewStatsUseCase(repo)

	out, err := uc.GetSalesStats(context.Background(), testCompanyID, dto.SalesStatsRequest{Year: 2024})
	require.NoError(t, err)

	assert.True(t, out.Revenue.Equal(decimal.NewFromInt(1000)))
	assert.True(t, out.Cost.Equal(decimal.NewFromInt(400)))
	assert.True(t, out.Profit.Equal(decimal.NewFromInt(600)), "utilidad = ingresos - costos")
	assert.Equal(t, int64(4), out.Orders)
	assert.True(t, out.AverageTicket.Equal(decimal.NewFromInt(250)), "ticket promedio = 1000/4")
	assert.Equal(t, 2024, out.Period.Year)
}

func TestGetSalesStats_SinVentas(t *testing.T) {
	uc := analytics.NewStatsUseCase(&fakeStatsRepo{})

	out, err := uc.GetSalesStats(context.Background(), testCompanyID, dto.SalesStatsRequest{})
	require.NoError(t, err)

	assert.True(t, out.Revenue.IsZero())
	assert.True(t, out.Profit.IsZero())
	assert.Equal(t, int64(0), out.Orders)
	assert.True(t, out.AverageTicket.IsZero(), "sin órdenes el promedio es 0, no una división por cero")
}

func TestGetSalesStats_PasaElRangoDelPeriodo(t *testing.T) {
	repo := &fakeStatsRepo{}
	uc := analytics.NewStatsUseCase(repo)

	_, err := uc.GetSalesStats(context.Background(), testCompanyID, dto.SalesStatsRequest{Year: 2024})
	require.NoError(t, err)

	require.Len(t, repo.salesCalls, 1)
	call := repo.salesCalls[0]
	require.NotNil(t, call.from)
	require.NotNil(t, call.to)
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.Local), *call.from)
	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.Local), *call.to)
}

func TestGetSalesStats_MesSinAnio(t *testing.T) {
	uc := analytics.NewStatsUseCase(&fakeStatsRepo{})

	_, err := uc.GetSalesStats(context.Background(), testCompanyID, dto.SalesStatsRequest{Month: 6})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetInventoryStats(t *testing.T) {
	repo := &fakeStatsRepo{inventory: repository.InventoryTotalsResult{
		ProductCount: 12,
		TotalUnits:   340,
		TotalValue:   decimal.NewFromInt(17000),
		LowStock:     3,
	}}
	uc := analytics.NewStatsUseCase(repo)

	out, err := uc.GetInventoryStats(context.Background(), testCompanyID)
	require.NoError(t, err)

	assert.Equal(t, int64(12), out.ProductCount)
	assert.Equal(t, int64(340), out.TotalUnits)
	assert.True(t, out.TotalValue.Equal(decimal.NewFromInt(17000)))
	assert.Equal(t, int64(3), out.LowStock)
	assert.Equal(t, entity.LowStockThreshold, out.LowStockThreshold)
	assert.Equal(t, entity.LowStockThreshold, repo.lastThreshold, "el umbral fijo debe llegar a la consulta")
}

func TestGetSummary_DashboardCompleto(t *testing.T) {
	repo := &fakeStatsRepo{
		totals: repository.SalesTotalsResult{
			Revenue: decimal.NewFromInt(500),
			Cost:    decimal.NewFromInt(200),
			Orders:  2,
		},
		inventory: repository.InventoryTotalsResult{LowStock: 4},
		top: []repository.TopProductResult{
			{ProductID: "pr-1", ProductName: "Camisa", UnitsSold: 9, Revenue: decimal.NewFromInt(900)},
		},
	}
	uc := analytics.NewDashboardUseCase(repo)

	out, err := uc.GetSummary(context.Background(), testCompanyID)
	require.NoError(t, err)

	assert.True(t, out.TodaySales.Equal(decimal.NewFromInt(500)))
	assert.True(t, out.TodayProfit.Equal(decimal.NewFromInt(300)))
	assert.True(t, out.MonthSales.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, int64(4), out.LowStock)
	require.Len(t, out.TopProducts, 1)
	assert.Equal(t, "Camisa", out.TopProducts[0].ProductName)
	assert.NotEmpty(t, out.DateLabel)

	// Dos rangos de ventas consultados: hoy (24 h) y mes en curso.
	require.Len(t, repo.salesCalls, 2)
	for _, call := range repo.salesCalls {
		require.NotNil(t, call.from)
		require.NotNil(t, call.to)
		assert.True(t, call.to.After(*call.from))
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Fake del repositorio de estadísticas, con registro de llamadas (las del
// dashboard llegan desde goroutines, de ahí el mutex).
// ──────────────────────────────────────────────────────────────────────────────

type salesCall struct {
	from, to *time.Time
}

type fakeStatsRepo struct {
	mu            sync.Mutex
	totals        repository.SalesTotalsResult
	inventory     repository.InventoryTotalsResult
	top           []repository.TopProductResult
	salesCalls    []salesCall
	lastThreshold int
}

func (f *fakeStatsRepo) GetSalesTotals(ctx context.Context, companyID string, from, to *time.Time) (repository.SalesTotalsResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.salesCalls = append(f.salesCalls, salesCall{from, to})
	return f.totals, nil
}

func (f *fakeStatsRepo) GetTopProducts(ctx context.Context, companyID string, from, to time.Time, limit int) ([]repository.TopProductResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.top, nil
}

func (f *fakeStatsRepo) GetInventoryTotals(ctx context.Context, companyID string, lowStockThreshold int) (repository.InventoryTotalsResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastThreshold = lowStockThreshold
	return f.inventory, nil
}
