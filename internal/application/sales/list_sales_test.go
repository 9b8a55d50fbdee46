package sales_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmarulanda/ventas-api/internal/application/dto"
	appsales "github.com/dmarulanda/ventas-api/internal/application/sales"
	"github.com/dmarulanda/ventas-api/internal/domain"
	"github.com/dmarulanda/ventas-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Listado de ventas con filtro año/mes calendario en hora local.
// ──────────────────────────────────────────────────────────────────────────────

func TestListSales_FiltroAnio2024(t *testing.T) {
	repo := &fakeSaleRepo{items: []*entity.Sale{
		saleOn(t, "v1", time.Date(2023, time.December, 31, 23, 59, 0, 0, time.Local)),
		saleOn(t, "v2", time.Date(2024, time.January, 1, 0, 0, 0, 0, time.Local)),
		saleOn(t, "v3", time.Date(2024, time.July, 15, 12, 0, 0, 0, time.Local)),
		saleOn(t, "v4", time.Date(2025, time.January, 1, 0, 0, 0, 0, time.Local)),
	}}
	uc := appsales.NewListSalesUseCase(repo)

	out, err := uc.ListSales(testCompanyID, dto.ListSalesRequest{Year: 2024})
	require.NoError(t, err)

	ids := make([]string, 0, len(out.Items))
	for _, s := range out.Items {
		ids = append(ids, s.ID)
	}
	assert.ElementsMatch(t, []string{"v2", "v3"}, ids,
		"el filtro 2024 debe incluir exactamente las ventas del año calendario 2024")
	for _, s := range out.Items {
		assert.Nil(t, s.RemainingStock, "los listados no calculan existencia restante")
	}
}

func TestListSales_FiltroAnioYMes(t *testing.T) {
	repo := &fakeSaleRepo{items: []*entity.Sale{
		saleOn(t, "v1", time.Date(2024, time.May, 31, 10, 0, 0, 0, time.Local)),
		saleOn(t, "v2", time.Date(2024, time.June, 1, 0, 0, 0, 0, time.Local)),
		saleOn(t, "v3", time.Date(2024, time.June, 30, 23, 0, 0, 0, time.Local)),
		saleOn(t, "v4", time.Date(2024, time.July, 1, 0, 0, 0, 0, time.Local)),
	}}
	uc := appsales.NewListSalesUseCase(repo)

	out, err := uc.ListSales(testCompanyID, dto.ListSalesRequest{Year: 2024, Month: 6})
	require.NoError(t, err)

	ids := make([]string, 0, len(out.Items))
	for _, s := range out.Items {
		ids = append(ids, s.ID)
	}
	assert.ElementsMatch(t, []string{"v2", "v3"}, ids)
}

func TestListSales_MesSinAnioEsInvalido(t *testing.T) {
	uc := appsales.NewListSalesUseCase(&fakeSaleRepo{})

	_, err := uc.ListSales(testCompanyID, dto.ListSalesRequest{Month: 6})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListSales_SinFiltroPasaRangoAbierto(t *testing.T) {
	repo := &fakeSaleRepo{}
	uc := appsales.NewListSalesUseCase(repo)

	_, err := uc.ListSales(testCompanyID, dto.ListSalesRequest{})
	require.NoError(t, err)
	assert.Nil(t, repo.filters.From, "histórico completo: sin límite inferior")
	assert.Nil(t, repo.filters.To, "histórico completo: sin límite superior")
	assert.Equal(t, 20, repo.filters.Limit, "el límite por defecto debe aplicarse")
}

func TestGetSale_DeOtraEmpresa(t *testing.T) {
	repo := &fakeSaleRepo{items: []*entity.Sale{
		{ID: "v1", CompanyID: "co-otra"},
	}}
	uc := appsales.NewListSalesUseCase(repo)

	_, err := uc.GetSale(testCompanyID, "v1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestGetSale_Inexistente(t *testing.T) {
	uc := appsales.NewListSalesUseCase(&fakeSaleRepo{})

	out, err := uc.GetSale(testCompanyID, "v-no-existe")
	require.NoError(t, err)
	assert.Nil(t, out, "venta inexistente: nil sin error, el handler decide el 404")
}

func saleOn(t *testing.T, id string, date time.Time) *entity.Sale {
	t.Helper()
	return &entity.Sale{
		ID:        id,
		CompanyID: testCompanyID,
		BranchID:  testBranchID,
		Quantity:  1,
		UnitPrice: decimal.NewFromInt(100),
		Amount:    decimal.NewFromInt(100),
		Date:      date,
	}
}
