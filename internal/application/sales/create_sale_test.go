package sales_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmarulanda/ventas-api/internal/application/dto"
	"github.com/dmarulanda/ventas-api/internal/application/events"
	appsales "github.com/dmarulanda/ventas-api/internal/application/sales"
	"github.com/dmarulanda/ventas-api/internal/domain"
	"github.com/dmarulanda/ventas-api/internal/domain/entity"
	"github.com/dmarulanda/ventas-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Registro de venta: validación con campo nombrado, snapshot denormalizado y
// escritura atómica venta + descuento (todo o nada).
// ──────────────────────────────────────────────────────────────────────────────

const (
	testCompanyID = "co-1"
	testBranchID  = "br-1"
	testProductID = "pr-1"
	testUserID    = "us-1"
)

// TestCreateSale_EscenarioReferencia: existencia 10, venta de 3 a $100 con $10
// de descuento → monto 290, costo 150, existencia final 7.
func TestCreateSale_EscenarioReferencia(t *testing.T) {
	env := newSaleEnv(t)
	env.stock.rows[stockKey(testBranchID, testProductID)] = 10

	out, err := env.create.CreateSale(context.Background(), testCompanyID, testUserID, dto.CreateSaleRequest{
		BranchID:  testBranchID,
		ProductID: testProductID,
		Quantity:  3,
		UnitPrice: decimal.NewFromInt(100),
		Discount:  decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	assert.True(t, out.Amount.Equal(decimal.NewFromInt(290)), "monto 3*100-10 debe ser 290, fue %s", out.Amount)
	assert.True(t, out.Cost.Equal(decimal.NewFromInt(150)), "costo 3*50 debe ser 150, fue %s", out.Cost)
	require.NotNil(t, out.RemainingStock)
	assert.Equal(t, 7, *out.RemainingStock, "la existencia debe quedar en 7")
	assert.Equal(t, 7, env.stock.rows[stockKey(testBranchID, testProductID)])

	// Snapshot denormalizado congelado en la venta.
	assert.Equal(t, "Centro", out.BranchName)
	assert.Equal(t, "Camisa", out.ProductName)
	assert.True(t, out.ProductCost.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, testUserID, out.CreatedBy)

	require.Len(t, env.sales.items, 1, "debe persistirse exactamente una venta")
}

func TestCreateSale_StockInsuficiente(t *testing.T) {
	env := newSaleEnv(t)
	env.stock.rows[stockKey(testBranchID, testProductID)] = 2

	_, err := env.create.CreateSale(context.Background(), testCompanyID, testUserID, dto.CreateSaleRequest{
		BranchID:  testBranchID,
		ProductID: testProductID,
		Quantity:  3,
		UnitPrice: decimal.NewFromInt(100),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "quantity", "el error debe nombrar el campo insuficiente")

	assert.Empty(t, env.sales.items, "no debe registrarse ninguna venta")
	assert.Equal(t, 2, env.stock.rows[stockKey(testBranchID, testProductID)], "la existencia no debe cambiar")
}

// TestCreateSale_VaciaEstanteria: una venta que consume toda la existencia
// debe reportar remaining_stock 0 explícito, no omitirlo.
func TestCreateSale_VaciaEstanteria(t *testing.T) {
	env := newSaleEnv(t)
	env.stock.rows[stockKey(testBranchID, testProductID)] = 3

	out, err := env.create.CreateSale(context.Background(), testCompanyID, testUserID, dto.CreateSaleRequest{
		BranchID:  testBranchID,
		ProductID: testProductID,
		Quantity:  3,
		UnitPrice: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	require.NotNil(t, out.RemainingStock, "el 0 real debe viajar en la respuesta")
	assert.Equal(t, 0, *out.RemainingStock)

	body, err := json.Marshal(out)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"remaining_stock":0`)
}

func TestCreateSale_CamposObligatorios(t *testing.T) {
	env := newSaleEnv(t)
	env.stock.rows[stockKey(testBranchID, testProductID)] = 10

	valid := dto.CreateSaleRequest{
		BranchID:  testBranchID,
		ProductID: testProductID,
		Quantity:  1,
		UnitPrice: decimal.NewFromInt(100),
	}

	cases := []struct {
		nombre string
		mutar  func(*dto.CreateSaleRequest)
		campo  string
	}{
		{"sin sucursal", func(r *dto.CreateSaleRequest) { r.BranchID = "" }, "branch_id"},
		{"sin producto", func(r *dto.CreateSaleRequest) { r.ProductID = "" }, "product_id"},
		{"cantidad cero", func(r *dto.CreateSaleRequest) { r.Quantity = 0 }, "quantity"},
		{"cantidad negativa", func(r *dto.CreateSaleRequest) { r.Quantity = -2 }, "quantity"},
		{"sin precio", func(r *dto.CreateSaleRequest) { r.UnitPrice = decimal.Zero }, "unit_price"},
	}
	for _, tc := range cases {
		req := valid
		tc.mutar(&req)
		_, err := env.create.CreateSale(context.Background(), testCompanyID, testUserID, req)
		require.Error(t, err, tc.nombre)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, tc.nombre)
		assert.Contains(t, err.Error(), tc.campo, "el error de %q debe nombrar el campo", tc.nombre)
	}
	assert.Empty(t, env.sales.items, "ninguna solicitud inválida debe escribir")
}

func TestCreateSale_DescuentoNegativo(t *testing.T) {
	env := newSaleEnv(t)
	env.stock.rows[stockKey(testBranchID, testProductID)] = 10

	_, err := env.create.CreateSale(context.Background(), testCompanyID, testUserID, dto.CreateSaleRequest{
		BranchID:  testBranchID,
		ProductID: testProductID,
		Quantity:  1,
		UnitPrice: decimal.NewFromInt(100),
		Discount:  decimal.NewFromInt(-5),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "discount")
}

func TestCreateSale_ProductoNoDistribuidoEnSucursal(t *testing.T) {
	env := newSaleEnv(t)
	// Sin fila de existencias para el par: el producto existe en el catálogo
	// pero nunca se distribuyó a la sucursal.
	_, err := env.create.CreateSale(context.Background(), testCompanyID, testUserID, dto.CreateSaleRequest{
		BranchID:  testBranchID,
		ProductID: testProductID,
		Quantity:  1,
		UnitPrice: decimal.NewFromInt(100),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "product_id")
}

func TestCreateSale_SucursalInexistente(t *testing.T) {
	env := newSaleEnv(t)

	_, err := env.create.CreateSale(context.Background(), testCompanyID, testUserID, dto.CreateSaleRequest{
		BranchID:  "br-no-existe",
		ProductID: testProductID,
		Quantity:  1,
		UnitPrice: decimal.NewFromInt(100),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "branch_id")
}

// TestCreateSale_CarreraPerdidaEnDecremento: la validación ve existencia
// suficiente pero otra venta la consume antes de la transacción. El decremento
// condicional no afecta filas y nada queda escrito.
func TestCreateSale_CarreraPerdidaEnDecremento(t *testing.T) {
	env := newSaleEnv(t)
	env.stock.rows[stockKey(testBranchID, testProductID)] = 1
	snapshot := 5
	env.stock.getOverride = &snapshot // la lectura previa ve un valor ya obsoleto

	_, err := env.create.CreateSale(context.Background(), testCompanyID, testUserID, dto.CreateSaleRequest{
		BranchID:  testBranchID,
		ProductID: testProductID,
		Quantity:  3,
		UnitPrice: decimal.NewFromInt(100),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Empty(t, env.sales.items)
	assert.Equal(t, 1, env.stock.rows[stockKey(testBranchID, testProductID)], "el decremento fallido no debe tocar la fila")
}

// TestCreateSale_FallaPersistencia_SinEscrituraParcial: si el alta de la venta
// falla tras el decremento, la transacción revierte el decremento.
func TestCreateSale_FallaPersistencia_SinEscrituraParcial(t *testing.T) {
	env := newSaleEnv(t)
	env.stock.rows[stockKey(testBranchID, testProductID)] = 10
	env.sales.createErr = assert.AnError

	_, err := env.create.CreateSale(context.Background(), testCompanyID, testUserID, dto.CreateSaleRequest{
		BranchID:  testBranchID,
		ProductID: testProductID,
		Quantity:  3,
		UnitPrice: decimal.NewFromInt(100),
	})
	require.Error(t, err)
	assert.Empty(t, env.sales.items)
	assert.Equal(t, 10, env.stock.rows[stockKey(testBranchID, testProductID)],
		"el rollback debe restaurar la existencia")
}

func TestCreateSale_FechaExplicita(t *testing.T) {
	env := newSaleEnv(t)
	env.stock.rows[stockKey(testBranchID, testProductID)] = 10

	out, err := env.create.CreateSale(context.Background(), testCompanyID, testUserID, dto.CreateSaleRequest{
		BranchID:  testBranchID,
		ProductID: testProductID,
		Quantity:  1,
		UnitPrice: decimal.NewFromInt(100),
		Date:      "2024-06-15",
	})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.June, 15, 0, 0, 0, 0, time.Local), out.Date,
		"la fecha explícita queda a medianoche local")
}

func TestCreateSale_FechaMalFormada(t *testing.T) {
	env := newSaleEnv(t)
	env.stock.rows[stockKey(testBranchID, testProductID)] = 10

	_, err := env.create.CreateSale(context.Background(), testCompanyID, testUserID, dto.CreateSaleRequest{
		BranchID:  testBranchID,
		ProductID: testProductID,
		Quantity:  1,
		UnitPrice: decimal.NewFromInt(100),
		Date:      "15/06/2024",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "date")
}

func TestCreateSale_PublicaEvento(t *testing.T) {
	env := newSaleEnv(t)
	env.stock.rows[stockKey(testBranchID, testProductID)] = 10

	out, err := env.create.CreateSale(context.Background(), testCompanyID, testUserID, dto.CreateSaleRequest{
		BranchID:  testBranchID,
		ProductID: testProductID,
		Quantity:  2,
		UnitPrice: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	require.Len(t, env.pub.published, 1)
	ev := env.pub.published[0]
	assert.Equal(t, events.SaleCreated, ev.Type)
	assert.Equal(t, out.ID, ev.EntityID)
	assert.Equal(t, testCompanyID, ev.CompanyID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria. El runner de transacciones copia las existencias antes de
// ejecutar y las restaura si la función retorna error, igual que un rollback.
// ──────────────────────────────────────────────────────────────────────────────

type saleEnv struct {
	branches *fakeBranchRepo
	products *fakeProductRepo
	stock    *fakeBranchStockRepo
	sales    *fakeSaleRepo
	pub      *fakePublisher
	create   *appsales.CreateSaleUseCase
}

func newSaleEnv(t *testing.T) *saleEnv {
	t.Helper()
	env := &saleEnv{
		branches: &fakeBranchRepo{items: map[string]*entity.Branch{
			testBranchID: {ID: testBranchID, CompanyID: testCompanyID, Name: "Centro"},
		}},
		products: &fakeProductRepo{items: map[string]*entity.Product{
			testProductID: {
				ID: testProductID, CompanyID: testCompanyID, SKU: "SKU-1",
				Name: "Camisa", Cost: decimal.NewFromInt(50), Stock: 100,
			},
		}},
		stock: &fakeBranchStockRepo{rows: map[string]int{}},
		sales: &fakeSaleRepo{},
		pub:   &fakePublisher{},
	}
	runner := &fakeTxRunner{stock: env.stock, sales: env.sales}
	env.create = appsales.NewCreateSaleUseCase(runner, env.branches, env.products, env.stock, env.pub)
	return env
}

type fakeTxRunner struct {
	stock *fakeBranchStockRepo
	sales *fakeSaleRepo
}

func (f *fakeTxRunner) Run(ctx context.Context, fn func(repository.SaleRepository, repository.BranchStockRepository) error) error {
	before := make(map[string]int, len(f.stock.rows))
	for k, v := range f.stock.rows {
		before[k] = v
	}
	salesBefore := len(f.sales.items)
	if err := fn(f.sales, f.stock); err != nil {
		f.stock.rows = before
		f.sales.items = f.sales.items[:salesBefore]
		return err
	}
	return nil
}

type fakeBranchRepo struct {
	items map[string]*entity.Branch
}

func (f *fakeBranchRepo) Create(b *entity.Branch) error             { f.items[b.ID] = b; return nil }
func (f *fakeBranchRepo) GetByID(id string) (*entity.Branch, error) { return f.items[id], nil }
func (f *fakeBranchRepo) Update(b *entity.Branch) error             { f.items[b.ID] = b; return nil }
func (f *fakeBranchRepo) ListByCompany(string, int, int) ([]*entity.Branch, error) {
	return nil, nil
}

type fakeProductRepo struct {
	items map[string]*entity.Product
}

func (f *fakeProductRepo) Create(p *entity.Product) error             { f.items[p.ID] = p; return nil }
func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) { return f.items[id], nil }
func (f *fakeProductRepo) GetByCompanyAndSKU(string, string) (*entity.Product, error) {
	return nil, nil
}
func (f *fakeProductRepo) Update(p *entity.Product) error { f.items[p.ID] = p; return nil }
func (f *fakeProductRepo) ListByCompany(string, int, int) ([]*entity.Product, error) {
	return nil, nil
}
func (f *fakeProductRepo) SearchByCompany(string, string, int, int) ([]*entity.Product, error) {
	return nil, nil
}
func (f *fakeProductRepo) ListLowStock(string, int) ([]*entity.Product, error) { return nil, nil }
func (f *fakeProductRepo) Delete(id string) error {
	delete(f.items, id)
	return nil
}

type fakeBranchStockRepo struct {
	rows        map[string]int
	getOverride *int // simula una lectura previa obsoleta
}

func stockKey(branchID, productID string) string { return branchID + "|" + productID }

func (f *fakeBranchStockRepo) Get(branchID, productID string) (*entity.BranchStock, error) {
	qty, ok := f.rows[stockKey(branchID, productID)]
	if !ok {
		return nil, nil
	}
	if f.getOverride != nil {
		qty = *f.getOverride
	}
	return &entity.BranchStock{BranchID: branchID, ProductID: productID, Quantity: qty}, nil
}

func (f *fakeBranchStockRepo) AddQuantity(companyID, branchID, productID string, qty int) (int, error) {
	k := stockKey(branchID, productID)
	f.rows[k] += qty
	return f.rows[k], nil
}

func (f *fakeBranchStockRepo) DeductQuantity(companyID, branchID, productID string, qty int) (int, error) {
	k := stockKey(branchID, productID)
	if f.rows[k] < qty {
		return 0, domain.ErrInsufficientStock
	}
	f.rows[k] -= qty
	return f.rows[k], nil
}

func (f *fakeBranchStockRepo) ListByBranch(string, int, int) ([]*entity.BranchStockItem, error) {
	return nil, nil
}

type fakeSaleRepo struct {
	items     []*entity.Sale
	createErr error
	filters   repository.SaleFilters // últimos filtros recibidos
}

func (f *fakeSaleRepo) Create(s *entity.Sale) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.items = append(f.items, s)
	return nil
}

func (f *fakeSaleRepo) GetByID(id string) (*entity.Sale, error) {
	for _, s := range f.items {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeSaleRepo) ListByCompany(companyID string, filters repository.SaleFilters) ([]*entity.Sale, error) {
	f.filters = filters
	var out []*entity.Sale
	for _, s := range f.items {
		if s.CompanyID != companyID {
			continue
		}
		if filters.From != nil && s.Date.Before(*filters.From) {
			continue
		}
		if filters.To != nil && !s.Date.Before(*filters.To) {
			continue
		}
		if filters.BranchID != "" && s.BranchID != filters.BranchID {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

type fakePublisher struct {
	published []events.Event
}

func (f *fakePublisher) Publish(ev events.Event) { f.published = append(f.published, ev) }
