package usecase_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmarulanda/ventas-api/internal/application/dto"
	"github.com/dmarulanda/ventas-api/internal/application/events"
	"github.com/dmarulanda/ventas-api/internal/application/usecase"
	"github.com/dmarulanda/ventas-api/internal/domain"
	"github.com/dmarulanda/ventas-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo: name y sku son obligatorios y toda violación nombra el campo sin
// escribir nada.
// ──────────────────────────────────────────────────────────────────────────────

const testCompanyID = "co-1"

func newProductUC() (*usecase.ProductUseCase, *fakeProductRepo) {
	repo := &fakeProductRepo{items: map[string]*entity.Product{}}
	return usecase.NewProductUseCase(repo, &fakePublisher{}), repo
}

func TestProductCreate_NameYSKUObligatorios(t *testing.T) {
	valid := dto.CreateProductRequest{
		SKU:   "SKU-1",
		Name:  "Camisa",
		Cost:  decimal.NewFromInt(50),
		Stock: 10,
	}

	cases := []struct {
		nombre string
		mutar  func(*dto.CreateProductRequest)
		campo  string
	}{
		{"sin sku", func(r *dto.CreateProductRequest) { r.SKU = "" }, "sku"},
		{"sin name", func(r *dto.CreateProductRequest) { r.Name = "" }, "name"},
		{"sin nada", func(r *dto.CreateProductRequest) { r.SKU = ""; r.Name = "" }, "sku"},
	}
	for _, tc := range cases {
		uc, repo := newProductUC()
		req := valid
		tc.mutar(&req)

		_, err := uc.Create(testCompanyID, req)
		require.Error(t, err, tc.nombre)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, tc.nombre)
		assert.Contains(t, err.Error(), tc.campo, "el error de %q debe nombrar el campo", tc.nombre)
		assert.Empty(t, repo.items, "la solicitud %q no debe escribir", tc.nombre)
	}
}

func TestProductCreate_Valido(t *testing.T) {
	uc, repo := newProductUC()

	out, err := uc.Create(testCompanyID, dto.CreateProductRequest{
		SKU:          "SKU-1",
		Barcode:      "770001",
		Brand:        "Norte",
		Name:         "Camisa",
		Cost:         decimal.NewFromInt(50),
		ShippingCost: decimal.NewFromInt(2),
		Stock:        10,
	})
	require.NoError(t, err)
	require.Len(t, repo.items, 1)
	assert.Equal(t, testCompanyID, out.CompanyID)
	assert.NotEmpty(t, out.ID)
}

func TestProductCreate_CostosNegativos(t *testing.T) {
	uc, repo := newProductUC()

	_, err := uc.Create(testCompanyID, dto.CreateProductRequest{
		SKU:  "SKU-1",
		Name: "Camisa",
		Cost: decimal.NewFromInt(-1),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "cost")
	assert.Empty(t, repo.items)
}

func TestProductCreate_SKUDuplicado(t *testing.T) {
	uc, repo := newProductUC()
	repo.items["p-1"] = &entity.Product{ID: "p-1", CompanyID: testCompanyID, SKU: "SKU-1", Name: "Camisa"}

	_, err := uc.Create(testCompanyID, dto.CreateProductRequest{
		SKU:  "SKU-1",
		Name: "Camisa bis",
		Cost: decimal.NewFromInt(50),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	require.Len(t, repo.items, 1, "el duplicado no debe escribir")
}

// TestProductCreate_FallaLecturaDuplicado: si la verificación de SKU duplicado
// no puede leer, el alta se rechaza en vez de seguir a ciegas.
func TestProductCreate_FallaLecturaDuplicado(t *testing.T) {
	uc, repo := newProductUC()
	repo.getBySKUErr = assert.AnError

	_, err := uc.Create(testCompanyID, dto.CreateProductRequest{
		SKU:  "SKU-1",
		Name: "Camisa",
		Cost: decimal.NewFromInt(50),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Empty(t, repo.items)
}

func TestProductUpdate_NameVacioRechazado(t *testing.T) {
	uc, repo := newProductUC()
	repo.items["p-1"] = &entity.Product{ID: "p-1", CompanyID: testCompanyID, SKU: "SKU-1", Name: "Camisa"}

	vacio := ""
	_, err := uc.Update(testCompanyID, "p-1", dto.UpdateProductRequest{Name: &vacio})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "name")
	assert.Equal(t, "Camisa", repo.items["p-1"].Name, "el nombre no debe cambiar")
}

func TestProductUpdate_DeOtraEmpresa(t *testing.T) {
	uc, repo := newProductUC()
	repo.items["p-1"] = &entity.Product{ID: "p-1", CompanyID: "co-otra", SKU: "SKU-1", Name: "Camisa"}

	nombre := "Camisa nueva"
	_, err := uc.Update(testCompanyID, "p-1", dto.UpdateProductRequest{Name: &nombre})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria.
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	items       map[string]*entity.Product
	getBySKUErr error
}

func (f *fakeProductRepo) Create(p *entity.Product) error { f.items[p.ID] = p; return nil }

func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) { return f.items[id], nil }

func (f *fakeProductRepo) GetByCompanyAndSKU(companyID, sku string) (*entity.Product, error) {
	if f.getBySKUErr != nil {
		return nil, f.getBySKUErr
	}
	for _, p := range f.items {
		if p.CompanyID == companyID && p.SKU == sku {
			return p, nil
		}
	}
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

type fakePublisher struct {
	published []events.Event
}

func (f *fakePublisher) Publish(ev events.Event) { f.published = append(f.published, ev) }
