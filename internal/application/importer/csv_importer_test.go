package importer_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmarulanda/ventas-api/internal/application/events"
	"github.com/dmarulanda/ventas-api/internal/application/importer"
	"github.com/dmarulanda/ventas-api/internal/domain"
	"github.com/dmarulanda/ventas-api/internal/domain/entity"
	"github.com/dmarulanda/ventas-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Importación CSV del catálogo: encabezado obligatorio, errores de fila
// acumulados y escritura todo-o-nada.
// ──────────────────────────────────────────────────────────────────────────────

const testCompanyID = "co-1"

const validHeader = "date, sku, barcode, brand, name, stock, cost, shippingCost\n"

func TestImportProducts_ArchivoValido(t *testing.T) {
	csvData := validHeader +
		"2024-03-05, SKU-1, 770001, Norte, Camisa azul, 10, 25.50, 2\n" +
		"2024-03-06, SKU-2, 770002, Sur, Pantalón, 4, 40, \n"

	env := newImportEnv()
	out, err := env.imp.ImportProducts(context.Background(), testCompanyID, strings.NewReader(csvData))
	require.NoError(t, err)

	assert.Equal(t, 2, out.Imported)
	assert.Empty(t, out.Errors)
	require.Len(t, env.repo.items, 2)

	p1 := env.repo.items[0]
	assert.Equal(t, "SKU-1", p1.SKU)
	assert.Equal(t, "770001", p1.Barcode)
	assert.Equal(t, "Norte", p1.Brand)
	assert.Equal(t, "Camisa azul", p1.Name)
	assert.Equal(t, 10, p1.Stock)
	assert.True(t, p1.Cost.Equal(decimal.NewFromFloat(25.50)))
	assert.True(t, p1.ShippingCost.Equal(decimal.NewFromInt(2)))
	assert.Equal(t, testCompanyID, p1.CompanyID)
	assert.Equal(t, time.Date(2024, time.March, 5, 0, 0, 0, 0, time.Local), p1.CreatedAt,
		"la fecha del CSV queda a medianoche local")

	p2 := env.repo.items[1]
	assert.True(t, p2.ShippingCost.IsZero(), "shippingCost en blanco vale 0")

	require.Len(t, env.pub.published, 1)
	assert.Equal(t, events.CatalogImported, env.pub.published[0].Type)
}

// TestImportProducts_EncabezadoConBOMYMayusculas: Excel antepone un BOM al
// guardar como "CSV UTF-8" y cada quien capitaliza como quiere; nada de eso
// debe rechazar un archivo con las columnas completas.
func TestImportProducts_EncabezadoConBOMYMayusculas(t *testing.T) {
	csvData := "\ufeffDate, SKU, Barcode, Brand, Name, Stock, Cost, SHIPPINGCOST\n" +
		"2024-03-05, SKU-1, 770001, Norte, Camisa, 10, 25.50, 2\n"

	env := newImportEnv()
	out, err := env.imp.ImportProducts(context.Background(), testCompanyID, strings.NewReader(csvData))
	require.NoError(t, err)

	assert.Equal(t, 1, out.Imported)
	require.Len(t, env.repo.items, 1)
	assert.Equal(t, "SKU-1", env.repo.items[0].SKU)
	assert.Equal(t, 10, env.repo.items[0].Stock)
}

// TestImportProducts_FechaDiaMesAnio: además de ISO se acepta el dd/mm/aaaa
// típico de las hojas de cálculo en español.
func TestImportProducts_FechaDiaMesAnio(t *testing.T) {
	csvData := validHeader +
		"05/03/2024, SKU-1, 770001, Norte, Camisa, 10, 25.50, 0\n"

	env := newImportEnv()
	out, err := env.imp.ImportProducts(context.Background(), testCompanyID, strings.NewReader(csvData))
	require.NoError(t, err)

	assert.Equal(t, 1, out.Imported)
	assert.Equal(t, time.Date(2024, time.March, 5, 0, 0, 0, 0, time.Local), env.repo.items[0].CreatedAt)
}

func TestImportProducts_EncabezadoIncompleto(t *testing.T) {
	csvData := "date, sku, barcode, brand, name, stock, cost\n" + // sin shippingCost
		"2024-03-05, SKU-1, 770001, Norte, Camisa, 10, 25.50\n"

	env := newImportEnv()
	_, err := env.imp.ImportProducts(context.Background(), testCompanyID, strings.NewReader(csvData))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "shippingCost", "el error debe nombrar la columna faltante")
	assert.Empty(t, env.repo.items, "el rechazo de encabezado ocurre antes de procesar filas")
}

func TestImportProducts_ArchivoVacio(t *testing.T) {
	env := newImportEnv()
	_, err := env.imp.ImportProducts(context.Background(), testCompanyID, strings.NewReader(""))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestImportProducts_FilaConColumnasDeMas(t *testing.T) {
	csvData := validHeader +
		"2024-03-05, SKU-1, 770001, Norte, Camisa, 10, 25.50, 2\n" +
		"2024-03-06, SKU-2, 770002, Sur, Pantalón, 4, 40, 0, EXTRA\n"

	env := newImportEnv()
	out, err := env.imp.ImportProducts(context.Background(), testCompanyID, strings.NewReader(csvData))
	require.NoError(t, err)

	assert.Equal(t, 0, out.Imported, "una fila inválida aborta todo el lote")
	require.Len(t, out.Errors, 1)
	assert.Equal(t, 3, out.Errors[0].Line)
	assert.Contains(t, out.Errors[0].Reason, "columnas")
	assert.Empty(t, env.repo.items, "no debe escribirse ningún producto")
}

func TestImportProducts_StockYCostNoNumericos(t *testing.T) {
	csvData := validHeader +
		"2024-03-05, SKU-1, 770001, Norte, Camisa, muchos, 25.50, 2\n" +
		"2024-03-06, SKU-2, 770002, Sur, Pantalón, 4, caro, 0\n" +
		"2024-03-07, SKU-3, 770003, Sur, Gorra, 7, 12, 0\n"

	env := newImportEnv()
	out, err := env.imp.ImportProducts(context.Background(), testCompanyID, strings.NewReader(csvData))
	require.NoError(t, err)

	assert.Equal(t, 0, out.Imported)
	require.Len(t, out.Errors, 2, "cada fila mala se reporta, la buena no se salva sola")
	assert.Equal(t, 2, out.Errors[0].Line)
	assert.Contains(t, out.Errors[0].Reason, "stock")
	assert.Equal(t, 3, out.Errors[1].Line)
	assert.Contains(t, out.Errors[1].Reason, "cost")
	assert.Empty(t, env.repo.items)
}

func TestImportProducts_ShippingCostInvalidoValeCero(t *testing.T) {
	csvData := validHeader +
		"2024-03-05, SKU-1, 770001, Norte, Camisa, 10, 25.50, gratis\n"

	env := newImportEnv()
	out, err := env.imp.ImportProducts(context.Background(), testCompanyID, strings.NewReader(csvData))
	require.NoError(t, err)

	assert.Equal(t, 1, out.Imported, "shippingCost inválido no es error de fila")
	require.Len(t, env.repo.items, 1)
	assert.True(t, env.repo.items[0].ShippingCost.IsZero())
}

func TestImportProducts_NombreEnBlancoRecibeDefault(t *testing.T) {
	csvData := validHeader +
		"2024-03-05, SKU-1, 770001, Norte, , 10, 25.50, 0\n"

	env := newImportEnv()
	out, err := env.imp.ImportProducts(context.Background(), testCompanyID, strings.NewReader(csvData))
	require.NoError(t, err)

	assert.Equal(t, 1, out.Imported)
	assert.Equal(t, "Producto sin nombre", env.repo.items[0].Name)
}

func TestImportProducts_ArchivoLatin1(t *testing.T) {
	// "Pantalón" con la ó en Latin-1 (0xF3): bytes inválidos como UTF-8.
	var buf bytes.Buffer
	buf.WriteString(validHeader)
	buf.WriteString("2024-03-05, SKU-1, 770001, Norte, Pantal")
	buf.WriteByte(0xF3)
	buf.WriteString("n, 10, 25.50, 0\n")

	env := newImportEnv()
	out, err := env.imp.ImportProducts(context.Background(), testCompanyID, &buf)
	require.NoError(t, err)

	assert.Equal(t, 1, out.Imported)
	assert.Equal(t, "Pantalón", env.repo.items[0].Name, "el contenido Latin-1 se transcodifica a UTF-8")
}

func TestImportProducts_FallaDePersistenciaRevierteTodo(t *testing.T) {
	csvData := validHeader +
		"2024-03-05, SKU-1, 770001, Norte, Camisa, 10, 25.50, 0\n" +
		"2024-03-06, SKU-1, 770002, Sur, Camisa bis, 4, 40, 0\n" // SKU duplicado

	env := newImportEnv()
	env.repo.failOnDuplicateSKU = true

	_, err := env.imp.ImportProducts(context.Background(), testCompanyID, strings.NewReader(csvData))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Empty(t, env.repo.items, "el lote debe revertirse completo")
	assert.Empty(t, env.pub.published, "sin commit no hay evento")
}

// ──────────────────────────────────────────────────────────────────────────────
// Fakes: el runner copia el estado del repo antes de ejecutar y lo restaura si
// la función falla, como el rollback real.
// ──────────────────────────────────────────────────────────────────────────────

type importEnv struct {
	repo *fakeProductRepo
	pub  *fakePublisher
	imp  *importer.CSVImporter
}

func newImportEnv() *importEnv {
	env := &importEnv{repo: &fakeProductRepo{}, pub: &fakePublisher{}}
	env.imp = importer.NewCSVImporter(&fakeBatchRunner{repo: env.repo}, env.pub)
	return env
}

type fakeBatchRunner struct {
	repo *fakeProductRepo
}

func (f *fakeBatchRunner) RunImport(ctx context.Context, fn func(repository.ProductRepository) error) error {
	before := len(f.repo.items)
	if err := fn(f.repo); err != nil {
		f.repo.items = f.repo.items[:before]
		return err
	}
	return nil
}

type fakeProductRepo struct {
	items              []*entity.Product
	failOnDuplicateSKU bool
}

func (f *fakeProductRepo) Create(p *entity.Product) error {
	if f.failOnDuplicateSKU {
		for _, existing := range f.items {
			if existing.SKU == p.SKU {
				return domain.ErrDuplicate
			}
		}
	}
	f.items = append(f.items, p)
	return nil
}

func (f *fakeProductRepo) GetByID(string) (*entity.Product, error) { return nil, nil }
func (f *fakeProductRepo) GetByCompanyAndSKU(string, string) (*entity.Product, error) {
	return nil, nil
}
func (f *fakeProductRepo) Update(*entity.Product) error { return nil }
func (f *fakeProductRepo) ListByCompany(string, int, int) ([]*entity.Product, error) {
	return nil, nil
}
func (f *fakeProductRepo) SearchByCompany(string, string, int, int) ([]*entity.Product, error) {
	return nil, nil
}
func (f *fakeProductRepo) ListLowStock(string, int) ([]*entity.Product, error) { return nil, nil }
func (f *fakeProductRepo) Delete(string) error                                 { return nil }

type fakePublisher struct {
	published []events.Event
}

func (f *fakePublisher) Publish(ev events.Event) { f.published = append(f.published, ev) }
