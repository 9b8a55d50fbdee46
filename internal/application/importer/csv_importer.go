// Package importer carga masiva del catálogo desde archivos CSV.
package importer

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/dmarulanda/ventas-api/internal/application/dto"
	"github.com/dmarulanda/ventas-api/internal/application/events"
	"github.com/dmarulanda/ventas-api/internal/domain"
	"github.com/dmarulanda/ventas-api/internal/domain/entity"
	"github.com/dmarulanda/ventas-api/internal/domain/repository"
)

// Columnas obligatorias del encabezado. El orden del archivo es libre y la
// comparación ignora mayúsculas, espacios alrededor y el BOM que algunos
// editores anteponen a la primera celda.
var requiredColumns = []string{"date", "sku", "barcode", "brand", "name", "stock", "cost", "shippingCost"}

// Formatos de fecha aceptados en la columna date: ISO y el día/mes/año
// habitual de las hojas de cálculo en español.
var dateLayouts = []string{"2006-01-02", "02/01/2006"}

// defaultProductName se usa cuando la celda name viene en blanco.
const defaultProductName = "Producto sin nombre"

// CSVImporter parsea un CSV de productos y lo escribe como un solo lote.
//
// Reglas del formato:
//   - El encabezado debe traer todas las columnas obligatorias; si falta
//     alguna, el archivo se rechaza antes de procesar filas.
//   - Cada fila con número de columnas incorrecto o con stock/cost no numérico
//     se acumula como error; si hay al menos un error de fila, no se escribe
//     nada (ImportResultDTO.Errors trae el detalle).
//   - shippingCost ausente o inválido vale 0; name en blanco recibe un nombre
//     por defecto; date se interpreta como fecha calendario a medianoche local.
type CSVImporter struct {
	txRunner  BatchTxRunner
	publisher events.Publisher
}

// NewCSVImporter construye el importador.
func NewCSVImporter(txRunner BatchTxRunner, publisher events.Publisher) *CSVImporter {
	return &CSVImporter{txRunner: txRunner, publisher: publisher}
}

// ImportProducts procesa el archivo completo y, si no hay errores de fila,
// escribe todos los productos en una transacción.
//
// Los errores de datos del archivo no son errores del sistema: cuando hay
// filas inválidas retorna (resultado con Errors, nil) y el caller decide cómo
// reportarlo. El error de retorno queda para encabezado inválido, lectura o
// fallo de persistencia.
func (imp *CSVImporter) ImportProducts(ctx context.Context, companyID string, r io.Reader) (*dto.ImportResultDTO, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("leer archivo: %w", err)
	}
	// Archivos exportados desde hojas de cálculo viejas llegan en Latin-1 o
	// Windows-1252; si los bytes no son UTF-8 válido se transcodifican.
	if !utf8.Valid(data) {
		decoded, derr := io.ReadAll(transform.NewReader(bytes.NewReader(data), charmap.Windows1252.NewDecoder()))
		if derr != nil {
			return nil, fmt.Errorf("transcodificar archivo: %w", derr)
		}
		data = decoded
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: el archivo está vacío", domain.ErrInvalidInput)
		}
		return nil, fmt.Errorf("%w: encabezado ilegible: %v", domain.ErrInvalidInput, err)
	}

	idx, missing := headerIndexes(header)
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: faltan columnas en el encabezado: %s",
			domain.ErrInvalidInput, strings.Join(missing, ", "))
	}

	now := time.Now()
	var (
		products  []*entity.Product
		rowErrors []dto.ImportRowError
	)
	for {
		record, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				rowErrors = append(rowErrors, dto.ImportRowError{Line: pe.Line, Reason: rowReason(pe)})
				continue
			}
			return nil, fmt.Errorf("leer fila: %w", err)
		}
		if emptyRecord(record) {
			continue
		}
		line, _ := reader.FieldPos(0)

		product, rowErr := imp.parseRow(record, idx, companyID, now)
		if rowErr != "" {
			rowErrors = append(rowErrors, dto.ImportRowError{Line: line, Reason: rowErr})
			continue
		}
		products = append(products, product)
	}

	if len(rowErrors) > 0 {
		// Todo o nada: con una sola fila inválida no se escribe ninguna.
		return &dto.ImportResultDTO{Imported: 0, Errors: rowErrors}, nil
	}
	if len(products) == 0 {
		return &dto.ImportResultDTO{Imported: 0}, nil
	}

	err = imp.txRunner.RunImport(ctx, func(productRepo repository.ProductRepository) error {
		for _, p := range products {
			if err := productRepo.Create(p); err != nil {
				return fmt.Errorf("insertar producto sku %s: %w", p.SKU, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if imp.publisher != nil {
		imp.publisher.Publish(events.Event{
			Type:      events.CatalogImported,
			CompanyID: companyID,
			Payload:   map[string]any{"imported": len(products)},
		})
	}

	return &dto.ImportResultDTO{Imported: len(products)}, nil
}

// parseRow convierte una fila en Product. Retorna la razón del error de fila
// en rowErr ("" si la fila es válida).
func (imp *CSVImporter) parseRow(record []string, idx map[string]int, companyID string, now time.Time) (p *entity.Product, rowErr string) {
	cell := func(col string) string { return strings.TrimSpace(record[idx[col]]) }

	stock, err := strconv.Atoi(cell("stock"))
	if err != nil {
		return nil, fmt.Sprintf("stock no numérico: %q", cell("stock"))
	}
	if stock < 0 {
		return nil, fmt.Sprintf("stock negativo: %d", stock)
	}

	cost, err := decimal.NewFromString(cell("cost"))
	if err != nil {
		return nil, fmt.Sprintf("cost no numérico: %q", cell("cost"))
	}
	if cost.LessThan(decimal.Zero) {
		return nil, fmt.Sprintf("cost negativo: %s", cost)
	}

	shipping := decimal.Zero
	if raw := cell("shippingCost"); raw != "" {
		if parsed, err := decimal.NewFromString(raw); err == nil && !parsed.LessThan(decimal.Zero) {
			shipping = parsed
		}
	}

	name := cell("name")
	if name == "" {
		name = defaultProductName
	}

	date := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	if raw := cell("date"); raw != "" {
		for _, layout := range dateLayouts {
			if parsed, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
				date = parsed
				break
			}
		}
	}

	return &entity.Product{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		SKU:          cell("sku"),
		Barcode:      cell("barcode"),
		Brand:        cell("brand"),
		Name:         name,
		Cost:         cost,
		ShippingCost: shipping,
		Stock:        stock,
		CreatedAt:    date,
		UpdatedAt:    now,
	}, ""
}

// headerIndexes resuelve la posición de cada columna obligatoria y reporta
// las que faltan. Las celdas del encabezado se normalizan antes de comparar:
// sin BOM, sin espacios alrededor y en minúsculas.
func headerIndexes(header []string) (idx map[string]int, missing []string) {
	byName := make(map[string]int, len(header))
	for i, col := range header {
		byName[normalizeHeaderCell(col)] = i
	}
	idx = make(map[string]int, len(requiredColumns))
	for _, col := range requiredColumns {
		i, ok := byName[strings.ToLower(col)]
		if !ok {
			missing = append(missing, col)
			continue
		}
		idx[col] = i
	}
	return idx, missing
}

func normalizeHeaderCell(cell string) string {
	cell = strings.TrimPrefix(cell, "\ufeff")
	return strings.ToLower(strings.TrimSpace(cell))
}

func emptyRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func rowReason(pe *csv.ParseError) string {
	if errors.Is(pe.Err, csv.ErrFieldCount) {
		return "número de columnas incorrecto"
	}
	return pe.Err.Error()
}
