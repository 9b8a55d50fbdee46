package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/dmarulanda/ventas-api/internal/domain"
	"github.com/dmarulanda/ventas-api/internal/domain/repository"
	"github.com/dmarulanda/ventas-api/internal/domain/sales"
)

// reportMaxLines tope de líneas de detalle en el PDF; los totales se calculan
// en la DB sobre el período completo aunque el detalle se trunque.
const reportMaxLines = 500

// ReportUseCase genera la representación gráfica (PDF) del reporte de ventas
// de un período.
type ReportUseCase struct {
	companyRepo repository.CompanyRepository
	saleRepo    repository.SaleRepository
	statsRepo   repository.StatsRepository
	generator   ReportPDFGenerator
}

// NewReportUseCase construye el caso de uso inyectando sus dependencias.
func NewReportUseCase(
	companyRepo repository.CompanyRepository,
	saleRepo repository.SaleRepository,
	statsRepo repository.StatsRepository,
	generator ReportPDFGenerator,
) *ReportUseCase {
	return &ReportUseCase{
		companyRepo: companyRepo,
		saleRepo:    saleRepo,
		statsRepo:   statsRepo,
		generator:   generator,
	}
}

// DownloadSalesReport arma los datos del período (totales, detalle, empresa)
// y delega el render al generador.
//
// Retorna:
//   - (pdfBytes, filename, nil) si todo sale bien.
//   - domain.ErrInvalidInput    si el período es inválido (mes sin año).
//   - domain.ErrNotFound        si la empresa no existe.
func (uc *ReportUseCase) DownloadSalesReport(ctx context.Context, companyID string, year, month int) (pdfBytes []byte, filename string, err error) {
	from, to, err := sales.PeriodRange(year, month, time.Local)
	if err != nil {
		return nil, "", err
	}

	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: obtener empresa: %w", err)
	}
	if company == nil {
		return nil, "", domain.ErrNotFound
	}

	totals, err := uc.statsRepo.GetSalesTotals(ctx, companyID, from, to)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: totales del período: %w", err)
	}

	items, err := uc.saleRepo.ListByCompany(companyID, repository.SaleFilters{
		From:  from,
		To:    to,
		Limit: reportMaxLines,
	})
	if err != nil {
		return nil, "", fmt.Errorf("reporte: listar ventas: %w", err)
	}

	data := &ReportData{
		Company:       company,
		PeriodLabel:   sales.PeriodLabel(year, month),
		Totals:        totals,
		Profit:        sales.Profit(totals.Revenue, totals.Cost),
		AverageTicket: sales.AverageTicket(totals.Revenue, totals.Orders),
		Sales:         items,
		GeneratedAt:   time.Now(),
	}
	pdfBytes, err = uc.generator.GenerateSalesReport(ctx, data)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: generación fallida: %w", err)
	}

	filename = fmt.Sprintf("ventas_%s.pdf", reportFileLabel(year, month))
	return pdfBytes, filename, nil
}

func reportFileLabel(year, month int) string {
	switch {
	case year == 0:
		return "historico"
	case month == 0:
		return fmt.Sprintf("%d", year)
	default:
		return fmt.Sprintf("%d-%02d", year, month)
	}
}
