package sales

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dmarulanda/ventas-api/internal/domain/entity"
	"github.com/dmarulanda/ventas-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. El alta de la venta y el descuento de
// existencias forman un solo grupo de escritura todo-o-nada: si cualquiera
// falla, ninguno queda aplicado.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		stockRepo repository.BranchStockRepository,
	) error) error
}

// ReportData datos ya resueltos que el generador vuelca al PDF del reporte.
type ReportData struct {
	Company       *entity.Company
	PeriodLabel   string
	Totals        repository.SalesTotalsResult
	Profit        decimal.Decimal
	AverageTicket decimal.Decimal
	Sales         []*entity.Sale
	GeneratedAt   time.Time
}

// ReportPDFGenerator genera la representación gráfica del reporte de ventas.
type ReportPDFGenerator interface {
	GenerateSalesReport(ctx context.Context, data *ReportData) ([]byte, error)
}
