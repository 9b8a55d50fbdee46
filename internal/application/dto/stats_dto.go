package dto

import "github.com/shopspring/decimal"

// SalesStatsRequest parámetros para GET /api/stats/sales y el reporte PDF.
// Year 0 = todo el histórico; Month 0 = todo el año. Month sin Year es
// inválido (el selector de mes vive deshabilitado hasta elegir año).
type SalesStatsRequest struct {
	Year  int `query:"year" validate:"omitempty,min=2000,max=2100"`
	Month int `query:"month" validate:"omitempty,min=1,max=12"`
}

// PeriodDTO período aplicado a un agregado (ceros = sin filtro).
type PeriodDTO struct {
	Year  int `json:"year,omitempty"`
	Month int `json:"month,omitempty"`
}

// SalesStatsDTO agregados del libro de ventas en el período filtrado.
type SalesStatsDTO struct {
	Revenue       decimal.Decimal `json:"revenue"`        // Σ amount
	Cost          decimal.Decimal `json:"cost"`           // Σ cost
	Profit        decimal.Decimal `json:"profit"`         // revenue - cost
	Orders        int64           `json:"orders"`
	AverageTicket decimal.Decimal `json:"average_ticket"` // revenue/orders, 0 sin órdenes
	Period        PeriodDTO       `json:"period"`
}

// InventoryStatsDTO agregados del catálogo actual.
type InventoryStatsDTO struct {
	ProductCount      int64           `json:"product_count"`
	TotalUnits        int64           `json:"total_units"` // Σ stock de bodega
	TotalValue        decimal.Decimal `json:"total_value"` // Σ cost*stock
	LowStock          int64           `json:"low_stock"`   // productos bajo el umbral
	LowStockThreshold int             `json:"low_stock_threshold"`
}

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
// KPIs del día y del mes en curso más el Top-5 de productos del mes.
type DashboardSummaryDTO struct {
	TodaySales  decimal.Decimal `json:"today_sales"`
	TodayProfit decimal.Decimal `json:"today_profit"`
	MonthSales  decimal.Decimal `json:"month_sales"`
	MonthProfit decimal.Decimal `json:"month_profit"`

	TopProducts []TopProductDTO `json:"top_products"`
	LowStock    int64           `json:"low_stock"`

	DateLabel string `json:"date_label"` // ej: "Agosto 2026"
}

// TopProductDTO fila del ranking de productos para el widget del dashboard.
type TopProductDTO struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitsSold   int64           `json:"units_sold"`
	Revenue     decimal.Decimal `json:"revenue"`
}
