package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo central de la empresa.
// Stock es la existencia en bodega; lo asignado a sucursales vive en BranchStock
// y es independiente del stock de bodega (distribuir no lo descuenta).
type Product struct {
	ID           string
	CompanyID    string
	SKU          string // código único por empresa
	Barcode      string
	Brand        string
	Name         string
	Cost         decimal.Decimal // costo unitario de compra
	ShippingCost decimal.Decimal // costo de envío total del lote (0 si no aplica)
	Stock        int             // unidades en bodega central
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// LowStockThreshold es el umbral fijo bajo el cual un producto se considera
// con stock crítico en las estadísticas de inventario.
const LowStockThreshold = 5
