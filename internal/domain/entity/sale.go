package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale es una venta registrada en una sucursal. Es inmutable: no existe
// operación de edición ni de borrado sobre el libro de ventas.
//
// ProductName, ProductCost y BranchName son snapshots tomados al momento de
// crear la venta; nunca se recalculan desde el catálogo, aunque el producto
// cambie de nombre o costo (o se elimine) después.
type Sale struct {
	ID          string
	CompanyID   string
	BranchID    string
	BranchName  string
	ProductID   string
	ProductName string
	ProductCost decimal.Decimal // costo unitario al momento de la venta
	Quantity    int             // entero positivo
	UnitPrice   decimal.Decimal
	Discount    decimal.Decimal // descuento total, >= 0
	Amount      decimal.Decimal // Quantity*UnitPrice - Discount
	Cost        decimal.Decimal // ProductCost*Quantity
	Date        time.Time       // fecha de la transacción
	CreatedBy   string          // usuario que registró la venta
	CreatedAt   time.Time
}
