package sales

import "github.com/shopspring/decimal"

// Aritmética de una venta (servicio de dominio).
// Monto = Cantidad*PrecioUnitario - Descuento; Costo = CostoUnitario*Cantidad.

// Amount calcula el monto neto de la venta.
func Amount(quantity int, unitPrice, discount decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Sub(discount)
}

// Cost calcula el costo total de la venta a partir del costo unitario
// snapshot del producto.
func Cost(quantity int, unitCost decimal.Decimal) decimal.Decimal {
	return unitCost.Mul(decimal.NewFromInt(int64(quantity)))
}

// Profit calcula la utilidad bruta de un conjunto de ventas ya agregado.
func Profit(revenue, cost decimal.Decimal) decimal.Decimal {
	return revenue.Sub(cost)
}

// AverageTicket calcula el ticket promedio: revenue/orders, definido como 0
// cuando no hay órdenes.
func AverageTicket(revenue decimal.Decimal, orders int64) decimal.Decimal {
	if orders <= 0 {
		return decimal.Zero
	}
	return revenue.Div(decimal.NewFromInt(orders))
}
