package repository

import (
	"time"

	"github.com/dmarulanda/ventas-api/internal/domain/entity"
)

// SaleFilters acota el listado de ventas. From/To nil = sin límite temporal.
type SaleFilters struct {
	From     *time.Time
	To       *time.Time
	BranchID string
	Limit    int
	Offset   int
}

// SaleRepository define el puerto de persistencia del libro de ventas.
// Sin Update ni Delete: una venta registrada es inmutable.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	GetByID(id string) (*entity.Sale, error)
	// ListByCompany devuelve las ventas más recientes primero, aplicando los
	// filtros de rango de fecha y sucursal cuando vienen.
	ListByCompany(companyID string, filters SaleFilters) ([]*entity.Sale, error)
}
