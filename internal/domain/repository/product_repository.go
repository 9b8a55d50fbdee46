package repository

import "github.com/dmarulanda/ventas-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByCompanyAndSKU(companyID, sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error)
	// SearchByCompany filtra el catálogo por texto libre sobre nombre, SKU,
	// código de barras y marca (coincidencia parcial sin sensibilidad a mayúsculas).
	SearchByCompany(companyID, query string, limit, offset int) ([]*entity.Product, error)
	// ListLowStock devuelve los productos con stock de bodega bajo el umbral,
	// ordenados del más crítico al menos crítico.
	ListLowStock(companyID string, threshold int) ([]*entity.Product, error)
	Delete(id string) error
}
