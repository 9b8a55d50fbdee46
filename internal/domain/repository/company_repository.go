package repository

import (
	"context"

	"github.com/dmarulanda/ventas-api/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	Create(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	Update(company *entity.Company) error
	// HasActiveModule informa si la empresa tiene el módulo activo y sin
	// vencer (expires_at nulo o futuro).
	HasActiveModule(ctx context.Context, companyID, moduleName string) (bool, error)
}
