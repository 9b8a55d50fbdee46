package repository

import "github.com/dmarulanda/ventas-api/internal/domain/entity"

// BranchRepository define el puerto de persistencia para Branch (DIP).
// No hay Delete: las sucursales no se eliminan, solo se renombran.
type BranchRepository interface {
	Create(branch *entity.Branch) error
	GetByID(id string) (*entity.Branch, error)
	Update(branch *entity.Branch) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.Branch, error)
}
