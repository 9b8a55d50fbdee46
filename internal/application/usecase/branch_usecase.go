package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmarulanda/ventas-api/internal/application/dto"
	"github.com/dmarulanda/ventas-api/internal/application/events"
	"github.com/dmarulanda/ventas-api/internal/domain"
	"github.com/dmarulanda/ventas-api/internal/domain/entity"
	"github.com/dmarulanda/ventas-api/internal/domain/repository"
)

// BranchUseCase casos de uso de sucursales. Las sucursales se crean y se
// renombran pero no se eliminan (su inventario y sus ventas las referencian).
type BranchUseCase struct {
	repo      repository.BranchRepository
	publisher events.Publisher
}

// NewBranchUseCase construye el caso de uso.
func NewBranchUseCase(repo repository.BranchRepository, publisher events.Publisher) *BranchUseCase {
	return &BranchUseCase{repo: repo, publisher: publisher}
}

// Create crea una sucursal nueva.
func (uc *BranchUseCase) Create(companyID string, in dto.CreateBranchRequest) (*dto.BranchResponse, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	now := time.Now()
	branch := &entity.Branch{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      in.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(branch); err != nil {
		return nil, err
	}
	uc.publisher.Publish(events.Event{
		Type:      events.BranchCreated,
		CompanyID: companyID,
		EntityID:  branch.ID,
		Payload:   map[string]string{"name": branch.Name},
	})
	return toBranchResponse(branch), nil
}

// GetByID obtiene una sucursal verificando que pertenezca a la empresa.
func (uc *BranchUseCase) GetByID(companyID, id string) (*dto.BranchResponse, error) {
	branch, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, nil
	}
	if branch.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return toBranchResponse(branch), nil
}

// Update renombra una sucursal.
func (uc *BranchUseCase) Update(companyID, id string, in dto.UpdateBranchRequest) (*dto.BranchResponse, error) {
	branch, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, nil
	}
	if branch.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, fmt.Errorf("%w: name no puede quedar vacío", domain.ErrInvalidInput)
		}
		branch.Name = *in.Name
	}
	branch.UpdatedAt = time.Now()
	if err := uc.repo.Update(branch); err != nil {
		return nil, err
	}
	uc.publisher.Publish(events.Event{
		Type:      events.BranchUpdated,
		CompanyID: companyID,
		EntityID:  branch.ID,
	})
	return toBranchResponse(branch), nil
}

// List lista las sucursales de la empresa con paginación.
func (uc *BranchUseCase) List(companyID string, limit, offset int) (*dto.BranchListResponse, error) {
	list, err := uc.repo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BranchResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *toBranchResponse(b))
	}
	return &dto.BranchListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toBranchResponse(b *entity.Branch) *dto.BranchResponse {
	if b == nil {
		return nil
	}
	return &dto.BranchResponse{
		ID:        b.ID,
		CompanyID: b.CompanyID,
		Name:      b.Name,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
