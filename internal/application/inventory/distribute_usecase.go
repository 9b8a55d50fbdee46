package inventory

import (
	"fmt"

	"github.com/dmarulanda/ventas-api/internal/application/dto"
	"github.com/dmarulanda/ventas-api/internal/application/events"
	"github.com/dmarulanda/ventas-api/internal/domain"
	"github.com/dmarulanda/ventas-api/internal/domain/repository"
	"github.com/dmarulanda/ventas-api/pkg/validator"
)

// DistributeStockUseCase asigna unidades del catálogo a una sucursal.
//
// La primera distribución de un par (sucursal, producto) crea la fila de
// existencias; las siguientes incrementan la cantidad. La mutación es una sola
// sentencia atómica en la base de datos, así que dos distribuciones
// concurrentes del mismo par nunca duplican la fila ni pierden un incremento.
// El stock del catálogo (bodega central) no se descuenta al distribuir.
type DistributeStockUseCase struct {
	branchRepo  repository.BranchRepository
	productRepo repository.ProductRepository
	stockRepo   repository.BranchStockRepository
	publisher   events.Publisher
}

// NewDistributeStockUseCase construye el caso de uso.
func NewDistributeStockUseCase(
	branchRepo repository.BranchRepository,
	productRepo repository.ProductRepository,
	stockRepo repository.BranchStockRepository,
	publisher events.Publisher,
) *DistributeStockUseCase {
	return &DistributeStockUseCase{
		branchRepo:  branchRepo,
		productRepo: productRepo,
		stockRepo:   stockRepo,
		publisher:   publisher,
	}
}

// Distribute valida sucursal, producto y cantidad, aplica el incremento
// atómico y devuelve la cantidad resultante en la sucursal.
func (uc *DistributeStockUseCase) Distribute(companyID string, in dto.DistributeStockRequest) (*dto.DistributeStockResponse, error) {
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, errs[0])
	}

	branch, err := uc.branchRepo.GetByID(in.BranchID)
	if err != nil {
		return nil, err
	}
	if branch == nil || branch.CompanyID != companyID {
		return nil, fmt.Errorf("%w: branch_id no corresponde a una sucursal existente", domain.ErrNotFound)
	}

	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.CompanyID != companyID {
		return nil, fmt.Errorf("%w: product_id no corresponde a un producto existente", domain.ErrNotFound)
	}

	newQty, err := uc.stockRepo.AddQuantity(companyID, in.BranchID, in.ProductID, in.Quantity)
	if err != nil {
		return nil, err
	}

	if uc.publisher != nil {
		uc.publisher.Publish(events.Event{
			Type:      events.StockDistributed,
			EntityID:  in.ProductID,
			CompanyID: companyID,
			Payload: map[string]any{
				"branch_id":  in.BranchID,
				"product_id": in.ProductID,
				"added":      in.Quantity,
				"quantity":   newQty,
			},
		})
	}

	return &dto.DistributeStockResponse{
		BranchID:  in.BranchID,
		ProductID: in.ProductID,
		Quantity:  newQty,
	}, nil
}

// ListBranchStock lista las existencias de una sucursal con datos del producto.
func (uc *DistributeStockUseCase) ListBranchStock(companyID, branchID string, page dto.PageRequest) (*dto.BranchStockListResponse, error) {
	branch, err := uc.branchRepo.GetByID(branchID)
	if err != nil {
		return nil, err
	}
	if branch == nil || branch.CompanyID != companyID {
		return nil, fmt.Errorf("%w: branch_id no corresponde a una sucursal existente", domain.ErrNotFound)
	}

	page.DefaultPage()
	items, err := uc.stockRepo.ListByBranch(branchID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}

	out := &dto.BranchStockListResponse{
		BranchID:   branchID,
		BranchName: branch.Name,
		Items:      make([]dto.BranchStockItemResponse, 0, len(items)),
	}
	for _, it := range items {
		out.Items = append(out.Items, dto.BranchStockItemResponse{
			BranchID:    branchID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			SKU:         it.SKU,
			Quantity:    it.Quantity,
			UpdatedAt:   it.UpdatedAt,
		})
	}
	out.Page = dto.PageResponse{Limit: page.Limit, Offset: page.Offset}
	return out, nil
}
