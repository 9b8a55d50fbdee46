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
	"github.com/dmarulanda/ventas-api/pkg/validator"
)

// ProductUseCase casos de uso CRUD del catálogo de productos.
type ProductUseCase struct {
	repo      repository.ProductRepository
	publisher events.Publisher
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, publisher events.Publisher) *ProductUseCase {
	return &ProductUseCase{repo: repo, publisher: publisher}
}

// Create crea un producto nuevo en el catálogo de la empresa.
func (uc *ProductUseCase) Create(companyID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, errs[0])
	}
	existing, err := uc.repo.GetByCompanyAndSKU(companyID, in.SKU)
	if err != nil {
		return nil, fmt.Errorf("verificar sku duplicado: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.Cost.IsNegative() {
		return nil, fmt.Errorf("%w: cost no puede ser negativo", domain.ErrInvalidInput)
	}
	if in.ShippingCost.IsNegative() {
		return nil, fmt.Errorf("%w: shipping_cost no puede ser negativo", domain.ErrInvalidInput)
	}
	if in.Stock < 0 {
		return nil, fmt.Errorf("%w: stock no puede ser negativo", domain.ErrInvalidInput)
	}

	now := time.Now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		SKU:          in.SKU,
		Barcode:      in.Barcode,
		Brand:        in.Brand,
		Name:         in.Name,
		Cost:         in.Cost,
		ShippingCost: in.ShippingCost,
		Stock:        in.Stock,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	uc.publisher.Publish(events.Event{
		Type:      events.ProductCreated,
		CompanyID: companyID,
		EntityID:  product.ID,
		Payload:   map[string]string{"sku": product.SKU, "name": product.Name},
	})
	return toProductResponse(product), nil
}

// GetByID obtiene un producto verificando que pertenezca a la empresa.
func (uc *ProductUseCase) GetByID(companyID, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return toProductResponse(product), nil
}

// Update actualiza los campos presentes del producto.
func (uc *ProductUseCase) Update(companyID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, errs[0])
	}
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	if in.SKU != nil && *in.SKU != product.SKU {
		dup, derr := uc.repo.GetByCompanyAndSKU(companyID, *in.SKU)
		if derr != nil {
			return nil, fmt.Errorf("verificar sku duplicado: %w", derr)
		}
		if dup != nil {
			return nil, domain.ErrDuplicate
		}
		product.SKU = *in.SKU
	}
	if in.Barcode != nil {
		product.Barcode = *in.Barcode
	}
	if in.Brand != nil {
		product.Brand = *in.Brand
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, fmt.Errorf("%w: name no puede quedar vacío", domain.ErrInvalidInput)
		}
		product.Name = *in.Name
	}
	if in.Cost != nil {
		if in.Cost.IsNegative() {
			return nil, fmt.Errorf("%w: cost no puede ser negativo", domain.ErrInvalidInput)
		}
		product.Cost = *in.Cost
	}
	if in.ShippingCost != nil {
		if in.ShippingCost.IsNegative() {
			return nil, fmt.Errorf("%w: shipping_cost no puede ser negativo", domain.ErrInvalidInput)
		}
		product.ShippingCost = *in.ShippingCost
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return nil, fmt.Errorf("%w: stock no puede ser negativo", domain.ErrInvalidInput)
		}
		product.Stock = *in.Stock
	}
	product.UpdatedAt = time.Now()

	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	uc.publisher.Publish(events.Event{
		Type:      events.ProductUpdated,
		CompanyID: companyID,
		EntityID:  product.ID,
	})
	return toProductResponse(product), nil
}

// List lista los productos de la empresa con paginación. Con search no vacío
// filtra por texto libre sobre nombre, SKU, código de barras y marca.
func (uc *ProductUseCase) List(companyID, search string, limit, offset int) (*dto.ProductListResponse, error) {
	var (
		list []*entity.Product
		err  error
	)
	if search != "" {
		list, err = uc.repo.SearchByCompany(companyID, search, limit, offset)
	} else {
		list, err = uc.repo.ListByCompany(companyID, limit, offset)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// ListLowStock lista los productos con stock de bodega bajo el umbral fijo,
// del más crítico al menos crítico.
func (uc *ProductUseCase) ListLowStock(companyID string) ([]dto.ProductResponse, error) {
	list, err := uc.repo.ListLowStock(companyID, entity.LowStockThreshold)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

// Delete elimina el producto del catálogo. No hay cascada: las filas de
// inventario por sucursal y las ventas (que llevan snapshot) permanecen.
func (uc *ProductUseCase) Delete(companyID, id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return domain.ErrForbidden
	}
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	uc.publisher.Publish(events.Event{
		Type:      events.ProductDeleted,
		CompanyID: companyID,
		EntityID:  id,
	})
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:           p.ID,
		CompanyID:    p.CompanyID,
		SKU:          p.SKU,
		Barcode:      p.Barcode,
		Brand:        p.Brand,
		Name:         p.Name,
		Cost:         p.Cost,
		ShippingCost: p.ShippingCost,
		Stock:        p.Stock,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
