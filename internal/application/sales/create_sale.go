package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dmarulanda/ventas-api/internal/application/dto"
	"github.com/dmarulanda/ventas-api/internal/application/events"
	"github.com/dmarulanda/ventas-api/internal/domain"
	"github.com/dmarulanda/ventas-api/internal/domain/entity"
	"github.com/dmarulanda/ventas-api/internal/domain/repository"
	"github.com/dmarulanda/ventas-api/internal/domain/sales"
	"github.com/dmarulanda/ventas-api/pkg/validator"
)

// CreateSaleUseCase registra una venta y descuenta la existencia de la
// sucursal en una sola transacción.
//
// La validación previa (sucursal, producto, existencia suficiente) se hace
// sobre una lectura fuera de la transacción para poder nombrar el campo que
// falla; la verificación definitiva es el decremento condicional dentro de la
// transacción: si otra venta consumió la existencia en el intervalo, el
// UPDATE no afecta filas y todo el grupo se revierte sin venta a medias.
type CreateSaleUseCase struct {
	txRunner    TxRunner
	branchRepo  repository.BranchRepository
	productRepo repository.ProductRepository
	stockRepo   repository.BranchStockRepository
	publisher   events.Publisher
}

// NewCreateSaleUseCase construye el caso de uso.
func NewCreateSaleUseCase(
	txRunner TxRunner,
	branchRepo repository.BranchRepository,
	productRepo repository.ProductRepository,
	stockRepo repository.BranchStockRepository,
	publisher events.Publisher,
) *CreateSaleUseCase {
	return &CreateSaleUseCase{
		txRunner:    txRunner,
		branchRepo:  branchRepo,
		productRepo: productRepo,
		stockRepo:   stockRepo,
		publisher:   publisher,
	}
}

// CreateSale valida la solicitud, congela el snapshot del producto y la
// sucursal, y aplica venta + descuento de forma atómica.
func (uc *CreateSaleUseCase) CreateSale(ctx context.Context, companyID, userID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, errs[0])
	}
	// Los montos son decimal.Decimal y quedan fuera de los tags de validación.
	if !in.UnitPrice.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: unit_price debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if in.Discount.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: discount no puede ser negativo", domain.ErrInvalidInput)
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

	row, err := uc.stockRepo.Get(in.BranchID, in.ProductID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, fmt.Errorf("%w: product_id no tiene existencias asignadas en la sucursal", domain.ErrNotFound)
	}
	if in.Quantity > row.Quantity {
		return nil, fmt.Errorf("%w: quantity %d supera la existencia actual %d",
			domain.ErrInsufficientStock, in.Quantity, row.Quantity)
	}

	date := time.Now()
	if in.Date != "" {
		parsed, perr := time.ParseInLocation("2006-01-02", in.Date, time.Local)
		if perr != nil {
			return nil, fmt.Errorf("%w: date debe tener formato YYYY-MM-DD", domain.ErrInvalidInput)
		}
		date = parsed
	}

	now := time.Now()
	sale := &entity.Sale{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		BranchID:    branch.ID,
		BranchName:  branch.Name,
		ProductID:   product.ID,
		ProductName: product.Name,
		ProductCost: product.Cost,
		Quantity:    in.Quantity,
		UnitPrice:   in.UnitPrice,
		Discount:    in.Discount,
		Amount:      sales.Amount(in.Quantity, in.UnitPrice, in.Discount),
		Cost:        sales.Cost(in.Quantity, product.Cost),
		Date:        date,
		CreatedBy:   userID,
		CreatedAt:   now,
	}

	var remaining int
	err = uc.txRunner.Run(ctx, func(saleRepo repository.SaleRepository, stockRepo repository.BranchStockRepository) error {
		left, derr := stockRepo.DeductQuantity(companyID, in.BranchID, in.ProductID, in.Quantity)
		if derr != nil {
			return derr
		}
		remaining = left
		return saleRepo.Create(sale)
	})
	if err != nil {
		return nil, err
	}

	if uc.publisher != nil {
		uc.publisher.Publish(events.Event{
			Type:      events.SaleCreated,
			EntityID:  sale.ID,
			CompanyID: companyID,
			Payload: map[string]any{
				"branch_id":       sale.BranchID,
				"product_id":      sale.ProductID,
				"quantity":        sale.Quantity,
				"amount":          sale.Amount,
				"remaining_stock": remaining,
			},
		})
	}

	return toSaleResponse(sale, &remaining), nil
}

func toSaleResponse(s *entity.Sale, remaining *int) *dto.SaleResponse {
	return &dto.SaleResponse{
		ID:             s.ID,
		BranchID:       s.BranchID,
		BranchName:     s.BranchName,
		ProductID:      s.ProductID,
		ProductName:    s.ProductName,
		ProductCost:    s.ProductCost,
		Quantity:       s.Quantity,
		UnitPrice:      s.UnitPrice,
		Discount:       s.Discount,
		Amount:         s.Amount,
		Cost:           s.Cost,
		Date:           s.Date,
		CreatedBy:      s.CreatedBy,
		CreatedAt:      s.CreatedAt,
		RemainingStock: remaining,
	}
}
