package sales

import (
	"fmt"
	"time"

	"github.com/dmarulanda/ventas-api/internal/application/dto"
	"github.com/dmarulanda/ventas-api/internal/domain"
	"github.com/dmarulanda/ventas-api/internal/domain/repository"
	"github.com/dmarulanda/ventas-api/internal/domain/sales"
)

// ListSalesUseCase consultas de lectura sobre el libro de ventas.
type ListSalesUseCase struct {
	saleRepo repository.SaleRepository
}

// NewListSalesUseCase construye el caso de uso.
func NewListSalesUseCase(saleRepo repository.SaleRepository) *ListSalesUseCase {
	return &ListSalesUseCase{saleRepo: saleRepo}
}

// ListSales devuelve ventas de la empresa filtradas por año/mes calendario
// (hora local) y opcionalmente por sucursal, más recientes primero.
func (uc *ListSalesUseCase) ListSales(companyID string, in dto.ListSalesRequest) (*dto.SaleListResponse, error) {
	from, to, err := sales.PeriodRange(in.Year, in.Month, time.Local)
	if err != nil {
		return nil, err
	}
	in.DefaultPage()

	items, err := uc.saleRepo.ListByCompany(companyID, repository.SaleFilters{
		From:     from,
		To:       to,
		BranchID: in.BranchID,
		Limit:    in.Limit,
		Offset:   in.Offset,
	})
	if err != nil {
		return nil, err
	}

	out := &dto.SaleListResponse{
		Items: make([]dto.SaleResponse, 0, len(items)),
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}
	for _, s := range items {
		out.Items = append(out.Items, *toSaleResponse(s, nil))
	}
	return out, nil
}

// GetSale devuelve una venta por ID validando pertenencia a la empresa.
func (uc *ListSalesUseCase) GetSale(companyID, id string) (*dto.SaleResponse, error) {
	s, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, nil
	}
	if s.CompanyID != companyID {
		return nil, fmt.Errorf("%w: la venta pertenece a otra empresa", domain.ErrForbidden)
	}
	return toSaleResponse(s, nil), nil
}
