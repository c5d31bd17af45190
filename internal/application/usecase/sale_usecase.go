package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/application/validation"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

// SaleUseCase casos de uso CRUD para ventas.
type SaleUseCase struct {
	repo        repository.SaleRepository
	productRepo repository.ProductRepository
	policy      UpdatePolicy
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(repo repository.SaleRepository, productRepo repository.ProductRepository, policy UpdatePolicy) *SaleUseCase {
	return &SaleUseCase{repo: repo, productRepo: productRepo, policy: policy}
}

// List devuelve las ventas de la más reciente a la más antigua.
func (uc *SaleUseCase) List(ctx context.Context) ([]dto.SaleResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar ventas: %w", err)
	}
	out := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toSaleResponse(s))
	}
	return out, nil
}

// Create registra una venta. total_price se toma tal cual del cliente.
func (uc *SaleUseCase) Create(ctx context.Context, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	verr := validation.Struct(in)
	if verr == nil {
		verr = &domain.ValidationError{}
	}
	if in.TotalPrice != nil {
		validation.Money(verr, "total_price", *in.TotalPrice)
	}
	if !verr.HasErrors() {
		if err := uc.checkProduct(ctx, *in.Product, verr); err != nil {
			return nil, err
		}
	}
	if verr.HasErrors() {
		return nil, verr
	}
	date, err := entity.ParseDate(in.Date)
	if err != nil {
		return nil, domain.NewValidationError("date", "formato de fecha inválido, use YYYY-MM-DD")
	}

	sale := &entity.Sale{
		ProductID:  *in.Product,
		Date:       date,
		Quantity:   *in.Quantity,
		TotalPrice: *in.TotalPrice,
	}
	if err := uc.repo.Create(ctx, sale); err != nil {
		return nil, err
	}
	out := toSaleResponse(sale)
	return &out, nil
}

// GetByID obtiene una venta; ErrNotFound si no existe.
func (uc *SaleUseCase) GetByID(ctx context.Context, id int64) (*dto.SaleResponse, error) {
	sale, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	out := toSaleResponse(sale)
	return &out, nil
}

// Update modifica una venta existente; parcial por defecto.
func (uc *SaleUseCase) Update(ctx context.Context, id int64, in dto.UpdateSaleRequest) (*dto.SaleResponse, error) {
	sale, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}

	verr := validation.Merge(
		uc.policy.requireFull(map[string]bool{
			"product":     in.Product == nil,
			"date":        in.Date == nil,
			"quantity":    in.Quantity == nil,
			"total_price": in.TotalPrice == nil,
		}),
		validation.Struct(in),
	)
	if verr == nil {
		verr = &domain.ValidationError{}
	}
	if in.TotalPrice != nil {
		validation.Money(verr, "total_price", *in.TotalPrice)
	}
	if in.Product != nil && !verr.HasErrors() {
		if err := uc.checkProduct(ctx, *in.Product, verr); err != nil {
			return nil, err
		}
	}
	if verr.HasErrors() {
		return nil, verr
	}

	if in.Product != nil {
		sale.ProductID = *in.Product
	}
	if in.Date != nil {
		date, err := entity.ParseDate(*in.Date)
		if err != nil {
			return nil, domain.NewValidationError("date", "formato de fecha inválido, use YYYY-MM-DD")
		}
		sale.Date = date
	}
	if in.Quantity != nil {
		sale.Quantity = *in.Quantity
	}
	if in.TotalPrice != nil {
		sale.TotalPrice = *in.TotalPrice
	}
	if err := uc.repo.Update(ctx, sale); err != nil {
		return nil, err
	}
	out := toSaleResponse(sale)
	return &out, nil
}

// Delete elimina una venta.
func (uc *SaleUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

func (uc *SaleUseCase) checkProduct(ctx context.Context, id int64, verr *domain.ValidationError) error {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("buscar producto %d: %w", id, err)
	}
	if product == nil {
		verr.Add("product", domain.InvalidReference("product", id).Fields["product"])
	}
	return nil
}

func toSaleResponse(s *entity.Sale) dto.SaleResponse {
	return dto.SaleResponse{
		ID:          s.ID,
		Product:     s.ProductID,
		ProductName: s.ProductName,
		Date:        s.Date.Format(entity.DateLayout),
		Quantity:    s.Quantity,
		TotalPrice:  dto.NewMoney(s.TotalPrice),
	}
}
