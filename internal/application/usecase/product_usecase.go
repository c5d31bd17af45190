package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/application/validation"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. category_name se toma de la categoría referenciada.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	policy       UpdatePolicy
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, categoryRepo repository.CategoryRepository, policy UpdatePolicy) *ProductUseCase {
	return &ProductUseCase{repo: repo, categoryRepo: categoryRepo, policy: policy}
}

// List devuelve los productos ordenados por nombre.
func (uc *ProductUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar productos: %w", err)
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// Create valida el cuerpo, resuelve la categoría y persiste el producto.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	verr := validation.Struct(in)
	if verr == nil {
		verr = &domain.ValidationError{}
	}
	if in.Price != nil {
		validation.Money(verr, "price", *in.Price)
	}
	if !verr.HasErrors() {
		if err := uc.checkCategory(ctx, *in.Category, verr); err != nil {
			return nil, err
		}
	}
	if verr.HasErrors() {
		return nil, verr
	}

	product := &entity.Product{
		Name:        in.Name,
		Price:       *in.Price,
		CategoryID:  *in.Category,
		Description: in.Description,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	out := toProductResponse(product)
	return &out, nil
}

// GetByID obtiene un producto; ErrNotFound si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	out := toProductResponse(product)
	return &out, nil
}

// Update reemplaza (o modifica parcialmente, según la política) un producto existente.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	if in.Name != nil {
		trimmed := strings.TrimSpace(*in.Name)
		in.Name = &trimmed
	}
	verr := validation.Merge(
		uc.policy.requireFull(map[string]bool{
			"name":     in.Name == nil,
			"price":    in.Price == nil,
			"category": in.Category == nil,
		}),
		validation.Struct(in),
	)
	if verr == nil {
		verr = &domain.ValidationError{}
	}
	if in.Name != nil && *in.Name == "" {
		verr.Add("name", validation.MsgRequired)
	}
	if in.Price != nil {
		validation.Money(verr, "price", *in.Price)
	}
	if in.Category != nil && !verr.HasErrors() {
		if err := uc.checkCategory(ctx, *in.Category, verr); err != nil {
			return nil, err
		}
	}
	if verr.HasErrors() {
		return nil, verr
	}

	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Category != nil {
		product.CategoryID = *in.Category
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	out := toProductResponse(product)
	return &out, nil
}

// Delete elimina el producto y sus ventas.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

// checkCategory agrega a verr un error de referencia si la categoría no existe.
func (uc *ProductUseCase) checkCategory(ctx context.Context, id int64, verr *domain.ValidationError) error {
	category, err := uc.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("buscar categoría %d: %w", id, err)
	}
	if category == nil {
		verr.Add("category", domain.InvalidReference("category", id).Fields["category"])
	}
	return nil
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Price:        dto.NewMoney(p.Price),
		Category:     p.CategoryID,
		CategoryName: p.CategoryName,
		Description:  p.Description,
	}
}
