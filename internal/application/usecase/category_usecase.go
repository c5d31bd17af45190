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

// CategoryUseCase casos de uso CRUD para categorías.
type CategoryUseCase struct {
	repo   repository.CategoryRepository
	policy UpdatePolicy
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository, policy UpdatePolicy) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, policy: policy}
}

// List devuelve todas las categorías ordenadas por id.
func (uc *CategoryUseCase) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar categorías: %w", err)
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCategoryResponse(c))
	}
	return out, nil
}

// Create valida y crea una categoría.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	if verr := validation.Struct(in); verr.HasErrors() {
		return nil, verr
	}
	category := &entity.Category{Name: in.Name}
	if err := uc.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	out := toCategoryResponse(category)
	return &out, nil
}

// GetByID obtiene una categoría; ErrNotFound si no existe.
func (uc *CategoryUseCase) GetByID(ctx context.Context, id int64) (*dto.CategoryResponse, error) {
	category, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	out := toCategoryResponse(category)
	return &out, nil
}

// Update modifica el nombre. La existencia se verifica antes que el cuerpo.
func (uc *CategoryUseCase) Update(ctx context.Context, id int64, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	category, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		trimmed := strings.TrimSpace(*in.Name)
		in.Name = &trimmed
	}
	verr := validation.Merge(
		uc.policy.requireFull(map[string]bool{"name": in.Name == nil}),
		validation.Struct(in),
	)
	if in.Name != nil && *in.Name == "" {
		verr = validation.Merge(verr, domain.NewValidationError("name", validation.MsgRequired))
	}
	if verr.HasErrors() {
		return nil, verr
	}
	if in.Name != nil {
		category.Name = *in.Name
	}
	if err := uc.repo.Update(ctx, category); err != nil {
		return nil, err
	}
	out := toCategoryResponse(category)
	return &out, nil
}

// Delete elimina la categoría con sus productos y ventas.
func (uc *CategoryUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

func toCategoryResponse(c *entity.Category) dto.CategoryResponse {
	return dto.CategoryResponse{ID: c.ID, Name: c.Name}
}
