package repository

import (
	"context"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
// GetByID y FindByName devuelven (nil, nil) si no existe.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id int64) (*entity.Category, error)
	// FindByName busca por nombre exacto; con duplicados devuelve el de menor id.
	FindByName(ctx context.Context, name string) (*entity.Category, error)
	List(ctx context.Context) ([]*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	// Delete elimina en cascada productos y ventas. ErrNotFound si no existe.
	Delete(ctx context.Context, id int64) error
	// EnsureByID inserta con el id indicado si no existe (get-or-create por id).
	EnsureByID(ctx context.Context, category *entity.Category) (created bool, err error)
}
