package repository

import (
	"context"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Las lecturas completan CategoryName.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	// FindByName busca por nombre exacto; con duplicados devuelve el de menor id.
	FindByName(ctx context.Context, name string) (*entity.Product, error)
	// List ordena por nombre ascendente.
	List(ctx context.Context) ([]*entity.Product, error)
	// Update reemplaza los campos editables. ErrNotFound si no existe.
	Update(ctx context.Context, product *entity.Product) error
	// Delete elimina en cascada las ventas. ErrNotFound si no existe.
	Delete(ctx context.Context, id int64) error
	EnsureByID(ctx context.Context, product *entity.Product) (created bool, err error)
}
