package repository

import (
	"context"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para Sale (DIP).
// Las lecturas completan ProductName.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id int64) (*entity.Sale, error)
	// List ordena por fecha descendente (id descendente como desempate).
	List(ctx context.Context) ([]*entity.Sale, error)
	Update(ctx context.Context, sale *entity.Sale) error
	Delete(ctx context.Context, id int64) error
	EnsureByID(ctx context.Context, sale *entity.Sale) (created bool, err error)
}
