package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo categorías en memoria.
type CategoryRepo struct {
	s    *Store
	inTx bool
}

// Create asigna el siguiente id y guarda la categoría.
func (r *CategoryRepo) Create(_ context.Context, category *entity.Category) error {
	return r.s.update(r.inTx, func(d *dataset) error {
		d.lastCategoryID++
		category.ID = d.lastCategoryID
		d.categories[category.ID] = *category
		return nil
	})
}

// GetByID devuelve nil, nil si no existe.
func (r *CategoryRepo) GetByID(_ context.Context, id int64) (*entity.Category, error) {
	var out *entity.Category
	err := r.s.view(r.inTx, func(d *dataset) error {
		if c, ok := d.categories[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

// FindByName devuelve la categoría de menor id con ese nombre exacto.
func (r *CategoryRepo) FindByName(_ context.Context, name string) (*entity.Category, error) {
	var out *entity.Category
	err := r.s.view(r.inTx, func(d *dataset) error {
		for _, c := range d.categories {
			if c.Name == name && (out == nil || c.ID < out.ID) {
				c := c
				out = &c
			}
		}
		return nil
	})
	return out, err
}

// List ordena por id.
func (r *CategoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	list := make([]*entity.Category, 0)
	err := r.s.view(r.inTx, func(d *dataset) error {
		for _, c := range d.categories {
			c := c
			list = append(list, &c)
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, err
}

// Update reemplaza el nombre; ErrNotFound si el id no existe.
func (r *CategoryRepo) Update(_ context.Context, category *entity.Category) error {
	return r.s.update(r.inTx, func(d *dataset) error {
		if _, ok := d.categories[category.ID]; !ok {
			return domain.ErrNotFound
		}
		d.categories[category.ID] = *category
		return nil
	})
}

// Delete replica ON DELETE CASCADE: categoría -> productos -> ventas.
func (r *CategoryRepo) Delete(_ context.Context, id int64) error {
	return r.s.update(r.inTx, func(d *dataset) error {
		if _, ok := d.categories[id]; !ok {
			return domain.ErrNotFound
		}
		delete(d.categories, id)
		for pid, p := range d.products {
			if p.CategoryID == id {
				deleteProduct(d, pid)
			}
		}
		return nil
	})
}

// EnsureByID crea la categoría con su id si no existe. Devuelve true si la creó.
func (r *CategoryRepo) EnsureByID(_ context.Context, category *entity.Category) (bool, error) {
	created := false
	err := r.s.update(r.inTx, func(d *dataset) error {
		if _, ok := d.categories[category.ID]; ok {
			return nil
		}
		d.categories[category.ID] = *category
		if category.ID > d.lastCategoryID {
			d.lastCategoryID = category.ID
		}
		created = true
		return nil
	})
	return created, err
}
