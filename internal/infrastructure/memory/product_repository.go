package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo productos en memoria.
type ProductRepo struct {
	s    *Store
	inTx bool
}

// withCategory completa CategoryName con el nombre vigente de la categoría.
func withCategory(d *dataset, p entity.Product) *entity.Product {
	p.CategoryName = d.categories[p.CategoryID].Name
	return &p
}

func deleteProduct(d *dataset, id int64) {
	delete(d.products, id)
	for sid, s := range d.sales {
		if s.ProductID == id {
			delete(d.sales, sid)
		}
	}
}

// Create valida la categoría y guarda el producto con el siguiente id.
func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	return r.s.update(r.inTx, func(d *dataset) error {
		c, ok := d.categories[product.CategoryID]
		if !ok {
			return domain.InvalidReference("category", product.CategoryID)
		}
		d.lastProductID++
		product.ID = d.lastProductID
		product.CategoryName = c.Name
		d.products[product.ID] = *product
		return nil
	})
}

// GetByID devuelve nil, nil si no existe.
func (r *ProductRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	var out *entity.Product
	err := r.s.view(r.inTx, func(d *dataset) error {
		if p, ok := d.products[id]; ok {
			out = withCategory(d, p)
		}
		return nil
	})
	return out, err
}

// FindByName devuelve el producto de menor id con ese nombre exacto.
func (r *ProductRepo) FindByName(_ context.Context, name string) (*entity.Product, error) {
	var out *entity.Product
	err := r.s.view(r.inTx, func(d *dataset) error {
		for _, p := range d.products {
			if p.Name == name && (out == nil || p.ID < out.ID) {
				out = withCategory(d, p)
			}
		}
		return nil
	})
	return out, err
}

// List ordena por nombre.
func (r *ProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	list := make([]*entity.Product, 0)
	err := r.s.view(r.inTx, func(d *dataset) error {
		for _, p := range d.products {
			list = append(list, withCategory(d, p))
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].ID < list[j].ID
	})
	return list, err
}

// Update reemplaza todos los campos del producto.
func (r *ProductRepo) Update(_ context.Context, product *entity.Product) error {
	return r.s.update(r.inTx, func(d *dataset) error {
		if _, ok := d.products[product.ID]; !ok {
			return domain.ErrNotFound
		}
		c, ok := d.categories[product.CategoryID]
		if !ok {
			return domain.InvalidReference("category", product.CategoryID)
		}
		product.CategoryName = c.Name
		d.products[product.ID] = *product
		return nil
	})
}

// Delete elimina el producto y sus ventas.
func (r *ProductRepo) Delete(_ context.Context, id int64) error {
	return r.s.update(r.inTx, func(d *dataset) error {
		if _, ok := d.products[id]; !ok {
			return domain.ErrNotFound
		}
		deleteProduct(d, id)
		return nil
	})
}

// EnsureByID crea el producto con su id si no existe. Devuelve true si lo creó.
func (r *ProductRepo) EnsureByID(_ context.Context, product *entity.Product) (bool, error) {
	created := false
	err := r.s.update(r.inTx, func(d *dataset) error {
		if _, ok := d.products[product.ID]; ok {
			return nil
		}
		c, ok := d.categories[product.CategoryID]
		if !ok {
			return domain.InvalidReference("category", product.CategoryID)
		}
		product.CategoryName = c.Name
		d.products[product.ID] = *product
		if product.ID > d.lastProductID {
			d.lastProductID = product.ID
		}
		created = true
		return nil
	})
	return created, err
}
