package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo ventas en memoria.
type SaleRepo struct {
	s    *Store
	inTx bool
}

func withProduct(d *dataset, s entity.Sale) *entity.Sale {
	s.ProductName = d.products[s.ProductID].Name
	return &s
}

// checkSale replica la llave foránea y el rango de quantity (1..MaxQuantity) del esquema.
func checkSale(d *dataset, sale *entity.Sale) error {
	p, ok := d.products[sale.ProductID]
	if !ok {
		return domain.InvalidReference("product", sale.ProductID)
	}
	if sale.Quantity <= 0 {
		return domain.NewValidationError("quantity", "debe ser mayor que 0")
	}
	if sale.Quantity > entity.MaxQuantity {
		return domain.NewValidationError("quantity", "fuera de rango")
	}
	sale.ProductName = p.Name
	sale.Date = entity.TruncateDate(sale.Date)
	return nil
}

// Create valida producto y cantidad y guarda la venta.
func (r *SaleRepo) Create(_ context.Context, sale *entity.Sale) error {
	return r.s.update(r.inTx, func(d *dataset) error {
		if err := checkSale(d, sale); err != nil {
			return err
		}
		d.lastSaleID++
		sale.ID = d.lastSaleID
		d.sales[sale.ID] = *sale
		return nil
	})
}

// GetByID devuelve nil, nil si no existe.
func (r *SaleRepo) GetByID(_ context.Context, id int64) (*entity.Sale, error) {
	var out *entity.Sale
	err := r.s.view(r.inTx, func(d *dataset) error {
		if s, ok := d.sales[id]; ok {
			out = withProduct(d, s)
		}
		return nil
	})
	return out, err
}

// List ordena por fecha y luego id, ambos descendentes.
func (r *SaleRepo) List(_ context.Context) ([]*entity.Sale, error) {
	list := make([]*entity.Sale, 0)
	err := r.s.view(r.inTx, func(d *dataset) error {
		for _, s := range d.sales {
			list = append(list, withProduct(d, s))
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool {
		if !list[i].Date.Equal(list[j].Date) {
			return list[i].Date.After(list[j].Date)
		}
		return list[i].ID > list[j].ID
	})
	return list, err
}

// Update reemplaza todos los campos de la venta.
func (r *SaleRepo) Update(_ context.Context, sale *entity.Sale) error {
	return r.s.update(r.inTx, func(d *dataset) error {
		if _, ok := d.sales[sale.ID]; !ok {
			return domain.ErrNotFound
		}
		if err := checkSale(d, sale); err != nil {
			return err
		}
		d.sales[sale.ID] = *sale
		return nil
	})
}

// Delete elimina la venta; ErrNotFound si no existe.
func (r *SaleRepo) Delete(_ context.Context, id int64) error {
	return r.s.update(r.inTx, func(d *dataset) error {
		if _, ok := d.sales[id]; !ok {
			return domain.ErrNotFound
		}
		delete(d.sales, id)
		return nil
	})
}

// EnsureByID crea la venta con su id si no existe. Devuelve true si la creó.
func (r *SaleRepo) EnsureByID(_ context.Context, sale *entity.Sale) (bool, error) {
	created := false
	err := r.s.update(r.inTx, func(d *dataset) error {
		if _, ok := d.sales[sale.ID]; ok {
			return nil
		}
		if err := checkSale(d, sale); err != nil {
			return err
		}
		d.sales[sale.ID] = *sale
		if sale.ID > d.lastSaleID {
			d.lastSaleID = sale.ID
		}
		created = true
		return nil
	})
	return created, err
}
