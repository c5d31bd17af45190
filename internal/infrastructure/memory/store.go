// Package memory implementa los puertos de persistencia en memoria.
// Replica el comportamiento del esquema PostgreSQL (llaves foráneas, cascadas,
// orden de listados) y se usa con DB_DRIVER=memory y en los tests.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/Ventas-api/internal/application/importer"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

type dataset struct {
	categories map[int64]entity.Category
	products   map[int64]entity.Product
	sales      map[int64]entity.Sale

	lastCategoryID int64
	lastProductID  int64
	lastSaleID     int64
}

func newDataset() *dataset {
	return &dataset{
		categories: make(map[int64]entity.Category),
		products:   make(map[int64]entity.Product),
		sales:      make(map[int64]entity.Sale),
	}
}

func (d *dataset) clone() *dataset {
	c := &dataset{
		categories:     make(map[int64]entity.Category, len(d.categories)),
		products:       make(map[int64]entity.Product, len(d.products)),
		sales:          make(map[int64]entity.Sale, len(d.sales)),
		lastCategoryID: d.lastCategoryID,
		lastProductID:  d.lastProductID,
		lastSaleID:     d.lastSaleID,
	}
	for k, v := range d.categories {
		c.categories[k] = v
	}
	for k, v := range d.products {
		c.products[k] = v
	}
	for k, v := range d.sales {
		c.sales[k] = v
	}
	return c
}

// Store contiene las tres tablas protegidas por un RWMutex.
type Store struct {
	mu   sync.RWMutex
	data *dataset
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{data: newDataset()}
}

// Categories devuelve el repositorio de categorías.
func (s *Store) Categories() *CategoryRepo { return &CategoryRepo{s: s} }

// Products devuelve el repositorio de productos.
func (s *Store) Products() *ProductRepo { return &ProductRepo{s: s} }

// Sales devuelve el repositorio de ventas.
func (s *Store) Sales() *SaleRepo { return &SaleRepo{s: s} }

// Analytics devuelve el repositorio de analítica.
func (s *Store) Analytics() *AnalyticsRepo { return &AnalyticsRepo{s: s} }

// TxRunner devuelve un runner transaccional sobre este almacén.
func (s *Store) TxRunner() *TxRunner { return &TxRunner{s: s} }

// view ejecuta fn con lock de lectura, salvo dentro de una transacción (inTx) donde ya se tiene el lock.
func (s *Store) view(inTx bool, fn func(d *dataset) error) error {
	if !inTx {
		s.mu.RLock()
		defer s.mu.RUnlock()
	}
	return fn(s.data)
}

func (s *Store) update(inTx bool, fn func(d *dataset) error) error {
	if !inTx {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	return fn(s.data)
}

var _ importer.TxRunner = (*TxRunner)(nil)

// TxRunner serializa la transacción con el lock de escritura y restaura
// la instantánea previa si fn devuelve error.
type TxRunner struct {
	s *Store
}

// Run ejecuta fn de forma atómica.
func (r *TxRunner) Run(ctx context.Context, fn func(
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	snapshot := r.s.data.clone()
	err := fn(
		&CategoryRepo{s: r.s, inTx: true},
		&ProductRepo{s: r.s, inTx: true},
		&SaleRepo{s: r.s, inTx: true},
	)
	if err != nil {
		r.s.data = snapshot
		return err
	}
	return nil
}
