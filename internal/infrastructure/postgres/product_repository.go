package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `p.id, p.name, p.price, p.category_id, c.name, p.description`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	if err := row.Scan(&p.ID, &p.Name, &p.Price, &p.CategoryID, &p.CategoryName, &p.Description); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un producto; devuelve id y nombre de categoría en la misma sentencia.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		WITH ins AS (
		    INSERT INTO products (name, price, category_id, description)
		    VALUES ($1, $2, $3, $4)
		    RETURNING id, category_id
		)
		SELECT ins.id, c.name FROM ins JOIN categories c ON c.id = ins.category_id`
	err := r.q.QueryRow(ctx, query,
		product.Name, product.Price, product.CategoryID, product.Description,
	).Scan(&product.ID, &product.CategoryName)
	if err != nil {
		return mapWriteError(err, "insert product", "category", product.CategoryID, "price")
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM products p JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1`
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// FindByName obtiene el producto de menor id con ese nombre exacto.
func (r *ProductRepo) FindByName(ctx context.Context, name string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM products p JOIN categories c ON c.id = p.category_id
		WHERE p.name = $1 ORDER BY p.id LIMIT 1`
	p, err := scanProduct(r.q.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by name: %w", err)
	}
	return p, nil
}

// List lista todos los productos por nombre ascendente.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM products p JOIN categories c ON c.id = p.category_id
		ORDER BY p.name, p.id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update reemplaza nombre, precio, categoría y descripción.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		WITH upd AS (
		    UPDATE products SET name = $2, price = $3, category_id = $4, description = $5
		    WHERE id = $1
		    RETURNING category_id
		)
		SELECT c.name FROM upd JOIN categories c ON c.id = upd.category_id`
	err := r.q.QueryRow(ctx, query,
		product.ID, product.Name, product.Price, product.CategoryID, product.Description,
	).Scan(&product.CategoryName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return mapWriteError(err, "update product", "category", product.CategoryID, "price")
	}
	return nil
}

// Delete elimina un producto por ID; sus ventas se eliminan en cascada.
func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// EnsureByID inserta el producto con su id si no existe; no toca los existentes.
func (r *ProductRepo) EnsureByID(ctx context.Context, product *entity.Product) (bool, error) {
	cmd, err := r.q.Exec(ctx, `
		INSERT INTO products (id, name, price, category_id, description)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING`,
		product.ID, product.Name, product.Price, product.CategoryID, product.Description,
	)
	if err != nil {
		return false, mapWriteError(err, "ensure product", "category", product.CategoryID, "price")
	}
	if cmd.RowsAffected() == 0 {
		return false, nil
	}
	if _, err := r.q.Exec(ctx, syncSequenceSQL("products")); err != nil {
		return true, fmt.Errorf("sync products sequence: %w", err)
	}
	return true, nil
}
