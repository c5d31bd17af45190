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

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `s.id, s.product_id, p.name, s.date, s.quantity, s.total_price`

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	if err := row.Scan(&s.ID, &s.ProductID, &s.ProductName, &s.Date, &s.Quantity, &s.TotalPrice); err != nil {
		return nil, err
	}
	s.Date = entity.TruncateDate(s.Date)
	return &s, nil
}

// Create registra una venta y completa id y nombre del producto.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	query := `
		WITH ins AS (
		    INSERT INTO sales (product_id, date, quantity, total_price)
		    VALUES ($1, $2, $3, $4)
		    RETURNING id, product_id
		)
		SELECT ins.id, p.name FROM ins JOIN products p ON p.id = ins.product_id`
	err := r.q.QueryRow(ctx, query,
		sale.ProductID, sale.Date, sale.Quantity, sale.TotalPrice,
	).Scan(&sale.ID, &sale.ProductName)
	if err != nil {
		return mapWriteError(err, "insert sale", "product", sale.ProductID, "quantity")
	}
	return nil
}

// GetByID obtiene una venta por ID.
func (r *SaleRepo) GetByID(ctx context.Context, id int64) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + `
		FROM sales s JOIN products p ON p.id = s.product_id
		WHERE s.id = $1`
	s, err := scanSale(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

// List lista todas las ventas, más recientes primero.
func (r *SaleRepo) List(ctx context.Context) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + `
		FROM sales s JOIN products p ON p.id = s.product_id
		ORDER BY s.date DESC, s.id DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Sale, 0)
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// Update reemplaza todos los campos de la venta (la fusión parcial ocurre en el caso de uso).
func (r *SaleRepo) Update(ctx context.Context, sale *entity.Sale) error {
	query := `
		WITH upd AS (
		    UPDATE sales SET product_id = $2, date = $3, quantity = $4, total_price = $5
		    WHERE id = $1
		    RETURNING product_id
		)
		SELECT p.name FROM upd JOIN products p ON p.id = upd.product_id`
	err := r.q.QueryRow(ctx, query,
		sale.ID, sale.ProductID, sale.Date, sale.Quantity, sale.TotalPrice,
	).Scan(&sale.ProductName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return mapWriteError(err, "update sale", "product", sale.ProductID, "quantity")
	}
	return nil
}

// Delete elimina una venta por ID.
func (r *SaleRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// EnsureByID inserta la venta con su id si no existe.
func (r *SaleRepo) EnsureByID(ctx context.Context, sale *entity.Sale) (bool, error) {
	cmd, err := r.q.Exec(ctx, `
		INSERT INTO sales (id, product_id, date, quantity, total_price)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING`,
		sale.ID, sale.ProductID, sale.Date, sale.Quantity, sale.TotalPrice,
	)
	if err != nil {
		return false, mapWriteError(err, "ensure sale", "product", sale.ProductID, "quantity")
	}
	if cmd.RowsAffected() == 0 {
		return false, nil
	}
	if _, err := r.q.Exec(ctx, syncSequenceSQL("sales")); err != nil {
		return true, fmt.Errorf("sync sales sequence: %w", err)
	}
	return true, nil
}
