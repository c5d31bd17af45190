package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para la analítica de ventas.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// salesWhere construye la cláusula WHERE (AND) y sus argumentos posicionales.
// Asume los alias s (sales) y p (products).
func salesWhere(f repository.SalesFilter) (string, []any) {
	var conds []string
	var args []any
	if f.StartDate != nil {
		args = append(args, *f.StartDate)
		conds = append(conds, fmt.Sprintf("s.date >= $%d", len(args)))
	}
	if f.EndDate != nil {
		args = append(args, *f.EndDate)
		conds = append(conds, fmt.Sprintf("s.date <= $%d", len(args)))
	}
	if f.CategoryID != nil {
		args = append(args, *f.CategoryID)
		conds = append(conds, fmt.Sprintf("p.category_id = $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

// GetSalesMetrics devuelve ingresos, cantidad promedio y número de transacciones.
// Usa COALESCE para devolver cero si no hay filas.
func (r *AnalyticsRepo) GetSalesMetrics(ctx context.Context, filter repository.SalesFilter) (repository.SalesMetrics, error) {
	where, args := salesWhere(filter)
	query := `
	SELECT
	    COALESCE(SUM(s.total_price), 0) AS total_revenue,
	    COALESCE(AVG(s.quantity),    0) AS avg_quantity,
	    COUNT(s.id)                     AS total_transactions
	FROM sales s
	JOIN products p ON p.id = s.product_id
	` + where

	m := repository.SalesMetrics{TotalRevenue: decimal.Zero, AvgQuantity: decimal.Zero}
	if err := r.q.QueryRow(ctx, query, args...).Scan(&m.TotalRevenue, &m.AvgQuantity, &m.TotalTransactions); err != nil {
		return repository.SalesMetrics{}, fmt.Errorf("analytics.GetSalesMetrics: %w", err)
	}
	return m, nil
}

// GetProductPerformance agrupa ingresos por nombre de producto, de mayor a menor.
func (r *AnalyticsRepo) GetProductPerformance(ctx context.Context, filter repository.SalesFilter) ([]repository.ProductRevenue, error) {
	where, args := salesWhere(filter)
	query := `
	SELECT
	    p.name                          AS name,
	    COALESCE(SUM(s.total_price), 0) AS revenue
	FROM sales s
	JOIN products p ON p.id = s.product_id
	` + where + `
	GROUP BY p.name
	ORDER BY revenue DESC, p.name ASC`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetProductPerformance: %w", err)
	}
	defer rows.Close()

	results := make([]repository.ProductRevenue, 0)
	for rows.Next() {
		var row repository.ProductRevenue
		if err := rows.Scan(&row.Name, &row.Revenue); err != nil {
			return nil, fmt.Errorf("analytics.GetProductPerformance scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
