package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SalesFilter filtros opcionales, combinados con AND. Nil = sin filtro.
type SalesFilter struct {
	StartDate  *time.Time // inclusivo
	EndDate    *time.Time // inclusivo
	CategoryID *int64
}

// SalesMetrics resultado crudo de las métricas agregadas.
// Todos los campos valen cero cuando no hay filas.
type SalesMetrics struct {
	TotalRevenue      decimal.Decimal
	AvgQuantity       decimal.Decimal
	TotalTransactions int
}

// ProductRevenue ingresos agrupados por nombre de producto.
type ProductRevenue struct {
	Name    string
	Revenue decimal.Decimal
}

// AnalyticsRepository consultas de solo lectura sobre ventas.
type AnalyticsRepository interface {
	// GetSalesMetrics devuelve suma de total_price, promedio de quantity y conteo.
	GetSalesMetrics(ctx context.Context, filter SalesFilter) (SalesMetrics, error)

	// GetProductPerformance agrupa por nombre de producto, ordenado por ingreso descendente.
	GetProductPerformance(ctx context.Context, filter SalesFilter) ([]ProductRevenue, error)
}
