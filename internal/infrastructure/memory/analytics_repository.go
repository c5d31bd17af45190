package memory

import (
	"context"

	"github.com/jhoicas/Ventas-api/internal/domain/analytics"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo agrega en memoria con analytics.Summarize.
type AnalyticsRepo struct {
	s *Store
}

func matches(d *dataset, f repository.SalesFilter, s entity.Sale) bool {
	if f.StartDate != nil && s.Date.Before(entity.TruncateDate(*f.StartDate)) {
		return false
	}
	if f.EndDate != nil && s.Date.After(entity.TruncateDate(*f.EndDate)) {
		return false
	}
	if f.CategoryID != nil && d.products[s.ProductID].CategoryID != *f.CategoryID {
		return false
	}
	return true
}

func (r *AnalyticsRepo) facts(f repository.SalesFilter) []analytics.SaleFact {
	var out []analytics.SaleFact
	_ = r.s.view(false, func(d *dataset) error {
		for _, s := range d.sales {
			if !matches(d, f, s) {
				continue
			}
			out = append(out, analytics.SaleFact{
				ProductName: d.products[s.ProductID].Name,
				Quantity:    s.Quantity,
				TotalPrice:  s.TotalPrice,
			})
		}
		return nil
	})
	return out
}

// GetSalesMetrics totales de las ventas que cumplen el filtro.
func (r *AnalyticsRepo) GetSalesMetrics(_ context.Context, filter repository.SalesFilter) (repository.SalesMetrics, error) {
	metrics, _ := analytics.Summarize(r.facts(filter))
	return metrics, nil
}

// GetProductPerformance ingresos por nombre de producto, de mayor a menor.
func (r *AnalyticsRepo) GetProductPerformance(_ context.Context, filter repository.SalesFilter) ([]repository.ProductRevenue, error) {
	_, perf := analytics.Summarize(r.facts(filter))
	return perf, nil
}
