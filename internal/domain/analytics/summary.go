// Package analytics contiene la agregación pura de ventas (servicio de dominio),
// equivalente en memoria a las consultas SQL del repositorio de analítica.
package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

// SaleFact es la mínima proyección de una venta necesaria para agregar.
type SaleFact struct {
	ProductName string
	Quantity    int
	TotalPrice  decimal.Decimal
}

// Summarize calcula métricas y el ranking de ingresos por nombre de producto.
// Con facts vacío devuelve ceros y un slice vacío (no nil).
func Summarize(facts []SaleFact) (repository.SalesMetrics, []repository.ProductRevenue) {
	metrics := repository.SalesMetrics{
		TotalRevenue: decimal.Zero,
		AvgQuantity:  decimal.Zero,
	}
	if len(facts) == 0 {
		return metrics, []repository.ProductRevenue{}
	}

	var qty int64
	byName := make(map[string]decimal.Decimal)
	for _, f := range facts {
		metrics.TotalRevenue = metrics.TotalRevenue.Add(f.TotalPrice)
		qty += int64(f.Quantity)
		byName[f.ProductName] = byName[f.ProductName].Add(f.TotalPrice)
	}
	metrics.TotalTransactions = len(facts)
	metrics.AvgQuantity = decimal.NewFromInt(qty).Div(decimal.NewFromInt(int64(len(facts))))

	perf := make([]repository.ProductRevenue, 0, len(byName))
	for name, rev := range byName {
		perf = append(perf, repository.ProductRevenue{Name: name, Revenue: rev})
	}
	SortByRevenue(perf)
	return metrics, perf
}

// SortByRevenue ordena por ingreso descendente; empates por nombre ascendente.
func SortByRevenue(perf []repository.ProductRevenue) {
	sort.SliceStable(perf, func(i, j int) bool {
		if c := perf[i].Revenue.Cmp(perf[j].Revenue); c != 0 {
			return c > 0
		}
		return perf[i].Name < perf[j].Name
	})
}
