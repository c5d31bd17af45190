package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/application/ports"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

// AnalyticsUseCase calcula métricas de ventas y el rendimiento por producto.
// Un rango con start_date > end_date no es error: simplemente no coincide ninguna venta.
type AnalyticsUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	reportGen     ports.SalesReportGenerator
	now           func() time.Time
}

// NewAnalyticsUseCase construye el caso de uso. reportGen puede ser nil si no se exponen reportes.
func NewAnalyticsUseCase(analyticsRepo repository.AnalyticsRepository, reportGen ports.SalesReportGenerator) *AnalyticsUseCase {
	return &AnalyticsUseCase{analyticsRepo: analyticsRepo, reportGen: reportGen, now: time.Now}
}

// ParseFilter convierte los parámetros de consulta en un filtro. Valores mal formados -> ValidationError.
func ParseFilter(req dto.SalesAnalysisRequest) (repository.SalesFilter, error) {
	var (
		filter repository.SalesFilter
		verr   domain.ValidationError
	)
	if s := strings.TrimSpace(req.StartDate); s != "" {
		if t, err := entity.ParseDate(s); err != nil {
			verr.Add("start_date", "formato de fecha inválido, use YYYY-MM-DD")
		} else {
			filter.StartDate = &t
		}
	}
	if s := strings.TrimSpace(req.EndDate); s != "" {
		if t, err := entity.ParseDate(s); err != nil {
			verr.Add("end_date", "formato de fecha inválido, use YYYY-MM-DD")
		} else {
			filter.EndDate = &t
		}
	}
	if s := strings.TrimSpace(req.Category); s != "" {
		if id, err := strconv.ParseInt(s, 10, 64); err != nil {
			verr.Add("category", "debe ser un id numérico")
		} else {
			filter.CategoryID = &id
		}
	}
	if verr.HasErrors() {
		return repository.SalesFilter{}, &verr
	}
	return filter, nil
}

// GetSalesAnalysis devuelve métricas agregadas y el ranking de ingresos por nombre de producto.
func (uc *AnalyticsUseCase) GetSalesAnalysis(ctx context.Context, req dto.SalesAnalysisRequest) (*dto.SalesAnalysisDTO, error) {
	filter, err := ParseFilter(req)
	if err != nil {
		return nil, err
	}
	return uc.analyze(ctx, filter)
}

// GetSalesReport renderiza el mismo análisis como documento (PDF).
func (uc *AnalyticsUseCase) GetSalesReport(ctx context.Context, req dto.SalesAnalysisRequest) ([]byte, error) {
	if uc.reportGen == nil {
		return nil, fmt.Errorf("generador de reportes no configurado")
	}
	filter, err := ParseFilter(req)
	if err != nil {
		return nil, err
	}
	analysis, err := uc.analyze(ctx, filter)
	if err != nil {
		return nil, err
	}
	return uc.reportGen.GenerateSalesReport(ctx, dto.SalesReportDTO{
		Title:       "Análisis de ventas",
		Period:      periodLabel(filter),
		CategoryID:  filter.CategoryID,
		GeneratedAt: uc.now(),
		Analysis:    *analysis,
	})
}

func (uc *AnalyticsUseCase) analyze(ctx context.Context, filter repository.SalesFilter) (*dto.SalesAnalysisDTO, error) {
	// Métricas y ranking son consultas independientes: se lanzan en paralelo.
	type metricsResult struct {
		metrics repository.SalesMetrics
		err     error
	}
	type perfResult struct {
		rows []repository.ProductRevenue
		err  error
	}
	metricsChan := make(chan metricsResult, 1)
	perfChan := make(chan perfResult, 1)

	go func() {
		m, err := uc.analyticsRepo.GetSalesMetrics(ctx, filter)
		metricsChan <- metricsResult{m, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.GetProductPerformance(ctx, filter)
		perfChan <- perfResult{rows, err}
	}()

	mRes := <-metricsChan
	pRes := <-perfChan
	if mRes.err != nil {
		return nil, fmt.Errorf("métricas de ventas: %w", mRes.err)
	}
	if pRes.err != nil {
		return nil, fmt.Errorf("rendimiento por producto: %w", pRes.err)
	}
	metrics, perf := mRes.metrics, pRes.rows

	out := &dto.SalesAnalysisDTO{
		Metrics: dto.SalesMetricsDTO{
			TotalRevenue:      metrics.TotalRevenue.Round(2).InexactFloat64(),
			AvgQuantity:       metrics.AvgQuantity.InexactFloat64(),
			TotalTransactions: metrics.TotalTransactions,
		},
		ProductsPerformance: make([]dto.ProductPerformanceDTO, 0, len(perf)),
	}
	for _, p := range perf {
		out.ProductsPerformance = append(out.ProductsPerformance, dto.ProductPerformanceDTO{
			Name:    p.Name,
			Revenue: p.Revenue.Round(2).InexactFloat64(),
		})
	}
	return out, nil
}

// periodLabel describe el período filtrado para encabezados de reportes.
func periodLabel(f repository.SalesFilter) string {
	format := func(t *time.Time, def string) string {
		if t == nil {
			return def
		}
		return t.Format(entity.DateLayout)
	}
	return format(f.StartDate, "inicio") + " a " + format(f.EndDate, "hoy")
}
