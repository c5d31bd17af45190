package dto

import "time"

// SalesAnalysisRequest parámetros de GET /api/analysis/ (todos opcionales, combinados con AND).
type SalesAnalysisRequest struct {
	StartDate string `query:"start_date"` // YYYY-MM-DD, inclusivo
	EndDate   string `query:"end_date"`   // YYYY-MM-DD, inclusivo
	Category  string `query:"category"`   // id de categoría
}

// SalesMetricsDTO métricas agregadas; nunca null, cero si no hay ventas.
type SalesMetricsDTO struct {
	TotalRevenue      float64 `json:"total_revenue"`
	AvgQuantity       float64 `json:"avg_quantity"`
	TotalTransactions int     `json:"total_transactions"`
}

// ProductPerformanceDTO ingreso por nombre de producto (formato para gráficos).
type ProductPerformanceDTO struct {
	Name    string  `json:"name"`
	Revenue float64 `json:"revenue"`
}

// SalesAnalysisDTO respuesta de la analítica de ventas.
type SalesAnalysisDTO struct {
	Metrics             SalesMetricsDTO         `json:"metrics"`
	ProductsPerformance []ProductPerformanceDTO `json:"products_performance"`
}

// SalesReportDTO datos del reporte imprimible del análisis.
type SalesReportDTO struct {
	Title       string
	Period      string // "2024-01-01 a 2024-01-31"
	CategoryID  *int64
	GeneratedAt time.Time
	Analysis    SalesAnalysisDTO
}
