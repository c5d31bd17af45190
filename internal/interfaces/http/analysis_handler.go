package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/application/usecase"
)

// AnalysisHandler maneja los endpoints de analítica de ventas.
type AnalysisHandler struct {
	uc *usecase.AnalyticsUseCase
}

// NewAnalysisHandler construye el handler.
func NewAnalysisHandler(uc *usecase.AnalyticsUseCase) *AnalysisHandler {
	return &AnalysisHandler{uc: uc}
}

// GetSalesAnalysis godoc
// @Summary      Métricas de ventas y ranking de ingresos por producto
// @Description  Filtros opcionales combinados con AND. Un rango invertido no es error: devuelve ceros.
// @Tags         analysis
// @Produce      json
// @Param        start_date  query  string  false  "Inicio del período (YYYY-MM-DD, inclusivo)"
// @Param        end_date    query  string  false  "Fin del período (YYYY-MM-DD, inclusivo)"
// @Param        category    query  int     false  "ID de categoría"
// @Success      200  {object}  dto.SalesAnalysisDTO
// @Failure      400  {object}  map[string]string
// @Router       /api/analysis/ [get]
func (h *AnalysisHandler) GetSalesAnalysis(c *fiber.Ctx) error {
	var req dto.SalesAnalysisRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "parámetros de consulta inválidos"})
	}
	out, err := h.uc.GetSalesAnalysis(c.Context(), req)
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}

// GetSalesReportPDF godoc
// @Summary      Reporte PDF del análisis de ventas
// @Tags         analysis
// @Produce      application/pdf
// @Param        start_date  query  string  false  "Inicio del período (YYYY-MM-DD)"
// @Param        end_date    query  string  false  "Fin del período (YYYY-MM-DD)"
// @Param        category    query  int     false  "ID de categoría"
// @Success      200  {file}  binary
// @Failure      400  {object}  map[string]string
// @Router       /api/analysis/report.pdf [get]
func (h *AnalysisHandler) GetSalesReportPDF(c *fiber.Ctx) error {
	var req dto.SalesAnalysisRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "parámetros de consulta inválidos"})
	}
	pdf, err := h.uc.GetSalesReport(c.Context(), req)
	if err != nil {
		return writeError(c, err, "")
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="analisis-ventas.pdf"`)
	return c.Send(pdf)
}
