package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ventas-api/internal/application/importer"
	"github.com/jhoicas/Ventas-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CategoryUC      *usecase.CategoryUseCase
	ProductUC       *usecase.ProductUseCase
	SaleUC          *usecase.SaleUseCase
	AnalyticsUC     *usecase.AnalyticsUseCase
	ProductImporter *importer.ProductCSVImporter
	MaxUploadBytes  int64
}

// Router registra las rutas de la API bajo /api. La barra final es opcional.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	categories := api.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	importHandler := NewImportHandler(deps.ProductImporter, deps.MaxUploadBytes)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	// Antes de /:id para que "upload-csv" no se interprete como id.
	products.Post("/upload-csv", importHandler.UploadCSV)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	sales := api.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	sales.Get("/", saleHandler.List)
	sales.Post("/", saleHandler.Create)
	sales.Get("/:id", saleHandler.GetByID)
	sales.Put("/:id", saleHandler.Update)
	sales.Delete("/:id", saleHandler.Delete)

	analysis := api.Group("/analysis")
	analysisHandler := NewAnalysisHandler(deps.AnalyticsUC)
	analysis.Get("/", analysisHandler.GetSalesAnalysis)
	analysis.Get("/report.pdf", analysisHandler.GetSalesReportPDF)
}
