package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/swaggo/swag"

	"github.com/jhoicas/Ventas-api/docs"
	"github.com/jhoicas/Ventas-api/internal/application/importer"
	"github.com/jhoicas/Ventas-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/Ventas-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Ventas-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/Ventas-api/internal/interfaces/http"
	"github.com/jhoicas/Ventas-api/pkg/config"
	"github.com/jhoicas/Ventas-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	backend, err := storage.Open(ctx, cfg.DB, storage.Options{Migrate: cfg.DB.AutoMigrate}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacén")
	}
	defer backend.Close()

	// Siembra opcional: un fallo se registra y el servidor sigue arrancando.
	if cfg.Seed.OnStart {
		seedOnStart(ctx, log, backend, cfg.Seed)
	}

	categoryUC := usecase.NewCategoryUseCase(backend.Categories, usecase.UpdatePolicy{SupportsPartialUpdate: cfg.Update.PartialCategories})
	productUC := usecase.NewProductUseCase(backend.Products, backend.Categories, usecase.UpdatePolicy{SupportsPartialUpdate: cfg.Update.PartialProducts})
	saleUC := usecase.NewSaleUseCase(backend.Sales, backend.Products, usecase.UpdatePolicy{SupportsPartialUpdate: cfg.Update.PartialSales})

	// PDF: reporte imprimible del análisis de ventas
	reportGenerator := infrapdf.NewMarotoReportGenerator(cfg.App.Name)
	analyticsUC := usecase.NewAnalyticsUseCase(backend.Analytics, reportGenerator)
	productImporter := importer.NewProductCSVImporter(backend.Tx, cfg.Import.FallbackCategory)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		// Margen para las cabeceras multipart sobre el tamaño máximo del CSV.
		BodyLimit:    cfg.Import.MaxUploadBytes + 64<<10,
		ErrorHandler: httpRouter.NewErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestID())
	app.Use(httpRouter.RequestLogger(log))
	app.Use(httpRouter.CORS(cfg.HTTP.CORSAllowOrigins))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Get("/docs/doc.json", func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
		if err != nil {
			return err
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.SendString(doc)
	})
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Ventas API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger.json no encontrado, /docs deshabilitado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CategoryUC:      categoryUC,
		ProductUC:       productUC,
		SaleUC:          saleUC,
		AnalyticsUC:     analyticsUC,
		ProductImporter: productImporter,
		MaxUploadBytes:  int64(cfg.Import.MaxUploadBytes),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func seedOnStart(ctx context.Context, log *logger.Logger, backend *storage.Backend, cfg config.SeedConfig) {
	report, err := importer.NewBootstrapSeeder(backend.Tx).Seed(ctx, importer.SeedFiles{
		Categories: cfg.CategoriesPath,
		Products:   cfg.ProductsPath,
		Sales:      cfg.SalesPath,
	})
	if err != nil {
		log.Error().Err(err).Msg("siembra inicial fallida; se continúa sin datos de arranque")
		return
	}
	log.Info().
		Int("categories", report.Categories).
		Int("products", report.Products).
		Int("sales", report.Sales).
		Msg("siembra inicial completada")
}
