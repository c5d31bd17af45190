// Package storage selecciona el almacén (PostgreSQL o memoria) según DB_DRIVER
// y expone los puertos de persistencia ya construidos.
package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/Ventas-api/internal/application/importer"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
	"github.com/jhoicas/Ventas-api/internal/infrastructure/memory"
	"github.com/jhoicas/Ventas-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Ventas-api/pkg/config"
	"github.com/jhoicas/Ventas-api/pkg/logger"
)

// Backend agrupa los repositorios y el runner transaccional de un almacén.
type Backend struct {
	Driver     string
	Categories repository.CategoryRepository
	Products   repository.ProductRepository
	Sales      repository.SaleRepository
	Analytics  repository.AnalyticsRepository
	Tx         importer.TxRunner

	close func()
}

// Close libera las conexiones del almacén.
func (b *Backend) Close() {
	if b.close != nil {
		b.close()
	}
}

// Options controla la apertura del almacén.
type Options struct {
	// Migrate aplica las migraciones pendientes al abrir PostgreSQL.
	Migrate bool
}

// Open construye el backend configurado.
func Open(ctx context.Context, cfg config.DBConfig, opts Options, log *logger.Logger) (*Backend, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		store := memory.NewStore()
		log.Warn().Msg("usando almacén en memoria: los datos se pierden al reiniciar")
		return &Backend{
			Driver:     config.DriverMemory,
			Categories: store.Categories(),
			Products:   store.Products(),
			Sales:      store.Sales(),
			Analytics:  store.Analytics(),
			Tx:         store.TxRunner(),
		}, nil

	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if opts.Migrate {
			applied, err := postgres.Migrate(ctx, pool)
			if err != nil {
				pool.Close()
				return nil, fmt.Errorf("migraciones: %w", err)
			}
			log.Info().Strs("aplicadas", applied).Msg("migraciones al día")
		}
		return &Backend{
			Driver:     config.DriverPostgres,
			Categories: postgres.NewCategoryRepository(pool),
			Products:   postgres.NewProductRepository(pool),
			Sales:      postgres.NewSaleRepository(pool),
			Analytics:  postgres.NewAnalyticsRepository(pool),
			Tx:         postgres.NewTxRunner(pool),
			close:      pool.Close,
		}, nil

	default:
		return nil, fmt.Errorf("DB_DRIVER no soportado: %q", cfg.Driver)
	}
}
