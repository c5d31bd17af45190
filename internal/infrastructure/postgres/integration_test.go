//go:build integration
// +build integration

package postgres_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jhoicas/Ventas-api/internal/application/importer"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
	"github.com/jhoicas/Ventas-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Ventas-api/pkg/config"
)

// setupTestDB levanta PostgreSQL en un contenedor, aplica las migraciones y devuelve el pool.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("ventas"),
		tcpostgres.WithUsername("ventas"),
		tcpostgres.WithPassword("ventas"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "iniciar contenedor PostgreSQL")
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("terminar contenedor: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: connStr, MaxConns: 4})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	applied, err := postgres.Migrate(ctx, pool)
	require.NoError(t, err)
	assert.Equal(t, []string{"migrations/001_init.sql"}, applied)

	again, err := postgres.Migrate(ctx, pool)
	require.NoError(t, err)
	assert.Empty(t, again, "las migraciones no se reaplican")
	return pool
}

func day(s string) time.Time {
	t, _ := entity.ParseDate(s)
	return t
}

func TestPostgres_CRUDYCascada(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	categories := postgres.NewCategoryRepository(pool)
	products := postgres.NewProductRepository(pool)
	sales := postgres.NewSaleRepository(pool)

	c := &entity.Category{Name: "Electrónica"}
	require.NoError(t, categories.Create(ctx, c))

	p := &entity.Product{Name: "Laptop", Price: decimal.RequireFromString("1200.50"), CategoryID: c.ID}
	require.NoError(t, products.Create(ctx, p))
	assert.Equal(t, "Electrónica", p.CategoryName)

	got, err := products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("1200.5")))

	s := &entity.Sale{ProductID: p.ID, Date: day("2024-01-05"), Quantity: 2, TotalPrice: decimal.RequireFromString("2401.00")}
	require.NoError(t, sales.Create(ctx, s))
	assert.Equal(t, "Laptop", s.ProductName)

	// Llave foránea inexistente -> error de validación sobre el campo.
	err = products.Create(ctx, &entity.Product{Name: "x", Price: decimal.Zero, CategoryID: 999})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "category")

	require.NoError(t, categories.Delete(ctx, c.ID))
	gone, err := sales.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Nil(t, gone, "la venta se elimina en cascada")
	assert.ErrorIs(t, categories.Delete(ctx, c.ID), domain.ErrNotFound)
}

func TestPostgres_AnaliticaYSiembraAtomica(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	tx := postgres.NewTxRunner(pool)

	err := tx.Run(ctx, func(categories repository.CategoryRepository, products repository.ProductRepository, sales repository.SaleRepository) error {
		c := &entity.Category{ID: 1, Name: "C"}
		if _, err := categories.EnsureByID(ctx, c); err != nil {
			return err
		}
		for _, p := range []*entity.Product{
			{ID: 1, Name: "ProductA", Price: decimal.NewFromInt(10), CategoryID: 1},
			{ID: 2, Name: "ProductB", Price: decimal.NewFromInt(15), CategoryID: 1},
		} {
			if _, err := products.EnsureByID(ctx, p); err != nil {
				return err
			}
		}
		if err := sales.Create(ctx, &entity.Sale{ProductID: 1, Date: day("2024-01-05"), Quantity: 2, TotalPrice: decimal.NewFromInt(20)}); err != nil {
			return err
		}
		return sales.Create(ctx, &entity.Sale{ProductID: 2, Date: day("2024-01-10"), Quantity: 1, TotalPrice: decimal.NewFromInt(15)})
	})
	require.NoError(t, err)

	analytics := postgres.NewAnalyticsRepository(pool)
	m, err := analytics.GetSalesMetrics(ctx, repository.SalesFilter{})
	require.NoError(t, err)
	assert.Equal(t, "35", m.TotalRevenue.String())
	assert.True(t, m.AvgQuantity.Equal(decimal.RequireFromString("1.5")))
	assert.Equal(t, 2, m.TotalTransactions)

	perf, err := analytics.GetProductPerformance(ctx, repository.SalesFilter{})
	require.NoError(t, err)
	require.Len(t, perf, 2)
	assert.Equal(t, "ProductA", perf[0].Name)

	// Los extremos del rango son inclusivos.
	same := day("2024-01-05")
	m, err = analytics.GetSalesMetrics(ctx, repository.SalesFilter{StartDate: &same, EndDate: &same})
	require.NoError(t, err)
	assert.Equal(t, 1, m.TotalTransactions)
	assert.Equal(t, "20", m.TotalRevenue.String())
	end := day("2024-01-10")
	perf, err = analytics.GetProductPerformance(ctx, repository.SalesFilter{StartDate: &same, EndDate: &end})
	require.NoError(t, err)
	assert.Len(t, perf, 2)

	after := day("2025-01-01")
	m, err = analytics.GetSalesMetrics(ctx, repository.SalesFilter{StartDate: &after})
	require.NoError(t, err)
	assert.True(t, m.TotalRevenue.IsZero())
	assert.Zero(t, m.TotalTransactions)

	// La secuencia quedó alineada tras los inserts con id explícito.
	c := &entity.Category{Name: "Nueva"}
	require.NoError(t, postgres.NewCategoryRepository(pool).Create(ctx, c))
	assert.Equal(t, int64(2), c.ID)

	// Un fallo dentro de la transacción revierte todo.
	boom := errors.New("boom")
	err = tx.Run(ctx, func(categories repository.CategoryRepository, _ repository.ProductRepository, _ repository.SaleRepository) error {
		if err := categories.Create(ctx, &entity.Category{Name: "temporal"}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	found, err := postgres.NewCategoryRepository(pool).FindByName(ctx, "temporal")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestPostgres_ImportacionCSV(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	imp := importer.NewProductCSVImporter(postgres.NewTxRunner(pool), "General")

	for i := 0; i < 2; i++ {
		n, err := imp.Import(ctx, strings.NewReader("name,price,category\nWidget,9.99,Tools\n"))
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	}
	cats, err := postgres.NewCategoryRepository(pool).List(ctx)
	require.NoError(t, err)
	prods, err := postgres.NewProductRepository(pool).List(ctx)
	require.NoError(t, err)
	assert.Len(t, cats, 1)
	assert.Len(t, prods, 1)
}
