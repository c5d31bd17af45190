package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

func day(s string) time.Time {
	t, _ := entity.ParseDate(s)
	return t
}

// seed crea una categoría con n productos y m ventas por producto.
func seed(t *testing.T, s *Store, name string, n, m int) *entity.Category {
	t.Helper()
	ctx := context.Background()
	c := &entity.Category{Name: name}
	require.NoError(t, s.Categories().Create(ctx, c))
	for i := 0; i < n; i++ {
		p := &entity.Product{Name: name + "-p", Price: decimal.NewFromInt(10), CategoryID: c.ID}
		require.NoError(t, s.Products().Create(ctx, p))
		for j := 0; j < m; j++ {
			require.NoError(t, s.Sales().Create(ctx, &entity.Sale{
				ProductID: p.ID, Date: day("2024-01-01"), Quantity: 1, TotalPrice: decimal.NewFromInt(10),
			}))
		}
	}
	return c
}

func TestCategoryDelete_Cascada(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	target := seed(t, s, "A", 3, 2)
	seed(t, s, "B", 1, 1)

	require.NoError(t, s.Categories().Delete(ctx, target.ID))

	cats, _ := s.Categories().List(ctx)
	prods, _ := s.Products().List(ctx)
	sales, _ := s.Sales().List(ctx)
	// Se eliminan 1 categoría + 3 productos + 6 ventas; queda solo B.
	assert.Len(t, cats, 1)
	assert.Len(t, prods, 1)
	assert.Len(t, sales, 1)

	assert.True(t, errors.Is(s.Categories().Delete(ctx, target.ID), domain.ErrNotFound))
}

func TestProductCreate_CategoriaInexistente(t *testing.T) {
	err := NewStore().Products().Create(context.Background(), &entity.Product{Name: "x", CategoryID: 42})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "category")
}

func TestSaleCreate_CantidadPositiva(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seed(t, s, "A", 1, 0)

	err := s.Sales().Create(ctx, &entity.Sale{ProductID: 1, Date: day("2024-01-01"), Quantity: 0})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestSaleCreate_CantidadDentroDeInteger(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seed(t, s, "A", 1, 0)

	err := s.Sales().Create(ctx, &entity.Sale{ProductID: 1, Date: day("2024-01-01"), Quantity: entity.MaxQuantity + 1})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "quantity")

	assert.NoError(t, s.Sales().Create(ctx, &entity.Sale{ProductID: 1, Date: day("2024-01-01"), Quantity: entity.MaxQuantity}))
}

func TestList_Orden(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	c := &entity.Category{Name: "C"}
	require.NoError(t, s.Categories().Create(ctx, c))
	for _, name := range []string{"Zeta", "Alfa", "Beta"} {
		require.NoError(t, s.Products().Create(ctx, &entity.Product{Name: name, CategoryID: c.ID}))
	}
	prods, _ := s.Products().List(ctx)
	assert.Equal(t, []string{"Alfa", "Beta", "Zeta"}, []string{prods[0].Name, prods[1].Name, prods[2].Name})

	for _, d := range []string{"2024-01-02", "2024-03-01", "2024-02-01"} {
		require.NoError(t, s.Sales().Create(ctx, &entity.Sale{ProductID: 1, Date: day(d), Quantity: 1}))
	}
	sales, _ := s.Sales().List(ctx)
	assert.Equal(t, "2024-03-01", sales[0].Date.Format(entity.DateLayout))
	assert.Equal(t, "2024-01-02", sales[2].Date.Format(entity.DateLayout))
}

func TestTxRunner_RevierteAnteError(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	boom := errors.New("boom")

	err := s.TxRunner().Run(ctx, func(c repository.CategoryRepository, _ repository.ProductRepository, _ repository.SaleRepository) error {
		require.NoError(t, c.Create(ctx, &entity.Category{Name: "temporal"}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	cats, _ := s.Categories().List(ctx)
	assert.Empty(t, cats)

	// El contador de ids también se restaura.
	c := &entity.Category{Name: "real"}
	require.NoError(t, s.Categories().Create(ctx, c))
	assert.Equal(t, int64(1), c.ID)
}

func TestEnsureByID_AvanzaSecuencia(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	created, err := s.Categories().EnsureByID(ctx, &entity.Category{ID: 7, Name: "siete"})
	require.NoError(t, err)
	assert.True(t, created)

	created, err = s.Categories().EnsureByID(ctx, &entity.Category{ID: 7, Name: "otro"})
	require.NoError(t, err)
	assert.False(t, created)

	c := &entity.Category{Name: "nueva"}
	require.NoError(t, s.Categories().Create(ctx, c))
	assert.Equal(t, int64(8), c.ID)
}

func TestAnalytics_FiltroPorFechaYCategoria(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	a := seed(t, s, "A", 1, 0)
	b := seed(t, s, "B", 1, 0)
	require.NoError(t, s.Sales().Create(ctx, &entity.Sale{ProductID: 1, Date: day("2024-01-05"), Quantity: 2, TotalPrice: decimal.NewFromInt(20)}))
	require.NoError(t, s.Sales().Create(ctx, &entity.Sale{ProductID: 2, Date: day("2024-01-10"), Quantity: 1, TotalPrice: decimal.NewFromInt(15)}))

	start, end := day("2024-01-06"), day("2024-01-31")
	m, err := s.Analytics().GetSalesMetrics(ctx, repository.SalesFilter{StartDate: &start, EndDate: &end})
	require.NoError(t, err)
	assert.Equal(t, 1, m.TotalTransactions)

	m, err = s.Analytics().GetSalesMetrics(ctx, repository.SalesFilter{CategoryID: &a.ID})
	require.NoError(t, err)
	assert.Equal(t, "20", m.TotalRevenue.String())

	perf, err := s.Analytics().GetProductPerformance(ctx, repository.SalesFilter{CategoryID: &b.ID, StartDate: &end})
	require.NoError(t, err)
	assert.NotNil(t, perf)
	assert.Empty(t, perf)
}
