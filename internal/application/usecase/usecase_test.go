package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/application/usecase"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/infrastructure/memory"
)

type fixture struct {
	store      *memory.Store
	categories *usecase.CategoryUseCase
	products   *usecase.ProductUseCase
	sales      *usecase.SaleUseCase
	analytics  *usecase.AnalyticsUseCase
}

func newFixture() *fixture {
	s := memory.NewStore()
	return &fixture{
		store:      s,
		categories: usecase.NewCategoryUseCase(s.Categories(), usecase.UpdatePolicy{}),
		products:   usecase.NewProductUseCase(s.Products(), s.Categories(), usecase.UpdatePolicy{}),
		sales:      usecase.NewSaleUseCase(s.Sales(), s.Products(), usecase.UpdatePolicy{SupportsPartialUpdate: true}),
		analytics:  usecase.NewAnalyticsUseCase(s.Analytics(), nil),
	}
}

func ptr[T any](v T) *T { return &v }

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr), "se esperaba ValidationError, se obtuvo %v", err)
	return verr.Fields
}

func (f *fixture) category(t *testing.T, name string) int64 {
	t.Helper()
	c, err := f.categories.Create(context.Background(), dto.CreateCategoryRequest{Name: name})
	require.NoError(t, err)
	return c.ID
}

func (f *fixture) product(t *testing.T, name, price string, category int64) int64 {
	t.Helper()
	p, err := f.products.Create(context.Background(), dto.CreateProductRequest{Name: name, Price: dec(price), Category: &category})
	require.NoError(t, err)
	return p.ID
}

func (f *fixture) sale(t *testing.T, product int64, date string, qty int, total string) {
	t.Helper()
	_, err := f.sales.Create(context.Background(), dto.CreateSaleRequest{
		Product: &product, Date: date, Quantity: &qty, TotalPrice: dec(total),
	})
	require.NoError(t, err)
}

// ─── Categorías ───────────────────────────────────────────────────────────────

func TestCategory_CreateValidaNombre(t *testing.T) {
	f := newFixture()
	_, err := f.categories.Create(context.Background(), dto.CreateCategoryRequest{Name: "   "})
	assert.Contains(t, fieldErrors(t, err), "name")
}

func TestCategory_UpdateInexistente(t *testing.T) {
	f := newFixture()
	_, err := f.categories.Update(context.Background(), 99, dto.UpdateCategoryRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCategory_UpdateCompletoRequiereNombre(t *testing.T) {
	f := newFixture()
	id := f.category(t, "Hogar")
	_, err := f.categories.Update(context.Background(), id, dto.UpdateCategoryRequest{})
	assert.Equal(t, map[string]string{"name": "este campo es requerido"}, fieldErrors(t, err))
}

// ─── Productos ────────────────────────────────────────────────────────────────

func TestProduct_CreateCompletaCategoryName(t *testing.T) {
	f := newFixture()
	cat := f.category(t, "Electrónica")

	p, err := f.products.Create(context.Background(), dto.CreateProductRequest{
		Name: " Laptop ", Price: dec("1200.5"), Category: &cat, Description: "14 pulgadas",
	})
	require.NoError(t, err)
	assert.Equal(t, "Laptop", p.Name)
	assert.Equal(t, "Electrónica", p.CategoryName)
	assert.Equal(t, "1200.50", p.Price.Decimal().StringFixed(2))
}

func TestProduct_CreateErroresDeCampo(t *testing.T) {
	f := newFixture()
	_, err := f.products.Create(context.Background(), dto.CreateProductRequest{})
	fields := fieldErrors(t, err)
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "price")
	assert.Contains(t, fields, "category")
}

func TestProduct_CreateCategoriaInexistente(t *testing.T) {
	f := newFixture()
	_, err := f.products.Create(context.Background(), dto.CreateProductRequest{Name: "x", Price: dec("1"), Category: ptr(int64(5))})
	assert.Contains(t, fieldErrors(t, err)["category"], "\"5\"")
}

func TestProduct_CreatePrecioConTresDecimales(t *testing.T) {
	f := newFixture()
	cat := f.category(t, "C")
	_, err := f.products.Create(context.Background(), dto.CreateProductRequest{Name: "x", Price: dec("1.005"), Category: &cat})
	assert.Contains(t, fieldErrors(t, err), "price")
}

func TestProduct_UpdateInexistenteAntesQueValidar(t *testing.T) {
	f := newFixture()
	_, err := f.products.Update(context.Background(), 404, dto.UpdateProductRequest{Name: ptr("")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProduct_UpdateCompleto(t *testing.T) {
	f := newFixture()
	a := f.category(t, "A")
	b := f.category(t, "B")
	id := f.product(t, "Mesa", "10", a)

	_, err := f.products.Update(context.Background(), id, dto.UpdateProductRequest{Name: ptr("Mesa")})
	fields := fieldErrors(t, err)
	assert.Contains(t, fields, "price")
	assert.Contains(t, fields, "category")

	p, err := f.products.Update(context.Background(), id, dto.UpdateProductRequest{Name: ptr("Mesa grande"), Price: dec("20"), Category: &b})
	require.NoError(t, err)
	assert.Equal(t, "Mesa grande", p.Name)
	assert.Equal(t, "B", p.CategoryName)
}

func TestProduct_DeleteInexistente(t *testing.T) {
	f := newFixture()
	assert.ErrorIs(t, f.products.Delete(context.Background(), 1), domain.ErrNotFound)
}

// ─── Ventas ───────────────────────────────────────────────────────────────────

func TestSale_CreateValidaciones(t *testing.T) {
	f := newFixture()
	cat := f.category(t, "C")
	prod := f.product(t, "P", "1", cat)

	_, err := f.sales.Create(context.Background(), dto.CreateSaleRequest{
		Product: &prod, Date: "05/01/2024", Quantity: ptr(0), TotalPrice: dec("1"),
	})
	fields := fieldErrors(t, err)
	assert.Contains(t, fields, "date")
	assert.Contains(t, fields, "quantity")

	_, err = f.sales.Create(context.Background(), dto.CreateSaleRequest{
		Product: ptr(int64(77)), Date: "2024-01-05", Quantity: ptr(1), TotalPrice: dec("1"),
	})
	assert.Contains(t, fieldErrors(t, err), "product")
}

func TestSale_CantidadFueraDeRango(t *testing.T) {
	f := newFixture()
	cat := f.category(t, "C")
	prod := f.product(t, "P", "1", cat)

	_, err := f.sales.Create(context.Background(), dto.CreateSaleRequest{
		Product: &prod, Date: "2024-01-05", Quantity: ptr(3000000000), TotalPrice: dec("1"),
	})
	assert.Contains(t, fieldErrors(t, err)["quantity"], "2147483647")

	f.sale(t, prod, "2024-01-05", 2147483647, "1.00")
	_, err = f.sales.Update(context.Background(), 1, dto.UpdateSaleRequest{Quantity: ptr(2147483648)})
	assert.Contains(t, fieldErrors(t, err), "quantity")
}

func TestSale_UpdateParcial(t *testing.T) {
	f := newFixture()
	cat := f.category(t, "C")
	prod := f.product(t, "P", "1", cat)
	f.sale(t, prod, "2024-01-05", 2, "2.00")

	s, err := f.sales.Update(context.Background(), 1, dto.UpdateSaleRequest{Quantity: ptr(5)})
	require.NoError(t, err)
	assert.Equal(t, 5, s.Quantity)
	assert.Equal(t, "2024-01-05", s.Date)
	assert.Equal(t, "P", s.ProductName)
}

// ─── Analítica ────────────────────────────────────────────────────────────────

func TestAnalytics_EjemploDosProductos(t *testing.T) {
	f := newFixture()
	cat := f.category(t, "C")
	a := f.product(t, "ProductA", "10", cat)
	b := f.product(t, "ProductB", "15", cat)
	f.sale(t, a, "2024-01-05", 2, "20.00")
	f.sale(t, b, "2024-01-10", 1, "15.00")

	out, err := f.analytics.GetSalesAnalysis(context.Background(), dto.SalesAnalysisRequest{})
	require.NoError(t, err)
	assert.Equal(t, dto.SalesMetricsDTO{TotalRevenue: 35, AvgQuantity: 1.5, TotalTransactions: 2}, out.Metrics)
	assert.Equal(t, []dto.ProductPerformanceDTO{{Name: "ProductA", Revenue: 20}, {Name: "ProductB", Revenue: 15}}, out.ProductsPerformance)
}

func TestAnalytics_RangoPosteriorDevuelveCeros(t *testing.T) {
	f := newFixture()
	cat := f.category(t, "C")
	a := f.product(t, "ProductA", "10", cat)
	f.sale(t, a, "2024-01-05", 2, "20.00")

	out, err := f.analytics.GetSalesAnalysis(context.Background(), dto.SalesAnalysisRequest{StartDate: "2025-01-01"})
	require.NoError(t, err)
	assert.Equal(t, dto.SalesMetricsDTO{}, out.Metrics)
	assert.NotNil(t, out.ProductsPerformance)
	assert.Empty(t, out.ProductsPerformance)
}

func TestAnalytics_RangoIncluyeAmbosExtremos(t *testing.T) {
	f := newFixture()
	cat := f.category(t, "C")
	a := f.product(t, "ProductA", "10", cat)
	f.sale(t, a, "2024-01-04", 1, "10.00")
	f.sale(t, a, "2024-01-05", 2, "20.00")
	f.sale(t, a, "2024-01-06", 3, "30.00")

	out, err := f.analytics.GetSalesAnalysis(context.Background(), dto.SalesAnalysisRequest{StartDate: "2024-01-05", EndDate: "2024-01-05"})
	require.NoError(t, err)
	assert.Equal(t, dto.SalesMetricsDTO{TotalRevenue: 20, AvgQuantity: 2, TotalTransactions: 1}, out.Metrics)

	out, err = f.analytics.GetSalesAnalysis(context.Background(), dto.SalesAnalysisRequest{StartDate: "2024-01-04", EndDate: "2024-01-06"})
	require.NoError(t, err)
	assert.Equal(t, 3, out.Metrics.TotalTransactions)
}

func TestAnalytics_InicioMayorQueFinNoEsError(t *testing.T) {
	f := newFixture()
	out, err := f.analytics.GetSalesAnalysis(context.Background(), dto.SalesAnalysisRequest{StartDate: "2024-02-01", EndDate: "2024-01-01"})
	require.NoError(t, err)
	assert.Zero(t, out.Metrics.TotalTransactions)
}

func TestAnalytics_FiltrosMalFormados(t *testing.T) {
	f := newFixture()
	_, err := f.analytics.GetSalesAnalysis(context.Background(), dto.SalesAnalysisRequest{StartDate: "ayer", Category: "abc"})
	fields := fieldErrors(t, err)
	assert.Contains(t, fields, "start_date")
	assert.Contains(t, fields, "category")
}

func TestAnalytics_ReporteSinGenerador(t *testing.T) {
	f := newFixture()
	_, err := f.analytics.GetSalesReport(context.Background(), dto.SalesAnalysisRequest{})
	assert.Error(t, err)
}
