package importer_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventas-api/internal/application/importer"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/infrastructure/memory"
)

func newImporter(store *memory.Store) *importer.ProductCSVImporter {
	return importer.NewProductCSVImporter(store.TxRunner(), "")
}

func TestImport_CreaCategoriaYProducto(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	n, err := newImporter(store).Import(ctx, strings.NewReader("name,price,category\nWidget,9.99,Tools\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	products, _ := store.Products().List(ctx)
	require.Len(t, products, 1)
	assert.Equal(t, "Widget", products[0].Name)
	assert.Equal(t, "9.99", products[0].Price.StringFixed(2))
	assert.Equal(t, "Tools", products[0].CategoryName)
}

func TestImport_Idempotente(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	imp := newImporter(store)
	csv := "name,price,category\nWidget,9.99,Tools\nGadget,5,Tools\nBolt,0.5,\n"

	_, err := imp.Import(ctx, strings.NewReader(csv))
	require.NoError(t, err)
	firstProducts, _ := store.Products().List(ctx)
	firstCategories, _ := store.Categories().List(ctx)

	_, err = imp.Import(ctx, strings.NewReader(csv))
	require.NoError(t, err)
	secondProducts, _ := store.Products().List(ctx)
	secondCategories, _ := store.Categories().List(ctx)

	assert.Equal(t, firstProducts, secondProducts)
	assert.Equal(t, firstCategories, secondCategories)
	require.Len(t, secondCategories, 2)
	assert.Equal(t, "General", secondCategories[1].Name, "sin categoría se usa la de respaldo")
}

func TestImport_MismaFilaDosVeces(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	n, err := newImporter(store).Import(ctx, strings.NewReader("name,price,category\nWidget,9.99,Tools\nWidget,9.99,Tools\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	products, _ := store.Products().List(ctx)
	categories, _ := store.Categories().List(ctx)
	assert.Len(t, products, 1)
	assert.Len(t, categories, 1)
}

func TestImport_ActualizaPrecioExistente(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	cat := &entity.Category{Name: "Tools"}
	require.NoError(t, store.Categories().Create(ctx, cat))
	p := &entity.Product{Name: "Widget", Price: mustDecimal(t, "1.00"), CategoryID: cat.ID, Description: "original"}
	require.NoError(t, store.Products().Create(ctx, p))

	_, err := newImporter(store).Import(ctx, strings.NewReader("Name , PRICE\nWidget,2.5\n"))
	require.NoError(t, err)

	got, _ := store.Products().GetByID(ctx, p.ID)
	require.NotNil(t, got)
	assert.Equal(t, "2.50", got.Price.StringFixed(2))
	assert.Equal(t, "General", got.CategoryName)
	assert.Equal(t, "original", got.Description, "sin columna description se conserva la existente")
}

func TestImport_ToleraBOM(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	n, err := newImporter(store).Import(ctx, strings.NewReader("\ufeffname,price\nWidget,1\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestImport_Errores(t *testing.T) {
	cases := map[string]string{
		"sin columna price": "name,category\nWidget,Tools\n",
		"precio inválido":   "name,price\nWidget,abc\n",
		"nombre vacío":      "name,price\n,1\n",
		"precio desborda":   "name,price\nWidget,100000000\n",
		"archivo vacío":     "",
		"utf8 inválido":     "name,price\nWid\xffget,1\n",
	}
	for name, csv := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := newImporter(memory.NewStore()).Import(context.Background(), strings.NewReader(csv))
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrImport))
		})
	}
}

func TestImport_RevierteTodoAnteUnaFilaInvalida(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	_, err := newImporter(store).Import(ctx, strings.NewReader("name,price,category\nWidget,9.99,Tools\nGadget,xx,Tools\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fila 3")

	products, _ := store.Products().List(ctx)
	categories, _ := store.Categories().List(ctx)
	assert.Empty(t, products)
	assert.Empty(t, categories)
}
