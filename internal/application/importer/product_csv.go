package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ventas-api/internal/application/validation"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

// DefaultFallbackCategory categoría usada cuando la fila no trae una.
const DefaultFallbackCategory = "General"

// ProductCSVImporter hace upsert de productos desde un CSV con columnas
// name, price y opcionalmente category y description.
type ProductCSVImporter struct {
	tx               TxRunner
	fallbackCategory string
}

// NewProductCSVImporter construye el importador. fallbackCategory vacío usa "General".
func NewProductCSVImporter(tx TxRunner, fallbackCategory string) *ProductCSVImporter {
	if strings.TrimSpace(fallbackCategory) == "" {
		fallbackCategory = DefaultFallbackCategory
	}
	return &ProductCSVImporter{tx: tx, fallbackCategory: strings.TrimSpace(fallbackCategory)}
}

// Import procesa todo el archivo en una sola transacción y devuelve las filas procesadas.
// Cualquier fila inválida revierte la importación completa; el error envuelve domain.ErrImport.
func (imp *ProductCSVImporter) Import(ctx context.Context, r io.Reader) (int, error) {
	t, err := readTable(r)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrImport, err)
	}
	if err := t.require("name", "price"); err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrImport, err)
	}

	count := 0
	err = imp.tx.Run(ctx, func(categories repository.CategoryRepository, products repository.ProductRepository, _ repository.SaleRepository) error {
		count = 0
		for i, rec := range t.rows {
			line := i + 2 // encabezado = línea 1
			if err := imp.upsertRow(ctx, categories, products, t, rec); err != nil {
				return fmt.Errorf("fila %d: %w", line, err)
			}
			count++
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrImport) {
			return 0, err
		}
		return 0, fmt.Errorf("%w: %w", domain.ErrImport, err)
	}
	return count, nil
}

func (imp *ProductCSVImporter) upsertRow(
	ctx context.Context,
	categories repository.CategoryRepository,
	products repository.ProductRepository,
	t *table,
	rec []string,
) error {
	name := t.value(rec, "name")
	if name == "" {
		return errors.New("name vacío")
	}
	price, err := decimal.NewFromString(t.value(rec, "price"))
	if err != nil {
		return fmt.Errorf("price inválido %q", t.value(rec, "price"))
	}
	price = price.Round(2)
	verr := &domain.ValidationError{}
	if !validation.Money(verr, "price", price) {
		return fmt.Errorf("price %s: %s", price.StringFixed(2), verr.Fields["price"])
	}

	categoryName := t.value(rec, "category")
	if categoryName == "" {
		categoryName = imp.fallbackCategory
	}
	category, err := categories.FindByName(ctx, categoryName)
	if err != nil {
		return fmt.Errorf("buscar categoría %q: %w", categoryName, err)
	}
	if category == nil {
		category = &entity.Category{Name: categoryName}
		if err := categories.Create(ctx, category); err != nil {
			return fmt.Errorf("crear categoría %q: %w", categoryName, err)
		}
	}

	product, err := products.FindByName(ctx, name)
	if err != nil {
		return fmt.Errorf("buscar producto %q: %w", name, err)
	}
	if product == nil {
		product = &entity.Product{
			Name:        name,
			Price:       price,
			CategoryID:  category.ID,
			Description: t.value(rec, "description"),
		}
		if err := products.Create(ctx, product); err != nil {
			return fmt.Errorf("crear producto %q: %w", name, err)
		}
		return nil
	}

	product.Price = price
	product.CategoryID = category.ID
	if t.has("description") {
		product.Description = t.value(rec, "description")
	}
	if err := products.Update(ctx, product); err != nil {
		return fmt.Errorf("actualizar producto %q: %w", name, err)
	}
	return nil
}
