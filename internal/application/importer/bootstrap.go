package importer

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

// SeedFiles rutas de los CSV de carga inicial.
type SeedFiles struct {
	Categories string // id,name
	Products   string // id,name,price,category_id[,description]
	Sales      string // [id,]product_id,date,quantity,total_price
}

// SeedReport filas creadas por entidad (las existentes no cuentan).
type SeedReport struct {
	Categories int
	Products   int
	Sales      int
}

// BootstrapSeeder carga los datos iniciales. Categorías y productos se crean por id
// solo si no existen; las ventas se crean por id cuando el archivo trae la columna id.
// Una referencia inexistente aborta y revierte toda la siembra.
type BootstrapSeeder struct {
	tx   TxRunner
	open func(path string) (io.ReadCloser, error)
}

// NewBootstrapSeeder construye el sembrador sobre el sistema de archivos.
func NewBootstrapSeeder(tx TxRunner) *BootstrapSeeder {
	return &BootstrapSeeder{
		tx:   tx,
		open: func(path string) (io.ReadCloser, error) { return os.Open(path) },
	}
}

// Seed lee los tres archivos y los aplica en una sola transacción.
func (s *BootstrapSeeder) Seed(ctx context.Context, files SeedFiles) (SeedReport, error) {
	categories, err := s.load(files.Categories, "id", "name")
	if err != nil {
		return SeedReport{}, err
	}
	products, err := s.load(files.Products, "id", "name", "price", "category_id")
	if err != nil {
		return SeedReport{}, err
	}
	sales, err := s.load(files.Sales, "product_id", "date", "quantity", "total_price")
	if err != nil {
		return SeedReport{}, err
	}

	var report SeedReport
	err = s.tx.Run(ctx, func(categoryRepo repository.CategoryRepository, productRepo repository.ProductRepository, saleRepo repository.SaleRepository) error {
		report = SeedReport{}
		for i, rec := range categories.rows {
			created, err := seedCategory(ctx, categoryRepo, categories, rec)
			if err != nil {
				return fmt.Errorf("%s fila %d: %w", files.Categories, i+2, err)
			}
			if created {
				report.Categories++
			}
		}
		for i, rec := range products.rows {
			created, err := seedProduct(ctx, categoryRepo, productRepo, products, rec)
			if err != nil {
				return fmt.Errorf("%s fila %d: %w", files.Products, i+2, err)
			}
			if created {
				report.Products++
			}
		}
		for i, rec := range sales.rows {
			created, err := seedSale(ctx, productRepo, saleRepo, sales, rec)
			if err != nil {
				return fmt.Errorf("%s fila %d: %w", files.Sales, i+2, err)
			}
			if created {
				report.Sales++
			}
		}
		return nil
	})
	if err != nil {
		return SeedReport{}, fmt.Errorf("siembra inicial: %w", err)
	}
	return report, nil
}

func (s *BootstrapSeeder) load(path string, required ...string) (*table, error) {
	f, err := s.open(path)
	if err != nil {
		return nil, fmt.Errorf("abrir %s: %w", path, err)
	}
	defer f.Close()

	t, err := readTable(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := t.require(required...); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

func seedCategory(ctx context.Context, repo repository.CategoryRepository, t *table, rec []string) (bool, error) {
	id, err := parseID(t, rec, "id")
	if err != nil {
		return false, err
	}
	return repo.EnsureByID(ctx, &entity.Category{ID: id, Name: t.value(rec, "name")})
}

func seedProduct(ctx context.Context, categoryRepo repository.CategoryRepository, repo repository.ProductRepository, t *table, rec []string) (bool, error) {
	id, err := parseID(t, rec, "id")
	if err != nil {
		return false, err
	}
	categoryID, err := parseID(t, rec, "category_id")
	if err != nil {
		return false, err
	}
	price, err := decimal.NewFromString(t.value(rec, "price"))
	if err != nil {
		return false, fmt.Errorf("price inválido %q", t.value(rec, "price"))
	}
	category, err := categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return false, err
	}
	if category == nil {
		return false, fmt.Errorf("categoría %d: %w", categoryID, domain.ErrNotFound)
	}
	return repo.EnsureByID(ctx, &entity.Product{
		ID:          id,
		Name:        t.value(rec, "name"),
		Price:       price.Round(2),
		CategoryID:  categoryID,
		Description: t.value(rec, "description"),
	})
}

func seedSale(ctx context.Context, productRepo repository.ProductRepository, repo repository.SaleRepository, t *table, rec []string) (bool, error) {
	productID, err := parseID(t, rec, "product_id")
	if err != nil {
		return false, err
	}
	product, err := productRepo.GetByID(ctx, productID)
	if err != nil {
		return false, err
	}
	if product == nil {
		return false, fmt.Errorf("producto %d: %w", productID, domain.ErrNotFound)
	}
	date, err := entity.ParseDate(t.value(rec, "date"))
	if err != nil {
		return false, fmt.Errorf("date inválido %q", t.value(rec, "date"))
	}
	quantity, err := strconv.Atoi(t.value(rec, "quantity"))
	if err != nil || quantity <= 0 || quantity > entity.MaxQuantity {
		return false, fmt.Errorf("quantity inválido %q", t.value(rec, "quantity"))
	}
	total, err := decimal.NewFromString(t.value(rec, "total_price"))
	if err != nil {
		return false, fmt.Errorf("total_price inválido %q", t.value(rec, "total_price"))
	}
	sale := &entity.Sale{
		ProductID:  productID,
		Date:       date,
		Quantity:   quantity,
		TotalPrice: total.Round(2),
	}

	if !t.has("id") {
		return true, repo.Create(ctx, sale)
	}
	id, err := parseID(t, rec, "id")
	if err != nil {
		return false, err
	}
	sale.ID = id
	return repo.EnsureByID(ctx, sale)
}

func parseID(t *table, rec []string, col string) (int64, error) {
	raw := t.value(rec, col)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s inválido %q", col, raw)
	}
	return id, nil
}
