package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Ventas-api/internal/application/importer"
)

var (
	// Seed flags
	seedCategories string
	seedProducts   string
	seedSales      string
)

// seedCmd carga inicial de datos
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Carga inicial desde CSV",
	Long: `Carga categorías, productos y ventas desde CSV. Categorías y productos se crean por id
solo si no existen; una referencia inexistente revierte toda la carga.

Ejemplos:
  ventasctl seed                                   # rutas SEED_*_PATH (../data/*.csv)
  ventasctl seed --sales ./data/sales-2024.csv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSeed(cmd)
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().StringVar(&seedCategories, "categories", "", "CSV de categorías (id,name)")
	seedCmd.Flags().StringVar(&seedProducts, "products", "", "CSV de productos (id,name,price,category_id)")
	seedCmd.Flags().StringVar(&seedSales, "sales", "", "CSV de ventas ([id,]product_id,date,quantity,total_price)")
}

func runSeed(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	files := importer.SeedFiles{
		Categories: orDefault(seedCategories, cfg.Seed.CategoriesPath),
		Products:   orDefault(seedProducts, cfg.Seed.ProductsPath),
		Sales:      orDefault(seedSales, cfg.Seed.SalesPath),
	}

	ctx := context.Background()
	backend, err := openBackend(ctx, cfg, cfg.DB.AutoMigrate)
	if err != nil {
		return err
	}
	defer backend.Close()

	report, err := importer.NewBootstrapSeeder(backend.Tx).Seed(ctx, files)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Categorías creadas: %d\nProductos creados: %d\nVentas creadas: %d\n",
		report.Categories, report.Products, report.Sales)
	return nil
}

func orDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
