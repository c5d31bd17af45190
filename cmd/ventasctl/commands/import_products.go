package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Ventas-api/internal/application/importer"
)

// importProductsCmd upsert de productos desde un archivo local
var importProductsCmd = &cobra.Command{
	Use:   "import-products FILE",
	Short: "Importar productos desde CSV",
	Long: `Crea o actualiza productos por nombre desde un CSV con columnas name, price
y opcionalmente category, description. Todo el archivo se aplica en una transacción.

Ejemplos:
  ventasctl import-products ./productos.csv`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImportProducts(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(importProductsCmd)
}

func runImportProducts(cmd *cobra.Command, path string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("abrir %s: %w", path, err)
	}
	defer f.Close()

	ctx := context.Background()
	backend, err := openBackend(ctx, cfg, cfg.DB.AutoMigrate)
	if err != nil {
		return err
	}
	defer backend.Close()

	count, err := importer.NewProductCSVImporter(backend.Tx, cfg.Import.FallbackCategory).Import(ctx, f)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d productos procesados correctamente\n", count)
	return nil
}
