package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Ventas-api/internal/infrastructure/storage"
	"github.com/jhoicas/Ventas-api/pkg/config"
	"github.com/jhoicas/Ventas-api/pkg/logger"
)

var (
	// Flags globales; si se omiten se usa la configuración de entorno (.env / variables).
	dbURL    string
	dbDriver string
	verbose  bool
)

// rootCmd comando base
var rootCmd = &cobra.Command{
	Use:   "ventasctl",
	Short: "Herramientas de administración de Ventas API",
	Long: `ventasctl ejecuta tareas de mantenimiento sobre el almacén de Ventas API.

Comandos:
  migrate          - Aplica las migraciones pendientes del esquema
  seed             - Carga inicial desde categories.csv, products.csv y sales.csv
  import-products  - Upsert de productos desde un CSV (mismo servicio que /api/products/upload-csv/)`,
	SilenceUsage: true,
}

// Execute ejecuta el comando raíz.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbURL, "db", "", "URL de conexión PostgreSQL (por defecto DATABASE_URL / DB_*)")
	rootCmd.PersistentFlags().StringVar(&dbDriver, "driver", "", "Almacén: postgres | memory (por defecto DB_DRIVER)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Salida detallada")
}

// loadConfig lee la configuración y aplica los flags globales.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("cargar configuración: %w", err)
	}
	if dbURL != "" {
		cfg.DB.DatabaseURL = dbURL
	}
	if dbDriver != "" {
		cfg.DB.Driver = dbDriver
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *logger.Logger {
	level := "warn"
	if verbose {
		level = "debug"
	}
	return logger.New(logger.Config{Env: cfg.App.Env, Level: level, Output: os.Stderr})
}

// openBackend abre el almacén; migrate aplica las migraciones pendientes antes de operar.
func openBackend(ctx context.Context, cfg *config.Config, migrate bool) (*storage.Backend, error) {
	return storage.Open(ctx, cfg.DB, storage.Options{Migrate: migrate}, newLogger(cfg))
}
