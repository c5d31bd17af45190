package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Ventas-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Ventas-api/pkg/config"
)

// migrateCmd aplica las migraciones embebidas
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Aplicar migraciones pendientes",
	Long: `Aplica en orden las migraciones SQL embebidas que aún no figuran en schema_migrations.

Ejemplos:
  ventasctl migrate
  ventasctl migrate --db postgres://postgres@localhost:5432/ventas?sslmode=disable`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrate(cmd)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.DB.Driver != config.DriverPostgres {
		return fmt.Errorf("migrate requiere DB_DRIVER=postgres (actual: %s)", cfg.DB.Driver)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer pool.Close()

	applied, err := postgres.Migrate(ctx, pool)
	if err != nil {
		return err
	}
	if len(applied) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Sin migraciones pendientes")
		return nil
	}
	for _, name := range applied {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %s\n", name)
	}
	return nil
}
