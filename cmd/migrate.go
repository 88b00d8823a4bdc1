package cmd

import (
	"context"
	"fmt"

	"github.com/frahmantamala/budget-tracker/internal/storage"
	"github.com/frahmantamala/budget-tracker/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	migrateCmd = &cobra.Command{
		RunE:  runMigration,
		Use:   "migrate",
		Short: "to run the sql migrations of the configured storage driver",
		Long: `Applies the goose migrations for the sqlite or postgres storage driver.
Without --dir the migrations compiled into the binary are used.`,
	}
	migrateRollback bool
	migrateDir      string
)

func init() {
	migrateCmd.Flags().BoolVarP(&migrateRollback, "rollback", "r", false, "to rollback the latest version of sql migration")
	migrateCmd.PersistentFlags().StringVarP(&migrateDir, "dir", "d", "", "sql migrations directory (defaults to the embedded db/migrations/<driver>)")
}

func runMigration(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	log := logger.Configure(logger.Options{
		Level:  cfg.Observability.Logging.Level,
		Format: cfg.Observability.Logging.Format,
	})

	// opening with auto migrate would apply the embedded set before --dir
	storageCfg := cfg.Storage
	storageCfg.AutoMigrate = false

	stores, err := storage.Open(ctx, storageCfg, log)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer stores.Close()

	return stores.Migrate(ctx, storage.MigrateOptions{
		Dir:      migrateDir,
		Rollback: migrateRollback,
	})
}
