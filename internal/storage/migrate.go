package storage

import (
	"context"
	"fmt"
	"path"

	"github.com/frahmantamala/budget-tracker/db"
	"github.com/frahmantamala/budget-tracker/internal"
	"github.com/pressly/goose/v3"
)

const migrationsTable = "schema_migrations"

// MigrateOptions override the embedded migrations. An empty Dir runs the
// migrations compiled into the binary for the configured dialect.
type MigrateOptions struct {
	Dir      string
	Rollback bool
}

// Migrate brings the schema up to date, or rolls back the latest version.
// The CSV backend has no schema.
func (s *Stores) Migrate(ctx context.Context, opts MigrateOptions) error {
	if s.sqlDB == nil {
		s.logger.Info("storage has no schema to migrate", "driver", s.cfg.Driver)
		return nil
	}

	dialect := s.gooseDialect()
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("goose: %w", err)
	}
	goose.SetTableName(migrationsTable)

	dir := opts.Dir
	if dir == "" {
		goose.SetBaseFS(db.Migrations)
		dir = path.Join("migrations", s.cfg.Driver)
	} else {
		goose.SetBaseFS(nil)
	}
	defer goose.SetBaseFS(nil)

	if opts.Rollback {
		if err := goose.DownContext(ctx, s.sqlDB, dir); err != nil {
			return fmt.Errorf("goose down: %w", err)
		}
	} else {
		if err := goose.UpContext(ctx, s.sqlDB, dir); err != nil {
			return fmt.Errorf("goose up: %w", err)
		}
	}

	version, err := goose.GetDBVersionContext(ctx, s.sqlDB)
	if err != nil {
		return fmt.Errorf("goose version: %w", err)
	}
	s.logger.Info("migrations applied", "driver", s.cfg.Driver, "dir", dir, "rollback", opts.Rollback, "version", version)
	return nil
}

func (s *Stores) gooseDialect() string {
	if s.cfg.Driver == internal.StoragePostgres {
		return "postgres"
	}
	return "sqlite3"
}
