// Package storage opens the persistence collaborators selected by the
// storage config: CSV files under a root directory, or a SQL database
// reached through gorm.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/frahmantamala/budget-tracker/internal"
	"github.com/frahmantamala/budget-tracker/internal/budget"
	budgetCSV "github.com/frahmantamala/budget-tracker/internal/budget/csv"
	budgetPostgres "github.com/frahmantamala/budget-tracker/internal/budget/postgres"
	"github.com/frahmantamala/budget-tracker/internal/history"
	historyCSV "github.com/frahmantamala/budget-tracker/internal/history/csv"
	historyPostgres "github.com/frahmantamala/budget-tracker/internal/history/postgres"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// Stores bundles the budget and history repositories of one backend.
type Stores struct {
	Budget  budget.RepositoryAPI
	History history.RepositoryAPI

	cfg    internal.StorageConfig
	sqlDB  *sql.DB
	logger *slog.Logger
}

func Open(ctx context.Context, cfg internal.StorageConfig, logger *slog.Logger) (*Stores, error) {
	switch cfg.Driver {
	case internal.StorageCSV:
		return openCSV(cfg, logger)
	case internal.StorageSQLite, internal.StoragePostgres:
		return openSQL(ctx, cfg, logger)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}

func openCSV(cfg internal.StorageConfig, logger *slog.Logger) (*Stores, error) {
	if err := os.MkdirAll(cfg.Root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage root: %w", err)
	}

	logger.Debug("csv storage opened", "root", cfg.Root)
	return &Stores{
		Budget:  budgetCSV.NewBudgetRepository(cfg.Root),
		History: historyCSV.NewHistoryRepository(cfg.Root),
		cfg:     cfg,
		logger:  logger,
	}, nil
}

func openSQL(ctx context.Context, cfg internal.StorageConfig, logger *slog.Logger) (*Stores, error) {
	var dialector gorm.Dialector
	if cfg.Driver == internal.StoragePostgres {
		dialector = postgres.Open(cfg.GetDSN())
	} else {
		dialector = sqlite.Open(cfg.GetDSN())
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	stores := &Stores{
		Budget:  budgetPostgres.NewBudgetRepository(db),
		History: historyPostgres.NewHistoryRepository(db),
		cfg:     cfg,
		sqlDB:   sqlDB,
		logger:  logger,
	}

	if err := stores.Ping(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if cfg.AutoMigrate {
		if err := stores.Migrate(ctx, MigrateOptions{}); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
	}

	logger.Debug("sql storage opened", "driver", cfg.Driver)
	return stores, nil
}

func (s *Stores) Name() string {
	return s.cfg.Driver
}

// Ping checks that the backend is reachable: the database answers, or the
// CSV root is still a directory.
func (s *Stores) Ping(ctx context.Context) error {
	if s.sqlDB != nil {
		ctx, cancel := internal.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
		return s.sqlDB.PingContext(ctx)
	}

	info, err := os.Stat(s.cfg.Root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("storage root %s is not a directory", s.cfg.Root)
	}
	return nil
}

// Projects lists the names of every project with stored data, sorted.
func (s *Stores) Projects(ctx context.Context) ([]string, error) {
	if s.sqlDB != nil {
		return s.sqlProjects(ctx)
	}
	return s.csvProjects()
}

func (s *Stores) sqlProjects(ctx context.Context) ([]string, error) {
	ctx, cancel := internal.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	db := sqlx.NewDb(s.sqlDB, s.sqlxDriverName())
	projects := []string{}
	query := `SELECT project FROM budget_items UNION SELECT project FROM transactions ORDER BY project`
	if err := db.SelectContext(ctx, &projects, query); err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

func (s *Stores) csvProjects() ([]string, error) {
	entries, err := os.ReadDir(s.cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	projects := []string{}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if hasLedgerFile(filepath.Join(s.cfg.Root, entry.Name())) {
			projects = append(projects, entry.Name())
		}
	}
	sort.Strings(projects)
	return projects, nil
}

func hasLedgerFile(dir string) bool {
	for _, name := range []string{"budget.csv", "history.csv"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

func (s *Stores) sqlxDriverName() string {
	if s.cfg.Driver == internal.StoragePostgres {
		return "pgx"
	}
	return "sqlite3"
}

func (s *Stores) Close() error {
	if s.sqlDB == nil {
		return nil
	}
	if err := s.sqlDB.Close(); err != nil && !errors.Is(err, sql.ErrConnDone) {
		return err
	}
	return nil
}
