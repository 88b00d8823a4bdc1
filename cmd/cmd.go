package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/frahmantamala/budget-tracker/internal"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	configPath  string
	projectFlag string
)

// errPresented marks a failure that was already shown to the user.
var errPresented = errors.New("command failed")

var rootCmd = &cobra.Command{
	Use:           "budget-tracker",
	Short:         "Budget Tracker",
	Long:          `For planning a yearly budget, importing bank statements and reporting on them.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	defer closeApp()

	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errPresented) {
			fmt.Println(err)
		}
		closeApp()
		os.Exit(1)
	}
}

func loadConfig(path string) (*internal.Config, error) {
	// .env only fills variables the environment does not already set
	if err := godotenv.Load(filepath.Join(path, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env: %w", err)
	}

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.SetEnvPrefix("ENV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, internal.DefaultConfig())

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg internal.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if projectFlag != "" {
		cfg.Project = projectFlag
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("error validating config: %w", err)
	}
	return &cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override keys that
// config.yml leaves out.
func setDefaults(v *viper.Viper, cfg internal.Config) {
	v.SetDefault("environment", cfg.Environment)
	v.SetDefault("project", cfg.Project)

	v.SetDefault("storage.driver", cfg.Storage.Driver)
	v.SetDefault("storage.root", cfg.Storage.Root)
	v.SetDefault("storage.source", cfg.Storage.Source)
	v.SetDefault("storage.timeout", cfg.Storage.Timeout)
	v.SetDefault("storage.max_open_conns", cfg.Storage.MaxOpenConns)
	v.SetDefault("storage.max_idle_conns", cfg.Storage.MaxIdleConns)
	v.SetDefault("storage.conn_max_lifetime", cfg.Storage.ConnMaxLifetime)
	v.SetDefault("storage.auto_migrate", cfg.Storage.AutoMigrate)

	v.SetDefault("importer.delimiter", cfg.Importer.Delimiter)
	v.SetDefault("importer.day_layout", cfg.Importer.DayLayout)
	v.SetDefault("importer.columns.day", cfg.Importer.Columns.Day)
	v.SetDefault("importer.columns.source", cfg.Importer.Columns.Source)
	v.SetDefault("importer.columns.amount", cfg.Importer.Columns.Amount)
	v.SetDefault("importer.columns.notes", cfg.Importer.Columns.Notes)
	v.SetDefault("importer.columns.reference", cfg.Importer.Columns.Reference)

	v.SetDefault("http_server.port", cfg.Server.Port)
	v.SetDefault("http_server.read_header_timeout", cfg.Server.ReadHeaderTimeout)
	v.SetDefault("http_server.read_timeout", cfg.Server.ReadTimeout)
	v.SetDefault("http_server.idle_timeout", cfg.Server.IdleTimeout)
	v.SetDefault("http_server.write_timeout", cfg.Server.WriteTimeout)

	v.SetDefault("observability.metrics.enabled", cfg.Observability.Metrics.Enabled)
	v.SetDefault("observability.metrics.path", cfg.Observability.Metrics.Path)
	v.SetDefault("observability.logging.level", cfg.Observability.Logging.Level)
	v.SetDefault("observability.logging.format", cfg.Observability.Logging.Format)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", ".", "directory holding config.yml and .env")
	rootCmd.PersistentFlags().StringVarP(&projectFlag, "project", "p", "", "project to work on (overrides config)")

	rootCmd.AddCommand(budgetCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(projectsCmd)
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(saveCmd)
	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(httpServerCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}
