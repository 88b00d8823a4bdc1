package internal

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	StorageCSV      = "csv"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
)

type Config struct {
	Environment   string              `mapstructure:"environment" validate:"omitempty,oneof=development production"`
	Project       string              `mapstructure:"project" validate:"required,excludesall=/\\"`
	Storage       StorageConfig       `mapstructure:"storage"`
	Importer      StatementConfig     `mapstructure:"importer"`
	Server        ServerConfig        `mapstructure:"http_server"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

type StorageConfig struct {
	Driver          string        `mapstructure:"driver" validate:"required,oneof=csv sqlite postgres"`
	Root            string        `mapstructure:"root" validate:"required_if=Driver csv"`
	Source          string        `mapstructure:"source" validate:"required_unless=Driver csv"`
	Timeout         time.Duration `mapstructure:"timeout"`
	MaxOpenConns    int           `mapstructure:"max_open_conns" validate:"min=0"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

// StatementColumns are the zero based statement columns read by the importer.
type StatementColumns struct {
	Day       int `mapstructure:"day" validate:"min=0"`
	Source    int `mapstructure:"source" validate:"min=0"`
	Amount    int `mapstructure:"amount" validate:"min=0"`
	Notes     int `mapstructure:"notes" validate:"min=0"`
	Reference int `mapstructure:"reference" validate:"min=0"`
}

type StatementConfig struct {
	Delimiter string           `mapstructure:"delimiter" validate:"required,len=1"`
	DayLayout string           `mapstructure:"day_layout" validate:"required"`
	Columns   StatementColumns `mapstructure:"columns"`
}

type ServerConfig struct {
	Port              int           `mapstructure:"port" validate:"min=0,max=65535"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
}

type ObservabilityConfig struct {
	Metrics MetricsConfig `mapstructure:"metrics"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path" validate:"required_if=Enabled true"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json text"`
}

// DefaultConfig is what runs without a config file: CSV files under ./data
// and Erste Bank statements.
func DefaultConfig() Config {
	return Config{
		Environment: "development",
		Project:     "default",
		Storage: StorageConfig{
			Driver:  StorageCSV,
			Root:    "data",
			Timeout: 5 * time.Second,
		},
		Importer: StatementConfig{
			Delimiter: ";",
			DayLayout: "02.01.2006",
			Columns: StatementColumns{
				Day:       0,
				Source:    1,
				Amount:    6,
				Notes:     8,
				Reference: 9,
			},
		},
		Server: ServerConfig{
			Port:              8080,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			IdleTimeout:       60 * time.Second,
			WriteTimeout:      15 * time.Second,
		},
		Observability: ObservabilityConfig{
			Metrics: MetricsConfig{Enabled: false, Path: "/metrics"},
			Logging: LoggingConfig{Level: "info", Format: "text"},
		},
	}
}

// ----------------- VALIDATION -----------------

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return v
}

func (c *Config) Validate() error {
	var errs []string

	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		for _, fe := range fieldErrs {
			errs = append(errs, formatFieldError(fe))
		}
	}

	if err := c.Server.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("server config: %v", err))
	}

	if err := c.Storage.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("storage config: %v", err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

func (c *ServerConfig) Validate() error {
	if c.ReadTimeout < c.ReadHeaderTimeout {
		return errors.New("read_timeout must be >= read_header_timeout")
	}
	return nil
}

func (c *StorageConfig) Validate() error {
	if c.MaxIdleConns > c.MaxOpenConns && c.MaxOpenConns > 0 {
		return errors.New("max_idle_conns cannot be greater than max_open_conns")
	}
	return nil
}

func (c *StorageConfig) GetDSN() string {
	return c.Source
}

// formatFieldError names the offending key the way it is written in
// config.yml, e.g. "storage.driver must be one of [csv sqlite postgres]".
func formatFieldError(fe validator.FieldError) string {
	key := fe.Namespace()
	if i := strings.Index(key, "."); i >= 0 {
		key = key[i+1:]
	}

	switch fe.Tag() {
	case "required", "required_if", "required_unless":
		return key + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", key, fe.Param())
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters long", key, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", key, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", key, fe.Param())
	case "excludesall":
		return fmt.Sprintf("%s must not contain any of %q", key, fe.Param())
	default:
		return fmt.Sprintf("%s failed on %s", key, fe.Tag())
	}
}
