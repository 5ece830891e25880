package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	RepositorySQLite   = "sqlite"
	RepositoryPostgres = "postgres"
	RepositoryInMemory = "inmemory"
)

const (
	TraceExporterStdout = "stdout"
	TraceExporterNone   = "none"
)

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	SQLite     SQLiteConfig     `yaml:"sqlite"`
	Logging    LoggingConfig    `yaml:"logging"`
	Repository RepositoryConfig `yaml:"repository"`
	CORS       CORSConfig       `yaml:"cors"`
	Tracing    TracingConfig    `yaml:"tracing"`
}

type ServerConfig struct {
	Port            string        `yaml:"port"`
	Host            string        `yaml:"host"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	URL            string        `yaml:"url"`
	MaxConnections int           `yaml:"max_connections"`
	MinConnections int           `yaml:"min_connections"`
	IdleTimeout    time.Duration `yaml:"idle_timeout"`
}

type SQLiteConfig struct {
	Path string `yaml:"path"`
}

type LoggingConfig struct {
	Development bool   `yaml:"development"`
	Level       string `yaml:"level"` // empty keeps the zap preset's level
}

type RepositoryConfig struct {
	Type string `yaml:"type"` // sqlite, postgres or inmemory
}

type CORSConfig struct {
	Enabled        bool     `yaml:"enabled"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// TracingConfig controls the OpenTelemetry SDK. With Exporter "none" spans
// are still recorded by any processor the app is given, but nothing is
// written out.
type TracingConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Exporter    string `yaml:"exporter"`
	ServiceName string `yaml:"service_name"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "",
			Port:            "8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Database: DatabaseConfig{
			MaxConnections: 10,
			MinConnections: 2,
			IdleTimeout:    5 * time.Minute,
		},
		SQLite: SQLiteConfig{
			Path: "kanban.db",
		},
		Repository: RepositoryConfig{
			Type: RepositorySQLite,
		},
		Tracing: TracingConfig{
			Exporter:    TraceExporterStdout,
			ServiceName: "kanban",
		},
	}
}

// Load decodes the YAML file at path over Default and then applies
// environment overrides. A missing or empty file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	file, err := os.Open(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("open %s: %w", path, err)
	default:
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	overrides := map[string]*string{
		"KANBAN_SERVER_PORT":     &c.Server.Port,
		"KANBAN_REPOSITORY_TYPE": &c.Repository.Type,
		"KANBAN_DATABASE_URL":    &c.Database.URL,
		"KANBAN_SQLITE_PATH":     &c.SQLite.Path,
	}
	for key, field := range overrides {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*field = v
		}
	}
}

func (c *Config) Validate() error {
	switch c.Repository.Type {
	case RepositorySQLite, RepositoryInMemory:
	case RepositoryPostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("repository type %q requires database.url", c.Repository.Type)
		}
	default:
		return fmt.Errorf("unknown repository type %q", c.Repository.Type)
	}

	if err := c.Database.Validate(); err != nil {
		return err
	}

	if c.Tracing.Enabled {
		switch c.Tracing.Exporter {
		case TraceExporterStdout, TraceExporterNone:
		default:
			return fmt.Errorf("unknown tracing exporter %q", c.Tracing.Exporter)
		}
	}
	return nil
}

// Validate checks the pool sizes, which pgxpool holds as int32. Zero means
// "use the pool default".
func (d DatabaseConfig) Validate() error {
	for name, v := range map[string]int{
		"database.max_connections": d.MaxConnections,
		"database.min_connections": d.MinConnections,
	} {
		if v < 0 || v > math.MaxInt32 {
			return fmt.Errorf("%s out of range: %d", name, v)
		}
	}
	if d.MaxConnections > 0 && d.MinConnections > d.MaxConnections {
		return fmt.Errorf("database.min_connections (%d) exceeds database.max_connections (%d)",
			d.MinConnections, d.MaxConnections)
	}
	return nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}
