// Package config loads process settings from a YAML file, a .env file
// and the environment, in that order of increasing precedence
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no explicit config file is given
const DefaultPath = "config/config.yaml"

// Store drivers
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// Config is the full process configuration
type Config struct {
	Environment string `yaml:"environment"`
	LogLevel    string `yaml:"log_level"`

	Store    StoreConfig    `yaml:"store"`
	Postgres PostgresConfig `yaml:"postgres"`
	MySQL    MySQLConfig    `yaml:"mysql"`
	Server   ServerConfig   `yaml:"server"`
	Ledger   LedgerConfig   `yaml:"ledger"`
}

type StoreConfig struct {
	Driver string `yaml:"driver"`
}

// PostgresConfig holds the connection settings
// ConnString wins over the individual fields when set
type PostgresConfig struct {
	ConnString string `yaml:"conn_string"`
	Host       string `yaml:"host"`
	Port       string `yaml:"port"`
	User       string `yaml:"user"`
	Password   string `yaml:"password"`
	DBName     string `yaml:"dbname"`
	SSLMode    string `yaml:"sslmode"`

	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// DSN returns the lib/pq connection string
func (c PostgresConfig) DSN() string {
	if c.ConnString != "" {
		return c.ConnString
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type MySQLConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`

	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	ConnectRetries  int           `yaml:"connect_retries"`
	RetryInterval   time.Duration `yaml:"retry_interval"`
	LogLevel        string        `yaml:"log_level"`
}

type ServerConfig struct {
	GRPCAddr       string   `yaml:"grpc_addr"`
	HTTPAddr       string   `yaml:"http_addr"`
	APIToken       string   `yaml:"api_token"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type LedgerConfig struct {
	// ExpenseUpdatePolicy is "reject" or "clamp"
	ExpenseUpdatePolicy string `yaml:"expense_update_policy"`
	// Currency is the ISO 4217 code used when amounts are displayed
	Currency string `yaml:"currency"`
}

// Default returns the settings used when nothing overrides them
func Default() *Config {
	return &Config{
		Environment: "development",
		LogLevel:    "info",
		Store:       StoreConfig{Driver: DriverPostgres},
		Postgres: PostgresConfig{
			Host:         "localhost",
			Port:         "5432",
			User:         "postgres",
			Password:     "postgres",
			DBName:       "cashflow",
			SSLMode:      "disable",
			MaxOpenConns: 25,
			MaxIdleConns: 5,
		},
		MySQL: MySQLConfig{
			Host:            "localhost",
			Port:            3306,
			User:            "root",
			DBName:          "cashflow",
			MaxOpenConns:    100,
			MaxIdleConns:    10,
			ConnMaxLifetime: 30 * time.Minute,
			ConnectRetries:  10,
			RetryInterval:   2 * time.Second,
			LogLevel:        "error",
		},
		Server: ServerConfig{
			GRPCAddr: ":8080",
			HTTPAddr: ":5000",
			APIToken: "dev-token",
			AllowedOrigins: []string{
				"http://localhost:5173",
				"http://localhost:3000",
				"http://127.0.0.1:5173",
			},
		},
		Ledger: LedgerConfig{
			ExpenseUpdatePolicy: "reject",
			Currency:            "USD",
		},
	}
}

// Load builds the configuration
// A missing file at path, or a missing .env, is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides fields from environment variables
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) error {
		v, ok := lookup(key)
		if !ok || v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = n
		return nil
	}

	str("APP_ENV", &c.Environment)
	str("LOG_LEVEL", &c.LogLevel)
	str("STORE_DRIVER", &c.Store.Driver)

	str("DB_CONN_STR", &c.Postgres.ConnString)
	str("DB_HOST", &c.Postgres.Host)
	str("DB_PORT", &c.Postgres.Port)
	str("DB_USER", &c.Postgres.User)
	str("DB_PASSWORD", &c.Postgres.Password)
	str("DB_NAME", &c.Postgres.DBName)
	str("DB_SSLMODE", &c.Postgres.SSLMode)

	str("MYSQL_HOST", &c.MySQL.Host)
	if err := num("MYSQL_PORT", &c.MySQL.Port); err != nil {
		return err
	}
	str("MYSQL_USER", &c.MySQL.User)
	str("MYSQL_PASSWORD", &c.MySQL.Password)
	str("MYSQL_DATABASE", &c.MySQL.DBName)
	str("MYSQL_LOG_LEVEL", &c.MySQL.LogLevel)

	str("GRPC_ADDR", &c.Server.GRPCAddr)
	str("HTTP_ADDR", &c.Server.HTTPAddr)
	if v, ok := lookup("PORT"); ok && v != "" {
		c.Server.HTTPAddr = ":" + v
	}
	str("API_TOKEN", &c.Server.APIToken)
	if v, ok := lookup("ALLOWED_ORIGINS"); ok && v != "" {
		c.Server.AllowedOrigins = splitList(v)
	}
	for _, key := range []string{"FRONTEND_URL", "PRODUCTION_URL"} {
		if v, ok := lookup(key); ok && v != "" {
			c.Server.AllowedOrigins = append(c.Server.AllowedOrigins, v)
		}
	}

	str("EXPENSE_UPDATE_POLICY", &c.Ledger.ExpenseUpdatePolicy)
	str("CURRENCY", &c.Ledger.Currency)
	return nil
}

// Validate rejects settings the process cannot start with
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverMemory, DriverPostgres, DriverMySQL:
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	switch c.Ledger.ExpenseUpdatePolicy {
	case "", "reject", "clamp":
	default:
		return fmt.Errorf("unknown expense update policy %q", c.Ledger.ExpenseUpdatePolicy)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	if c.Server.APIToken == "" {
		return errors.New("api token cannot be empty")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
