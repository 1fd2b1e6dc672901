package mysql

import (
	"fmt"
	"time"
)

// Config defines the MySQL connection and pool settings
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string

	// Connection pool
	// See https://github.com/go-sql-driver/mysql#important-settings
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration

	// ConnectRetries is the number of connection attempts before giving up
	ConnectRetries int
	RetryInterval  time.Duration

	// LogLevel is the gorm log level: "silent", "error", "warn", "info"
	LogLevel string
}

// DSN builds the data source name
// Format: user:password@tcp(host:port)/dbname?charset=utf8mb4&parseTime=True&loc=UTC
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.DBName,
	)
}
