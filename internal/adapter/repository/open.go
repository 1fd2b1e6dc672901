// Package repository selects and opens the configured store
package repository

import (
	"context"
	"fmt"

	"github.com/simaogato/cashflow-backend/internal/adapter/repository/memory"
	"github.com/simaogato/cashflow-backend/internal/adapter/repository/mysql"
	"github.com/simaogato/cashflow-backend/internal/adapter/repository/postgres"
	"github.com/simaogato/cashflow-backend/internal/config"
	"github.com/simaogato/cashflow-backend/internal/domain"
)

// Handle is an opened store plus its lifecycle hooks
type Handle struct {
	Store domain.Store

	// Migrate creates the schema; a no-op for the memory driver
	Migrate func(ctx context.Context) error
	Close   func() error
}

// Open connects to the store named by cfg.Store.Driver
func Open(ctx context.Context, cfg *config.Config) (*Handle, error) {
	switch cfg.Store.Driver {
	case config.DriverMemory:
		return &Handle{
			Store:   memory.NewStore(),
			Migrate: func(context.Context) error { return nil },
			Close:   func() error { return nil },
		}, nil

	case config.DriverPostgres:
		db, err := postgres.NewDB(cfg.Postgres.DSN(), postgres.PoolConfig{
			MaxOpenConns:    cfg.Postgres.MaxOpenConns,
			MaxIdleConns:    cfg.Postgres.MaxIdleConns,
			ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
		})
		if err != nil {
			return nil, err
		}
		return &Handle{
			Store:   postgres.NewStore(db),
			Migrate: func(ctx context.Context) error { return postgres.Migrate(ctx, db) },
			Close:   db.Close,
		}, nil

	case config.DriverMySQL:
		client, err := mysql.NewClient(ctx, mysql.Config{
			Host:            cfg.MySQL.Host,
			Port:            cfg.MySQL.Port,
			User:            cfg.MySQL.User,
			Password:        cfg.MySQL.Password,
			DBName:          cfg.MySQL.DBName,
			MaxOpenConns:    cfg.MySQL.MaxOpenConns,
			MaxIdleConns:    cfg.MySQL.MaxIdleConns,
			ConnMaxLifetime: cfg.MySQL.ConnMaxLifetime,
			ConnectRetries:  cfg.MySQL.ConnectRetries,
			RetryInterval:   cfg.MySQL.RetryInterval,
			LogLevel:        cfg.MySQL.LogLevel,
		})
		if err != nil {
			return nil, err
		}
		return &Handle{
			Store:   mysql.NewStore(client),
			Migrate: client.Migrate,
			Close:   client.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
