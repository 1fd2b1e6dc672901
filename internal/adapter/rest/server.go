// Package rest exposes the ledger over JSON/HTTP
package rest

import (
	"io"
	"log/slog"
	"time"

	"github.com/simaogato/cashflow-backend/internal/usecase/dashboard"
	"github.com/simaogato/cashflow-backend/internal/usecase/reconcile"
)

// Server holds the dependencies of the HTTP handlers
type Server struct {
	Engine           *reconcile.Engine
	DashboardService *dashboard.DashboardService
	Logger           *slog.Logger

	// AllowedOrigins is the CORS allow-list; requests without Origin always pass
	AllowedOrigins []string
	// Environment is reported by the health route
	Environment string

	Now func() time.Time
}

// NewServer creates a new HTTP server instance
func NewServer(engine *reconcile.Engine, dashboardService *dashboard.DashboardService, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Server{
		Engine:           engine,
		DashboardService: dashboardService,
		Logger:           logger,
		Environment:      "development",
		Now:              time.Now,
	}
}
