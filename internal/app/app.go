package app

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/signstats/config"
	"github.com/guttosm/signstats/internal/api"
	"github.com/guttosm/signstats/internal/logger"
	"github.com/guttosm/signstats/internal/service"
	"github.com/guttosm/signstats/internal/store"
	"github.com/guttosm/signstats/internal/trace"
)

// ErrDraining is reported by the readiness probe once shutdown has begun.
var ErrDraining = errors.New("server is draining")

// Lifecycle carries the hooks the entrypoint runs around server shutdown.
type Lifecycle struct {
	draining atomic.Bool
}

// Drain flips the readiness probe to 503 so load balancers stop routing here.
func (l *Lifecycle) Drain() {
	l.draining.Store(true)
}

// Ready returns ErrDraining after Drain has been called.
func (l *Lifecycle) Ready() error {
	if l.draining.Load() {
		return ErrDraining
	}
	return nil
}

// Cleanup flushes pending spans. It is safe to call when tracing is off.
func (l *Lifecycle) Cleanup(ctx context.Context) {
	if err := trace.Shutdown(ctx); err != nil {
		logger.L().Warn().Err(err).Msg("trace shutdown failed")
	}
}

// tracingInit is swapped in tests.
var tracingInit = trace.Init

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, its lifecycle hooks,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Installs the tracer provider when TRACING_ENABLED is set.
//   - Creates the in-memory report store (REPORT_TTL).
//   - Creates the summary service and the HTTP handler layer.
//   - Configures the Gin router with all API routes.
//   - Registers health and readiness probes.
func InitializeApp() (*gin.Engine, *Lifecycle, error) {
	// Load global configuration
	cfg := config.AppConfig

	if err := tracingInit(cfg.Tracing.Enabled); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}

	// Workbooks wait here between preview and download
	reports := store.NewReportStore(cfg.Upload.ReportTTL)

	svc := service.NewSummaryService()
	handler := api.NewHandler(svc, reports)
	router := api.NewRouter(handler, cfg)

	lc := &Lifecycle{}
	api.NewHealthHandler(lc.Ready).Register(router)

	return router, lc, nil
}
