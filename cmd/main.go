package main

//
//  @title           signstats API
//  @version         1.0
//  @description     Contracted-service buy statistics: upload a trade export, get a per-date, per-team summary workbook.
//  @termsOfService  https://github.com/guttosm/signstats
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/signstats
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        summaries
//  @tag.description Upload trade exports and download summary workbooks
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/guttosm/signstats/config"
	_ "github.com/guttosm/signstats/docs" // swagger docs
	"github.com/guttosm/signstats/internal/app"
	"github.com/guttosm/signstats/internal/batch"
	"github.com/guttosm/signstats/internal/logger"
	"github.com/guttosm/signstats/internal/service"
	"github.com/guttosm/signstats/internal/trace"
)

// startServer initializes and starts the HTTP server in a separate goroutine.
//
// Parameters:
//   - router (http.Handler): The HTTP router (Gin Engine) configured with all routes.
//   - port (string): The port where the server will listen for incoming requests.
//
// Returns:
//   - *http.Server: The initialized HTTP server instance.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown gracefully terminates the HTTP server and cleans up resources
// when an OS interrupt signal (SIGINT, SIGTERM) is received.
//
// Parameters:
//   - ctx (context.Context): A context with timeout for graceful shutdown.
//   - server (*http.Server): The HTTP server instance to shut down.
//   - drain (func()): Marks the instance not ready before in-flight requests finish.
//   - cleanup (func()): Cleanup callback to release resources (e.g., span exporter).
func gracefulShutdown(ctx context.Context, server *http.Server, drain func(), cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	<-quit
	logger.L().Info().Msg("shutting down server")
	drain()

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// runBatch summarizes a single file (in) or every xlsx/csv file in dir.
func runBatch(ctx context.Context, in, dir, out string, parallel int) ([]batch.Result, error) {
	if err := trace.Init(config.AppConfig.Tracing.Enabled); err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}
	defer func() { _ = trace.Shutdown(context.WithoutCancel(ctx)) }()

	svc := service.NewSummaryService()
	opts := batch.Options{OutDir: out, Parallel: parallel}
	if in != "" {
		return batch.ProcessFiles(ctx, svc, []string{in}, opts)
	}
	return batch.ProcessDirectory(ctx, svc, dir, opts)
}

// main is the entry point of the signstats application.
//
// Modes (selected via --mode flag):
//   - api:   Starts the REST API (upload, preview, download).
//   - batch: Summarizes files from disk, one workbook per input.
//
// Flags:
//   - --mode:     Execution mode ("api" or "batch"). Default: "api".
//   - --in:       Single input file (batch). Takes precedence over --dir.
//   - --dir:      Directory containing .xlsx/.csv inputs (batch). Default: "./data/input".
//   - --out:      Output directory (batch). Default: "./data/output".
//   - --parallel: Files processed concurrently (batch, 0=auto up to CPU, max 8).
//   - --port:     Port for the API server. Defaults to value from config (SERVER_PORT).
func main() {
	ctx := context.Background()

	// Load configuration from environment or .env file
	config.LoadConfig()

	// Initialize JSON logger
	logger.Init()

	// Parse CLI flags (override config defaults if provided)
	mode := flag.String("mode", "api", "Mode: api or batch")
	in := flag.String("in", "", "Single .xlsx/.csv file to summarize (batch)")
	dir := flag.String("dir", "./data/input", "Directory with .xlsx/.csv files (batch)")
	out := flag.String("out", "./data/output", "Directory for generated workbooks (batch)")
	parallel := flag.Int("parallel", 0, "How many files to process concurrently (0=auto up to CPU, max 8)")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for API mode")
	flag.Parse()

	switch *mode {
	case "batch":
		logger.L().Info().Msg("running batch")

		ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()

		results, err := runBatch(ctx, *in, *dir, *out, *parallel)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("batch failed")
		}
		logger.L().Info().Int("files", len(results)).Str("out", *out).Msg("batch completed successfully")

	case "api":
		// API mode: start the HTTP server
		logger.L().Info().Msg("starting API server")

		router, lc, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		server := startServer(router, *port)
		gracefulShutdown(ctx, server, lc.Drain, func() { lc.Cleanup(ctx) })

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
