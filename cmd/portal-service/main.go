package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"lang-portal/internal/config"
	"lang-portal/internal/httpapi"
	"lang-portal/internal/seed"
	"lang-portal/internal/studysession"
	"lang-portal/internal/studysession/sqlite"
	"lang-portal/internal/telemetry"
)

func main() {
	cfg, err := config.Init()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	addr := flag.String("addr", cfg.HTTP.Addr, "HTTP listen address")
	dbPath := flag.String("db", cfg.DB.Path, "SQLite database path")
	seedPath := flag.String("seed", cfg.SeedPath, "YAML catalog imported at startup (optional)")
	flag.Parse()

	log, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, log, cfg, *addr, *dbPath, *seedPath); err != nil {
		log.Fatal("portal-service failed", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func run(ctx context.Context, log *zap.Logger, cfg *config.Config, addr, dbPath, seedPath string) error {
	shutdownTracing, err := telemetry.Init(ctx, log, cfg.OTel, cfg.Env)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.Warn("tracer shutdown failed", zap.Error(err))
		}
	}()

	store, err := sqlite.NewSQLiteStore(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	service := studysession.NewService(store, store, store, log)

	if strings.TrimSpace(seedPath) != "" {
		catalog, err := seed.Load(seedPath)
		if err != nil {
			return err
		}
		if err := service.ImportCatalog(ctx, catalog); err != nil {
			return fmt.Errorf("import catalog: %w", err)
		}
	}

	server := &http.Server{
		Addr:              addr,
		Handler:           otelhttp.NewHandler(httpapi.NewRouter(service, log), "lang-portal"),
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("portal-service listening", zap.String("addr", addr), zap.String("db", dbPath))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
