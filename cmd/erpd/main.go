package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/stockroom-io/erp-go/internal/api"
	"github.com/stockroom-io/erp-go/internal/config"
	"github.com/stockroom-io/erp-go/internal/janitor"
	"github.com/stockroom-io/erp-go/internal/store"
	"github.com/stockroom-io/erp-go/migrations"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration invalid", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := store.NewPool(ctx, cfg.DBDSN, cfg.DBMaxConns)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	for _, migFile := range []string{
		"001_products.sql",
		"002_orders.sql",
		"003_suppliers.sql",
		"004_idempotency_keys.sql",
	} {
		migrationSQL, err := migrations.FS.ReadFile(migFile)
		if err != nil {
			logger.Error("read migration file failed", "migration", migFile, "error", err)
			os.Exit(1)
		}
		if err := store.RunMigration(ctx, pool, migFile, string(migrationSQL)); err != nil {
			logger.Error("migration failed", "migration", migFile, "error", err)
			os.Exit(1)
		}
	}

	idemRepo := store.NewPostgresIdempotencyRepo(pool)
	repos := api.Repos{
		Products:    store.NewPostgresProductRepo(pool),
		Orders:      store.NewPostgresOrderRepo(pool),
		Suppliers:   store.NewPostgresSupplierRepo(pool),
		Idempotency: idemRepo,
	}
	router := api.NewRouter(repos, pool, cfg)

	j := janitor.New(idemRepo, janitor.Config{
		Enabled:  cfg.JanitorEnabled,
		Interval: cfg.JanitorInterval(),
		Batch:    cfg.JanitorBatchSize,
	}, logger)
	go j.Run(ctx)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	go func() {
		logger.Info("listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("listen failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
