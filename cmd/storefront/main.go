package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"Storefront/internal/catalog"
	"Storefront/internal/checkout"
	"Storefront/internal/config"
	"Storefront/internal/storefront"
	"Storefront/pkg/kit"
)

const (
	service = "storefront"

	dbStartupTimeout = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log := kit.NewLogger(service, cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	if cfg.DotEnvLoaded {
		log.Info(".env file loaded")
	}

	deps, closeDB, err := buildDeps(cfg, log)
	if err != nil {
		log.Fatal("init stores failed", zap.Error(err))
	}
	defer closeDB()

	deps.ReviewLimiter = kit.NewIPRateLimiter(cfg.ReviewRateLimit, time.Minute).
		TrustForwardedFor(cfg.TrustProxy)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	h, err := storefront.NewHandler(deps, storefront.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       reg,
		MetricsEnabled: cfg.MetricsEnabled,
		MetricsToken:   cfg.MetricsToken,
	})
	if err != nil {
		log.Fatal("init storefront handler failed", zap.Error(err))
	}

	err = kit.RunHTTPServer(context.Background(), cfg.Addr(), h, log, kit.ServerOptions{
		ShutdownTimeout: cfg.ShutdownTimeout,
	})
	if err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

// buildDeps picks Postgres for the catalog and orders when DATABASE_URL is
// set. Carts, wishlists and reviews always live in memory.
func buildDeps(cfg config.Config, log *zap.Logger) (storefront.Deps, func(), error) {
	if cfg.DatabaseURL == "" {
		log.Info("using in-memory catalog")
		return storefront.Deps{Catalog: catalog.NewMemStore()}, func() {}, nil
	}

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return storefront.Deps{}, nil, err
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), dbStartupTimeout)
	defer cancel()

	products := catalog.NewPostgresStore(db)
	orders := checkout.NewPostgresStore(db)

	if err := products.Ping(ctx); err != nil {
		_ = db.Close()
		return storefront.Deps{}, nil, fmt.Errorf("ping database: %w", err)
	}
	if err := products.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return storefront.Deps{}, nil, fmt.Errorf("catalog schema: %w", err)
	}
	if err := products.Seed(ctx, catalog.SeedProducts()); err != nil {
		_ = db.Close()
		return storefront.Deps{}, nil, fmt.Errorf("seed catalog: %w", err)
	}
	if err := orders.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return storefront.Deps{}, nil, fmt.Errorf("orders schema: %w", err)
	}

	log.Info("using postgres catalog")
	return storefront.Deps{Catalog: products, Orders: orders}, func() { _ = db.Close() }, nil
}
