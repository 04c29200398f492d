// Package app wires the catalog API and the dashboard into runnable servers.
package app

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/budogu-admin/db"
	"github.com/xenking/budogu-admin/internal/catalog"
	"github.com/xenking/budogu-admin/internal/domain/auth"
	"github.com/xenking/budogu-admin/internal/domain/product"
	"github.com/xenking/budogu-admin/internal/handler"
	"github.com/xenking/budogu-admin/internal/seed"
	"github.com/xenking/budogu-admin/internal/storage/memory"
	"github.com/xenking/budogu-admin/internal/storage/postgres"
	"github.com/xenking/budogu-admin/internal/web"
	"github.com/xenking/budogu-admin/pkg/health"
	"github.com/xenking/budogu-admin/pkg/httpmiddleware"
)

// RunAPI serves the catalog API until ctx is done.
func RunAPI(ctx context.Context, lg *zap.Logger, m *app.Telemetry, cfg *APIConfig) error {
	lg.Info("Initializing catalog API", zap.String("addr", cfg.Addr))

	hs := health.New()
	hs.AddLivenessCheck("goroutines", time.Second, health.GoroutineCountCheck(10000))

	repo, closeRepo, err := openProducts(ctx, lg, cfg, hs)
	if err != nil {
		return err
	}
	defer closeRepo()

	keys, err := auth.NewKeySet([]byte(cfg.APIKeyPepper), cfg.APIKeyHashes)
	if err != nil {
		return errors.Wrap(err, "parse api keys")
	}
	if !keys.Enabled() {
		lg.Warn("No API keys configured, mutating routes are open")
	}

	h, err := handler.NewHandler(repo, keys, m.MeterProvider())
	if err != nil {
		return errors.Wrap(err, "create handler")
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/livez", hs.LiveEndpoint)
	mux.HandleFunc("/readyz", hs.ReadyEndpoint)
	h.Register(mux)

	server := newServer(cfg.Addr, httpmiddleware.Wrap(mux,
		httpmiddleware.InjectLogger(zctx.From(ctx)),
		httpmiddleware.Recovery(),
		httpmiddleware.CORS(httpmiddleware.CORSConfig{
			AllowOrigins:     cfg.CORS.Origins,
			AllowHeaders:     []string{"Content-Type", "Authorization", handler.HeaderAPIKey},
			AllowCredentials: cfg.CORS.AllowCredentials,
			MaxAge:           86400,
		}),
		httpmiddleware.RateLimitWithCleanup(ctx, httpmiddleware.RateLimitConfig{
			Max:    cfg.RateLimit.Max,
			Window: cfg.RateLimit.Window,
		}),
		httpmiddleware.RequestID(),
		httpmiddleware.Instrument("catalog-api", m.TracerProvider(), m.MeterProvider()),
		httpmiddleware.LogRequests(),
	))

	hs.Start(ctx, 10*time.Second)
	hs.SetReady(true)
	return serve(ctx, lg, server, hs, cfg.Graceful)
}

// openProducts returns the PostgreSQL store when a database is configured
// and a seeded in-memory store otherwise.
func openProducts(ctx context.Context, lg *zap.Logger, cfg *APIConfig, hs *health.Health) (product.Repository, func(), error) {
	if cfg.DatabaseURL == "" {
		var (
			products []product.Product
			err      error
		)
		if cfg.SeedFile != "" {
			products, err = seed.ReadFile(cfg.SeedFile)
		} else {
			products, err = seed.Read(bytes.NewReader(db.SeedProducts))
		}
		if err != nil {
			return nil, nil, errors.Wrap(err, "load seed")
		}
		lg.Info("Using in-memory store", zap.Int("products", len(products)))
		return memory.NewProductRepository(products...), func() {}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, errors.Wrap(err, "create db pool")
	}
	if err := postgres.RunMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, errors.Wrap(err, "run migrations")
	}
	hs.AddReadinessCheck("postgres", 5*time.Second, func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	return postgres.NewProductRepository(pool), pool.Close, nil
}

// RunDashboard serves the admin dashboard until ctx is done.
func RunDashboard(ctx context.Context, lg *zap.Logger, m *app.Telemetry, cfg *DashboardConfig) error {
	lg.Info("Initializing dashboard",
		zap.String("addr", cfg.Addr),
		zap.String("catalog", cfg.CatalogURL),
	)

	client := catalog.New(catalog.Config{
		BaseURL: cfg.CatalogURL,
		APIKey:  cfg.CatalogAPIKey,
		Timeout: cfg.CatalogTimeout,
	}, m.TracerProvider())

	hs := health.New()
	hs.AddLivenessCheck("goroutines", time.Second, health.GoroutineCountCheck(10000))
	hs.AddReadinessCheck("catalog", 5*time.Second, client.Ping)

	h := web.NewHandler(client, web.Config{
		SessionTTL:    cfg.SessionTTL,
		SecureCookies: cfg.SecureCookies,
		MaxSessions:   cfg.MaxSessions,
	})
	h.StartSessionEviction(ctx)

	mux := http.NewServeMux()
	mux.HandleFunc("/livez", hs.LiveEndpoint)
	mux.HandleFunc("/readyz", hs.ReadyEndpoint)
	h.Register(mux)

	server := newServer(cfg.Addr, httpmiddleware.Wrap(mux,
		httpmiddleware.InjectLogger(zctx.From(ctx)),
		httpmiddleware.Recovery(),
		httpmiddleware.RateLimitWithCleanup(ctx, httpmiddleware.RateLimitConfig{
			Max:    cfg.RateLimit.Max,
			Window: cfg.RateLimit.Window,
		}),
		httpmiddleware.RequestID(),
		httpmiddleware.Instrument("dashboard", m.TracerProvider(), m.MeterProvider()),
		httpmiddleware.LogRequests(),
	))

	hs.Start(ctx, 10*time.Second)
	hs.SetReady(true)
	return serve(ctx, lg, server, hs, cfg.Graceful)
}
