package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"waitlist/internal/geo"
	httpapi "waitlist/internal/http"
	"waitlist/internal/landing"
	"waitlist/internal/platform/config"
	"waitlist/internal/platform/httpserver"
	"waitlist/internal/platform/logger"
	"waitlist/internal/platform/metrics"
	"waitlist/internal/platform/postgres"
	"waitlist/internal/platform/redis"
	subscriptionHandler "waitlist/internal/subscription/handler"
	subscriptionMetrics "waitlist/internal/subscription/metrics"
	subscriptionService "waitlist/internal/subscription/service"
	subscriptionStore "waitlist/internal/subscription/store"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal service packages.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Server.SlogLevel())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	m := metrics.New()
	checks := map[string]httpapi.Checker{}

	store, db, err := buildStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
		checks["postgres"] = db.PingContext
	}

	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		checks["redis"] = redisClient.Health
		log.Info("redis connected")
	}

	svcOpts := []subscriptionService.Option{
		subscriptionService.WithLogger(log),
		subscriptionService.WithMetrics(subscriptionMetrics.New(m.Registry)),
		subscriptionService.WithCountryResolver(buildResolver(cfg.Geo, redisClient, m, log)),
	}
	service := subscriptionService.New(store, svcOpts...)

	router := httpapi.NewRouter(httpapi.Config{
		Logger:          log,
		Metrics:         m,
		AllowedOrigins:  cfg.Server.AllowedOrigins,
		RequestTimeout:  cfg.Server.RequestTimeout,
		ReadinessChecks: checks,
	},
		landing.New(log),
		subscriptionHandler.New(service, log, cfg.Server.AdminToken),
	)

	srv := httpserver.New(cfg.Server.Addr, router)
	errCh := make(chan error, 1)
	go func() {
		log.Info("starting waitlist", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// buildStore selects Postgres when configured and the in-memory store
// otherwise.
func buildStore(ctx context.Context, cfg config.Config, log *slog.Logger) (subscriptionService.Store, *sql.DB, error) {
	db, err := postgres.Open(ctx, cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	if db == nil {
		log.Warn("no database configured, using in-memory subscription store")
		return subscriptionStore.NewInMemory(), nil, nil
	}
	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		log.Info("subscription schema applied")
	}
	log.Info("postgres connected")
	return subscriptionStore.NewPostgres(db), db, nil
}

func buildResolver(cfg config.GeoConfig, redisClient *redis.Client, m *metrics.Metrics, log *slog.Logger) *geo.Resolver {
	opts := []geo.Option{
		geo.WithLogger(log),
		geo.WithMetrics(geo.NewMetrics(m.Registry)),
		geo.WithTimeout(cfg.Timeout),
	}
	if cfg.Enabled {
		opts = append(opts, geo.WithLookup(geo.NewHTTPClient(cfg.BaseURL, cfg.Timeout)))
	}
	if redisClient != nil {
		opts = append(opts, geo.WithCache(geo.NewRedisCache(redisClient.Client), cfg.CacheTTL))
	}
	return geo.NewResolver(opts...)
}
