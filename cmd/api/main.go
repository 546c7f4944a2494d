package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/avillagomez/backoffice-backend/api/controllers"
	"github.com/avillagomez/backoffice-backend/api/routes"
	"github.com/avillagomez/backoffice-backend/internal/analytics"
	"github.com/avillagomez/backoffice-backend/internal/catalog"
	"github.com/avillagomez/backoffice-backend/internal/customerorders"
	"github.com/avillagomez/backoffice-backend/internal/orderlists"
	"github.com/avillagomez/backoffice-backend/internal/sales"
	"github.com/avillagomez/backoffice-backend/internal/users"
	"github.com/avillagomez/backoffice-backend/pkg/auth/session"
	"github.com/avillagomez/backoffice-backend/pkg/config"
	"github.com/avillagomez/backoffice-backend/pkg/db"
	"github.com/avillagomez/backoffice-backend/pkg/env"
	"github.com/avillagomez/backoffice-backend/pkg/logger"
	"github.com/avillagomez/backoffice-backend/pkg/metrics"
	"github.com/avillagomez/backoffice-backend/pkg/migrate"
	"github.com/avillagomez/backoffice-backend/pkg/redis"
	"github.com/avillagomez/backoffice-backend/pkg/storage/gcs"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment", nil)
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: cfg.App.ServiceName,
		Level:       cfg.App.LogLevel,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.Auth)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	gcsClient, err := gcs.NewClient(context.Background(), cfg.Storage, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap object storage", err)
		os.Exit(1)
	}

	svcs, err := buildServices(cfg, dbClient, redisClient, sessionManager, gcsClient)
	if err != nil {
		logg.Error(context.Background(), "failed to wire services", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	healthChecks := map[string]controllers.Pinger{
		"database": dbClient,
		"redis":    redisClient,
		"storage":  gcsClient,
	}

	handler := routes.NewRouter(
		cfg,
		logg,
		sessionManager,
		httpMetrics,
		promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		healthChecks,
		svcs,
	)

	addr := ":" + env.Get("PORT", fmt.Sprintf("%d", cfg.HTTP.Port))

	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scoped := logg.WithFields(map[string]any{"env": cfg.App.Env, "addr": addr})
	scoped.Info(ctx, "starting api server")

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			scoped.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		scoped.Info(context.Background(), "shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			scoped.Error(shutdownCtx, "graceful shutdown failed", err)
			os.Exit(1)
		}
		scoped.Info(context.Background(), "api server stopped")
	}
}

func buildServices(
	cfg *config.Config,
	dbClient *db.Client,
	redisClient *redis.Client,
	sessionManager *session.Manager,
	gcsClient *gcs.Client,
) (routes.Services, error) {
	usersService, err := users.NewService(users.ServiceParams{
		Repo:           users.NewRepository(dbClient.DB()),
		SessionManager: sessionManager,
		RateLimiter:    redisClient,
		AppConfig:      cfg.App,
		AuthConfig:     cfg.Auth,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		return routes.Services{}, fmt.Errorf("users service: %w", err)
	}

	catalogService, err := catalog.NewService(catalog.NewRepository(dbClient.DB()), dbClient)
	if err != nil {
		return routes.Services{}, fmt.Errorf("catalog service: %w", err)
	}

	orderListsService, err := orderlists.NewService(orderlists.NewRepository(dbClient.DB()), dbClient)
	if err != nil {
		return routes.Services{}, fmt.Errorf("order lists service: %w", err)
	}

	customerOrdersService, err := customerorders.NewService(customerorders.NewRepository(dbClient.DB()), dbClient)
	if err != nil {
		return routes.Services{}, fmt.Errorf("customer orders service: %w", err)
	}

	salesService, err := sales.NewService(sales.NewRepository(dbClient.DB()), dbClient, gcsClient, cfg.Storage.DocumentFolder)
	if err != nil {
		return routes.Services{}, fmt.Errorf("sales service: %w", err)
	}

	analyticsService, err := analytics.NewService(analytics.NewRepository(dbClient.DB()))
	if err != nil {
		return routes.Services{}, fmt.Errorf("analytics service: %w", err)
	}

	return routes.Services{
		Users:          usersService,
		Catalog:        catalogService,
		OrderLists:     orderListsService,
		CustomerOrders: customerOrdersService,
		Sales:          salesService,
		Analytics:      analyticsService,
	}, nil
}
