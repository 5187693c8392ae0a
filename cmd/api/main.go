package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/brewthree/brewpos-backend/api"
	"github.com/brewthree/brewpos-backend/api/controllers"
	"github.com/brewthree/brewpos-backend/api/routes"
	"github.com/brewthree/brewpos-backend/internal/cart"
	"github.com/brewthree/brewpos-backend/internal/catalog"
	"github.com/brewthree/brewpos-backend/internal/checkout"
	"github.com/brewthree/brewpos-backend/internal/orders"
	"github.com/brewthree/brewpos-backend/internal/reports"
	"github.com/brewthree/brewpos-backend/internal/users"
	"github.com/brewthree/brewpos-backend/pkg/config"
	"github.com/brewthree/brewpos-backend/pkg/db"
	"github.com/brewthree/brewpos-backend/pkg/logger"
	"github.com/brewthree/brewpos-backend/pkg/metrics"
	"github.com/brewthree/brewpos-backend/pkg/migrate"
	"github.com/brewthree/brewpos-backend/pkg/redis"
	"github.com/brewthree/brewpos-backend/pkg/security"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(logger.Options{
		ServiceName: cfg.App.Name,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil && err != context.Canceled {
		log.Error(ctx, "api exited with error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	dbClient, err := db.New(cfg.DB)
	if err != nil {
		return err
	}
	defer dbClient.Close()

	if err := migrate.AutoRun(ctx, cfg.DB, dbClient); err != nil {
		return err
	}

	var reportCache *redis.Client
	if cfg.Features.ReportCaching {
		reportCache, err = redis.New(cfg.Redis)
		if err != nil {
			log.Warn(log.WithField(ctx, "addr", cfg.Redis.Addr), "redis unavailable, report caching disabled")
			reportCache = nil
		} else {
			defer reportCache.Close()
		}
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	sessions := cart.NewSessions()
	hasher := security.NewHasher(cfg.Password)

	catalogRepo := catalog.NewRepository(dbClient)
	ordersRepo := orders.NewRepository(dbClient)
	usersRepo := users.NewRepository(dbClient)
	reportsRepo := reports.NewRepository(dbClient)

	catalogSvc, err := catalog.NewService(catalog.Params{Repo: catalogRepo, Log: log})
	if err != nil {
		return err
	}
	checkoutSvc, err := checkout.NewService(checkout.Params{DB: dbClient, Sessions: sessions, Log: log})
	if err != nil {
		return err
	}
	ordersSvc, err := orders.NewService(orders.Params{Repo: ordersRepo, Log: log})
	if err != nil {
		return err
	}
	usersSvc, err := users.NewService(users.Params{Repo: usersRepo, Hasher: hasher, Log: log})
	if err != nil {
		return err
	}

	reportParams := reports.Params{Repo: reportsRepo, Catalog: catalogRepo, Log: log}
	if reportCache != nil {
		reportParams.Cache = reportCache
	}
	reportsSvc, err := reports.NewService(reportParams)
	if err != nil {
		return err
	}

	router := routes.New(routes.Controllers{
		Health:   controllers.NewHealth(dbClient),
		Products: controllers.NewProducts(catalogSvc),
		Cart:     controllers.NewCart(sessions, catalogSvc),
		Orders:   controllers.NewOrders(checkoutSvc, ordersSvc),
		Stats:    controllers.NewStats(reportsSvc),
		Users:    controllers.NewUsers(usersSvc),
	}, log, httpMetrics, registry)

	server := api.NewServer(cfg.App, router, log)
	return server.Run(ctx)
}
