package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/brewthree/brewpos-backend/internal/orders"
	"github.com/brewthree/brewpos-backend/internal/scheduler"
	"github.com/brewthree/brewpos-backend/pkg/config"
	"github.com/brewthree/brewpos-backend/pkg/db"
	"github.com/brewthree/brewpos-backend/pkg/logger"
	"github.com/brewthree/brewpos-backend/pkg/metrics"
	"github.com/brewthree/brewpos-backend/pkg/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(logger.Options{
		ServiceName: cfg.App.Name + "-status-worker",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil && err != context.Canceled {
		log.Error(ctx, "status worker exited with error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	dbClient, err := db.New(cfg.DB)
	if err != nil {
		return err
	}
	defer dbClient.Close()

	redisClient, err := redis.New(cfg.Redis)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	schedulerMetrics := metrics.NewSchedulerMetrics(prometheus.NewRegistry())

	statusJob, err := scheduler.NewStatusAdvanceJob(scheduler.StatusAdvanceParams{
		Repo:    orders.NewRepository(dbClient),
		Log:     log,
		Metrics: schedulerMetrics,
	})
	if err != nil {
		return err
	}

	registry := scheduler.NewRegistry()
	if err := registry.Register(statusJob); err != nil {
		return err
	}

	svc, err := scheduler.NewService(scheduler.Params{
		Registry: registry,
		Redis:    redisClient,
		Log:      log,
		Metrics:  schedulerMetrics,
		Config:   cfg.Scheduler,
	})
	if err != nil {
		return err
	}

	return svc.Run(ctx)
}
