package main

import (
	"context"
	"fmt"
	"os"

	"github.com/brewthree/brewpos-backend/pkg/config"
	"github.com/brewthree/brewpos-backend/pkg/db"
	"github.com/brewthree/brewpos-backend/pkg/logger"
	"github.com/brewthree/brewpos-backend/pkg/migrate"
)

func main() {
	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(logger.Options{
		ServiceName: cfg.App.Name + "-migrate",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})

	ctx := context.Background()
	if err := run(ctx, cfg, command); err != nil {
		log.Error(ctx, "migration failed", err)
		os.Exit(1)
	}
	log.Info(log.WithField(ctx, "command", command), "migration command completed")
}

func run(ctx context.Context, cfg *config.Config, command string) error {
	client, err := db.New(cfg.DB)
	if err != nil {
		return err
	}
	defer client.Close()

	sqlDB, err := client.DB(ctx).DB()
	if err != nil {
		return err
	}

	switch command {
	case "up":
		return migrate.Up(ctx, sqlDB)
	case "down":
		return migrate.DownOne(ctx, sqlDB)
	case "status":
		return migrate.Status(ctx, sqlDB)
	default:
		return fmt.Errorf("unknown command %q (want up, down or status)", command)
	}
}
