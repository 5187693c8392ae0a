package migrate

import (
	"context"

	"github.com/brewthree/brewpos-backend/pkg/config"
	"github.com/brewthree/brewpos-backend/pkg/db"
	"github.com/brewthree/brewpos-backend/pkg/errors"
)

// AutoRun applies pending migrations at startup when DB.AutoMigrate is set.
// Intended for development and single-instance deploys only.
func AutoRun(ctx context.Context, cfg config.DBConfig, client *db.Client) error {
	if !cfg.AutoMigrate {
		return nil
	}
	sqlDB, err := client.DB(ctx).DB()
	if err != nil {
		return errors.Wrap(errors.CodeDependency, err, "resolving sql.DB for migrations")
	}
	return Up(ctx, sqlDB)
}
