package migrate

import (
	"context"
	"database/sql"
	"embed"

	"github.com/pressly/goose/v3"

	"github.com/brewthree/brewpos-backend/pkg/errors"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Up applies all pending migrations.
func Up(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Wrap(errors.CodeInternal, err, "setting goose dialect")
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return errors.Wrap(errors.CodeDependency, err, "applying migrations")
	}
	return nil
}

// Status prints migration status to stdout.
func Status(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Wrap(errors.CodeInternal, err, "setting goose dialect")
	}
	if err := goose.StatusContext(ctx, db, "migrations"); err != nil {
		return errors.Wrap(errors.CodeDependency, err, "reading migration status")
	}
	return nil
}

// DownOne rolls back the most recent migration.
func DownOne(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Wrap(errors.CodeInternal, err, "setting goose dialect")
	}
	if err := goose.DownContext(ctx, db, "migrations"); err != nil {
		return errors.Wrap(errors.CodeDependency, err, "rolling back migration")
	}
	return nil
}
