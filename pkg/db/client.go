package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/brewthree/brewpos-backend/pkg/config"
	"github.com/brewthree/brewpos-backend/pkg/errors"
)

// Client wraps the gorm handle and owns transaction management.
type Client struct {
	gorm *gorm.DB
}

// New opens a database connection from config. DSNs starting with "file:"
// or ":memory:" select the sqlite driver, which the test suites rely on.
func New(cfg config.DBConfig) (*Client, error) {
	dialector := dialectorFor(cfg.DSN)

	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "opening database")
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "resolving sql.DB")
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return &Client{gorm: gdb}, nil
}

// NewFromGorm wraps an already opened handle. Test helpers use this.
func NewFromGorm(gdb *gorm.DB) *Client {
	return &Client{gorm: gdb}
}

func dialectorFor(dsn string) gorm.Dialector {
	if strings.HasPrefix(dsn, "file:") || strings.Contains(dsn, ":memory:") {
		return sqlite.Open(dsn)
	}
	return postgres.Open(dsn)
}

// DB returns the underlying gorm handle scoped to ctx.
func (c *Client) DB(ctx context.Context) *gorm.DB {
	return c.gorm.WithContext(ctx)
}

// Ping verifies the connection is alive.
func (c *Client) Ping(ctx context.Context) error {
	sqlDB, err := c.gorm.DB()
	if err != nil {
		return errors.Wrap(errors.CodeDependency, err, "resolving sql.DB")
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		return errors.Wrap(errors.CodeDependency, err, "pinging database")
	}
	return nil
}

// Close releases the connection pool.
func (c *Client) Close() error {
	sqlDB, err := c.gorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// WithTx runs fn inside a transaction. The transaction is rolled back on
// error or panic and committed otherwise.
func (c *Client) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) (err error) {
	tx := c.gorm.WithContext(ctx).Begin()
	if tx.Error != nil {
		return errors.Wrap(errors.CodeDependency, tx.Error, "beginning transaction")
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			err = errors.New(errors.CodeInternal, fmt.Sprintf("panic in transaction: %v", r))
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			return errors.Wrap(errors.CodeDependency, rbErr, "rolling back transaction")
		}
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return errors.Wrap(errors.CodeDependency, err, "committing transaction")
	}
	return nil
}
