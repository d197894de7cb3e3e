package db

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// WAL journaling with relaxed sync; busy_timeout lets short writers queue
// instead of failing with SQLITE_BUSY.
const pragmas = "_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000"

// Connector opens a short-lived gorm handle per operation. Nothing is held
// open between operations.
type Connector struct {
	path string
	log  *zap.Logger
}

func NewConnector(path string, log *zap.Logger) *Connector {
	if log == nil {
		log = zap.NewNop()
	}
	return &Connector{path: path, log: log}
}

func (c *Connector) Path() string { return c.path }

func (c *Connector) DSN() string { return c.path + "?" + pragmas }

func (c *Connector) Open(ctx context.Context) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}
	db, err := gorm.Open(sqlite.Open(c.DSN()), cfg)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", c.path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(time.Minute)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite %s: %w", c.path, err)
	}
	return db.WithContext(ctx), nil
}

// Close releases a handle returned by Open.
func (c *Connector) Close(db *gorm.DB) {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		c.log.Warn("sqlite: close failed", zap.String("path", c.path), zap.Error(err))
	}
}

// Ping opens and closes a connection, reporting whether the store is usable.
func (c *Connector) Ping(ctx context.Context) error {
	db, err := c.Open(ctx)
	if err != nil {
		return err
	}
	c.Close(db)
	return nil
}
