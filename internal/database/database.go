package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gdg-garage/diet-forms/internal/config"
	"github.com/gdg-garage/diet-forms/internal/store"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the configured store backend and establishes its schema.
// Any failure wraps store.ErrUnavailable.
func Connect(ctx context.Context, cfg *config.Config) (store.Store, error) {
	var st store.Store
	switch cfg.StoreDriver {
	case config.DriverBolt:
		st = store.NewBoltStore(cfg.BoltPath)
	default:
		db, err := OpenSQLite(cfg.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", store.ErrUnavailable, err)
		}
		st = store.NewGormStore(db)
	}

	if err := st.Open(ctx); err != nil {
		st.Close()
		return nil, err
	}
	slog.Info("store opened", "driver", cfg.StoreDriver)
	return st, nil
}

// OpenSQLite opens a gorm handle on a SQLite file. SQLite allows a single
// writer, so the pool holds one connection.
func OpenSQLite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Discard})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}
