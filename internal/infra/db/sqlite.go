package db

import (
	"fmt"
	"log/slog"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/spendly/backend/config"
)

// InMemorySQLiteURL is a private in-memory database with foreign keys enforced.
const InMemorySQLiteURL = "file::memory:?_pragma=foreign_keys(1)"

// NewSQLiteConnection opens an SQLite database on a single pooled connection,
// so an in-memory database lives as long as the pool.
func NewSQLiteConnection(cfg *config.DatabaseConfig) (*Database, error) {
	url := cfg.URL
	if url == "" {
		url = InMemorySQLiteURL
	}

	db, err := gorm.Open(sqlite.Open(url), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(0)

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	slog.Info("Database connection established", "driver", "sqlite")

	return &Database{
		db:  db,
		cfg: cfg,
	}, nil
}
