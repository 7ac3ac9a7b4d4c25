package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"

	"github.com/example/drillbot/internal/config"
)

//go:embed migrations
var migrations embed.FS

// ErrNotFound is returned when a list does not exist.
var ErrNotFound = errors.New("database: not found")

// Connect opens the list catalog and applies pending migrations.
func Connect(ctx context.Context, cfg config.DatabaseConfig) (*sqlx.DB, error) {
	var dialect goose.Dialect
	switch cfg.Driver {
	case "sqlite3":
		dialect = goose.DialectSQLite3
		// Create data directory if it doesn't exist
		if dir := filepath.Dir(cfg.DSN); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create data directory: %w", err)
			}
		}
	case "postgres":
		dialect = goose.DialectPostgres
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := sqlx.ConnectContext(ctx, cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := migrate(ctx, db, dialect, cfg.Driver); err != nil {
		db.Close()
		return nil, err
	}

	if cfg.Driver == "sqlite3" {
		// SQLite doesn't support multiple writers
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
	}

	return db, nil
}

func migrate(ctx context.Context, db *sqlx.DB, dialect goose.Dialect, dir string) error {
	fsys, err := fs.Sub(migrations, filepath.ToSlash(filepath.Join("migrations", dir)))
	if err != nil {
		return fmt.Errorf("migrations for %s: %w", dir, err)
	}

	provider, err := goose.NewProvider(dialect, db.DB, fsys)
	if err != nil {
		return fmt.Errorf("goose new provider: %w", err)
	}

	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}
