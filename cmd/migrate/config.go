package main

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"

	"booksearch/internal/config"
	"booksearch/internal/platform/database"

	"github.com/jackc/pgx/v5/stdlib"
)

// packageDir is where the database package lives relative to the repo root.
const packageDir = "internal/platform/database"

func migrationsDir(driver string) string {
	return filepath.Join(packageDir, database.MigrationsDir(driver))
}

type dbHandle struct {
	db    *sql.DB
	close func()
}

func openDB(ctx context.Context, driver, dsn string) (dbHandle, error) {
	if dsn == "" {
		dsn = config.DefaultDSN(driver)
	}

	switch driver {
	case database.DriverPostgres:
		pool, err := database.OpenPostgres(ctx, dsn)
		if err != nil {
			return dbHandle{}, err
		}
		db := stdlib.OpenDBFromPool(pool)
		return dbHandle{db: db, close: func() {
			_ = db.Close()
			pool.Close()
		}}, nil
	case database.DriverSQLite:
		db, err := database.OpenSQLite(dsn)
		if err != nil {
			return dbHandle{}, err
		}
		return dbHandle{db: db, close: func() { _ = db.Close() }}, nil
	default:
		return dbHandle{}, fmt.Errorf("unsupported database driver %q", driver)
	}
}
