package database

import (
	"database/sql"
	"embed"
	"fmt"
	"path"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

// goose keeps its base FS and dialect in package state.
var gooseMu sync.Mutex

// MigrationsDir is the directory, relative to this package, holding the
// migrations of driver.
func MigrationsDir(driver string) string {
	return path.Join("migrations", driver)
}

func gooseDialect(driver string) (string, error) {
	switch driver {
	case DriverPostgres:
		return "postgres", nil
	case DriverSQLite:
		return "sqlite3", nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

func withGoose(driver string, fn func(dir string) error) error {
	dialect, err := gooseDialect(driver)
	if err != nil {
		return err
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrationsFS)
	defer goose.SetBaseFS(nil)
	if err := goose.SetDialect(dialect); err != nil {
		return err
	}
	return fn(MigrationsDir(driver))
}

// Migrate applies every pending migration.
func Migrate(db *sql.DB, driver string) error {
	return withGoose(driver, func(dir string) error {
		if err := goose.Up(db, dir); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
		return nil
	})
}

// Rollback reverts the most recent migration.
func Rollback(db *sql.DB, driver string) error {
	return withGoose(driver, func(dir string) error {
		if err := goose.Down(db, dir); err != nil {
			return fmt.Errorf("rollback migration: %w", err)
		}
		return nil
	})
}

// Status prints the state of every migration.
func Status(db *sql.DB, driver string) error {
	return withGoose(driver, func(dir string) error {
		return goose.Status(db, dir)
	})
}

// CollectMigrations parses the embedded migrations of driver.
func CollectMigrations(driver string) (goose.Migrations, error) {
	var migrations goose.Migrations
	err := withGoose(driver, func(dir string) error {
		var err error
		migrations, err = goose.CollectMigrations(dir, 0, goose.MaxVersion)
		return err
	})
	return migrations, err
}
