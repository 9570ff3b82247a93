package main

import (
	"context"
	"fmt"

	"booksearch/internal/platform/database"

	"github.com/pressly/goose/v3"
)

// CLI is the migrate command line. Connection flags fall back to the same
// environment variables the api server reads.
type CLI struct {
	Driver string `help:"Database driver." env:"DB_DRIVER" default:"postgres" enum:"postgres,sqlite"`
	DSN    string `help:"Postgres DSN or SQLite file path (defaults per driver)." env:"DB_DSN"`

	Up     UpCmd     `cmd:"" default:"1" help:"Apply all pending migrations"`
	Down   DownCmd   `cmd:"" help:"Roll back the most recent migration"`
	Status StatusCmd `cmd:"" help:"Print the state of every migration"`
	Create CreateCmd `cmd:"" help:"Create a new SQL migration file"`
}

type UpCmd struct{}

func (c *UpCmd) Run(cli *CLI) error {
	return cli.withDB(func(d dbHandle) error {
		if err := database.Migrate(d.db, cli.Driver); err != nil {
			return err
		}
		fmt.Println("Migrations applied successfully")
		return nil
	})
}

type DownCmd struct{}

func (c *DownCmd) Run(cli *CLI) error {
	return cli.withDB(func(d dbHandle) error {
		if err := database.Rollback(d.db, cli.Driver); err != nil {
			return err
		}
		fmt.Println("Migrations rolled back successfully")
		return nil
	})
}

type StatusCmd struct{}

func (c *StatusCmd) Run(cli *CLI) error {
	return cli.withDB(func(d dbHandle) error {
		return database.Status(d.db, cli.Driver)
	})
}

type CreateCmd struct {
	Name string `arg:"" help:"Name of the migration, e.g. add_search_index"`
	Dir  string `help:"Directory to write the migration to (defaults to the embedded migrations of the driver)." env:"MIGRATIONS_DIR"`
}

func (c *CreateCmd) Run(cli *CLI) error {
	dir := c.Dir
	if dir == "" {
		dir = migrationsDir(cli.Driver)
	}

	goose.SetSequential(true)
	if err := goose.Create(nil, dir, c.Name, "sql"); err != nil {
		return fmt.Errorf("create migration: %w", err)
	}
	fmt.Printf("Migration created: %s\n", c.Name)
	return nil
}

func (cli *CLI) withDB(fn func(dbHandle) error) error {
	d, err := openDB(context.Background(), cli.Driver, cli.DSN)
	if err != nil {
		return err
	}
	defer d.close()
	return fn(d)
}
