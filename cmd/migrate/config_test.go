package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseCLI(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("migrate"),
		kong.Exit(func(code int) {
			t.Fatalf("unexpected Kong exit %d", code)
		}),
	)
	require.NoError(t, err)

	ctx, err := parser.Parse(args)
	require.NoError(t, err)
	return cli, ctx
}

func TestMigrationsDir(t *testing.T) {
	assert.Equal(t, filepath.Join("internal", "platform", "database", "migrations", "postgres"), migrationsDir("postgres"))
	assert.Equal(t, filepath.Join("internal", "platform", "database", "migrations", "sqlite"), migrationsDir("sqlite"))
}

func TestCLI_Defaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("DB_DSN", "")
	_ = os.Unsetenv("DB_DRIVER")
	_ = os.Unsetenv("DB_DSN")

	cli, _ := parseCLI(t, "status")

	assert.Equal(t, "postgres", cli.Driver)
	assert.Empty(t, cli.DSN)
}

func TestCLI_EnvFallback(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_DSN", "/tmp/from-env.db")

	cli, ctx := parseCLI(t, "status")

	assert.Equal(t, "sqlite", cli.Driver)
	assert.Equal(t, "/tmp/from-env.db", cli.DSN)
	assert.Equal(t, "status", ctx.Command())
}

func TestCLI_CreateRequiresName(t *testing.T) {
	parser, err := kong.New(&CLI{}, kong.Name("migrate"), kong.Exit(func(int) {}))
	require.NoError(t, err)

	_, err = parser.Parse([]string{"create"})
	assert.Error(t, err)
}

func TestCLI_UpStatusDownAgainstSQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate.db")

	for _, cmd := range []string{"up", "status", "down"} {
		cli, ctx := parseCLI(t, "--driver=sqlite", "--dsn="+dbPath, cmd)
		require.NoError(t, ctx.Run(cli), cmd)
	}

	_, err := os.Stat(dbPath)
	require.NoError(t, err)
}

func TestCLI_Create(t *testing.T) {
	dir := t.TempDir()

	cli, ctx := parseCLI(t, "--driver=sqlite", "create", "add_author_index", "--dir="+dir)
	require.NoError(t, ctx.Run(cli))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasSuffix(entries[0].Name(), "_add_author_index.sql"), entries[0].Name())

	b, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(b), "-- +goose Up")
}
