package main

import (
	"fmt"
	"os"

	"booksearch/internal/config"

	"github.com/alecthomas/kong"
)

func main() {
	config.LoadEnvFiles()

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("migrate"),
		kong.Description("Manage the booksearch database schema."),
		kong.UsageOnError(),
	)

	if err := ctx.Run(&cli); err != nil {
		fmt.Fprintln(os.Stderr, "migrate:", err)
		os.Exit(1)
	}
}
