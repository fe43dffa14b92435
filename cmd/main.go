package main

import (
	"context"
	"errors"
	"os"

	"github.com/ebaadraheem/skillmorph-cli/internal/repositories"
	"github.com/ebaadraheem/skillmorph-cli/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	opts := RunnerOpts{
		Config: config,
		Logger: logger,
	}

	// The database is optional until `setup database` has run; without it the
	// session simply starts anonymous and searches go unrecorded.
	if _, err := os.Stat(config.Database.Path); err == nil {
		if db, err := shared.NewDatabase(config.Database.Path); err == nil {
			shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
			opts.DB = db
			opts.Credentials = repositories.NewCredentialRepository(db)
			opts.Searches = repositories.NewSearchRepository(db, config.Catalog.HistoryEntries)
		} else {
			logger.Warn("failed to open database", "path", config.Database.Path, "error", err)
		}
	}

	runner := NewRunner(opts)

	app := &cli.Command{
		Name:     "skillmorph",
		Usage:    "Browse and manage SkillMorph courses from the terminal",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrNotLoggedIn) {
			logger.Error("not logged in")
			os.Exit(1)
		}
		logger.Fatalf("application error: %v", err)
	}
}

func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize local storage and import credentials",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Initialize database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupDatabase,
			},
			{
				Name:  "import",
				Usage: "Import session credentials from a browser cURL command",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "curl",
						Usage: "cURL command copied from browser dev tools",
					},
					&cli.StringFlag{
						Name:  "curl-file",
						Usage: "Path to a file containing the cURL command",
					},
				},
				Action: r.SetupImport,
			},
		},
	}
}
