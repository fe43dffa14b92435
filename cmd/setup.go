package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ebaadraheem/skillmorph-cli/internal/services"
	"github.com/ebaadraheem/skillmorph-cli/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupDatabase initializes the database and runs migrations.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	var config *shared.Config
	if _, err := os.Stat(configPath); err == nil {
		if config, err = shared.LoadConfig(configPath); err != nil {
			r.logger.Warn("failed to load config, using defaults", "error", err)
			config = shared.DefaultConfig()
		}
	} else {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
			config = shared.DefaultConfig()
		} else {
			r.logger.Info("config file created", "path", configPath)
			if config, err = shared.LoadConfig(configPath); err != nil {
				r.logger.Warn("failed to load created config, using defaults", "error", err)
				config = shared.DefaultConfig()
			}
		}
	}

	r.logger.Info("initializing database", "path", config.Database.Path)

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()

	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)

	r.logger.Info("running database migrations")
	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	r.logger.Infof("setup complete for database: %v", config.Database.Path)
	return nil
}

// SetupImport pulls session credentials out of a browser cURL command.
//
// Copying a request from the browser's dev tools captures both the bearer
// token and the refresh cookie; importing them lets the CLI resume the
// browser's session without a password login.
func (r *Runner) SetupImport(ctx context.Context, cmd *cli.Command) error {
	curlCmd := cmd.String("curl")
	curlFile := cmd.String("curl-file")

	if curlCmd == "" && curlFile == "" {
		return fmt.Errorf("%w: either --curl or --curl-file must be provided", shared.ErrMissingArgument)
	}

	if curlCmd != "" && curlFile != "" {
		return fmt.Errorf("%w: cannot specify both --curl and --curl-file", shared.ErrInvalidArgument)
	}

	r.logger.Info("parsing cURL command for session credentials")

	var creds *shared.CurlCredentials
	var err error

	if curlFile != "" {
		creds, err = shared.ParseCurlFile(curlFile)
		if err != nil {
			return fmt.Errorf("failed to parse cURL file: %w", err)
		}
	} else {
		creds, err = shared.ParseCurlCommand([]byte(curlCmd))
		if err != nil {
			return fmt.Errorf("failed to parse cURL command: %w", err)
		}
	}

	if r.credentials == nil {
		return fmt.Errorf("%w: run 'skillmorph setup database' first", shared.ErrMissingConfig)
	}

	if creds.AccessToken != "" {
		if err := r.credentials.SetToken(creds.AccessToken); err != nil {
			return fmt.Errorf("failed to store access token: %w", err)
		}
	}
	if creds.Cookie != "" {
		if err := r.credentials.SetCookie(creds.Cookie); err != nil {
			return fmt.Errorf("failed to store refresh cookie: %w", err)
		}
		r.gateway.SetAmbientCookie(creds.Cookie)
	}

	// Validate the imported credentials through the normal resume path. An
	// expired token is fine as long as the cookie can mint a fresh one.
	r.session.Authenticate(ctx, creds.AccessToken)
	if r.session.State() != services.Authenticated {
		return fmt.Errorf("%w: imported credentials were rejected", shared.ErrAuthFailed)
	}

	user := r.session.CurrentUser()
	return r.writePlain("✓ Imported session for %s\n", user.DisplayName)
}
