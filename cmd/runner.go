package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"os"

	"github.com/charmbracelet/log"
	"github.com/ebaadraheem/skillmorph-cli/internal/repositories"
	"github.com/ebaadraheem/skillmorph-cli/internal/services"
	"github.com/ebaadraheem/skillmorph-cli/internal/shared"
	"github.com/ebaadraheem/skillmorph-cli/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config      *shared.Config
	db          *sql.DB
	gateway     *services.Gateway
	session     *services.SessionService
	catalog     *services.CatalogService
	account     *services.AccountService
	engine      *tasks.CatalogEngine
	credentials *repositories.CredentialRepository
	searches    *repositories.SearchRepository
	logger      *log.Logger
	output      io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config      *shared.Config
	DB          *sql.DB
	Gateway     *services.Gateway
	Credentials *repositories.CredentialRepository
	Searches    *repositories.SearchRepository
	Logger      *log.Logger
	Output      io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Gateway == nil {
		jar, _ := cookiejar.New(nil)
		client := &http.Client{Jar: jar, Timeout: opts.Config.API.Timeout()}
		opts.Gateway = services.NewGateway(opts.Config.API.BaseURL, client, opts.Logger)
		opts.Gateway.SetRateLimit(opts.Config.API.RequestsPerSec)
	}

	var store services.CredentialStore
	if opts.Credentials != nil {
		store = opts.Credentials
	}
	var recorder services.SearchRecorder
	if opts.Searches != nil {
		recorder = opts.Searches
	}

	session := services.NewSessionService(opts.Gateway, store, opts.Logger)
	catalog := services.NewCatalogService(opts.Gateway, recorder, opts.Logger)
	account := services.NewAccountService(opts.Gateway, opts.Logger)

	return &Runner{
		config:      opts.Config,
		db:          opts.DB,
		gateway:     opts.Gateway,
		session:     session,
		catalog:     catalog,
		account:     account,
		engine:      tasks.NewCatalogEngine(catalog, account),
		credentials: opts.Credentials,
		searches:    opts.Searches,
		logger:      opts.Logger,
		output:      opts.Output,
	}
}

// SetLogger swaps the runner's logger, propagating it to nothing else; the
// services keep the logger they were built with.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, catalogCommand, courseCommand, instructorCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// resume restores the persisted session: the ambient refresh cookie goes to
// the gateway, then the stored access token (possibly stale, possibly empty)
// runs through the validate-refresh-retry path. The outcome is observed via
// session state, never an error.
func (r *Runner) resume(ctx context.Context) {
	var token string

	if r.credentials != nil {
		if cookie, err := r.credentials.Cookie(); err == nil && cookie != "" {
			r.gateway.SetAmbientCookie(cookie)
		}

		stored, err := r.credentials.Token()
		if err != nil {
			r.logger.Warn("failed to read stored token", "error", err)
		}
		token = stored
	}

	r.session.Authenticate(ctx, token)
	r.catalog.SetUser(r.session.UserID())
}

// requireUser resumes the session and fails with [shared.ErrNotLoggedIn]
// when no identity could be established.
func (r *Runner) requireUser(ctx context.Context) error {
	r.resume(ctx)
	if r.session.State() != services.Authenticated {
		return fmt.Errorf("%w: run 'skillmorph auth login' first", shared.ErrNotLoggedIn)
	}
	return nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
