package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/likesync/internal/repositories"
	"github.com/desertthunder/likesync/internal/services"
	"github.com/desertthunder/likesync/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config  *shared.Config
	spotify services.CatalogService
	youtube services.SourceService
	logger  *log.Logger
	output  io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config  *shared.Config
	Spotify services.CatalogService
	YouTube services.SourceService
	Logger  *log.Logger
	Output  io.Writer
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

	return &Runner{
		config:  opts.Config,
		spotify: opts.Spotify,
		youtube: opts.YouTube,
		logger:  opts.Logger,
		output:  opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, syncCommand, spotifyCommand, youtubeCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// openDatabase opens the configured sqlite database for token storage.
func (r *Runner) openDatabase() (*sql.DB, error) {
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)
	return db, nil
}

// ensureAuth installs the cached credential for the named service ("spotify", "google")
// on the corresponding service's HTTP client.
//
// Returns a hint to run the auth command when no credential is cached.
func (r *Runner) ensureAuth(ctx context.Context, serviceName string) error {
	var svc services.OAuthService
	switch serviceName {
	case "spotify":
		oauthSvc, ok := r.spotify.(services.OAuthService)
		if !ok {
			return fmt.Errorf("%w: Spotify service not initialized", shared.ErrServiceUnavailable)
		}
		svc = oauthSvc
	case "google":
		oauthSvc, ok := r.youtube.(services.OAuthService)
		if !ok {
			return fmt.Errorf("%w: YouTube service not initialized", shared.ErrServiceUnavailable)
		}
		svc = oauthSvc
	default:
		return fmt.Errorf("%w: unknown service %q", shared.ErrInvalidArgument, serviceName)
	}

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewTokenRepository(db)
	token, err := repo.GetByService(serviceName)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return fmt.Errorf("%w: run 'likesync auth %s' first", shared.ErrNotAuthenticated, serviceName)
		}
		return err
	}

	if token.Expired() && token.RefreshToken() == "" {
		return fmt.Errorf("%w: run 'likesync auth %s' to reauthorize", shared.ErrTokenExpired, serviceName)
	}

	// The oauth2 client refreshes expired tokens transparently when a
	// refresh token is present.
	return svc.OAuthenticate(ctx, token.OAuth2())
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
