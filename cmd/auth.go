package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/desertthunder/likesync/internal/models"
	"github.com/desertthunder/likesync/internal/repositories"
	"github.com/desertthunder/likesync/internal/server"
	"github.com/desertthunder/likesync/internal/services"
	"github.com/desertthunder/likesync/internal/shared"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
)

// AuthSpotify performs the OAuth2 authorization flow for Spotify.
//
// Starts a local HTTP server, opens the browser for user authorization,
// exchanges the auth code for tokens, and caches them in the database.
func (r *Runner) AuthSpotify(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfigFor(cmd)
	if err != nil {
		return err
	}

	if config.Credentials.Spotify.ClientID == "" || config.Credentials.Spotify.ClientSecret == "" {
		return fmt.Errorf("%w: Spotify client_id and client_secret must be set in config.toml", shared.ErrMissingCredentials)
	}

	spotifyService, err := services.NewSpotifyService(config.Credentials.Spotify.Map())
	if err != nil {
		return fmt.Errorf("failed to create Spotify service: %w", err)
	}

	token, err := r.doOAuth(config, spotifyService, "Spotify")
	if err != nil {
		return err
	}

	if err := r.storeToken("spotify", token); err != nil {
		return err
	}

	if err := spotifyService.OAuthenticate(ctx, token); err != nil {
		return fmt.Errorf("failed to install token: %w", err)
	}
	r.spotify = spotifyService

	r.writePlainln("✓ Spotify authorization successful")
	r.writePlain("You can now use: likesync sync run\n")

	return nil
}

// AuthGoogle performs the OAuth2 authorization flow for Google / YouTube.
func (r *Runner) AuthGoogle(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfigFor(cmd)
	if err != nil {
		return err
	}

	if config.Credentials.Google.ClientID == "" || config.Credentials.Google.ClientSecret == "" {
		return fmt.Errorf("%w: Google client_id and client_secret must be set in config.toml", shared.ErrMissingCredentials)
	}

	youtubeService, err := services.NewYouTubeService(config.Credentials.Google.Map())
	if err != nil {
		return fmt.Errorf("failed to create YouTube service: %w", err)
	}

	token, err := r.doOAuth(config, youtubeService, "Google")
	if err != nil {
		return err
	}

	if err := r.storeToken("google", token); err != nil {
		return err
	}

	if err := youtubeService.OAuthenticate(ctx, token); err != nil {
		return fmt.Errorf("failed to install token: %w", err)
	}
	r.youtube = youtubeService

	r.writePlainln("✓ Google authorization successful")
	r.writePlain("You can now use: likesync sync run\n")

	return nil
}

// AuthStatus lists cached credentials and their expiry state.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewTokenRepository(db)
	tokens, err := repo.List(nil)
	if err != nil {
		return err
	}

	if len(tokens) == 0 {
		r.writePlain("No cached credentials.\n")
		r.writePlain("Run 'likesync auth spotify' and 'likesync auth google' to authenticate.\n")
		return nil
	}

	for _, token := range tokens {
		state := "valid"
		if token.Expired() {
			if token.RefreshToken() != "" {
				state = "expired (refreshable)"
			} else {
				state = "expired"
			}
		}
		r.writePlain("%s: %s", token.Service(), state)
		if !token.Expiry().IsZero() {
			r.writePlain(" (expires %s)", token.Expiry().Format(time.RFC822))
		}
		r.writePlain("\n")
	}

	return nil
}

// loadConfigFor loads the config named by the --config flag, falling back to
// the runner's config when the file is absent.
func (r *Runner) loadConfigFor(cmd *cli.Command) (*shared.Config, error) {
	configPath := cmd.String("config")
	if configPath == "" {
		configPath = "config.toml"
	}

	if _, err := os.Stat(configPath); err == nil {
		config, err := shared.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		r.config = config
		return config, nil
	}

	return r.config, nil
}

// storeToken caches the exchanged token in the database, replacing any prior
// credential for the service.
func (r *Runner) storeToken(service string, token *oauth2.Token) error {
	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewTokenRepository(db)
	if err := repo.Upsert(models.NewToken(0, service, token)); err != nil {
		return fmt.Errorf("failed to cache token: %w", err)
	}

	r.logger.Info("token cached", "service", service)
	return nil
}

// doOAuth executes the OAuth2 authorization flow with a local HTTP server
func (r *Runner) doOAuth(config *shared.Config, oauthSrv services.OAuthService, label string) (*oauth2.Token, error) {
	state, err := shared.GenerateState()
	if err != nil {
		return nil, fmt.Errorf("failed to generate state token: %w", err)
	}

	authURL := oauthSrv.GetAuthURL(state)
	oauthHandler := server.NewOAuthHandler(oauthSrv.GetOAuthConfig(), label, state)
	router := server.NewBasicRouter()
	router.Handler(oauthHandler)

	serverAddr := fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port)
	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Infof("starting OAuth server for %s at %v", label, serverAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	time.Sleep(100 * time.Millisecond)

	r.writePlain("→ Opening browser for %s authorization...\n", label)
	if err := shared.OpenBrowser(authURL); err != nil {
		r.logger.Warnf("failed to open browser automatically %v", err)
		r.writePlainln("⚠ Could not open browser automatically.")
		r.writePlain("Please open this URL in your browser:\n%s\n\n", authURL)
	}

	r.writePlain("→ Waiting for authorization (2 minute timeout)...\n")

	timeout := time.NewTimer(2 * time.Minute)
	defer timeout.Stop()

	var result server.OAuthResult

	select {
	case result = <-oauthHandler.Result():
		// Got result from callback
	case err := <-serverErrors:
		return nil, fmt.Errorf("server error: %w", err)
	case <-timeout.C:
		return nil, fmt.Errorf("%w: authorization timed out after 2 minutes", shared.ErrTimeout)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		r.logger.Warn("error shutting down server", "error", err)
	}

	if result.Error() != nil {
		return nil, fmt.Errorf("authorization failed: %w", result.Error())
	}

	if result.Token == nil {
		return nil, fmt.Errorf("no token received")
	}

	return result.Token, nil
}
