// package services defines interfaces for interacting with music catalog HTTP APIs
//
// YouTube (source of liked videos), Spotify (destination playlist)
package services

import (
	"context"

	"github.com/desertthunder/likesync/internal/models"
	"golang.org/x/oauth2"
)

// SourceService provides read-only access to the user's liked items on the
// source catalog.
type SourceService interface {
	// Authenticate performs OAuth or token authentication with the service.
	Authenticate(ctx context.Context, credentials map[string]string) error

	// LikedTracks retrieves up to maxResults liked items in page-stable order.
	// Pagination is handled internally; only the materialized list is exposed.
	LikedTracks(ctx context.Context, maxResults int) ([]models.SourceItem, error)

	// Name returns the name of the service (e.g., "YouTube")
	Name() string
}

// CatalogService is the destination music catalog: track search plus playlist
// lookup and membership mutation.
type CatalogService interface {
	// Authenticate performs OAuth or token authentication with the service.
	Authenticate(ctx context.Context, credentials map[string]string) error

	// Search returns up to limit track records for the query, in API order.
	Search(ctx context.Context, query string, limit int) ([]models.CatalogRecord, error)

	// GetOrCreatePlaylist finds a playlist by exact name among the user's
	// playlists, creating a private one if absent. Returns the playlist ID.
	GetOrCreatePlaylist(ctx context.Context, name string) (string, error)

	// PlaylistTrackIDs returns the set of track IDs currently in the playlist.
	PlaylistTrackIDs(ctx context.Context, playlistID string) (map[string]struct{}, error)

	// AddTracks appends the given tracks to the playlist in one bulk call.
	// Callers are responsible for chunking to the API's batch limits.
	AddTracks(ctx context.Context, playlistID string, trackIDs []string) error

	// Name returns the name of the service (e.g., "Spotify")
	Name() string
}

// OAuthService is implemented by services whose authentication uses the
// OAuth2 authorization code flow with a local callback server.
type OAuthService interface {
	// GetAuthURL returns the authorization URL for user consent.
	GetAuthURL(state string) string

	// GetOAuthConfig exposes the underlying OAuth2 configuration for the
	// callback handler's code exchange.
	GetOAuthConfig() *oauth2.Config

	// OAuthenticate installs an exchanged token on the service's HTTP client.
	OAuthenticate(ctx context.Context, token *oauth2.Token) error

	// Name returns the name of the service
	Name() string
}
