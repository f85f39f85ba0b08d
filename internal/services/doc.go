// Package services implements the external catalog boundary: a read-only
// YouTube source and a Spotify destination.
//
// # Interfaces
//
// [SourceService] exposes the liked-items feed; [CatalogService] exposes
// search, playlist lookup/creation, membership listing, and bulk track
// appends. The reconciliation engine depends on these interfaces only, so
// tests substitute doubles freely.
//
// # Spotify Implementation
//
// [SpotifyService] uses OAuth2 for authentication with automatic token
// refresh via [oauth2.Config.Client]. Pagination follows the Web API's page
// sizes: 50 for playlist listings, 100 for playlist membership. Search is a
// single capped call; the caller owns scoring.
//
// # YouTube Implementation
//
// [YouTubeService] calls the Google Data API v3 videos endpoint directly
// with myRating=like, paging at 50 items and materializing up to the
// requested maximum before returning. Only read-only scope is requested.
//
// # OAuth Service Extension
//
// The [OAuthService] interface is implemented by both services for the
// server-side authorization code flow used by the CLI's auth commands.
//
// # Error Handling
//
// Services classify HTTP failures with sentinels from the shared package:
//   - [shared.ErrNotAuthenticated] : Authenticate() not called
//   - [shared.ErrTokenExpired] : OAuth token expired, reauthorization needed
//   - [shared.ErrTransient] : rate limits, 5xx, network failures (retryable)
//   - [shared.ErrAPIRequest] : other non-2xx responses (fatal)
package services
