// YouTube Data API implementation of [SourceService]
//
// Talks to the Google Data API v3 videos endpoint directly; only the
// read-only liked-videos surface is used.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/desertthunder/likesync/internal/models"
	"github.com/desertthunder/likesync/internal/shared"
	"golang.org/x/oauth2"
)

const (
	googleAuthURL  = "https://accounts.google.com/o/oauth2/auth"
	googleTokenURL = "https://oauth2.googleapis.com/token"
	youtubeBaseURL = "https://www.googleapis.com/youtube/v3"

	// likedPageSize is the API's maximum page size for videos.list.
	likedPageSize = 50
)

// youtubeSnippet carries the subset of video metadata the pipeline reads.
type youtubeSnippet struct {
	Title        string `json:"title"`
	ChannelTitle string `json:"channelTitle"`
}

// youtubeVideo represents one item of a videos.list response.
type youtubeVideo struct {
	ID      string         `json:"id"`
	Snippet youtubeSnippet `json:"snippet"`
}

// youtubeVideoPage represents a paginated videos.list response.
type youtubeVideoPage struct {
	Items         []youtubeVideo `json:"items"`
	NextPageToken string         `json:"nextPageToken"`
}

// YouTubeService implements [SourceService] for the YouTube Data API.
type YouTubeService struct {
	config     *oauth2.Config
	token      *oauth2.Token
	httpClient *http.Client
}

// NewYouTubeService creates a new YouTube service with the given OAuth2 credentials.
func NewYouTubeService(credentials map[string]string) (*YouTubeService, error) {
	clientID, ok := credentials["client_id"]
	if !ok || clientID == "" {
		return nil, fmt.Errorf("missing client_id in credentials")
	}

	clientSecret, ok := credentials["client_secret"]
	if !ok || clientSecret == "" {
		return nil, fmt.Errorf("missing client_secret in credentials")
	}

	redirectURI, ok := credentials["redirect_uri"]
	if !ok || redirectURI == "" {
		redirectURI = "http://localhost:8081/callback"
	}

	config := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURI,
		Scopes:       []string{"https://www.googleapis.com/auth/youtube.readonly"},
		Endpoint: oauth2.Endpoint{
			AuthURL:  googleAuthURL,
			TokenURL: googleTokenURL,
		},
	}

	return &YouTubeService{
		config:     config,
		httpClient: http.DefaultClient,
	}, nil
}

// Name returns the service name.
func (y *YouTubeService) Name() string {
	return "YouTube"
}

// Authenticate performs OAuth2 authentication. Expects either an "access_token" or "auth_code" in credentials.
func (y *YouTubeService) Authenticate(ctx context.Context, credentials map[string]string) error {
	if accessToken, ok := credentials["access_token"]; ok && accessToken != "" {
		return y.OAuthenticate(ctx, &oauth2.Token{AccessToken: accessToken})
	}

	if authCode, ok := credentials["auth_code"]; ok && authCode != "" {
		token, err := y.config.Exchange(ctx, authCode)
		if err != nil {
			return fmt.Errorf("failed to exchange auth code: %w", err)
		}
		return y.OAuthenticate(ctx, token)
	}

	return fmt.Errorf("%w: missing access_token or auth_code in credentials", shared.ErrMissingCredentials)
}

// OAuthenticate installs an exchanged token and wraps the HTTP client with a refreshing token source.
func (y *YouTubeService) OAuthenticate(ctx context.Context, token *oauth2.Token) error {
	if token == nil || token.AccessToken == "" {
		return fmt.Errorf("%w: empty token", shared.ErrInvalidCredentials)
	}
	y.token = token
	y.httpClient = y.config.Client(ctx, token)
	return nil
}

// GetAuthURL returns the OAuth2 authorization URL for user consent.
// Offline access is requested so a refresh token is issued.
func (y *YouTubeService) GetAuthURL(state string) string {
	return y.config.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.SetAuthURLParam("prompt", "consent"))
}

// GetOAuthConfig exposes the OAuth2 configuration for the callback handler.
func (y *YouTubeService) GetOAuthConfig() *oauth2.Config {
	return y.config
}

// doRequest performs an authenticated GET against the YouTube Data API.
//
// 401 maps to [shared.ErrTokenExpired], 403 (quota) / 429 / 5xx to
// [shared.ErrTransient], other non-2xx statuses to [shared.ErrAPIRequest].
func (y *YouTubeService) doRequest(ctx context.Context, endpoint string, result any) error {
	if y.token == nil {
		return fmt.Errorf("%w: call Authenticate first", shared.ErrNotAuthenticated)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, youtubeBaseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := y.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrTransient, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		switch {
		case resp.StatusCode == http.StatusUnauthorized:
			return fmt.Errorf("%w: youtube API status %d", shared.ErrTokenExpired, resp.StatusCode)
		case resp.StatusCode == http.StatusForbidden ||
			resp.StatusCode == http.StatusTooManyRequests ||
			resp.StatusCode >= 500:
			return fmt.Errorf("%w: youtube API status %d", shared.ErrTransient, resp.StatusCode)
		default:
			return fmt.Errorf("%w: youtube API status %d", shared.ErrAPIRequest, resp.StatusCode)
		}
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// LikedTracks retrieves up to maxResults of the user's liked videos.
//
// Pages through videos.list with myRating=like (pages of at most 50) and
// returns the fully materialized list in the API's stable order.
func (y *YouTubeService) LikedTracks(ctx context.Context, maxResults int) ([]models.SourceItem, error) {
	if maxResults <= 0 {
		maxResults = 200
	}

	var items []models.SourceItem
	pageToken := ""

	for {
		pageSize := likedPageSize
		if remaining := maxResults - len(items); remaining < pageSize {
			pageSize = remaining
		}

		endpoint := fmt.Sprintf("/videos?part=snippet&myRating=like&maxResults=%d", pageSize)
		if pageToken != "" {
			endpoint += "&pageToken=" + url.QueryEscape(pageToken)
		}

		var page youtubeVideoPage
		if err := y.doRequest(ctx, endpoint, &page); err != nil {
			return nil, fmt.Errorf("failed to fetch liked videos: %w", err)
		}

		for _, video := range page.Items {
			items = append(items, models.SourceItem{
				ID:      video.ID,
				Title:   video.Snippet.Title,
				Channel: video.Snippet.ChannelTitle,
			})
			if len(items) >= maxResults {
				return items, nil
			}
		}

		if page.NextPageToken == "" {
			return items, nil
		}
		pageToken = page.NextPageToken
	}
}
