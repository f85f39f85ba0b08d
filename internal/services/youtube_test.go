package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/desertthunder/likesync/internal/shared"
	"golang.org/x/oauth2"
)

func newTestYouTube(rt *routeTripper) *YouTubeService {
	svc, err := NewYouTubeService(map[string]string{
		"client_id":     "id",
		"client_secret": "secret",
		"redirect_uri":  "http://localhost:8081/callback",
	})
	if err != nil {
		panic(err)
	}
	svc.token = &oauth2.Token{AccessToken: "test-token"}
	svc.httpClient = &http.Client{Transport: rt}
	return svc
}

func likedPage(start, count int, nextToken string) string {
	items := make([]string, count)
	for i := range items {
		n := start + i
		items[i] = fmt.Sprintf(`{"id": "v%d", "snippet": {"title": "Artist %d - Song %d", "channelTitle": "Channel %d"}}`, n, n, n, n)
	}
	next := ""
	if nextToken != "" {
		next = fmt.Sprintf(`, "nextPageToken": %q`, nextToken)
	}
	return fmt.Sprintf(`{"items": [%s]%s}`, strings.Join(items, ","), next)
}

func TestYouTubeService_LikedTracks(t *testing.T) {
	ctx := context.Background()

	t.Run("pages through liked videos in order", func(t *testing.T) {
		rt := &routeTripper{routes: map[string]func(*http.Request) *http.Response{
			"GET /youtube/v3/videos": func(r *http.Request) *http.Response {
				if r.URL.Query().Get("pageToken") == "" {
					return jsonResponse(http.StatusOK, likedPage(0, 50, "tok2"))
				}
				return jsonResponse(http.StatusOK, likedPage(50, 10, ""))
			},
		}}
		svc := newTestYouTube(rt)

		items, err := svc.LikedTracks(ctx, 200)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(items) != 60 {
			t.Fatalf("got %d items, want 60", len(items))
		}
		if items[0].ID != "v0" || items[59].ID != "v59" {
			t.Errorf("items out of order: first=%s last=%s", items[0].ID, items[59].ID)
		}
		if items[0].Channel != "Channel 0" {
			t.Errorf("channel not mapped: %q", items[0].Channel)
		}

		query := rt.requests[0].URL.Query()
		if query.Get("myRating") != "like" || query.Get("part") != "snippet" {
			t.Errorf("request query = %v", query)
		}
		if query.Get("maxResults") != "50" {
			t.Errorf("page size = %s, want 50", query.Get("maxResults"))
		}
	})

	t.Run("stops at max results", func(t *testing.T) {
		rt := &routeTripper{routes: map[string]func(*http.Request) *http.Response{
			"GET /youtube/v3/videos": func(r *http.Request) *http.Response {
				return jsonResponse(http.StatusOK, likedPage(0, 50, "more"))
			},
		}}
		svc := newTestYouTube(rt)

		items, err := svc.LikedTracks(ctx, 75)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(items) != 75 {
			t.Errorf("got %d items, want 75", len(items))
		}
		if len(rt.requests) != 2 {
			t.Errorf("got %d requests, want 2", len(rt.requests))
		}
	})

	t.Run("defaults max results", func(t *testing.T) {
		rt := &routeTripper{routes: map[string]func(*http.Request) *http.Response{
			"GET /youtube/v3/videos": func(r *http.Request) *http.Response {
				return jsonResponse(http.StatusOK, likedPage(0, 5, ""))
			},
		}}
		svc := newTestYouTube(rt)

		items, err := svc.LikedTracks(ctx, 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(items) != 5 {
			t.Errorf("got %d items, want 5", len(items))
		}
	})

	t.Run("quota errors are transient", func(t *testing.T) {
		rt := &routeTripper{routes: map[string]func(*http.Request) *http.Response{
			"GET /youtube/v3/videos": func(r *http.Request) *http.Response {
				return jsonResponse(http.StatusForbidden, `{"error": {"reason": "quotaExceeded"}}`)
			},
		}}
		svc := newTestYouTube(rt)

		_, err := svc.LikedTracks(ctx, 10)
		if !errors.Is(err, shared.ErrTransient) {
			t.Errorf("error = %v, want ErrTransient", err)
		}
	})

	t.Run("requires authentication", func(t *testing.T) {
		svc, _ := NewYouTubeService(map[string]string{
			"client_id": "id", "client_secret": "secret",
		})
		_, err := svc.LikedTracks(ctx, 10)
		if !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("error = %v, want ErrNotAuthenticated", err)
		}
	})
}

func TestYouTubeService_GetAuthURL(t *testing.T) {
	svc, err := NewYouTubeService(map[string]string{
		"client_id": "id", "client_secret": "secret",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	authURL := svc.GetAuthURL("state123")
	for _, want := range []string{"state=state123", "access_type=offline", "prompt=consent"} {
		if !strings.Contains(authURL, want) {
			t.Errorf("auth URL missing %q: %s", want, authURL)
		}
	}
}
