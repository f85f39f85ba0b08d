package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/likesync/internal/services"
	"github.com/desertthunder/likesync/internal/shared"
	"github.com/urfave/cli/v3"
)

// playlistLister is satisfied by catalog services exposing paginated playlist listing.
type playlistLister interface {
	UserPlaylists(ctx context.Context, limit, offset int) (*services.SpotifyPaginatedPlaylists, error)
}

// SpotifyPlaylists lists the current user's Spotify playlists.
func (r *Runner) SpotifyPlaylists(ctx context.Context, cmd *cli.Command) error {
	limit := cmd.Int("limit")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if r.spotify == nil {
		return fmt.Errorf("%w: Spotify service not initialized", shared.ErrServiceUnavailable)
	}

	lister, ok := r.spotify.(playlistLister)
	if !ok {
		return fmt.Errorf("%w: catalog service does not list playlists", shared.ErrNotImplemented)
	}

	if err := r.ensureAuth(ctx, "spotify"); err != nil {
		return err
	}

	r.logger.Infof("listing spotify playlists with limit %v", limit)

	var playlists []services.SpotifySimplePlaylist
	offset := 0
	for {
		page, err := lister.UserPlaylists(ctx, 50, offset)
		if err != nil {
			return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
		}
		playlists = append(playlists, page.Items...)
		if page.Next == nil || len(page.Items) == 0 || (limit > 0 && len(playlists) >= limit) {
			break
		}
		offset += len(page.Items)
	}

	if limit > 0 && limit < len(playlists) {
		playlists = playlists[:limit]
	}

	if useJSON {
		return r.writeJSON(playlists, pretty)
	}

	r.writePlain("Found %d playlists:\n\n", len(playlists))
	for i, p := range playlists {
		r.writePlain("%d. %s\n", i+1, p.Name)
		r.writePlain("   ID: %s\n", p.ID)
		r.writePlain("   Tracks: %d\n", p.Tracks.Total)
		if p.Public {
			r.writePlain("   Visibility: Public\n")
		} else {
			r.writePlain("   Visibility: Private\n")
		}
		r.writePlain("\n")
	}

	return nil
}

// SpotifySearch searches the Spotify catalog for a track.
func (r *Runner) SpotifySearch(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	limit := cmd.Int("limit")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if query == "" {
		return fmt.Errorf("%w: search query", shared.ErrMissingArgument)
	}

	if r.spotify == nil {
		return fmt.Errorf("%w: Spotify service not initialized", shared.ErrServiceUnavailable)
	}

	if err := r.ensureAuth(ctx, "spotify"); err != nil {
		return err
	}

	r.logger.Infof("searching spotify for %q", query)

	records, err := r.spotify.Search(ctx, query, limit)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if useJSON {
		return r.writeJSON(records, pretty)
	}

	if len(records) == 0 {
		r.writePlain("No results for %q\n", query)
		return nil
	}

	r.writePlain("Found %d tracks:\n\n", len(records))
	for i, record := range records {
		r.writePlain("%d. %s\n", i+1, record.Name)
		if len(record.Artists) > 0 {
			r.writePlain("   Artists: %v\n", record.Artists)
		}
		r.writePlain("   ID: %s\n", record.ID)
	}

	return nil
}
