package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/likesync/internal/shared"
	"github.com/urfave/cli/v3"
)

// YouTubeLiked lists the user's liked videos.
func (r *Runner) YouTubeLiked(ctx context.Context, cmd *cli.Command) error {
	limit := cmd.Int("limit")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if r.youtube == nil {
		return fmt.Errorf("%w: YouTube service not initialized", shared.ErrServiceUnavailable)
	}

	if err := r.ensureAuth(ctx, "google"); err != nil {
		return err
	}

	r.logger.Infof("listing liked videos with limit %v", limit)

	items, err := r.youtube.LikedTracks(ctx, limit)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if useJSON {
		return r.writeJSON(items, pretty)
	}

	r.writePlain("Found %d liked videos:\n\n", len(items))
	for i, item := range items {
		r.writePlain("%d. %s\n", i+1, item.Title)
		if item.Channel != "" {
			r.writePlain("   Channel: %s\n", item.Channel)
		}
		r.writePlain("   ID: %s\n", item.ID)
	}

	return nil
}
