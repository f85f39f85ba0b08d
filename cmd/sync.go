package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/likesync/internal/formatter"
	"github.com/desertthunder/likesync/internal/match"
	"github.com/desertthunder/likesync/internal/shared"
	"github.com/desertthunder/likesync/internal/tasks"
	"github.com/desertthunder/likesync/internal/titles"
	"github.com/desertthunder/likesync/internal/ui"
	"github.com/urfave/cli/v3"
)

// SyncRun runs the full YouTube likes → Spotify playlist sync.
func (r *Runner) SyncRun(ctx context.Context, cmd *cli.Command) error {
	opts := r.runOpts(cmd)

	if err := r.ensureAuth(ctx, "google"); err != nil {
		return err
	}
	if err := r.ensureAuth(ctx, "spotify"); err != nil {
		return err
	}

	engine := r.buildEngine(cmd)

	mode := "sync"
	if opts.DryRun {
		mode = "dry run"
	}
	r.logger.Info("starting "+mode, "playlist", opts.Playlist, "max_results", opts.MaxResults)
	r.writePlain("Syncing liked videos to %q...\n\n", opts.Playlist)

	// Progress goroutine drains updates without blocking the pipeline.
	progressCh := make(chan tasks.ProgressUpdate, 50)
	go func() {
		for update := range progressCh {
			switch update.Phase {
			case tasks.FetchLiked:
				r.writePlain("📥 %s\n", update.Message)
			case tasks.SearchTracks:
				if update.Step == 1 {
					r.writePlain("\n🔍 %s\n", update.Message)
				} else {
					r.writePlain("   %s\n", update.Message)
				}
			case tasks.ResolvePlaylist:
				r.writePlain("\n📝 %s\n", update.Message)
			case tasks.AddTracks:
				r.writePlain("   %s\n", update.Message)
			}
		}
	}()

	result, err := engine.Run(ctx, opts, progressCh)
	close(progressCh)

	if err != nil {
		return err
	}

	r.writePlain("\n%s\n", ui.RenderSummary(result))

	if reportPath := cmd.String("report"); reportPath != "" {
		written, err := formatter.WriteReport(result, cmd.String("report-format"), reportPath)
		if err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		r.writePlain("Report written to %s\n", written)
	}

	return nil
}

// runOpts merges CLI flags over the [sync] config section.
func (r *Runner) runOpts(cmd *cli.Command) tasks.RunOpts {
	opts := tasks.RunOpts{
		Playlist:   r.config.Sync.Playlist,
		MaxResults: r.config.Sync.MaxResults,
		BatchSize:  r.config.Sync.BatchSize,
		DryRun:     r.config.Sync.DryRun,
	}

	if playlist := cmd.String("playlist"); playlist != "" {
		opts.Playlist = playlist
	}
	if maxResults := cmd.Int("max-results"); maxResults > 0 {
		opts.MaxResults = maxResults
	}
	if batchSize := cmd.Int("batch-size"); batchSize > 0 {
		opts.BatchSize = batchSize
	}
	if cmd.Bool("dry-run") {
		opts.DryRun = true
	}

	return opts
}

// buildEngine assembles the parser, matcher, and engine from configuration.
func (r *Runner) buildEngine(cmd *cli.Command) *tasks.LikesEngine {
	parser := titles.NewParser(r.config.Matcher.ChannelThreshold)
	matcher := match.NewMatcher(r.spotify, match.Options{
		TitleWeight:  r.config.Matcher.TitleWeight,
		ArtistWeight: r.config.Matcher.ArtistWeight,
		SearchLimit:  r.config.Matcher.SearchLimit,
		SearchRate:   r.config.Matcher.SearchRate,
	}, shared.DefaultBackoff())

	engine := tasks.NewLikesEngine(r.youtube, r.spotify, parser, matcher, r.logger)

	if batchSize := cmd.Int("batch-size"); batchSize > 0 {
		engine.SetConvergeOpts(tasks.ConvergeOpts{BatchSize: batchSize})
	} else if r.config.Sync.BatchSize > 0 {
		engine.SetConvergeOpts(tasks.ConvergeOpts{BatchSize: r.config.Sync.BatchSize})
	}

	return engine
}
