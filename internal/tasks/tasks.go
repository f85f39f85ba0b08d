// package tasks implements the liked-video reconciliation pipeline.
//
// The core abstraction is SyncEngine, which pulls liked items from the
// source, resolves each to a destination catalog track, and converges the
// destination playlist. Operations emit progress updates via channels for
// non-blocking status reporting to the CLI layer.
package tasks

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/likesync/internal/match"
	"github.com/desertthunder/likesync/internal/models"
	"github.com/desertthunder/likesync/internal/services"
	"github.com/desertthunder/likesync/internal/shared"
	"github.com/desertthunder/likesync/internal/titles"
)

// SyncRunResult contains all data from a full likes sync operation.
type SyncRunResult struct {
	Plan         *models.Plan // Resolution outcome (always populated)
	PlaylistName string       // Destination playlist name
	PlaylistID   string       // Destination playlist ID (empty in dry runs)
	Added        int          // Tracks actually appended this run
	Skipped      int          // Resolved tracks already present before the run
	DryRun       bool         // True when no destination mutation was attempted
}

// MatchPercentage returns the resolution success rate as a percentage.
func (r *SyncRunResult) MatchPercentage() float64 {
	if r.Plan == nil || r.Plan.Total == 0 {
		return 0
	}
	return float64(r.Plan.Resolved()) / float64(r.Plan.Total) * 100
}

// SyncEngine defines the reconciliation operations between source and destination catalogs.
type SyncEngine interface {
	// Reconcile resolves source items into a Plan, preserving source order.
	Reconcile(ctx context.Context, items []models.SourceItem, progress chan<- ProgressUpdate) (*models.Plan, error)

	// Converge applies resolved IDs to the destination playlist in bounded,
	// paced batches, skipping everything in the pre-run snapshot.
	Converge(ctx context.Context, dest models.DestinationState, candidateIDs []string, progress chan<- ProgressUpdate) (int, error)

	// Run executes the full pipeline: fetch likes, reconcile, converge.
	Run(ctx context.Context, opts RunOpts, progress chan<- ProgressUpdate) (*SyncRunResult, error)
}

// RunOpts contains per-run settings for [LikesEngine.Run].
type RunOpts struct {
	Playlist   string // Destination playlist name
	MaxResults int    // Max liked videos to pull (default 200)
	BatchSize  int    // Tracks per bulk append (default 90)
	DryRun     bool   // Resolve and report only; no destination mutation
}

// LikesEngine implements [SyncEngine].
//
// Single-writer and sequential: items are processed in source order and
// batches are applied in array order.
type LikesEngine struct {
	source  services.SourceService
	catalog services.CatalogService
	parser  titles.Parser
	matcher *match.Matcher
	logger  *log.Logger

	converge ConvergeOpts
}

// NewLikesEngine creates a LikesEngine with the provided collaborators.
// A nil logger falls back to a default stderr logger.
func NewLikesEngine(source services.SourceService, catalog services.CatalogService, parser titles.Parser, matcher *match.Matcher, logger *log.Logger) *LikesEngine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &LikesEngine{
		source:   source,
		catalog:  catalog,
		parser:   parser,
		matcher:  matcher,
		logger:   logger,
		converge: DefaultConvergeOpts(),
	}
}

// SetConvergeOpts overrides batching and pacing defaults for convergence.
func (e *LikesEngine) SetConvergeOpts(opts ConvergeOpts) {
	e.converge = opts.withDefaults()
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *LikesEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}

// Reconcile resolves each source item to a destination catalog track.
//
// Per item: parse the display title into an (artist, title) candidate, then
// run the two-tier lookup (artist+title first, title-only second). Hits
// append the catalog ID in source order (duplicates allowed); misses record
// the original display title. Search failures abort the run.
func (e *LikesEngine) Reconcile(ctx context.Context, items []models.SourceItem, progress chan<- ProgressUpdate) (*models.Plan, error) {
	if e.catalog == nil {
		return nil, fmt.Errorf("%w: catalog service not initialized", shared.ErrServiceUnavailable)
	}

	plan := &models.Plan{Total: len(items)}

	for i, item := range items {
		candidate := e.parser.Guess(item.Title, item.Channel)
		e.sendProgress(progress, searchTrackUpdate(i+1, len(items), candidate.Artist, candidate.Title))

		id, ok, err := e.matcher.Match(ctx, candidate.Artist, candidate.Title)
		if err != nil {
			return nil, err
		}
		if !ok && candidate.Artist != "" {
			// Second tier: title-only lookup.
			id, ok, err = e.matcher.Match(ctx, "", candidate.Title)
			if err != nil {
				return nil, err
			}
		}

		if ok {
			plan.ResolvedIDs = append(plan.ResolvedIDs, id)
		} else {
			plan.UnresolvedTitles = append(plan.UnresolvedTitles, item.Title)
			e.logger.Debug("no catalog match", "title", item.Title)
		}
	}

	e.logger.Info("resolution complete", "resolved", plan.Resolved(), "total", plan.Total)
	e.sendProgress(progress, planBuiltUpdate(plan))

	return plan, nil
}

// Run executes the full pipeline.
//
// In dry-run mode resolution happens normally but the destination is never
// touched: no playlist lookup, no membership read, no mutation.
func (e *LikesEngine) Run(ctx context.Context, opts RunOpts, progress chan<- ProgressUpdate) (*SyncRunResult, error) {
	if e.source == nil {
		return nil, fmt.Errorf("%w: source service not initialized", shared.ErrServiceUnavailable)
	}
	if e.catalog == nil {
		return nil, fmt.Errorf("%w: catalog service not initialized", shared.ErrServiceUnavailable)
	}
	if opts.Playlist == "" {
		return nil, fmt.Errorf("%w: destination playlist name", shared.ErrMissingArgument)
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = 200
	}

	result := &SyncRunResult{PlaylistName: opts.Playlist, DryRun: opts.DryRun}

	e.sendProgress(progress, fetchLikedUpdate())
	items, err := e.source.LikedTracks(ctx, opts.MaxResults)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch liked videos: %v", shared.ErrAPIRequest, err)
	}
	e.logger.Info("fetched liked videos", "count", len(items))
	e.sendProgress(progress, likedFetchedUpdate(len(items)))

	plan, err := e.Reconcile(ctx, items, progress)
	if err != nil {
		return nil, err
	}
	result.Plan = plan

	if opts.DryRun {
		e.logger.Info("dry run; skipping destination mutation")
		return result, nil
	}

	e.sendProgress(progress, resolvePlaylistUpdate(opts.Playlist))
	playlistID, err := e.catalog.GetOrCreatePlaylist(ctx, opts.Playlist)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve destination playlist: %w", err)
	}
	result.PlaylistID = playlistID

	existing, err := e.catalog.PlaylistTrackIDs(ctx, playlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot playlist membership: %w", err)
	}

	dest := models.DestinationState{PlaylistID: playlistID, ExistingTrackIDs: existing}

	added, err := e.Converge(ctx, dest, plan.ResolvedIDs, progress)
	if err != nil {
		return result, err
	}

	result.Added = added
	result.Skipped = len(plan.ResolvedIDs) - added
	e.sendProgress(progress, doneUpdate(added))

	return result, nil
}
