package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/likesync/internal/models"
	"github.com/desertthunder/likesync/internal/shared"
)

// ConvergeOpts contains batching and pacing settings for playlist convergence.
type ConvergeOpts struct {
	BatchSize int           // Tracks per bulk append call (default 90)
	BaseDelay time.Duration // Pause between chunks (default 600ms)
	Jitter    time.Duration // Symmetric random jitter on the pause (default 200ms)
}

// DefaultConvergeOpts returns the pacing defaults used against the Spotify API.
func DefaultConvergeOpts() ConvergeOpts {
	return ConvergeOpts{
		BatchSize: 90,
		BaseDelay: 600 * time.Millisecond,
		Jitter:    200 * time.Millisecond,
	}
}

func (o ConvergeOpts) withDefaults() ConvergeOpts {
	d := DefaultConvergeOpts()
	if o.BatchSize <= 0 {
		o.BatchSize = d.BatchSize
	}
	if o.BaseDelay <= 0 {
		o.BaseDelay = d.BaseDelay
	}
	if o.Jitter < 0 {
		o.Jitter = d.Jitter
	}
	return o
}

// Additions filters candidate IDs against the destination snapshot.
//
// Every ID already present in the snapshot is removed; relative order is
// preserved and repeats of the same new ID are kept; the destination
// service dedups those on insert.
func Additions(dest models.DestinationState, candidateIDs []string) []string {
	toAdd := make([]string, 0, len(candidateIDs))
	for _, id := range candidateIDs {
		if !dest.Contains(id) {
			toAdd = append(toAdd, id)
		}
	}
	return toAdd
}

// Chunks partitions ids into contiguous slices of at most size elements.
// Concatenating the chunks in order reproduces ids exactly.
func Chunks(ids []string, size int) [][]string {
	if size <= 0 || len(ids) == 0 {
		return nil
	}
	var chunks [][]string
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}

// Converge brings the destination playlist's membership up to the resolved
// set, adding only what is missing from the pre-run snapshot.
//
// Chunks are appended in order with a paced pause between calls. A failed
// append aborts immediately; chunks already committed stay committed, and a
// re-run is safe because committed IDs fall out in the dedup step. Returns
// the number of track entries appended.
func (e *LikesEngine) Converge(ctx context.Context, dest models.DestinationState, candidateIDs []string, progress chan<- ProgressUpdate) (int, error) {
	if e.catalog == nil {
		return 0, fmt.Errorf("%w: catalog service not initialized", shared.ErrServiceUnavailable)
	}

	toAdd := Additions(dest, candidateIDs)
	if len(toAdd) == 0 {
		e.logger.Info("playlist already up to date", "playlist", dest.PlaylistID)
		e.sendProgress(progress, upToDateUpdate())
		return 0, nil
	}

	chunks := Chunks(toAdd, e.converge.BatchSize)
	added := 0

	for i, chunk := range chunks {
		if err := e.catalog.AddTracks(ctx, dest.PlaylistID, chunk); err != nil {
			return added, fmt.Errorf("failed to append batch %d/%d: %w", i+1, len(chunks), err)
		}

		added += len(chunk)
		e.logger.Info("appended tracks", "batch", i+1, "added", added, "total", len(toAdd))
		e.sendProgress(progress, addTracksUpdate(added, len(toAdd)))

		if i < len(chunks)-1 {
			shared.SleepWithJitter(e.converge.BaseDelay, e.converge.Jitter)
		}
	}

	return added, nil
}
