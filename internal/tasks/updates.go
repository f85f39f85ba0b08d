package tasks

import (
	"fmt"

	"github.com/desertthunder/likesync/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data
}

// Operation phase enumeration
type Phase int

const (
	FetchLiked Phase = iota
	SearchTracks
	BuildPlan
	ResolvePlaylist
	AddTracks
	Done
)

func (p Phase) String() string {
	switch p {
	case FetchLiked:
		return "fetch_liked"
	case SearchTracks:
		return "search_tracks"
	case BuildPlan:
		return "build_plan"
	case ResolvePlaylist:
		return "resolve_playlist"
	case AddTracks:
		return "add_tracks"
	case Done:
		return "done"
	default:
		return ""
	}
}

func fetchLikedUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchLiked,
		Step:    1,
		Total:   1,
		Message: "Fetching liked videos from YouTube...",
	}
}

func likedFetchedUpdate(count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchLiked,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Fetched %d liked videos", count),
	}
}

func searchTrackUpdate(step, total int, artist, title string) ProgressUpdate {
	display := title
	if artist != "" {
		display = fmt.Sprintf("%s - %s", artist, title)
	}
	return ProgressUpdate{
		Phase:   SearchTracks,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s", step, total, display),
	}
}

func planBuiltUpdate(plan *models.Plan) ProgressUpdate {
	return ProgressUpdate{
		Phase:   BuildPlan,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Resolved %d / %d tracks", plan.Resolved(), plan.Total),
		Data:    plan,
	}
}

func resolvePlaylistUpdate(name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ResolvePlaylist,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Resolving destination playlist %q...", name),
	}
}

func upToDateUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   Done,
		Step:    1,
		Total:   1,
		Message: "Nothing new to add - playlist already up to date",
	}
}

func addTracksUpdate(added, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   AddTracks,
		Step:    added,
		Total:   total,
		Message: fmt.Sprintf("Added %d/%d tracks...", added, total),
	}
}

func doneUpdate(added int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Done,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Sync complete: %d tracks added", added),
	}
}
