package ui

import (
	"bytes"
	"fmt"

	"github.com/desertthunder/likesync/internal/tasks"
)

// maxUnresolvedExamples caps the number of unresolved titles shown in the
// terminal summary. The full list goes to report files, not stdout.
const maxUnresolvedExamples = 10

// RenderSummary renders a styled terminal summary of a sync run.
func RenderSummary(result *tasks.SyncRunResult) string {
	var buf bytes.Buffer

	header := "Sync complete"
	if result.DryRun {
		header = "Dry run complete"
	}
	buf.WriteString(Title(header))
	buf.WriteString("\n")

	buf.WriteString(fmt.Sprintf("Playlist: %s\n", result.PlaylistName))

	if result.Plan != nil {
		buf.WriteString(fmt.Sprintf("Liked videos: %d\n", result.Plan.Total))
		line := fmt.Sprintf("Resolved: %d/%d (%.1f%%)", result.Plan.Resolved(), result.Plan.Total, result.MatchPercentage())
		if result.Plan.Resolved() == result.Plan.Total {
			buf.WriteString(Success(line))
		} else {
			buf.WriteString(Warn(line))
		}
		buf.WriteString("\n")
	}

	if !result.DryRun {
		buf.WriteString(Success(fmt.Sprintf("Added: %d", result.Added)))
		buf.WriteString("\n")
		buf.WriteString(fmt.Sprintf("Already present: %d\n", result.Skipped))
	}

	if result.Plan != nil && len(result.Plan.UnresolvedTitles) > 0 {
		buf.WriteString("\n")
		buf.WriteString(Warn(fmt.Sprintf("Unresolved (%d):", len(result.Plan.UnresolvedTitles))))
		buf.WriteString("\n")

		shown := result.Plan.UnresolvedTitles
		if len(shown) > maxUnresolvedExamples {
			shown = shown[:maxUnresolvedExamples]
		}
		for _, title := range shown {
			buf.WriteString(fmt.Sprintf("  - %s\n", title))
		}
		if remaining := len(result.Plan.UnresolvedTitles) - len(shown); remaining > 0 {
			buf.WriteString(Help(fmt.Sprintf("  ... and %d more\n", remaining)))
		}
	}

	return buf.String()
}
