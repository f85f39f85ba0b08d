// package formatter exports sync run reports to various formats (CSV, Markdown, plain text, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/desertthunder/likesync/internal/shared"
	"github.com/desertthunder/likesync/internal/tasks"
)

// Report is the serializable view of a [tasks.SyncRunResult].
type Report struct {
	Playlist     string   `json:"playlist"`
	PlaylistID   string   `json:"playlist_id,omitempty"`
	DryRun       bool     `json:"dry_run"`
	Total        int      `json:"total"`
	Resolved     int      `json:"resolved"`
	Unresolved   []string `json:"unresolved"`
	Added        int      `json:"added"`
	Skipped      int      `json:"skipped"`
	MatchPercent float64  `json:"match_percent"`
}

// NewReport builds a [Report] from a sync run result.
func NewReport(result *tasks.SyncRunResult) *Report {
	r := &Report{
		Playlist:     result.PlaylistName,
		PlaylistID:   result.PlaylistID,
		DryRun:       result.DryRun,
		Added:        result.Added,
		Skipped:      result.Skipped,
		MatchPercent: result.MatchPercentage(),
		Unresolved:   []string{},
	}
	if result.Plan != nil {
		r.Total = result.Plan.Total
		r.Resolved = result.Plan.Resolved()
		r.Unresolved = append(r.Unresolved, result.Plan.UnresolvedTitles...)
	}
	return r
}

// ToJSON generates a pretty-printed JSON representation of the report.
func (r *Report) ToJSON() ([]byte, error) {
	return shared.MarshalJSON(r, true)
}

// ToText converts the report to plain text format
func (r *Report) ToText() []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Playlist: %s\n", r.Playlist))
	if r.DryRun {
		buf.WriteString("Mode: dry run (no playlist changes)\n")
	}
	buf.WriteString(fmt.Sprintf("Liked videos: %d\n", r.Total))
	buf.WriteString(fmt.Sprintf("Resolved: %d (%.1f%%)\n", r.Resolved, r.MatchPercent))
	buf.WriteString(fmt.Sprintf("Unresolved: %d\n", len(r.Unresolved)))
	if !r.DryRun {
		buf.WriteString(fmt.Sprintf("Added: %d\n", r.Added))
		buf.WriteString(fmt.Sprintf("Already present: %d\n", r.Skipped))
	}

	if len(r.Unresolved) > 0 {
		buf.WriteString("\nUnresolved titles:\n")
		for i, title := range r.Unresolved {
			buf.WriteString(fmt.Sprintf("%d. %s\n", i+1, title))
		}
	}

	return buf.Bytes()
}

// ToMarkdown converts the report to Markdown format
func (r *Report) ToMarkdown() []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", r.Playlist))
	if r.DryRun {
		buf.WriteString("_Dry run: no playlist changes were made._\n\n")
	}

	buf.WriteString(fmt.Sprintf("**Liked videos**: %d\n", r.Total))
	buf.WriteString(fmt.Sprintf("**Resolved**: %d (%.1f%%)\n", r.Resolved, r.MatchPercent))
	buf.WriteString(fmt.Sprintf("**Unresolved**: %d\n", len(r.Unresolved)))
	if !r.DryRun {
		buf.WriteString(fmt.Sprintf("**Added**: %d\n", r.Added))
		buf.WriteString(fmt.Sprintf("**Already present**: %d\n", r.Skipped))
	}

	if len(r.Unresolved) > 0 {
		buf.WriteString("\n## Unresolved Titles\n\n")
		for i, title := range r.Unresolved {
			buf.WriteString(fmt.Sprintf("%d. %s\n", i+1, title))
		}
	}

	return buf.Bytes()
}

// ToCSV converts the unresolved titles to CSV format with columns: Index, Title
func (r *Report) ToCSV() ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Index", "Title"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for i, title := range r.Unresolved {
		record := []string{fmt.Sprintf("%d", i+1), title}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// WriteReport writes the report to path in the given format ("json", "text", "markdown", "csv").
//
// An empty path defaults to sync_report.{ext}. Returns the path written.
func WriteReport(result *tasks.SyncRunResult, format, path string) (string, error) {
	report := NewReport(result)

	var (
		data []byte
		err  error
		ext  string
	)

	switch format {
	case "json", "":
		data, err = report.ToJSON()
		ext = "json"
	case "text", "txt":
		data, ext = report.ToText(), "txt"
	case "markdown", "md":
		data, ext = report.ToMarkdown(), "md"
	case "csv":
		data, err = report.ToCSV()
		ext = "csv"
	default:
		return "", fmt.Errorf("%w: unknown report format %q", shared.ErrInvalidFlag, format)
	}
	if err != nil {
		return "", err
	}

	if path == "" {
		path = "sync_report." + ext
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write report file: %w", err)
	}

	return path, nil
}
