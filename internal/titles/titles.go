// package titles derives (artist, title) candidates from raw video display titles.
//
// Parsing is best-effort and total: every input yields a usable candidate,
// with an empty artist when no heuristic applies.
package titles

import (
	"regexp"
	"strings"

	"github.com/desertthunder/likesync/internal/match"
)

// Candidate is a parsed (artist, title) guess for one source item.
// An empty Artist means the artist is unknown.
type Candidate struct {
	Artist string
	Title  string
}

// noisePatterns match annotations that carry no artist/title information,
// e.g. "(Official Video)", "[Lyrics]", "(Live at ...)". Case-insensitive.
var noisePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\(Official[^)]*\)`),
	regexp.MustCompile(`(?i)\[Official[^\]]*\]`),
	regexp.MustCompile(`(?i)\(Lyrics?\)`),
	regexp.MustCompile(`(?i)\[Lyrics?\]`),
	regexp.MustCompile(`(?i)\(Audio\)`),
	regexp.MustCompile(`(?i)\[Audio\]`),
	regexp.MustCompile(`(?i)\(Visualizer\)`),
	regexp.MustCompile(`(?i)\[Visualizer\]`),
	regexp.MustCompile(`(?i)\(Live[^)]*\)`),
	regexp.MustCompile(`(?i)\[Live[^\]]*\]`),
	regexp.MustCompile(`(?i)\(HD\)`),
	regexp.MustCompile(`(?i)\[HD\]`),
}

// separators are tried in priority order; the first one present wins and the
// split happens at its first occurrence only.
var separators = []string{" - ", " – ", " — ", " | ", ": "}

// fallbackSeparators splits on the first bare separator character when no
// spaced separator matched.
var fallbackSeparators = regexp.MustCompile(`[-–—:|]`)

var whitespaceRuns = regexp.MustCompile(`\s{2,}`)

// Clean strips noise annotations from a display title, collapses whitespace
// runs, and trims the result.
func Clean(title string) string {
	t := title
	for _, pat := range noisePatterns {
		t = pat.ReplaceAllString(t, "")
	}
	return strings.TrimSpace(whitespaceRuns.ReplaceAllString(t, " "))
}

// Parser derives candidates from display titles, optionally using the
// uploading channel's name as an artist hint.
type Parser struct {
	// ChannelThreshold is the minimum partial similarity (0-100) between
	// channel name and cleaned title for the channel to be used as artist.
	ChannelThreshold float64
}

// NewParser creates a Parser. A non-positive threshold falls back to 60.
func NewParser(channelThreshold float64) Parser {
	if channelThreshold <= 0 {
		channelThreshold = 60
	}
	return Parser{ChannelThreshold: channelThreshold}
}

// Guess parses a display title into an (artist, title) candidate.
//
// Heuristics, in order: spaced separator split, channel-as-artist when the
// channel name resembles the title, bare separator-character split, and
// finally the cleaned title with an unknown artist. Never fails.
func (p Parser) Guess(displayTitle, channel string) Candidate {
	t := Clean(displayTitle)

	for _, sep := range separators {
		if idx := strings.Index(t, sep); idx >= 0 {
			return Candidate{
				Artist: strings.TrimSpace(t[:idx]),
				Title:  strings.TrimSpace(t[idx+len(sep):]),
			}
		}
	}

	if channel != "" && match.PartialRatio(channel, t) > p.ChannelThreshold {
		return Candidate{Artist: strings.TrimSpace(channel), Title: t}
	}

	if parts := fallbackSeparators.Split(t, 2); len(parts) == 2 {
		return Candidate{
			Artist: strings.TrimSpace(parts[0]),
			Title:  strings.TrimSpace(parts[1]),
		}
	}

	return Candidate{Artist: "", Title: t}
}
