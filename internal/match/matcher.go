// package match resolves (artist, title) candidates to destination catalog tracks.
//
// Search results are scored with a weighted blend of title and artist partial
// similarity; the highest score wins and exact ties keep the earliest result.
package match

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/likesync/internal/models"
	"github.com/desertthunder/likesync/internal/shared"
	"golang.org/x/time/rate"
)

// Searcher performs a track search against the destination catalog.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]models.CatalogRecord, error)
}

// Options contains scoring weights and search tuning for a [Matcher].
type Options struct {
	TitleWeight  float64 // Weight of title similarity (default 0.7)
	ArtistWeight float64 // Weight of artist similarity (default 0.3)
	SearchLimit  int     // Max results scored per lookup (default 5)
	SearchRate   float64 // Search requests per second (default 5)
}

// Matcher resolves candidates against a destination catalog with retry and pacing.
//
// Stateless per call; safe for sequential reuse across a run.
type Matcher struct {
	searcher Searcher
	opts     Options
	backoff  shared.Backoff
	limiter  *rate.Limiter
}

// NewMatcher creates a Matcher over the given catalog searcher.
// Zero-valued options fall back to defaults.
func NewMatcher(searcher Searcher, opts Options, backoff shared.Backoff) *Matcher {
	if opts.TitleWeight <= 0 {
		opts.TitleWeight = 0.7
	}
	if opts.ArtistWeight <= 0 {
		opts.ArtistWeight = 0.3
	}
	if opts.SearchLimit <= 0 {
		opts.SearchLimit = 5
	}
	if opts.SearchRate <= 0 {
		opts.SearchRate = 5.0
	}

	return &Matcher{
		searcher: searcher,
		opts:     opts,
		backoff:  backoff,
		limiter:  rate.NewLimiter(rate.Limit(opts.SearchRate), 1),
	}
}

// BuildQuery assembles the scoped search query for an (artist, title) pair.
//
// Non-empty fields contribute scoped terms; when both are empty the raw title
// or artist string is used as-is.
func BuildQuery(artist, title string) string {
	var parts []string
	if title != "" {
		parts = append(parts, fmt.Sprintf("track:%s", title))
	}
	if artist != "" {
		parts = append(parts, fmt.Sprintf("artist:%s", artist))
	}
	if len(parts) == 0 {
		if title != "" {
			return title
		}
		return artist
	}
	return strings.Join(parts, " ")
}

// Match searches the catalog for the candidate and returns the best-scoring
// track ID. ok is false when the search produced no results; transient search
// errors are retried under the matcher's backoff policy and escalate once the
// retry budget is exhausted.
func (m *Matcher) Match(ctx context.Context, artist, title string) (id string, ok bool, err error) {
	query := BuildQuery(artist, title)
	if query == "" {
		return "", false, nil
	}

	var records []models.CatalogRecord
	err = m.backoff.Do(ctx, func() error {
		if err := m.limiter.Wait(ctx); err != nil {
			return err
		}
		var searchErr error
		records, searchErr = m.searcher.Search(ctx, query, m.opts.SearchLimit)
		return searchErr
	})
	if err != nil {
		return "", false, fmt.Errorf("catalog search failed for %q: %w", query, err)
	}

	if len(records) == 0 {
		return "", false, nil
	}

	bestID, bestScore := "", -1.0
	for _, rec := range records {
		score := m.Score(rec, artist, title)
		if score > bestScore {
			bestScore = score
			bestID = rec.ID
		}
	}

	return bestID, true, nil
}

// Score computes the weighted similarity of one search result against the candidate.
func (m *Matcher) Score(rec models.CatalogRecord, artist, title string) float64 {
	titleScore := PartialRatio(rec.Name, title)
	artistScore := PartialRatio(strings.Join(rec.Artists, ", "), artist)
	return m.opts.TitleWeight*titleScore + m.opts.ArtistWeight*artistScore
}
