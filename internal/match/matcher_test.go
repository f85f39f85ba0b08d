package match

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/desertthunder/likesync/internal/models"
	"github.com/desertthunder/likesync/internal/shared"
)

type fakeSearcher struct {
	records    []models.CatalogRecord
	err        error
	failures   int // Fail this many calls before succeeding
	callCount  int
	lastQuery  string
	lastLimit  int
}

func (f *fakeSearcher) Search(ctx context.Context, query string, limit int) ([]models.CatalogRecord, error) {
	f.callCount++
	f.lastQuery = query
	f.lastLimit = limit
	if f.failures > 0 && f.callCount <= f.failures {
		return nil, fmt.Errorf("%w: rate limited", shared.ErrTransient)
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

func fastBackoff() shared.Backoff {
	return shared.Backoff{
		Initial:    time.Millisecond,
		MaxDelay:   2 * time.Millisecond,
		Multiplier: 2.0,
		MaxElapsed: 100 * time.Millisecond,
	}
}

func TestBuildQuery(t *testing.T) {
	tests := []struct {
		name   string
		artist string
		title  string
		want   string
	}{
		{"artist and title", "Rick Astley", "Never Gonna Give You Up", "track:Never Gonna Give You Up artist:Rick Astley"},
		{"title only", "", "Never Gonna Give You Up", "track:Never Gonna Give You Up"},
		{"artist only", "Rick Astley", "", "artist:Rick Astley"},
		{"both empty", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildQuery(tt.artist, tt.title); got != tt.want {
				t.Errorf("BuildQuery(%q, %q) = %q, want %q", tt.artist, tt.title, got, tt.want)
			}
		})
	}
}

func TestMatcher_Match(t *testing.T) {
	ctx := context.Background()

	t.Run("best score wins", func(t *testing.T) {
		searcher := &fakeSearcher{
			records: []models.CatalogRecord{
				{ID: "bad", Name: "Completely Different", Artists: []string{"Nobody"}},
				{ID: "good", Name: "Never Gonna Give You Up", Artists: []string{"Rick Astley"}},
			},
		}
		m := NewMatcher(searcher, Options{SearchRate: 1000}, fastBackoff())

		id, ok, err := m.Match(ctx, "Rick Astley", "Never Gonna Give You Up")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok || id != "good" {
			t.Errorf("Match = (%q, %v), want (good, true)", id, ok)
		}
	})

	t.Run("exact tie keeps earliest result", func(t *testing.T) {
		searcher := &fakeSearcher{
			records: []models.CatalogRecord{
				{ID: "first", Name: "Song", Artists: []string{"Artist"}},
				{ID: "second", Name: "Song", Artists: []string{"Artist"}},
			},
		}
		m := NewMatcher(searcher, Options{SearchRate: 1000}, fastBackoff())

		id, ok, err := m.Match(ctx, "Artist", "Song")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok || id != "first" {
			t.Errorf("Match = (%q, %v), want (first, true)", id, ok)
		}
	})

	t.Run("no results is not an error", func(t *testing.T) {
		searcher := &fakeSearcher{}
		m := NewMatcher(searcher, Options{SearchRate: 1000}, fastBackoff())

		id, ok, err := m.Match(ctx, "Artist", "Song")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ok || id != "" {
			t.Errorf("Match = (%q, %v), want no match", id, ok)
		}
	})

	t.Run("empty candidate skips the search", func(t *testing.T) {
		searcher := &fakeSearcher{}
		m := NewMatcher(searcher, Options{SearchRate: 1000}, fastBackoff())

		_, ok, err := m.Match(ctx, "", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ok {
			t.Error("expected no match for empty candidate")
		}
		if searcher.callCount != 0 {
			t.Errorf("searcher called %d times, want 0", searcher.callCount)
		}
	})

	t.Run("transient failures are retried", func(t *testing.T) {
		searcher := &fakeSearcher{
			failures: 2,
			records:  []models.CatalogRecord{{ID: "tr1", Name: "Song", Artists: []string{"Artist"}}},
		}
		m := NewMatcher(searcher, Options{SearchRate: 1000}, fastBackoff())

		id, ok, err := m.Match(ctx, "Artist", "Song")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok || id != "tr1" {
			t.Errorf("Match = (%q, %v), want (tr1, true)", id, ok)
		}
		if searcher.callCount != 3 {
			t.Errorf("searcher called %d times, want 3", searcher.callCount)
		}
	})

	t.Run("retry budget exhaustion escalates", func(t *testing.T) {
		searcher := &fakeSearcher{failures: 1000}
		m := NewMatcher(searcher, Options{SearchRate: 1000}, fastBackoff())

		_, _, err := m.Match(ctx, "Artist", "Song")
		if !errors.Is(err, shared.ErrBackoffExhausted) {
			t.Errorf("error = %v, want ErrBackoffExhausted", err)
		}
	})

	t.Run("non-transient errors are not retried", func(t *testing.T) {
		searcher := &fakeSearcher{err: fmt.Errorf("%w: bad request", shared.ErrAPIRequest)}
		m := NewMatcher(searcher, Options{SearchRate: 1000}, fastBackoff())

		_, _, err := m.Match(ctx, "Artist", "Song")
		if err == nil {
			t.Fatal("expected error")
		}
		if searcher.callCount != 1 {
			t.Errorf("searcher called %d times, want 1", searcher.callCount)
		}
	})

	t.Run("search limit from options", func(t *testing.T) {
		searcher := &fakeSearcher{records: []models.CatalogRecord{{ID: "x", Name: "Song"}}}
		m := NewMatcher(searcher, Options{SearchLimit: 5, SearchRate: 1000}, fastBackoff())

		if _, _, err := m.Match(ctx, "", "Song"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if searcher.lastLimit != 5 {
			t.Errorf("search limit = %d, want 5", searcher.lastLimit)
		}
	})
}

func TestMatcher_Score(t *testing.T) {
	m := NewMatcher(&fakeSearcher{}, Options{TitleWeight: 0.7, ArtistWeight: 0.3, SearchRate: 1000}, fastBackoff())

	t.Run("perfect match scores 100", func(t *testing.T) {
		rec := models.CatalogRecord{Name: "Song", Artists: []string{"Artist"}}
		if got := m.Score(rec, "Artist", "Song"); got != 100 {
			t.Errorf("Score = %v, want 100", got)
		}
	})

	t.Run("title dominates artist", func(t *testing.T) {
		titleOnly := models.CatalogRecord{Name: "Song", Artists: []string{"Wrong Name X"}}
		artistOnly := models.CatalogRecord{Name: "Wrong Name X", Artists: []string{"Artist"}}

		titleScore := m.Score(titleOnly, "Artist", "Song")
		artistScore := m.Score(artistOnly, "Artist", "Song")
		if titleScore <= artistScore {
			t.Errorf("title match (%v) should outscore artist match (%v)", titleScore, artistScore)
		}
	})
}
