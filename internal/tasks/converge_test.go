package tasks

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/desertthunder/likesync/internal/models"
	mock "github.com/desertthunder/likesync/internal/testing"
)

func snapshot(ids ...string) models.DestinationState {
	existing := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		existing[id] = struct{}{}
	}
	return models.DestinationState{PlaylistID: "pl1", ExistingTrackIDs: existing}
}

func TestAdditions(t *testing.T) {
	tests := []struct {
		name       string
		existing   []string
		candidates []string
		want       []string
	}{
		{
			name:       "filters present preserves order and repeats",
			existing:   []string{"a", "b"},
			candidates: []string{"a", "c", "c", "d"},
			want:       []string{"c", "c", "d"},
		},
		{
			name:       "all new",
			existing:   nil,
			candidates: []string{"x", "y"},
			want:       []string{"x", "y"},
		},
		{
			name:       "all present",
			existing:   []string{"x", "y"},
			candidates: []string{"x", "y"},
			want:       []string{},
		},
		{
			name:       "empty candidates",
			existing:   []string{"x"},
			candidates: nil,
			want:       []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Additions(snapshot(tt.existing...), tt.candidates)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Additions = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestChunks(t *testing.T) {
	t.Run("partitions into bounded chunks", func(t *testing.T) {
		ids := make([]string, 205)
		for i := range ids {
			ids[i] = string(rune('a' + i%26))
		}

		chunks := Chunks(ids, 90)
		if len(chunks) != 3 {
			t.Fatalf("got %d chunks, want 3", len(chunks))
		}
		for i, chunk := range chunks[:len(chunks)-1] {
			if len(chunk) != 90 {
				t.Errorf("chunk %d has %d elements, want 90", i, len(chunk))
			}
		}
		if len(chunks[2]) != 25 {
			t.Errorf("last chunk has %d elements, want 25", len(chunks[2]))
		}

		var flat []string
		for _, chunk := range chunks {
			flat = append(flat, chunk...)
		}
		if !reflect.DeepEqual(flat, ids) {
			t.Error("concatenated chunks do not reproduce input")
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if got := Chunks(nil, 90); got != nil {
			t.Errorf("Chunks(nil) = %v, want nil", got)
		}
	})

	t.Run("exact multiple", func(t *testing.T) {
		chunks := Chunks([]string{"a", "b", "c", "d"}, 2)
		if len(chunks) != 2 || len(chunks[0]) != 2 || len(chunks[1]) != 2 {
			t.Errorf("unexpected chunking: %v", chunks)
		}
	})
}

func TestLikesEngine_Converge(t *testing.T) {
	ctx := context.Background()

	fastOpts := ConvergeOpts{BatchSize: 2, BaseDelay: time.Millisecond, Jitter: 0}

	t.Run("appends only missing tracks in order", func(t *testing.T) {
		catalog := &mock.MockCatalog{}
		engine := NewLikesEngine(nil, catalog, parser(), nil, nil)
		engine.SetConvergeOpts(fastOpts)

		added, err := engine.Converge(ctx, snapshot("a"), []string{"a", "b", "c", "d"}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if added != 3 {
			t.Errorf("added = %d, want 3", added)
		}
		if got := catalog.Added(); !reflect.DeepEqual(got, []string{"b", "c", "d"}) {
			t.Errorf("appended %v, want [b c d]", got)
		}
		if len(catalog.AddedBatches) != 2 {
			t.Errorf("got %d batches, want 2", len(catalog.AddedBatches))
		}
	})

	t.Run("up to date makes no mutation calls", func(t *testing.T) {
		catalog := &mock.MockCatalog{}
		engine := NewLikesEngine(nil, catalog, parser(), nil, nil)
		engine.SetConvergeOpts(fastOpts)

		added, err := engine.Converge(ctx, snapshot("a", "b"), []string{"a", "b"}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if added != 0 {
			t.Errorf("added = %d, want 0", added)
		}
		if len(catalog.AddedBatches) != 0 {
			t.Errorf("got %d append calls, want 0", len(catalog.AddedBatches))
		}
	})

	t.Run("append failure is fatal", func(t *testing.T) {
		catalog := &mock.MockCatalog{AddErr: context.DeadlineExceeded}
		engine := NewLikesEngine(nil, catalog, parser(), nil, nil)
		engine.SetConvergeOpts(fastOpts)

		added, err := engine.Converge(ctx, snapshot(), []string{"a", "b"}, nil)
		if err == nil {
			t.Fatal("expected error")
		}
		if added != 0 {
			t.Errorf("added = %d, want 0", added)
		}
	})

	t.Run("second run is a no-op", func(t *testing.T) {
		catalog := &mock.MockCatalog{}
		engine := NewLikesEngine(nil, catalog, parser(), nil, nil)
		engine.SetConvergeOpts(fastOpts)

		resolved := []string{"a", "b", "c"}
		added, err := engine.Converge(ctx, snapshot(), resolved, nil)
		if err != nil || added != 3 {
			t.Fatalf("first run: added=%d err=%v", added, err)
		}

		// Re-run with a snapshot reflecting the first run's appends.
		added, err = engine.Converge(ctx, snapshot("a", "b", "c"), resolved, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if added != 0 {
			t.Errorf("second run added = %d, want 0", added)
		}
		if got := catalog.Added(); len(got) != 3 {
			t.Errorf("total appended = %d, want 3", len(got))
		}
	})
}
