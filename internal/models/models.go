// package models defines the data model for the likes reconciliation pipeline
package models

import (
	"time"
)

// Model defines the base interface for all persistent models.
type Model interface {
	ID() string           // ID returns the unique identifier for this model
	CreatedAt() time.Time // CreatedAt returns when this model was created
	UpdatedAt() time.Time // UpdatedAt returns when this model was last updated
	Validate() error      // Validate checks if the model's data is valid and returns an error if not
}

// Repository defines the interface for data access operations.
// Implementations handle database interactions for specific model types.
type Repository[T Model] interface {
	Create(model T) error                      // Create inserts a new model into the database
	Get(id string) (T, error)                  // Get retrieves a model by its ID
	Update(model T) error                      // Update modifies an existing model in the database
	Delete(id string) error                    // Delete removes a model from the database by its ID
	List(criteria map[string]any) ([]T, error) // List retrieves all models matching the given criteria
}

// SourceItem represents one liked video fetched from the source catalog.
// Immutable; produced by the source service in page-stable order.
type SourceItem struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Channel string `json:"channel,omitempty"`
}

// CatalogRecord represents a track search result from the destination catalog.
type CatalogRecord struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Artists []string `json:"artists"`
}

// Plan is the outcome of reconciling source items against the destination
// catalog. ResolvedIDs preserves source order and may contain duplicates when
// distinct source items resolve to the same track.
type Plan struct {
	ResolvedIDs      []string `json:"resolved_ids"`
	UnresolvedTitles []string `json:"unresolved_titles"`
	Total            int      `json:"total"`
}

// Resolved returns the number of source items that resolved to a catalog ID.
func (p *Plan) Resolved() int {
	return len(p.ResolvedIDs)
}

// DestinationState is a pre-run snapshot of the destination playlist.
//
// ExistingTrackIDs is read once at the start of a run; convergence dedups
// against this snapshot, never against live state.
type DestinationState struct {
	PlaylistID       string
	ExistingTrackIDs map[string]struct{}
}

// Contains reports whether the snapshot already holds the given track ID.
func (d DestinationState) Contains(trackID string) bool {
	_, ok := d.ExistingTrackIDs[trackID]
	return ok
}
