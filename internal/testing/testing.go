// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/desertthunder/likesync/internal/models"
)

// MockSource is a configurable test double for [services.SourceService]
type MockSource struct {
	Items   []models.SourceItem
	Err     error
	AuthErr error
}

func (m *MockSource) Authenticate(ctx context.Context, credentials map[string]string) error {
	return m.AuthErr
}

func (m *MockSource) LikedTracks(ctx context.Context, maxResults int) ([]models.SourceItem, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if maxResults > 0 && len(m.Items) > maxResults {
		return m.Items[:maxResults], nil
	}
	return m.Items, nil
}

func (m *MockSource) Name() string { return "mock-source" }

// MockCatalog is a configurable test double for [services.CatalogService].
//
// Every mutation and lookup is recorded so tests can assert on call counts
// and on exactly which track IDs were appended, in order.
type MockCatalog struct {
	SearchResults map[string][]models.CatalogRecord
	SearchErr     error
	SearchCalls   []string

	PlaylistID  string
	PlaylistErr error

	ExistingIDs map[string]struct{}
	TrackIDsErr error

	AddedBatches [][]string
	AddErr       error

	AuthErr error
}

func (m *MockCatalog) Authenticate(ctx context.Context, credentials map[string]string) error {
	return m.AuthErr
}

func (m *MockCatalog) Search(ctx context.Context, query string, limit int) ([]models.CatalogRecord, error) {
	m.SearchCalls = append(m.SearchCalls, query)
	if m.SearchErr != nil {
		return nil, m.SearchErr
	}
	records := m.SearchResults[query]
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

func (m *MockCatalog) GetOrCreatePlaylist(ctx context.Context, name string) (string, error) {
	if m.PlaylistErr != nil {
		return "", m.PlaylistErr
	}
	if m.PlaylistID == "" {
		m.PlaylistID = "mock-playlist"
	}
	return m.PlaylistID, nil
}

func (m *MockCatalog) PlaylistTrackIDs(ctx context.Context, playlistID string) (map[string]struct{}, error) {
	if m.TrackIDsErr != nil {
		return nil, m.TrackIDsErr
	}
	if m.ExistingIDs == nil {
		return map[string]struct{}{}, nil
	}
	return m.ExistingIDs, nil
}

func (m *MockCatalog) AddTracks(ctx context.Context, playlistID string, trackIDs []string) error {
	if m.AddErr != nil {
		return m.AddErr
	}
	batch := make([]string, len(trackIDs))
	copy(batch, trackIDs)
	m.AddedBatches = append(m.AddedBatches, batch)
	return nil
}

func (m *MockCatalog) Name() string { return "mock-catalog" }

// Added flattens all recorded append batches into one ordered list.
func (m *MockCatalog) Added() []string {
	var all []string
	for _, batch := range m.AddedBatches {
		all = append(all, batch...)
	}
	return all
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
