package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/likesync/internal/models"
	"github.com/desertthunder/likesync/internal/shared"
)

// TokenRepository implements [models.Repository] for cached OAuth [models.Token] persistence.
type TokenRepository struct {
	db *sql.DB
}

// NewTokenRepository creates a new [TokenRepository] with the given database connection
func NewTokenRepository(db *sql.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

// Create inserts a new token into the database with generated ID and sequence
func (r *TokenRepository) Create(token *models.Token) error {
	sequence, err := NextSequence(r.db, "tokens")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	token.SetID(id)
	token.SetSequence(sequence)

	if err := token.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO tokens (id, sequence, service, access_token, refresh_token, token_type, expiry, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query, id, sequence, token.Service(), token.AccessToken(), token.RefreshToken(),
		token.TokenType(), token.Expiry(), token.CreatedAt(), token.UpdatedAt())
	if err != nil {
		return fmt.Errorf("failed to insert token: %w", err)
	}

	return nil
}

// Get retrieves a token by ID, excluding soft-deleted tokens
func (r *TokenRepository) Get(id string) (*models.Token, error) {
	query := `
		SELECT id, sequence, service, access_token, refresh_token, token_type, expiry, created_at, updated_at, deleted_at
		FROM tokens
		WHERE id = ? AND deleted_at IS NULL
	`

	token, err := r.scanRow(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("token not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query token: %w", err)
	}

	return token, nil
}

// GetByService retrieves the live token for the named service ("spotify", "google").
//
// Returns [shared.ErrNotFound] wrapped when no credential is cached for the service.
func (r *TokenRepository) GetByService(service string) (*models.Token, error) {
	query := `
		SELECT id, sequence, service, access_token, refresh_token, token_type, expiry, created_at, updated_at, deleted_at
		FROM tokens
		WHERE service = ? AND deleted_at IS NULL
	`

	token, err := r.scanRow(r.db.QueryRow(query, service))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: no cached credential for %s", shared.ErrNotFound, service)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query token: %w", err)
	}

	return token, nil
}

// Update modifies an existing token in the database
func (r *TokenRepository) Update(token *models.Token) error {
	if err := token.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	token.SetUpdatedAt(now)

	query := `
		UPDATE tokens
		SET access_token = ?, refresh_token = ?, token_type = ?, expiry = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, token.AccessToken(), token.RefreshToken(), token.TokenType(),
		token.Expiry(), now, token.ID())
	if err != nil {
		return fmt.Errorf("failed to update token: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("token not found or already deleted: %s", token.ID())
	}

	return nil
}

// Upsert stores the token for its service, replacing any previously cached credential.
//
// Re-authenticating against a provider always supersedes the old grant, so the
// stale row is soft-deleted rather than updated in place.
func (r *TokenRepository) Upsert(token *models.Token) error {
	existing, err := r.GetByService(token.Service())
	if err == nil {
		if err := r.Delete(existing.ID()); err != nil {
			return fmt.Errorf("failed to replace token: %w", err)
		}
	}

	return r.Create(token)
}

// Delete soft-deletes a token by ID
func (r *TokenRepository) Delete(id string) error {
	now := time.Now()

	query := `
		UPDATE tokens
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, now, id)
	if err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("token not found or already deleted: %s", id)
	}

	return nil
}

// List retrieves all tokens matching the given criteria, excluding soft-deleted tokens
func (r *TokenRepository) List(criteria map[string]any) ([]*models.Token, error) {
	query := `
		SELECT id, sequence, service, access_token, refresh_token, token_type, expiry, created_at, updated_at, deleted_at
		FROM tokens
		WHERE deleted_at IS NULL
	`

	args := []any{}

	if service, ok := criteria["service"].(string); ok && service != "" {
		query += " AND service = ?"
		args = append(args, service)
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tokens: %w", err)
	}
	defer rows.Close()

	var tokens []*models.Token
	for rows.Next() {
		token, err := r.scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan token: %w", err)
		}
		tokens = append(tokens, token)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return tokens, nil
}

type scannable interface {
	Scan(dest ...any) error
}

func (r *TokenRepository) scanRow(row scannable) (*models.Token, error) {
	var (
		id           string
		sequence     int
		service      string
		accessToken  string
		refreshToken string
		tokenType    string
		expiry       time.Time
		createdAt    time.Time
		updatedAt    time.Time
		deletedAt    sql.NullTime
	)

	err := row.Scan(&id, &sequence, &service, &accessToken, &refreshToken, &tokenType,
		&expiry, &createdAt, &updatedAt, &deletedAt)
	if err != nil {
		return nil, err
	}

	token := models.NewToken(sequence, service, nil)
	token.SetID(id)
	token.SetAccessToken(accessToken)
	token.SetRefreshToken(refreshToken)
	token.SetTokenType(tokenType)
	token.SetExpiry(expiry)
	token.SetCreatedAt(createdAt)
	token.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		token.SetDeletedAt(&deletedAt.Time)
	}

	return token, nil
}
