package models

import (
	"fmt"
	"time"

	"golang.org/x/oauth2"
)

// Token is a cached OAuth2 credential for one external service.
//
// Exactly one live row exists per service name; re-authenticating replaces it.
type Token struct {
	id           string
	sequence     int
	service      string
	accessToken  string
	refreshToken string
	tokenType    string
	expiry       time.Time
	createdAt    time.Time
	updatedAt    time.Time
	deletedAt    *time.Time
}

// NewToken creates a Token entity from an [oauth2.Token] for the named service.
func NewToken(sequence int, service string, tok *oauth2.Token) *Token {
	now := time.Now()
	t := &Token{
		sequence:  sequence,
		service:   service,
		tokenType: "Bearer",
		createdAt: now,
		updatedAt: now,
	}
	if tok != nil {
		t.accessToken = tok.AccessToken
		t.refreshToken = tok.RefreshToken
		t.expiry = tok.Expiry
		if tok.TokenType != "" {
			t.tokenType = tok.TokenType
		}
	}
	return t
}

func (t *Token) ID() string            { return t.id }
func (t *Token) SetID(id string)       { t.id = id }
func (t *Token) Sequence() int         { return t.sequence }
func (t *Token) Service() string       { return t.service }
func (t *Token) AccessToken() string   { return t.accessToken }
func (t *Token) RefreshToken() string  { return t.refreshToken }
func (t *Token) TokenType() string     { return t.tokenType }
func (t *Token) Expiry() time.Time     { return t.expiry }
func (t *Token) CreatedAt() time.Time  { return t.createdAt }
func (t *Token) UpdatedAt() time.Time  { return t.updatedAt }
func (t *Token) DeletedAt() *time.Time { return t.deletedAt }

func (t *Token) SetUpdatedAt(at time.Time)   { t.updatedAt = at }
func (t *Token) SetDeletedAt(at *time.Time)  { t.deletedAt = at }
func (t *Token) SetExpiry(at time.Time)      { t.expiry = at }
func (t *Token) SetAccessToken(tok string)   { t.accessToken = tok }
func (t *Token) SetRefreshToken(tok string)  { t.refreshToken = tok }
func (t *Token) SetCreatedAt(at time.Time)   { t.createdAt = at }
func (t *Token) SetTokenType(typ string)     { t.tokenType = typ }
func (t *Token) SetSequence(sequence int)    { t.sequence = sequence }
func (t *Token) SetService(service string)   { t.service = service }

// Validate checks if the token's data is valid.
func (t *Token) Validate() error {
	if t.service == "" {
		return fmt.Errorf("token service is required")
	}
	if t.accessToken == "" {
		return fmt.Errorf("token access_token is required")
	}
	return nil
}

// OAuth2 converts the entity back to an [oauth2.Token] for client construction.
func (t *Token) OAuth2() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  t.accessToken,
		RefreshToken: t.refreshToken,
		TokenType:    t.tokenType,
		Expiry:       t.expiry,
	}
}

// Expired reports whether the access token has passed its expiry.
// Tokens without a recorded expiry are treated as still valid.
func (t *Token) Expired() bool {
	return !t.expiry.IsZero() && time.Now().After(t.expiry)
}
