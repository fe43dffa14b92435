package repositories

import (
	"database/sql"
	"fmt"
	"time"
)

// Fixed storage keys for single-valued client state.
const (
	accessTokenKey   = "access_token"
	refreshCookieKey = "refresh_cookie"
)

// CredentialRepository persists the access token (and the imported ambient
// cookie) across runs. It implements services.CredentialStore.
//
// An absent key reads as the empty string, which the session manager maps
// to the Anonymous state on startup.
type CredentialRepository struct {
	db *sql.DB
}

// NewCredentialRepository creates a new [CredentialRepository] with the given database connection
func NewCredentialRepository(db *sql.DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

// Token returns the stored access token, or "" when none is stored.
func (r *CredentialRepository) Token() (string, error) {
	return r.get(accessTokenKey)
}

// SetToken stores the access token, replacing any previous value.
func (r *CredentialRepository) SetToken(token string) error {
	return r.set(accessTokenKey, token)
}

// Clear removes the stored access token and the imported refresh cookie.
// Logging out forgets both halves of the credential pair.
func (r *CredentialRepository) Clear() error {
	_, err := r.db.Exec(`DELETE FROM credentials WHERE key IN (?, ?)`, accessTokenKey, refreshCookieKey)
	if err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	return nil
}

// Cookie returns the imported ambient refresh cookie, or "".
func (r *CredentialRepository) Cookie() (string, error) {
	return r.get(refreshCookieKey)
}

// SetCookie stores the ambient refresh cookie.
func (r *CredentialRepository) SetCookie(cookie string) error {
	return r.set(refreshCookieKey, cookie)
}

func (r *CredentialRepository) get(key string) (string, error) {
	var value string
	err := r.db.QueryRow(`SELECT value FROM credentials WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query credential %s: %w", key, err)
	}
	return value, nil
}

func (r *CredentialRepository) set(key, value string) error {
	query := `
		INSERT INTO credentials (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`

	if _, err := r.db.Exec(query, key, value, time.Now()); err != nil {
		return fmt.Errorf("failed to store credential %s: %w", key, err)
	}
	return nil
}
