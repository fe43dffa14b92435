package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ebaadraheem/skillmorph-cli/internal/shared"
)

// SearchEntry is one committed catalog search.
type SearchEntry struct {
	ID         string
	Query      string
	SearchedAt time.Time
}

// SearchRepository records committed catalog searches.
// It implements services.SearchRecorder.
type SearchRepository struct {
	db   *sql.DB
	keep int
}

// NewSearchRepository creates a new [SearchRepository] retaining at most
// keep entries (older rows are pruned on insert).
func NewSearchRepository(db *sql.DB, keep int) *SearchRepository {
	if keep <= 0 {
		keep = 25
	}
	return &SearchRepository{db: db, keep: keep}
}

// Record inserts a search query with a generated id, pruning history beyond
// the retention limit.
func (r *SearchRepository) Record(query string) error {
	id := shared.GenerateID()

	if _, err := r.db.Exec(
		`INSERT INTO search_history (id, query, searched_at) VALUES (?, ?, ?)`,
		id, query, time.Now(),
	); err != nil {
		return fmt.Errorf("failed to insert search: %w", err)
	}

	prune := `
		DELETE FROM search_history WHERE id NOT IN (
			SELECT id FROM search_history ORDER BY searched_at DESC LIMIT ?
		)
	`
	if _, err := r.db.Exec(prune, r.keep); err != nil {
		return fmt.Errorf("failed to prune search history: %w", err)
	}

	return nil
}

// Recent returns the most recent searches, newest first.
func (r *SearchRepository) Recent(limit int) ([]SearchEntry, error) {
	if limit <= 0 || limit > r.keep {
		limit = r.keep
	}

	rows, err := r.db.Query(
		`SELECT id, query, searched_at FROM search_history ORDER BY searched_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query search history: %w", err)
	}
	defer rows.Close()

	var entries []SearchEntry
	for rows.Next() {
		var entry SearchEntry
		if err := rows.Scan(&entry.ID, &entry.Query, &entry.SearchedAt); err != nil {
			return nil, fmt.Errorf("failed to scan search entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return entries, nil
}
