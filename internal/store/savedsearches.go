package store

import (
	"context"
	"database/sql"
	"time"

	"matchengine/internal/common/errors"
	"matchengine/internal/models"

	"github.com/google/uuid"
)

// SavedSearchStore persists recruiter saved searches.
type SavedSearchStore struct {
	db *sql.DB
}

func NewSavedSearchStore(db *sql.DB) *SavedSearchStore {
	return &SavedSearchStore{db: db}
}

const savedSearchColumns = `id, owner_id, skills, location, projects, created_at, last_checked_at, last_notified_count`

// Create inserts a new saved search and returns it with its generated ID.
func (s *SavedSearchStore) Create(ctx context.Context, ownerID, skills, location, projects string) (*models.SavedSearch, error) {
	search := &models.SavedSearch{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Skills:    skills,
		Location:  location,
		Projects:  projects,
		CreatedAt: time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO saved_searches (id, owner_id, skills, location, projects, created_at, last_notified_count)
		VALUES ($1, $2, $3, $4, $5, $6, 0)`,
		search.ID, search.OwnerID, search.Skills, search.Location, search.Projects, search.CreatedAt)
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("saved_search_create", err)
	}

	return search, nil
}

// GetByID fetches one saved search. Returns sql.ErrNoRows via a
// SEARCH_NOT_FOUND error when absent.
func (s *SavedSearchStore) GetByID(ctx context.Context, id string) (*models.SavedSearch, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+savedSearchColumns+`
		FROM saved_searches WHERE id = $1`, id)

	search, err := scanSavedSearch(row)
	if err == sql.ErrNoRows {
		return nil, errors.NewSearchNotFoundError(id)
	}
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("saved_search_get", err)
	}
	return search, nil
}

// FindDuplicate looks up an existing search with the exact same filter tuple
// for this owner. Comparison is exact string equality; whitespace or casing
// differences produce distinct searches.
func (s *SavedSearchStore) FindDuplicate(ctx context.Context, ownerID, skills, location, projects string) (*models.SavedSearch, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+savedSearchColumns+`
		FROM saved_searches
		WHERE owner_id = $1 AND skills = $2 AND location = $3 AND projects = $4
		ORDER BY created_at ASC
		LIMIT 1`,
		ownerID, skills, location, projects)

	search, err := scanSavedSearch(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("saved_search_find_duplicate", err)
	}
	return search, nil
}

// ListByOwner returns the owner's saved searches, newest first.
func (s *SavedSearchStore) ListByOwner(ctx context.Context, ownerID string) ([]models.SavedSearch, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+savedSearchColumns+`
		FROM saved_searches
		WHERE owner_id = $1
		ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("saved_search_list", err)
	}
	defer rows.Close()

	var searches []models.SavedSearch
	for rows.Next() {
		search, err := scanSavedSearch(rows)
		if err != nil {
			return nil, errors.NewQueryExecutionFailedError("saved_search_list", err)
		}
		searches = append(searches, *search)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewQueryExecutionFailedError("saved_search_list", err)
	}
	return searches, nil
}

// MarkChecked advances the watermark and records how many matches were new.
// Runs unconditionally after every run, including zero-new-match runs.
func (s *SavedSearchStore) MarkChecked(ctx context.Context, id string, checkedAt time.Time, notifiedCount int) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE saved_searches
		SET last_checked_at = $2, last_notified_count = $3
		WHERE id = $1`,
		id, checkedAt, notifiedCount)
	if err != nil {
		return errors.NewQueryExecutionFailedError("saved_search_mark_checked", err)
	}
	return nil
}

// Delete permanently removes a saved search. No soft delete.
func (s *SavedSearchStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM saved_searches WHERE id = $1`, id)
	if err != nil {
		return errors.NewQueryExecutionFailedError("saved_search_delete", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSavedSearch(row rowScanner) (*models.SavedSearch, error) {
	var search models.SavedSearch
	var lastChecked sql.NullTime
	err := row.Scan(
		&search.ID,
		&search.OwnerID,
		&search.Skills,
		&search.Location,
		&search.Projects,
		&search.CreatedAt,
		&lastChecked,
		&search.LastNotifiedCount,
	)
	if err != nil {
		return nil, err
	}
	if lastChecked.Valid {
		t := lastChecked.Time
		search.LastCheckedAt = &t
	}
	return &search, nil
}
