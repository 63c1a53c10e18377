package store

import (
	"context"
	"database/sql"

	"matchengine/internal/common/errors"
)

// UserStore resolves notification contact details for account holders.
type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

// GetContact returns a user's email and phone. Missing users come back as
// empty strings so callers can decide whether a channel is usable.
func (s *UserStore) GetContact(ctx context.Context, userID string) (string, string, error) {
	var email, phone string
	err := s.db.QueryRowContext(ctx, `SELECT email, phone FROM users WHERE id = $1`, userID).Scan(&email, &phone)
	if err == sql.ErrNoRows {
		return "", "", nil
	}
	if err != nil {
		return "", "", errors.NewQueryExecutionFailedError("users_get_contact", err)
	}
	return email, phone, nil
}
