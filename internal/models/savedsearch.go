package models

import "time"

// SavedSearch is a recruiter's persisted candidate filter with notification
// tracking. LastCheckedAt is the watermark separating already-notified
// matches from new ones; nil means the search has never been run.
type SavedSearch struct {
	ID                string     `json:"id"`
	OwnerID           string     `json:"ownerId"`
	Skills            string     `json:"skills"`
	Location          string     `json:"location"`
	Projects          string     `json:"projects"`
	CreatedAt         time.Time  `json:"createdAt"`
	LastCheckedAt     *time.Time `json:"lastCheckedAt,omitempty"`
	LastNotifiedCount int        `json:"lastNotifiedCount"`
}
