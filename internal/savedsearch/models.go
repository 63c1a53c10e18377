package savedsearch

import (
	"time"

	"matchengine/internal/models"
)

// CreateResult reports a create call. Existing is true when the filter tuple
// already had a saved search for this owner and that one was returned
// instead of inserting a duplicate.
type CreateResult struct {
	Search   *models.SavedSearch `json:"search"`
	Existing bool                `json:"existing"`
}

// RunResult summarizes one delta check of a saved search.
type RunResult struct {
	SearchID     string           `json:"searchId"`
	TotalMatches int              `json:"totalMatches"`
	NewMatches   []models.Profile `json:"newMatches"`
	Notified     bool             `json:"notified"`
	CheckedAt    time.Time        `json:"checkedAt"`
}
