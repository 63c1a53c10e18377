// Package savedsearch implements recruiter saved searches: persisted
// candidate filters with watermark-based new-match detection and alerting.
package savedsearch

import (
	"context"
	"time"

	"matchengine/internal/common/errors"
	"matchengine/internal/common/logger"
	"matchengine/internal/common/metrics"
	"matchengine/internal/common/observability"
	"matchengine/internal/models"
	"matchengine/internal/notify"
	"matchengine/internal/search"
)

// SearchStore persists saved searches and their run watermarks.
type SearchStore interface {
	Create(ctx context.Context, ownerID, skills, location, projects string) (*models.SavedSearch, error)
	GetByID(ctx context.Context, id string) (*models.SavedSearch, error)
	FindDuplicate(ctx context.Context, ownerID, skills, location, projects string) (*models.SavedSearch, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.SavedSearch, error)
	MarkChecked(ctx context.Context, id string, checkedAt time.Time, notifiedCount int) error
	Delete(ctx context.Context, id string) error
}

// CandidateSource supplies the discoverable candidate pool.
type CandidateSource interface {
	PublicCandidates(ctx context.Context) ([]models.Profile, error)
}

// ContactSource resolves the owner's notification address.
type ContactSource interface {
	GetContact(ctx context.Context, userID string) (email, phone string, err error)
}

// Service owns the saved-search lifecycle. All operations take the acting
// user's ID explicitly; ownership checks happen here, not in the stores.
type Service struct {
	store      SearchStore
	candidates CandidateSource
	contacts   ContactSource
	notifier   notify.Notifier
	logger     logger.Logger
	obs        *observability.Observability
	now        func() time.Time
	repLimit   int
}

func NewService(store SearchStore, candidates CandidateSource, contacts ContactSource, notifier notify.Notifier, log logger.Logger, obs *observability.Observability, repLimit int) *Service {
	if repLimit <= 0 {
		repLimit = notify.DefaultRepresentativeMatches
	}
	return &Service{
		store:      store,
		candidates: candidates,
		contacts:   contacts,
		notifier:   notifier,
		logger:     log.WithFields(map[string]interface{}{"component": "savedsearch"}),
		obs:        obs,
		now:        func() time.Time { return time.Now().UTC() },
		repLimit:   repLimit,
	}
}

// WithClock overrides the service clock. Used by tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Create saves a new search for the owner. All-blank filters are rejected.
// An exact duplicate of an existing filter tuple returns the existing search
// rather than inserting a second row.
func (s *Service) Create(ctx context.Context, ownerID string, criteria search.Criteria) (*CreateResult, error) {
	if criteria.IsEmpty() {
		return nil, errors.NewValidationFailedError("at least one of skills, location, or projects is required")
	}

	existing, err := s.store.FindDuplicate(ctx, ownerID, criteria.Skills, criteria.Location, criteria.Projects)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		s.logger.Debug("duplicate saved search, returning existing", map[string]interface{}{
			"searchId": existing.ID,
			"ownerId":  ownerID,
		})
		return &CreateResult{Search: existing, Existing: true}, nil
	}

	created, err := s.store.Create(ctx, ownerID, criteria.Skills, criteria.Location, criteria.Projects)
	if err != nil {
		return nil, err
	}

	s.logger.Info("saved search created", map[string]interface{}{
		"searchId": created.ID,
		"ownerId":  ownerID,
	})
	return &CreateResult{Search: created, Existing: false}, nil
}

// List returns the owner's saved searches, newest first.
func (s *Service) List(ctx context.Context, ownerID string) ([]models.SavedSearch, error) {
	return s.store.ListByOwner(ctx, ownerID)
}

// Delete removes a saved search after verifying ownership.
func (s *Service) Delete(ctx context.Context, ownerID, searchID string) error {
	saved, err := s.store.GetByID(ctx, searchID)
	if err != nil {
		return err
	}
	if saved.OwnerID != ownerID {
		return errors.NewSearchForbiddenError(searchID, ownerID)
	}
	return s.store.Delete(ctx, searchID)
}

// Run executes one delta check: filter the current candidate pool through
// the saved criteria, split out matches whose profile changed since the last
// check, alert the owner if any are new, and advance the watermark.
//
// The watermark always advances, even on zero-new-match runs, and a failed
// notification never fails the run. A profile created between pool load and
// MarkChecked can be missed; the next run's pool is authoritative.
func (s *Service) Run(ctx context.Context, ownerID, searchID string) (*RunResult, error) {
	start := s.now()

	saved, err := s.store.GetByID(ctx, searchID)
	if err != nil {
		metrics.SavedSearchRuns.WithLabelValues("error").Inc()
		return nil, err
	}
	if saved.OwnerID != ownerID {
		metrics.SavedSearchRuns.WithLabelValues("forbidden").Inc()
		return nil, errors.NewSearchForbiddenError(searchID, ownerID)
	}

	pool, err := s.candidates.PublicCandidates(ctx)
	if err != nil {
		metrics.SavedSearchRuns.WithLabelValues("error").Inc()
		return nil, err
	}

	criteria := search.Criteria{
		Skills:   saved.Skills,
		Location: saved.Location,
		Projects: saved.Projects,
	}
	matched := criteria.Filter(pool)

	newMatches := make([]models.Profile, 0, len(matched))
	for _, p := range matched {
		if saved.LastCheckedAt == nil || p.UpdatedAt.After(*saved.LastCheckedAt) {
			newMatches = append(newMatches, p)
		}
	}

	notified := false
	if len(newMatches) > 0 {
		notified = s.notifyOwner(ctx, saved, len(matched), newMatches)
	}

	checkedAt := s.now()
	if err := s.store.MarkChecked(ctx, searchID, checkedAt, len(newMatches)); err != nil {
		metrics.SavedSearchRuns.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.SavedSearchRuns.WithLabelValues("success").Inc()
	if s.obs != nil {
		s.obs.RecordOperation(ctx, "saved_search_run", "success")
		s.obs.RecordDuration(ctx, "saved_search_run", s.now().Sub(start))
	}

	s.logger.Info("saved search run complete", map[string]interface{}{
		"searchId":     searchID,
		"totalMatches": len(matched),
		"newMatches":   len(newMatches),
		"notified":     notified,
	})

	return &RunResult{
		SearchID:     searchID,
		TotalMatches: len(matched),
		NewMatches:   newMatches,
		Notified:     notified,
		CheckedAt:    checkedAt,
	}, nil
}

// notifyOwner is best-effort: delivery failures are logged and swallowed so
// the run still advances its watermark.
func (s *Service) notifyOwner(ctx context.Context, saved *models.SavedSearch, totalMatches int, newMatches []models.Profile) bool {
	email, phone, err := s.contacts.GetContact(ctx, saved.OwnerID)
	if err != nil {
		s.logger.Warn("owner contact lookup failed", map[string]interface{}{
			"error":   err,
			"ownerId": saved.OwnerID,
		})
		return false
	}

	notification := notify.NewMatchSummary(saved, email, totalMatches, newMatches, s.repLimit)
	notification.RecipientPhone = phone
	if err := s.notifier.Send(ctx, notification); err != nil {
		s.logger.Warn("saved search notification failed", map[string]interface{}{
			"error":    err,
			"searchId": saved.ID,
		})
		return false
	}
	return true
}
