package savedsearch

import (
	"context"
	"fmt"
	"testing"
	"time"

	"matchengine/internal/common/errors"
	"matchengine/internal/common/logger"
	"matchengine/internal/models"
	"matchengine/internal/search"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

type fakeStore struct {
	searches map[string]*models.SavedSearch
	nextID   int
	markErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{searches: map[string]*models.SavedSearch{}}
}

func (f *fakeStore) Create(ctx context.Context, ownerID, skills, location, projects string) (*models.SavedSearch, error) {
	f.nextID++
	s := &models.SavedSearch{
		ID:        fmt.Sprintf("search-%d", f.nextID),
		OwnerID:   ownerID,
		Skills:    skills,
		Location:  location,
		Projects:  projects,
		CreatedAt: time.Now().UTC(),
	}
	f.searches[s.ID] = s
	return s, nil
}

func (f *fakeStore) GetByID(ctx context.Context, id string) (*models.SavedSearch, error) {
	s, ok := f.searches[id]
	if !ok {
		return nil, errors.NewSearchNotFoundError(id)
	}
	copied := *s
	return &copied, nil
}

func (f *fakeStore) FindDuplicate(ctx context.Context, ownerID, skills, location, projects string) (*models.SavedSearch, error) {
	for _, s := range f.searches {
		if s.OwnerID == ownerID && s.Skills == skills && s.Location == location && s.Projects == projects {
			copied := *s
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) ListByOwner(ctx context.Context, ownerID string) ([]models.SavedSearch, error) {
	var out []models.SavedSearch
	for _, s := range f.searches {
		if s.OwnerID == ownerID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeStore) MarkChecked(ctx context.Context, id string, checkedAt time.Time, notifiedCount int) error {
	if f.markErr != nil {
		return f.markErr
	}
	s, ok := f.searches[id]
	if !ok {
		return errors.NewSearchNotFoundError(id)
	}
	t := checkedAt
	s.LastCheckedAt = &t
	s.LastNotifiedCount = notifiedCount
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, id string) error {
	delete(f.searches, id)
	return nil
}

type fakeCandidates struct {
	pool []models.Profile
}

func (f *fakeCandidates) PublicCandidates(ctx context.Context) ([]models.Profile, error) {
	return f.pool, nil
}

type fakeContacts struct {
	phone string
}

func (f fakeContacts) GetContact(ctx context.Context, userID string) (string, string, error) {
	return userID + "@example.com", f.phone, nil
}

type fakeNotifier struct {
	sent    []models.Notification
	sendErr error
}

func (f *fakeNotifier) Send(ctx context.Context, n models.Notification) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, n)
	return nil
}

func candidateProfile(id string, updatedAt time.Time) models.Profile {
	return models.Profile{
		ID:        id,
		UserID:    "user-" + id,
		Name:      "Candidate " + id,
		Location:  "Austin, TX",
		Skills:    "Python, Django",
		IsPublic:  true,
		CreatedAt: updatedAt,
		UpdatedAt: updatedAt,
	}
}

func newTestService(store SearchStore, pool []models.Profile, notifier *fakeNotifier) *Service {
	return NewService(
		store,
		&fakeCandidates{pool: pool},
		fakeContacts{},
		notifier,
		logger.NewNoOpLogger(),
		nil,
		5,
	)
}

// ==========================
// Create Tests
// ==========================

func TestService_Create_RejectsAllBlankCriteria(t *testing.T) {
	svc := newTestService(newFakeStore(), nil, &fakeNotifier{})

	_, err := svc.Create(context.Background(), "recruiter-1", search.Criteria{Skills: " ", Location: "", Projects: "\t"})

	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidationFailed))
}

func TestService_Create_PersistsNewSearch(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, nil, &fakeNotifier{})

	result, err := svc.Create(context.Background(), "recruiter-1", search.Criteria{Skills: "python"})

	require.NoError(t, err)
	assert.False(t, result.Existing)
	assert.Equal(t, "recruiter-1", result.Search.OwnerID)
	assert.Equal(t, "python", result.Search.Skills)
	assert.Nil(t, result.Search.LastCheckedAt)
}

func TestService_Create_ExactDuplicateReturnsExisting(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, nil, &fakeNotifier{})

	first, err := svc.Create(context.Background(), "recruiter-1", search.Criteria{Skills: "python", Location: "Austin"})
	require.NoError(t, err)

	second, err := svc.Create(context.Background(), "recruiter-1", search.Criteria{Skills: "python", Location: "Austin"})
	require.NoError(t, err)

	assert.True(t, second.Existing)
	assert.Equal(t, first.Search.ID, second.Search.ID)
	assert.Len(t, store.searches, 1)
}

func TestService_Create_DuplicateCheckIsExactStringMatch(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, nil, &fakeNotifier{})

	_, err := svc.Create(context.Background(), "recruiter-1", search.Criteria{Skills: "python"})
	require.NoError(t, err)

	// Different casing or whitespace is a different search.
	result, err := svc.Create(context.Background(), "recruiter-1", search.Criteria{Skills: "Python"})
	require.NoError(t, err)

	assert.False(t, result.Existing)
	assert.Len(t, store.searches, 2)
}

func TestService_Create_SameCriteriaDifferentOwnersBothPersist(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, nil, &fakeNotifier{})

	_, err := svc.Create(context.Background(), "recruiter-1", search.Criteria{Skills: "python"})
	require.NoError(t, err)
	result, err := svc.Create(context.Background(), "recruiter-2", search.Criteria{Skills: "python"})
	require.NoError(t, err)

	assert.False(t, result.Existing)
	assert.Len(t, store.searches, 2)
}

// ==========================
// Delete Tests
// ==========================

func TestService_Delete_UnknownSearch(t *testing.T) {
	svc := newTestService(newFakeStore(), nil, &fakeNotifier{})

	err := svc.Delete(context.Background(), "recruiter-1", "missing")

	assert.True(t, errors.HasCode(err, errors.ErrCodeSearchNotFound))
}

func TestService_Delete_ForbiddenForNonOwner(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, nil, &fakeNotifier{})

	created, err := svc.Create(context.Background(), "recruiter-1", search.Criteria{Skills: "python"})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), "recruiter-2", created.Search.ID)

	assert.True(t, errors.HasCode(err, errors.ErrCodeSearchForbidden))
	assert.Len(t, store.searches, 1)
}

func TestService_Delete_RemovesOwnedSearch(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, nil, &fakeNotifier{})

	created, err := svc.Create(context.Background(), "recruiter-1", search.Criteria{Skills: "python"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), "recruiter-1", created.Search.ID))
	assert.Empty(t, store.searches)
}

// ==========================
// Run Tests
// ==========================

func TestService_Run_FirstRunTreatsAllMatchesAsNew(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	pool := []models.Profile{
		candidateProfile("a", now.Add(-30*24*time.Hour)),
		candidateProfile("b", now.Add(-time.Hour)),
	}
	store := newFakeStore()
	notifier := &fakeNotifier{}
	svc := newTestService(store, pool, notifier).WithClock(func() time.Time { return now })

	created, err := svc.Create(context.Background(), "recruiter-1", search.Criteria{Skills: "python"})
	require.NoError(t, err)

	result, err := svc.Run(context.Background(), "recruiter-1", created.Search.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, result.TotalMatches)
	assert.Len(t, result.NewMatches, 2)
	assert.True(t, result.Notified)
	assert.Equal(t, now, result.CheckedAt)

	stored := store.searches[created.Search.ID]
	require.NotNil(t, stored.LastCheckedAt)
	assert.Equal(t, now, *stored.LastCheckedAt)
	assert.Equal(t, 2, stored.LastNotifiedCount)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "recruiter-1", notifier.sent[0].RecipientID)
	assert.Equal(t, "recruiter-1@example.com", notifier.sent[0].RecipientEmail)
	assert.Contains(t, notifier.sent[0].Body, "Candidate a")
	assert.Contains(t, notifier.sent[0].Body, "Candidate b")
}

func TestService_Run_SecondRunWithNoNewMatchesStillAdvancesWatermark(t *testing.T) {
	firstRun := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	pool := []models.Profile{candidateProfile("a", firstRun.Add(-time.Hour))}
	store := newFakeStore()
	notifier := &fakeNotifier{}

	now := firstRun
	svc := newTestService(store, pool, notifier).WithClock(func() time.Time { return now })

	created, err := svc.Create(context.Background(), "recruiter-1", search.Criteria{Skills: "python"})
	require.NoError(t, err)

	_, err = svc.Run(context.Background(), "recruiter-1", created.Search.ID)
	require.NoError(t, err)
	require.Len(t, notifier.sent, 1)

	now = firstRun.Add(time.Hour)
	result, err := svc.Run(context.Background(), "recruiter-1", created.Search.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, result.TotalMatches)
	assert.Empty(t, result.NewMatches)
	assert.False(t, result.Notified)
	assert.Len(t, notifier.sent, 1, "no second notification without new matches")

	stored := store.searches[created.Search.ID]
	assert.Equal(t, now, *stored.LastCheckedAt)
	assert.Equal(t, 0, stored.LastNotifiedCount)
}

func TestService_Run_OnlyProfilesUpdatedAfterWatermarkAreNew(t *testing.T) {
	watermark := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	pool := []models.Profile{
		candidateProfile("old", watermark.Add(-time.Hour)),
		candidateProfile("new", watermark.Add(time.Hour)),
	}
	store := newFakeStore()
	notifier := &fakeNotifier{}
	svc := newTestService(store, pool, notifier)

	created, err := svc.Create(context.Background(), "recruiter-1", search.Criteria{Skills: "python"})
	require.NoError(t, err)
	wm := watermark
	store.searches[created.Search.ID].LastCheckedAt = &wm

	result, err := svc.Run(context.Background(), "recruiter-1", created.Search.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, result.TotalMatches)
	require.Len(t, result.NewMatches, 1)
	assert.Equal(t, "new", result.NewMatches[0].ID)
}

func TestService_Run_NonMatchingProfilesExcluded(t *testing.T) {
	now := time.Now().UTC()
	rustacean := candidateProfile("r", now)
	rustacean.Skills = "Rust"
	pool := []models.Profile{candidateProfile("p", now), rustacean}

	store := newFakeStore()
	notifier := &fakeNotifier{}
	svc := newTestService(store, pool, notifier)

	created, err := svc.Create(context.Background(), "recruiter-1", search.Criteria{Skills: "python"})
	require.NoError(t, err)

	result, err := svc.Run(context.Background(), "recruiter-1", created.Search.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, result.TotalMatches)
	require.Len(t, result.NewMatches, 1)
	assert.Equal(t, "p", result.NewMatches[0].ID)
}

func TestService_Run_ForbiddenForNonOwner(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, nil, &fakeNotifier{})

	created, err := svc.Create(context.Background(), "recruiter-1", search.Criteria{Skills: "python"})
	require.NoError(t, err)

	_, err = svc.Run(context.Background(), "recruiter-2", created.Search.ID)

	assert.True(t, errors.HasCode(err, errors.ErrCodeSearchForbidden))
}

func TestService_Run_UnknownSearch(t *testing.T) {
	svc := newTestService(newFakeStore(), nil, &fakeNotifier{})

	_, err := svc.Run(context.Background(), "recruiter-1", "missing")

	assert.True(t, errors.HasCode(err, errors.ErrCodeSearchNotFound))
}

func TestService_Run_NotifierFailureDoesNotFailRun(t *testing.T) {
	now := time.Now().UTC()
	pool := []models.Profile{candidateProfile("a", now)}
	store := newFakeStore()
	notifier := &fakeNotifier{sendErr: errors.NewNotificationSendFailedError(fmt.Errorf("ses throttled"))}
	svc := newTestService(store, pool, notifier)

	created, err := svc.Create(context.Background(), "recruiter-1", search.Criteria{Skills: "python"})
	require.NoError(t, err)

	result, err := svc.Run(context.Background(), "recruiter-1", created.Search.ID)

	require.NoError(t, err)
	assert.False(t, result.Notified)
	assert.Len(t, result.NewMatches, 1)

	// Watermark still advances despite the failed delivery.
	assert.NotNil(t, store.searches[created.Search.ID].LastCheckedAt)
	assert.Equal(t, 1, store.searches[created.Search.ID].LastNotifiedCount)
}

func TestService_Run_NotificationCarriesOwnerPhone(t *testing.T) {
	now := time.Now().UTC()
	pool := []models.Profile{candidateProfile("a", now)}
	store := newFakeStore()
	notifier := &fakeNotifier{}
	svc := NewService(store, &fakeCandidates{pool: pool}, fakeContacts{phone: "+15125550100"}, notifier, logger.NewNoOpLogger(), nil, 5)

	created, err := svc.Create(context.Background(), "recruiter-1", search.Criteria{Skills: "python"})
	require.NoError(t, err)

	_, err = svc.Run(context.Background(), "recruiter-1", created.Search.ID)
	require.NoError(t, err)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "+15125550100", notifier.sent[0].RecipientPhone)
}

func TestService_Run_NotificationListsAtMostFiveCandidates(t *testing.T) {
	now := time.Now().UTC()
	var pool []models.Profile
	for i := 0; i < 8; i++ {
		pool = append(pool, candidateProfile(fmt.Sprintf("c%d", i), now))
	}
	store := newFakeStore()
	notifier := &fakeNotifier{}
	svc := newTestService(store, pool, notifier)

	created, err := svc.Create(context.Background(), "recruiter-1", search.Criteria{Skills: "python"})
	require.NoError(t, err)

	result, err := svc.Run(context.Background(), "recruiter-1", created.Search.ID)
	require.NoError(t, err)
	assert.Len(t, result.NewMatches, 8)

	require.Len(t, notifier.sent, 1)
	body := notifier.sent[0].Body
	for i := 0; i < 5; i++ {
		assert.Contains(t, body, fmt.Sprintf("Candidate c%d", i))
	}
	assert.NotContains(t, body, "Candidate c5")
	assert.Contains(t, body, "8 new match(es)")
	assert.Contains(t, body, "and 3 more")
}
