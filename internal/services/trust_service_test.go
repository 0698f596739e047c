package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SAP-F-2025/trust-service/internal/cache"
	"github.com/SAP-F-2025/trust-service/internal/events"
	"github.com/SAP-F-2025/trust-service/internal/models"
	"github.com/SAP-F-2025/trust-service/internal/trust"
)

func newTestTrustService(repo *MockRepository) (TrustService, *events.MockEventPublisher) {
	publisher := events.NewMockEventPublisher(testLogger())
	svc := NewTrustService(repo, trust.NewEngine(), publisher, cache.NoopCache{}, testLogger())
	return svc, publisher
}

func contributorUser(id string, metrics *models.CommunityMetrics) *models.User {
	return &models.User{
		ID:               id,
		FullName:         "Ada Okafor",
		Email:            id + "@example.edu",
		Role:             models.RoleCommunityContributor,
		CommunityMetrics: metrics,
	}
}

func TestRecordAction_UpdatesMetrics(t *testing.T) {
	repo := newMockRepository()
	svc, _ := newTestTrustService(repo)

	metrics := trust.NewEngine().InitialMetrics()
	user := contributorUser("contrib-1", &metrics)

	repo.userRepo.On("GetByID", mock.Anything, "contrib-1").Return(user, nil)
	repo.userRepo.On("ApplyPartial", mock.Anything, "contrib-1", mock.Anything).Return(user, nil)

	updated, err := svc.RecordAction(context.Background(), "contrib-1", trust.ActionNoteUploaded)

	require.NoError(t, err)
	assert.Equal(t, 1, updated.NotesUploaded)
	assert.Equal(t, models.TrustBronze, updated.TrustLevel)
	repo.userRepo.AssertExpectations(t)
}

func TestRecordAction_NilMetricsTreatedAsInitial(t *testing.T) {
	repo := newMockRepository()
	svc, _ := newTestTrustService(repo)

	user := contributorUser("contrib-2", nil)

	repo.userRepo.On("GetByID", mock.Anything, "contrib-2").Return(user, nil)
	repo.userRepo.On("ApplyPartial", mock.Anything, "contrib-2", mock.Anything).Return(user, nil)

	updated, err := svc.RecordAction(context.Background(), "contrib-2", trust.ActionUpvoteReceived)

	require.NoError(t, err)
	assert.Equal(t, 1, updated.Upvotes)
}

func TestRecordAction_RejectsNonContributors(t *testing.T) {
	repo := newMockRepository()
	svc, _ := newTestTrustService(repo)

	repo.userRepo.On("GetByID", mock.Anything, "student-1").Return(basicStudent("student-1"), nil)

	_, err := svc.RecordAction(context.Background(), "student-1", trust.ActionNoteUploaded)

	assert.ErrorIs(t, err, ErrInvalidRole)
	repo.userRepo.AssertNotCalled(t, "ApplyPartial", mock.Anything, mock.Anything, mock.Anything)
}

func TestRecordAction_UnknownUser(t *testing.T) {
	repo := newMockRepository()
	svc, _ := newTestTrustService(repo)

	repo.userRepo.On("GetByID", mock.Anything, "ghost").Return(nil, ErrNotFound)

	_, err := svc.RecordAction(context.Background(), "ghost", trust.ActionNoteUploaded)

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRecordAction_PublishesLevelChange(t *testing.T) {
	repo := newMockRepository()
	svc, publisher := newTestTrustService(repo)

	// Sitting exactly on the silver boundary: 5 note points plus a perfect
	// upvote ratio minus one report lands at 40. A second report drops the
	// score to 35 and the level to bronze.
	metrics := models.CommunityMetrics{
		NotesUploaded:  5,
		Upvotes:        10,
		ReportCount:    1,
		TrustScore:     40,
		TrustLevel:     models.TrustSilver,
		CanUploadNotes: true,
	}

	user := contributorUser("contrib-3", &metrics)
	repo.userRepo.On("GetByID", mock.Anything, "contrib-3").Return(user, nil)
	repo.userRepo.On("ApplyPartial", mock.Anything, "contrib-3", mock.Anything).Return(user, nil)

	updated, err := svc.RecordAction(context.Background(), "contrib-3", trust.ActionReportReceived)

	require.NoError(t, err)
	assert.Equal(t, 35, updated.TrustScore)
	assert.Equal(t, models.TrustBronze, updated.TrustLevel)
	assert.False(t, updated.CanUploadNotes)

	published := publisher.GetPublishedEvents()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventTrustLevelChanged, published[0].Type)
	payload, ok := published[0].Data.(events.TrustLevelChangedEvent)
	require.True(t, ok)
	assert.Equal(t, models.TrustSilver, payload.OldLevel)
	assert.Equal(t, models.TrustBronze, payload.NewLevel)
}

func TestLevelHelpers(t *testing.T) {
	repo := newMockRepository()
	svc, _ := newTestTrustService(repo)

	initial := svc.GetInitialMetrics()
	assert.Equal(t, models.TrustBronze, initial.TrustLevel)
	assert.False(t, initial.CanUploadNotes)

	assert.Equal(t, models.TrustBronze, svc.LevelOf(39))
	assert.Equal(t, models.TrustSilver, svc.LevelOf(40))
	assert.Equal(t, models.TrustGold, svc.LevelOf(75))

	thresholds := svc.LevelThresholds()
	assert.Len(t, thresholds, 3)
}
