package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SAP-F-2025/trust-service/internal/cache"
	"github.com/SAP-F-2025/trust-service/internal/events"
	"github.com/SAP-F-2025/trust-service/internal/models"
	"github.com/SAP-F-2025/trust-service/internal/repositories"
	"github.com/SAP-F-2025/trust-service/internal/trust"
)

const trustCacheTTL = 5 * time.Minute

// TrustService applies community engagement events to a contributor's
// persisted metrics and exposes the trust level mapping.
type TrustService interface {
	GetInitialMetrics() models.CommunityMetrics
	LevelOf(score int) models.TrustLevel
	LevelThresholds() map[models.TrustLevel]trust.LevelThreshold

	// RecordAction applies an engagement event to the user's metrics
	// atomically and returns the updated metrics.
	RecordAction(ctx context.Context, userID string, action trust.MetricAction) (*models.CommunityMetrics, error)
}

type trustService struct {
	repo      repositories.Repository
	engine    *trust.Engine
	publisher events.EventPublisher
	cache     cache.CacheService
	logger    *slog.Logger
	svcLog    *ServiceLogger

	// userLocks serializes read-modify-write cycles per user so
	// concurrent engagement events cannot lose updates.
	userLocks sync.Map
}

func NewTrustService(
	repo repositories.Repository,
	engine *trust.Engine,
	publisher events.EventPublisher,
	cacheService cache.CacheService,
	logger *slog.Logger,
) TrustService {
	return &trustService{
		repo:      repo,
		engine:    engine,
		publisher: publisher,
		cache:     cacheService,
		logger:    logger,
		svcLog:    NewServiceLogger(logger, LogConfig{Service: "trust-service", Component: "trust"}),
	}
}

func (s *trustService) GetInitialMetrics() models.CommunityMetrics {
	return s.engine.InitialMetrics()
}

func (s *trustService) LevelOf(score int) models.TrustLevel {
	return s.engine.LevelOf(score)
}

func (s *trustService) LevelThresholds() map[models.TrustLevel]trust.LevelThreshold {
	return s.engine.LevelThresholds()
}

func (s *trustService) RecordAction(ctx context.Context, userID string, action trust.MetricAction) (*models.CommunityMetrics, error) {
	unlock := s.lockUser(userID)
	defer unlock()

	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}

	if user.Role != models.RoleCommunityContributor {
		return nil, fmt.Errorf("%w: engagement metrics apply to community contributors only", ErrInvalidRole)
	}

	current := s.engine.InitialMetrics()
	if user.CommunityMetrics != nil {
		current = *user.CommunityMetrics
	}
	oldLevel := current.TrustLevel

	updated := s.engine.ApplyAction(current, action)

	if _, err := s.repo.User().ApplyPartial(ctx, userID, repositories.UserUpdate{
		CommunityMetrics: &updated,
	}); err != nil {
		return nil, fmt.Errorf("failed to persist metrics: %w", err)
	}

	if err := s.cache.Delete(ctx, publishingInfoCacheKey(userID)); err != nil {
		s.logger.Warn("failed to invalidate publishing info cache", "user_id", userID, "error", err)
	}

	if updated.TrustLevel != oldLevel {
		s.svcLog.LogTrustTransition(ctx, userID, oldLevel, updated.TrustLevel, updated.TrustScore)
		s.publishLevelChange(ctx, userID, oldLevel, updated)
	}

	s.logger.Info("Recorded engagement action",
		"user_id", userID,
		"action", action,
		"trust_score", updated.TrustScore,
		"trust_level", updated.TrustLevel)

	return &updated, nil
}

func (s *trustService) publishLevelChange(ctx context.Context, userID string, oldLevel models.TrustLevel, m models.CommunityMetrics) {
	event := events.NewTrustEvent(events.EventTrustLevelChanged, events.TrustLevelChangedEvent{
		UserID:     userID,
		OldLevel:   oldLevel,
		NewLevel:   m.TrustLevel,
		TrustScore: m.TrustScore,
		CanUpload:  m.CanUploadNotes,
	})
	if err := s.publisher.PublishTrustEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish trust level change", "user_id", userID, "error", err)
	}
}

func (s *trustService) lockUser(userID string) func() {
	v, _ := s.userLocks.LoadOrStore(userID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func publishingInfoCacheKey(userID string) string {
	return "trust:publishing-info:" + userID
}
