package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/trust-service/internal/events"
	"github.com/SAP-F-2025/trust-service/internal/models"
	"github.com/SAP-F-2025/trust-service/internal/sources"
)

// SourceValidationResult is the full outcome of validating a content
// item's declared citations.
type SourceValidationResult struct {
	Valid       bool                          `json:"valid"`
	Message     string                        `json:"message,omitempty"`
	Metadata    *models.ContentSourceMetadata `json:"metadata,omitempty"`
	Description string                        `json:"description,omitempty"`
}

// SourceService validates content source citations and derives trust
// labels. Content flagged for admin review is announced on the event bus.
type SourceService interface {
	// ValidateAndLabel checks every declared citation, derives the trust
	// label and flags self-written or book content for admin review.
	ValidateAndLabel(ctx context.Context, contentID, authorID string, meta *models.ContentSourceMetadata) (*SourceValidationResult, error)

	ValidateYouTubeLink(ctx context.Context, url string) sources.LinkCheck
	ApprovedPlatforms() []string
	TrustLevelDescription(level models.ContentTrustLevel, meta *models.ContentSourceMetadata) string
}

type sourceService struct {
	calculator *sources.Calculator
	publisher  events.EventPublisher
	logger     *slog.Logger
}

func NewSourceService(calculator *sources.Calculator, publisher events.EventPublisher, logger *slog.Logger) SourceService {
	return &sourceService{
		calculator: calculator,
		publisher:  publisher,
		logger:     logger,
	}
}

func (s *sourceService) ValidateAndLabel(ctx context.Context, contentID, authorID string, meta *models.ContentSourceMetadata) (*SourceValidationResult, error) {
	if meta == nil {
		return nil, fmt.Errorf("%w: metadata is required", ErrInvalidSourceMetadata)
	}

	// Revalidate the YouTube link server side; the client-set flag is
	// never trusted.
	if meta.HasTag(models.SourceYouTube) && meta.YouTubeSource != nil {
		check := s.calculator.ValidateYouTubeLink(ctx, meta.YouTubeSource.URL)
		meta.YouTubeSource.Validated = check.Valid
	}

	if outcome := s.calculator.ValidateSourceRequirement(meta); !outcome.Valid {
		return &SourceValidationResult{Valid: false, Message: outcome.Message}, nil
	}

	if meta.HasTag(models.SourceUniversity) && meta.UniversitySource != nil {
		if outcome := s.calculator.ValidateUniversityTag(meta.UniversitySource.Name); !outcome.Valid {
			return &SourceValidationResult{Valid: false, Message: outcome.Message}, nil
		}
	}

	if meta.HasTag(models.SourceOnlineCourse) && meta.OnlineCourseSource != nil {
		course := meta.OnlineCourseSource
		if outcome := s.calculator.ValidateOnlineCourse(course.Platform, course.CourseName, course.URL); !outcome.Valid {
			return &SourceValidationResult{Valid: false, Message: outcome.Message}, nil
		}
	}

	derived := s.calculator.Derive(meta)

	if derived.RequiresAdminVerification {
		s.announceAdminReview(ctx, contentID, authorID, derived)
	}

	s.logger.Info("Validated content sources",
		"content_id", contentID,
		"author_id", authorID,
		"trust_level", derived.TrustLevel,
		"admin_review", derived.RequiresAdminVerification)

	return &SourceValidationResult{
		Valid:       true,
		Metadata:    derived,
		Description: s.calculator.TrustLevelDescription(derived.TrustLevel, derived),
	}, nil
}

func (s *sourceService) ValidateYouTubeLink(ctx context.Context, url string) sources.LinkCheck {
	return s.calculator.ValidateYouTubeLink(ctx, url)
}

func (s *sourceService) ApprovedPlatforms() []string {
	return s.calculator.ApprovedPlatforms()
}

func (s *sourceService) TrustLevelDescription(level models.ContentTrustLevel, meta *models.ContentSourceMetadata) string {
	return s.calculator.TrustLevelDescription(level, meta)
}

func (s *sourceService) announceAdminReview(ctx context.Context, contentID, authorID string, meta *models.ContentSourceMetadata) {
	event := events.NewTrustEvent(events.EventAdminReviewRequired, events.AdminReviewRequiredEvent{
		ContentID:  contentID,
		AuthorID:   authorID,
		SourceTags: meta.SourceTags,
	})
	if err := s.publisher.PublishTrustEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish admin review event", "content_id", contentID, "error", err)
	}
}
