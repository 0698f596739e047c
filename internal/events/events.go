package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/SAP-F-2025/trust-service/internal/models"
)

// EventType represents the domain events the trust service emits.
type EventType string

const (
	// Trust events
	EventTrustLevelChanged EventType = "trust.level_changed"

	// Quiz publishing events
	EventQuizPublished          EventType = "quiz.published"
	EventQuizVerificationFailed EventType = "quiz.verification_failed"
	EventQuizPublishBlocked     EventType = "quiz.publish_blocked"

	// Content labeling events
	EventAdminReviewRequired EventType = "content.admin_review_required"
)

// TrustEvent is the envelope for all trust-service events.
type TrustEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// NewTrustEvent builds an envelope with a fresh ID and timestamp.
func NewTrustEvent(eventType EventType, data interface{}) *TrustEvent {
	return &TrustEvent{
		ID:        GenerateEventID(),
		Type:      eventType,
		Timestamp: time.Now(),
		Source:    "trust-service",
		Version:   "1.0",
		Data:      data,
	}
}

// GenerateEventID returns a unique identifier for an event.
func GenerateEventID() string {
	return uuid.New().String()
}

// Event payloads

type TrustLevelChangedEvent struct {
	UserID     string            `json:"user_id"`
	OldLevel   models.TrustLevel `json:"old_level"`
	NewLevel   models.TrustLevel `json:"new_level"`
	TrustScore int               `json:"trust_score"`
	CanUpload  bool              `json:"can_upload"`
}

type QuizPublishedEvent struct {
	QuizID     uint                          `json:"quiz_id"`
	Title      string                        `json:"title"`
	Subject    string                        `json:"subject"`
	AuthorID   string                        `json:"author_id"`
	AuthorType models.QuizAuthorType         `json:"author_type"`
	Method     models.QuizVerificationMethod `json:"method"`
	Score      *int                          `json:"score,omitempty"`
}

type QuizVerificationFailedEvent struct {
	QuizID      uint     `json:"quiz_id"`
	AuthorID    string   `json:"author_id"`
	Score       int      `json:"score"`
	Suggestions []string `json:"suggestions"`
}

type QuizPublishBlockedEvent struct {
	QuizID   uint   `json:"quiz_id"`
	AuthorID string `json:"author_id"`
	Reason   string `json:"reason"`
}

type AdminReviewRequiredEvent struct {
	ContentID  string             `json:"content_id"`
	AuthorID   string             `json:"author_id"`
	SourceTags []models.SourceTag `json:"source_tags"`
}
