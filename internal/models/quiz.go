package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type QuizStatus string

const (
	QuizStatusDraft     QuizStatus = "draft"
	QuizStatusPending   QuizStatus = "pending"
	QuizStatusPublished QuizStatus = "published"
	QuizStatusRejected  QuizStatus = "rejected"
)

type DifficultyLevel string

const (
	DifficultyEasy   DifficultyLevel = "easy"
	DifficultyMedium DifficultyLevel = "medium"
	DifficultyHard   DifficultyLevel = "hard"
)

// QuizVerificationMethod records which review path a quiz went through.
type QuizVerificationMethod string

const (
	VerificationNone    QuizVerificationMethod = "none"
	VerificationChatbot QuizVerificationMethod = "chatbot"
)

// QuizAuthorType labels the credibility class of the quiz author at
// publish time.
type QuizAuthorType string

const (
	AuthorEducator         QuizAuthorType = "educator"
	AuthorStudentVerified  QuizAuthorType = "student_verified"
	AuthorCommunityTrusted QuizAuthorType = "community_trusted"
)

// QuizQuestion is a single multiple-choice question. CorrectAnswer is an
// index into Options; an out-of-range index is tolerated here and
// penalized by the quality verifier rather than rejected.
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Explanation   string   `json:"explanation,omitempty"`
}

// QuizMetadata snapshots the author's standing and the verification
// outcome at publish time.
type QuizMetadata struct {
	Role             UserRole               `json:"role"`
	TrustLevel       string                 `json:"trust_level,omitempty"` // TrustLevel or VerificationLevel snapshot
	QuizVerification QuizVerificationMethod `json:"quiz_verification"`
	AuthorType       QuizAuthorType         `json:"author_type"`
	Published        bool                   `json:"published"`
	VerifiedAt       *time.Time             `json:"verified_at,omitempty"`

	ConceptualScore *int `json:"conceptual_score,omitempty"`
	ClarityScore    *int `json:"clarity_score,omitempty"`
	PlagiarismScore *int `json:"plagiarism_score,omitempty"`
	AlignmentScore  *int `json:"alignment_score,omitempty"`
	OverallScore    *int `json:"overall_score,omitempty"`
}

type Quiz struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Title       string          `json:"title" gorm:"not null;size:255"`
	Description string          `json:"description" gorm:"type:text"`
	Subject     string          `json:"subject" gorm:"not null;size:100;index"`
	Topic       string          `json:"topic" gorm:"size:100"`
	Difficulty  DifficultyLevel `json:"difficulty" gorm:"default:medium;size:10"`

	Questions datatypes.JSONSlice[QuizQuestion] `json:"questions"`
	Metadata  QuizMetadata                      `json:"metadata" gorm:"serializer:json"`
	Status    QuizStatus                        `json:"status" gorm:"default:draft;size:20;index"`

	CreatedBy string `json:"created_by" gorm:"not null;size:255;index"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Quiz) TableName() string {
	return "quizzes"
}
