package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleStudent              UserRole = "student"
	RoleTeacher              UserRole = "teacher"
	RoleOnlineEducator       UserRole = "online_educator"
	RoleCommunityContributor UserRole = "community_contributor"
)

type VerificationStatus string

const (
	VerificationUnverified VerificationStatus = "unverified"
	VerificationPending    VerificationStatus = "pending"
	VerificationVerified   VerificationStatus = "verified"
	VerificationRejected   VerificationStatus = "rejected"
)

// VerificationLevel describes how strongly a student's identity has been
// confirmed. It is independent of the community TrustLevel.
type VerificationLevel string

const (
	VerificationLevelBasic  VerificationLevel = "basic"
	VerificationLevelMedium VerificationLevel = "medium"
	VerificationLevelStrong VerificationLevel = "strong"
)

// TrustLevel is the discrete classification of a community contributor,
// derived from their numeric trust score.
type TrustLevel string

const (
	TrustBronze TrustLevel = "bronze"
	TrustSilver TrustLevel = "silver"
	TrustGold   TrustLevel = "gold"
)

// CommunityMetrics tracks engagement counters for community contributors.
// TrustScore, TrustLevel and CanUploadNotes are derived; they are
// recomputed whenever a counter changes and must stay consistent
// (bronze implies CanUploadNotes == false).
type CommunityMetrics struct {
	NotesUploaded  int        `json:"notes_uploaded"`
	Upvotes        int        `json:"upvotes"`
	Downvotes      int        `json:"downvotes"`
	HelpfulMarks   int        `json:"helpful_marks"`
	ReportCount    int        `json:"report_count"`
	TrustScore     int        `json:"trust_score"`
	TrustLevel     TrustLevel `json:"trust_level"`
	CanUploadNotes bool       `json:"can_upload_notes"`
}

type User struct {
	ID       string   `json:"id" gorm:"primaryKey;size:255"`
	FullName string   `json:"full_name" gorm:"not null;size:100"`
	Email    string   `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Role     UserRole `json:"role" gorm:"not null;size:30"`

	VerificationStatus VerificationStatus `json:"verification_status" gorm:"default:unverified;size:20"`
	VerificationLevel  VerificationLevel  `json:"verification_level" gorm:"default:basic;size:20"`
	Reputation         int                `json:"reputation" gorm:"default:0"`

	// Present only for community contributors. A contributor without
	// metrics is treated as the bronze default, never as an error.
	CommunityMetrics *CommunityMetrics `json:"community_metrics,omitempty" gorm:"serializer:json"`

	AvatarURL *string        `json:"avatar_url" gorm:"size:500"`
	Badges    datatypes.JSON `json:"badges" gorm:"type:jsonb"`

	IsActive bool `json:"is_active" gorm:"default:true"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (User) TableName() string {
	return "users"
}

// IsEducator reports whether the user holds one of the educator roles that
// bypass every publishing gate.
func (u *User) IsEducator() bool {
	return u.Role == RoleTeacher || u.Role == RoleOnlineEducator
}
