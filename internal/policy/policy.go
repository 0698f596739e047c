package policy

import (
	"fmt"
	"strings"

	"github.com/SAP-F-2025/trust-service/internal/models"
)

// ReputationUploadBypass is the reputation at which a student may upload
// notes without identity verification. It deliberately does not apply to
// direct quiz publishing; see CanPublishQuizDirectly.
const ReputationUploadBypass = 500

// Decision is the terminal outcome of a publish attempt.
type Decision string

const (
	DecisionBlocked              Decision = "blocked"
	DecisionRequiresVerification Decision = "requires_verification"
	DecisionDirect               Decision = "direct"
)

// Policy holds the role-based authorization decision tables for note
// uploads and quiz publishing. All methods are pure and total.
type Policy struct{}

func NewPolicy() *Policy {
	return &Policy{}
}

// CanUploadNotes decides note-upload rights per role:
// contributors by their trust-derived flag, educators unconditionally,
// students by reputation bypass or verified status.
func (p *Policy) CanUploadNotes(user *models.User) bool {
	if user == nil {
		return false
	}

	switch user.Role {
	case models.RoleCommunityContributor:
		return user.CommunityMetrics != nil && user.CommunityMetrics.CanUploadNotes
	case models.RoleTeacher, models.RoleOnlineEducator:
		return true
	case models.RoleStudent:
		if user.Reputation >= ReputationUploadBypass {
			return true
		}
		return user.VerificationStatus == models.VerificationVerified
	default:
		return user.VerificationStatus == models.VerificationVerified
	}
}

// CanPublishQuizDirectly decides direct quiz publishing. Note the student
// path keys on verification level only; the reputation bypass used for
// note uploads is not honored here. Both behaviors are kept distinct on
// purpose pending a product decision.
func (p *Policy) CanPublishQuizDirectly(user *models.User) bool {
	if user == nil {
		return false
	}

	switch user.Role {
	case models.RoleTeacher, models.RoleOnlineEducator:
		return true
	case models.RoleCommunityContributor:
		if user.CommunityMetrics == nil {
			return false
		}
		level := user.CommunityMetrics.TrustLevel
		return level == models.TrustSilver || level == models.TrustGold
	case models.RoleStudent:
		return user.VerificationLevel == models.VerificationLevelStrong
	default:
		return false
	}
}

// CanCreateQuizzes is an alias for the direct-publish check; quiz creation
// itself is open, publication is what the policy gates.
func (p *Policy) CanCreateQuizzes(user *models.User) bool {
	return p.CanPublishQuizDirectly(user)
}

// RequiresChatbotVerification reports whether a quiz by this user must
// pass the automated quality check before publication. Educators never
// require verification by construction.
func (p *Policy) RequiresChatbotVerification(user *models.User) bool {
	if user == nil {
		return false
	}
	if user.Role != models.RoleStudent && user.Role != models.RoleCommunityContributor {
		return false
	}
	return !p.CanPublishQuizDirectly(user)
}

// AuthorTypeFor labels the credibility class the published quiz will carry.
func (p *Policy) AuthorTypeFor(user *models.User) models.QuizAuthorType {
	if user != nil && user.IsEducator() {
		return models.AuthorEducator
	}
	if p.CanPublishQuizDirectly(user) {
		return models.AuthorCommunityTrusted
	}
	return models.AuthorStudentVerified
}

// DecideNoteUpload maps the note-upload check to a terminal decision.
func (p *Policy) DecideNoteUpload(user *models.User) Decision {
	if p.CanUploadNotes(user) {
		return DecisionDirect
	}
	return DecisionBlocked
}

// DecideQuizPublish maps the quiz-publish checks to a terminal decision.
func (p *Policy) DecideQuizPublish(user *models.User) Decision {
	if p.CanPublishQuizDirectly(user) {
		return DecisionDirect
	}
	if p.RequiresChatbotVerification(user) {
		return DecisionRequiresVerification
	}
	return DecisionBlocked
}

// PublishingInfoFor packages the full verdict with a reason string that
// names the rule that fired, for auditability.
func (p *Policy) PublishingInfoFor(user *models.User) models.PublishingInfo {
	return models.PublishingInfo{
		CanPublish:           p.CanPublishQuizDirectly(user),
		RequiresVerification: p.RequiresChatbotVerification(user),
		Reason:               p.publishingReason(user),
		AuthorType:           p.AuthorTypeFor(user),
	}
}

func (p *Policy) publishingReason(user *models.User) string {
	if user == nil {
		return "No user context; publishing is not available."
	}

	if user.IsEducator() {
		roleName := "Teacher"
		if user.Role == models.RoleOnlineEducator {
			roleName = "Online Educator"
		}
		return fmt.Sprintf("As a %s, you can publish quizzes directly without verification. Your expertise is trusted by the community.", roleName)
	}

	if p.CanPublishQuizDirectly(user) {
		if user.Role == models.RoleCommunityContributor && user.CommunityMetrics != nil {
			return fmt.Sprintf("Your %s trust level allows you to publish quizzes directly. You've earned this privilege through quality contributions!",
				titleCase(string(user.CommunityMetrics.TrustLevel)))
		}
		if user.Role == models.RoleStudent {
			return "Your verified status allows you to publish quizzes directly."
		}
	}

	return "Your quiz will be checked by our chatbot for quality assurance before publishing. This ensures high-quality content for all learners."
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
