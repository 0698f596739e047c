package policy

import (
	"testing"

	"github.com/SAP-F-2025/trust-service/internal/models"
	"github.com/stretchr/testify/assert"
)

func contributorWith(level models.TrustLevel, canUpload bool) *models.User {
	return &models.User{
		Role: models.RoleCommunityContributor,
		CommunityMetrics: &models.CommunityMetrics{
			TrustLevel:     level,
			CanUploadNotes: canUpload,
		},
	}
}

func TestCanUploadNotes(t *testing.T) {
	p := NewPolicy()

	t.Run("educators always allowed", func(t *testing.T) {
		for _, role := range []models.UserRole{models.RoleTeacher, models.RoleOnlineEducator} {
			u := &models.User{
				Role:               role,
				VerificationStatus: models.VerificationRejected,
				Reputation:         0,
			}
			assert.True(t, p.CanUploadNotes(u), "role %s", role)
		}
	})

	t.Run("contributor follows trust flag", func(t *testing.T) {
		assert.True(t, p.CanUploadNotes(contributorWith(models.TrustSilver, true)))
		assert.False(t, p.CanUploadNotes(contributorWith(models.TrustBronze, false)))
	})

	t.Run("contributor without metrics is blocked", func(t *testing.T) {
		u := &models.User{Role: models.RoleCommunityContributor}
		assert.False(t, p.CanUploadNotes(u))
	})

	t.Run("student reputation bypass", func(t *testing.T) {
		u := &models.User{
			Role:               models.RoleStudent,
			Reputation:         500,
			VerificationStatus: models.VerificationUnverified,
		}
		assert.True(t, p.CanUploadNotes(u))
	})

	t.Run("student below threshold needs verified status", func(t *testing.T) {
		u := &models.User{
			Role:               models.RoleStudent,
			Reputation:         499,
			VerificationStatus: models.VerificationUnverified,
		}
		assert.False(t, p.CanUploadNotes(u))

		u.VerificationStatus = models.VerificationVerified
		assert.True(t, p.CanUploadNotes(u))
	})

	t.Run("nil user is blocked", func(t *testing.T) {
		assert.False(t, p.CanUploadNotes(nil))
	})
}

func TestCanPublishQuizDirectly(t *testing.T) {
	p := NewPolicy()

	t.Run("educators always allowed", func(t *testing.T) {
		assert.True(t, p.CanPublishQuizDirectly(&models.User{Role: models.RoleTeacher}))
		assert.True(t, p.CanPublishQuizDirectly(&models.User{Role: models.RoleOnlineEducator}))
	})

	t.Run("contributor needs silver or gold", func(t *testing.T) {
		assert.False(t, p.CanPublishQuizDirectly(contributorWith(models.TrustBronze, false)))
		assert.True(t, p.CanPublishQuizDirectly(contributorWith(models.TrustSilver, true)))
		assert.True(t, p.CanPublishQuizDirectly(contributorWith(models.TrustGold, true)))
	})

	t.Run("student needs strong verification level", func(t *testing.T) {
		u := &models.User{Role: models.RoleStudent, VerificationLevel: models.VerificationLevelMedium}
		assert.False(t, p.CanPublishQuizDirectly(u))

		u.VerificationLevel = models.VerificationLevelStrong
		assert.True(t, p.CanPublishQuizDirectly(u))
	})
}

// A high-reputation unverified student may upload notes but still cannot
// publish quizzes directly: the quiz path keys on verification level only.
// This asymmetry is the current product behavior; flagged for
// clarification, asserted as-is.
func TestReputationBypassAppliesOnlyToUploads(t *testing.T) {
	p := NewPolicy()

	u := &models.User{
		Role:               models.RoleStudent,
		Reputation:         500,
		VerificationStatus: models.VerificationUnverified,
		VerificationLevel:  models.VerificationLevelBasic,
	}

	assert.True(t, p.CanUploadNotes(u))
	assert.False(t, p.CanPublishQuizDirectly(u))
	assert.True(t, p.RequiresChatbotVerification(u))
}

func TestRequiresChatbotVerification(t *testing.T) {
	p := NewPolicy()

	t.Run("educators never require verification", func(t *testing.T) {
		assert.False(t, p.RequiresChatbotVerification(&models.User{Role: models.RoleTeacher}))
		assert.False(t, p.RequiresChatbotVerification(&models.User{Role: models.RoleOnlineEducator}))
	})

	t.Run("bronze contributor requires verification", func(t *testing.T) {
		assert.True(t, p.RequiresChatbotVerification(contributorWith(models.TrustBronze, false)))
	})

	t.Run("silver contributor does not", func(t *testing.T) {
		assert.False(t, p.RequiresChatbotVerification(contributorWith(models.TrustSilver, true)))
	})

	t.Run("weakly verified student requires verification", func(t *testing.T) {
		u := &models.User{Role: models.RoleStudent, VerificationLevel: models.VerificationLevelBasic}
		assert.True(t, p.RequiresChatbotVerification(u))
	})
}

func TestPublishingInfoFor(t *testing.T) {
	p := NewPolicy()

	t.Run("teacher", func(t *testing.T) {
		info := p.PublishingInfoFor(&models.User{Role: models.RoleTeacher})

		assert.True(t, info.CanPublish)
		assert.False(t, info.RequiresVerification)
		assert.Equal(t, models.AuthorEducator, info.AuthorType)
		assert.Contains(t, info.Reason, "Teacher")
	})

	t.Run("gold contributor reason names the trust level", func(t *testing.T) {
		info := p.PublishingInfoFor(contributorWith(models.TrustGold, true))

		assert.True(t, info.CanPublish)
		assert.Equal(t, models.AuthorCommunityTrusted, info.AuthorType)
		assert.Contains(t, info.Reason, "Gold")
	})

	t.Run("strong student is community trusted", func(t *testing.T) {
		u := &models.User{Role: models.RoleStudent, VerificationLevel: models.VerificationLevelStrong}
		info := p.PublishingInfoFor(u)

		assert.True(t, info.CanPublish)
		assert.Equal(t, models.AuthorCommunityTrusted, info.AuthorType)
		assert.Contains(t, info.Reason, "verified status")
	})

	t.Run("basic student goes through chatbot", func(t *testing.T) {
		u := &models.User{Role: models.RoleStudent, VerificationLevel: models.VerificationLevelBasic}
		info := p.PublishingInfoFor(u)

		assert.False(t, info.CanPublish)
		assert.True(t, info.RequiresVerification)
		assert.Equal(t, models.AuthorStudentVerified, info.AuthorType)
		assert.Contains(t, info.Reason, "chatbot")
	})
}

func TestDecisions(t *testing.T) {
	p := NewPolicy()

	assert.Equal(t, DecisionDirect, p.DecideQuizPublish(&models.User{Role: models.RoleTeacher}))
	assert.Equal(t, DecisionRequiresVerification, p.DecideQuizPublish(contributorWith(models.TrustBronze, false)))
	assert.Equal(t, DecisionBlocked, p.DecideQuizPublish(nil))

	assert.Equal(t, DecisionDirect, p.DecideNoteUpload(&models.User{Role: models.RoleOnlineEducator}))
	assert.Equal(t, DecisionBlocked, p.DecideNoteUpload(contributorWith(models.TrustBronze, false)))
}
