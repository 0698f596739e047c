package trust

import (
	"testing"

	"github.com/SAP-F-2025/trust-service/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestEngine_InitialMetrics(t *testing.T) {
	e := NewEngine()
	m := e.InitialMetrics()

	assert.Equal(t, 0, m.TrustScore)
	assert.Equal(t, models.TrustBronze, m.TrustLevel)
	assert.False(t, m.CanUploadNotes)
}

func TestEngine_LevelOf(t *testing.T) {
	e := NewEngine()

	tests := []struct {
		score int
		want  models.TrustLevel
	}{
		{0, models.TrustBronze},
		{39, models.TrustBronze},
		{40, models.TrustSilver},
		{74, models.TrustSilver},
		{75, models.TrustGold},
		{100, models.TrustGold},
		{-5, models.TrustBronze},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, e.LevelOf(tt.score), "score %d", tt.score)
	}
}

func TestEngine_LevelOf_BronzeCannotUpload(t *testing.T) {
	e := NewEngine()

	// every bronze score denies uploads, every other level allows them
	for score := 0; score < SilverMinScore; score++ {
		assert.False(t, e.CanUploadNotes(e.LevelOf(score)), "score %d", score)
	}
	for score := SilverMinScore; score <= MaxScore; score++ {
		assert.True(t, e.CanUploadNotes(e.LevelOf(score)), "score %d", score)
	}
}

func TestEngine_CalculateScore(t *testing.T) {
	e := NewEngine()

	t.Run("zero metrics", func(t *testing.T) {
		assert.Equal(t, 0, e.CalculateScore(models.CommunityMetrics{}))
	})

	t.Run("notes capped at 20", func(t *testing.T) {
		got := e.CalculateScore(models.CommunityMetrics{NotesUploaded: 50})
		assert.Equal(t, 20, got)
	})

	t.Run("perfect upvote ratio adds 40", func(t *testing.T) {
		got := e.CalculateScore(models.CommunityMetrics{Upvotes: 10})
		assert.Equal(t, 40, got)
	})

	t.Run("helpful marks capped at 30", func(t *testing.T) {
		got := e.CalculateScore(models.CommunityMetrics{HelpfulMarks: 100})
		assert.Equal(t, 30, got)
	})

	t.Run("report penalty floored at -10", func(t *testing.T) {
		m := models.CommunityMetrics{NotesUploaded: 20, ReportCount: 10}
		assert.Equal(t, 10, e.CalculateScore(m))
	})

	t.Run("never below zero", func(t *testing.T) {
		m := models.CommunityMetrics{ReportCount: 5}
		assert.Equal(t, 0, e.CalculateScore(m))
	})

	t.Run("never above 100", func(t *testing.T) {
		m := models.CommunityMetrics{NotesUploaded: 20, Upvotes: 100, HelpfulMarks: 20}
		assert.Equal(t, 90, e.CalculateScore(m))
	})
}

func TestEngine_ApplyAction(t *testing.T) {
	e := NewEngine()

	t.Run("counters increment", func(t *testing.T) {
		m := e.InitialMetrics()
		m = e.ApplyAction(m, ActionNoteUploaded)
		m = e.ApplyAction(m, ActionUpvoteReceived)
		m = e.ApplyAction(m, ActionDownvoteReceived)
		m = e.ApplyAction(m, ActionHelpfulMark)
		m = e.ApplyAction(m, ActionReportReceived)

		assert.Equal(t, 1, m.NotesUploaded)
		assert.Equal(t, 1, m.Upvotes)
		assert.Equal(t, 1, m.Downvotes)
		assert.Equal(t, 1, m.HelpfulMarks)
		assert.Equal(t, 1, m.ReportCount)
	})

	t.Run("derived fields stay consistent", func(t *testing.T) {
		m := models.CommunityMetrics{NotesUploaded: 19, Upvotes: 20, HelpfulMarks: 10}
		m = e.ApplyAction(m, ActionNoteUploaded)

		assert.Equal(t, e.CalculateScore(m), m.TrustScore)
		assert.Equal(t, e.LevelOf(m.TrustScore), m.TrustLevel)
		assert.Equal(t, e.CanUploadNotes(m.TrustLevel), m.CanUploadNotes)
	})

	t.Run("crossing the silver boundary grants uploads", func(t *testing.T) {
		// 20 notes + perfect upvote ratio scores 60, past the silver line
		m := models.CommunityMetrics{NotesUploaded: 20, Upvotes: 5}
		m = e.ApplyAction(m, ActionHelpfulMark)

		assert.Equal(t, models.TrustSilver, m.TrustLevel)
		assert.True(t, m.CanUploadNotes)
	})
}

func TestEngine_LevelThresholds(t *testing.T) {
	e := NewEngine()
	bands := e.LevelThresholds()

	assert.Len(t, bands, 3)
	assert.False(t, bands[models.TrustBronze].CanUpload)
	assert.True(t, bands[models.TrustSilver].CanUpload)
	assert.True(t, bands[models.TrustGold].CanUpload)
	assert.Equal(t, SilverMinScore, bands[models.TrustSilver].MinScore)
	assert.Equal(t, GoldMinScore, bands[models.TrustGold].MinScore)
}
