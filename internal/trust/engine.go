package trust

import (
	"math"

	"github.com/SAP-F-2025/trust-service/internal/models"
)

// Score thresholds for each trust level. The gold boundary is a product
// tunable; change it here, not in the decision logic.
const (
	SilverMinScore = 40
	GoldMinScore   = 75

	MinScore = 0
	MaxScore = 100
)

// Score formula weights: notes up to 20 points, upvote ratio up to 40,
// helpful marks at 1.5 each up to 30, reports at -5 each floored at -10.
const (
	notesScoreCap      = 20
	upvoteRatioWeight  = 40
	helpfulMarkPoints  = 1.5
	helpfulScoreCap    = 30
	reportPenaltyEach  = 5
	reportPenaltyFloor = 10
)

// MetricAction is a community engagement event applied to a contributor's
// metrics.
type MetricAction string

const (
	ActionNoteUploaded     MetricAction = "note_uploaded"
	ActionUpvoteReceived   MetricAction = "upvote_received"
	ActionDownvoteReceived MetricAction = "downvote_received"
	ActionHelpfulMark      MetricAction = "helpful_mark"
	ActionReportReceived   MetricAction = "report_received"
)

// LevelThreshold describes one trust level band for display purposes.
type LevelThreshold struct {
	MinScore     int    `json:"min_score"`
	MaxScore     int    `json:"max_score"`
	CanUpload    bool   `json:"can_upload"`
	Requirements string `json:"requirements"`
}

// Engine maps a contributor's trust score to a trust level and the
// permissions that follow from it. All methods are pure and total; the
// engine never mutates persisted state itself.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// InitialMetrics returns the metrics a community contributor starts with
// at registration.
func (e *Engine) InitialMetrics() models.CommunityMetrics {
	return models.CommunityMetrics{
		TrustScore:     0,
		TrustLevel:     models.TrustBronze,
		CanUploadNotes: false,
	}
}

// LevelOf derives the trust level for a score. Scores outside [0,100] are
// clamped, never rejected.
func (e *Engine) LevelOf(score int) models.TrustLevel {
	switch {
	case score >= GoldMinScore:
		return models.TrustGold
	case score >= SilverMinScore:
		return models.TrustSilver
	default:
		return models.TrustBronze
	}
}

// CanUploadNotes reports whether a trust level grants note-upload rights.
// Bronze contributors cannot upload.
func (e *Engine) CanUploadNotes(level models.TrustLevel) bool {
	return level == models.TrustSilver || level == models.TrustGold
}

// CalculateScore computes the 0-100 trust score from raw engagement
// counters.
func (e *Engine) CalculateScore(m models.CommunityMetrics) int {
	notesScore := float64(m.NotesUploaded)
	if notesScore > notesScoreCap {
		notesScore = notesScoreCap
	}

	totalVotes := m.Upvotes + m.Downvotes
	upvoteScore := 0.0
	if totalVotes > 0 {
		upvoteScore = float64(m.Upvotes) / float64(totalVotes) * upvoteRatioWeight
	}

	helpfulScore := float64(m.HelpfulMarks) * helpfulMarkPoints
	if helpfulScore > helpfulScoreCap {
		helpfulScore = helpfulScoreCap
	}

	reportPenalty := float64(m.ReportCount * reportPenaltyEach)
	if reportPenalty > reportPenaltyFloor {
		reportPenalty = reportPenaltyFloor
	}

	score := int(math.Round(notesScore + upvoteScore + helpfulScore - reportPenalty))
	if score < MinScore {
		return MinScore
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}

// ApplyAction returns a copy of the metrics with the engagement event
// applied and the derived fields recomputed. Unknown actions leave the
// counters untouched but still normalize the derived fields.
func (e *Engine) ApplyAction(m models.CommunityMetrics, action MetricAction) models.CommunityMetrics {
	switch action {
	case ActionNoteUploaded:
		m.NotesUploaded++
	case ActionUpvoteReceived:
		m.Upvotes++
	case ActionDownvoteReceived:
		m.Downvotes++
	case ActionHelpfulMark:
		m.HelpfulMarks++
	case ActionReportReceived:
		m.ReportCount++
	}

	m.TrustScore = e.CalculateScore(m)
	m.TrustLevel = e.LevelOf(m.TrustScore)
	m.CanUploadNotes = e.CanUploadNotes(m.TrustLevel)
	return m
}

// LevelThresholds returns the score band and upload permission for each
// trust level.
func (e *Engine) LevelThresholds() map[models.TrustLevel]LevelThreshold {
	return map[models.TrustLevel]LevelThreshold{
		models.TrustBronze: {
			MinScore:     MinScore,
			MaxScore:     SilverMinScore - 1,
			CanUpload:    false,
			Requirements: "Build trust through engagement",
		},
		models.TrustSilver: {
			MinScore:     SilverMinScore,
			MaxScore:     GoldMinScore - 1,
			CanUpload:    true,
			Requirements: "5+ notes, 10+ upvotes, 70%+ positive ratio",
		},
		models.TrustGold: {
			MinScore:     GoldMinScore,
			MaxScore:     MaxScore,
			CanUpload:    true,
			Requirements: "20+ notes, 50+ upvotes, 80%+ positive ratio",
		},
	}
}
