package verifier

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/SAP-F-2025/trust-service/internal/models"
)

// Criterion weights. They must sum to 1.
const (
	WeightConceptual = 0.30
	WeightClarity    = 0.25
	WeightPlagiarism = 0.25
	WeightAlignment  = 0.20
)

// PassingScore is the threshold for both the overall verdict and each
// sub-criterion.
const PassingScore = 70

// Conceptual correctness penalties.
const (
	penaltyInvalidAnswerIndex  = 40
	penaltyTooFewOptions       = 30
	penaltyMissingExplanations = 20
	penaltyDuplicateOptions    = 10

	minOptionsPerQuestion  = 2
	minExplanationLength   = 10
	explanationRatioNeeded = 0.5
)

// Clarity penalties.
const (
	penaltyPerShortQuestion = 15
	penaltyPerLongQuestion  = 10
	penaltyPerEmptyOption   = 10
	penaltyNoQuestionMarks  = 15

	minQuestionLength = 10
	maxQuestionLength = 300
)

// Plagiarism penalties.
const (
	penaltyAllGeneric     = 20
	penaltySimilarContent = 30
)

// Alignment penalties.
const (
	penaltyNoSubjectKeyword = 40
	penaltyNoTopicKeyword   = 30
	penaltyTitleUnrelated   = 20

	minKeywordLength = 3 // keywords this short or shorter are ignored
)

var genericPhrases = []string{"what is", "which of the following", "true or false"}

// Suggestion strings surfaced per failing criterion.
var suggestionByCriterion = map[string]string{
	"conceptual": "Add explanations to help learners understand the correct answers",
	"clarity":    "Make questions more clear and concise",
	"plagiarism": "Ensure all content is original",
	"alignment":  "Review subject and topic selection to match quiz content",
}

// SimilarityChecker compares a quiz against known published content.
// Implementations must be deterministic.
type SimilarityChecker interface {
	IsSimilar(ctx context.Context, quiz *models.Quiz) (bool, error)
}

// Verifier runs the weighted multi-criteria quality check on a quiz. It
// never rejects malformed input; defects lower the score instead.
type Verifier struct {
	similarity SimilarityChecker
}

// New creates a verifier. A nil similarity checker disables the
// corpus-similarity flag (the generic-phrasing check still applies).
func New(similarity SimilarityChecker) *Verifier {
	return &Verifier{similarity: similarity}
}

// Verify scores the quiz on all four criteria and combines them into the
// overall verdict. The context governs the similarity lookup only; every
// other check is local and immediate.
func (v *Verifier) Verify(ctx context.Context, quiz *models.Quiz) (*models.VerificationResult, error) {
	if quiz == nil {
		return nil, fmt.Errorf("quiz is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	conceptual := v.checkConceptualCorrectness(quiz.Questions)
	clarity := v.checkQuestionClarity(quiz.Questions)
	plagiarism, err := v.checkPlagiarism(ctx, quiz)
	if err != nil {
		return nil, err
	}
	alignment := v.checkSubjectAlignment(quiz)

	overall := Combine(conceptual.Score, clarity.Score, plagiarism.Score, alignment.Score)

	var suggestions []string
	if !conceptual.Passed {
		suggestions = append(suggestions, suggestionByCriterion["conceptual"])
	}
	if !clarity.Passed {
		suggestions = append(suggestions, suggestionByCriterion["clarity"])
	}
	if !plagiarism.Passed {
		suggestions = append(suggestions, suggestionByCriterion["plagiarism"])
	}
	if !alignment.Passed {
		suggestions = append(suggestions, suggestionByCriterion["alignment"])
	}

	return &models.VerificationResult{
		Passed: overall >= PassingScore,
		Score:  overall,
		Feedback: models.VerificationFeedback{
			ConceptualCorrectness: conceptual,
			QuestionClarity:       clarity,
			PlagiarismCheck:       plagiarism,
			SubjectAlignment:      alignment,
		},
		Suggestions: suggestions,
	}, nil
}

// Combine folds the four sub-scores into the overall score using the
// fixed criterion weights and integer rounding.
func Combine(conceptual, clarity, plagiarism, alignment int) int {
	return int(math.Round(
		float64(conceptual)*WeightConceptual +
			float64(clarity)*WeightClarity +
			float64(plagiarism)*WeightPlagiarism +
			float64(alignment)*WeightAlignment))
}

func (v *Verifier) checkConceptualCorrectness(questions []models.QuizQuestion) models.CriterionResult {
	score := 100
	var issues []string

	validAnswers := true
	validOptions := true
	explained := 0
	duplicates := false

	for _, q := range questions {
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			validAnswers = false
		}
		if len(q.Options) < minOptionsPerQuestion {
			validOptions = false
		}
		if len(q.Explanation) > minExplanationLength {
			explained++
		}

		seen := make(map[string]struct{}, len(q.Options))
		for _, o := range q.Options {
			key := strings.ToLower(strings.TrimSpace(o))
			if _, dup := seen[key]; dup {
				duplicates = true
			}
			seen[key] = struct{}{}
		}
	}

	if !validAnswers {
		score -= penaltyInvalidAnswerIndex
		issues = append(issues, "Some questions have invalid correct answer indices")
	}
	if !validOptions {
		score -= penaltyTooFewOptions
		issues = append(issues, "Questions must have at least 2 options")
	}
	if len(questions) > 0 && float64(explained)/float64(len(questions)) < explanationRatioNeeded {
		score -= penaltyMissingExplanations
		issues = append(issues, "Add explanations to help learners understand")
	}
	if duplicates {
		score -= penaltyDuplicateOptions
		issues = append(issues, "Some questions have duplicate options")
	}

	return criterionResult(score, issues, "Questions are conceptually sound with clear correct answers")
}

func (v *Verifier) checkQuestionClarity(questions []models.QuizQuestion) models.CriterionResult {
	score := 100
	var issues []string

	tooShort := 0
	tooLong := 0
	emptyOptions := 0
	noQuestionMark := 0

	for _, q := range questions {
		if len(q.Question) < minQuestionLength {
			tooShort++
		}
		if len(q.Question) > maxQuestionLength {
			tooLong++
		}
		for _, o := range q.Options {
			if strings.TrimSpace(o) == "" {
				emptyOptions++
			}
		}
		if !strings.HasSuffix(strings.TrimSpace(q.Question), "?") {
			noQuestionMark++
		}
	}

	if tooShort > 0 {
		score -= tooShort * penaltyPerShortQuestion
		issues = append(issues, fmt.Sprintf("%d question(s) are too short", tooShort))
	}
	if tooLong > 0 {
		score -= tooLong * penaltyPerLongQuestion
		issues = append(issues, fmt.Sprintf("%d question(s) are too long", tooLong))
	}
	if emptyOptions > 0 {
		score -= emptyOptions * penaltyPerEmptyOption
		issues = append(issues, "Some options are empty")
	}
	if noQuestionMark*2 > len(questions) {
		score -= penaltyNoQuestionMarks
		issues = append(issues, "Most questions should end with a question mark")
	}

	return criterionResult(score, issues, "Questions are clear and well-formatted")
}

func (v *Verifier) checkPlagiarism(ctx context.Context, quiz *models.Quiz) (models.CriterionResult, error) {
	score := 100
	var issues []string

	genericCount := 0
	for _, q := range quiz.Questions {
		lower := strings.ToLower(q.Question)
		for _, phrase := range genericPhrases {
			if strings.Contains(lower, phrase) {
				genericCount++
				break
			}
		}
	}

	if len(quiz.Questions) > 0 && genericCount == len(quiz.Questions) {
		score -= penaltyAllGeneric
		issues = append(issues, "Questions appear very generic - try to make them more specific")
	}

	if v.similarity != nil {
		similar, err := v.similarity.IsSimilar(ctx, quiz)
		if err != nil {
			return models.CriterionResult{}, fmt.Errorf("similarity check: %w", err)
		}
		if similar {
			score -= penaltySimilarContent
			issues = append(issues, "Some content may be similar to existing quizzes")
		}
	}

	return criterionResult(score, issues, "No plagiarism detected - content appears original"), nil
}

func (v *Verifier) checkSubjectAlignment(quiz *models.Quiz) models.CriterionResult {
	score := 100
	var issues []string

	subjectKeywords := keywords(quiz.Subject)
	topicKeywords := keywords(quiz.Topic)

	var b strings.Builder
	b.WriteString(quiz.Title)
	b.WriteByte(' ')
	b.WriteString(quiz.Description)
	for _, q := range quiz.Questions {
		b.WriteByte(' ')
		b.WriteString(q.Question)
		for _, o := range q.Options {
			b.WriteByte(' ')
			b.WriteString(o)
		}
	}
	allText := strings.ToLower(b.String())
	title := strings.ToLower(quiz.Title)

	if !containsAny(allText, subjectKeywords) {
		score -= penaltyNoSubjectKeyword
		issues = append(issues, "Quiz content does not seem to match the selected subject")
	}
	if !containsAny(allText, topicKeywords) {
		score -= penaltyNoTopicKeyword
		issues = append(issues, "Quiz content does not align well with the selected topic")
	}
	if !containsAny(title, subjectKeywords) && !containsAny(title, topicKeywords) {
		score -= penaltyTitleUnrelated
		issues = append(issues, "Quiz title should relate to the subject or topic")
	}

	return criterionResult(score, issues, "Quiz content aligns well with selected subject and topic")
}

func criterionResult(score int, issues []string, okMessage string) models.CriterionResult {
	if score < 0 {
		score = 0
	}
	msg := okMessage
	if len(issues) > 0 {
		msg = strings.Join(issues, ". ")
	}
	return models.CriterionResult{
		Passed:  score >= PassingScore,
		Score:   score,
		Message: msg,
	}
}

// keywords splits a phrase into lowercase words longer than the minimum
// keyword length.
func keywords(phrase string) []string {
	var out []string
	for _, w := range strings.Fields(strings.ToLower(phrase)) {
		if len(w) > minKeywordLength {
			out = append(out, w)
		}
	}
	return out
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
