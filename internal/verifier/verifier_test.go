package verifier

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/SAP-F-2025/trust-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wellFormedQuiz() *models.Quiz {
	question := func(text string) models.QuizQuestion {
		return models.QuizQuestion{
			Question:      text,
			Options:       []string{"stack", "queue", "heap", "graph"},
			CorrectAnswer: 0,
			Explanation:   "A stack is last-in first-out.",
		}
	}
	return &models.Quiz{
		Title:       "Algorithms basics quiz",
		Description: "Fundamental algorithms and data structures",
		Subject:     "Algorithms",
		Topic:       "Sorting",
		Questions: []models.QuizQuestion{
			question("Which structure does depth-first search use for sorting traversal in algorithms?"),
			question("Which structure backs recursive algorithms when sorting elements?"),
			question("Which structure is removed last when sorting with algorithms?"),
		},
	}
}

func TestVerify_WellFormedQuizScoresFullOnLocalCriteria(t *testing.T) {
	v := New(nil)

	result, err := v.Verify(context.Background(), wellFormedQuiz())
	require.NoError(t, err)

	assert.Equal(t, 100, result.Feedback.ConceptualCorrectness.Score)
	assert.Equal(t, 100, result.Feedback.QuestionClarity.Score)
	assert.True(t, result.Passed)
	assert.Empty(t, result.Suggestions)
}

func TestVerify_OutOfRangeAnswerIndex(t *testing.T) {
	v := New(nil)

	quiz := wellFormedQuiz()
	quiz.Questions[0].CorrectAnswer = 5 // options has 4 entries

	result, err := v.Verify(context.Background(), quiz)
	require.NoError(t, err)

	conceptual := result.Feedback.ConceptualCorrectness
	assert.LessOrEqual(t, conceptual.Score, 60)
	assert.False(t, conceptual.Passed)
	assert.Contains(t, conceptual.Message, "invalid correct answer")
}

func TestVerify_ConceptualPenalties(t *testing.T) {
	v := New(nil)

	t.Run("too few options", func(t *testing.T) {
		quiz := wellFormedQuiz()
		quiz.Questions[1].Options = []string{"only one"}
		quiz.Questions[1].CorrectAnswer = 0

		result, err := v.Verify(context.Background(), quiz)
		require.NoError(t, err)
		assert.Equal(t, 70, result.Feedback.ConceptualCorrectness.Score)
	})

	t.Run("missing explanations", func(t *testing.T) {
		quiz := wellFormedQuiz()
		for i := range quiz.Questions {
			quiz.Questions[i].Explanation = ""
		}

		result, err := v.Verify(context.Background(), quiz)
		require.NoError(t, err)
		assert.Equal(t, 80, result.Feedback.ConceptualCorrectness.Score)
	})

	t.Run("duplicate options case-insensitive", func(t *testing.T) {
		quiz := wellFormedQuiz()
		quiz.Questions[0].Options = []string{"Stack", " stack ", "heap", "graph"}

		result, err := v.Verify(context.Background(), quiz)
		require.NoError(t, err)
		assert.Equal(t, 90, result.Feedback.ConceptualCorrectness.Score)
	})
}

func TestVerify_ClarityPenalties(t *testing.T) {
	v := New(nil)

	t.Run("short and long questions", func(t *testing.T) {
		quiz := wellFormedQuiz()
		quiz.Questions[0].Question = "Why?" // under 10 chars
		quiz.Questions[1].Question = strings.Repeat("sorting algorithms ", 20) + "?"

		result, err := v.Verify(context.Background(), quiz)
		require.NoError(t, err)
		// one short (-15), one long (-10)
		assert.Equal(t, 75, result.Feedback.QuestionClarity.Score)
	})

	t.Run("empty options", func(t *testing.T) {
		quiz := wellFormedQuiz()
		quiz.Questions[2].Options = []string{"stack", "  ", "heap", "graph"}

		result, err := v.Verify(context.Background(), quiz)
		require.NoError(t, err)
		assert.Equal(t, 90, result.Feedback.QuestionClarity.Score)
	})

	t.Run("most questions missing question mark", func(t *testing.T) {
		quiz := wellFormedQuiz()
		quiz.Questions[0].Question = "Name the structure used by depth-first sorting algorithms."
		quiz.Questions[1].Question = "Name the structure behind recursive sorting algorithms."

		result, err := v.Verify(context.Background(), quiz)
		require.NoError(t, err)
		assert.Equal(t, 85, result.Feedback.QuestionClarity.Score)
	})
}

func TestVerify_PlagiarismGenericPhrasing(t *testing.T) {
	v := New(nil)

	quiz := wellFormedQuiz()
	quiz.Questions[0].Question = "What is a stack in sorting algorithms?"
	quiz.Questions[1].Question = "Which of the following sorts in algorithms?"
	quiz.Questions[2].Question = "True or false: sorting algorithms need stacks?"

	result, err := v.Verify(context.Background(), quiz)
	require.NoError(t, err)
	assert.Equal(t, 80, result.Feedback.PlagiarismCheck.Score)

	// one specific question lifts the flag
	quiz.Questions[2].Question = "How do sorting algorithms use auxiliary space?"
	result, err = v.Verify(context.Background(), quiz)
	require.NoError(t, err)
	assert.Equal(t, 100, result.Feedback.PlagiarismCheck.Score)
}

func TestVerify_SubjectAlignment(t *testing.T) {
	v := New(nil)

	t.Run("no subject or topic anywhere", func(t *testing.T) {
		quiz := wellFormedQuiz()
		quiz.Subject = "Thermodynamics"
		quiz.Topic = "Entropy"

		result, err := v.Verify(context.Background(), quiz)
		require.NoError(t, err)
		// -40 subject, -30 topic, -20 title
		assert.Equal(t, 10, result.Feedback.SubjectAlignment.Score)
		assert.False(t, result.Feedback.SubjectAlignment.Passed)
	})

	t.Run("aligned quiz passes", func(t *testing.T) {
		result, err := v.Verify(context.Background(), wellFormedQuiz())
		require.NoError(t, err)
		assert.Equal(t, 100, result.Feedback.SubjectAlignment.Score)
	})
}

func TestVerify_SuggestionsPerFailingCriterion(t *testing.T) {
	v := New(nil)

	quiz := wellFormedQuiz()
	quiz.Subject = "Thermodynamics"
	quiz.Topic = "Entropy"
	quiz.Questions[0].CorrectAnswer = -1
	quiz.Questions[0].Options = []string{"x"}
	for i := range quiz.Questions {
		quiz.Questions[i].Explanation = ""
	}

	result, err := v.Verify(context.Background(), quiz)
	require.NoError(t, err)

	assert.Contains(t, result.Suggestions, "Add explanations to help learners understand the correct answers")
	assert.Contains(t, result.Suggestions, "Review subject and topic selection to match quiz content")
	assert.False(t, result.Passed)
}

func TestCombine_WeightProperty(t *testing.T) {
	cases := [][4]int{
		{100, 100, 100, 100},
		{0, 0, 0, 0},
		{60, 100, 100, 10},
		{30, 100, 100, 50},
		{73, 81, 65, 92},
		{70, 70, 70, 70},
	}

	for _, c := range cases {
		want := int(math.Round(float64(c[0])*0.30 + float64(c[1])*0.25 + float64(c[2])*0.25 + float64(c[3])*0.20))
		assert.Equal(t, want, Combine(c[0], c[1], c[2], c[3]))
	}
}

// Overall 70 passes, 69 fails.
func TestVerify_PassBoundary(t *testing.T) {
	v := New(nil)

	t.Run("exactly 70 passes", func(t *testing.T) {
		// conceptual 60 (invalid index), clarity 100, plagiarism 100,
		// alignment 10: 18 + 25 + 25 + 2 = 70
		quiz := wellFormedQuiz()
		quiz.Subject = "Thermodynamics"
		quiz.Topic = "Entropy"
		quiz.Questions[0].CorrectAnswer = 9

		result, err := v.Verify(context.Background(), quiz)
		require.NoError(t, err)
		require.Equal(t, 70, result.Score)
		assert.True(t, result.Passed)
	})

	t.Run("69 fails", func(t *testing.T) {
		// conceptual 30 (invalid index, no explanations, duplicates),
		// clarity 100, plagiarism 100, alignment 50 (topic and title miss):
		// 9 + 25 + 25 + 10 = 69
		quiz := wellFormedQuiz()
		quiz.Title = "General knowledge check"
		quiz.Topic = "Entropy"
		for i := range quiz.Questions {
			quiz.Questions[i].Explanation = ""
		}
		quiz.Questions[0].CorrectAnswer = 9
		quiz.Questions[1].Options = []string{"stack", "Stack", "heap", "graph"}

		result, err := v.Verify(context.Background(), quiz)
		require.NoError(t, err)
		require.Equal(t, 69, result.Score)
		assert.False(t, result.Passed)
	})
}

func TestVerify_NilQuizAndCancelledContext(t *testing.T) {
	v := New(nil)

	_, err := v.Verify(context.Background(), nil)
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = v.Verify(ctx, wellFormedQuiz())
	assert.ErrorIs(t, err, context.Canceled)
}
