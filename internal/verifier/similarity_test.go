package verifier

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticCorpus struct {
	entries []CorpusEntry
	err     error
}

func (s *staticCorpus) Entries(ctx context.Context, subject string) ([]CorpusEntry, error) {
	return s.entries, s.err
}

func TestCorpusSimilarity_FlagsCopiedContent(t *testing.T) {
	quiz := wellFormedQuiz()
	source := &staticCorpus{entries: []CorpusEntry{
		{QuizID: 99, Title: "Existing quiz on trees", Text: QuizText(quiz)},
	}}

	similar, err := NewCorpusSimilarity(source).IsSimilar(context.Background(), quiz)
	require.NoError(t, err)
	assert.True(t, similar)
}

func TestCorpusSimilarity_FlagsNearDuplicateTitle(t *testing.T) {
	quiz := wellFormedQuiz()
	source := &staticCorpus{entries: []CorpusEntry{
		{QuizID: 99, Title: "Algorithms basics quiz!", Text: "entirely different body text about biology and cells"},
	}}

	similar, err := NewCorpusSimilarity(source).IsSimilar(context.Background(), quiz)
	require.NoError(t, err)
	assert.True(t, similar)
}

func TestCorpusSimilarity_PassesOriginalContent(t *testing.T) {
	quiz := wellFormedQuiz()
	source := &staticCorpus{entries: []CorpusEntry{
		{QuizID: 99, Title: "Cell biology fundamentals", Text: "mitochondria ribosomes chloroplasts membranes osmosis diffusion photosynthesis respiration nucleus cytoplasm"},
	}}

	similar, err := NewCorpusSimilarity(source).IsSimilar(context.Background(), quiz)
	require.NoError(t, err)
	assert.False(t, similar)
}

func TestCorpusSimilarity_SkipsSelf(t *testing.T) {
	quiz := wellFormedQuiz()
	quiz.ID = 7
	source := &staticCorpus{entries: []CorpusEntry{
		{QuizID: 7, Title: quiz.Title, Text: QuizText(quiz)},
	}}

	similar, err := NewCorpusSimilarity(source).IsSimilar(context.Background(), quiz)
	require.NoError(t, err)
	assert.False(t, similar)
}

func TestCorpusSimilarity_Deterministic(t *testing.T) {
	quiz := wellFormedQuiz()
	source := &staticCorpus{entries: []CorpusEntry{
		{QuizID: 1, Title: "Sorting deep dive", Text: QuizText(quiz) + " with extra trailing context"},
	}}
	checker := NewCorpusSimilarity(source)

	first, err := checker.IsSimilar(context.Background(), quiz)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := checker.IsSimilar(context.Background(), quiz)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestCorpusSimilarity_PropagatesSourceError(t *testing.T) {
	source := &staticCorpus{err: errors.New("corpus unavailable")}

	_, err := NewCorpusSimilarity(source).IsSimilar(context.Background(), wellFormedQuiz())
	assert.Error(t, err)
}

// An erroring similarity source must surface as a verification error so
// the publish attempt stays pending, never as a silent pass.
func TestVerify_SimilaritySourceFailureFailsClosed(t *testing.T) {
	v := New(NewCorpusSimilarity(&staticCorpus{err: errors.New("corpus unavailable")}))

	_, err := v.Verify(context.Background(), wellFormedQuiz())
	assert.Error(t, err)
}

func TestVerify_SimilarityFlagLowersPlagiarismScore(t *testing.T) {
	quiz := wellFormedQuiz()
	v := New(NewCorpusSimilarity(&staticCorpus{entries: []CorpusEntry{
		{QuizID: 5, Title: "Another quiz", Text: QuizText(quiz)},
	}}))

	result, err := v.Verify(context.Background(), quiz)
	require.NoError(t, err)
	assert.Equal(t, 70, result.Feedback.PlagiarismCheck.Score)
	assert.Contains(t, result.Feedback.PlagiarismCheck.Message, "similar to existing quizzes")
}

func TestQuizText_IncludesAllDisplayedContent(t *testing.T) {
	quiz := wellFormedQuiz()
	text := QuizText(quiz)

	assert.Contains(t, text, quiz.Title)
	assert.Contains(t, text, quiz.Description)
	assert.Contains(t, text, quiz.Questions[0].Question)
	assert.Contains(t, text, quiz.Questions[0].Options[0])
	assert.Contains(t, text, quiz.Questions[0].Explanation)
}
