package verifier

import (
	"context"
	"strings"

	"github.com/SAP-F-2025/trust-service/internal/models"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Similarity thresholds. A quiz is flagged when its text trigram overlap
// with any corpus entry reaches SimilarityFlagThreshold, or when a corpus
// title is within TitleDistanceRatio edit distance of the quiz title.
const (
	SimilarityFlagThreshold = 0.60
	TitleDistanceRatio      = 0.25
)

// CorpusEntry is one published quiz in the comparison corpus.
type CorpusEntry struct {
	QuizID uint
	Title  string
	Text   string
}

// CorpusSource supplies the published-quiz corpus for a subject.
type CorpusSource interface {
	Entries(ctx context.Context, subject string) ([]CorpusEntry, error)
}

// CorpusSimilarity is a deterministic similarity check against a stored
// quiz corpus: trigram Jaccard overlap on the full text, plus an edit
// distance comparison on titles. It replaces the nondeterministic
// similarity flag the upstream behavior sketched.
type CorpusSimilarity struct {
	source CorpusSource
}

func NewCorpusSimilarity(source CorpusSource) *CorpusSimilarity {
	return &CorpusSimilarity{source: source}
}

func (s *CorpusSimilarity) IsSimilar(ctx context.Context, quiz *models.Quiz) (bool, error) {
	entries, err := s.source.Entries(ctx, quiz.Subject)
	if err != nil {
		return false, err
	}

	quizTitle := normalize(quiz.Title)
	quizGrams := trigrams(QuizText(quiz))

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		if entry.QuizID != 0 && entry.QuizID == quiz.ID {
			continue // never compare a quiz against itself
		}

		if titleNearDuplicate(quizTitle, normalize(entry.Title)) {
			return true, nil
		}
		if jaccard(quizGrams, trigrams(entry.Text)) >= SimilarityFlagThreshold {
			return true, nil
		}
	}
	return false, nil
}

// QuizText concatenates everything a quiz displays, for corpus storage and
// comparison.
func QuizText(quiz *models.Quiz) string {
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
		b.WriteByte(' ')
		b.WriteString(q.Explanation)
	}
	return b.String()
}

func titleNearDuplicate(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	distance := fuzzy.LevenshteinDistance(a, b)
	return float64(distance) <= float64(longest)*TitleDistanceRatio
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// trigrams returns the set of word-level 3-grams of the normalized text.
// Texts shorter than three words use the whole text as a single gram.
func trigrams(text string) map[string]struct{} {
	words := strings.Fields(strings.ToLower(text))
	grams := make(map[string]struct{})
	if len(words) < 3 {
		if len(words) > 0 {
			grams[strings.Join(words, " ")] = struct{}{}
		}
		return grams
	}
	for i := 0; i+3 <= len(words); i++ {
		grams[strings.Join(words[i:i+3], " ")] = struct{}{}
	}
	return grams
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	small, large := a, b
	if len(b) < len(a) {
		small, large = b, a
	}
	shared := 0
	for g := range small {
		if _, ok := large[g]; ok {
			shared++
		}
	}
	union := len(a) + len(b) - shared
	return float64(shared) / float64(union)
}
