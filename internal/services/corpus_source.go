package services

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/trust-service/internal/repositories"
	"github.com/SAP-F-2025/trust-service/internal/verifier"
)

// QuizCorpusSource feeds the plagiarism check from the published quizzes
// of the same subject.
type QuizCorpusSource struct {
	repo repositories.Repository
}

func NewQuizCorpusSource(repo repositories.Repository) *QuizCorpusSource {
	return &QuizCorpusSource{repo: repo}
}

func (s *QuizCorpusSource) Entries(ctx context.Context, subject string) ([]verifier.CorpusEntry, error) {
	quizzes, err := s.repo.Quiz().GetPublishedBySubject(ctx, subject)
	if err != nil {
		return nil, fmt.Errorf("failed to load published quizzes for %q: %w", subject, err)
	}

	entries := make([]verifier.CorpusEntry, 0, len(quizzes))
	for _, quiz := range quizzes {
		entries = append(entries, verifier.CorpusEntry{
			QuizID: quiz.ID,
			Title:  quiz.Title,
			Text:   verifier.QuizText(quiz),
		})
	}
	return entries, nil
}
