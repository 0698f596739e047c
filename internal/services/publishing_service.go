package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SAP-F-2025/trust-service/internal/cache"
	"github.com/SAP-F-2025/trust-service/internal/events"
	"github.com/SAP-F-2025/trust-service/internal/models"
	"github.com/SAP-F-2025/trust-service/internal/policy"
	"github.com/SAP-F-2025/trust-service/internal/repositories"
	"github.com/SAP-F-2025/trust-service/internal/verifier"
)

// PublishAttemptResult reports what a publish attempt did. Exactly one of
// the three decisions applies; Verification is set only when the chatbot
// path ran to completion.
type PublishAttemptResult struct {
	Decision     policy.Decision            `json:"decision"`
	Published    bool                       `json:"published"`
	Quiz         *models.Quiz               `json:"quiz,omitempty"`
	Verification *models.VerificationResult `json:"verification,omitempty"`
	Reason       string                     `json:"reason,omitempty"`
}

// PublishingService orchestrates quiz creation and publication under the
// role-based authorization policy.
type PublishingService interface {
	GetPublishingInfo(ctx context.Context, userID string) (*models.PublishingInfo, error)
	CanUploadNotes(ctx context.Context, userID string) (bool, error)

	CreateQuiz(ctx context.Context, userID string, quiz *models.Quiz) (*models.Quiz, error)
	GetQuiz(ctx context.Context, userID string, quizID uint) (*models.Quiz, error)
	ListQuizzes(ctx context.Context, filters repositories.QuizFilters) ([]*models.Quiz, int64, error)

	// PublishQuiz runs the publish attempt end to end: authorization
	// decision, automated verification where required, status transition
	// and event emission.
	PublishQuiz(ctx context.Context, userID string, quizID uint) (*PublishAttemptResult, error)

	// VerifyQuiz runs the automated quality check without changing the
	// quiz status, so authors can preview the verdict.
	VerifyQuiz(ctx context.Context, userID string, quizID uint) (*models.VerificationResult, error)
}

type publishingService struct {
	repo      repositories.Repository
	policy    *policy.Policy
	backend   verifier.ScoringBackend
	publisher events.EventPublisher
	cache     cache.CacheService
	logger    *slog.Logger
	svcLog    *ServiceLogger

	// userLocks serializes publish attempts per author so two concurrent
	// attempts on the same quiz cannot double-publish.
	userLocks sync.Map
}

func NewPublishingService(
	repo repositories.Repository,
	pol *policy.Policy,
	backend verifier.ScoringBackend,
	publisher events.EventPublisher,
	cacheService cache.CacheService,
	logger *slog.Logger,
) PublishingService {
	return &publishingService{
		repo:      repo,
		policy:    pol,
		backend:   backend,
		publisher: publisher,
		cache:     cacheService,
		logger:    logger,
		svcLog:    NewServiceLogger(logger, LogConfig{Service: "trust-service", Component: "publishing"}),
	}
}

func (s *publishingService) GetPublishingInfo(ctx context.Context, userID string) (*models.PublishingInfo, error) {
	cacheKey := publishingInfoCacheKey(userID)

	var cached models.PublishingInfo
	if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}

	info := s.policy.PublishingInfoFor(user)

	if err := s.cache.Set(ctx, cacheKey, info, trustCacheTTL); err != nil {
		s.logger.Warn("failed to cache publishing info", "user_id", userID, "error", err)
	}

	return &info, nil
}

func (s *publishingService) CanUploadNotes(ctx context.Context, userID string) (bool, error) {
	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}
	return s.policy.CanUploadNotes(user), nil
}

func (s *publishingService) CreateQuiz(ctx context.Context, userID string, quiz *models.Quiz) (*models.Quiz, error) {
	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}

	if err := validateQuizInput(quiz); err != nil {
		if verrs, ok := err.(ValidationErrors); ok {
			s.svcLog.LogValidationError(ctx, "CreateQuiz", userID, verrs)
		}
		return nil, err
	}

	quiz.CreatedBy = userID
	quiz.Status = models.QuizStatusDraft
	quiz.Metadata = models.QuizMetadata{
		Role:             user.Role,
		TrustLevel:       trustSnapshot(user),
		QuizVerification: models.VerificationNone,
		AuthorType:       s.policy.AuthorTypeFor(user),
		Published:        false,
	}

	if err := s.repo.Quiz().Create(ctx, quiz); err != nil {
		return nil, fmt.Errorf("failed to create quiz: %w", err)
	}

	s.logger.Info("Created quiz draft", "quiz_id", quiz.ID, "user_id", userID, "subject", quiz.Subject)
	return quiz, nil
}

func (s *publishingService) GetQuiz(ctx context.Context, userID string, quizID uint) (*models.Quiz, error) {
	quiz, err := s.repo.Quiz().GetByID(ctx, quizID)
	if err != nil {
		return nil, fmt.Errorf("%w: %d", ErrQuizNotFound, quizID)
	}

	// Drafts are visible to their author only.
	if quiz.Status != models.QuizStatusPublished && quiz.CreatedBy != userID {
		return nil, ErrQuizAccessDenied
	}

	return quiz, nil
}

func (s *publishingService) ListQuizzes(ctx context.Context, filters repositories.QuizFilters) ([]*models.Quiz, int64, error) {
	return s.repo.Quiz().List(ctx, filters)
}

func (s *publishingService) PublishQuiz(ctx context.Context, userID string, quizID uint) (*PublishAttemptResult, error) {
	unlock := s.lockUser(userID)
	defer unlock()

	user, quiz, err := s.loadForPublish(ctx, userID, quizID)
	if err != nil {
		return nil, err
	}

	decision := s.policy.DecideQuizPublish(user)
	info := s.policy.PublishingInfoFor(user)
	s.svcLog.LogPublishDecision(ctx, userID, quizID, decision, info)

	switch decision {
	case policy.DecisionDirect:
		return s.publishDirect(ctx, user, quiz, info)

	case policy.DecisionRequiresVerification:
		return s.publishViaVerification(ctx, user, quiz, info)

	default:
		s.announceBlocked(ctx, quiz, info.Reason)
		return &PublishAttemptResult{
			Decision: policy.DecisionBlocked,
			Quiz:     quiz,
			Reason:   info.Reason,
		}, fmt.Errorf("%w: %s", ErrPublishBlocked, info.Reason)
	}
}

func (s *publishingService) VerifyQuiz(ctx context.Context, userID string, quizID uint) (*models.VerificationResult, error) {
	quiz, err := s.repo.Quiz().GetByID(ctx, quizID)
	if err != nil {
		return nil, fmt.Errorf("%w: %d", ErrQuizNotFound, quizID)
	}
	if quiz.CreatedBy != userID {
		return nil, ErrQuizAccessDenied
	}

	result, err := s.backend.Score(ctx, quiz)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVerificationPending, err)
	}
	return result, nil
}

// ===== PUBLISH PATHS =====

func (s *publishingService) publishDirect(ctx context.Context, user *models.User, quiz *models.Quiz, info models.PublishingInfo) (*PublishAttemptResult, error) {
	quiz.Status = models.QuizStatusPublished
	quiz.Metadata.Published = true
	quiz.Metadata.QuizVerification = models.VerificationNone
	quiz.Metadata.AuthorType = info.AuthorType

	if err := s.repo.Quiz().Update(ctx, quiz); err != nil {
		return nil, fmt.Errorf("failed to publish quiz: %w", err)
	}

	s.announcePublished(ctx, quiz, nil)
	s.logger.Info("Published quiz directly", "quiz_id", quiz.ID, "user_id", user.ID, "author_type", info.AuthorType)

	return &PublishAttemptResult{
		Decision:  policy.DecisionDirect,
		Published: true,
		Quiz:      quiz,
		Reason:    info.Reason,
	}, nil
}

func (s *publishingService) publishViaVerification(ctx context.Context, user *models.User, quiz *models.Quiz, info models.PublishingInfo) (*PublishAttemptResult, error) {
	result, err := s.backend.Score(ctx, quiz)
	if err != nil {
		// Scoring never completed, so the attempt fails closed: the quiz
		// stays a draft and is never published on an unverified verdict.
		s.logger.Error("Quiz verification unavailable", "quiz_id", quiz.ID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrVerificationPending, err)
	}

	snapshotScores(&quiz.Metadata, result)

	if !result.Passed {
		if err := s.repo.Quiz().Update(ctx, quiz); err != nil {
			return nil, fmt.Errorf("failed to record verification scores: %w", err)
		}

		s.announceVerificationFailed(ctx, quiz, result)
		s.logger.Info("Quiz failed verification", "quiz_id", quiz.ID, "score", result.Score)

		return &PublishAttemptResult{
			Decision:     policy.DecisionRequiresVerification,
			Quiz:         quiz,
			Verification: result,
			Reason:       info.Reason,
		}, nil
	}

	now := time.Now()
	quiz.Status = models.QuizStatusPublished
	quiz.Metadata.Published = true
	quiz.Metadata.QuizVerification = models.VerificationChatbot
	quiz.Metadata.AuthorType = info.AuthorType
	quiz.Metadata.VerifiedAt = &now

	if err := s.repo.Quiz().Update(ctx, quiz); err != nil {
		return nil, fmt.Errorf("failed to publish quiz: %w", err)
	}

	s.announcePublished(ctx, quiz, &result.Score)
	s.logger.Info("Published quiz after verification", "quiz_id", quiz.ID, "score", result.Score)

	return &PublishAttemptResult{
		Decision:     policy.DecisionRequiresVerification,
		Published:    true,
		Quiz:         quiz,
		Verification: result,
		Reason:       info.Reason,
	}, nil
}

// ===== HELPERS =====

func (s *publishingService) loadForPublish(ctx context.Context, userID string, quizID uint) (*models.User, *models.Quiz, error) {
	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}

	quiz, err := s.repo.Quiz().GetByID(ctx, quizID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %d", ErrQuizNotFound, quizID)
	}

	if quiz.CreatedBy != userID {
		return nil, nil, ErrQuizAccessDenied
	}

	if quiz.Status != models.QuizStatusDraft && quiz.Status != models.QuizStatusRejected {
		return nil, nil, fmt.Errorf("%w: status is %s", ErrQuizNotDraft, quiz.Status)
	}

	return user, quiz, nil
}

func (s *publishingService) lockUser(userID string) func() {
	v, _ := s.userLocks.LoadOrStore(userID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func validateQuizInput(quiz *models.Quiz) error {
	if quiz == nil {
		return NewValidationError("quiz", "quiz is required", nil)
	}

	var errs ValidationErrors
	if quiz.Title == "" {
		errs = append(errs, *NewValidationError("title", "title is required", quiz.Title))
	}
	if quiz.Subject == "" {
		errs = append(errs, *NewValidationError("subject", "subject is required", quiz.Subject))
	}
	if len(quiz.Questions) == 0 {
		errs = append(errs, *NewValidationError("questions", "at least one question is required", nil))
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// trustSnapshot records the author's standing at creation time so the
// published quiz keeps the label it earned even if the author's trust
// changes later.
func trustSnapshot(user *models.User) string {
	switch user.Role {
	case models.RoleCommunityContributor:
		if user.CommunityMetrics != nil {
			return string(user.CommunityMetrics.TrustLevel)
		}
		return string(models.TrustBronze)
	case models.RoleStudent:
		return string(user.VerificationLevel)
	default:
		return ""
	}
}

func snapshotScores(meta *models.QuizMetadata, result *models.VerificationResult) {
	conceptual := result.Feedback.ConceptualCorrectness.Score
	clarity := result.Feedback.QuestionClarity.Score
	plagiarism := result.Feedback.PlagiarismCheck.Score
	alignment := result.Feedback.SubjectAlignment.Score
	overall := result.Score

	meta.ConceptualScore = &conceptual
	meta.ClarityScore = &clarity
	meta.PlagiarismScore = &plagiarism
	meta.AlignmentScore = &alignment
	meta.OverallScore = &overall
}

// ===== EVENT EMISSION =====

func (s *publishingService) announcePublished(ctx context.Context, quiz *models.Quiz, score *int) {
	event := events.NewTrustEvent(events.EventQuizPublished, events.QuizPublishedEvent{
		QuizID:     quiz.ID,
		Title:      quiz.Title,
		Subject:    quiz.Subject,
		AuthorID:   quiz.CreatedBy,
		AuthorType: quiz.Metadata.AuthorType,
		Method:     quiz.Metadata.QuizVerification,
		Score:      score,
	})
	if err := s.publisher.PublishTrustEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish quiz published event", "quiz_id", quiz.ID, "error", err)
	}
}

func (s *publishingService) announceVerificationFailed(ctx context.Context, quiz *models.Quiz, result *models.VerificationResult) {
	event := events.NewTrustEvent(events.EventQuizVerificationFailed, events.QuizVerificationFailedEvent{
		QuizID:      quiz.ID,
		AuthorID:    quiz.CreatedBy,
		Score:       result.Score,
		Suggestions: result.Suggestions,
	})
	if err := s.publisher.PublishTrustEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish verification failed event", "quiz_id", quiz.ID, "error", err)
	}
}

func (s *publishingService) announceBlocked(ctx context.Context, quiz *models.Quiz, reason string) {
	event := events.NewTrustEvent(events.EventQuizPublishBlocked, events.QuizPublishBlockedEvent{
		QuizID:   quiz.ID,
		AuthorID: quiz.CreatedBy,
		Reason:   reason,
	})
	if err := s.publisher.PublishTrustEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish blocked event", "quiz_id", quiz.ID, "error", err)
	}
}
