package verifier

import (
	"context"
	"fmt"
	"time"

	"github.com/SAP-F-2025/trust-service/internal/models"
)

// ScoringBackend is the asynchronous quality-scoring capability consumed
// by the publishing flow. The in-process verifier implements it; a remote
// scoring service would satisfy the same contract.
type ScoringBackend interface {
	Score(ctx context.Context, quiz *models.Quiz) (*models.VerificationResult, error)
}

// LocalBackend scores quizzes with the in-process verifier.
type LocalBackend struct {
	verifier *Verifier
}

func NewLocalBackend(v *Verifier) *LocalBackend {
	return &LocalBackend{verifier: v}
}

func (b *LocalBackend) Score(ctx context.Context, quiz *models.Quiz) (*models.VerificationResult, error) {
	return b.verifier.Verify(ctx, quiz)
}

// Default retry tuning for the scoring backend.
const (
	DefaultMaxAttempts  = 3
	DefaultInitialDelay = 500 * time.Millisecond
)

// RetryingBackend wraps a scoring backend with bounded exponential
// backoff. On exhaustion it returns the last error so the publish attempt
// stays pending; an unreachable backend never grants a pass.
type RetryingBackend struct {
	inner        ScoringBackend
	maxAttempts  int
	initialDelay time.Duration
}

func NewRetryingBackend(inner ScoringBackend, maxAttempts int, initialDelay time.Duration) *RetryingBackend {
	if maxAttempts < 1 {
		maxAttempts = DefaultMaxAttempts
	}
	if initialDelay <= 0 {
		initialDelay = DefaultInitialDelay
	}
	return &RetryingBackend{
		inner:        inner,
		maxAttempts:  maxAttempts,
		initialDelay: initialDelay,
	}
}

func (b *RetryingBackend) Score(ctx context.Context, quiz *models.Quiz) (*models.VerificationResult, error) {
	var lastErr error
	delay := b.initialDelay

	for attempt := 1; attempt <= b.maxAttempts; attempt++ {
		result, err := b.inner.Score(ctx, quiz)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if attempt == b.maxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}

	return nil, fmt.Errorf("scoring backend failed after %d attempts: %w", b.maxAttempts, lastErr)
}
