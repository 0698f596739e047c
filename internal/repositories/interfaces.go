package repositories

import (
	"context"

	"github.com/SAP-F-2025/trust-service/internal/models"
)

// UserUpdate is a partial update of the persisted user record. Nil fields
// are left untouched; the repository applies the update atomically.
type UserUpdate struct {
	VerificationStatus *models.VerificationStatus
	VerificationLevel  *models.VerificationLevel
	Reputation         *int
	CommunityMetrics   *models.CommunityMetrics
}

// UserRepository is the profile store. The trust service does not own
// user identity; it reads records and atomically updates the trust and
// verification fields it is responsible for.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByID(ctx context.Context, id string) (bool, error)

	// ApplyPartial updates only the given fields inside a row-locked
	// transaction and returns the updated record.
	ApplyPartial(ctx context.Context, id string, update UserUpdate) (*models.User, error)
}

// QuizFilters narrows quiz list queries.
type QuizFilters struct {
	Subject   *string
	Status    *models.QuizStatus
	CreatedBy *string
	Limit     int
	Offset    int
}

type QuizRepository interface {
	Create(ctx context.Context, quiz *models.Quiz) error
	GetByID(ctx context.Context, id uint) (*models.Quiz, error)
	Update(ctx context.Context, quiz *models.Quiz) error
	UpdateStatus(ctx context.Context, id uint, status models.QuizStatus) error
	List(ctx context.Context, filters QuizFilters) ([]*models.Quiz, int64, error)

	// GetPublishedBySubject feeds the plagiarism corpus.
	GetPublishedBySubject(ctx context.Context, subject string) ([]*models.Quiz, error)
}

// Repository aggregates the stores the services need.
type Repository interface {
	User() UserRepository
	Quiz() QuizRepository
}
