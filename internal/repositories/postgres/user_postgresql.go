package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/SAP-F-2025/trust-service/internal/models"
	"github.com/SAP-F-2025/trust-service/internal/repositories"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserPostgreSQL struct {
	db *gorm.DB
}

func NewUserPostgreSQL(db *gorm.DB) repositories.UserRepository {
	return &UserPostgreSQL{db: db}
}

func (u *UserPostgreSQL) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := u.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *UserPostgreSQL) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := u.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *UserPostgreSQL) ExistsByID(ctx context.Context, id string) (bool, error) {
	var count int64
	err := u.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// ApplyPartial locks the user row, applies the non-nil fields and returns
// the updated record. Concurrent partial updates to the same user are
// serialized by the row lock so none are lost.
func (u *UserPostgreSQL) ApplyPartial(ctx context.Context, id string, update repositories.UserUpdate) (*models.User, error) {
	var user models.User

	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&user, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			return fmt.Errorf("failed to lock user row: %w", err)
		}

		changes := map[string]interface{}{}
		if update.VerificationStatus != nil {
			changes["verification_status"] = *update.VerificationStatus
			user.VerificationStatus = *update.VerificationStatus
		}
		if update.VerificationLevel != nil {
			changes["verification_level"] = *update.VerificationLevel
			user.VerificationLevel = *update.VerificationLevel
		}
		if update.Reputation != nil {
			changes["reputation"] = *update.Reputation
			user.Reputation = *update.Reputation
		}
		if update.CommunityMetrics != nil {
			user.CommunityMetrics = update.CommunityMetrics
			if err := tx.Model(&user).Select("CommunityMetrics").Updates(&user).Error; err != nil {
				return fmt.Errorf("failed to update community metrics: %w", err)
			}
		}

		if len(changes) > 0 {
			if err := tx.Model(&user).Updates(changes).Error; err != nil {
				return fmt.Errorf("failed to update user: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}
