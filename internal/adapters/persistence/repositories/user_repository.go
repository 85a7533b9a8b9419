package repositories

import (
	"context"
	"time"

	"technotes-api/internal/adapters/persistence/models"
	"technotes-api/internal/core/domain"

	"gorm.io/gorm"
)

// userRepository implements UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create creates a new user
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// GetByID gets a user by ID
func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByUsername gets a user by username
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// List returns all users
func (r *userRepository) List(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	err := r.db.WithContext(ctx).Order("username").Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// Update updates a user
func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// DeleteIfNoNotes deletes a user only when no live note references it.
// Existence check, note count and delete run in one transaction so a note
// created concurrently cannot slip between check and delete.
func (r *userRepository) DeleteIfNoNotes(ctx context.Context, id uint) (*models.User, error) {
	var user models.User

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&user).Error; err != nil {
			return err
		}

		var notes int64
		if err := tx.Model(&models.Note{}).Where("user_id = ?", id).Count(&notes).Error; err != nil {
			return err
		}
		if notes > 0 {
			return domain.ErrUserHasNotes
		}

		return tx.Delete(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ExistsByUsername checks if username exists
func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

// PurgeDeletedBefore hard-deletes users soft-deleted more than the given
// number of days ago. The subquery must cover ALL note rows, soft-deleted
// included: any note row still references its owner through the RESTRICT
// constraint, and one such user in the batch would fail the whole delete.
func (r *userRepository) PurgeDeletedBefore(ctx context.Context, days int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -days)

	result := r.db.WithContext(ctx).Unscoped().
		Where("deleted_at IS NOT NULL").
		Where("deleted_at < ?", cutoff).
		Where("id NOT IN (?)",
			r.db.Unscoped().Model(&models.Note{}).Select("user_id")).
		Delete(&models.User{})

	return result.RowsAffected, result.Error
}
