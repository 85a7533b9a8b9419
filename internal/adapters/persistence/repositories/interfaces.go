package repositories

import (
	"context"

	"technotes-api/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, user *models.User) error
	DeleteIfNoNotes(ctx context.Context, id uint) (*models.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	PurgeDeletedBefore(ctx context.Context, days int) (int64, error)
}

// NoteRepository defines note repository interface
type NoteRepository interface {
	Create(ctx context.Context, note *models.Note) error
	GetByID(ctx context.Context, id uint) (*models.Note, error)
	List(ctx context.Context, offset, limit int) ([]*models.Note, int64, error)
	Update(ctx context.Context, note *models.Note) error
	Delete(ctx context.Context, id uint) error
	ExistsByTitle(ctx context.Context, title string, excludeID uint) (bool, error)
	CountByUserID(ctx context.Context, userID uint) (int64, error)
	PurgeDeletedBefore(ctx context.Context, days int) (int64, error)
}
