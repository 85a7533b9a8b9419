package repositories

import (
	"context"
	"errors"
	"time"

	"technotes-api/internal/adapters/persistence/models"
	"technotes-api/internal/core/domain"

	"gorm.io/gorm"
)

// noteRepository implements NoteRepository interface
type noteRepository struct {
	db *gorm.DB
}

// NewNoteRepository creates a new note repository
func NewNoteRepository(db *gorm.DB) NoteRepository {
	return &noteRepository{db: db}
}

// Create creates a new note. The owner must exist and the ticket number is
// drawn from the shared counter, all inside one transaction. Counter values
// are never handed back, so deleted notes never free their numbers.
func (r *noteRepository) Create(ctx context.Context, note *models.Note) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owner models.User
		if err := tx.Where("id = ?", note.UserID).First(&owner).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNoteOwnerMissing
			}
			return err
		}

		if err := tx.Model(&models.TicketCounter{}).
			Where("id = ?", 1).
			UpdateColumn("seq", gorm.Expr("seq + 1")).Error; err != nil {
			return err
		}

		var counter models.TicketCounter
		if err := tx.Where("id = ?", 1).First(&counter).Error; err != nil {
			return err
		}
		note.Ticket = counter.Seq

		if err := tx.Omit("User").Create(note).Error; err != nil {
			return err
		}

		note.User = owner
		return nil
	})
}

// GetByID gets a note by ID with its owner preloaded
func (r *noteRepository) GetByID(ctx context.Context, id uint) (*models.Note, error) {
	var note models.Note
	err := r.db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&note).Error
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// List returns notes with their owners, newest tickets first. A limit of
// zero or less returns the whole collection.
func (r *noteRepository) List(ctx context.Context, offset, limit int) ([]*models.Note, int64, error) {
	var notes []*models.Note
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Note{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.db.WithContext(ctx).Preload("User").Order("ticket DESC")
	if limit > 0 {
		query = query.Offset(offset).Limit(limit)
	}
	if err := query.Find(&notes).Error; err != nil {
		return nil, 0, err
	}

	return notes, total, nil
}

// Update updates a note. The owner association is never written through
// the note.
func (r *noteRepository) Update(ctx context.Context, note *models.Note) error {
	return r.db.WithContext(ctx).Omit("User").Save(note).Error
}

// Delete soft deletes a note
func (r *noteRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Note{}, id).Error
}

// ExistsByTitle checks whether a different note already uses the title
func (r *noteRepository) ExistsByTitle(ctx context.Context, title string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.Note{}).Where("title = ?", title)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

// CountByUserID counts live notes owned by a user
func (r *noteRepository) CountByUserID(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Note{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// PurgeDeletedBefore hard-deletes notes soft-deleted more than the given
// number of days ago
func (r *noteRepository) PurgeDeletedBefore(ctx context.Context, days int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -days)

	result := r.db.WithContext(ctx).Unscoped().
		Where("deleted_at IS NOT NULL").
		Where("deleted_at < ?", cutoff).
		Delete(&models.Note{})

	return result.RowsAffected, result.Error
}
