package services

import (
	"context"
	"errors"
	"log"

	"technotes-api/internal/adapters/persistence/models"
	"technotes-api/internal/adapters/persistence/repositories"
	"technotes-api/internal/core/domain"

	"gorm.io/gorm"
)

// NoteService handles note business logic
type NoteService struct {
	noteRepo repositories.NoteRepository
	userRepo repositories.UserRepository
}

// NewNoteService creates a new note service
func NewNoteService(noteRepo repositories.NoteRepository, userRepo repositories.UserRepository) *NoteService {
	return &NoteService{
		noteRepo: noteRepo,
		userRepo: userRepo,
	}
}

// CreateNoteInput represents create note input
type CreateNoteInput struct {
	UserID uint   `json:"user"`
	Title  string `json:"title"`
	Text   string `json:"text"`
}

// UpdateNoteInput represents update note input
type UpdateNoteInput struct {
	ID        uint   `json:"id"`
	UserID    uint   `json:"user"`
	Title     string `json:"title"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// ListNotes returns notes with owner usernames, newest tickets first. A
// non-positive limit returns the whole collection.
func (s *NoteService) ListNotes(ctx context.Context, offset, limit int) ([]*models.NoteResponse, int64, error) {
	notes, total, err := s.noteRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*models.NoteResponse, len(notes))
	for i, note := range notes {
		responses[i] = note.ToResponse()
	}
	return responses, total, nil
}

// CreateNote creates a note for an existing user and stamps it with the
// next ticket number
func (s *NoteService) CreateNote(ctx context.Context, input *CreateNoteInput) (*models.NoteResponse, error) {
	if input.UserID == 0 || input.Title == "" || input.Text == "" {
		return nil, domain.ErrInvalidInput
	}

	exists, err := s.noteRepo.ExistsByTitle(ctx, input.Title, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrNoteAlreadyExists
	}

	note := &models.Note{
		UserID: input.UserID,
		Title:  input.Title,
		Text:   input.Text,
	}

	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, err
	}

	log.Printf("✅ Note created: '%s' (ticket #%d)", note.Title, note.Ticket)
	return note.ToResponse(), nil
}

// UpdateNote updates a note, optionally reassigning it to another existing
// user
func (s *NoteService) UpdateNote(ctx context.Context, input *UpdateNoteInput) (*models.NoteResponse, error) {
	if input.ID == 0 || input.UserID == 0 || input.Title == "" || input.Text == "" {
		return nil, domain.ErrInvalidInput
	}

	note, err := s.noteRepo.GetByID(ctx, input.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNoteNotFound
		}
		return nil, err
	}

	duplicate, err := s.noteRepo.ExistsByTitle(ctx, input.Title, note.ID)
	if err != nil {
		return nil, err
	}
	if duplicate {
		return nil, domain.ErrNoteAlreadyExists
	}

	if input.UserID != note.UserID {
		owner, err := s.userRepo.GetByID(ctx, input.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrNoteOwnerMissing
			}
			return nil, err
		}
		note.UserID = owner.ID
		note.User = *owner
	}

	note.Title = input.Title
	note.Text = input.Text
	note.Completed = input.Completed

	if err := s.noteRepo.Update(ctx, note); err != nil {
		return nil, err
	}

	log.Printf("✅ Note updated: '%s'", note.Title)
	return note.ToResponse(), nil
}

// DeleteNote deletes a note and returns what was removed
func (s *NoteService) DeleteNote(ctx context.Context, id uint) (*models.NoteResponse, error) {
	if id == 0 {
		return nil, domain.ErrInvalidInput
	}

	note, err := s.noteRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNoteNotFound
		}
		return nil, err
	}

	if err := s.noteRepo.Delete(ctx, note.ID); err != nil {
		return nil, err
	}

	log.Printf("✅ Note deleted: '%s' (ID: %d)", note.Title, note.ID)
	return note.ToResponse(), nil
}
