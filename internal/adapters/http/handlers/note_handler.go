package handlers

import (
	"errors"
	"fmt"

	"technotes-api/internal/config"
	"technotes-api/internal/core/domain"
	"technotes-api/internal/core/services"
	"technotes-api/internal/pkg/pagination"
	"technotes-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// NoteHandler handles note endpoints
type NoteHandler struct {
	noteService *services.NoteService
	cfg         *config.Config
}

// NewNoteHandler creates a new note handler
func NewNoteHandler(noteService *services.NoteService, cfg *config.Config) *NoteHandler {
	return &NoteHandler{
		noteService: noteService,
		cfg:         cfg,
	}
}

// GetNotes handles listing notes
// @Summary List notes
// @Description Get notes with their owners' usernames; page/limit are optional
// @Tags Notes
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /notes [get]
func (h *NoteHandler) GetNotes(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	offset, limit := 0, 0
	if params != nil {
		offset, limit = params.Offset, params.Limit
	}

	notes, total, err := h.noteService.ListNotes(c.Context(), offset, limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list notes")
	}

	if total == 0 && h.cfg.Compat.EmptyListError {
		return response.BadRequest(c, "No notes found")
	}

	if params != nil {
		return response.Success(c, "Notes retrieved", fiber.Map{
			"notes": notes,
			"meta":  pagination.GetMeta(params, total),
		})
	}
	return response.Success(c, "Notes retrieved", notes)
}

// CreateNoteRequest represents create note request body
type CreateNoteRequest struct {
	User  uint   `json:"user"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

// CreateNote handles creating a note
// @Summary Create note
// @Description Create a note for an existing user; stamped with the next sequential ticket number
// @Tags Notes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateNoteRequest true "Note data"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /notes [post]
func (h *NoteHandler) CreateNote(c *fiber.Ctx) error {
	var req CreateNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.User == 0 || req.Title == "" || req.Text == "" {
		return response.BadRequest(c, "All fields are required")
	}

	input := &services.CreateNoteInput{
		UserID: req.User,
		Title:  req.Title,
		Text:   req.Text,
	}

	note, err := h.noteService.CreateNote(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoteAlreadyExists):
			return response.Conflict(c, "Duplicate note title")
		case errors.Is(err, domain.ErrNoteOwnerMissing):
			return response.BadRequest(c, "Assigned user does not exist")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "All fields are required")
		default:
			return response.InternalServerError(c, "Failed to create note")
		}
	}

	return response.Created(c, "New note created", fiber.Map{
		"note": note,
	})
}

// UpdateNoteRequest represents update note request body
type UpdateNoteRequest struct {
	ID        uint   `json:"id"`
	User      uint   `json:"user"`
	Title     string `json:"title"`
	Text      string `json:"text"`
	Completed *bool  `json:"completed"`
}

// UpdateNote handles updating a note
// @Summary Update note
// @Description Update a note; reassignment requires the new owner to exist
// @Tags Notes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body UpdateNoteRequest true "Update data"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /notes [patch]
func (h *NoteHandler) UpdateNote(c *fiber.Ctx) error {
	var req UpdateNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.ID == 0 || req.User == 0 || req.Title == "" || req.Text == "" || req.Completed == nil {
		return response.BadRequest(c, "All fields are required")
	}

	input := &services.UpdateNoteInput{
		ID:        req.ID,
		UserID:    req.User,
		Title:     req.Title,
		Text:      req.Text,
		Completed: *req.Completed,
	}

	note, err := h.noteService.UpdateNote(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoteNotFound):
			return response.BadRequest(c, "Note not found")
		case errors.Is(err, domain.ErrNoteAlreadyExists):
			return response.Conflict(c, "Duplicate note title")
		case errors.Is(err, domain.ErrNoteOwnerMissing):
			return response.BadRequest(c, "Assigned user does not exist")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "All fields are required")
		default:
			return response.InternalServerError(c, "Failed to update note")
		}
	}

	return response.Success(c, fmt.Sprintf("'%s' updated", note.Title), fiber.Map{
		"note": note,
	})
}

// DeleteNoteRequest represents delete note request body
type DeleteNoteRequest struct {
	ID uint `json:"id"`
}

// DeleteNote handles deleting a note
// @Summary Delete note
// @Description Delete a note; its ticket number is never reissued
// @Tags Notes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body DeleteNoteRequest true "Note ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /notes [delete]
func (h *NoteHandler) DeleteNote(c *fiber.Ctx) error {
	var req DeleteNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.ID == 0 {
		return response.BadRequest(c, "Note ID required")
	}

	note, err := h.noteService.DeleteNote(c.Context(), req.ID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoteNotFound):
			return response.BadRequest(c, "Note not found")
		default:
			return response.InternalServerError(c, "Failed to delete note")
		}
	}

	return response.Success(c, fmt.Sprintf("Note '%s' with ID %d deleted", note.Title, note.ID), nil)
}
