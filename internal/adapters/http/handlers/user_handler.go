package handlers

import (
	"errors"
	"fmt"

	"technotes-api/internal/adapters/persistence/models"
	"technotes-api/internal/config"
	"technotes-api/internal/core/domain"
	"technotes-api/internal/core/services"
	"technotes-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles user management endpoints
type UserHandler struct {
	userService *services.UserService
	cfg         *config.Config
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService, cfg *config.Config) *UserHandler {
	return &UserHandler{
		userService: userService,
		cfg:         cfg,
	}
}

// GetUsers handles listing all users
// @Summary List users
// @Description Get all users without their password hashes
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /users [get]
func (h *UserHandler) GetUsers(c *fiber.Ctx) error {
	users, err := h.userService.ListUsers(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list users")
	}

	// Legacy compat: the original API treated an empty collection as an
	// error
	if len(users) == 0 && h.cfg.Compat.EmptyListError {
		return response.BadRequest(c, "No users found")
	}

	return response.Success(c, "Users retrieved", users)
}

// CreateUserRequest represents create user request body
type CreateUserRequest struct {
	Username string       `json:"username"`
	Password string       `json:"password"`
	Roles    models.Roles `json:"roles"`
}

// CreateUser handles creating a new user
// @Summary Create user
// @Description Create a user with a non-empty role set (Manager/Admin only)
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateUserRequest true "User data"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /users [post]
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Username == "" || req.Password == "" || !req.Roles.Valid() {
		return response.BadRequest(c, "All fields are required")
	}

	input := &services.CreateUserInput{
		Username: req.Username,
		Password: req.Password,
		Roles:    req.Roles,
	}

	user, err := h.userService.CreateUser(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserAlreadyExists):
			return response.Conflict(c, "Duplicated username")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "All fields are required")
		default:
			return response.InternalServerError(c, "Failed to create user")
		}
	}

	return response.Created(c, fmt.Sprintf("New user %s created", user.Username), fiber.Map{
		"user": user,
	})
}

// UpdateUserRequest represents update user request body. Password is the
// only optional field.
type UpdateUserRequest struct {
	ID       uint         `json:"id"`
	Username string       `json:"username"`
	Roles    models.Roles `json:"roles"`
	Active   *bool        `json:"active"`
	Password string       `json:"password"`
}

// UpdateUser handles updating a user
// @Summary Update user
// @Description Update a user; the stored password hash changes only when a new password is supplied (Manager/Admin only)
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body UpdateUserRequest true "Update data"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /users [patch]
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.ID == 0 || req.Username == "" || !req.Roles.Valid() || req.Active == nil {
		return response.BadRequest(c, "All fields except password are required")
	}

	input := &services.UpdateUserInput{
		ID:       req.ID,
		Username: req.Username,
		Roles:    req.Roles,
		Active:   *req.Active,
		Password: req.Password,
	}

	user, err := h.userService.UpdateUser(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return response.BadRequest(c, "User not found")
		case errors.Is(err, domain.ErrUserAlreadyExists):
			return response.Conflict(c, "Duplicate username")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "All fields except password are required")
		default:
			return response.InternalServerError(c, "Failed to update user")
		}
	}

	return response.Success(c, fmt.Sprintf("%s updated", user.Username), fiber.Map{
		"user": user,
	})
}

// DeleteUserRequest represents delete user request body
type DeleteUserRequest struct {
	ID uint `json:"id"`
}

// DeleteUser handles deleting a user
// @Summary Delete user
// @Description Delete a user; refused while any note still references it (Manager/Admin only)
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body DeleteUserRequest true "User ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /users [delete]
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	var req DeleteUserRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.ID == 0 {
		return response.BadRequest(c, "User ID Required")
	}

	user, err := h.userService.DeleteUser(c.Context(), req.ID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserHasNotes):
			return response.BadRequest(c, "User has assigned notes")
		case errors.Is(err, domain.ErrUserNotFound):
			return response.BadRequest(c, "User not found")
		default:
			return response.InternalServerError(c, "Failed to delete user")
		}
	}

	return response.Success(c, fmt.Sprintf("Username %s with ID %d deleted", user.Username, user.ID), nil)
}
