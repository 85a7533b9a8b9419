package services

import (
	"context"
	"errors"
	"log"

	"technotes-api/internal/adapters/persistence/models"
	"technotes-api/internal/adapters/persistence/repositories"
	"technotes-api/internal/core/domain"
	"technotes-api/internal/pkg/password"

	"gorm.io/gorm"
)

// UserService handles user management business logic
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// CreateUserInput represents create user input
type CreateUserInput struct {
	Username string       `json:"username"`
	Password string       `json:"password"`
	Roles    models.Roles `json:"roles"`
}

// UpdateUserInput represents update user input. An empty Password leaves
// the stored hash untouched.
type UpdateUserInput struct {
	ID       uint         `json:"id"`
	Username string       `json:"username"`
	Roles    models.Roles `json:"roles"`
	Active   bool         `json:"active"`
	Password string       `json:"password"`
}

// ListUsers returns all users without their password hashes
func (s *UserService) ListUsers(ctx context.Context) ([]*models.UserResponse, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.UserResponse, len(users))
	for i, user := range users {
		responses[i] = user.ToResponse()
	}
	return responses, nil
}

// CreateUser creates a new user with a freshly salted password hash
func (s *UserService) CreateUser(ctx context.Context, input *CreateUserInput) (*models.UserResponse, error) {
	if input.Username == "" || input.Password == "" || !input.Roles.Valid() {
		return nil, domain.ErrInvalidInput
	}

	exists, err := s.userRepo.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrUserAlreadyExists
	}

	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: input.Username,
		Password: hashedPassword,
		Roles:    input.Roles,
		Active:   true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("✅ User created: %s", user.Username)
	return user.ToResponse(), nil
}

// UpdateUser updates a user. Renaming to the caller's own current username
// is allowed; colliding with a different user's name is a conflict. The
// password hash changes only when a new password is supplied.
func (s *UserService) UpdateUser(ctx context.Context, input *UpdateUserInput) (*models.UserResponse, error) {
	if input.ID == 0 || input.Username == "" || !input.Roles.Valid() {
		return nil, domain.ErrInvalidInput
	}

	user, err := s.userRepo.GetByID(ctx, input.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	duplicate, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if duplicate != nil && duplicate.ID != user.ID {
		return nil, domain.ErrUserAlreadyExists
	}

	user.Username = input.Username
	user.Roles = input.Roles
	user.Active = input.Active

	if input.Password != "" {
		hashedPassword, err := password.Hash(input.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashedPassword
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("✅ User updated: %s", user.Username)
	return user.ToResponse(), nil
}

// DeleteUser deletes a user unless notes still reference it
func (s *UserService) DeleteUser(ctx context.Context, id uint) (*models.UserResponse, error) {
	if id == 0 {
		return nil, domain.ErrInvalidInput
	}

	user, err := s.userRepo.DeleteIfNoNotes(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	log.Printf("✅ User deleted: %s (ID: %d)", user.Username, user.ID)
	return user.ToResponse(), nil
}
