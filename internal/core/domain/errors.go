package domain

import "errors"

// Common domain errors. "Not found" deliberately surfaces as 400 at the
// HTTP layer, matching the documented API contract.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)

// User errors
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("duplicated username")
	ErrUserInactive      = errors.New("user account is inactive")
	ErrUserHasNotes      = errors.New("user has assigned notes")
)

// Note errors
var (
	ErrNoteNotFound      = errors.New("note not found")
	ErrNoteAlreadyExists = errors.New("duplicate note title")
	ErrNoteOwnerMissing  = errors.New("note owner does not exist")
)
