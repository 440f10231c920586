package apperr

import (
	"errors"
	"net/http"
)

// Sentinel errors for the whole application. Services return these (possibly
// wrapped with fmt.Errorf) and controllers resolve them with errors.Is, so the
// HTTP layer never has to inspect error strings.
var (
	ErrUnauthenticated = errors.New("not logged in")

	// Authentication / account
	ErrUserNotFound      = errors.New("user does not exist")
	ErrInvalidCredential = errors.New("wrong password")
	ErrUsernameTaken     = errors.New("username already exists")
	ErrUnauthorized      = errors.New("username or password incorrect")

	// Validation
	ErrUsernameTooLong  = errors.New("username must not exceed 20 characters (Chinese characters count as 2)")
	ErrEmptyField       = errors.New("required field is empty")
	ErrPasswordTooShort = errors.New("new password must be at least 6 characters")
	ErrPasswordMismatch = errors.New("new password and confirmation do not match")
	ErrInvalidAvatar    = errors.New("unsupported file type, only png, jpg, jpeg, gif allowed")
	ErrAvatarTooLarge   = errors.New("file size must not exceed 2MB")
	ErrEmptyFile        = errors.New("file content is empty")

	// Lookups
	ErrQuestionNotFound = errors.New("question not found")
	ErrNotFound         = errors.New("not found")

	// Persistence. The underlying cause is logged where it happens; callers
	// only ever see this generic error.
	ErrStore = errors.New("database error")
)

// Status maps an error to the HTTP status code it should be served with.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrUnauthenticated),
		errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrInvalidCredential):
		return http.StatusUnauthorized
	case errors.Is(err, ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, ErrUsernameTaken):
		return http.StatusConflict
	case errors.Is(err, ErrQuestionNotFound), errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUsernameTooLong),
		errors.Is(err, ErrEmptyField),
		errors.Is(err, ErrPasswordTooShort),
		errors.Is(err, ErrPasswordMismatch),
		errors.Is(err, ErrInvalidAvatar),
		errors.Is(err, ErrAvatarTooLarge),
		errors.Is(err, ErrEmptyFile):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
