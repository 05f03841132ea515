package services

import "errors"

// Standard service errors
var (
	// ErrBusy means another top-level workflow currently owns the
	// conversation; the rejected request is a no-op
	ErrBusy = errors.New("another request is already in progress")

	// ErrCancelled means the user declined a confirmation prompt
	ErrCancelled = errors.New("action cancelled")

	// Input validation errors
	ErrEmptyInput     = errors.New("message cannot be empty")
	ErrInvalidEmailID = errors.New("invalid email ID")
)

// IsUserFacing reports whether an error should be shown to the user as-is
// rather than mapped to a generic failure message
func IsUserFacing(err error) bool {
	return errors.Is(err, ErrBusy) ||
		errors.Is(err, ErrCancelled) ||
		errors.Is(err, ErrEmptyInput) ||
		errors.Is(err, ErrInvalidEmailID)
}
