package domain

import "errors"

var (
	ErrNoSessionGrid      = errors.New("no session grid")
	ErrNoSpace            = errors.New("no space found")
	ErrCurrentRoomUnknown = errors.New("current room unknown")
	ErrTopicNotFound      = errors.New("topic not found")

	// ErrUpdateFailed and ErrLoadFailed match every *UpdateError and
	// *LoadError respectively via errors.Is.
	ErrUpdateFailed = errors.New("update failed")
	ErrLoadFailed   = errors.New("load failed")
)

// UpdateError reports a rejected or failed mutation. Error returns the
// message unchanged so it can be shown to the user as is.
type UpdateError struct {
	Message string
	Err     error
}

func NewUpdateError(message string) *UpdateError {
	return &UpdateError{Message: message}
}

func (e *UpdateError) Error() string { return e.Message }

func (e *UpdateError) Unwrap() error { return e.Err }

func (e *UpdateError) Is(target error) bool { return target == ErrUpdateFailed }

// LoadError reports a failed read from the event log or a dependent lookup.
type LoadError struct {
	Message string
	Err     error
}

func (e *LoadError) Error() string { return e.Message }

func (e *LoadError) Unwrap() error { return e.Err }

func (e *LoadError) Is(target error) bool { return target == ErrLoadFailed }
