package services

import "errors"

var (
	// ErrValidation marks rejected input. Handlers map it to 400 and
	// return the error text to the caller unchanged.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidCredentials is returned for any failed login, without
	// revealing whether the email exists.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// validationError carries a caller-facing message while matching
// ErrValidation through errors.Is.
type validationError struct {
	msg string
}

func (e *validationError) Error() string { return e.msg }

func (e *validationError) Is(target error) bool { return target == ErrValidation }

func invalid(msg string) error {
	return &validationError{msg: msg}
}
