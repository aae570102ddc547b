package errors

import stderrors "errors"

var (
	ErrNotFound  = stderrors.New("not found")
	ErrForbidden = stderrors.New("forbidden")
	ErrDuplicate = stderrors.New("duplicate")
)

// ValidationError carries a message that is safe to show to the caller.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func Validation(message string) error {
	return &ValidationError{Message: message}
}

// AsValidation reports whether err wraps a ValidationError and returns it.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if stderrors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

func Is(err, target error) bool {
	return stderrors.Is(err, target)
}
