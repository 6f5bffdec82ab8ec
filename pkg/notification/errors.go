package notification

import (
	"errors"
	"fmt"
)

// Decode errors.
var (
	// ErrUnknownMessage indicates a message id outside the known set.
	ErrUnknownMessage = errors.New("unknown message id")

	// ErrShortBuffer indicates the buffer or declared size does not cover
	// the fixed layout of the message.
	ErrShortBuffer = errors.New("buffer too short for message layout")
)

// Error is a failed decode. Code is the integer signal reported to the host
// side: the unknown message id itself, or the enclosing message id when an
// embedded field is invalid.
type Error struct {
	Code int32
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("notification decode failed (code %d): %v", e.Code, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ErrorCode extracts the integer code from a decode error.
func ErrorCode(err error) (int32, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de.Code, true
	}
	return 0, false
}

func decodeError(id MessageID, err error) *Error {
	return &Error{Code: int32(id), Err: err}
}
