package errors

import "fmt"

var (
	// Common
	ErrNotFound   = fmt.Errorf("record not found")
	ErrConflict   = fmt.Errorf("record already exists")
	ErrInUse      = fmt.Errorf("record is referenced by other data")
	ErrBadRequest = fmt.Errorf("bad request")
)

// InvalidInputError marks malformed input detected before any remote call.
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

func NewInvalidInputError(format string, args ...interface{}) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}

// HttpError carries the status code and user-facing message for a failed
// request, plus the underlying error and structured context for logging.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Details interface{}
	Context map[string]interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, context map[string]interface{}) *HttpError {
	return &HttpError{
		Code:    code,
		Message: message,
		Err:     err,
		Context: context,
	}
}
