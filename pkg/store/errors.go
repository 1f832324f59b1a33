package store

import "errors"

// Typed store errors. Implementations wrap these so the tool layer can
// categorize failures without knowing the backend. Only connection and
// timeout errors are transient.
var (
	ErrNotFound   = errors.New("resource not found")
	ErrDuplicate  = errors.New("record already exists")
	ErrForeignKey = errors.New("referenced resource does not exist")
	ErrPermission = errors.New("insufficient permissions")
	ErrConnection = errors.New("database connection failed")
	ErrTimeout    = errors.New("database query timed out")
)

// IsTransient reports whether the error is worth retrying.
func IsTransient(err error) bool {
	return errors.Is(err, ErrConnection) || errors.Is(err, ErrTimeout)
}
