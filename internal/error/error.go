// internal/error/error.go

package error

import (
	"errors"
	"fmt"
)

type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

type ErrorType int

const (
	ConfigError ErrorType = iota
	FileError
	ImportError
	SyncError
	ValidationError
)

func (t ErrorType) String() string {
	switch t {
	case ConfigError:
		return "config"
	case FileError:
		return "file"
	case ImportError:
		return "import"
	case SyncError:
		return "sync"
	case ValidationError:
		return "validation"
	default:
		return "unknown"
	}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(errType ErrorType, message string, err error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Err:     err,
	}
}

// Is reports whether any error in err's chain is an AppError of the given type.
func Is(err error, errType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errType
	}
	return false
}

// Cause returns the innermost error wrapped by an AppError, or err itself.
func Cause(err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Err != nil {
		return appErr.Err
	}
	return err
}
