package error

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorMessage(t *testing.T) {
	cause := errors.New("connection refused")

	assert.Equal(t, "load failed: connection refused", New(SyncError, "load failed", cause).Error())
	assert.Equal(t, "bad file", New(FileError, "bad file", nil).Error())
}

func TestIsFollowsWrapping(t *testing.T) {
	cause := errors.New("unexpected end of JSON input")
	err := fmt.Errorf("import: %w", New(ImportError, "invalid JSON", cause))

	assert.True(t, Is(err, ImportError))
	assert.False(t, Is(err, SyncError))
	assert.False(t, Is(cause, ImportError))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, cause, Cause(err))
	assert.Equal(t, cause, Cause(cause))
}

func TestErrorTypeString(t *testing.T) {
	assert.Equal(t, "sync", SyncError.String())
	assert.Equal(t, "unknown", ErrorType(42).String())
}
