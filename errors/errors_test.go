package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Error(t *testing.T) {
	err := ErrServiceNotFound("metrics")
	assert.Equal(t, "service 'metrics' not found", err.Error())

	wrapped := ErrPluginLoad("weather", New("symbol not found"))
	assert.Equal(t, "failed to load plugin 'weather': symbol not found", wrapped.Error())
}

func TestError_Unwrap(t *testing.T) {
	cause := New("boom")
	err := ErrConfigError("bad config", cause)

	assert.True(t, Is(err, cause))
	assert.Equal(t, cause, err.Unwrap())
}

func TestError_IsMatchesByCode(t *testing.T) {
	a := ErrCommandNotFound("/ping")
	b := ErrCommandNotFound("/other")

	assert.True(t, Is(a, b))
	assert.False(t, Is(a, ErrServiceNotFound("x")))
}

func TestError_WithContext(t *testing.T) {
	err := ErrInvalidKey(42)

	assert.Equal(t, CodeInvalidKey, err.Code)
	assert.Contains(t, err.Context, "key")
}
