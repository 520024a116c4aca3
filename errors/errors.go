package errors

import (
	"errors"
	"fmt"
	"time"
)

// =============================================================================
// ERROR CODES
// =============================================================================

// Error code constants for structured errors.
const (
	CodeConfigError           = "CONFIG_ERROR"
	CodeInvalidKey            = "INVALID_KEY"
	CodeServiceNotFound       = "SERVICE_NOT_FOUND"
	CodeCommandNotFound       = "COMMAND_NOT_FOUND"
	CodeLocatorNotInitialized = "LOCATOR_NOT_INITIALIZED"
	CodePluginLoadFailed      = "PLUGIN_LOAD_FAILED"
	CodePluginNotFound        = "PLUGIN_NOT_FOUND"
)

// Standard sentinel errors.
var (
	ErrNilHandler  = errors.New("handler must not be nil")
	ErrNilListener = errors.New("listener must not be nil")
	ErrNilFactory  = errors.New("factory must not be nil")
)

// =============================================================================
// RELAY ERROR (STRUCTURED ERROR)
// =============================================================================

// Error represents a structured error with a stable code and optional cause.
type Error struct {
	Code      string
	Message   string
	Cause     error
	Timestamp time.Time
	Context   map[string]any
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is for Error.
// Compares by error code, allowing matching against sentinel errors.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code != "" && e.Code == t.Code
}

// WithContext adds context to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

func newError(code, message string, cause error) *Error {
	return &Error{
		Code:      code,
		Message:   message,
		Cause:     cause,
		Timestamp: time.Now(),
	}
}

// ErrConfigError creates a config error.
func ErrConfigError(message string, cause error) *Error {
	return newError(CodeConfigError, message, cause)
}

// ErrInvalidKey reports a registration key of an unsupported kind.
func ErrInvalidKey(key any) *Error {
	return newError(CodeInvalidKey, fmt.Sprintf("invalid registration key of type %T", key), nil).
		WithContext("key", fmt.Sprintf("%v", key))
}

// ErrServiceNotFound reports an unbound dependency key.
func ErrServiceNotFound(name string) *Error {
	return newError(CodeServiceNotFound, "service '"+name+"' not found", nil).
		WithContext("service_name", name)
}

// ErrCommandNotFound reports a dispatch of an unregistered command.
func ErrCommandNotFound(command string) *Error {
	return newError(CodeCommandNotFound, "command '"+command+"' not found", nil).
		WithContext("command", command)
}

// ErrLocatorNotInitialized reports locator use before SetContainer.
func ErrLocatorNotInitialized() *Error {
	return newError(CodeLocatorNotInitialized, "service locator has no container", nil)
}

// ErrPluginLoad reports a plugin unit that could not be loaded.
func ErrPluginLoad(name string, cause error) *Error {
	return newError(CodePluginLoadFailed, "failed to load plugin '"+name+"'", cause).
		WithContext("plugin", name)
}

// ErrPluginNotFound reports an unknown plugin name.
func ErrPluginNotFound(name string) *Error {
	return newError(CodePluginNotFound, "plugin '"+name+"' not found", nil).
		WithContext("plugin", name)
}

// =============================================================================
// STDLIB RE-EXPORTS
// =============================================================================

// New creates a simple error (stdlib passthrough).
func New(text string) error {
	return errors.New(text)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
