package logger

import (
	"go.uber.org/zap"
)

// Field constructors, re-exported so callers never import zap directly.
var (
	// String creates a string field.
	String = zap.String
	// Int creates an int field.
	Int = zap.Int
	// Int64 creates an int64 field.
	Int64 = zap.Int64
	// Uint creates a uint field.
	Uint = zap.Uint
	// Float64 creates a float64 field.
	Float64 = zap.Float64
	// Bool creates a bool field.
	Bool = zap.Bool

	// Time creates a time field.
	Time = zap.Time
	// Duration creates a duration field.
	Duration = zap.Duration

	// Error creates an error field.
	Error = zap.Error

	// Stringer creates a field from a Stringer.
	Stringer = zap.Stringer

	Any = zap.Any

	Strings = zap.Strings

	Stack = zap.Stack
)
