package engine

import "errors"

var (
	// ErrArityMismatch is returned when the number of parameters does not
	// match the placeholders of the statement. Nothing is bound.
	ErrArityMismatch = errors.New("parameter count does not match statement")

	// ErrClosed is returned by every operation on a closed Engine.
	ErrClosed = errors.New("engine is closed")
)
