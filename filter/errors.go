package filter

import (
	"errors"
	"fmt"
)

// ErrUnknownPreset is returned when a named filter has not been registered
var ErrUnknownPreset = errors.New("unknown filter preset")

// CompilationError indicates a filter expression could not be compiled
type CompilationError struct {
	Expression string
	Reason     string
	Position   int // -1 if position is unknown
	Err        error
}

func (e *CompilationError) Error() string {
	msg := fmt.Sprintf("compilation error in '%s': %s", e.Expression, e.Reason)
	if e.Position >= 0 {
		msg = fmt.Sprintf("compilation error at position %d in '%s': %s", e.Position, e.Expression, e.Reason)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CompilationError) Unwrap() error {
	return e.Err
}
