package domain

import (
	"fmt"

	"github.com/rotisserie/eris"
)

// Sentinel errors shared across services and adapters. Wrap with eris; match
// with errors.Is.
var (
	ErrInput             = eris.New("invalid input")
	ErrNotFound          = eris.New("not found")
	ErrPassExecution     = eris.New("pass execution failed")
	ErrMissingDependency = eris.New("missing pass dependency")
	ErrConcurrency       = eris.New("concurrent report update")
	ErrValidation        = eris.New("report failed validation")
)

// PassExecutionError carries the generation failure for one pass. It matches
// ErrPassExecution and unwraps to the underlying cause.
type PassExecutionError struct {
	Pass string
	Err  error
}

func (e *PassExecutionError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Pass, e.Err)
}

func (e *PassExecutionError) Unwrap() error { return e.Err }

func (e *PassExecutionError) Is(target error) bool { return target == ErrPassExecution }
