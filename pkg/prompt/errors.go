package prompt

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("prompt: aborted")
	// ErrNoForms is returned when there is nothing to pick from.
	ErrNoForms = errors.New("prompt: no forms available")
	// ErrInvalidSelection is returned when a driver reports an index outside
	// the option list.
	ErrInvalidSelection = errors.New("prompt: invalid selection")
)
