package selection

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCancelled indicates the user aborted an interactive prompt. It is a
// clean termination, not a failure: the resolver returns whatever selection
// was accumulated before the cancel.
var ErrCancelled = errors.New("selection: cancelled by user")

// ErrUnknownIdentifier is the sentinel wrapped by SelectionError.
var ErrUnknownIdentifier = errors.New("selection: unknown identifier")

// SelectionError reports every invalid identifier of a request at once. A
// request containing any invalid identifier is never partially applied.
type SelectionError struct {
	InvalidModeSlugs     []string
	InvalidCategorySlugs []string
}

// Error implements the error interface.
func (e *SelectionError) Error() string {
	var parts []string
	if len(e.InvalidModeSlugs) > 0 {
		parts = append(parts, fmt.Sprintf("unknown mode slug(s): %s", strings.Join(e.InvalidModeSlugs, ", ")))
	}
	if len(e.InvalidCategorySlugs) > 0 {
		parts = append(parts, fmt.Sprintf("unknown category slug(s): %s", strings.Join(e.InvalidCategorySlugs, ", ")))
	}
	if len(parts) == 0 {
		return "selection: no invalid identifiers"
	}
	return "selection: " + strings.Join(parts, "; ")
}

// Unwrap returns the sentinel error for errors.Is support.
func (e *SelectionError) Unwrap() error {
	return ErrUnknownIdentifier
}
