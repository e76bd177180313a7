package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for catalog operations.
var (
	// ErrSystemCatalog indicates the bundled system catalog could not be
	// loaded. This is always fatal: the tool cannot run without defaults.
	ErrSystemCatalog = errors.New("catalog: system catalog unusable")

	// ErrInvalidYAML indicates invalid YAML syntax in a catalog document.
	ErrInvalidYAML = errors.New("catalog: invalid YAML syntax")

	// ErrInvalidCatalog indicates a schema violation in a catalog document.
	ErrInvalidCatalog = errors.New("catalog: invalid catalog document")

	// ErrDuplicateSlug indicates a slug appears twice within one catalog.
	ErrDuplicateSlug = errors.New("catalog: duplicate slug")

	// ErrUnknownCategory indicates a mode references a category slug that
	// does not exist in the merged category set.
	ErrUnknownCategory = errors.New("catalog: unknown category reference")

	// ErrRuleFileMissing indicates a rule's path does not resolve to a file
	// under its provenance's rule root.
	ErrRuleFileMissing = errors.New("catalog: rule file not found")
)

// ValidationError is a single schema or referential-integrity violation with
// the offending field path.
type ValidationError struct {
	Field   string
	Message string
	Value   any
	Wrapped error // underlying sentinel error for errors.Is support
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("validation error: field %q: %s (got: %v)", e.Field, e.Message, e.Value)
	}
	return fmt.Sprintf("validation error: field %q: %s", e.Field, e.Message)
}

// Unwrap returns the underlying sentinel error.
func (e *ValidationError) Unwrap() error {
	return e.Wrapped
}

// ValidationErrors aggregates every violation found in one pass so a single
// report can name all problems at once.
type ValidationErrors struct {
	Errors []ValidationError
}

// Error implements the error interface.
func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 0 {
		return "validation: no errors"
	}
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("validation failed with %d error(s): %s", len(e.Errors), strings.Join(msgs, "; "))
}

// Is supports errors.Is by checking contained validation errors against the target.
func (e *ValidationErrors) Is(target error) bool {
	if target == ErrInvalidCatalog {
		return true
	}
	for _, ve := range e.Errors {
		if ve.Wrapped != nil && errors.Is(ve.Wrapped, target) {
			return true
		}
	}
	return false
}
