package materialize

import "errors"

// Sentinel errors for materialization.
var (
	// ErrManifestConflict indicates the manifest destination already exists
	// and force was not set. This aborts before any rule file is touched.
	// Individual rule file conflicts are deliberately non-fatal (skip with
	// a warning); only the manifest conflict stops the run.
	ErrManifestConflict = errors.New("materialize: manifest already exists")

	// ErrBadSlug indicates a mode slug that cannot name a directory.
	ErrBadSlug = errors.New("materialize: mode slug is not a valid directory name")

	// ErrNoRuleRoot indicates a rule whose origin catalog has no rule root.
	ErrNoRuleRoot = errors.New("materialize: no rule root for origin")
)
