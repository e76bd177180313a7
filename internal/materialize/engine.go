// Package materialize writes a resolved mode selection into a target project
// directory: the .modekitmodes manifest, the shared rules directory, and one
// rules directory per selected mode.
package materialize

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/modekit-ai/modekit/internal/catalog"
	"github.com/modekit-ai/modekit/internal/defs"
)

// Status classifies what happened at one destination path.
type Status string

const (
	StatusWritten         Status = "written"
	StatusOverwritten     Status = "overwritten"
	StatusSkippedConflict Status = "skipped-conflict"
)

// Outcome records the result for a single destination path.
type Outcome struct {
	Path   string
	Status Status
}

// Options control one materialization run.
type Options struct {
	// TargetDir is the project directory being provisioned.
	TargetDir string

	// Force overwrites existing destinations instead of conflicting.
	Force bool
}

// Engine copies rule files and writes the manifest. Rule content is read
// from the definition set's provenance-correct rule roots.
type Engine struct {
	set *catalog.DefinitionSet
}

// NewEngine creates an Engine over the merged definition set.
func NewEngine(set *catalog.DefinitionSet) *Engine {
	return &Engine{set: set}
}

// Materialize runs the write pipeline for the selected modes, strictly in
// order: directories, then the manifest, then every rule file one at a time.
// Cancellation is honored only before the first write; once started, the run
// goes to completion or fails fatally on the first unexpected I/O error.
//
// The manifest conflict is fatal without force; rule file conflicts are
// skipped with a warning and reported in the outcomes.
func (e *Engine) Materialize(ctx context.Context, modes []catalog.ModeDefinition, opts Options) ([]Outcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	target := filepath.Clean(opts.TargetDir)
	toolDir := filepath.Join(target, defs.ToolDir)
	sharedDir := filepath.Join(toolDir, defs.SharedRulesDir)

	// Step 1: directories.
	if err := os.MkdirAll(sharedDir, 0o755); err != nil {
		return nil, fmt.Errorf("create shared rules directory %q: %w", sharedDir, err)
	}
	modeDirs := make(map[string]string, len(modes))
	for _, m := range modes {
		if err := validateSlugForDir(m.Slug); err != nil {
			return nil, err
		}
		dir := filepath.Join(toolDir, defs.ModeRulesDirPrefix+m.Slug)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create mode rules directory %q: %w", dir, err)
		}
		modeDirs[m.Slug] = dir
	}

	var outcomes []Outcome

	// Step 2: manifest. A conflict here aborts before any rule file is
	// touched.
	manifestPath := filepath.Join(target, defs.ManifestFile)
	manifestExisted := false
	if _, err := os.Stat(manifestPath); err == nil {
		manifestExisted = true
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("stat manifest %q: %w", manifestPath, err)
	}
	if manifestExisted && !opts.Force {
		return nil, fmt.Errorf("%w: %s (re-run with --force to overwrite)", ErrManifestConflict, manifestPath)
	}

	data, err := renderManifest(modes)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(manifestPath, data, 0o644); err != nil {
		return nil, fmt.Errorf("write manifest %q: %w", manifestPath, err)
	}
	if manifestExisted {
		outcomes = append(outcomes, Outcome{Path: manifestPath, Status: StatusOverwritten})
	} else {
		outcomes = append(outcomes, Outcome{Path: manifestPath, Status: StatusWritten})
	}

	// Step 3: rule files, deduplicated by destination path so a generic
	// rule referenced by several selected modes is copied once.
	written := make(map[string]bool)
	for _, m := range modes {
		for _, r := range m.Rules {
			destDir := sharedDir
			if !r.Generic {
				destDir = modeDirs[m.Slug]
			}
			destPath := filepath.Join(destDir, path.Base(r.Path))
			if written[destPath] {
				continue
			}
			written[destPath] = true

			outcome, err := e.copyRule(m.Slug, r, destPath, opts.Force)
			if err != nil {
				return outcomes, err
			}
			outcomes = append(outcomes, outcome)
		}
	}

	return outcomes, nil
}

// copyRule copies one rule file from its origin root to destPath, honoring
// the skip-and-warn conflict policy.
func (e *Engine) copyRule(modeSlug string, r catalog.Rule, destPath string, force bool) (Outcome, error) {
	root, ok := e.set.RuleRoot(r.Origin)
	if !ok {
		return Outcome{}, fmt.Errorf("%w: mode %q rule %q (origin %s)", ErrNoRuleRoot, modeSlug, r.Slug, r.Origin)
	}

	content, err := fs.ReadFile(root, path.Clean(r.Path))
	if err != nil {
		attempted := path.Join(e.set.RuleRootPath(r.Origin), path.Clean(r.Path))
		return Outcome{}, fmt.Errorf("read rule %q for mode %q from %q: %w", r.Slug, modeSlug, attempted, err)
	}

	existed := false
	if _, err := os.Stat(destPath); err == nil {
		existed = true
	} else if !os.IsNotExist(err) {
		return Outcome{}, fmt.Errorf("stat rule destination %q: %w", destPath, err)
	}

	if existed && !force {
		slog.Warn("rule file already exists, skipping", "path", destPath, "mode", modeSlug, "rule", r.Slug)
		return Outcome{Path: destPath, Status: StatusSkippedConflict}, nil
	}

	if err := os.WriteFile(destPath, content, 0o644); err != nil {
		return Outcome{}, fmt.Errorf("write rule %q: %w", destPath, err)
	}

	if existed {
		return Outcome{Path: destPath, Status: StatusOverwritten}, nil
	}
	return Outcome{Path: destPath, Status: StatusWritten}, nil
}

// validateSlugForDir rejects slugs that cannot safely name a directory under
// the tool dir (separators, traversal, empties).
func validateSlugForDir(slug string) error {
	if slug == "" || slug == "." || slug == ".." {
		return fmt.Errorf("%w: %q", ErrBadSlug, slug)
	}
	if strings.ContainsAny(slug, `/\`) || strings.ContainsRune(slug, filepath.Separator) {
		return fmt.Errorf("%w: %q", ErrBadSlug, slug)
	}
	return nil
}
