// Package selection turns a selection request (explicit mode slugs, category
// expansion, or an interactive browse loop) into a concrete, deduplicated,
// order-preserving list of mode slugs from a merged definition set.
package selection

import (
	"github.com/modekit-ai/modekit/internal/catalog"
)

// Request describes what the caller wants selected. Explicit mode slugs and
// category slugs may be combined in one request.
type Request struct {
	ModeSlugs     []string
	CategorySlugs []string
}

// Empty reports whether the request selects nothing explicitly, which is the
// trigger for interactive resolution at the CLI boundary.
func (r Request) Empty() bool {
	return len(r.ModeSlugs) == 0 && len(r.CategorySlugs) == 0
}

// Result is the resolved selection: mode slugs deduplicated and ordered by
// first occurrence (explicit matches first, then category expansions), plus
// every invalid identifier encountered across the whole request.
type Result struct {
	ModeSlugs            []string
	InvalidModeSlugs     []string
	InvalidCategorySlugs []string
}

// Modes returns the resolved ModeDefinitions in result order.
func (r *Result) Modes(set *catalog.DefinitionSet) []catalog.ModeDefinition {
	out := make([]catalog.ModeDefinition, 0, len(r.ModeSlugs))
	for _, slug := range r.ModeSlugs {
		if m, ok := set.Mode(slug); ok {
			out = append(out, m)
		}
	}
	return out
}

// Resolver resolves requests against one merged definition set.
type Resolver struct {
	set *catalog.DefinitionSet
}

// NewResolver creates a Resolver over the given definition set.
func NewResolver(set *catalog.DefinitionSet) *Resolver {
	return &Resolver{set: set}
}

// Resolve applies a non-interactive request. It does not fail fast: every
// invalid mode slug and every invalid category slug is collected first, and
// if any exist the aggregated SelectionError is returned alongside the
// result so one report can name all problems. An empty valid selection is
// not an error at this layer.
func (r *Resolver) Resolve(req Request) (*Result, error) {
	result := &Result{}
	seen := make(map[string]bool)

	for _, slug := range req.ModeSlugs {
		m, ok := r.set.Mode(slug)
		if !ok {
			result.InvalidModeSlugs = append(result.InvalidModeSlugs, slug)
			continue
		}
		appendMode(result, seen, m)
	}

	for _, slug := range req.CategorySlugs {
		if _, ok := r.set.Category(slug); !ok {
			result.InvalidCategorySlugs = append(result.InvalidCategorySlugs, slug)
			continue
		}
		for _, m := range r.set.ModesInCategory(slug) {
			appendMode(result, seen, m)
		}
	}

	if len(result.InvalidModeSlugs) > 0 || len(result.InvalidCategorySlugs) > 0 {
		return result, &SelectionError{
			InvalidModeSlugs:     result.InvalidModeSlugs,
			InvalidCategorySlugs: result.InvalidCategorySlugs,
		}
	}
	return result, nil
}

// appendMode adds a mode slug unless already present, preserving first
// occurrence order.
func appendMode(result *Result, seen map[string]bool, m catalog.ModeDefinition) {
	key := catalog.NormalizeSlug(m.Slug)
	if seen[key] {
		return
	}
	seen[key] = true
	result.ModeSlugs = append(result.ModeSlugs, m.Slug)
}
