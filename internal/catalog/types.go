// Package catalog loads the bundled system catalog and the user override
// catalog, merges them by slug with provenance tagging, and cross-validates
// the merged definition set before anything downstream consumes it.
package catalog

import (
	"fmt"
	"io/fs"
	"strings"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

// Provenance records which catalog a definition came from.
type Provenance string

const (
	// ProvenanceSystem marks entries from the bundled system catalog.
	ProvenanceSystem Provenance = "system"

	// ProvenanceCustom marks entries that exist only in the user catalog.
	ProvenanceCustom Provenance = "custom"

	// ProvenanceCustomOverride marks user entries that replaced a system
	// entry with the same slug.
	ProvenanceCustomOverride Provenance = "custom-override"
)

// NormalizeSlug canonicalizes a slug for comparison. User catalogs may carry
// decomposed Unicode sequences that would otherwise fail to override the
// NFC-composed system slug.
func NormalizeSlug(slug string) string {
	return norm.NFC.String(strings.TrimSpace(slug))
}

// Rule is a text document associated with a mode. Generic rules are shared
// across all selected modes; non-generic rules belong to exactly one mode's
// rules directory.
type Rule struct {
	Slug        string `yaml:"slug"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`

	// Path locates the rule file relative to the rule root of the catalog
	// the rule was loaded from, regardless of later mode overrides.
	Path    string `yaml:"path"`
	Generic bool   `yaml:"generic"`

	// Origin is the catalog the rule was loaded from (system or custom).
	// It selects the rule root used for existence checks and copying.
	Origin Provenance `yaml:"-"`
}

// CapabilityScope narrows a capability to files matching a regular expression.
type CapabilityScope struct {
	FileRegex   string `yaml:"fileRegex" json:"fileRegex"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Capability is one entry of a mode's groups list. The YAML form is either a
// plain scalar ("read") or a two-element sequence carrying a scope
// (["edit", {fileRegex: "\\.md$", description: "Markdown only"}]).
type Capability struct {
	Name  string
	Scope *CapabilityScope
}

// UnmarshalYAML decodes both capability forms.
func (c *Capability) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		c.Scope = nil
		return value.Decode(&c.Name)
	case yaml.SequenceNode:
		if len(value.Content) != 2 {
			return fmt.Errorf("capability tuple must have exactly 2 elements, got %d", len(value.Content))
		}
		if err := value.Content[0].Decode(&c.Name); err != nil {
			return fmt.Errorf("capability tuple name: %w", err)
		}
		scope := &CapabilityScope{}
		if err := value.Content[1].Decode(scope); err != nil {
			return fmt.Errorf("capability tuple scope: %w", err)
		}
		c.Scope = scope
		return nil
	default:
		return fmt.Errorf("capability must be a string or a [name, scope] tuple")
	}
}

// MarshalYAML re-emits the same shape the capability was declared with.
func (c Capability) MarshalYAML() (any, error) {
	if c.Scope == nil {
		return c.Name, nil
	}
	return []any{c.Name, c.Scope}, nil
}

// ModeDefinition is a named, selectable bundle of role metadata and rules.
type ModeDefinition struct {
	Slug         string       `yaml:"slug"`
	Name         string       `yaml:"name"`
	Description  string       `yaml:"description"`
	Instructions string       `yaml:"instructions,omitempty"`
	Groups       []Capability `yaml:"groups,omitempty"`
	Categories   []string     `yaml:"categories,omitempty"`
	Rules        []Rule       `yaml:"rules,omitempty"`

	// Source is assigned by the repository on load and refined by the
	// merger (custom-override when a user entry replaces a system one).
	Source Provenance `yaml:"-"`
}

// CategoryDefinition is a named grouping used to select several modes at once.
type CategoryDefinition struct {
	Slug        string `yaml:"slug"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`

	Source Provenance `yaml:"-"`
}

// Catalog is the load result for a single source (system or user): its
// definitions, their shared provenance, and the rule root the definitions'
// rule paths resolve against.
type Catalog struct {
	Modes      []ModeDefinition
	Categories []CategoryDefinition
	Source     Provenance

	// Rules is the rule file root for this catalog. It may be nil for an
	// empty catalog (e.g. a missing user catalog).
	Rules fs.FS

	// RulesPath describes the rule root in human terms for error messages
	// (a directory path, or "embedded:rules" for the bundled tree).
	RulesPath string
}

// DefinitionSet is the merged, validated collection of modes and categories.
// Iteration order is the merge insertion order: system entries first in
// catalog order, then user-only entries in catalog order. It is built once
// per invocation and treated as immutable afterwards.
type DefinitionSet struct {
	modes      []ModeDefinition
	modeIndex  map[string]int
	categories []CategoryDefinition
	catIndex   map[string]int

	ruleRoots map[Provenance]fs.FS
	rulePaths map[Provenance]string
}

// Modes returns all modes in insertion order.
func (s *DefinitionSet) Modes() []ModeDefinition {
	return s.modes
}

// Categories returns all categories in insertion order.
func (s *DefinitionSet) Categories() []CategoryDefinition {
	return s.categories
}

// Mode looks up a mode by normalized slug.
func (s *DefinitionSet) Mode(slug string) (ModeDefinition, bool) {
	i, ok := s.modeIndex[NormalizeSlug(slug)]
	if !ok {
		return ModeDefinition{}, false
	}
	return s.modes[i], true
}

// Category looks up a category by normalized slug.
func (s *DefinitionSet) Category(slug string) (CategoryDefinition, bool) {
	i, ok := s.catIndex[NormalizeSlug(slug)]
	if !ok {
		return CategoryDefinition{}, false
	}
	return s.categories[i], true
}

// ModesInCategory returns, in insertion order, every mode whose category list
// contains the given slug.
func (s *DefinitionSet) ModesInCategory(slug string) []ModeDefinition {
	want := NormalizeSlug(slug)
	var out []ModeDefinition
	for _, m := range s.modes {
		for _, c := range m.Categories {
			if NormalizeSlug(c) == want {
				out = append(out, m)
				break
			}
		}
	}
	return out
}
