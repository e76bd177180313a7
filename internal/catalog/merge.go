package catalog

import (
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// Merge combines the system and user catalogs into a validated DefinitionSet.
//
// Entries are keyed by normalized slug. System entries are seeded first in
// catalog order; a user entry with a matching slug replaces the system entry
// wholesale (keeping its position) and is tagged custom-override, while new
// user slugs are appended and tagged custom. Insertion order is the display
// order contract, not an accident of map iteration.
//
// After merging, two cross-validations run over the full set and both are
// fatal: every mode's category slugs must exist among merged categories, and
// every rule path must resolve to a file under the rule root of the rule's
// own origin catalog.
func Merge(system, user *Catalog) (*DefinitionSet, error) {
	set := &DefinitionSet{
		modeIndex: make(map[string]int),
		catIndex:  make(map[string]int),
		ruleRoots: map[Provenance]fs.FS{
			ProvenanceSystem: system.Rules,
			ProvenanceCustom: user.Rules,
		},
		rulePaths: map[Provenance]string{
			ProvenanceSystem: system.RulesPath,
			ProvenanceCustom: user.RulesPath,
		},
	}

	for _, c := range system.Categories {
		set.catIndex[NormalizeSlug(c.Slug)] = len(set.categories)
		set.categories = append(set.categories, c)
	}
	for _, c := range user.Categories {
		key := NormalizeSlug(c.Slug)
		if i, ok := set.catIndex[key]; ok {
			c.Source = ProvenanceCustomOverride
			set.categories[i] = c
			continue
		}
		set.catIndex[key] = len(set.categories)
		set.categories = append(set.categories, c)
	}

	for _, m := range system.Modes {
		set.modeIndex[NormalizeSlug(m.Slug)] = len(set.modes)
		set.modes = append(set.modes, m)
	}
	for _, m := range user.Modes {
		key := NormalizeSlug(m.Slug)
		if i, ok := set.modeIndex[key]; ok {
			m.Source = ProvenanceCustomOverride
			set.modes[i] = m
			continue
		}
		set.modeIndex[key] = len(set.modes)
		set.modes = append(set.modes, m)
	}

	if err := set.crossValidate(); err != nil {
		return nil, err
	}
	return set, nil
}

// crossValidate checks referential integrity of the merged set, aggregating
// every violation before reporting.
func (s *DefinitionSet) crossValidate() error {
	var errs []ValidationError

	for _, m := range s.modes {
		for _, c := range m.Categories {
			if _, ok := s.catIndex[NormalizeSlug(c)]; !ok {
				errs = append(errs, ValidationError{
					Field:   fmt.Sprintf("mode %q: categories", m.Slug),
					Message: fmt.Sprintf("references unknown category %q", c),
					Value:   c,
					Wrapped: ErrUnknownCategory,
				})
			}
		}

		for _, r := range m.Rules {
			errs = append(errs, s.checkRuleFile(m.Slug, r)...)
		}
	}

	if len(errs) > 0 {
		return &ValidationErrors{Errors: errs}
	}
	return nil
}

// checkRuleFile verifies that a rule's path stays inside its origin's rule
// root and resolves to an existing file there.
func (s *DefinitionSet) checkRuleFile(modeSlug string, r Rule) []ValidationError {
	field := fmt.Sprintf("mode %q: rule %q", modeSlug, r.Slug)

	clean := path.Clean(r.Path)
	if path.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, "../") {
		return []ValidationError{{
			Field:   field,
			Message: "rule path escapes the rule root",
			Value:   r.Path,
			Wrapped: ErrRuleFileMissing,
		}}
	}

	root := s.ruleRoots[r.Origin]
	attempted := path.Join(s.rulePaths[r.Origin], clean)
	if root == nil {
		return []ValidationError{{
			Field:   field,
			Message: fmt.Sprintf("no rule root available for %s rules", r.Origin),
			Value:   attempted,
			Wrapped: ErrRuleFileMissing,
		}}
	}

	info, err := fs.Stat(root, clean)
	if err != nil || info.IsDir() {
		return []ValidationError{{
			Field:   field,
			Message: "rule file does not exist",
			Value:   attempted,
			Wrapped: ErrRuleFileMissing,
		}}
	}
	return nil
}

// RuleRoot returns the rule file root for the given origin catalog.
func (s *DefinitionSet) RuleRoot(origin Provenance) (fs.FS, bool) {
	root, ok := s.ruleRoots[origin]
	return root, ok && root != nil
}

// RuleRootPath returns the human-readable description of an origin's rule root.
func (s *DefinitionSet) RuleRootPath(origin Provenance) string {
	return s.rulePaths[origin]
}
