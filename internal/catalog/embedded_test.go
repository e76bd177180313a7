package catalog

import (
	"testing"
)

// The bundled catalog must always load, validate, and merge cleanly on its
// own; a broken asset tree would make every installation fail.
func TestEmbeddedCatalogIsSelfConsistent(t *testing.T) {
	t.Parallel()

	doc, err := EmbeddedCatalogDocument()
	if err != nil {
		t.Fatalf("EmbeddedCatalogDocument() error: %v", err)
	}
	rules, err := EmbeddedRules()
	if err != nil {
		t.Fatalf("EmbeddedRules() error: %v", err)
	}

	repo := NewRepositoryWithSources(doc, rules, "")
	system, err := repo.LoadSystemCatalog()
	if err != nil {
		t.Fatalf("LoadSystemCatalog() error: %v", err)
	}
	if len(system.Modes) == 0 || len(system.Categories) == 0 {
		t.Fatal("embedded catalog has no modes or no categories")
	}

	user, err := repo.LoadUserCatalog()
	if err != nil {
		t.Fatalf("LoadUserCatalog() error: %v", err)
	}

	set, err := Merge(system, user)
	if err != nil {
		t.Fatalf("Merge() error: %v", err)
	}

	// Every bundled mode belongs to at least one category and carries the
	// shared intro rule.
	for _, m := range set.Modes() {
		if len(m.Categories) == 0 {
			t.Errorf("bundled mode %q has no categories", m.Slug)
		}
		hasGeneric := false
		for _, r := range m.Rules {
			if r.Generic {
				hasGeneric = true
			}
		}
		if !hasGeneric {
			t.Errorf("bundled mode %q has no generic rule", m.Slug)
		}
	}
}
