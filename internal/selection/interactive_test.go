package selection

import (
	"reflect"
	"testing"

	"github.com/modekit-ai/modekit/internal/catalog"
)

// scriptedPrompter replays canned answers and records how often each prompt
// step ran.
type scriptedPrompter struct {
	categories []string
	modes      [][]string
	continues  []bool

	catCalls  int
	modeCalls int
	contCalls int
}

// Each step cancels once its scripted answers run out.
func (p *scriptedPrompter) SelectCategory(cats []catalog.CategoryDefinition) (string, error) {
	if p.catCalls >= len(p.categories) {
		return "", ErrCancelled
	}
	slug := p.categories[p.catCalls]
	p.catCalls++
	return slug, nil
}

func (p *scriptedPrompter) SelectModes(cat catalog.CategoryDefinition, modes []catalog.ModeDefinition) ([]string, error) {
	if p.modeCalls >= len(p.modes) {
		return nil, ErrCancelled
	}
	chosen := p.modes[p.modeCalls]
	p.modeCalls++
	return chosen, nil
}

func (p *scriptedPrompter) Continue() (bool, error) {
	if p.contCalls >= len(p.continues) {
		return false, ErrCancelled
	}
	again := p.continues[p.contCalls]
	p.contCalls++
	return again, nil
}

func TestResolveInteractiveAccumulatesAcrossCategories(t *testing.T) {
	t.Parallel()

	r := NewResolver(newTestSet(t))
	p := &scriptedPrompter{
		categories: []string{"cat1", "cat2"},
		modes:      [][]string{{"m2"}, {"m1", "m3"}},
		continues:  []bool{true, false},
	}

	result, err := r.ResolveInteractive(p)
	if err != nil {
		t.Fatalf("ResolveInteractive() error: %v", err)
	}
	if want := []string{"m2", "m1", "m3"}; !reflect.DeepEqual(result.ModeSlugs, want) {
		t.Errorf("ModeSlugs = %v, want %v", result.ModeSlugs, want)
	}
	if p.contCalls != 2 {
		t.Errorf("continue asked %d times, want 2", p.contCalls)
	}
}

func TestResolveInteractiveDeduplicates(t *testing.T) {
	t.Parallel()

	// m3 is in both categories; picking it twice keeps one entry.
	r := NewResolver(newTestSet(t))
	p := &scriptedPrompter{
		categories: []string{"cat1", "cat2"},
		modes:      [][]string{{"m3"}, {"m3", "m1"}},
		continues:  []bool{true, false},
	}

	result, err := r.ResolveInteractive(p)
	if err != nil {
		t.Fatalf("ResolveInteractive() error: %v", err)
	}
	if want := []string{"m3", "m1"}; !reflect.DeepEqual(result.ModeSlugs, want) {
		t.Errorf("ModeSlugs = %v, want %v", result.ModeSlugs, want)
	}
}

func TestResolveInteractiveCancelReturnsAccumulated(t *testing.T) {
	t.Parallel()

	// First round completes, then the category prompt is cancelled.
	r := NewResolver(newTestSet(t))
	p := &scriptedPrompter{
		categories: []string{"cat1"},
		modes:      [][]string{{"m2"}},
		continues:  []bool{true},
	}

	result, err := r.ResolveInteractive(p)
	if err != nil {
		t.Fatalf("ResolveInteractive() error: %v, cancellation must be clean", err)
	}
	if want := []string{"m2"}; !reflect.DeepEqual(result.ModeSlugs, want) {
		t.Errorf("ModeSlugs = %v, want accumulated %v", result.ModeSlugs, want)
	}
}

func TestResolveInteractiveImmediateCancelIsEmpty(t *testing.T) {
	t.Parallel()

	r := NewResolver(newTestSet(t))
	p := &scriptedPrompter{}

	result, err := r.ResolveInteractive(p)
	if err != nil {
		t.Fatalf("ResolveInteractive() error: %v", err)
	}
	if len(result.ModeSlugs) != 0 {
		t.Errorf("ModeSlugs = %v, want empty", result.ModeSlugs)
	}
}

func TestResolveInteractiveSingleCategorySkipsContinue(t *testing.T) {
	t.Parallel()

	doc := `
categories:
  - slug: only
    name: Only
    description: d
modes:
  - slug: m1
    name: Mode One
    description: d
    categories: [only]
`
	repo := catalog.NewRepositoryWithSources([]byte(doc), nil, "")
	system, err := repo.LoadSystemCatalog()
	if err != nil {
		t.Fatalf("load system catalog: %v", err)
	}
	set, err := catalog.Merge(system, &catalog.Catalog{Source: catalog.ProvenanceCustom})
	if err != nil {
		t.Fatalf("merge: %v", err)
	}

	p := &scriptedPrompter{
		categories: []string{"only"},
		modes:      [][]string{{"m1"}},
	}

	result, err := NewResolver(set).ResolveInteractive(p)
	if err != nil {
		t.Fatalf("ResolveInteractive() error: %v", err)
	}
	if want := []string{"m1"}; !reflect.DeepEqual(result.ModeSlugs, want) {
		t.Errorf("ModeSlugs = %v, want %v", result.ModeSlugs, want)
	}
	if p.contCalls != 0 {
		t.Errorf("continue asked %d times with one category, want 0", p.contCalls)
	}
}
