package selection

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/modekit-ai/modekit/internal/catalog"
)

// Prompter abstracts the interactive prompt steps so the loop can be tested
// without a terminal. The huh-backed implementation is the production one.
type Prompter interface {
	// SelectCategory presents the categories and returns the chosen slug.
	SelectCategory(cats []catalog.CategoryDefinition) (string, error)

	// SelectModes presents a multi-select of the modes within a category
	// and returns the chosen slugs.
	SelectModes(cat catalog.CategoryDefinition, modes []catalog.ModeDefinition) ([]string, error)

	// Continue asks whether to browse another category.
	Continue() (bool, error)
}

// ResolveInteractive runs the category → modes → continue loop. Cancellation
// at any prompt terminates the loop and returns whatever was accumulated so
// far; an empty accumulation is a valid result. The continue question is
// skipped when only one category exists.
func (r *Resolver) ResolveInteractive(p Prompter) (*Result, error) {
	result := &Result{}
	seen := make(map[string]bool)

	cats := r.set.Categories()
	if len(cats) == 0 {
		return result, nil
	}

	for {
		catSlug, err := p.SelectCategory(cats)
		if err != nil {
			if errors.Is(err, ErrCancelled) {
				return result, nil
			}
			return nil, err
		}

		cat, ok := r.set.Category(catSlug)
		if !ok {
			return nil, fmt.Errorf("prompter returned unknown category %q", catSlug)
		}

		chosen, err := p.SelectModes(cat, r.set.ModesInCategory(catSlug))
		if err != nil {
			if errors.Is(err, ErrCancelled) {
				return result, nil
			}
			return nil, err
		}
		for _, slug := range chosen {
			if m, ok := r.set.Mode(slug); ok {
				appendMode(result, seen, m)
			}
		}

		if len(cats) == 1 {
			return result, nil
		}

		again, err := p.Continue()
		if err != nil {
			if errors.Is(err, ErrCancelled) {
				return result, nil
			}
			return nil, err
		}
		if !again {
			return result, nil
		}
	}
}

// Brand colors for the interactive prompts (dark variants).
const (
	colorPrimary = "#DA7756"
	colorSuccess = "#10B981"
	colorError   = "#EF4444"
	colorText    = "#E5E7EB"
	colorMuted   = "#6B7280"
	colorBorder  = "#4B5563"
)

// HuhPrompter implements Prompter with huh forms.
type HuhPrompter struct {
	theme *huh.Theme
}

// NewHuhPrompter creates the terminal-backed Prompter.
func NewHuhPrompter() *HuhPrompter {
	return &HuhPrompter{theme: newSelectionTheme()}
}

// SelectCategory presents a single-select of categories.
func (p *HuhPrompter) SelectCategory(cats []catalog.CategoryDefinition) (string, error) {
	opts := make([]huh.Option[string], len(cats))
	for i, c := range cats {
		label := c.Name
		if c.Description != "" {
			label = c.Name + " - " + c.Description
		}
		opts[i] = huh.NewOption(label, c.Slug)
	}

	var selected string
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Choose a category").
			Options(opts...).
			Value(&selected),
	)).WithTheme(p.theme)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", ErrCancelled
		}
		return "", fmt.Errorf("category prompt: %w", err)
	}
	return selected, nil
}

// SelectModes presents a multi-select of a category's modes.
func (p *HuhPrompter) SelectModes(cat catalog.CategoryDefinition, modes []catalog.ModeDefinition) ([]string, error) {
	opts := make([]huh.Option[string], len(modes))
	for i, m := range modes {
		label := m.Name
		if m.Description != "" {
			label = m.Name + " - " + truncate(m.Description, 60)
		}
		opts[i] = huh.NewOption(label, m.Slug)
	}

	var selected []string
	form := huh.NewForm(huh.NewGroup(
		huh.NewMultiSelect[string]().
			Title(fmt.Sprintf("Select modes from %s", cat.Name)).
			Options(opts...).
			Value(&selected),
	)).WithTheme(p.theme)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, ErrCancelled
		}
		return nil, fmt.Errorf("mode prompt: %w", err)
	}
	return selected, nil
}

// Continue asks whether to pick from another category.
func (p *HuhPrompter) Continue() (bool, error) {
	var again bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title("Select from another category?").
			Affirmative("Yes").
			Negative("No").
			Value(&again),
	)).WithTheme(p.theme)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, ErrCancelled
		}
		return false, fmt.Errorf("continue prompt: %w", err)
	}
	return again, nil
}

// truncate shortens a string to max runes with an ellipsis.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

// newSelectionTheme maps the modekit brand colors onto a huh theme.
func newSelectionTheme() *huh.Theme {
	t := huh.ThemeBase()

	primary := lipgloss.AdaptiveColor{Light: "#C45A3C", Dark: colorPrimary}
	green := lipgloss.AdaptiveColor{Light: "#059669", Dark: colorSuccess}
	red := lipgloss.AdaptiveColor{Light: "#DC2626", Dark: colorError}
	text := lipgloss.AdaptiveColor{Light: "#111827", Dark: colorText}
	muted := lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: colorMuted}
	border := lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: colorBorder}

	t.Focused.Base = t.Focused.Base.BorderForeground(border)
	t.Focused.Title = t.Focused.Title.Foreground(primary).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(muted)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(red)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(red)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(primary).SetString("▸ ")
	t.Focused.Option = t.Focused.Option.Foreground(text)
	t.Focused.MultiSelectSelector = t.Focused.MultiSelectSelector.Foreground(primary)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(green)
	t.Focused.SelectedPrefix = lipgloss.NewStyle().Foreground(green).SetString("◆ ")
	t.Focused.UnselectedOption = t.Focused.UnselectedOption.Foreground(text)
	t.Focused.UnselectedPrefix = lipgloss.NewStyle().Foreground(muted).SetString("◇ ")
	t.Focused.FocusedButton = t.Focused.FocusedButton.
		Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}).
		Background(primary)
	t.Focused.BlurredButton = t.Focused.BlurredButton.
		Foreground(text).
		Background(lipgloss.AdaptiveColor{Light: "#E5E7EB", Dark: "#374151"})

	t.Blurred = t.Focused
	t.Blurred.Base = t.Focused.Base.BorderStyle(lipgloss.HiddenBorder())

	return t
}
