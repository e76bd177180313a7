package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// CLI output styles for consistent modekit-themed terminal output.
var (
	cliSuccess = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#059669", Dark: "#10B981"})
	cliWarn    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#F59E0B"})
	cliError   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#EF4444"})
	cliMuted   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6B7280"})
	cliPrimary = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#C45A3C", Dark: "#DA7756"})
	cliBorder  = lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#4B5563"}
)

func symSuccess() string { return cliSuccess.Render("✓") }
func symWarning() string { return cliWarn.Render("!") }
func symError() string   { return cliError.Render("✗") }

// kvPair is one aligned key/value line in a summary block.
type kvPair struct {
	key   string
	value string
}

// renderKeyValueLines renders aligned key/value pairs with muted keys.
func renderKeyValueLines(pairs []kvPair) string {
	width := 0
	for _, p := range pairs {
		if len(p.key) > width {
			width = len(p.key)
		}
	}
	lines := make([]string, len(pairs))
	for i, p := range pairs {
		lines[i] = fmt.Sprintf("%s  %s", cliMuted.Render(fmt.Sprintf("%-*s", width, p.key)), p.value)
	}
	return strings.Join(lines, "\n")
}

// renderSuccessCard renders a bordered card with a success title and detail lines.
func renderSuccessCard(title string, details ...string) string {
	body := symSuccess() + " " + cliSuccess.Bold(true).Render(title)
	for _, d := range details {
		if d != "" {
			body += "\n" + d
		}
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(cliBorder).
		Padding(0, 2).
		Render(body)
}

// renderBanner returns the modekit banner for interactive sessions.
func renderBanner(version string) string {
	name := cliPrimary.Bold(true).Render("modekit")
	return fmt.Sprintf("%s %s\n%s", name, cliMuted.Render(version),
		cliMuted.Render("Provision agent modes and rules into your project."))
}

// provenanceBadge renders a short colored tag for a definition's origin.
func provenanceBadge(source string) string {
	switch source {
	case "system":
		return cliMuted.Render("[system]")
	case "custom":
		return cliSuccess.Render("[custom]")
	case "custom-override":
		return cliWarn.Render("[override]")
	default:
		return cliMuted.Render("[" + source + "]")
	}
}
