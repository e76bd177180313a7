package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/modekit-ai/modekit/internal/catalog"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available modes grouped by category",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

// runList prints the merged catalog with provenance badges.
func runList(cmd *cobra.Command, _ []string) error {
	set, err := loadDefinitionSet()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	listed := make(map[string]bool)

	for _, cat := range set.Categories() {
		_, _ = fmt.Fprintf(out, "%s %s\n", cliPrimary.Bold(true).Render(cat.Name), cliMuted.Render("("+cat.Slug+")"))
		for _, m := range set.ModesInCategory(cat.Slug) {
			printModeLine(out, m)
			listed[catalog.NormalizeSlug(m.Slug)] = true
		}
		_, _ = fmt.Fprintln(out)
	}

	// Modes without any category (possible in user catalogs).
	var orphans []catalog.ModeDefinition
	for _, m := range set.Modes() {
		if !listed[catalog.NormalizeSlug(m.Slug)] {
			orphans = append(orphans, m)
		}
	}
	if len(orphans) > 0 {
		_, _ = fmt.Fprintln(out, cliMuted.Render("Uncategorized"))
		for _, m := range orphans {
			printModeLine(out, m)
		}
	}

	return nil
}

func printModeLine(out io.Writer, m catalog.ModeDefinition) {
	_, _ = fmt.Fprintf(out, "  %s %s  %s\n",
		cliSuccess.Render(m.Slug),
		provenanceBadge(string(m.Source)),
		cliMuted.Render(firstLine(m.Name)))
}

// firstLine truncates multi-line text to its first line.
func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}
