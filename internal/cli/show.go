package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <mode-slug>",
	Short: "Show a mode's metadata and render its rule documents",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

// runShow prints one mode's exported fields and its rule documents. Rule
// markdown is rendered with glamour when stdout is a terminal.
func runShow(cmd *cobra.Command, args []string) error {
	set, err := loadDefinitionSet()
	if err != nil {
		return err
	}

	mode, ok := set.Mode(args[0])
	if !ok {
		return fmt.Errorf("unknown mode slug %q (see 'modekit list')", args[0])
	}

	out := cmd.OutOrStdout()

	groups := make([]string, len(mode.Groups))
	for i, g := range mode.Groups {
		groups[i] = g.Name
		if g.Scope != nil {
			groups[i] = fmt.Sprintf("%s (%s)", g.Name, g.Scope.FileRegex)
		}
	}

	_, _ = fmt.Fprintf(out, "%s %s\n\n", cliPrimary.Bold(true).Render(mode.Name), provenanceBadge(string(mode.Source)))
	_, _ = fmt.Fprintln(out, renderKeyValueLines([]kvPair{
		{"Slug", mode.Slug},
		{"Role", firstLine(mode.Description)},
		{"Groups", strings.Join(groups, ", ")},
		{"Categories", strings.Join(mode.Categories, ", ")},
	}))

	var renderer *glamour.TermRenderer
	if isatty.IsTerminal(os.Stdout.Fd()) {
		renderer, err = glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(100),
		)
		if err != nil {
			renderer = nil
		}
	}

	for _, r := range mode.Rules {
		root, ok := set.RuleRoot(r.Origin)
		if !ok {
			continue
		}
		content, err := fs.ReadFile(root, path.Clean(r.Path))
		if err != nil {
			return fmt.Errorf("read rule %q: %w", r.Slug, err)
		}

		_, _ = fmt.Fprintf(out, "\n%s %s\n", cliMuted.Render("rule"), cliSuccess.Render(r.Slug))
		if renderer != nil {
			rendered, rerr := renderer.Render(string(content))
			if rerr == nil {
				_, _ = fmt.Fprint(out, rendered)
				continue
			}
		}
		_, _ = fmt.Fprintln(out, string(content))
	}

	return nil
}
