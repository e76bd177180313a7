package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/modekit-ai/modekit/internal/catalog"
	"github.com/modekit-ai/modekit/internal/materialize"
	"github.com/modekit-ai/modekit/internal/selection"
	"github.com/modekit-ai/modekit/internal/ui"
	"github.com/modekit-ai/modekit/pkg/version"
)

var installCmd = &cobra.Command{
	Use:   "install [target-dir]",
	Short: "Provision a project with selected modes",
	Long: `Install selected modes into a project directory.

Selection:
  modekit install --mode code --mode debug      Explicit mode slugs
  modekit install --category core               Every mode in a category
  modekit install --mode code --category docs   Both, combined
  modekit install                               Interactive browsing (TTY only)

The target directory defaults to the current directory. The manifest is
written to .modekitmodes at the target root; rule files go under .modekit/.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInstall,
}

func init() {
	rootCmd.AddCommand(installCmd)

	installCmd.Flags().StringSlice("mode", nil, "Mode slug to install (repeatable)")
	installCmd.Flags().StringSlice("category", nil, "Category slug whose modes are installed (repeatable)")
	installCmd.Flags().Bool("force", false, "Overwrite existing manifest and rule files")
}

// runInstall resolves the selection and materializes it into the target.
func runInstall(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) > 0 {
		target = args[0]
	}

	set, err := loadDefinitionSet()
	if err != nil {
		return err
	}

	req := selection.Request{
		ModeSlugs:     getStringSliceFlag(cmd, "mode"),
		CategorySlugs: getStringSliceFlag(cmd, "category"),
	}
	resolver := selection.NewResolver(set)

	tty := isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())

	var result *selection.Result
	if req.Empty() {
		if !tty {
			return fmt.Errorf("no selection given and no terminal attached; pass --mode or --category")
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), renderBanner(version.GetVersion()))
		result, err = resolver.ResolveInteractive(selection.NewHuhPrompter())
		if err != nil {
			return fmt.Errorf("interactive selection: %w", err)
		}
	} else {
		result, err = resolver.Resolve(req)
		if err != nil {
			// A request with any invalid identifier is never applied.
			var selErr *selection.SelectionError
			if errors.As(err, &selErr) {
				errOut := cmd.ErrOrStderr()
				for _, s := range selErr.InvalidModeSlugs {
					_, _ = fmt.Fprintf(errOut, "%s unknown mode %q\n", symError(), s)
				}
				for _, s := range selErr.InvalidCategorySlugs {
					_, _ = fmt.Fprintf(errOut, "%s unknown category %q\n", symError(), s)
				}
			}
			return err
		}
	}

	if len(result.ModeSlugs) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), cliMuted.Render("Nothing selected."))
		return nil
	}

	modes := result.Modes(set)
	engine := materialize.NewEngine(set)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	sp := ui.NewSpinner(fmt.Sprintf("Installing %d mode(s) into %s", len(modes), target), tty)
	outcomes, err := engine.Materialize(ctx, modes, materialize.Options{
		TargetDir: target,
		Force:     getBoolFlag(cmd, "force"),
	})
	sp.Stop()
	if err != nil {
		if errors.Is(err, materialize.ErrManifestConflict) {
			return err
		}
		return fmt.Errorf("materialization failed: %w", err)
	}

	printInstallSummary(cmd, result.ModeSlugs, outcomes)
	return nil
}

// loadDefinitionSet loads both catalogs and merges them. System catalog
// failures and merge cross-validation failures are fatal; user catalog
// problems were already degraded to warnings by the repository.
func loadDefinitionSet() (*catalog.DefinitionSet, error) {
	repo, err := catalog.NewRepository()
	if err != nil {
		return nil, err
	}
	system, err := repo.LoadSystemCatalog()
	if err != nil {
		return nil, err
	}
	user, err := repo.LoadUserCatalog()
	if err != nil {
		return nil, err
	}
	return catalog.Merge(system, user)
}

// printInstallSummary reports per-status counts and any skipped conflicts.
func printInstallSummary(cmd *cobra.Command, slugs []string, outcomes []materialize.Outcome) {
	out := cmd.OutOrStdout()

	var written, overwritten, skipped int
	var skippedPaths []string
	for _, o := range outcomes {
		switch o.Status {
		case materialize.StatusWritten:
			written++
		case materialize.StatusOverwritten:
			overwritten++
		case materialize.StatusSkippedConflict:
			skipped++
			skippedPaths = append(skippedPaths, o.Path)
		}
	}

	pairs := []kvPair{
		{"Modes", fmt.Sprintf("%d installed", len(slugs))},
		{"Files", fmt.Sprintf("%d written", written)},
	}
	if overwritten > 0 {
		pairs = append(pairs, kvPair{"Overwritten", fmt.Sprintf("%d", overwritten)})
	}
	if skipped > 0 {
		pairs = append(pairs, kvPair{"Skipped", fmt.Sprintf("%d (already exist, use --force)", skipped)})
	}

	details := []string{renderKeyValueLines(pairs)}
	for _, p := range skippedPaths {
		details = append(details, cliWarn.Render(symWarning()+" skipped "+p))
	}

	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, renderSuccessCard("Modes installed", details...))
}
