package cmd

import (
	"fmt"
	"time"

	"github.com/immich-janitor/immich-janitor/internal/immich"
	"github.com/immich-janitor/immich-janitor/internal/models"
	"github.com/immich-janitor/immich-janitor/internal/pattern"
	"github.com/immich-janitor/immich-janitor/internal/presets"
	"github.com/immich-janitor/immich-janitor/internal/session"
	"github.com/immich-janitor/immich-janitor/ui"
	"github.com/spf13/cobra"
)

var (
	deleteInteractive   bool
	deleteExamples      string
	deleteExamplesFrom  string
	deleteExamplesDepth int
	deleteExamplesExt   string
	deletePreset        string
	deleteTUI           bool
	deleteDryRun        bool
	deleteForce         bool
	deletePermanent     bool
	deleteExport        string
)

// deleteCmd represents the delete-by-pattern command
var deleteCmd = &cobra.Command{
	Use:   "delete-by-pattern [PATTERN]",
	Short: "Delete assets whose filename matches a regex",
	Long: `Delete assets matching a regex pattern.

The pattern can be given directly, taken from a saved preset or built
from example filenames. Matches are previewed and confirmed before
anything is deleted. Deleted assets go to the trash unless --permanent
is given.

Examples:
  immich-janitor delete-by-pattern '^IMG_\d+\.jpg$'
  immich-janitor delete-by-pattern --interactive
  immich-janitor delete-by-pattern --examples "IMG_001.jpg,IMG_002.jpg"
  immich-janitor delete-by-pattern --examples-from ~/Pictures/junk --tui
  immich-janitor delete-by-pattern --preset screenshots --dry-run --export`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)

	deleteCmd.Flags().BoolVarP(&deleteInteractive, "interactive", "i", false, "build the pattern from examples interactively")
	deleteCmd.Flags().StringVarP(&deleteExamples, "examples", "e", "", "comma-separated example filenames")
	deleteCmd.Flags().StringVar(&deleteExamplesFrom, "examples-from", "", "directory to take example filenames from")
	addScanFlags(deleteCmd, &deleteExamplesDepth, &deleteExamplesExt)
	deleteCmd.Flags().StringVar(&deletePreset, "preset", "", "use a saved pattern")
	deleteCmd.Flags().BoolVar(&deleteTUI, "tui", false, "choose the pattern in the full-screen picker")
	deleteCmd.Flags().BoolVar(&deletePermanent, "permanent", false, "delete permanently instead of moving to trash")
	addPlanFlags(deleteCmd, &deleteDryRun, &deleteForce, &deleteExport)
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	console := session.NewConsole(cmd.InOrStdin(), out)

	builder := builderOptions{
		Examples:     deleteExamples,
		ExamplesFrom:  deleteExamplesFrom,
		ExamplesDepth: deleteExamplesDepth,
		ExamplesExt:   deleteExamplesExt,
		TUI:           deleteTUI,
	}
	interactive := deleteInteractive || builder.requested()

	var patternArg string
	if len(args) == 1 {
		patternArg = args[0]
	}

	switch {
	case interactive && deletePreset != "":
		return fmt.Errorf("--preset cannot be combined with --interactive, --examples, --examples-from or --tui")
	case !interactive && deletePreset == "" && patternArg == "":
		return fmt.Errorf("pattern required: pass PATTERN, --preset or --interactive (see --help)")
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	var corpus []models.Asset
	selected := patternArg

	switch {
	case deletePreset != "":
		if patternArg != "" {
			fmt.Fprintln(out, ui.Warn("Warning: pattern argument ignored, using preset."))
		}
		selected, err = presetPattern(deletePreset)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Using preset %q: %s\n", deletePreset, selected)

	case interactive:
		if patternArg != "" {
			fmt.Fprintln(out, ui.Warn("Warning: pattern argument ignored in interactive mode."))
		}
		corpus, err = fetchCorpus(ctx, out, client)
		if err != nil {
			return err
		}
		if len(corpus) == 0 {
			fmt.Fprintln(out, ui.Warn("No assets found in library."))
			return nil
		}

		var ok bool
		selected, ok, err = buildPattern(ctx, console, cmd.InOrStdin(), out, corpus, builder)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, ui.Warn("Pattern selection cancelled."))
			return nil
		}
	}

	if _, err := compilePattern(selected); err != nil {
		return err
	}

	var matches []models.Asset
	if corpus != nil {
		matches = pattern.NewTester(nil).Test(selected, corpus).Matches
	} else {
		fmt.Fprintln(out, ui.Dim("Finding matching assets..."))
		matches, err = client.GetAllAssets(ctx, immich.AssetQuery{Pattern: selected, WithExif: true})
		if err != nil {
			return fmt.Errorf("failed to search assets: %w", err)
		}
	}

	if len(matches) == 0 {
		fmt.Fprintln(out, ui.Warn("No assets matching pattern found."))
		return nil
	}

	plan := models.NewPlan("delete", models.Criteria{Pattern: selected, Force: deletePermanent}, matches)
	fmt.Fprintln(out, ui.Warn(fmt.Sprintf("\nFound %d asset(s) matching pattern '%s':", plan.Count(), selected)))

	question := fmt.Sprintf("Are you sure you want to delete %d asset(s)?", plan.Count())
	warning := ""
	if deletePermanent {
		warning = "THIS CANNOT BE UNDONE! Assets will be permanently deleted."
	}

	done, err := applyPlan(cmd, console, plan, applyOptions{
		DryRun:     deleteDryRun,
		Force:      deleteForce,
		ExportPath: resolveExportPath(deleteExport, plan.Action, time.Now()),
		Question:   question,
		Warning:    warning,
	}, func() error {
		if err := client.DeleteAssets(ctx, plan.IDs(), deletePermanent); err != nil {
			return fmt.Errorf("failed to delete assets: %w", err)
		}
		return nil
	})
	if err != nil || !done {
		return err
	}

	fmt.Fprintln(out, ui.Success(fmt.Sprintf("Successfully deleted %d asset(s).", plan.Count())))
	if !deletePermanent {
		fmt.Fprintln(out, ui.Dim("Assets moved to trash. Use 'trash empty' to permanently delete."))
	}
	return nil
}

// presetPattern looks up a saved pattern by name
func presetPattern(name string) (string, error) {
	lib, err := presets.Load(appFs, appConfig.PresetsPath)
	if err != nil {
		return "", fmt.Errorf("failed to load presets: %w", err)
	}
	p, err := lib.Get(name)
	if err != nil {
		return "", err
	}
	return p.Pattern, nil
}
