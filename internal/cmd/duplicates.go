package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/immich-janitor/immich-janitor/internal/models"
	"github.com/immich-janitor/immich-janitor/internal/session"
	"github.com/immich-janitor/immich-janitor/internal/utils"
	"github.com/immich-janitor/immich-janitor/ui"
	"github.com/spf13/cobra"
)

var (
	dupKeep       string
	dupDryRun     bool
	dupForce      bool
	dupExport     string
	dupDismissAll bool
)

// duplicatesCmd groups the duplicate commands
var duplicatesCmd = &cobra.Command{
	Use:   "duplicates",
	Short: "Find and remove duplicate assets",
}

var duplicatesFindCmd = &cobra.Command{
	Use:   "find",
	Short: "List duplicate groups detected by the server",
	Args:  cobra.NoArgs,
	RunE:  runDuplicatesFind,
}

var duplicatesDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Move all but one asset of every duplicate group to trash",
	Long: `Keep one asset per duplicate group and move the rest to trash.

Examples:
  immich-janitor duplicates delete --keep oldest --dry-run
  immich-janitor duplicates delete --keep largest --export dupes.csv`,
	Args: cobra.NoArgs,
	RunE: runDuplicatesDelete,
}

var duplicatesDismissCmd = &cobra.Command{
	Use:   "dismiss [GROUP_ID...]",
	Short: "Dismiss duplicate groups without deleting any asset",
	Long: `Tell the server the assets of a duplicate group are not duplicates.
The assets stay in the library; only the group is removed.

Examples:
  immich-janitor duplicates dismiss 6f1c7a52-0d4e-4c59-9a61-3b8f2d7e1a90
  immich-janitor duplicates dismiss --all`,
	RunE: runDuplicatesDismiss,
}

func init() {
	rootCmd.AddCommand(duplicatesCmd)
	duplicatesCmd.AddCommand(duplicatesFindCmd, duplicatesDeleteCmd, duplicatesDismissCmd)

	names := make([]string, len(models.KeepStrategies))
	for i, k := range models.KeepStrategies {
		names[i] = string(k)
	}
	duplicatesDeleteCmd.Flags().StringVarP(&dupKeep, "keep", "k", string(models.KeepOldest),
		"which asset to keep ("+strings.Join(names, "|")+")")
	addPlanFlags(duplicatesDeleteCmd, &dupDryRun, &dupForce, &dupExport)
	duplicatesDismissCmd.Flags().BoolVar(&dupDismissAll, "all", false, "dismiss every duplicate group")
}

func fetchDuplicates(cmd *cobra.Command) ([]models.DuplicateGroup, error) {
	client, err := newClient()
	if err != nil {
		return nil, err
	}
	fmt.Fprintln(cmd.OutOrStdout(), ui.Dim("Searching for duplicates..."))
	groups, err := client.GetDuplicates(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch duplicates: %w", err)
	}
	return groups, nil
}

func runDuplicatesFind(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	groups, err := fetchDuplicates(cmd)
	if err != nil {
		return err
	}
	if len(groups) == 0 {
		fmt.Fprintln(out, ui.Success("No duplicates found! ✨"))
		return nil
	}

	assets := 0
	var wasted int64
	for _, g := range groups {
		assets += g.AssetCount()
		wasted += g.WastedSize()
	}

	fmt.Fprintln(out, ui.Warn(fmt.Sprintf("\nFound %d duplicate groups with %d total assets", len(groups), assets)))
	fmt.Fprintln(out, ui.ErrorStyle.Render(fmt.Sprintf("Potential space savings: %s\n", utils.FormatBytes(wasted))))
	fmt.Fprintln(out, ui.DuplicateTable(groups))
	return nil
}

// planDuplicates splits every group by strategy into kept and removed assets
func planDuplicates(groups []models.DuplicateGroup, strategy models.KeepStrategy) (kept, remove []models.Asset) {
	for _, g := range groups {
		keep, rest, ok := g.Split(strategy)
		if !ok {
			continue
		}
		kept = append(kept, keep)
		remove = append(remove, rest...)
	}
	return kept, remove
}

func runDuplicatesDelete(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	strategy, err := models.ParseKeepStrategy(dupKeep)
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}
	groups, err := fetchDuplicates(cmd)
	if err != nil {
		return err
	}
	if len(groups) == 0 {
		fmt.Fprintln(out, ui.Success("No duplicates found!"))
		return nil
	}

	kept, remove := planDuplicates(groups, strategy)
	if len(remove) == 0 {
		fmt.Fprintln(out, ui.Success("No duplicates to delete!"))
		return nil
	}

	plan := models.NewPlan("delete-duplicates", models.Criteria{Keep: string(strategy)}, remove)
	fmt.Fprintln(out, ui.Warn(fmt.Sprintf("\nFound %d duplicate groups", len(groups))))
	fmt.Fprintln(out, ui.Success(fmt.Sprintf("Will keep %d assets (strategy: %s)", len(kept), strategy)))
	fmt.Fprintln(out, ui.ErrorStyle.Render(fmt.Sprintf("Will delete %d duplicates", plan.Count())))

	console := session.NewConsole(cmd.InOrStdin(), out)
	done, err := applyPlan(cmd, console, plan, applyOptions{
		DryRun:     dupDryRun,
		Force:      dupForce,
		ExportPath: resolveExportPath(dupExport, plan.Action, time.Now()),
		Question:   fmt.Sprintf("Move %d duplicate(s) to trash?", plan.Count()),
	}, func() error {
		if err := client.DeleteAssets(cmd.Context(), plan.IDs(), false); err != nil {
			return fmt.Errorf("failed to delete duplicates: %w", err)
		}
		return nil
	})
	if err != nil || !done {
		return err
	}

	fmt.Fprintln(out, ui.Success(fmt.Sprintf("✓ Successfully deleted %d duplicate assets!", plan.Count())))
	fmt.Fprintf(out, "Space freed: %s\n", utils.FormatBytes(plan.TotalSize))
	fmt.Fprintln(out, ui.Dim("Assets moved to trash. Use 'trash empty' to permanently delete."))
	return nil
}

func runDuplicatesDismiss(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	switch {
	case len(args) == 0 && !dupDismissAll:
		return fmt.Errorf("specify group ids or --all")
	case len(args) > 0 && dupDismissAll:
		return fmt.Errorf("group ids cannot be combined with --all")
	}

	ids := args
	if dupDismissAll {
		groups, err := fetchDuplicates(cmd)
		if err != nil {
			return err
		}
		if len(groups) == 0 {
			fmt.Fprintln(out, ui.Success("No duplicates found! ✨"))
			return nil
		}
		ids = make([]string, len(groups))
		for i, g := range groups {
			ids[i] = g.ID
		}
	}

	client, err := newClient()
	if err != nil {
		return err
	}
	for _, id := range ids {
		if err := client.DeleteDuplicateGroup(cmd.Context(), id); err != nil {
			return fmt.Errorf("failed to dismiss duplicate group %s: %w", id, err)
		}
		utils.Debug("dismissed duplicate group %s", id)
	}

	fmt.Fprintln(out, ui.Success(fmt.Sprintf("Dismissed %d duplicate group(s).", len(ids))))
	return nil
}
