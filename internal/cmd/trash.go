package cmd

import (
	"fmt"
	"time"

	"github.com/immich-janitor/immich-janitor/internal/export"
	"github.com/immich-janitor/immich-janitor/internal/models"
	"github.com/immich-janitor/immich-janitor/internal/session"
	"github.com/immich-janitor/immich-janitor/internal/utils"
	"github.com/immich-janitor/immich-janitor/ui"
	"github.com/spf13/cobra"
)

var (
	trashListOlderThan string

	restorePattern  string
	restoreAll      bool
	restoreFromPlan string
	restoreDryRun  bool
	restoreForce   bool
	restoreExport  string

	emptyOlderThan string
	emptyAll       bool
	emptyDryRun    bool
	emptyForce     bool
	emptyExport    string
)

// trashCmd groups the trash commands
var trashCmd = &cobra.Command{
	Use:   "trash",
	Short: "Manage trashed assets",
}

var trashListCmd = &cobra.Command{
	Use:   "list",
	Short: "List assets in trash",
	Long: `List assets in trash, optionally only those deleted a while ago.

Examples:
  immich-janitor trash list
  immich-janitor trash list --older-than 30d`,
	Args: cobra.NoArgs,
	RunE: runTrashList,
}

var trashRestoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore assets from trash",
	Long: `Restore trashed assets matching a filename regex, or all of them.

Examples:
  immich-janitor trash restore --pattern '^IMG_2024'
  immich-janitor trash restore --all --dry-run
  immich-janitor trash restore --from-plan delete-20240101-120000.json`,
	Args: cobra.NoArgs,
	RunE: runTrashRestore,
}

var trashEmptyCmd = &cobra.Command{
	Use:   "empty",
	Short: "Permanently delete assets in trash",
	Long: `Permanently delete trashed assets. This cannot be undone.

Examples:
  immich-janitor trash empty --older-than 30d
  immich-janitor trash empty --all --export`,
	Args: cobra.NoArgs,
	RunE: runTrashEmpty,
}

var trashStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show trash statistics",
	Args:  cobra.NoArgs,
	RunE:  runTrashStats,
}

func init() {
	rootCmd.AddCommand(trashCmd)
	trashCmd.AddCommand(trashListCmd, trashRestoreCmd, trashEmptyCmd, trashStatsCmd)

	trashListCmd.Flags().StringVar(&trashListOlderThan, "older-than", "", "only assets deleted longer ago than this (e.g. 30d, 24h)")

	trashRestoreCmd.Flags().StringVarP(&restorePattern, "pattern", "p", "", "restore filenames matching this regex")
	trashRestoreCmd.Flags().BoolVar(&restoreAll, "all", false, "restore everything in trash")
	trashRestoreCmd.Flags().StringVar(&restoreFromPlan, "from-plan", "", "restore the assets listed in an exported .json plan")
	addPlanFlags(trashRestoreCmd, &restoreDryRun, &restoreForce, &restoreExport)

	trashEmptyCmd.Flags().StringVar(&emptyOlderThan, "older-than", "", "only assets deleted longer ago than this (e.g. 30d, 24h)")
	trashEmptyCmd.Flags().BoolVar(&emptyAll, "all", false, "empty the whole trash")
	addPlanFlags(trashEmptyCmd, &emptyDryRun, &emptyForce, &emptyExport)
}

func fetchTrash(cmd *cobra.Command) ([]models.Asset, error) {
	client, err := newClient()
	if err != nil {
		return nil, err
	}
	fmt.Fprintln(cmd.OutOrStdout(), ui.Dim("Fetching trashed assets..."))
	assets, err := client.GetTrashAssets(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch trash: %w", err)
	}
	return assets, nil
}

func runTrashList(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	assets, err := fetchTrash(cmd)
	if err != nil {
		return err
	}
	assets, err = filterOlderThan(assets, trashListOlderThan, time.Now())
	if err != nil {
		return err
	}

	if len(assets) == 0 {
		fmt.Fprintln(out, ui.Success("Trash is empty! ✨"))
		return nil
	}

	set := models.NewAssetSet(assets)
	fmt.Fprintln(out, ui.Warn(fmt.Sprintf("\nFound %d assets in trash", set.Len())))
	fmt.Fprintf(out, "Total size: %s\n\n", utils.FormatBytes(set.TotalSize()))
	fmt.Fprintln(out, ui.TrashTable(assets))
	return nil
}

// restoreCriteria selects trashed assets by pattern, by plan or all of them
type restoreCriteria struct {
	Pattern string
	All     bool
	PlanIDs map[string]bool // From --from-plan
}

func (c restoreCriteria) validate() error {
	if !c.All && c.Pattern == "" && c.PlanIDs == nil {
		return fmt.Errorf("specify --pattern, --from-plan or --all")
	}
	return nil
}

// selectRestore picks the trashed assets to restore
func selectRestore(assets []models.Asset, c restoreCriteria) ([]models.Asset, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}
	if c.All {
		return assets, nil
	}

	if c.PlanIDs != nil {
		kept := make([]models.Asset, 0, len(c.PlanIDs))
		for _, a := range assets {
			if c.PlanIDs[a.ID] {
				kept = append(kept, a)
			}
		}
		assets = kept
	}
	return filterByPattern(assets, c.Pattern)
}

// planIDs reads the asset IDs of an exported JSON plan
func planIDs(path string) (map[string]bool, error) {
	plan, err := export.NewService(appFs).ReadPlan(path)
	if err != nil {
		return nil, err
	}
	ids := make(map[string]bool, plan.Count())
	for _, id := range plan.IDs() {
		ids[id] = true
	}
	return ids, nil
}

func runTrashRestore(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	criteria := restoreCriteria{Pattern: restorePattern, All: restoreAll}
	if restoreFromPlan != "" {
		ids, err := planIDs(restoreFromPlan)
		if err != nil {
			return err
		}
		criteria.PlanIDs = ids
	}
	if err := criteria.validate(); err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}
	assets, err := fetchTrash(cmd)
	if err != nil {
		return err
	}
	if len(assets) == 0 {
		fmt.Fprintln(out, ui.Success("Trash is empty!"))
		return nil
	}

	assets, err = selectRestore(assets, criteria)
	if err != nil {
		return err
	}
	if len(assets) == 0 {
		fmt.Fprintln(out, ui.Warn("No assets matching criteria found in trash."))
		return nil
	}

	plan := models.NewPlan("restore", models.Criteria{Pattern: restorePattern, All: restoreAll}, assets)
	fmt.Fprintln(out, ui.Warn(fmt.Sprintf("\nFound %d asset(s) to restore", plan.Count())))

	console := session.NewConsole(cmd.InOrStdin(), out)
	done, err := applyPlan(cmd, console, plan, applyOptions{
		DryRun:     restoreDryRun,
		Force:      restoreForce,
		ExportPath: resolveExportPath(restoreExport, plan.Action, time.Now()),
		Question:   fmt.Sprintf("Restore %d asset(s)?", plan.Count()),
		Table:      ui.TrashTable,
	}, func() error {
		if err := client.RestoreFromTrash(cmd.Context(), plan.IDs()); err != nil {
			return fmt.Errorf("failed to restore assets: %w", err)
		}
		return nil
	})
	if err != nil || !done {
		return err
	}

	fmt.Fprintln(out, ui.Success(fmt.Sprintf("✓ Successfully restored %d asset(s)!", plan.Count())))
	return nil
}

// selectEmpty picks the trashed assets to delete permanently
func selectEmpty(assets []models.Asset, olderThan string, all bool, now time.Time) ([]models.Asset, error) {
	if !all && olderThan == "" {
		return nil, fmt.Errorf("specify --older-than or --all")
	}
	if all {
		return assets, nil
	}
	return filterOlderThan(assets, olderThan, now)
}

func runTrashEmpty(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	now := time.Now()

	if _, err := selectEmpty(nil, emptyOlderThan, emptyAll, now); err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}
	assets, err := fetchTrash(cmd)
	if err != nil {
		return err
	}
	if len(assets) == 0 {
		fmt.Fprintln(out, ui.Success("Trash is already empty!"))
		return nil
	}

	assets, err = selectEmpty(assets, emptyOlderThan, emptyAll, now)
	if err != nil {
		return err
	}
	if len(assets) == 0 {
		fmt.Fprintln(out, ui.Warn("No assets matching criteria found."))
		return nil
	}

	plan := models.NewPlan("empty-trash", models.Criteria{OlderThan: emptyOlderThan, All: emptyAll, Force: true}, assets)
	fmt.Fprintln(out, ui.ErrorStyle.Render(fmt.Sprintf("\n⚠️  WARNING: This will PERMANENTLY delete %d asset(s)!", plan.Count())))
	fmt.Fprintln(out, ui.Warn(fmt.Sprintf("Space to be freed: %s", utils.FormatBytes(plan.TotalSize))))

	console := session.NewConsole(cmd.InOrStdin(), out)
	done, err := applyPlan(cmd, console, plan, applyOptions{
		DryRun:     emptyDryRun,
		Force:      emptyForce,
		ExportPath: resolveExportPath(emptyExport, plan.Action, now),
		Question:   fmt.Sprintf("Permanently delete %d asset(s)?", plan.Count()),
		Warning:    "THIS CANNOT BE UNDONE!",
		Table:      ui.TrashTable,
	}, func() error {
		// An empty ID list empties the whole trash server side
		var ids []string
		if !emptyAll {
			ids = plan.IDs()
		}
		if err := client.EmptyTrash(cmd.Context(), ids); err != nil {
			return fmt.Errorf("failed to empty trash: %w", err)
		}
		return nil
	})
	if err != nil || !done {
		return err
	}

	fmt.Fprintln(out, ui.Success(fmt.Sprintf("✓ Successfully deleted %d asset(s)!", plan.Count())))
	fmt.Fprintf(out, "Space freed: %s\n", utils.FormatBytes(plan.TotalSize))
	return nil
}

// trashStats builds the rows of the trash statistics table
func trashStats(assets []models.Asset, now time.Time) []ui.KeyValue {
	set := models.NewAssetSet(assets)
	sum := set.Summary()

	rows := []ui.KeyValue{
		{Key: "Total Assets", Value: fmt.Sprintf("%d", sum.Total)},
		{Key: "Total Size", Value: utils.FormatBytes(sum.TotalSize)},
		{Key: "Images", Value: percent(sum.Images, sum.Total)},
		{Key: "Videos", Value: percent(sum.Videos, sum.Total)},
	}

	if span := set.DeletedSpan(); span != nil {
		utils.Debug("trash deletion span %s", span)
		days := int(now.Sub(span.Start).Hours() / 24)
		rows = append(rows,
			ui.KeyValue{Key: "Oldest Deletion", Value: span.Start.Format("2006-01-02")},
			ui.KeyValue{Key: "Newest Deletion", Value: span.End.Format("2006-01-02")},
			ui.KeyValue{Key: "Time Span", Value: fmt.Sprintf("%d days", days)},
		)
	}
	return rows
}

func runTrashStats(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	assets, err := fetchTrash(cmd)
	if err != nil {
		return err
	}
	if len(assets) == 0 {
		fmt.Fprintln(out, ui.Success("Trash is empty! ✨"))
		return nil
	}

	fmt.Fprintln(out, ui.Title("Trash Statistics"))
	fmt.Fprintln(out, ui.KeyValueTable(trashStats(assets, time.Now())))
	return nil
}
