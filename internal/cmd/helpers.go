package cmd

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/immich-janitor/immich-janitor/internal/export"
	"github.com/immich-janitor/immich-janitor/internal/models"
	"github.com/immich-janitor/immich-janitor/internal/parser"
	"github.com/immich-janitor/immich-janitor/internal/session"
	"github.com/immich-janitor/immich-janitor/internal/utils"
	"github.com/immich-janitor/immich-janitor/ui"
	"github.com/spf13/cobra"
)

// previewLimit caps the rows shown before a destructive action
const previewLimit = 20

// applyOptions controls how a plan is previewed and executed
type applyOptions struct {
	DryRun     bool
	Force      bool   // Skip the confirmation prompt
	ExportPath string // Write the plan here before acting
	Question   string // Confirmation question
	Warning    string // Printed in red before the question
	Table      func([]models.Asset) string
}

// applyPlan previews plan, optionally exports it, asks for confirmation and
// runs execute. It reports whether execute ran.
func applyPlan(cmd *cobra.Command, console *session.Console, plan *models.Plan, opts applyOptions, execute func() error) (bool, error) {
	out := cmd.OutOrStdout()

	table := opts.Table
	if table == nil {
		table = ui.AssetTable
	}
	printPreview(out, plan, table)

	if opts.ExportPath != "" {
		if err := exportPlan(out, plan, opts.ExportPath); err != nil {
			return false, err
		}
	}

	if opts.DryRun {
		fmt.Fprintln(out, ui.Dim(fmt.Sprintf("\nDry run - no assets were changed (%s).", plan.Action)))
		return false, nil
	}

	if !opts.Force {
		if opts.Warning != "" {
			fmt.Fprintln(out, ui.ErrorStyle.Render(opts.Warning))
		}
		ok, err := session.ConfirmPrompt(console, console, opts.Question)
		if err != nil {
			return false, fmt.Errorf("failed to read confirmation: %w", err)
		}
		if !ok {
			fmt.Fprintln(out, ui.Warn("Cancelled."))
			return false, nil
		}
	}

	utils.Info("%s: %d asset(s), %s", plan.Action, plan.Count(), utils.FormatBytes(plan.TotalSize))
	if err := execute(); err != nil {
		utils.Error("%s failed: %v", plan.Action, err)
		return false, err
	}
	return true, nil
}

// printPreview shows at most previewLimit assets of the plan
func printPreview(out io.Writer, plan *models.Plan, table func([]models.Asset) string) {
	sample := plan.Sample(previewLimit)
	fmt.Fprintf(out, "\nSample (showing %d of %d):\n", len(sample), plan.Count())
	fmt.Fprintln(out, table(sample))
	if rest := plan.Count() - len(sample); rest > 0 {
		fmt.Fprintln(out, ui.Dim(fmt.Sprintf("... and %d more", rest)))
	}
	fmt.Fprintf(out, "Total size: %s\n", utils.FormatBytes(plan.TotalSize))
}

// exportPlan writes the plan to path and prints where it went
func exportPlan(out io.Writer, plan *models.Plan, path string) error {
	if err := export.ValidateExportPath(path); err != nil {
		return err
	}
	summary, err := export.NewService(appFs).Export(plan, export.Options{
		DestinationPath: path,
		Overwrite:       true,
	})
	if err != nil {
		return fmt.Errorf("failed to export plan: %w", err)
	}
	fmt.Fprintln(out, ui.Success(fmt.Sprintf("Exported %d asset(s) as %s to %s",
		summary.AssetCount, summary.Format, summary.DestinationPath)))
	return nil
}

// compilePattern validates a user supplied regex
func compilePattern(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	return re, nil
}

// filterByPattern keeps the assets whose filename matches pattern.
// An empty pattern keeps everything.
func filterByPattern(assets []models.Asset, pattern string) ([]models.Asset, error) {
	if pattern == "" {
		return assets, nil
	}
	re, err := compilePattern(pattern)
	if err != nil {
		return nil, err
	}
	return models.NewAssetSet(assets).FilterPattern(re).Assets, nil
}

// filterOlderThan keeps trashed assets deleted more than olderThan ago.
// An empty olderThan keeps everything.
func filterOlderThan(assets []models.Asset, olderThan string, now time.Time) ([]models.Asset, error) {
	if olderThan == "" {
		return assets, nil
	}
	delta, err := parser.ParseTimeDelta(olderThan)
	if err != nil {
		return nil, err
	}

	old := make([]models.Asset, 0, len(assets))
	for _, a := range assets {
		if a.DeletedAt != nil && parser.IsOlderThan(*a.DeletedAt, delta, now) {
			old = append(old, a)
		}
	}
	return old, nil
}

// splitExamples turns "a.jpg, b.jpg" arguments into a flat list
func splitExamples(values ...string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
	}
	return out
}

// percent formats part/total as "n (x.y%)"
func percent(part, total int) string {
	if total == 0 {
		return fmt.Sprintf("%d", part)
	}
	return fmt.Sprintf("%d (%.1f%%)", part, float64(part)/float64(total)*100)
}

// autoExport is the --export value used when the flag is given without a path
const autoExport = "auto"

// addPlanFlags registers the flags shared by every destructive command
func addPlanFlags(c *cobra.Command, dryRun, force *bool, exportPath *string) {
	c.Flags().BoolVar(dryRun, "dry-run", false, "show what would change without changing anything")
	c.Flags().BoolVarP(force, "force", "f", false, "skip the confirmation prompt")
	c.Flags().StringVar(exportPath, "export", "", "write the affected assets to a .json or .csv file first")
	c.Flags().Lookup("export").NoOptDefVal = autoExport
}

// resolveExportPath expands the bare --export flag to a timestamped file name
func resolveExportPath(value, action string, now time.Time) string {
	if value == autoExport {
		return export.GetDefaultExportPath(action, now)
	}
	return value
}
