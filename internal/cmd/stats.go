package cmd

import (
	"fmt"

	"github.com/immich-janitor/immich-janitor/internal/models"
	"github.com/immich-janitor/immich-janitor/internal/parser"
	"github.com/immich-janitor/immich-janitor/internal/utils"
	"github.com/immich-janitor/immich-janitor/ui"
	"github.com/immich-janitor/immich-janitor/ui/timeline"
	"github.com/spf13/cobra"
)

var (
	statsGroupBy string
	statsBins    int
)

// statsCmd groups the library statistics commands
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show library statistics",
}

var statsOverviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Counts, sizes and the capture date range",
	Args:  cobra.NoArgs,
	RunE:  runStatsOverview,
}

var statsByTypeCmd = &cobra.Command{
	Use:   "by-type",
	Short: "Breakdown by file extension",
	Args:  cobra.NoArgs,
	RunE:  runStatsByType,
}

var statsByDateCmd = &cobra.Command{
	Use:   "by-date",
	Short: "Asset counts per capture period",
	Long: `Show how many assets were taken per year, month or day.

With --bins the capture range is instead split into that many equal
periods.

Examples:
  immich-janitor stats by-date
  immich-janitor stats by-date --group-by year
  immich-janitor stats by-date --bins 12`,
	Args: cobra.NoArgs,
	RunE: runStatsByDate,
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.AddCommand(statsOverviewCmd, statsByTypeCmd, statsByDateCmd)

	statsByDateCmd.Flags().StringVarP(&statsGroupBy, "group-by", "g", string(parser.GroupByMonth), "period: year, month or day")
	statsByDateCmd.Flags().IntVar(&statsBins, "bins", 0, "split the capture range into this many equal periods")
}

func fetchLibrary(cmd *cobra.Command) ([]models.Asset, error) {
	client, err := newClient()
	if err != nil {
		return nil, err
	}
	return fetchCorpus(cmd.Context(), cmd.OutOrStdout(), client)
}

// overviewRows builds the rows of the library overview table
func overviewRows(sum models.Summary) []ui.KeyValue {
	rows := []ui.KeyValue{
		{Key: "Total Assets", Value: fmt.Sprintf("%d", sum.Total)},
		{Key: "Total Size", Value: utils.FormatBytes(sum.TotalSize)},
		{Key: "Images", Value: percent(sum.Images, sum.Total)},
		{Key: "Videos", Value: percent(sum.Videos, sum.Total)},
		{Key: "Favorites", Value: fmt.Sprintf("%d", sum.Favorites)},
		{Key: "Archived", Value: fmt.Sprintf("%d", sum.Archived)},
		{Key: "Trashed", Value: fmt.Sprintf("%d", sum.Trashed)},
	}

	if sum.Span != nil {
		rows = append(rows,
			ui.KeyValue{Key: "Oldest Photo", Value: sum.Span.Start.Format("2006-01-02")},
			ui.KeyValue{Key: "Newest Photo", Value: sum.Span.End.Format("2006-01-02")},
		)
		if days := sum.Span.Days(); days > 0 {
			rows = append(rows,
				ui.KeyValue{Key: "Time Span", Value: fmt.Sprintf("%d days", days)},
				ui.KeyValue{Key: "Avg per Day", Value: fmt.Sprintf("%.1f", float64(sum.Total)/float64(days))},
			)
		}
	}
	return rows
}

func runStatsOverview(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	assets, err := fetchLibrary(cmd)
	if err != nil {
		return err
	}
	if len(assets) == 0 {
		fmt.Fprintln(out, ui.Warn("No assets found."))
		return nil
	}

	fmt.Fprintln(out, ui.Title("Library Overview"))
	fmt.Fprintln(out, ui.KeyValueTable(overviewRows(models.NewAssetSet(assets).Summary())))
	return nil
}

func runStatsByType(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	assets, err := fetchLibrary(cmd)
	if err != nil {
		return err
	}
	if len(assets) == 0 {
		fmt.Fprintln(out, ui.Warn("No assets found."))
		return nil
	}

	counts := models.NewAssetSet(assets).ByExtension()
	fmt.Fprintln(out, ui.Title("Assets by Type"))
	fmt.Fprintln(out, ui.ExtensionTable(counts, len(assets)))
	fmt.Fprintf(out, "\nTotal types: %d\n", len(counts))
	return nil
}

func runStatsByDate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	group, err := parser.ParseGroupBy(statsGroupBy)
	if err != nil {
		return err
	}
	if statsBins < 0 {
		return fmt.Errorf("--bins must not be negative")
	}

	assets, err := fetchLibrary(cmd)
	if err != nil {
		return err
	}
	if len(assets) == 0 {
		fmt.Fprintln(out, ui.Warn("No assets found."))
		return nil
	}

	title := fmt.Sprintf("Assets by %s", group)
	var points []models.TimelinePoint
	if statsBins > 0 {
		points = parser.BuildBinnedTimeline(assets, statsBins)
		title = fmt.Sprintf("Assets in %d periods", statsBins)
	} else {
		points = parser.BuildTimeline(assets, group)
	}

	fmt.Fprintln(out, timeline.Render(points, timeline.Options{Title: title, ShowSize: true}))
	fmt.Fprintf(out, "\nTotal periods: %d\n", len(points))
	return nil
}
