package cmd

import (
	"fmt"

	"github.com/immich-janitor/immich-janitor/internal/immich"
	"github.com/immich-janitor/immich-janitor/ui"
	"github.com/spf13/cobra"
)

var (
	listLimit   int
	listPattern string
)

// listCmd represents the list-assets command
var listCmd = &cobra.Command{
	Use:   "list-assets",
	Short: "List assets in the library",
	Long: `List assets, optionally filtered by a filename regex.

The regex is searched anywhere in the original filename and is
case-sensitive unless it carries its own flags, e.g. (?i).

Examples:
  immich-janitor list-assets
  immich-janitor list-assets --limit 20
  immich-janitor list-assets --pattern '^IMG_\d+\.jpg$'`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().IntVarP(&listLimit, "limit", "l", 100, "maximum number of assets to show (0 for all)")
	listCmd.Flags().StringVarP(&listPattern, "pattern", "p", "", "only list filenames matching this regex")
}

func runList(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if listPattern != "" {
		if _, err := compilePattern(listPattern); err != nil {
			return err
		}
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	fmt.Fprintln(out, ui.Dim("Fetching assets..."))
	assets, err := client.GetAllAssets(cmd.Context(), immich.AssetQuery{
		Limit:    listLimit,
		Pattern:  listPattern,
		WithExif: true,
	})
	if err != nil {
		return fmt.Errorf("failed to list assets: %w", err)
	}

	if len(assets) == 0 {
		fmt.Fprintln(out, ui.Warn("No assets found."))
		return nil
	}

	fmt.Fprintln(out, ui.Title(fmt.Sprintf("Assets (%d)", len(assets))))
	fmt.Fprintln(out, ui.AssetTable(assets))
	return nil
}
