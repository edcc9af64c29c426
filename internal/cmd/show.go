package cmd

import (
	"fmt"
	"strconv"

	"github.com/immich-janitor/immich-janitor/internal/immich"
	"github.com/immich-janitor/immich-janitor/internal/models"
	"github.com/immich-janitor/immich-janitor/internal/utils"
	"github.com/immich-janitor/immich-janitor/ui"
	"github.com/spf13/cobra"
)

// showCmd represents the show-asset command
var showCmd = &cobra.Command{
	Use:   "show-asset ID",
	Short: "Show details of a single asset",
	Long: `Show the metadata Immich holds for one asset, e.g. an id taken from
list-assets or an exported plan.

Examples:
  immich-janitor show-asset 0b5c2f8e-6a4d-4d1e-9f3a-1c2b3d4e5f60`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	id := args[0]

	client, err := newClient()
	if err != nil {
		return err
	}

	asset, err := client.GetAsset(cmd.Context(), id)
	if err != nil {
		if immich.IsNotFound(err) {
			return fmt.Errorf("asset %s not found", id)
		}
		return fmt.Errorf("failed to fetch asset: %w", err)
	}

	fmt.Fprintln(out, ui.Title(asset.OriginalFileName))
	fmt.Fprintln(out, ui.KeyValueTable(assetDetails(*asset)))
	return nil
}

// assetDetails lists the fields show-asset prints
func assetDetails(a models.Asset) []ui.KeyValue {
	size := "Unknown"
	if n, ok := a.FileSize(); ok {
		size = utils.FormatBytes(n)
	}

	rows := []ui.KeyValue{
		{Key: "ID", Value: a.ID},
		{Key: "Filename", Value: a.OriginalFileName},
		{Key: "Type", Value: a.Type},
		{Key: "Size", Value: size},
		{Key: "Taken", Value: a.PhotoTakenAt().Format("2006-01-02 15:04")},
		{Key: "Uploaded", Value: a.CreatedAt.Format("2006-01-02 15:04")},
		{Key: "Favorite", Value: strconv.FormatBool(a.IsFavorite)},
		{Key: "Archived", Value: strconv.FormatBool(a.IsArchived)},
	}
	if e := a.ExifInfo; e != nil && e.ExifImageWidth > 0 && e.ExifImageHeight > 0 {
		rows = append(rows, ui.KeyValue{Key: "Dimensions", Value: fmt.Sprintf("%dx%d", e.ExifImageWidth, e.ExifImageHeight)})
	}
	if a.DeletedAt != nil {
		rows = append(rows, ui.KeyValue{Key: "Deleted", Value: a.DeletedAt.Format("2006-01-02 15:04")})
	}
	return rows
}
