package ui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/immich-janitor/immich-janitor/internal/models"
	"github.com/immich-janitor/immich-janitor/internal/pattern"
	"github.com/immich-janitor/immich-janitor/internal/presets"
	"github.com/immich-janitor/immich-janitor/internal/utils"
)

const (
	shortIDWidth  = 8
	filenameWidth = 50
	dateLayout    = "2006-01-02 15:04"
)

// newTable returns a bordered table with the shared header and cell styles.
// Columns listed in rightAligned are right-justified.
func newTable(headers []string, rightAligned ...int) *table.Table {
	right := make(map[int]bool, len(rightAligned))
	for _, col := range rightAligned {
		right[col] = true
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(DimStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return HeaderStyle
			}
			if right[col] {
				return CellStyle.Align(lipgloss.Right)
			}
			return CellStyle
		})
}

// SuggestionTable renders ranked suggestions. counts holds the live match
// count of each suggestion; a nil counts omits the Matches column.
func SuggestionTable(suggestions []pattern.Suggestion, counts []int) string {
	headers := []string{"#", "Pattern", "Description", "Explain"}
	var rightAligned []int
	if counts != nil {
		headers = append(headers, "Matches")
		rightAligned = append(rightAligned, len(headers)-1)
	}

	t := newTable(headers, rightAligned...)
	for i, s := range suggestions {
		row := []string{strconv.Itoa(i + 1), s.Pattern, s.Description, pattern.Explain(s.Pattern)}
		if counts != nil {
			count := 0
			if i < len(counts) {
				count = counts[i]
			}
			row = append(row, strconv.Itoa(count))
		}
		t.Row(row...)
	}
	return t.String()
}

// AssetTable renders the ID, filename, type, size and creation time of assets
func AssetTable(assets []models.Asset) string {
	t := newTable([]string{"ID", "Filename", "Type", "Size", "Created"}, 3)
	for _, a := range assets {
		size, known := a.FileSize()
		t.Row(
			a.ShortID(shortIDWidth),
			Truncate(a.OriginalFileName, filenameWidth),
			a.Type,
			utils.FormatSize(size, known),
			a.CreatedAt.Format(dateLayout),
		)
	}
	return t.String()
}

// TrashTable renders trashed assets with their deletion time
func TrashTable(assets []models.Asset) string {
	t := newTable([]string{"ID", "Filename", "Type", "Size", "Deleted"}, 3)
	for _, a := range assets {
		deleted := "-"
		if a.DeletedAt != nil {
			deleted = a.DeletedAt.Format(dateLayout)
		}
		size, known := a.FileSize()
		t.Row(
			a.ShortID(shortIDWidth),
			Truncate(a.OriginalFileName, filenameWidth),
			a.Type,
			utils.FormatSize(size, known),
			deleted,
		)
	}
	return t.String()
}

// DuplicateTable renders one row per duplicate group
func DuplicateTable(groups []models.DuplicateGroup) string {
	t := newTable([]string{"#", "Files", "Total Size", "Wasted", "Filenames"}, 1, 2, 3)
	for i, g := range groups {
		names := ""
		for j, a := range g.Assets {
			if j > 0 {
				names += ", "
			}
			names += a.OriginalFileName
		}
		t.Row(
			strconv.Itoa(i+1),
			strconv.Itoa(g.AssetCount()),
			utils.FormatBytes(g.TotalSize()),
			utils.FormatBytes(g.WastedSize()),
			Truncate(names, filenameWidth),
		)
	}
	return t.String()
}

// KeyValue is one row of a KeyValueTable
type KeyValue struct {
	Key   string
	Value string
}

// KeyValueTable renders a two-column property table
func KeyValueTable(rows []KeyValue) string {
	t := newTable([]string{"Metric", "Value"}, 1)
	for _, r := range rows {
		t.Row(r.Key, r.Value)
	}
	return t.String()
}

// ExtensionTable renders the per-extension breakdown with the share of total
func ExtensionTable(counts []models.ExtensionCount, total int) string {
	t := newTable([]string{"Extension", "Count", "Share", "Size"}, 1, 2, 3)
	for _, c := range counts {
		share := 0.0
		if total > 0 {
			share = float64(c.Count) * 100 / float64(total)
		}
		t.Row(
			c.Extension,
			strconv.Itoa(c.Count),
			fmt.Sprintf("%.1f%%", share),
			utils.FormatBytes(c.Size),
		)
	}
	return t.String()
}

// PresetTable renders saved patterns with their explanation
func PresetTable(items []presets.Preset) string {
	t := newTable([]string{"Name", "Pattern", "Description", "Created"})
	for _, p := range items {
		created := ""
		if !p.CreatedAt.IsZero() {
			created = p.CreatedAt.Local().Format(dateLayout)
		}
		description := p.Description
		if description == "" {
			description = pattern.Explain(p.Pattern)
		}
		t.Row(p.Name, p.Pattern, Truncate(description, filenameWidth), created)
	}
	return t.String()
}
