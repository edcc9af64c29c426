// Package timeline renders asset counts per period as horizontal bars.
package timeline

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/immich-janitor/immich-janitor/internal/models"
	"github.com/immich-janitor/immich-janitor/internal/utils"
)

// DefaultBarWidth is the length of the longest bar
const DefaultBarWidth = 30

// Styles for timeline rendering
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))

	emptyBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("111"))
)

// Options controls rendering
type Options struct {
	Title    string
	BarWidth int  // Defaults to DefaultBarWidth
	ShowSize bool // Append the byte total of each period
}

// Render draws one line per point, scaled to the busiest period
func Render(points []models.TimelinePoint, opts Options) string {
	width := opts.BarWidth
	if width <= 0 {
		width = DefaultBarWidth
	}

	var parts []string
	if opts.Title != "" {
		parts = append(parts, titleStyle.Render(opts.Title))
	}

	if len(points) == 0 {
		parts = append(parts, "No data")
		return strings.Join(parts, "\n")
	}

	maxCount := 0
	labelWidth := 0
	for _, p := range points {
		if p.Count > maxCount {
			maxCount = p.Count
		}
		if len(p.Key) > labelWidth {
			labelWidth = len(p.Key)
		}
	}

	for _, p := range points {
		label := labelStyle.Render(fmt.Sprintf("%-*s", labelWidth, p.Key))
		bar := createBar(barLength(p.Count, maxCount, width), p.Count > 0)

		value := formatNumber(int64(p.Count))
		if opts.ShowSize {
			value = fmt.Sprintf("%s (%s)", value, utils.FormatBytes(p.Size))
		}
		parts = append(parts, fmt.Sprintf("%s %s %s", label, bar, labelStyle.Render(value)))
	}

	parts = append(parts, Summary(points))
	return strings.Join(parts, "\n")
}

// Summary renders the total, the peak and how many periods have assets
func Summary(points []models.TimelinePoint) string {
	total, peak, active := 0, 0, 0
	for _, p := range points {
		total += p.Count
		if p.Count > peak {
			peak = p.Count
		}
		if p.Count > 0 {
			active++
		}
	}
	return statusStyle.Render(fmt.Sprintf("Total: %s | Peak: %s | Active periods: %d/%d",
		formatNumber(int64(total)), formatNumber(int64(peak)), active, len(points)))
}

// barLength scales count to width. Non-empty periods get at least one cell.
func barLength(count, maxCount, width int) int {
	if maxCount == 0 || count <= 0 {
		return 0
	}
	n := count * width / maxCount
	if n == 0 {
		n = 1
	}
	return n
}

func createBar(length int, hasData bool) string {
	if length <= 0 {
		return emptyBarStyle.Render("▏")
	}

	bar := strings.Repeat("█", length)
	if hasData {
		return barStyle.Render(bar)
	}
	return emptyBarStyle.Render(bar)
}

// formatNumber formats large numbers with K/M/B suffixes
func formatNumber(num int64) string {
	if num < 1000 {
		return fmt.Sprintf("%d", num)
	}
	if num < 1000000 {
		return fmt.Sprintf("%.1fK", float64(num)/1000)
	}
	if num < 1000000000 {
		return fmt.Sprintf("%.1fM", float64(num)/1000000)
	}
	return fmt.Sprintf("%.1fB", float64(num)/1000000000)
}
