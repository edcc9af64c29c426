package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/immich-janitor/immich-janitor/internal/immich"
	"github.com/immich-janitor/immich-janitor/internal/models"
	"github.com/immich-janitor/immich-janitor/internal/pattern"
	"github.com/immich-janitor/immich-janitor/internal/scanner"
	"github.com/immich-janitor/immich-janitor/internal/session"
	"github.com/immich-janitor/immich-janitor/internal/utils"
	"github.com/immich-janitor/immich-janitor/ui"
	"github.com/immich-janitor/immich-janitor/ui/picker"
	"github.com/spf13/cobra"
)

// exampleSampleSize is how many local filenames --examples-from collects
const exampleSampleSize = 50

// builderOptions selects how a pattern is built from examples
type builderOptions struct {
	Examples      string // Comma-separated filenames
	ExamplesFrom  string // Local directory to sample filenames from
	ExamplesDepth int    // Directory levels below ExamplesFrom to scan
	ExamplesExt   string // Comma-separated extensions scanned on top of the media defaults
	TUI           bool   // Use the full-screen picker instead of prompts
}

// addScanFlags registers the flags that tune --examples-from
func addScanFlags(cmd *cobra.Command, depth *int, exts *string) {
	cmd.Flags().IntVar(depth, "examples-depth", scanner.DefaultMaxDepth, "directory levels below --examples-from to scan (0 for the top level only)")
	cmd.Flags().StringVar(exts, "examples-ext", "", "comma-separated extra extensions to treat as media, e.g. tiff,psd")
}

// requested reports whether any builder flag was given
func (o builderOptions) requested() bool {
	return o.Examples != "" || o.ExamplesFrom != "" || o.TUI
}

// collectExamples merges --examples with a sample of --examples-from
func collectExamples(opts builderOptions) ([]string, error) {
	examples := splitExamples(opts.Examples)
	if opts.ExamplesFrom == "" {
		return examples, nil
	}

	sc := scanner.NewExampleScanner(appFs)
	sc.SetMaxDepth(opts.ExamplesDepth)
	for _, ext := range splitExamples(opts.ExamplesExt) {
		sc.AddExtension(ext)
	}
	utils.Debug("scanning %s for %s", opts.ExamplesFrom, strings.Join(sc.SupportedExtensions(), " "))

	names, err := sc.Sample(opts.ExamplesFrom, exampleSampleSize)
	if err != nil {
		return nil, fmt.Errorf("failed to read examples from %s: %w", opts.ExamplesFrom, err)
	}
	utils.Debug("sampled %d example(s) from %s", len(names), opts.ExamplesFrom)
	return append(examples, names...), nil
}

// fetchCorpus loads every asset for pattern testing
func fetchCorpus(ctx context.Context, out io.Writer, client *immich.Client) ([]models.Asset, error) {
	fmt.Fprintln(out, ui.Dim("Fetching assets for pattern matching..."))
	assets, err := client.GetAllAssets(ctx, immich.AssetQuery{
		WithExif: true,
		Progress: func(n int) {
			fmt.Fprintln(out, ui.Dim(fmt.Sprintf("  %d assets loaded", n)))
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assets: %w", err)
	}
	return assets, nil
}

// buildPattern runs the prompt-driven session or the picker. ok is false
// when the user backed out.
func buildPattern(ctx context.Context, console *session.Console, in io.Reader, out io.Writer, corpus []models.Asset, opts builderOptions) (string, bool, error) {
	examples, err := collectExamples(opts)
	if err != nil {
		return "", false, err
	}

	if opts.TUI {
		return runPicker(in, out, examples, corpus)
	}

	result, err := session.New(console, console, session.Options{
		Examples: examples,
		Corpus:   corpus,
	}).Run(ctx)
	if err != nil {
		return "", false, err
	}
	if !result.OK() {
		utils.Debug("pattern builder cancelled: %s", result.Reason)
		return "", false, nil
	}
	return result.Pattern, true, nil
}

// runPicker analyzes examples and lets the user choose in the full-screen picker
func runPicker(in io.Reader, out io.Writer, examples []string, corpus []models.Asset) (string, bool, error) {
	suggestions, err := pattern.Analyze(examples)
	if err != nil {
		return "", false, err
	}
	if len(suggestions) == 0 {
		fmt.Fprintln(out, ui.Warn("Could not detect any patterns. Type one in the picker."))
	}

	model := picker.New(suggestions, corpus)
	program := tea.NewProgram(model, tea.WithInput(in), tea.WithOutput(out), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return "", false, fmt.Errorf("TUI error: %w", err)
	}

	chosen, ok := model.Result()
	return chosen, ok, nil
}
