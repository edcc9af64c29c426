package cmd

import (
	"errors"
	"fmt"

	"github.com/immich-janitor/immich-janitor/internal/pattern"
	"github.com/immich-janitor/immich-janitor/internal/presets"
	"github.com/immich-janitor/immich-janitor/ui"
	"github.com/spf13/cobra"
)

var (
	suggestTest        bool
	suggestMax         int
	suggestMinFreq     int
	presetDescription  string
	pickerExamples     string
	pickerExamplesFrom string
	pickerDepth        int
	pickerExt          string
)

// patternCmd groups the pattern tools
var patternCmd = &cobra.Command{
	Use:   "pattern",
	Short: "Build, test and save filename patterns",
	Long: `Tools for building filename regexes from examples.

Examples:
  immich-janitor pattern suggest IMG_001.jpg IMG_002.jpg DSC_0001.jpg
  immich-janitor pattern test '^IMG_\d+\.jpg$'
  immich-janitor pattern explain '^(IMG_|DSC_)\d+\.jpg$'
  immich-janitor pattern save camera '^(IMG_|DSC_)\d+\.jpg$'`,
}

var patternSuggestCmd = &cobra.Command{
	Use:   "suggest EXAMPLES...",
	Short: "Suggest regexes that match example filenames",
	Long: `Analyze example filenames and print ranked regex suggestions.

Examples may be separate arguments or comma-separated. With --test every
suggestion is counted against the library.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPatternSuggest,
}

var patternTestCmd = &cobra.Command{
	Use:   "test PATTERN",
	Short: "Count library assets matching a regex",
	Args:  cobra.ExactArgs(1),
	RunE:  runPatternTest,
}

var patternExplainCmd = &cobra.Command{
	Use:   "explain PATTERN",
	Short: "Describe a regex in plain English",
	Args:  cobra.ExactArgs(1),
	RunE:  runPatternExplain,
}

var patternSaveCmd = &cobra.Command{
	Use:   "save NAME PATTERN",
	Short: "Save a pattern for later use with --preset",
	Args:  cobra.ExactArgs(2),
	RunE:  runPatternSave,
}

var patternListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved patterns",
	Args:  cobra.NoArgs,
	RunE:  runPatternList,
}

var patternRemoveCmd = &cobra.Command{
	Use:   "remove NAME",
	Short: "Remove a saved pattern",
	Args:  cobra.ExactArgs(1),
	RunE:  runPatternRemove,
}

var patternTUICmd = &cobra.Command{
	Use:   "tui",
	Short: "Pick a pattern in the full-screen picker and print it",
	Long: `Start the interactive picker over suggestions built from examples.

The picker shows live match counts against the library, a preview of
matching filenames and accepts a custom regex. The chosen pattern is
printed on exit.

Examples:
  immich-janitor pattern tui --examples "IMG_001.jpg,IMG_002.jpg"
  immich-janitor pattern tui --examples-from ~/Downloads/junk`,
	Args: cobra.NoArgs,
	RunE: runPatternTUI,
}

func init() {
	rootCmd.AddCommand(patternCmd)
	patternCmd.AddCommand(patternSuggestCmd, patternTestCmd, patternExplainCmd,
		patternSaveCmd, patternListCmd, patternRemoveCmd, patternTUICmd)

	patternSuggestCmd.Flags().BoolVarP(&suggestTest, "test", "t", false, "count matches in the library for each suggestion")
	patternSuggestCmd.Flags().IntVar(&suggestMax, "max", pattern.MaxSuggestions, "maximum number of suggestions")
	patternSuggestCmd.Flags().IntVar(&suggestMinFreq, "min-frequency", pattern.MinFrequencyPercent, "percent of examples a prefix or extension must appear in")
	patternSaveCmd.Flags().StringVarP(&presetDescription, "description", "d", "", "what the pattern is for")
	patternTUICmd.Flags().StringVarP(&pickerExamples, "examples", "e", "", "comma-separated example filenames")
	patternTUICmd.Flags().StringVar(&pickerExamplesFrom, "examples-from", "", "directory to take example filenames from")
	addScanFlags(patternTUICmd, &pickerDepth, &pickerExt)
}

func runPatternSuggest(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	examples := splitExamples(args...)

	if suggestMax < 1 {
		return fmt.Errorf("--max must be at least 1")
	}
	if suggestMinFreq < 1 || suggestMinFreq > 100 {
		return fmt.Errorf("--min-frequency must be between 1 and 100")
	}

	analyzer := pattern.NewAnalyzer(
		pattern.WithMaxSuggestions(suggestMax),
		pattern.WithMinFrequencyPercent(suggestMinFreq),
	)
	suggestions, err := analyzer.Analyze(examples)
	if err != nil {
		return err
	}
	if len(suggestions) == 0 {
		fmt.Fprintln(out, ui.Warn("Could not detect any patterns. Try different examples."))
		return nil
	}

	var counts []int
	if suggestTest {
		client, err := newClient()
		if err != nil {
			return err
		}
		corpus, err := fetchCorpus(cmd.Context(), out, client)
		if err != nil {
			return err
		}
		tester := pattern.NewTester(nil)
		counts = make([]int, len(suggestions))
		for i, s := range suggestions {
			counts[i] = tester.Count(s.Pattern, corpus)
		}
	}

	fmt.Fprintf(out, "Analyzed %d example(s)\n", len(examples))
	fmt.Fprintln(out, ui.SuggestionTable(suggestions, counts))
	return nil
}

func runPatternTest(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	tester := pattern.NewTester(out)

	if _, err := tester.Compile(args[0]); err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}
	corpus, err := fetchCorpus(cmd.Context(), out, client)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Testing pattern: %s\n", args[0])
	result := tester.Test(args[0], corpus)
	fmt.Fprintln(out, ui.Success(fmt.Sprintf("Found %d matching files", result.Count())))

	if len(result.Samples) > 0 {
		fmt.Fprintf(out, "Sample matches (first %d):\n", pattern.SampleLimit)
		for _, name := range result.Samples {
			fmt.Fprintln(out, "  ✓ "+name)
		}
	}
	return nil
}

func runPatternExplain(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, pattern.Explain(args[0]))

	var invalid *pattern.InvalidPatternError
	if _, err := pattern.NewTester(nil).Compile(args[0]); errors.As(err, &invalid) {
		fmt.Fprintln(out, ui.Warn("Note: "+invalid.Error()))
	}
	return nil
}

func runPatternSave(cmd *cobra.Command, args []string) error {
	name, expr := args[0], args[1]

	lib, err := presets.Load(appFs, appConfig.PresetsPath)
	if err != nil {
		return fmt.Errorf("failed to load presets: %w", err)
	}
	if err := lib.Add(name, expr, presetDescription); err != nil {
		return err
	}
	if err := lib.Save(appFs, appConfig.PresetsPath); err != nil {
		return fmt.Errorf("failed to save presets: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("Saved pattern %q to %s", name, appConfig.PresetsPath)))
	return nil
}

func runPatternList(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	lib, err := presets.Load(appFs, appConfig.PresetsPath)
	if err != nil {
		return fmt.Errorf("failed to load presets: %w", err)
	}
	if lib.Len() == 0 {
		fmt.Fprintln(out, ui.Dim("No saved patterns. Add one with 'pattern save NAME PATTERN'."))
		return nil
	}

	items := make([]presets.Preset, 0, lib.Len())
	for _, name := range lib.Names() {
		p, _ := lib.Get(name)
		items = append(items, p)
	}
	fmt.Fprintln(out, ui.PresetTable(items))
	return nil
}

func runPatternRemove(cmd *cobra.Command, args []string) error {
	lib, err := presets.Load(appFs, appConfig.PresetsPath)
	if err != nil {
		return fmt.Errorf("failed to load presets: %w", err)
	}
	if err := lib.Remove(args[0]); err != nil {
		return err
	}
	if err := lib.Save(appFs, appConfig.PresetsPath); err != nil {
		return fmt.Errorf("failed to save presets: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("Removed pattern %q", args[0])))
	return nil
}

func runPatternTUI(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	examples, err := collectExamples(builderOptions{
		Examples:      pickerExamples,
		ExamplesFrom:  pickerExamplesFrom,
		ExamplesDepth: pickerDepth,
		ExamplesExt:   pickerExt,
	})
	if err != nil {
		return err
	}
	if len(examples) < pattern.MinExamples {
		return pattern.ErrInsufficientExamples
	}

	client, err := newClient()
	if err != nil {
		return err
	}
	corpus, err := fetchCorpus(cmd.Context(), out, client)
	if err != nil {
		return err
	}

	chosen, ok, err := runPicker(cmd.InOrStdin(), out, examples, corpus)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(out, ui.Warn("Pattern selection cancelled."))
		return nil
	}
	fmt.Fprintln(out, chosen)
	return nil
}
