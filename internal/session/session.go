// Package session drives the interactive pattern builder: collect example
// filenames, suggest patterns, let the user pick or type one, preview it
// against the library and confirm.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/immich-janitor/immich-janitor/internal/models"
	"github.com/immich-janitor/immich-janitor/internal/pattern"
	"github.com/immich-janitor/immich-janitor/internal/utils"
	"github.com/immich-janitor/immich-janitor/ui"
)

// CancelToken aborts the session at the selection prompt
const CancelToken = "q"

// Options configures a session
type Options struct {
	Examples []string       // Pre-supplied examples; prompted for when empty
	Corpus   []models.Asset // Library to test against; nil skips testing
	Analyzer *pattern.Analyzer
}

// Result is the terminal outcome of a session
type Result struct {
	State   State  // Done or Cancelled
	Pattern string // Selected pattern when Done
	Matches int    // Corpus matches of the selected pattern, when tested
	Reason  string // Why the session was cancelled
}

// OK reports whether a pattern was selected
func (r Result) OK() bool {
	return r.State == Done
}

// Session is a single run of the pattern builder. It is not reusable.
type Session struct {
	in   LineReader
	out  LineWriter
	opts Options

	analyzer *pattern.Analyzer
	tester   *pattern.Tester

	state       State
	examples    []string
	suggestions []pattern.Suggestion
	counts      []int
	selected    string
	tested      pattern.Result
	reason      string
}

// New creates a session reading from in and writing to out
func New(in LineReader, out LineWriter, opts Options) *Session {
	analyzer := opts.Analyzer
	if analyzer == nil {
		analyzer = pattern.NewAnalyzer()
	}
	return &Session{
		in:       in,
		out:      out,
		opts:     opts,
		analyzer: analyzer,
		tester:   pattern.NewTester(lineWriterAdapter{w: out}),
		state:    CollectExamples,
	}
}

// State returns the current state
func (s *Session) State() State {
	return s.state
}

func (s *Session) hasCorpus() bool {
	return len(s.opts.Corpus) > 0
}

// Run advances the session until it is Done or Cancelled. End of input and
// context cancellation both end in Cancelled with a nil error; other read
// failures are returned.
func (s *Session) Run(ctx context.Context) (Result, error) {
	s.out.WriteLine(ui.Title("Interactive Regex Builder"))

	for !s.state.Terminal() {
		if err := ctx.Err(); err != nil {
			s.cancel("interrupted")
			break
		}

		utils.Debug("session state %s", s.state)
		next, err := s.step()
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.cancel("input closed")
				break
			}
			return Result{State: Cancelled, Reason: err.Error()}, fmt.Errorf("failed to read input: %w", err)
		}
		s.state = next
	}

	result := Result{State: s.state, Reason: s.reason}
	if s.state == Done {
		result.Pattern = s.selected
		result.Matches = s.tested.Count()
	}
	return result, nil
}

func (s *Session) step() (State, error) {
	switch s.state {
	case CollectExamples:
		return s.collectExamples()
	case Analyze:
		return s.analyze()
	case DisplaySuggestions:
		return s.displaySuggestions()
	case SelectPattern:
		return s.selectPattern()
	case TestAgainstCorpus:
		return s.testAgainstCorpus()
	case Confirm:
		return s.confirm()
	}
	return s.state, nil
}

func (s *Session) cancel(reason string) {
	s.state = Cancelled
	s.reason = reason
}

func (s *Session) collectExamples() (State, error) {
	examples := nonBlank(s.opts.Examples)

	if len(examples) == 0 {
		s.out.WriteLine("Enter example filenames (comma-separated):")
		s.out.WriteLine(ui.Dim("Example: IMG_001.jpg, IMG_002.jpg, DSC_1234.jpg"))
		line, err := Prompt(s.in, s.out, ">")
		if err != nil {
			return s.state, err
		}
		if line == "" {
			s.out.WriteLine(ui.Warn("No examples provided. Cancelled."))
			s.reason = "no examples"
			return Cancelled, nil
		}
		examples = nonBlank(strings.Split(line, ","))
	}

	if len(examples) < pattern.MinExamples {
		s.out.WriteLine(ui.Warn("Please provide at least 2 examples."))
		s.reason = pattern.ErrInsufficientExamples.Error()
		return Cancelled, nil
	}

	s.examples = examples
	return Analyze, nil
}

func (s *Session) analyze() (State, error) {
	suggestions, err := s.analyzer.Analyze(s.examples)
	if err != nil {
		s.out.WriteLine(ui.Warn(err.Error()))
		s.reason = err.Error()
		return Cancelled, nil
	}
	if len(suggestions) == 0 {
		s.out.WriteLine(ui.Warn("Could not detect any patterns. Try different examples."))
		s.reason = pattern.ErrNoSuggestions.Error()
		return Cancelled, nil
	}

	s.suggestions = suggestions
	return DisplaySuggestions, nil
}

func (s *Session) displaySuggestions() (State, error) {
	s.out.WriteLine(fmt.Sprintf("Analyzed %d example(s)", len(s.examples)))

	s.counts = nil
	if s.hasCorpus() {
		s.counts = make([]int, len(s.suggestions))
		for i, sug := range s.suggestions {
			s.counts[i] = s.tester.Count(sug.Pattern, s.opts.Corpus)
		}
	}

	s.out.WriteLine(ui.SuggestionTable(s.suggestions, s.counts))
	return SelectPattern, nil
}

func (s *Session) selectPattern() (State, error) {
	question := fmt.Sprintf("Select pattern [1-%d] or enter your own regex (%s to cancel):", len(s.suggestions), CancelToken)

	for {
		choice, err := Prompt(s.in, s.out, question)
		if err != nil {
			return s.state, err
		}

		switch {
		case choice == "":
			continue
		case strings.EqualFold(choice, CancelToken):
			s.reason = "cancelled by user"
			return Cancelled, nil
		case isDigits(choice):
			n, err := strconv.Atoi(choice)
			if err != nil || n < 1 || n > len(s.suggestions) {
				continue
			}
			s.selected = s.suggestions[n-1].Pattern
		default:
			if _, err := s.tester.Compile(choice); err != nil {
				s.out.WriteLine(ui.Warn(fmt.Sprintf("Invalid regex: %v", errors.Unwrap(err))))
				continue
			}
			s.selected = choice
		}
		break
	}

	if s.hasCorpus() {
		return TestAgainstCorpus, nil
	}
	return Done, nil
}

func (s *Session) testAgainstCorpus() (State, error) {
	s.out.WriteLine(fmt.Sprintf("Testing pattern: %s", s.selected))

	s.tested = s.tester.Test(s.selected, s.opts.Corpus)
	s.out.WriteLine(ui.Success(fmt.Sprintf("Found %d matching files", s.tested.Count())))

	if len(s.tested.Samples) > 0 {
		s.out.WriteLine(fmt.Sprintf("Sample matches (first %d):", pattern.SampleLimit))
		for _, name := range s.tested.Samples {
			s.out.WriteLine("  ✓ " + name)
		}
	}
	return Confirm, nil
}

func (s *Session) confirm() (State, error) {
	if s.tested.Count() == 0 {
		return Done, nil
	}

	ok, err := ConfirmPrompt(s.in, s.out, "Use this pattern?")
	if err != nil {
		return s.state, err
	}
	if !ok {
		s.reason = "pattern rejected"
		return Cancelled, nil
	}
	return Done, nil
}

func nonBlank(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
