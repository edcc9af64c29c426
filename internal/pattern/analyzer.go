package pattern

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var (
	prefixRegex    = regexp.MustCompile(`^([A-Za-z_]+)[_\d]`)
	extensionRegex = regexp.MustCompile(`\.([a-zA-Z0-9]+)$`)
	digitRegex     = regexp.MustCompile(`\d`)
)

// DateShape is a date literal layout recognised in filenames
type DateShape struct {
	Name  string // Display name such as YYYY-MM-DD
	Regex string // Expression matching the shape
}

// dateShapes are checked in this order
var dateShapes = []DateShape{
	{Name: "YYYY-MM-DD", Regex: `\d{4}-\d{2}-\d{2}`},
	{Name: "YYYYMMDD", Regex: `\d{8}`},
	{Name: "YYYY_MM_DD", Regex: `\d{4}_\d{2}_\d{2}`},
}

var compiledDateShapes = func() []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, len(dateShapes))
	for i, shape := range dateShapes {
		compiled[i] = regexp.MustCompile(shape.Regex)
	}
	return compiled
}()

// Analyzer derives ranked pattern suggestions from example filenames
type Analyzer struct {
	minFrequencyPercent int
	maxSuggestions      int
}

// AnalyzerOption configures an Analyzer
type AnalyzerOption func(*Analyzer)

// WithMinFrequencyPercent overrides MinFrequencyPercent
func WithMinFrequencyPercent(percent int) AnalyzerOption {
	return func(a *Analyzer) {
		a.minFrequencyPercent = percent
	}
}

// WithMaxSuggestions overrides MaxSuggestions
func WithMaxSuggestions(n int) AnalyzerOption {
	return func(a *Analyzer) {
		a.maxSuggestions = n
	}
}

// NewAnalyzer creates an analyzer with the default policy. A negative
// suggestion cap is treated as zero.
func NewAnalyzer(opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{
		minFrequencyPercent: MinFrequencyPercent,
		maxSuggestions:      MaxSuggestions,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.maxSuggestions < 0 {
		a.maxSuggestions = 0
	}
	return a
}

// Analyze runs the default analyzer over examples
func Analyze(examples []string) ([]Suggestion, error) {
	return NewAnalyzer().Analyze(examples)
}

// features holds what one analysis pass extracted from the examples
type features struct {
	prefixes   []string
	extensions []string
	hasNumbers bool
	dates      []DateShape
}

// Analyze extracts prefixes, extensions, digits and date shapes from the
// examples and returns at most maxSuggestions unique patterns ordered by
// priority. An empty result with a nil error means nothing was detected.
func (a *Analyzer) Analyze(examples []string) ([]Suggestion, error) {
	if len(examples) < MinExamples {
		return nil, ErrInsufficientExamples
	}

	f := features{
		prefixes:   a.extractPrefixes(examples),
		extensions: a.extractExtensions(examples),
		hasNumbers: hasNumbers(examples),
		dates:      detectDates(examples),
	}

	candidates := synthesize(f, examples)
	return a.rank(candidates), nil
}

// synthesize applies every suggestion rule to the extracted features
func synthesize(f features, examples []string) []Suggestion {
	var out []Suggestion
	add := func(pattern, description string, priority int) {
		if s, ok := newSuggestion(pattern, description, priority, examples); ok {
			out = append(out, s)
		}
	}

	if len(f.prefixes) > 0 && len(f.extensions) > 0 && f.hasNumbers {
		for _, prefix := range f.prefixes {
			for _, ext := range f.extensions {
				add(prefixDigitsExtPattern(prefix, ext),
					fmt.Sprintf("Files starting with %q, followed by numbers, ending with \".%s\"", prefix, ext),
					PriorityPrefixDigitsExt)
			}
		}
	}

	if len(f.prefixes) > 1 && len(f.extensions) > 0 && f.hasNumbers {
		for _, ext := range f.extensions {
			add(anyPrefixDigitsExtPattern(f.prefixes, ext),
				fmt.Sprintf("Files starting with any of: %s, then numbers and \".%s\"", strings.Join(f.prefixes, ", "), ext),
				PriorityAnyPrefixDigitsExt)
		}
	}

	for _, shape := range f.dates {
		add(datePattern(shape),
			fmt.Sprintf("Files containing %s format dates", shape.Name),
			PriorityDate)
	}

	for _, ext := range f.extensions {
		add(extensionPattern(ext),
			fmt.Sprintf("All files ending with \".%s\"", ext),
			PriorityExtension)
	}

	for _, prefix := range f.prefixes {
		add(prefixPattern(prefix),
			fmt.Sprintf("All files starting with %q", prefix),
			PriorityPrefix)
	}

	return out
}

// rank sorts by priority keeping discovery order, drops repeated patterns and truncates
func (a *Analyzer) rank(candidates []Suggestion) []Suggestion {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Priority < candidates[j].Priority
	})

	seen := make(map[string]bool, len(candidates))
	ranked := make([]Suggestion, 0, a.maxSuggestions)
	for _, s := range candidates {
		if len(ranked) >= a.maxSuggestions {
			break
		}
		if seen[s.Pattern] {
			continue
		}
		seen[s.Pattern] = true
		ranked = append(ranked, s)
	}
	return ranked
}

// Pattern templates. Every literal is escaped before it is placed in a template.

func prefixDigitsExtPattern(prefix, ext string) string {
	return fmt.Sprintf(`^%s\d+\.%s$`, regexp.QuoteMeta(prefix), regexp.QuoteMeta(ext))
}

func anyPrefixDigitsExtPattern(prefixes []string, ext string) string {
	return fmt.Sprintf(`^(%s)\d+\.%s$`, strings.Join(quoteAll(prefixes), "|"), regexp.QuoteMeta(ext))
}

func datePattern(shape DateShape) string {
	return ".*" + shape.Regex + ".*"
}

func extensionPattern(ext string) string {
	return fmt.Sprintf(`.*\.%s$`, regexp.QuoteMeta(ext))
}

func prefixPattern(prefix string) string {
	return fmt.Sprintf(`^%s.*`, regexp.QuoteMeta(prefix))
}

func quoteAll(literals []string) []string {
	quoted := make([]string, len(literals))
	for i, l := range literals {
		quoted[i] = regexp.QuoteMeta(l)
	}
	return quoted
}

// extractPrefixes returns the alphabetic/underscore run in front of a digit or
// underscore, for the tokens frequent enough to keep
func (a *Analyzer) extractPrefixes(examples []string) []string {
	var tokens []string
	for _, name := range examples {
		if m := prefixRegex.FindStringSubmatch(name); m != nil {
			tokens = append(tokens, m[1])
		}
	}
	return a.frequent(tokens, len(examples))
}

// extractExtensions returns the lower-cased trailing extensions frequent enough to keep
func (a *Analyzer) extractExtensions(examples []string) []string {
	var tokens []string
	for _, name := range examples {
		if m := extensionRegex.FindStringSubmatch(name); m != nil {
			tokens = append(tokens, strings.ToLower(m[1]))
		}
	}
	return a.frequent(tokens, len(examples))
}

// frequent counts tokens and keeps those reaching the frequency threshold,
// most frequent first and ties in first-seen order
func (a *Analyzer) frequent(tokens []string, total int) []string {
	if len(tokens) == 0 || total == 0 {
		return nil
	}

	counts := make(map[string]int)
	var order []string
	for _, tok := range tokens {
		if counts[tok] == 0 {
			order = append(order, tok)
		}
		counts[tok]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	kept := make([]string, 0, len(order))
	for _, tok := range order {
		if counts[tok]*100 >= total*a.minFrequencyPercent {
			kept = append(kept, tok)
		}
	}
	return kept
}

// hasNumbers reports whether any example contains a decimal digit
func hasNumbers(examples []string) bool {
	for _, name := range examples {
		if digitRegex.MatchString(name) {
			return true
		}
	}
	return false
}

// detectDates returns the date shapes present in at least one example
func detectDates(examples []string) []DateShape {
	var found []DateShape
	for i, re := range compiledDateShapes {
		for _, name := range examples {
			if re.MatchString(name) {
				found = append(found, dateShapes[i])
				break
			}
		}
	}
	return found
}
