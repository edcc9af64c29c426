// Package pattern infers filename regular expressions from example names and
// tests them against an asset library.
package pattern

import "regexp"

// Policy constants for suggestion synthesis and testing
const (
	// MinExamples is the smallest example set Analyze accepts.
	MinExamples = 2

	// MinFrequencyPercent is the share of examples a prefix or extension must
	// appear in to be kept. Exactly this share qualifies.
	MinFrequencyPercent = 30

	// MaxSuggestions caps the ranked output of Analyze.
	MaxSuggestions = 5

	// SampleLimit caps the sample filenames returned by Test.
	SampleLimit = 10
)

// Suggestion priorities, most specific first
const (
	PriorityPrefixDigitsExt = iota + 1
	PriorityAnyPrefixDigitsExt
	PriorityDate
	PriorityExtension
	PriorityPrefix
)

// Suggestion is a candidate pattern proposed by the analyzer
type Suggestion struct {
	Pattern     string   // Regular expression, always compilable
	Description string   // Human-readable summary
	Priority    int      // Lower sorts first
	Examples    []string // Input examples the pattern matches
}

// newSuggestion compiles pattern and records which examples it matches.
// It returns false when the pattern does not compile.
func newSuggestion(pattern, description string, priority int, examples []string) (Suggestion, bool) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Suggestion{}, false
	}

	matched := make([]string, 0, len(examples))
	for _, e := range examples {
		if re.MatchString(e) {
			matched = append(matched, e)
		}
	}

	return Suggestion{
		Pattern:     pattern,
		Description: description,
		Priority:    priority,
		Examples:    matched,
	}, true
}
