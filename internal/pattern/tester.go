package pattern

import (
	"fmt"
	"io"
	"regexp"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/immich-janitor/immich-janitor/internal/models"
	"github.com/immich-janitor/immich-janitor/internal/utils"
)

// compiledCacheSize bounds the compiled expressions a Tester keeps
const compiledCacheSize = 64

// Result is the outcome of testing a pattern against a corpus
type Result struct {
	Matches []models.Asset // Matching assets in corpus order
	Samples []string       // First SampleLimit matching filenames
}

// Count returns the number of matching assets
func (r Result) Count() int {
	return len(r.Matches)
}

// Tester applies patterns to asset filenames
type Tester struct {
	diag     io.Writer
	compiled *lru.Cache[string, *regexp.Regexp]
}

// NewTester creates a tester that reports invalid patterns to diag.
// A nil diag discards the reports.
func NewTester(diag io.Writer) *Tester {
	if diag == nil {
		diag = io.Discard
	}
	// Only fails for a non-positive size
	cache, _ := lru.New[string, *regexp.Regexp](compiledCacheSize)
	return &Tester{
		diag:     diag,
		compiled: cache,
	}
}

// Compile returns the compiled pattern or an *InvalidPatternError
func (t *Tester) Compile(pattern string) (*regexp.Regexp, error) {
	if re, ok := t.compiled.Get(pattern); ok {
		return re, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, &InvalidPatternError{Pattern: pattern, Cause: err}
	}
	t.compiled.Add(pattern, re)
	return re, nil
}

// Test searches every filename in corpus for pattern. Matching is
// case-sensitive and unanchored unless the pattern carries its own anchors.
// An invalid pattern is reported to the diagnostic writer and yields an
// empty result.
func (t *Tester) Test(pattern string, corpus []models.Asset) Result {
	empty := Result{Matches: []models.Asset{}, Samples: []string{}}

	re, err := t.Compile(pattern)
	if err != nil {
		utils.Debug("pattern test failed: %v", err)
		fmt.Fprintf(t.diag, "Invalid regex: %v\n", err)
		return empty
	}

	result := empty
	for _, asset := range corpus {
		if !re.MatchString(asset.OriginalFileName) {
			continue
		}
		result.Matches = append(result.Matches, asset)
		if len(result.Samples) < SampleLimit {
			result.Samples = append(result.Samples, asset.OriginalFileName)
		}
	}
	return result
}

// Count returns how many assets in corpus match pattern, 0 when invalid
func (t *Tester) Count(pattern string, corpus []models.Asset) int {
	return t.Test(pattern, corpus).Count()
}
