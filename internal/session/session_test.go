package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/immich-janitor/immich-janitor/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedReader replays fixed answers, then reports io.EOF
type scriptedReader struct {
	lines []string
	err   error
	reads int
}

func (r *scriptedReader) ReadLine() (string, error) {
	if r.reads >= len(r.lines) {
		if r.err != nil {
			return "", r.err
		}
		return "", io.EOF
	}
	line := r.lines[r.reads]
	r.reads++
	return line, nil
}

// bufferWriter records every line written
type bufferWriter struct {
	lines []string
}

func (w *bufferWriter) WriteLine(line string) {
	w.lines = append(w.lines, line)
}

func (w *bufferWriter) String() string {
	return strings.Join(w.lines, "\n")
}

func script(lines ...string) *scriptedReader {
	return &scriptedReader{lines: lines}
}

func corpus(names ...string) []models.Asset {
	assets := make([]models.Asset, len(names))
	for i, n := range names {
		assets[i] = models.Asset{ID: fmt.Sprintf("id-%d", i), OriginalFileName: n}
	}
	return assets
}

var imgExamples = []string{"IMG_001.jpg", "IMG_002.jpg", "IMG_999.jpg"}

func TestStateString(t *testing.T) {
	assert.Equal(t, "CollectExamples", CollectExamples.String())
	assert.Equal(t, "Cancelled", Cancelled.String())
	assert.Equal(t, "Unknown", State(99).String())
	assert.True(t, Done.Terminal())
	assert.False(t, SelectPattern.Terminal())
}

func TestRun_SelectByIndexWithoutCorpus(t *testing.T) {
	out := &bufferWriter{}
	s := New(script("1"), out, Options{Examples: imgExamples})

	result, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, result.OK())
	assert.Equal(t, `^IMG_\d+\.jpg$`, result.Pattern)
	assert.NotContains(t, out.String(), "Matches")
	assert.NotContains(t, out.String(), "Use this pattern?")
}

func TestRun_PromptsForExamples(t *testing.T) {
	out := &bufferWriter{}
	s := New(script(" IMG_001.jpg, ,IMG_002.jpg ", "2"), out, Options{})

	result, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Done, result.State)
	assert.Equal(t, `.*\.jpg$`, result.Pattern)
	assert.Contains(t, out.String(), "Enter example filenames")
	assert.Contains(t, out.String(), "Analyzed 2 example(s)")
}

func TestRun_CollectExamplesCancels(t *testing.T) {
	tests := []struct {
		name   string
		input  []string
		opts   Options
		reason string
	}{
		{"empty input", []string{""}, Options{}, "no examples"},
		{"single example typed", []string{"IMG_001.jpg"}, Options{}, "at least 2"},
		{"blank examples supplied", []string{"IMG_001.jpg"}, Options{Examples: []string{" ", "IMG_1.jpg"}}, "at least 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &bufferWriter{}
			result, err := New(script(tt.input...), out, tt.opts).Run(context.Background())
			require.NoError(t, err)
			assert.Equal(t, Cancelled, result.State)
			assert.Empty(t, result.Pattern)
			assert.Contains(t, result.Reason, tt.reason)
		})
	}
}

func TestRun_NoSuggestionsCancels(t *testing.T) {
	out := &bufferWriter{}
	result, err := New(script(), out, Options{Examples: []string{"photo", "image"}}).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Cancelled, result.State)
	assert.Contains(t, out.String(), "Could not detect any patterns")
}

func TestRun_CancelToken(t *testing.T) {
	for _, token := range []string{"q", "Q"} {
		result, err := New(script(token), &bufferWriter{}, Options{Examples: imgExamples}).Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, Cancelled, result.State)
	}
}

func TestRun_OutOfRangeReprompts(t *testing.T) {
	in := script("0", "9", "", "3")
	out := &bufferWriter{}

	result, err := New(in, out, Options{Examples: imgExamples}).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, `^IMG_.*`, result.Pattern)
	assert.Equal(t, 4, in.reads)
	assert.Equal(t, 4, strings.Count(out.String(), "Select pattern [1-3]"))
}

func TestRun_CorpusAnnotatesAndConfirms(t *testing.T) {
	lib := corpus("IMG_100.jpg", "IMG_101.jpg", "DSC_001.jpg", "clip.mov")
	out := &bufferWriter{}

	result, err := New(script("1", "y"), out, Options{Examples: imgExamples, Corpus: lib}).Run(context.Background())
	require.NoError(t, err)
	assert.True(t, result.OK())
	assert.Equal(t, 2, result.Matches)

	text := out.String()
	assert.Contains(t, text, "Matches")
	assert.Contains(t, text, "Found 2 matching files")
	assert.Contains(t, text, "✓ IMG_100.jpg")
	assert.Contains(t, text, "Use this pattern? [y/N]:")
}

func TestRun_ConfirmDeclined(t *testing.T) {
	lib := corpus("IMG_100.jpg")

	for _, answer := range []string{"n", "", "nope"} {
		result, err := New(script("1", answer), &bufferWriter{}, Options{Examples: imgExamples, Corpus: lib}).Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, Cancelled, result.State, answer)
	}
}

func TestRun_ZeroMatchesSkipsConfirmation(t *testing.T) {
	lib := corpus("DSC_001.jpg")
	in := script("1")
	out := &bufferWriter{}

	result, err := New(in, out, Options{Examples: imgExamples, Corpus: lib}).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Done, result.State)
	assert.Equal(t, 0, result.Matches)
	assert.NotContains(t, out.String(), "Use this pattern?")
}

func TestRun_CustomPattern(t *testing.T) {
	lib := corpus("VID_1.mp4", "VID_2.mp4", "IMG_1.jpg")

	result, err := New(script(`^VID_`, "yes"), &bufferWriter{}, Options{Examples: imgExamples, Corpus: lib}).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, `^VID_`, result.Pattern)
	assert.Equal(t, 2, result.Matches)
}

func TestRun_InvalidCustomPatternReprompts(t *testing.T) {
	tests := []struct {
		name   string
		corpus []models.Asset
		input  []string
	}{
		{"without corpus", nil, []string{"[invalid(regex", `^IMG_`}},
		{"with corpus", corpus("IMG_1.jpg", "DSC_1.jpg"), []string{"[invalid(regex", `^IMG_`, "y"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &bufferWriter{}
			in := script(tt.input...)

			result, err := New(in, out, Options{Examples: imgExamples, Corpus: tt.corpus}).Run(context.Background())
			require.NoError(t, err)
			assert.Equal(t, Done, result.State)
			assert.Equal(t, `^IMG_`, result.Pattern)
			assert.Equal(t, len(tt.input), in.reads)
			assert.Contains(t, out.String(), "Invalid regex")
			assert.Equal(t, 2, strings.Count(out.String(), "Select pattern ["))
		})
	}
}

func TestRun_InvalidCustomPatternThenCancel(t *testing.T) {
	result, err := New(script("(", "q"), &bufferWriter{}, Options{Examples: imgExamples}).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Cancelled, result.State)
	assert.Empty(t, result.Pattern)
}

func TestRun_EndOfInputCancels(t *testing.T) {
	result, err := New(script(), &bufferWriter{}, Options{Examples: imgExamples}).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Cancelled, result.State)
	assert.Equal(t, "input closed", result.Reason)
}

func TestRun_ReadErrorReturned(t *testing.T) {
	in := &scriptedReader{err: errors.New("terminal gone")}

	result, err := New(in, &bufferWriter{}, Options{Examples: imgExamples}).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "terminal gone")
	assert.Equal(t, Cancelled, result.State)
}

func TestRun_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := New(script("1"), &bufferWriter{}, Options{Examples: imgExamples}).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, Cancelled, result.State)
	assert.Equal(t, "interrupted", result.Reason)
}

func TestConsole(t *testing.T) {
	var out strings.Builder
	c := NewConsole(strings.NewReader("first\r\nsecond"), &out)

	line, err := c.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "first", line)

	line, err = c.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "second", line)

	_, err = c.ReadLine()
	assert.ErrorIs(t, err, io.EOF)

	c.WriteLine("hello")
	assert.Equal(t, "hello\n", out.String())
}

func TestConfirmPrompt(t *testing.T) {
	tests := []struct {
		input []string
		want  bool
	}{
		{[]string{"y"}, true},
		{[]string{" YES "}, true},
		{[]string{"n"}, false},
		{[]string{""}, false},
		{nil, false},
	}

	for _, tt := range tests {
		out := &bufferWriter{}
		got, err := ConfirmPrompt(script(tt.input...), out, "Delete 3 assets?")
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.input)
		assert.Equal(t, []string{"Delete 3 assets? [y/N]:"}, out.lines)
	}
}
