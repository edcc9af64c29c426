package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExplain(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
	}{
		{`^IMG_\d+\.jpg$`, `Must start with "IMG_" "jpg" one or more digits a dot at the end`},
		{`.*\.mp4$`, `"mp4" a dot any characters at the end`},
		{`^IMG_.*`, `Must start with "IMG_" any characters`},
		{`\d`, `a digit`},
		{`[a-z]+`, fallbackExplanation},
		{``, fallbackExplanation},
		{`price\$`, `"price"`},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			assert.Equal(t, tt.want, Explain(tt.pattern))
		})
	}
}

func TestExplain_Alternation(t *testing.T) {
	got := Explain(`^(IMG_|DSC_)\d+\.jpg$`)
	assert.Contains(t, got, "OR")
	assert.Contains(t, got, `"IMG_"`)
	assert.Contains(t, got, `"DSC_"`)
}

func TestExplain_SkipsRepetitionCounts(t *testing.T) {
	got := Explain(`.*\d{4}-\d{2}-\d{2}.*`)
	assert.NotContains(t, got, `"4"`)
	assert.Contains(t, got, "a digit")
	assert.Contains(t, got, "any characters")
}
