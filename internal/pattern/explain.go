package pattern

import (
	"strings"
)

// fallbackExplanation is returned when nothing in the pattern is recognised
const fallbackExplanation = "Complex pattern"

// metaChars terminate a literal run
const metaChars = `\[]().*+?{}|`

// Explain produces a best-effort English gloss of pattern for display.
// It recognises anchors, literal text, \d and \d+, escaped dots, .* and
// alternation. It is not a regex parser and must not drive control flow.
func Explain(pattern string) string {
	var parts []string

	rest := pattern
	if strings.HasPrefix(rest, "^") {
		parts = append(parts, "Must start with")
		rest = rest[1:]
	}

	atEnd := false
	if strings.HasSuffix(rest, "$") && !strings.HasSuffix(rest, `\$`) {
		atEnd = true
		rest = rest[:len(rest)-1]
	}

	for _, lit := range literalRuns(rest) {
		parts = append(parts, `"`+lit+`"`)
	}

	if strings.Contains(rest, `\d+`) {
		parts = append(parts, "one or more digits")
	} else if strings.Contains(rest, `\d`) {
		parts = append(parts, "a digit")
	}

	if strings.Contains(rest, `\.`) {
		parts = append(parts, "a dot")
	}

	if strings.Contains(rest, ".*") {
		parts = append(parts, "any characters")
	}

	if strings.Contains(rest, "|") {
		parts = append(parts, "OR")
	}

	if len(parts) == 0 {
		return fallbackExplanation
	}

	explanation := strings.Join(parts, " ")
	if atEnd {
		explanation += " at the end"
	}
	return explanation
}

// literalRuns returns the runs of plain text in pattern. Escape sequences,
// character classes and repetition counts end a run and contribute nothing.
func literalRuns(pattern string) []string {
	var runs []string
	var current strings.Builder

	flush := func() {
		if s := current.String(); strings.TrimSpace(s) != "" {
			runs = append(runs, s)
		}
		current.Reset()
	}

	runes := []rune(pattern)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '\\':
			flush()
			i++ // skip the escaped rune
		case r == '[' || r == '{':
			flush()
			closer := ']'
			if r == '{' {
				closer = '}'
			}
			for i < len(runes) && runes[i] != closer {
				i++
			}
		case strings.ContainsRune(metaChars, r):
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()

	return runs
}
