package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DeltaUnit is a suffix accepted by ParseTimeDelta
type DeltaUnit struct {
	Suffix string        // Trailing letter, lower case
	Name   string        // Human-readable name
	Unit   time.Duration // Length of one unit
}

// deltaUnits are the accepted suffixes
var deltaUnits = []DeltaUnit{
	{Suffix: "d", Name: "days", Unit: 24 * time.Hour},
	{Suffix: "h", Name: "hours", Unit: time.Hour},
	{Suffix: "m", Name: "minutes", Unit: time.Minute},
}

var deltaRegex = regexp.MustCompile(`^(\d+)([a-z])$`)

// TimeDeltaError reports an unparseable time delta
type TimeDeltaError struct {
	Input string
	Cause error
}

func (e *TimeDeltaError) Error() string {
	return fmt.Sprintf("invalid time format: %q. Use format like '30d', '24h', '60m'", e.Input)
}

// Unwrap returns the number parsing error, if any
func (e *TimeDeltaError) Unwrap() error {
	return e.Cause
}

// ParseTimeDelta parses an age such as "30d", "24h" or "60m". Surrounding
// whitespace and letter case are ignored.
func ParseTimeDelta(s string) (time.Duration, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))

	m := deltaRegex.FindStringSubmatch(normalized)
	if m == nil {
		return 0, &TimeDeltaError{Input: s}
	}

	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, &TimeDeltaError{Input: s, Cause: err}
	}

	for _, u := range deltaUnits {
		if u.Suffix == m[2] {
			if n > int64(1<<63-1)/int64(u.Unit) {
				return 0, &TimeDeltaError{Input: s, Cause: fmt.Errorf("%d %s overflows", n, u.Name)}
			}
			return time.Duration(n) * u.Unit, nil
		}
	}
	return 0, &TimeDeltaError{Input: s}
}

// Cutoff returns the instant d before now
func Cutoff(d time.Duration, now time.Time) time.Time {
	return now.Add(-d)
}

// IsOlderThan reports whether t lies more than d before now
func IsOlderThan(t time.Time, d time.Duration, now time.Time) bool {
	return t.Before(Cutoff(d, now))
}
