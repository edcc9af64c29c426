package models

import (
	"fmt"
	"time"
)

// TimeRange is the capture or deletion span of a set of assets
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Duration returns the length of the range
func (tr *TimeRange) Duration() time.Duration {
	return tr.End.Sub(tr.Start)
}

// Days returns the number of whole days covered by the range
func (tr *TimeRange) Days() int {
	return int(tr.Duration().Hours() / 24)
}

func (tr *TimeRange) String() string {
	return fmt.Sprintf("%s to %s", tr.Start.Format("2006-01-02"), tr.End.Format("2006-01-02"))
}

// Extend widens the range to include t, creating it when nil
func (tr *TimeRange) Extend(t time.Time) *TimeRange {
	if tr == nil {
		return &TimeRange{Start: t, End: t}
	}
	if t.Before(tr.Start) {
		tr.Start = t
	}
	if t.After(tr.End) {
		tr.End = t
	}
	return tr
}
