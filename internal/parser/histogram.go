package parser

import (
	"fmt"
	"sort"
	"time"

	"github.com/immich-janitor/immich-janitor/internal/models"
)

// GroupBy is the period a timeline is bucketed by
type GroupBy string

const (
	GroupByYear  GroupBy = "year"
	GroupByMonth GroupBy = "month"
	GroupByDay   GroupBy = "day"
)

// GroupByValues lists the accepted periods in help order
var GroupByValues = []GroupBy{GroupByYear, GroupByMonth, GroupByDay}

// ParseGroupBy validates a period name
func ParseGroupBy(s string) (GroupBy, error) {
	for _, g := range GroupByValues {
		if string(g) == s {
			return g, nil
		}
	}
	return "", fmt.Errorf("invalid group-by %q (expected year, month or day)", s)
}

// Layout returns the time layout used for bucket keys
func (g GroupBy) Layout() string {
	switch g {
	case GroupByYear:
		return "2006"
	case GroupByDay:
		return "2006-01-02"
	default:
		return "2006-01"
	}
}

// BuildTimeline buckets assets by capture date. Keys sort chronologically
// because every layout is big-endian.
func BuildTimeline(assets []models.Asset, group GroupBy) []models.TimelinePoint {
	layout := group.Layout()
	index := make(map[string]int)
	points := make([]models.TimelinePoint, 0)

	for _, a := range assets {
		key := a.PhotoTakenAt().Format(layout)
		i, ok := index[key]
		if !ok {
			i = len(points)
			index[key] = i
			points = append(points, models.TimelinePoint{Key: key})
		}
		points[i].Count++
		points[i].Size += a.SizeOrZero()
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].Key < points[j].Key
	})
	return points
}

// TimeBin represents a time range for histogram binning
type TimeBin struct {
	Start time.Time
	End   time.Time
}

// CreateTimeBins divides a time range into binCount equal bins
func CreateTimeBins(span *models.TimeRange, binCount int) []TimeBin {
	if span == nil || binCount <= 0 {
		return nil
	}

	binDuration := span.Duration() / time.Duration(binCount)

	bins := make([]TimeBin, binCount)
	currentTime := span.Start

	for i := 0; i < binCount; i++ {
		bins[i].Start = currentTime
		if i == binCount-1 {
			// Last bin goes to the exact end
			bins[i].End = span.End
		} else {
			bins[i].End = currentTime.Add(binDuration)
		}
		currentTime = bins[i].End
	}

	return bins
}

// BuildBinnedTimeline spreads assets over binCount equal bins between the
// oldest and newest capture date. Each bin is half-open except the last,
// which also holds the newest asset.
func BuildBinnedTimeline(assets []models.Asset, binCount int) []models.TimelinePoint {
	if len(assets) == 0 || binCount <= 0 {
		return []models.TimelinePoint{}
	}

	span := models.NewAssetSet(assets).Summary().Span
	bins := CreateTimeBins(span, binCount)

	layout := "2006-01-02"
	if span.Duration() < 72*time.Hour {
		layout = "2006-01-02 15:04"
	}

	points := make([]models.TimelinePoint, len(bins))
	for i, bin := range bins {
		points[i] = models.TimelinePoint{Key: bin.Start.Format(layout)}
	}

	for _, a := range assets {
		t := a.PhotoTakenAt()
		i := sort.Search(len(bins), func(i int) bool {
			return t.Before(bins[i].End)
		})
		if i == len(bins) {
			i = len(bins) - 1
		}
		points[i].Count++
		points[i].Size += a.SizeOrZero()
	}

	return points
}
