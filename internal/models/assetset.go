package models

import (
	"regexp"
	"sort"
	"time"
)

// AssetSet is the working set of assets a command operates on
type AssetSet struct {
	Assets    []Asset   `json:"assets"`     // Assets in server order
	FetchedAt time.Time `json:"fetched_at"` // When the set was loaded
}

// Summary holds aggregate counts for a set of assets
type Summary struct {
	Total     int        `json:"total"`
	Images    int        `json:"images"`
	Videos    int        `json:"videos"`
	Favorites int        `json:"favorites"`
	Archived  int        `json:"archived"`
	Trashed   int        `json:"trashed"`
	TotalSize int64      `json:"total_size"`
	Span      *TimeRange `json:"span,omitempty"` // Capture time range
}

// ExtensionCount is one row of the per-extension breakdown
type ExtensionCount struct {
	Extension string `json:"extension"`
	Count     int    `json:"count"`
	Size      int64  `json:"size"`
}

// TimelinePoint is one bucket of assets grouped by capture date
type TimelinePoint struct {
	Key   string `json:"key"`   // Formatted period (2024, 2024-01, 2024-01-15)
	Count int    `json:"count"` // Assets in the period
	Size  int64  `json:"size"`  // Bytes in the period
}

// NewAssetSet creates a set over the given assets
func NewAssetSet(assets []Asset) *AssetSet {
	if assets == nil {
		assets = make([]Asset, 0)
	}
	return &AssetSet{
		Assets:    assets,
		FetchedAt: time.Now(),
	}
}

// Len returns the number of assets
func (s *AssetSet) Len() int {
	return len(s.Assets)
}

// FilterPattern returns a new set with the assets whose filename matches re
func (s *AssetSet) FilterPattern(re *regexp.Regexp) *AssetSet {
	if re == nil {
		return s
	}
	filtered := make([]Asset, 0, len(s.Assets))
	for _, a := range s.Assets {
		if re.MatchString(a.OriginalFileName) {
			filtered = append(filtered, a)
		}
	}
	return &AssetSet{Assets: filtered, FetchedAt: s.FetchedAt}
}

// Limit returns a set with at most n assets. n <= 0 means no limit.
func (s *AssetSet) Limit(n int) *AssetSet {
	if n <= 0 || n >= len(s.Assets) {
		return s
	}
	return &AssetSet{Assets: s.Assets[:n], FetchedAt: s.FetchedAt}
}

// IDs returns the asset IDs in order
func (s *AssetSet) IDs() []string {
	ids := make([]string, 0, len(s.Assets))
	for _, a := range s.Assets {
		ids = append(ids, a.ID)
	}
	return ids
}

// TotalSize returns the combined known size of the set
func (s *AssetSet) TotalSize() int64 {
	var total int64
	for _, a := range s.Assets {
		total += a.SizeOrZero()
	}
	return total
}

// Summary computes the library overview
func (s *AssetSet) Summary() Summary {
	var sum Summary
	for _, a := range s.Assets {
		sum.Total++
		sum.TotalSize += a.SizeOrZero()
		if a.IsImage() {
			sum.Images++
		}
		if a.IsVideo() {
			sum.Videos++
		}
		if a.IsFavorite {
			sum.Favorites++
		}
		if a.IsArchived {
			sum.Archived++
		}
		if a.IsTrashed {
			sum.Trashed++
		}
		sum.Span = sum.Span.Extend(a.PhotoTakenAt())
	}
	return sum
}

// DeletedSpan returns the range of deletion times, or nil when none are known
func (s *AssetSet) DeletedSpan() *TimeRange {
	var span *TimeRange
	for _, a := range s.Assets {
		if a.DeletedAt != nil {
			span = span.Extend(*a.DeletedAt)
		}
	}
	return span
}

// ByExtension groups the set by file extension, most common first.
// Ties keep the order in which the extension was first seen.
func (s *AssetSet) ByExtension() []ExtensionCount {
	index := make(map[string]int)
	counts := make([]ExtensionCount, 0)

	for _, a := range s.Assets {
		ext := a.Extension()
		i, ok := index[ext]
		if !ok {
			i = len(counts)
			index[ext] = i
			counts = append(counts, ExtensionCount{Extension: ext})
		}
		counts[i].Count++
		counts[i].Size += a.SizeOrZero()
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}
