package models

import (
	"fmt"
	"sort"
)

// KeepStrategy selects which asset of a duplicate group survives
type KeepStrategy string

const (
	KeepOldest  KeepStrategy = "oldest"
	KeepNewest  KeepStrategy = "newest"
	KeepLargest KeepStrategy = "largest"
)

// KeepStrategies lists the accepted strategies in help order
var KeepStrategies = []KeepStrategy{KeepOldest, KeepNewest, KeepLargest}

// ParseKeepStrategy validates a strategy name
func ParseKeepStrategy(s string) (KeepStrategy, error) {
	for _, k := range KeepStrategies {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("invalid keep strategy %q (expected oldest, newest or largest)", s)
}

// DuplicateGroup is a set of assets the server considers duplicates of each other
type DuplicateGroup struct {
	ID     string  `json:"duplicateId"`
	Assets []Asset `json:"assets"`
}

// AssetCount returns the number of assets in the group
func (g DuplicateGroup) AssetCount() int {
	return len(g.Assets)
}

// TotalSize returns the combined size of every asset in the group
func (g DuplicateGroup) TotalSize() int64 {
	var total int64
	for _, a := range g.Assets {
		total += a.SizeOrZero()
	}
	return total
}

// WastedSize is the space held by everything except the first asset
func (g DuplicateGroup) WastedSize() int64 {
	if len(g.Assets) == 0 {
		return 0
	}
	return g.TotalSize() - g.Assets[0].SizeOrZero()
}

// Split orders the group by strategy and returns the asset to keep and the
// ones to remove. The group itself is not modified.
func (g DuplicateGroup) Split(strategy KeepStrategy) (Asset, []Asset, bool) {
	if len(g.Assets) == 0 {
		return Asset{}, nil, false
	}

	sorted := make([]Asset, len(g.Assets))
	copy(sorted, g.Assets)

	switch strategy {
	case KeepNewest:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		})
	case KeepLargest:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].SizeOrZero() > sorted[j].SizeOrZero()
		})
	default:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
		})
	}

	return sorted[0], sorted[1:], true
}
