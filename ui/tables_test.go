package ui

import (
	"testing"
	"time"

	"github.com/immich-janitor/immich-janitor/internal/models"
	"github.com/immich-janitor/immich-janitor/internal/pattern"
	"github.com/immich-janitor/immich-janitor/internal/presets"
	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short.jpg", 20, "short.jpg"},
		{"a_very_long_filename.jpg", 10, "a_very_..."},
		{"abcdef", 3, "abc"},
		{"abcdef", 0, "abcdef"},
		{"日本語のファイル名.jpg", 6, "日本語..."},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.in, tt.width))
		})
	}
}

func TestSuggestionTable(t *testing.T) {
	suggestions := []pattern.Suggestion{
		{Pattern: `^IMG_\d+\.jpg$`, Description: "IMG files", Priority: 1},
		{Pattern: `.*\.jpg$`, Description: "All jpg", Priority: 4},
	}

	withCounts := SuggestionTable(suggestions, []int{42, 7})
	assert.Contains(t, withCounts, "Matches")
	assert.Contains(t, withCounts, `^IMG_\d+\.jpg$`)
	assert.Contains(t, withCounts, "42")
	assert.Contains(t, withCounts, "one or more digits")

	withoutCounts := SuggestionTable(suggestions, nil)
	assert.NotContains(t, withoutCounts, "Matches")
	assert.Contains(t, withoutCounts, "All jpg")
}

func TestAssetTables(t *testing.T) {
	size := int64(2048)
	deleted := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	assets := []models.Asset{
		{
			ID:               "0b5c2f8e-6a4d-4d1e-9f3a-1c2b3d4e5f60",
			OriginalFileName: "IMG_001.jpg",
			Type:             models.AssetTypeImage,
			CreatedAt:        time.Date(2024, 1, 15, 8, 30, 0, 0, time.UTC),
			FileSizeInBytes:  &size,
			DeletedAt:        &deleted,
		},
		{ID: "short", OriginalFileName: "clip.mov", Type: models.AssetTypeVideo},
	}

	out := AssetTable(assets)
	assert.Contains(t, out, "0b5c2f8e...")
	assert.Contains(t, out, "2.00 KB")
	assert.Contains(t, out, "Unknown")
	assert.Contains(t, out, "2024-01-15 08:30")

	trash := TrashTable(assets)
	assert.Contains(t, trash, "2024-03-01 10:00")
	assert.Contains(t, trash, "Deleted")
}

func TestDuplicateTable(t *testing.T) {
	a, b := int64(1024), int64(1024)
	groups := []models.DuplicateGroup{{
		ID: "g1",
		Assets: []models.Asset{
			{ID: "1", OriginalFileName: "a.jpg", FileSizeInBytes: &a},
			{ID: "2", OriginalFileName: "a (1).jpg", FileSizeInBytes: &b},
		},
	}}

	out := DuplicateTable(groups)
	assert.Contains(t, out, "2.00 KB")
	assert.Contains(t, out, "1.00 KB")
	assert.Contains(t, out, "a.jpg, a (1).jpg")
}

func TestExtensionAndKeyValueTables(t *testing.T) {
	out := ExtensionTable([]models.ExtensionCount{
		{Extension: "JPG", Count: 3, Size: 3072},
		{Extension: "MOV", Count: 1, Size: 0},
	}, 4)
	assert.Contains(t, out, "75.0%")
	assert.Contains(t, out, "25.0%")
	assert.Contains(t, out, "3.00 KB")

	kv := KeyValueTable([]KeyValue{{Key: "Total assets", Value: "4"}})
	assert.Contains(t, kv, "Total assets")
	assert.Contains(t, kv, "Metric")
}

func TestPresetTable(t *testing.T) {
	out := PresetTable([]presets.Preset{
		{Name: "screenshots", Pattern: `^Screenshot_`, Description: "Phone screenshots"},
		{Name: "raw", Pattern: `\.dng$`},
	})

	assert.Contains(t, out, "screenshots")
	assert.Contains(t, out, "Phone screenshots")
	assert.Contains(t, out, "a dot")
}
