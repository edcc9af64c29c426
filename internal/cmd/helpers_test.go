package cmd

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/immich-janitor/immich-janitor/internal/immich"
	"github.com/immich-janitor/immich-janitor/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitExamples(t *testing.T) {
	got := splitExamples("IMG_001.jpg, IMG_002.jpg,,", " DSC_1.jpg ", "")
	assert.Equal(t, []string{"IMG_001.jpg", "IMG_002.jpg", "DSC_1.jpg"}, got)
	assert.Empty(t, splitExamples())
}

func TestResolveExportPath(t *testing.T) {
	now := time.Date(2024, 3, 9, 14, 5, 6, 0, time.UTC)
	assert.Equal(t, "delete-20240309-140506.json", resolveExportPath(autoExport, "delete", now))
	assert.Equal(t, "plan.csv", resolveExportPath("plan.csv", "delete", now))
	assert.Empty(t, resolveExportPath("", "delete", now))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "1 (25.0%)", percent(1, 4))
	assert.Equal(t, "0", percent(0, 0))
}

func TestSelectEmpty(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	lib := library()
	assets := []models.Asset{
		trashed(lib[0], now.AddDate(0, 0, -31)),
		trashed(lib[1], now.AddDate(0, 0, -29)),
		lib[2],
	}

	_, err := selectEmpty(assets, "", false, now)
	assert.Error(t, err)

	got, err := selectEmpty(assets, "30d", false, now)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "id-img-1", got[0].ID)

	got, err = selectEmpty(assets, "30d", true, now)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestSelectRestore(t *testing.T) {
	assets := library()

	_, err := selectRestore(assets, restoreCriteria{})
	assert.Error(t, err)

	got, err := selectRestore(assets, restoreCriteria{Pattern: `^IMG_`})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = selectRestore(assets, restoreCriteria{PlanIDs: map[string]bool{"id-clip-1": true}})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "clip.mp4", got[0].OriginalFileName)

	got, err = selectRestore(assets, restoreCriteria{
		Pattern: `^IMG_`,
		PlanIDs: map[string]bool{"id-img-2": true, "id-clip-1": true},
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "id-img-2", got[0].ID)

	_, err = selectRestore(assets, restoreCriteria{Pattern: `(`})
	assert.Error(t, err)
}

func TestPlanDuplicates(t *testing.T) {
	lib := library()
	groups := []models.DuplicateGroup{
		{ID: "a", Assets: []models.Asset{lib[1], lib[0]}},
		{ID: "empty"},
		{ID: "b", Assets: []models.Asset{lib[3], lib[2]}},
	}

	kept, remove := planDuplicates(groups, models.KeepOldest)
	assert.Equal(t, []string{"id-img-1", "id-dsc-1"}, models.NewAssetSet(kept).IDs())
	assert.Equal(t, []string{"id-img-2", "id-clip-1"}, models.NewAssetSet(remove).IDs())

	kept, _ = planDuplicates(groups, models.KeepNewest)
	assert.Equal(t, []string{"id-img-2", "id-clip-1"}, models.NewAssetSet(kept).IDs())
}

func TestTrashStats(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	lib := library()
	assets := []models.Asset{
		trashed(lib[0], now.AddDate(0, 0, -10)),
		trashed(lib[1], now.AddDate(0, 0, -3)),
	}

	rows := trashStats(assets, now)
	values := make(map[string]string, len(rows))
	for _, r := range rows {
		values[r.Key] = r.Value
	}

	assert.Equal(t, "2", values["Total Assets"])
	assert.Equal(t, "3.00 KB", values["Total Size"])
	assert.Equal(t, "2 (100.0%)", values["Images"])
	assert.Equal(t, "2024-05-22", values["Oldest Deletion"])
	assert.Equal(t, "10 days", values["Time Span"])
}

func TestOverviewRows(t *testing.T) {
	sum := models.NewAssetSet(library()).Summary()
	rows := overviewRows(sum)

	keys := make([]string, len(rows))
	for i, r := range rows {
		keys[i] = r.Key
	}
	assert.Contains(t, keys, "Oldest Photo")
	assert.Contains(t, keys, "Avg per Day")

	assert.Len(t, overviewRows(models.Summary{}), 7)
}

func TestErrorHint(t *testing.T) {
	apiErr := func(code int) error {
		return fmt.Errorf("failed to list assets: %w", &immich.APIError{
			Method: http.MethodPost, Endpoint: "/search/metadata", StatusCode: code,
		})
	}

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"unauthorized", apiErr(http.StatusUnauthorized), "IMMICH_API_KEY"},
		{"forbidden", apiErr(http.StatusForbidden), "IMMICH_API_KEY"},
		{"not found", apiErr(http.StatusNotFound), "IMMICH_API_URL"},
		{"rate limited", apiErr(http.StatusTooManyRequests), "IMMICH_RATE_LIMIT"},
		{"server error", apiErr(http.StatusInternalServerError), ""},
		{"plain error", errors.New("boom"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hint := errorHint(tt.err)
			if tt.want == "" {
				assert.Empty(t, hint)
				return
			}
			assert.Contains(t, hint, tt.want)
		})
	}
}

func TestAssetDetails(t *testing.T) {
	a := library()[0]
	rows := assetDetails(a)
	values := make(map[string]string, len(rows))
	for _, r := range rows {
		values[r.Key] = r.Value
	}
	assert.Equal(t, "IMG_001.jpg", values["Filename"])
	assert.Equal(t, "1.00 KB", values["Size"])
	assert.Equal(t, "2024-01-15 10:00", values["Uploaded"])
	assert.NotContains(t, values, "Deleted")
	assert.NotContains(t, values, "Dimensions")

	a.ExifInfo = &models.ExifInfo{ExifImageWidth: 4032, ExifImageHeight: 3024}
	rows = assetDetails(a)
	values = make(map[string]string, len(rows))
	for _, r := range rows {
		values[r.Key] = r.Value
	}
	assert.Equal(t, "4032x3024", values["Dimensions"])

	deleted := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	rows = assetDetails(trashed(a, deleted))
	assert.Equal(t, "2024-05-01 09:30", rows[len(rows)-1].Value)
}
