package export

import (
	"strings"
	"testing"
	"time"

	"github.com/immich-janitor/immich-janitor/internal/models"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPlan() *models.Plan {
	size := int64(4096)
	created := time.Date(2024, 1, 15, 8, 30, 0, 0, time.UTC)
	return models.NewPlan("delete", models.Criteria{Pattern: `^IMG_`}, []models.Asset{
		{ID: "a1", OriginalFileName: "IMG_001.jpg", Type: models.AssetTypeImage, CreatedAt: created, FileSizeInBytes: &size},
		{ID: "a2", OriginalFileName: "IMG,002.jpg", Type: models.AssetTypeImage, CreatedAt: created},
	})
}

func TestExportJSON(t *testing.T) {
	fs := afero.NewMemMapFs()
	svc := NewService(fs)

	summary, err := svc.Export(testPlan(), Options{DestinationPath: "/out/plan.json"})
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, summary.Format)
	assert.Equal(t, 2, summary.AssetCount)
	assert.Equal(t, int64(4096), summary.TotalSize)

	plan, err := svc.ReadPlan("/out/plan.json")
	require.NoError(t, err)
	assert.Equal(t, "delete", plan.Action)
	assert.Equal(t, `^IMG_`, plan.Criteria.Pattern)
	assert.Equal(t, []string{"a1", "a2"}, plan.IDs())
}

func TestExportCSV(t *testing.T) {
	fs := afero.NewMemMapFs()
	svc := NewService(fs)

	summary, err := svc.Export(testPlan(), Options{DestinationPath: "/out/plan.CSV"})
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, summary.Format)

	data, err := afero.ReadFile(fs, "/out/plan.CSV")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "id,filename,type,size,created", lines[0])
	assert.Equal(t, "a1,IMG_001.jpg,IMAGE,4096,2024-01-15T08:30:00Z", lines[1])
	assert.Equal(t, `a2,"IMG,002.jpg",IMAGE,,2024-01-15T08:30:00Z`, lines[2])
}

func TestExportExplicitFormat(t *testing.T) {
	fs := afero.NewMemMapFs()
	summary, err := NewService(fs).Export(testPlan(), Options{DestinationPath: "/out/plan.txt", Format: "csv"})
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, summary.Format)

	_, err = NewService(fs).Export(testPlan(), Options{DestinationPath: "/out/x.txt", Format: "xml"})
	assert.ErrorContains(t, err, "unsupported export format")
}

func TestExportOverwrite(t *testing.T) {
	fs := afero.NewMemMapFs()
	svc := NewService(fs)
	require.NoError(t, afero.WriteFile(fs, "/plan.json", []byte("old"), 0644))

	_, err := svc.Export(testPlan(), Options{DestinationPath: "/plan.json"})
	assert.ErrorContains(t, err, "overwrite is disabled")

	_, err = svc.Export(testPlan(), Options{DestinationPath: "/plan.json", Overwrite: true})
	require.NoError(t, err)
	data, err := afero.ReadFile(fs, "/plan.json")
	require.NoError(t, err)
	assert.Contains(t, string(data), `"action": "delete"`)
}

func TestExportInvalid(t *testing.T) {
	svc := NewService(afero.NewMemMapFs())

	_, err := svc.Export(nil, Options{DestinationPath: "/plan.json"})
	assert.Error(t, err)

	_, err = svc.Export(testPlan(), Options{DestinationPath: "  "})
	assert.ErrorContains(t, err, "cannot be empty")

	_, err = svc.Export(testPlan(), Options{DestinationPath: "/exports/"})
	assert.ErrorContains(t, err, "must be a file")
}

func TestGetDefaultExportPath(t *testing.T) {
	now := time.Date(2024, 3, 9, 14, 5, 6, 0, time.UTC)
	assert.Equal(t, "empty-trash-20240309-140506.json", GetDefaultExportPath("empty-trash", now))
	assert.Equal(t, "plan-20240309-140506.json", GetDefaultExportPath("", now))
}
