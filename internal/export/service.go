// Package export writes the plan of a destructive command to disk so the
// affected assets can be reviewed or restored later.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/immich-janitor/immich-janitor/internal/models"
	"github.com/immich-janitor/immich-janitor/internal/utils"
	"github.com/spf13/afero"
)

// Format is an export file format
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// csvHeader is the first row of a CSV export
var csvHeader = []string{"id", "filename", "type", "size", "created"}

// Service handles export operations
type Service struct {
	fs afero.Fs
}

// NewService creates a new export service
func NewService(fs afero.Fs) *Service {
	return &Service{
		fs: fs,
	}
}

// Options contains configuration for export operations
type Options struct {
	DestinationPath string
	Format          Format // Inferred from the extension when empty
	Overwrite       bool
}

// Summary contains information about the export operation
type Summary struct {
	Action          string
	AssetCount      int
	TotalSize       int64
	Format          Format
	DestinationPath string
}

// ParseFormat validates a format name
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	}
	return "", fmt.Errorf("unsupported export format %q (expected json or csv)", s)
}

// resolveFormat picks the explicit format or infers it from path
func resolveFormat(path string, explicit Format) (Format, error) {
	if explicit != "" {
		return ParseFormat(string(explicit))
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	default:
		return FormatJSON, nil
	}
}

// GetExportSummary calculates what would be exported without writing anything
func (s *Service) GetExportSummary(plan *models.Plan, opts Options) (*Summary, error) {
	if plan == nil {
		return nil, fmt.Errorf("invalid plan")
	}

	format, err := resolveFormat(opts.DestinationPath, opts.Format)
	if err != nil {
		return nil, err
	}

	return &Summary{
		Action:          plan.Action,
		AssetCount:      plan.Count(),
		TotalSize:       plan.TotalSize,
		Format:          format,
		DestinationPath: opts.DestinationPath,
	}, nil
}

// Export writes plan to opts.DestinationPath
func (s *Service) Export(plan *models.Plan, opts Options) (*Summary, error) {
	if err := ValidateExportPath(opts.DestinationPath); err != nil {
		return nil, err
	}

	summary, err := s.GetExportSummary(plan, opts)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(opts.DestinationPath)
	if err := s.fs.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	// Check if destination exists and handle overwrite
	if !opts.Overwrite {
		if exists, err := afero.Exists(s.fs, opts.DestinationPath); err != nil {
			return nil, fmt.Errorf("failed to check if destination exists: %w", err)
		} else if exists {
			return nil, fmt.Errorf("destination file exists and overwrite is disabled: %s", opts.DestinationPath)
		}
	}

	var data []byte
	switch summary.Format {
	case FormatCSV:
		data, err = encodeCSV(plan)
	default:
		data, err = json.MarshalIndent(plan, "", "  ")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode plan: %w", err)
	}

	if err := afero.WriteFile(s.fs, opts.DestinationPath, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write export: %w", err)
	}

	utils.Info("exported %d assets (%s) to %s", summary.AssetCount, summary.Format, opts.DestinationPath)
	return summary, nil
}

// encodeCSV renders one row per asset
func encodeCSV(plan *models.Plan) ([]byte, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, a := range plan.Assets {
		size := ""
		if n, ok := a.FileSize(); ok {
			size = strconv.FormatInt(n, 10)
		}
		row := []string{a.ID, a.OriginalFileName, a.Type, size, a.CreatedAt.Format(time.RFC3339)}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return []byte(b.String()), nil
}

// ReadPlan loads a JSON plan written by Export
func (s *Service) ReadPlan(path string) (*models.Plan, error) {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan: %w", err)
	}
	var plan models.Plan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to decode plan %s: %w", path, err)
	}
	return &plan, nil
}

// GetDefaultExportPath names an export after the action and time
func GetDefaultExportPath(action string, now time.Time) string {
	if action == "" {
		action = "plan"
	}
	return fmt.Sprintf("%s-%s.json", action, now.Format("20060102-150405"))
}

// ValidateExportPath performs basic validation on the export path
func ValidateExportPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("export path cannot be empty")
	}
	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator)) {
		return fmt.Errorf("export path must be a file, got directory %s", path)
	}
	return nil
}
