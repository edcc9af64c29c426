// Package scanner collects example filenames from a local directory so a
// pattern can be built from files already on disk.
package scanner

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/immich-janitor/immich-janitor/internal/utils"
	"github.com/spf13/afero"
)

// defaultMediaExts are the extensions Immich imports
var defaultMediaExts = []string{
	".jpg", ".jpeg", ".png", ".heic", ".heif", ".gif", ".webp",
	".mp4", ".mov", ".avi", ".mkv",
	".dng", ".raw", ".cr2", ".nef", ".arw",
}

// DefaultMaxDepth is how many directory levels below the root are scanned
const DefaultMaxDepth = 10

// ExampleScanner walks a directory for media filenames
type ExampleScanner struct {
	fs        afero.Fs
	maxDepth  int
	mediaExts map[string]bool
}

// NewExampleScanner creates a scanner over fs
func NewExampleScanner(fs afero.Fs) *ExampleScanner {
	exts := make(map[string]bool, len(defaultMediaExts))
	for _, ext := range defaultMediaExts {
		exts[ext] = true
	}
	return &ExampleScanner{
		fs:        fs,
		maxDepth:  DefaultMaxDepth,
		mediaExts: exts,
	}
}

// SetMaxDepth sets the maximum scanning depth. 0 scans only the root.
func (s *ExampleScanner) SetMaxDepth(depth int) {
	s.maxDepth = depth
}

// AddExtension adds a file extension to be considered media
func (s *ExampleScanner) AddExtension(ext string) {
	ext = strings.ToLower(ext)
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	s.mediaExts[ext] = true
}

// SupportedExtensions returns the media extensions in sorted order
func (s *ExampleScanner) SupportedExtensions() []string {
	exts := make([]string, 0, len(s.mediaExts))
	for ext := range s.mediaExts {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Sample returns at most n base names of the media files under root in walk
// order: entries of a directory sorted by name, subdirectories descended in
// place. n <= 0 returns everything.
func (s *ExampleScanner) Sample(root string, n int) ([]string, error) {
	names, err := s.scan(root, n)
	if err != nil {
		return nil, err
	}
	return names, nil
}

func (s *ExampleScanner) scan(root string, limit int) ([]string, error) {
	info, err := s.fs.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to access path %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path %s is not a directory", root)
	}

	names := make([]string, 0)
	if err := s.scanDirectory(root, 0, limit, &names); err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}
	return names, nil
}

// scanDirectory appends media names found under dir, stopping at limit
func (s *ExampleScanner) scanDirectory(dir string, depth, limit int, names *[]string) error {
	if depth > s.maxDepth {
		return nil // Skip if max depth exceeded
	}

	entries, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		return fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		if limit > 0 && len(*names) >= limit {
			return nil
		}

		if entry.IsDir() {
			if strings.HasPrefix(entry.Name(), ".") {
				continue
			}
			sub := filepath.Join(dir, entry.Name())
			if err := s.scanDirectory(sub, depth+1, limit, names); err != nil {
				// Log warning but continue scanning
				utils.Warning("failed to scan directory %s: %v", sub, err)
			}
			continue
		}

		if s.isMedia(entry.Name()) {
			*names = append(*names, entry.Name())
		}
	}
	return nil
}

// isMedia determines if a file should be offered as an example
func (s *ExampleScanner) isMedia(name string) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}
	return s.mediaExts[strings.ToLower(filepath.Ext(name))]
}
