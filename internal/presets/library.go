// Package presets stores named filename patterns in a YAML file so they can
// be reused by delete-by-pattern --preset.
package presets

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"sort"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

const (
	// MaxFileSize is the largest preset file Load accepts.
	MaxFileSize = 1 * 1024 * 1024 // 1 MB

	// MaxPatternLength caps a stored pattern.
	MaxPatternLength = 512

	// SupportedVersion is the preset file format version.
	SupportedVersion = 1
)

var nameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)

// Preset is a named pattern
type Preset struct {
	Name        string    `yaml:"name"`
	Pattern     string    `yaml:"pattern"`
	Description string    `yaml:"description,omitempty"`
	CreatedAt   time.Time `yaml:"created_at,omitempty"`
}

// Library is the content of a preset file
type Library struct {
	Version  int      `yaml:"version"`
	Patterns []Preset `yaml:"patterns"`
}

// New returns an empty library
func New() *Library {
	return &Library{Version: SupportedVersion, Patterns: make([]Preset, 0)}
}

// Load reads the library at path. A missing file yields an empty library.
func Load(fsys afero.Fs, path string) (*Library, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return New(), nil
		}
		return nil, fmt.Errorf("failed to stat preset file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, errors.New("preset file must be a regular file")
	}
	if info.Size() > MaxFileSize {
		return nil, fmt.Errorf("preset file too large: %d bytes (max %d)", info.Size(), MaxFileSize)
	}

	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read preset file: %w", err)
	}
	return LoadBytes(data)
}

// LoadBytes parses and validates a preset file
func LoadBytes(data []byte) (*Library, error) {
	if len(data) == 0 {
		return New(), nil
	}

	var lib Library
	if err := yaml.Unmarshal(data, &lib); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if lib.Patterns == nil {
		lib.Patterns = make([]Preset, 0)
	}

	if err := lib.Validate(); err != nil {
		return nil, err
	}
	return &lib, nil
}

// Validate checks the version, names and patterns
func (l *Library) Validate() error {
	if l.Version != SupportedVersion {
		return &ValidationError{
			Field:   "version",
			Message: fmt.Sprintf("unsupported version %d (only version %d is supported)", l.Version, SupportedVersion),
		}
	}

	seen := make(map[string]int, len(l.Patterns))
	for i, p := range l.Patterns {
		if err := validatePreset(i, p); err != nil {
			return err
		}
		if prev, ok := seen[p.Name]; ok {
			return &PresetError{
				Index:   i,
				Name:    p.Name,
				Field:   "name",
				Message: fmt.Sprintf("duplicate name (previously defined at patterns[%d])", prev),
			}
		}
		seen[p.Name] = i
	}
	return nil
}

func validatePreset(index int, p Preset) error {
	if p.Name == "" {
		return &PresetError{Index: index, Field: "name", Message: "name is required"}
	}
	if !nameRegex.MatchString(p.Name) {
		return &PresetError{Index: index, Name: p.Name, Field: "name", Message: "name may only contain letters, digits, '.', '_' and '-'"}
	}
	if p.Pattern == "" {
		return &PresetError{Index: index, Name: p.Name, Field: "pattern", Message: "pattern is required"}
	}
	if len(p.Pattern) > MaxPatternLength {
		return &PresetError{
			Index:   index,
			Name:    p.Name,
			Field:   "pattern",
			Message: fmt.Sprintf("pattern too long (%d bytes, max %d)", len(p.Pattern), MaxPatternLength),
		}
	}
	if _, err := regexp.Compile(p.Pattern); err != nil {
		return &PresetError{Index: index, Name: p.Name, Field: "pattern", Message: "invalid regex", Cause: err}
	}
	return nil
}

// Save writes the library to path, creating parent directories
func (l *Library) Save(fsys afero.Fs, path string) error {
	if err := l.Validate(); err != nil {
		return err
	}

	data, err := yaml.Marshal(l)
	if err != nil {
		return fmt.Errorf("failed to encode presets: %w", err)
	}

	if err := fsys.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create preset directory: %w", err)
	}
	if err := afero.WriteFile(fsys, path, data, 0644); err != nil {
		return fmt.Errorf("failed to write preset file: %w", err)
	}
	return nil
}

// Add stores a preset, replacing one with the same name in place
func (l *Library) Add(name, pattern, description string) error {
	p := Preset{Name: name, Pattern: pattern, Description: description, CreatedAt: time.Now().UTC().Truncate(time.Second)}
	if err := validatePreset(-1, p); err != nil {
		return err
	}

	for i := range l.Patterns {
		if l.Patterns[i].Name == name {
			l.Patterns[i] = p
			return nil
		}
	}
	l.Patterns = append(l.Patterns, p)
	return nil
}

// Get returns the preset called name
func (l *Library) Get(name string) (Preset, error) {
	for _, p := range l.Patterns {
		if p.Name == name {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Remove deletes the preset called name
func (l *Library) Remove(name string) error {
	for i, p := range l.Patterns {
		if p.Name == name {
			l.Patterns = append(l.Patterns[:i], l.Patterns[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Names returns the preset names in sorted order
func (l *Library) Names() []string {
	names := make([]string, 0, len(l.Patterns))
	for _, p := range l.Patterns {
		names = append(names, p.Name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of presets
func (l *Library) Len() int {
	return len(l.Patterns)
}
