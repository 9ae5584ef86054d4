// Package presets manages named field-mapping presets persisted as YAML,
// so a column layout worked out once for a bank export can be reused.
package presets

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"fjacquet/csv-ofx/internal/models"
)

var log = logrus.New()

// SetLogger allows setting a custom logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Preset is one saved input configuration.
type Preset struct {
	Name             string              `yaml:"name"`
	Delimiter        string              `yaml:"delimiter"`
	DecimalSeparator string              `yaml:"decimal_separator"`
	Mapping          models.FieldMapping `yaml:"mapping"`
}

// Store loads and saves presets from a single YAML file.
type Store struct {
	Path string
}

// NewStore creates a store bound to the given file path.
func NewStore(path string) *Store {
	return &Store{Path: path}
}

// Load reads every preset from the store file. A missing file is an empty
// store, not an error.
func (s *Store) Load() (map[string]Preset, error) {
	data, err := os.ReadFile(s.Path) // #nosec G304 -- path comes from user config
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]Preset{}, nil
		}
		return nil, fmt.Errorf("error reading presets file: %w", err)
	}

	var list []Preset
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("error parsing presets file: %w", err)
	}

	presets := make(map[string]Preset, len(list))
	for _, p := range list {
		presets[p.Name] = p
	}

	log.WithField("count", len(presets)).Debug("Loaded mapping presets")
	return presets, nil
}

// Get returns the named preset.
func (s *Store) Get(name string) (Preset, error) {
	presets, err := s.Load()
	if err != nil {
		return Preset{}, err
	}
	p, ok := presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("preset not found: %s", name)
	}
	return p, nil
}

// Save upserts a preset and writes the store back to disk.
func (s *Store) Save(preset Preset) error {
	if preset.Name == "" {
		return fmt.Errorf("preset name cannot be empty")
	}

	presets, err := s.Load()
	if err != nil {
		return err
	}
	presets[preset.Name] = preset

	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)

	list := make([]Preset, 0, len(presets))
	for _, name := range names {
		list = append(list, presets[name])
	}

	data, err := yaml.Marshal(list)
	if err != nil {
		return fmt.Errorf("error serializing presets: %w", err)
	}

	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("error creating presets directory: %w", err)
	}

	if err := os.WriteFile(s.Path, data, 0600); err != nil {
		return fmt.Errorf("error writing presets file: %w", err)
	}

	log.WithField("name", preset.Name).Info("Saved mapping preset")
	return nil
}
