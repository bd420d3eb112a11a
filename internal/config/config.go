// Package config provides configuration loading and structs for the rumfinder server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kortnav/rumfinder/internal/models"
)

// Config holds all configuration for the application.
type Config struct {
	Debug    bool           `yaml:"debug"`
	Server   ServerConfig   `yaml:"server"`
	Building BuildingConfig `yaml:"building"`
	Extract  ExtractConfig  `yaml:"extract"`
	Markers  MarkerConfig   `yaml:"markers"`
	Render   RenderConfig   `yaml:"render"`
	Storage  StorageConfig  `yaml:"storage"`
	Watch    WatchConfig    `yaml:"watch"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// BuildingConfig names the building and maps each floor to its plan document.
type BuildingConfig struct {
	Name   string     `yaml:"name"`
	Floors FloorPaths `yaml:"floors"`
}

// FloorPaths holds one document path per floor identifier.
type FloorPaths struct {
	Ground string `yaml:"ground"`
	Floor1 string `yaml:"floor_1"`
	Floor2 string `yaml:"floor_2"`
}

// Path returns the document path configured for the given floor.
func (p *FloorPaths) Path(floor models.FloorID) string {
	switch floor {
	case models.FloorGround:
		return p.Ground
	case models.Floor1:
		return p.Floor1
	case models.Floor2:
		return p.Floor2
	}
	return ""
}

// All returns the configured paths in floor priority order.
func (p *FloorPaths) All() []string {
	out := make([]string, 0, len(models.FloorOrder))
	for _, floor := range models.FloorOrder {
		out = append(out, p.Path(floor))
	}
	return out
}

// Validate ensures every floor has a document path.
func (p *FloorPaths) Validate() error {
	for _, floor := range models.FloorOrder {
		if p.Path(floor) == "" {
			return fmt.Errorf("no document path configured for floor %s", floor)
		}
	}
	return nil
}

// ExtractConfig holds document extraction settings.
type ExtractConfig struct {
	// Page selects which page of a multi-page document to use (1-based).
	Page int `yaml:"page"`
}

// FontSizeRange is an inclusive font size window a room label must fall in.
type FontSizeRange struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Contains reports whether size falls inside the range.
func (r FontSizeRange) Contains(size float64) bool {
	return size >= r.Min && size <= r.Max
}

// MarkerConfig holds the label classification rules: the entrance-marker
// vocabulary and the room name acceptance rules.
type MarkerConfig struct {
	EntranceKeywords []string        `yaml:"entrance_keywords"`
	RoomPatterns     []string        `yaml:"room_patterns"`
	ExcludePatterns  []string        `yaml:"exclude_patterns"`
	FontSizeRanges   []FontSizeRange `yaml:"font_size_ranges"`
	MinTextLength    int             `yaml:"min_text_length"`
	MaxTextLength    int             `yaml:"max_text_length"`
}

// RenderConfig holds presentation geometry settings.
type RenderConfig struct {
	// Scale is the factor applied to page dimensions when the plan is
	// rendered as an image; marker pixels are normalized * dimension * scale.
	Scale float64 `yaml:"scale"`
}

// StorageConfig holds the index cache path.
type StorageConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// WatchConfig holds document change watch settings.
type WatchConfig struct {
	Enabled *bool `yaml:"enabled"`
}

// EnabledOrDefault returns whether to watch the documents; defaults to true when unset.
func (w *WatchConfig) EnabledOrDefault() bool {
	if w.Enabled != nil {
		return *w.Enabled
	}
	return true
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed, or a floor has no document.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Storage.DatabasePath = expandPath(cfg.Storage.DatabasePath, configDir)
	cfg.Building.Floors.Ground = expandPath(cfg.Building.Floors.Ground, configDir)
	cfg.Building.Floors.Floor1 = expandPath(cfg.Building.Floors.Floor1, configDir)
	cfg.Building.Floors.Floor2 = expandPath(cfg.Building.Floors.Floor2, configDir)

	if err := cfg.Building.Floors.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
