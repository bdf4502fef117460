package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds output and batch settings. Pipeline flags are not here: they
// belong to each scene script.
type Config struct {
	// Paths
	OutputDir    string `json:"output_dir" yaml:"output_dir"`
	ReferenceDir string `json:"reference_dir" yaml:"reference_dir"`

	// Output settings
	Format    string `json:"format" yaml:"format"` // "png", "webp" or "" to keep the script's extension
	Zoom      int    `json:"zoom" yaml:"zoom"`
	Tolerance int    `json:"tolerance" yaml:"tolerance"` // per-channel slack when comparing with references
	Manifest  bool   `json:"manifest" yaml:"manifest"`

	Workers int `json:"workers" yaml:"workers"`
}

// Load reads a JSON or YAML config file, picked by extension.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Resolve applies CLI overrides and fills defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.ReferenceDir != "" {
		c.ReferenceDir = flags.ReferenceDir
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Zoom > 0 {
		c.Zoom = flags.Zoom
	}
	if flags.Tolerance > 0 {
		c.Tolerance = flags.Tolerance
	}
	if flags.Manifest {
		c.Manifest = true
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	c.Format = strings.ToLower(strings.TrimPrefix(c.Format, "."))
	if c.Zoom <= 0 {
		c.Zoom = 1
	}
	if c.Tolerance < 0 {
		c.Tolerance = 0
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// Validate reports settings that cannot be used.
func (c *Config) Validate() error {
	switch c.Format {
	case "", "png", "webp":
	default:
		return fmt.Errorf("config: unsupported output format %q", c.Format)
	}
	if c.Tolerance > 255 {
		return fmt.Errorf("config: tolerance %d above 255", c.Tolerance)
	}
	if c.Zoom > 64 {
		return fmt.Errorf("config: zoom %d above 64", c.Zoom)
	}
	return nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	OutputDir    string
	ReferenceDir string
	Format       string
	Zoom         int
	Tolerance    int
	Manifest     bool
	Workers      int
}
