package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/gobwas/glob"
	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"pixel-engine/internal/logging"
	"pixel-engine/internal/raster"
	"pixel-engine/internal/texture"
)

// Config holds conversion paths, image preparation settings and logging.
type Config struct {
	// Paths
	InputDir  string `json:"input_dir" toml:"input_dir" yaml:"input_dir"`
	OutputDir string `json:"output_dir" toml:"output_dir" yaml:"output_dir"`

	// Output
	Format       string `json:"format" toml:"format" yaml:"format"` // pxim, png or webp
	Scale        int    `json:"scale" toml:"scale" yaml:"scale"`
	Crop         bool   `json:"crop" toml:"crop" yaml:"crop"`
	Despeckle    int    `json:"despeckle" toml:"despeckle" yaml:"despeckle"` // drop opaque clusters smaller than this
	Flip         string `json:"flip" toml:"flip" yaml:"flip"`                // h, v or hv
	MaxWidth     int    `json:"max_width" toml:"max_width" yaml:"max_width"`
	MaxHeight    int    `json:"max_height" toml:"max_height" yaml:"max_height"`
	Smooth       bool   `json:"smooth" toml:"smooth" yaml:"smooth"`
	CanvasWidth  int    `json:"canvas_width" toml:"canvas_width" yaml:"canvas_width"`
	CanvasHeight int    `json:"canvas_height" toml:"canvas_height" yaml:"canvas_height"`
	KeyColor     string `json:"key_color" toml:"key_color" yaml:"key_color"` // pixels of this color become transparent
	Workers      int    `json:"workers" toml:"workers" yaml:"workers"`

	// Exclude lists glob patterns (path relative to the input dir, '/'
	// separated, ** crosses directories) of inputs to skip.
	Exclude []string `json:"exclude" toml:"exclude" yaml:"exclude"`

	Log LogConfig `json:"log" toml:"log" yaml:"log"`

	baseDir string
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level   string   `json:"level" toml:"level" yaml:"level"`
	Format  string   `json:"format" toml:"format" yaml:"format"`
	File    string   `json:"file" toml:"file" yaml:"file"`
	Quiet   bool     `json:"quiet" toml:"quiet" yaml:"quiet"`
	Sources []string `json:"sources" toml:"sources" yaml:"sources"`
}

// Load reads a JSON, TOML or YAML (by extension) config file. Fields not
// set in the file keep their zero values; relative paths are later resolved
// against the file's directory.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	cfg.baseDir = filepath.Dir(path)
	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	InputDir  string
	OutputDir string
	Format    string
	Scale     int
	Workers   int
	LogLevel  string
	LogFile   string
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.InputDir != "" {
		c.InputDir = flags.InputDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Scale > 0 {
		c.Scale = flags.Scale
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.LogLevel != "" {
		c.Log.Level = flags.LogLevel
	}
	if flags.LogFile != "" {
		c.Log.File = flags.LogFile
	}

	// Paths from the file are relative to the file, flags to the cwd.
	// Both may start with ~.
	if c.InputDir == "" {
		c.InputDir = "."
	} else {
		c.InputDir = c.path(c.InputDir, flags.InputDir != "")
	}
	if c.OutputDir == "" {
		c.OutputDir = filepath.Join(c.InputDir, "out")
	} else {
		c.OutputDir = c.path(c.OutputDir, flags.OutputDir != "")
	}
	if c.Log.File != "" {
		c.Log.File = c.path(c.Log.File, flags.LogFile != "")
	}

	c.Format = strings.ToLower(c.Format)
	if c.Format == "" {
		c.Format = "pxim"
	}
	if c.Scale <= 0 {
		c.Scale = 1
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate reports settings that Resolve cannot fix.
func (c *Config) Validate() error {
	if _, err := texture.FormatExt(c.Format); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := c.Key(); err != nil {
		return fmt.Errorf("config: key_color: %w", err)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: log.level: %w", err)
	}
	switch strings.ToLower(c.Flip) {
	case "", "h", "v", "hv", "vh":
	default:
		return fmt.Errorf("config: flip: unknown axis %q", c.Flip)
	}
	for _, pattern := range c.Exclude {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			return fmt.Errorf("config: exclude %q: %w", pattern, err)
		}
	}
	if c.Despeckle < 0 || c.MaxWidth < 0 || c.MaxHeight < 0 || c.CanvasWidth < 0 || c.CanvasHeight < 0 {
		return fmt.Errorf("config: sizes must not be negative")
	}
	return nil
}

// Key returns the parsed key color, or nil when none is set.
func (c *Config) Key() (*raster.Color, error) {
	if c.KeyColor == "" {
		return nil, nil
	}
	col, err := raster.ParseHex(c.KeyColor)
	if err != nil {
		return nil, err
	}
	return &col, nil
}

// LogOptions converts the log section for logging.New.
func (c *Config) LogOptions() (logging.Options, error) {
	level, err := logging.ParseLevel(c.Log.Level)
	if err != nil {
		return logging.Options{}, err
	}
	return logging.Options{
		Level:          level,
		Format:         c.Log.Format,
		File:           c.Log.File,
		Quiet:          c.Log.Quiet,
		AllowedSources: c.Log.Sources,
	}, nil
}

// path expands a leading ~ and, for paths read from the config file,
// makes relative paths relative to the file.
func (c *Config) path(p string, fromFlag bool) string {
	if expanded, err := homedir.Expand(p); err == nil {
		p = expanded
	}
	if fromFlag || c.baseDir == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.baseDir, p)
}
