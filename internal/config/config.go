package config

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"nude-scan/internal/detector"
	"nude-scan/internal/region"
	"nude-scan/internal/skin"
	"nude-scan/internal/verdict"
)

// Config holds detection thresholds and scan settings.
type Config struct {
	// Detection
	Classifier         string  `json:"classifier"`
	MinRegionSize      int     `json:"min_region_size"`
	MinRegions         int     `json:"min_regions"`
	MaxRegions         int     `json:"max_regions"`
	MinSkinPercent     float64 `json:"min_skin_percent"`
	MinDominantPercent float64 `json:"min_dominant_percent"`

	// Scan settings
	Resize    bool   `json:"resize"`
	MaxWidth  int    `json:"max_width"`
	MaxHeight int    `json:"max_height"`
	Visualize bool   `json:"visualize"`
	OutputDir string `json:"output_dir"`
	Manifest  string `json:"manifest"`
	Workers   int    `json:"workers"`
}

// Default returns a Config carrying the default detection thresholds. Scan
// settings are left for Resolve.
func Default() Config {
	def := verdict.DefaultThresholds()
	return Config{
		Classifier:         string(skin.ModeYCbCr),
		MinRegionSize:      region.DefaultMinSize,
		MinRegions:         def.MinRegions,
		MaxRegions:         def.MaxRegions,
		MinSkinPercent:     def.MinSkinPercent,
		MinDominantPercent: def.MinDominantPercent,
	}
}

// Load reads a JSON config file on top of Default. Detection fields absent
// from the file keep their defaults; an explicit 0 is kept as 0.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve applies CLI flags, which take priority when non-zero/non-empty,
// and fills in empty scan settings. Detection thresholds are taken as
// given, zero included.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.Classifier != "" {
		c.Classifier = flags.Classifier
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Manifest != "" {
		c.Manifest = flags.Manifest
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Resize {
		c.Resize = true
	}
	if flags.Visualize {
		c.Visualize = true
	}

	if c.Classifier == "" {
		c.Classifier = string(skin.ModeYCbCr)
	}

	// Scan defaults
	if c.MaxWidth <= 0 {
		c.MaxWidth = 600
	}
	if c.MaxHeight <= 0 {
		c.MaxHeight = 800
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Classifier string
	OutputDir  string
	Manifest   string
	Workers    int
	Resize     bool
	Visualize  bool
}

// Detector builds detector options from the resolved config.
func (c *Config) Detector() (detector.Options, error) {
	mode, err := skin.ParseMode(c.Classifier)
	if err != nil {
		return detector.Options{}, fmt.Errorf("config: %w", err)
	}
	classify, err := mode.Classifier()
	if err != nil {
		return detector.Options{}, fmt.Errorf("config: %w", err)
	}
	return detector.Options{
		Classifier:    classify,
		MinRegionSize: c.MinRegionSize,
		Thresholds: verdict.Thresholds{
			MinRegions:         c.MinRegions,
			MinSkinPercent:     c.MinSkinPercent,
			MinDominantPercent: c.MinDominantPercent,
			MaxRegions:         c.MaxRegions,
		},
	}, nil
}
