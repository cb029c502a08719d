package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds engine settings loaded from YAML. Zero or out-of-range
// fields fall back to clamped defaults.
type Config struct {
	Seed           int64  `yaml:"seed"`
	ViewDistance   int    `yaml:"view_distance"`
	TickRate       int    `yaml:"tick_rate"`
	AtlasWidth     int    `yaml:"atlas_width"`
	AtlasHeight    int    `yaml:"atlas_height"`
	TileSize       int    `yaml:"tile_size"`
	Mesher         string `yaml:"mesher"`
	PrewarmWorkers int    `yaml:"prewarm_workers"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Seed:           1,
		ViewDistance:   8,
		TickRate:       20,
		AtlasWidth:     256,
		AtlasHeight:    256,
		TileSize:       16,
		Mesher:         "greedy",
		PrewarmWorkers: 4,
	}
}

// Load reads a YAML config file over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	cfg.Clamp()
	return cfg, nil
}

// Clamp forces settings into their supported ranges.
func (c *Config) Clamp() {
	if c.ViewDistance < 1 {
		c.ViewDistance = 1
	}
	if c.ViewDistance > 50 {
		c.ViewDistance = 50
	}
	if c.TickRate < 1 {
		c.TickRate = 20
	}
	if c.TickRate > 240 {
		c.TickRate = 240
	}
	if c.AtlasWidth <= 0 || c.AtlasHeight <= 0 || c.TileSize <= 0 {
		d := Default()
		c.AtlasWidth = d.AtlasWidth
		c.AtlasHeight = d.AtlasHeight
		c.TileSize = d.TileSize
	}
	if c.PrewarmWorkers < 1 {
		c.PrewarmWorkers = 1
	}
}
