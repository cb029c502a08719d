package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, int64(1), cfg.Seed)
	assert.Equal(t, 8, cfg.ViewDistance)
	assert.Equal(t, 20, cfg.TickRate)
	assert.Equal(t, "greedy", cfg.Mesher)
	assert.Equal(t, 256, cfg.AtlasWidth)
	assert.Equal(t, 16, cfg.TileSize)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"seed: 42\nview_distance: 3\nmesher: naive\n",
	), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, 3, cfg.ViewDistance)
	assert.Equal(t, "naive", cfg.Mesher)
	// Untouched fields keep their defaults.
	assert.Equal(t, 20, cfg.TickRate)
	assert.Equal(t, 256, cfg.AtlasHeight)
}

func TestLoadErrors(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
	// Defaults come back even on error so callers can keep going.
	assert.Equal(t, Default(), cfg)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("view_distance: [nope"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestClamp(t *testing.T) {
	cfg := Config{ViewDistance: 0, TickRate: 1000, AtlasWidth: -1, PrewarmWorkers: 0}
	cfg.Clamp()
	assert.Equal(t, 1, cfg.ViewDistance)
	assert.Equal(t, 240, cfg.TickRate)
	assert.Equal(t, 256, cfg.AtlasWidth)
	assert.Equal(t, 256, cfg.AtlasHeight)
	assert.Equal(t, 16, cfg.TileSize)
	assert.Equal(t, 1, cfg.PrewarmWorkers)

	cfg = Config{ViewDistance: 99, TickRate: 0}
	cfg.Clamp()
	assert.Equal(t, 50, cfg.ViewDistance)
	assert.Equal(t, 20, cfg.TickRate)
}
