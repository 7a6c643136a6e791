package ioconfig_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/skippy/farm/internal/iofs"
	"github.com/skippy/farm/internal/ioconfig"
	"github.com/skippy/farm/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	cfg, err := ioconfig.Load(home)
	require.NoError(t, err)

	def := config.New()
	assert.Equal(t, home, cfg.HomeDir)
	assert.Equal(t, def.Database, cfg.Database)
	assert.Equal(t, def.Growth, cfg.Growth)
}

func TestLoadTemplate(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, iofs.EnsureDirs(home))
	require.NoError(t, iofs.EnsureConfigFile(home))

	cfg, err := ioconfig.Load(home)
	require.NoError(t, err)
	def := config.New()
	assert.Equal(t, def.SDM, cfg.SDM)
	assert.Equal(t, def.Pedigree, cfg.Pedigree)
	assert.Equal(t, def.Sync.GrowthRateTolerance, cfg.Sync.GrowthRateTolerance)
}

func TestLoadFileAndEnv(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, iofs.EnsureDirs(home))
	yaml := `growth:
  hemisphere: south
  forecast_days: 10
pedigree:
  max_depth: 4
`
	path := config.ConfigFilePath(home)
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	t.Setenv("FARM_PEDIGREE_MAX_DEPTH", "9")
	t.Setenv("FARM_DATABASE_DATABASE", "farm_env")

	cfg, err := ioconfig.Load(home)
	require.NoError(t, err)
	assert.Equal(t, "south", cfg.Growth.Hemisphere)
	assert.Equal(t, 10, cfg.Growth.ForecastDays)
	assert.Equal(t, 9, cfg.Pedigree.MaxDepth)
	assert.Equal(t, "farm_env", cfg.Database.Database)
}

func TestLoadBadYAML(t *testing.T) {
	home := t.TempDir()
	path := config.ConfigFilePath(home)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("growth: [oops"), 0644))

	_, err := ioconfig.Load(home)
	assert.Error(t, err)
}
