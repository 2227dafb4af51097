package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultValues(t *testing.T) {
	t.Cleanup(viper.Reset)

	s, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "info", s.LogLevel)
	assert.Equal(t, "prefabs", s.PrefabDir)
	assert.Equal(t, "", s.SensorScript)
	assert.False(t, s.Watch)
	assert.Equal(t, 400.0, s.Arena.HalfExtent)
	assert.Equal(t, 100.0, s.Arena.CellSize)
	assert.Equal(t, 6, s.Arena.Aliens)
	assert.Equal(t, 40, s.Arena.Asteroids)
	assert.Equal(t, int64(0), s.Arena.Seed)
	assert.Equal(t, 60, s.Arena.TickRate)
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	cfg := `
logLevel: debug
watch: true
arena:
  aliens: 12
  cellSize: 50
  seed: 42
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "alienfield.yaml"), []byte(cfg), 0644))

	s, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "debug", s.LogLevel)
	assert.True(t, s.Watch)
	assert.Equal(t, 12, s.Arena.Aliens)
	assert.Equal(t, 50.0, s.Arena.CellSize)
	assert.Equal(t, int64(42), s.Arena.Seed)
	assert.Equal(t, 40, s.Arena.Asteroids, "unset keys keep defaults")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "alienfield.yaml"), []byte("arena:\n  aliens: 12\n"), 0644))
	t.Setenv("ALIENFIELD_ARENA_ALIENS", "3")
	t.Setenv("ALIENFIELD_LOGLEVEL", "warn")

	s, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Arena.Aliens)
	assert.Equal(t, "warn", s.LogLevel)
}

func TestLoad_MalformedFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "alienfield.yaml"), []byte("arena: [unterminated"), 0644))

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: read alienfield")
}
