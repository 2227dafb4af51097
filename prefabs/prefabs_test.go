package prefabs

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

func TestEmbeddedPrefabsDecode(t *testing.T) {
	set, err := LoadSet(Source{Dir: t.TempDir()})
	require.NoError(t, err)

	assert.Equal(t, "alien", set.Alien.Name)
	assert.Equal(t, 35.0, set.Alien.DetectionRadius)
	assert.Equal(t, 8.0, set.Alien.NormalSpeed)
	assert.Equal(t, 15.0, set.Alien.PursuitSpeed)
	assert.Equal(t, 100.0, set.Alien.PathfindSpeed)
	assert.Equal(t, color.NRGBA{R: 0xe8, G: 0x41, B: 0x3c, A: 0xff}, set.Alien.Colors["pursue"].Color)
	assert.Equal(t, color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 0x80}, set.Alien.Colors["dead"].Color)

	assert.Equal(t, 100.0, set.Ship.Fuel.Capacity)
	assert.Equal(t, 40, set.Asteroids.Count)
	assert.Equal(t, colornames.Rosybrown, set.Asteroids.Color.Color)
}

func TestDiskOverridesEmbedded(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, AlienFile), []byte("name: custom\nnormal_speed: 3\n"), 0o644))

	src := Source{Dir: dir}
	spec, err := LoadSpecFrom[AlienSpec](src, "prefabs/alien.yaml")
	require.NoError(t, err)
	assert.Equal(t, "custom", spec.Name)
	assert.Equal(t, 3.0, spec.NormalSpeed)
	assert.Zero(t, spec.PursuitSpeed)

	_, ok := src.ModTime(AlienFile)
	assert.True(t, ok)
	_, ok = src.ModTime(ShipFile)
	assert.False(t, ok)
}

func TestLoadSpecErrors(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ShipFile), []byte("thrust: [not a number"), 0o644))
	src := Source{Dir: dir}

	_, err := LoadSpecFrom[ShipSpec](src, ShipFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prefabs: unmarshal ship.yaml")

	_, err = LoadSpecFrom[ShipSpec](src, "missing.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prefabs: load missing.yaml")

	_, err = LoadSet(src)
	assert.Error(t, err)
}

func TestLoadScript(t *testing.T) {
	for _, name := range []string{"detect.tengo", "scripts/detect.tengo", "prefabs/scripts/detect.tengo"} {
		t.Run(name, func(t *testing.T) {
			data, err := Source{Dir: t.TempDir()}.LoadScript(name)
			require.NoError(t, err)
			assert.Contains(t, string(data), "detect =")
		})
	}
}

func TestYAMLColor(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    color.Color
		wantErr bool
	}{
		{"rgb", `"#102030"`, color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}, false},
		{"rgba_no_hash", `"10203040"`, color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x40}, false},
		{"named", `Crimson`, colornames.Crimson, false},
		{"short", `"#123"`, nil, true},
		{"unknown_name", `notacolour`, nil, true},
		{"not_hex", `"#zz0000"`, nil, true},
		{"sequence", `[1, 2]`, nil, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var got YAMLColor
			err := yaml.Unmarshal([]byte(c.in), &got)
			if c.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.want, got.Color)
		})
	}

	var unset *YAMLColor
	assert.Equal(t, color.White, unset.Or(color.White))
}

func TestWatcherReportsChangedSpec(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, AlienFile), []byte("name: hot\n"), 0o644))

	select {
	case name := <-w.Events:
		assert.Equal(t, AlienFile, name)
	case <-time.After(5 * time.Second):
		t.Fatal("no watcher event for alien.yaml")
	}
}

func TestWatchDirs(t *testing.T) {
	dir := t.TempDir()
	src := Source{Dir: dir}
	assert.Equal(t, []string{dir}, src.WatchDirs())

	require.NoError(t, os.Mkdir(filepath.Join(dir, "scripts"), 0o755))
	assert.Equal(t, []string{dir, filepath.Join(dir, "scripts")}, src.WatchDirs())
}
