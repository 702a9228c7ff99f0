package tilemap

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tilepath/internal/config"
	"tilepath/internal/pathfinding"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestLoadCatalogFromRepositoryConfig(t *testing.T) {
	cfg, err := config.LoadConfig(filepath.Join("..", "..", "config.yaml"))
	require.NoError(t, err)

	cat, err := LoadCatalog(cfg, quiet)
	require.NoError(t, err)
	assert.Equal(t, []string{"open", "maze", "river"}, cat.Keys)
	assert.Equal(t, 1, cat.Default)
	assert.Equal(t, "Maze", cat.DefaultMap().Name)

	m, ok := cat.Lookup("river")
	require.True(t, ok)
	assert.Equal(t, "River crossing", m.Name)
	_, ok = cat.Lookup("swamp")
	assert.False(t, ok)
}

func TestLoadCatalogSkipsBrokenMaps(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	write("tiles.yaml", testLegend)
	write("good.map", "S..\n..G\n")
	write("bad.map", "S..\n.?G\n")
	write("config.yaml", `
grid: {map_width: 6, map_height: 4}
maps:
  legend: tiles.yaml
  default: good
  entries:
    - {key: bad, file: bad.map}
    - {key: missing, file: missing.map}
    - {key: good, file: good.map}
`)
	cfg, err := config.LoadConfig(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)

	cat, err := LoadCatalog(cfg, quiet)
	require.NoError(t, err)
	assert.Equal(t, []string{"good"}, cat.Keys)
	assert.Equal(t, 0, cat.Default)
	assert.Equal(t, "good", cat.DefaultMap().Name, "file name when the entry has no name")
}

func TestLoadCatalogFallsBackToBlankGrid(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tiles.yaml"), []byte(testLegend), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"),
		[]byte("grid: {map_width: 6, map_height: 4}\nmaps: {legend: tiles.yaml}\n"), 0o644))
	cfg, err := config.LoadConfig(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)

	cat, err := LoadCatalog(cfg, quiet)
	require.NoError(t, err)
	require.Len(t, cat.Maps, 1)
	assert.Equal(t, pathfinding.MapSize{Width: 6, Height: 4}, cat.DefaultMap().Size())
	_, hasStart := cat.DefaultMap().Start()
	assert.False(t, hasStart)
}

func TestLoadCatalogNeedsLegend(t *testing.T) {
	_, err := LoadCatalog(config.Default(), quiet)
	assert.Error(t, err)

	cfg, err := config.Parse([]byte("maps: {legend: /nonexistent/tiles.yaml}"))
	require.NoError(t, err)
	_, err = LoadCatalog(cfg, quiet)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
