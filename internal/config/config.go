package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"tilepath/internal/pathfinding"
)

// Config holds all application configuration values
type Config struct {
	Display     DisplayConfig     `yaml:"display"`
	Grid        GridConfig        `yaml:"grid"`
	Pathfinding PathfindingConfig `yaml:"pathfinding"`
	Viewer      ViewerConfig      `yaml:"viewer"`
	Logging     LoggingConfig     `yaml:"logging"`
	Maps        MapsConfig        `yaml:"maps"`
	Planner     PlannerConfig     `yaml:"planner"`

	// directory of the loaded file; relative asset paths resolve against it
	baseDir string
}

type DisplayConfig struct {
	ScreenWidth  int    `yaml:"screen_width"`
	ScreenHeight int    `yaml:"screen_height"`
	WindowTitle  string `yaml:"window_title"`
	Resizable    bool   `yaml:"resizable"`
	SidebarWidth int    `yaml:"sidebar_width"`
}

// GridConfig describes the blank grid used when no map file is loaded, and
// the tile extent used for coordinate conversion.
type GridConfig struct {
	MapWidth   int     `yaml:"map_width"`
	MapHeight  int     `yaml:"map_height"`
	TileWidth  float64 `yaml:"tile_width"`
	TileHeight float64 `yaml:"tile_height"`
}

// PathfindingConfig mirrors the search policy. Absent keys keep the engine
// defaults, hence the pointers.
type PathfindingConfig struct {
	Heuristic              string `yaml:"heuristic"`
	AllowDiagonal          *bool  `yaml:"allow_diagonal"`
	IgnoreDiagonalBarriers *bool  `yaml:"ignore_diagonal_barriers"`
	AllowCrossingBorders   *bool  `yaml:"allow_crossing_borders"`
	Origin                 string `yaml:"origin"`
}

type ViewerConfig struct {
	StepsPerFrame int         `yaml:"steps_per_frame"`
	ShowSearch    bool        `yaml:"show_search"`
	Colors        ColorConfig `yaml:"colors"`
}

// ColorConfig holds RGB triples for the viewer overlays.
type ColorConfig struct {
	Background [3]int `yaml:"background"`
	Grid       [3]int `yaml:"grid"`
	Open       [3]int `yaml:"open"`
	Closed     [3]int `yaml:"closed"`
	Path       [3]int `yaml:"path"`
	Start      [3]int `yaml:"start"`
	Target     [3]int `yaml:"target"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

type MapsConfig struct {
	Legend  string     `yaml:"legend"`
	Default string     `yaml:"default"`
	Entries []MapEntry `yaml:"entries"`
}

type MapEntry struct {
	Key  string `yaml:"key"`
	Name string `yaml:"name"`
	File string `yaml:"file"`
}

type PlannerConfig struct {
	Workers   int `yaml:"workers"`
	QueueSize int `yaml:"queue_size"`
}

// LoadConfig loads the configuration from a YAML file, fills defaults and
// validates it.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", filename, err)
	}

	config, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", filename, err)
	}
	config.baseDir = filepath.Dir(filename)
	return config, nil
}

// Parse decodes configuration from YAML bytes. Relative paths resolve
// against the working directory.
func Parse(data []byte) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// MustLoadConfig loads the configuration and panics on error
func MustLoadConfig(filename string) *Config {
	config, err := LoadConfig(filename)
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}
	return config
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	var config Config
	config.applyDefaults()
	return &config
}

func (c *Config) applyDefaults() {
	if c.Display.ScreenWidth == 0 {
		c.Display.ScreenWidth = 1024
	}
	if c.Display.ScreenHeight == 0 {
		c.Display.ScreenHeight = 768
	}
	if c.Display.WindowTitle == "" {
		c.Display.WindowTitle = "tilepath"
	}
	if c.Display.SidebarWidth == 0 {
		c.Display.SidebarWidth = 240
	}
	if c.Grid.MapWidth == 0 {
		c.Grid.MapWidth = 32
	}
	if c.Grid.MapHeight == 0 {
		c.Grid.MapHeight = 24
	}
	if c.Grid.TileWidth == 0 {
		c.Grid.TileWidth = 16
	}
	if c.Grid.TileHeight == 0 {
		c.Grid.TileHeight = 16
	}
	if c.Viewer.StepsPerFrame == 0 {
		c.Viewer.StepsPerFrame = 1
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
}

var (
	logLevels  = []string{"debug", "info", "warn", "warning", "error"}
	logFormats = []string{"text", "json"}
)

func oneOf(v string, allowed []string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

// Validate reports the first configuration fault found.
func (c *Config) Validate() error {
	if c.Display.ScreenWidth <= 0 || c.Display.ScreenHeight <= 0 {
		return fmt.Errorf("display: screen size must be positive, got %dx%d",
			c.Display.ScreenWidth, c.Display.ScreenHeight)
	}
	if c.Display.SidebarWidth < 0 || c.Display.SidebarWidth >= c.Display.ScreenWidth {
		return fmt.Errorf("display: sidebar_width %d does not fit a %d wide screen",
			c.Display.SidebarWidth, c.Display.ScreenWidth)
	}
	if c.Grid.MapWidth <= 0 || c.Grid.MapHeight <= 0 {
		return fmt.Errorf("grid: %w: got %dx%d", pathfinding.ErrInvalidMapSize,
			c.Grid.MapWidth, c.Grid.MapHeight)
	}
	if c.Grid.TileWidth <= 0 || c.Grid.TileHeight <= 0 {
		return fmt.Errorf("grid: %w: got %gx%g", pathfinding.ErrInvalidTileSize,
			c.Grid.TileWidth, c.Grid.TileHeight)
	}
	if _, err := c.PathfinderOptions(); err != nil {
		return fmt.Errorf("pathfinding: %w", err)
	}
	if c.Viewer.StepsPerFrame < 0 {
		return fmt.Errorf("viewer: steps_per_frame must not be negative, got %d", c.Viewer.StepsPerFrame)
	}
	if !oneOf(c.Logging.Level, logLevels) {
		return fmt.Errorf("logging: unknown level %q", c.Logging.Level)
	}
	if !oneOf(c.Logging.Format, logFormats) {
		return fmt.Errorf("logging: unknown format %q", c.Logging.Format)
	}
	if c.Planner.Workers < 0 || c.Planner.QueueSize < 0 {
		return fmt.Errorf("planner: workers and queue_size must not be negative")
	}

	seen := make(map[string]bool, len(c.Maps.Entries))
	for i, entry := range c.Maps.Entries {
		if entry.Key == "" || entry.File == "" {
			return fmt.Errorf("maps: entry %d needs both key and file", i)
		}
		if seen[entry.Key] {
			return fmt.Errorf("maps: duplicate key %q", entry.Key)
		}
		seen[entry.Key] = true
	}
	if c.Maps.Default != "" && !seen[c.Maps.Default] {
		return fmt.Errorf("maps: default %q is not a listed map", c.Maps.Default)
	}
	return nil
}

// PathfinderOptions translates the pathfinding section into engine options.
func (c *Config) PathfinderOptions() ([]pathfinding.Option, error) {
	var opts []pathfinding.Option
	p := c.Pathfinding
	if p.Heuristic != "" {
		h, err := pathfinding.ParseHeuristic(p.Heuristic)
		if err != nil {
			return nil, err
		}
		opts = append(opts, pathfinding.WithHeuristic(h))
	}
	if p.Origin != "" {
		o, err := pathfinding.ParseOrigin(p.Origin)
		if err != nil {
			return nil, err
		}
		opts = append(opts, pathfinding.WithOrigin(o))
	}
	if p.AllowDiagonal != nil {
		opts = append(opts, pathfinding.WithDiagonalMovement(*p.AllowDiagonal))
	}
	if p.IgnoreDiagonalBarriers != nil {
		opts = append(opts, pathfinding.WithIgnoreDiagonalBarriers(*p.IgnoreDiagonalBarriers))
	}
	if p.AllowCrossingBorders != nil {
		opts = append(opts, pathfinding.WithCrossingBorders(*p.AllowCrossingBorders))
	}
	return opts, nil
}

// ResolvePath makes a path from the config file relative to the file's
// directory. Absolute paths are returned unchanged.
func (c *Config) ResolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) || c.baseDir == "" {
		return p
	}
	return filepath.Join(c.baseDir, p)
}

// MapEntry returns the map registered under key.
func (c *Config) MapEntry(key string) (MapEntry, bool) {
	for _, entry := range c.Maps.Entries {
		if entry.Key == key {
			return entry, true
		}
	}
	return MapEntry{}, false
}

// DefaultMapEntry returns the configured default map, or the first listed one.
func (c *Config) DefaultMapEntry() (MapEntry, bool) {
	if c.Maps.Default != "" {
		return c.MapEntry(c.Maps.Default)
	}
	if len(c.Maps.Entries) == 0 {
		return MapEntry{}, false
	}
	return c.Maps.Entries[0], true
}

// Helper functions for easy access to commonly used values
func (c *Config) GetScreenWidth() int {
	return c.Display.ScreenWidth
}

func (c *Config) GetScreenHeight() int {
	return c.Display.ScreenHeight
}

func (c *Config) GetSidebarWidth() int {
	return c.Display.SidebarWidth
}

func (c *Config) GetMapSize() pathfinding.MapSize {
	return pathfinding.MapSize{Width: c.Grid.MapWidth, Height: c.Grid.MapHeight}
}

func (c *Config) GetTileSize() pathfinding.TileSize {
	return pathfinding.TileSize{Width: c.Grid.TileWidth, Height: c.Grid.TileHeight}
}

func (c *Config) GetStepsPerFrame() int {
	return c.Viewer.StepsPerFrame
}

func (c *Config) GetLegendPath() string {
	return c.ResolvePath(c.Maps.Legend)
}
