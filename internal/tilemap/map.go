package tilemap

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"tilepath/internal/pathfinding"
)

// Map is a rectangular grid of legend tiles. Row 0 is the bottom row; in map
// files the first line is the top row.
//
// Map implements pathfinding.Oracle. Reads are safe from several goroutines;
// SetTile must not run concurrently with searches over the map.
type Map struct {
	Name string

	width, height int
	tiles         []*TileDef
	legend        *Legend

	start, goal       pathfinding.GridCoord
	hasStart, hasGoal bool
}

// NewMap creates a map of the given size filled with the legend's default tile.
func NewMap(name string, size pathfinding.MapSize, legend *Legend) (*Map, error) {
	if size.Width <= 0 || size.Height <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", pathfinding.ErrInvalidMapSize, size.Width, size.Height)
	}
	m := &Map{
		Name:   name,
		width:  size.Width,
		height: size.Height,
		tiles:  make([]*TileDef, size.Width*size.Height),
		legend: legend,
	}
	fill := legend.DefaultTile()
	for i := range m.tiles {
		m.tiles[i] = fill
	}
	return m, nil
}

// LoadMap loads a map from the specified file path. The map is named after
// the file.
func LoadMap(mapPath string, legend *Legend) (*Map, error) {
	file, err := os.Open(mapPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open map file %s: %w", mapPath, err)
	}
	defer file.Close()

	m, err := ParseMap(file, legend)
	if err != nil {
		return nil, fmt.Errorf("map file %s: %w", mapPath, err)
	}
	m.Name = strings.TrimSuffix(filepath.Base(mapPath), filepath.Ext(mapPath))
	return m, nil
}

// ParseMap reads a map drawn with legend letters. Empty lines and lines
// starting with '#' are skipped. All map lines must have the same width.
func ParseMap(r io.Reader, legend *Legend) (*Map, error) {
	var lines []string
	var lineNumbers []int
	scanner := bufio.NewScanner(r)
	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimRight(scanner.Text(), " \t\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
		lineNumbers = append(lineNumbers, n)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading map: %w", err)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("map contains no valid map data")
	}

	width := utf8.RuneCountInString(lines[0])
	m, err := NewMap("", pathfinding.MapSize{Width: width, Height: len(lines)}, legend)
	if err != nil {
		return nil, err
	}

	for i, line := range lines {
		if got := utf8.RuneCountInString(line); got != width {
			return nil, fmt.Errorf("line %d has width %d, expected %d", lineNumbers[i], got, width)
		}
		row := m.height - 1 - i
		col := 0
		for _, ch := range line {
			c := pathfinding.GridCoord{Col: col, Row: row}
			switch ch {
			case StartMarker, AltStartMarker:
				if m.hasStart {
					return nil, fmt.Errorf("line %d: second start marker at %v", lineNumbers[i], c)
				}
				m.start, m.hasStart = c, true
			case GoalMarker:
				if m.hasGoal {
					return nil, fmt.Errorf("line %d: second goal marker at %v", lineNumbers[i], c)
				}
				m.goal, m.hasGoal = c, true
			default:
				td, ok := legend.ByLetter(ch)
				if !ok {
					return nil, fmt.Errorf("line %d: unknown tile letter %q at column %d", lineNumbers[i], ch, col)
				}
				m.tiles[m.index(c)] = td
			}
			col++
		}
	}
	return m, nil
}

func (m *Map) index(c pathfinding.GridCoord) int {
	return c.Row*m.width + c.Col
}

// Size returns the map extent in tiles.
func (m *Map) Size() pathfinding.MapSize {
	return pathfinding.MapSize{Width: m.width, Height: m.height}
}

// Legend returns the legend the map was drawn with.
func (m *Map) Legend() *Legend {
	return m.legend
}

// InBounds reports whether c lies inside the map.
func (m *Map) InBounds(c pathfinding.GridCoord) bool {
	return m.Size().Contains(c)
}

// Tile returns the tile at c, or nil outside the map.
func (m *Map) Tile(c pathfinding.GridCoord) *TileDef {
	if !m.InBounds(c) {
		return nil
	}
	return m.tiles[m.index(c)]
}

// SetTile replaces the tile at c with the legend tile registered under key.
func (m *Map) SetTile(c pathfinding.GridCoord, key string) error {
	if !m.InBounds(c) {
		return fmt.Errorf("tile %v is outside the %dx%d map", c, m.width, m.height)
	}
	td, ok := m.legend.Tile(key)
	if !ok {
		return fmt.Errorf("unknown tile %q", key)
	}
	m.tiles[m.index(c)] = td
	return nil
}

// Start returns the start marker position, if the map has one.
func (m *Map) Start() (pathfinding.GridCoord, bool) {
	return m.start, m.hasStart
}

// Goal returns the goal marker position, if the map has one.
func (m *Map) Goal() (pathfinding.GridCoord, bool) {
	return m.goal, m.hasGoal
}

// Walkable implements pathfinding.Oracle. Tiles outside the map are blocked.
// A failing walkable_rule is reported as an error.
func (m *Map) Walkable(c pathfinding.GridCoord) (bool, error) {
	td := m.Tile(c)
	if td == nil {
		return false, nil
	}
	return m.legend.walkable(td, c.Col, c.Row)
}

// Oracle returns the map as a walkability oracle.
func (m *Map) Oracle() pathfinding.Oracle {
	return m
}

// Render draws the map as text, top row first, using legend letters. Path
// tiles are drawn as '*', with the path's first and last tile drawn as the
// start and goal markers. Without a path the map's own markers are drawn.
func (m *Map) Render(path []pathfinding.GridCoord) string {
	overlay := make(map[pathfinding.GridCoord]rune, len(path)+2)
	for _, c := range path {
		overlay[c] = '*'
	}
	if len(path) > 0 {
		overlay[path[0]] = StartMarker
		overlay[path[len(path)-1]] = GoalMarker
	} else {
		if m.hasStart {
			overlay[m.start] = StartMarker
		}
		if m.hasGoal {
			overlay[m.goal] = GoalMarker
		}
	}

	var sb strings.Builder
	sb.Grow((m.width + 1) * m.height)
	for row := m.height - 1; row >= 0; row-- {
		for col := 0; col < m.width; col++ {
			c := pathfinding.GridCoord{Col: col, Row: row}
			if r, ok := overlay[c]; ok {
				sb.WriteRune(r)
				continue
			}
			sb.WriteRune(m.tiles[m.index(c)].Rune())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
