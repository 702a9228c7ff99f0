package pathfinding

import (
	"fmt"
	"math"
	"strings"
)

// Point is a position in screen units.
type Point struct {
	X float64
	Y float64
}

// MapSize is the map extent in tiles.
type MapSize struct {
	Width  int
	Height int
}

func (s MapSize) valid() bool {
	return s.Width > 0 && s.Height > 0
}

// Contains reports whether c lies inside the map.
func (s MapSize) Contains(c GridCoord) bool {
	return c.Col >= 0 && c.Row >= 0 && c.Col < s.Width && c.Row < s.Height
}

// TileSize is the extent of one tile in screen units.
type TileSize struct {
	Width  float64
	Height float64
}

func (s TileSize) valid() bool {
	return s.Width > 0 && s.Height > 0
}

// Origin names the screen corner that screen positions are measured from.
type Origin int

const (
	// OriginBottomLeft measures y upward from the bottom edge. Grid row 0 is
	// the first band of screen y.
	OriginBottomLeft Origin = iota
	// OriginTopLeft measures y downward from the top edge. Grid rows are
	// flipped so that row 0 is still the bottom band of the map.
	OriginTopLeft
)

func (o Origin) String() string {
	switch o {
	case OriginBottomLeft:
		return "bottom_left"
	case OriginTopLeft:
		return "top_left"
	default:
		return fmt.Sprintf("Origin(%d)", int(o))
	}
}

func (o Origin) valid() bool {
	return o == OriginBottomLeft || o == OriginTopLeft
}

// ParseOrigin accepts "bottom_left"/"top_left" with '-' or '_' separators
// or none, case-insensitively.
func ParseOrigin(s string) (Origin, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.NewReplacer("-", "", "_", "", " ", "").Replace(name)
	switch name {
	case "bottomleft":
		return OriginBottomLeft, nil
	case "topleft":
		return OriginTopLeft, nil
	}
	return OriginBottomLeft, fmt.Errorf("%w: %q", ErrUnknownOrigin, s)
}

// screenRow maps a grid row to the row band used on screen and back; the
// mapping is its own inverse.
func screenRow(row, mapHeight int, origin Origin) int {
	if origin == OriginTopLeft {
		return mapHeight - 1 - row
	}
	return row
}

// TileCenter returns the screen position at the center of tile c.
func TileCenter(c GridCoord, mapSize MapSize, tileSize TileSize, origin Origin) Point {
	row := screenRow(c.Row, mapSize.Height, origin)
	return Point{
		X: float64(c.Col)*tileSize.Width + tileSize.Width/2,
		Y: float64(row)*tileSize.Height + tileSize.Height/2,
	}
}

// TileAt returns the tile containing screen position p. Positions left of or
// below the map map to negative coordinates rather than being clamped.
func TileAt(p Point, mapSize MapSize, tileSize TileSize, origin Origin) GridCoord {
	col := int(math.Floor(p.X / tileSize.Width))
	row := int(math.Floor(p.Y / tileSize.Height))
	return GridCoord{Col: col, Row: screenRow(row, mapSize.Height, origin)}
}
