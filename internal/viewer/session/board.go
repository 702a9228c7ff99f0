package session

import "tilepath/internal/pathfinding"

// Board places a map on the canvas. Canvas y grows downwards and the map's
// top row is drawn first, so map row r occupies canvas row Rows-1-r.
type Board struct {
	X, Y       int
	Cell       int
	Cols, Rows int
}

// FitBoard centers the largest square-celled board of cols x rows inside the
// given area. Cells are at least 2 pixels.
func FitBoard(x, y, w, h, cols, rows int) Board {
	cell := 2
	if cols > 0 && rows > 0 {
		cell = max(2, min(w/cols, h/rows))
	}
	return Board{
		X:    x + (w-cols*cell)/2,
		Y:    y + (h-rows*cell)/2,
		Cell: cell,
		Cols: cols,
		Rows: rows,
	}
}

// Width is the board's canvas width in pixels.
func (b Board) Width() int {
	return b.Cols * b.Cell
}

// Height is the board's canvas height in pixels.
func (b Board) Height() int {
	return b.Rows * b.Cell
}

// Contains reports whether a canvas pixel lies on the board.
func (b Board) Contains(px, py int) bool {
	return px >= b.X && py >= b.Y && px < b.X+b.Width() && py < b.Y+b.Height()
}

// CellRect returns the top-left canvas pixel of tile c.
func (b Board) CellRect(c pathfinding.GridCoord) (x, y int) {
	return b.X + c.Col*b.Cell, b.Y + (b.Rows-1-c.Row)*b.Cell
}

// CellCenter returns the canvas position of the center of tile c.
func (b Board) CellCenter(c pathfinding.GridCoord) (x, y float32) {
	px, py := b.CellRect(c)
	half := float32(b.Cell) / 2
	return float32(px) + half, float32(py) + half
}

// ToEngine converts the center of canvas pixel (px, py) to the pathfinder's
// screen units, measured from the pathfinder's origin corner.
func (b Board) ToEngine(px, py int, tile pathfinding.TileSize, origin pathfinding.Origin) pathfinding.Point {
	cell := float64(b.Cell)
	x := (float64(px-b.X) + 0.5) / cell * tile.Width
	y := (float64(py-b.Y) + 0.5) / cell * tile.Height
	if origin == pathfinding.OriginBottomLeft {
		y = float64(b.Rows)*tile.Height - y
	}
	return pathfinding.Point{X: x, Y: y}
}

// FromEngine converts a position in the pathfinder's screen units to canvas
// coordinates.
func (b Board) FromEngine(p pathfinding.Point, tile pathfinding.TileSize, origin pathfinding.Origin) (x, y float32) {
	py := p.Y
	if origin == pathfinding.OriginBottomLeft {
		py = float64(b.Rows)*tile.Height - py
	}
	cell := float64(b.Cell)
	return float32(float64(b.X) + p.X/tile.Width*cell), float32(float64(b.Y) + py/tile.Height*cell)
}
