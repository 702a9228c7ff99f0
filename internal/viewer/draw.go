package viewer

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	ebitext "github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"tilepath/internal/pathfinding"
	"tilepath/internal/viewer/session"
)

var (
	panelColor  = color.RGBA{18, 18, 26, 255}
	borderColor = color.RGBA{70, 70, 90, 255}
	textColor   = color.RGBA{220, 220, 230, 255}
	dimColor    = color.RGBA{150, 150, 165, 255}
	errorColor  = color.RGBA{255, 110, 110, 255}
)

func (a *App) drawMap(screen *ebiten.Image, b session.Board) {
	m := a.session.Map()
	size := m.Size()
	for row := 0; row < size.Height; row++ {
		for col := 0; col < size.Width; col++ {
			c := pathfinding.GridCoord{Col: col, Row: row}
			x, y := b.CellRect(c)
			drawFilledRect(screen, x, y, b.Cell, b.Cell, colorFromRGB(m.Tile(c).Color, 255))
		}
	}
	if b.Cell >= 6 {
		for col := 0; col <= size.Width; col++ {
			x := float32(b.X + col*b.Cell)
			vector.StrokeLine(screen, x, float32(b.Y), x, float32(b.Y+b.Height()), 1, a.palette.grid, false)
		}
		for row := 0; row <= size.Height; row++ {
			y := float32(b.Y + row*b.Cell)
			vector.StrokeLine(screen, float32(b.X), y, float32(b.X+b.Width()), y, 1, a.palette.grid, false)
		}
	}
	drawRectBorder(screen, b.X-2, b.Y-2, b.Width()+4, b.Height()+4, 2, borderColor)
}

func (a *App) drawSearch(screen *ebiten.Image, b session.Board) {
	v := a.session.View()
	closed := withAlpha(a.palette.closed, 150)
	for _, c := range v.Closed {
		drawTileInset(screen, b, c, closed)
	}
	open := withAlpha(a.palette.open, 170)
	for _, c := range v.Open {
		drawTileInset(screen, b, c, open)
	}
	if v.HasCurrent && a.session.Stepping() {
		x, y := b.CellRect(v.Current)
		drawRectBorder(screen, x, y, b.Cell, b.Cell, 2, color.RGBA{255, 255, 255, 255})
	}
}

func (a *App) drawPath(screen *ebiten.Image, b session.Board) {
	width := max(2, float32(b.Cell)/5)

	// While stepping, draw the partial route through tile centers.
	if a.session.Stepping() {
		path := a.session.View().Path
		for i := 1; i < len(path); i++ {
			x0, y0 := b.CellCenter(path[i-1])
			x1, y1 := b.CellCenter(path[i])
			vector.StrokeLine(screen, x0, y0, x1, y1, width, withAlpha(a.palette.path, 160), true)
		}
		return
	}

	points := a.session.WaypointsOnCanvas(b)
	for i := 1; i < len(points); i++ {
		vector.StrokeLine(screen, points[i-1][0], points[i-1][1], points[i][0], points[i][1], width, a.palette.path, true)
	}
	for _, p := range points {
		vector.DrawFilledCircle(screen, p[0], p[1], width, a.palette.path, true)
	}
}

func (a *App) drawEndpoints(screen *ebiten.Image, b session.Board) {
	if c, ok := a.session.Start(); ok {
		drawTileMarkerCircle(screen, b, c, a.palette.start)
	}
	if c, ok := a.session.Target(); ok {
		drawTileMarkerCircle(screen, b, c, a.palette.target)
	}
}

func (a *App) drawSidebar(screen *ebiten.Image, x, y, w, h int) {
	drawFilledRect(screen, x, y, w, h, panelColor)
	drawRectBorder(screen, x, y, w, h, 2, borderColor)

	face := basicfont.Face7x13
	lineHeight := face.Metrics().Height.Ceil() + 2
	row := y + 12
	maxWidth := w - 24

	lines := a.session.StatusLines()
	if a.showLegend {
		lines = a.legendLines
	}
	for _, line := range lines {
		clr := textColor
		if strings.HasPrefix(line, "Error:") {
			clr = errorColor
		}
		for _, part := range wrapText(face, line, maxWidth) {
			drawText(screen, face, part, x+12, row, clr)
			row += lineHeight
		}
	}

	if a.monitor != nil && !a.showLegend {
		snap := a.monitor.Snapshot()
		row += lineHeight
		stats := []string{
			fmt.Sprintf("Searches: %d (found %d)", snap.Searches, snap.Found),
			fmt.Sprintf("Avg expanded: %.1f", snap.AvgExpanded),
			fmt.Sprintf("Avg time: %s", snap.AvgElapsed),
			fmt.Sprintf("Slowest: %s", snap.Slowest),
		}
		for _, line := range stats {
			drawText(screen, face, line, x+12, row, dimColor)
			row += lineHeight
		}
	}

	footer := "[Tab] legend  [V] search  [M] reset stats"
	drawText(screen, face, footer, x+12, y+h-lineHeight-6, dimColor)
}

func drawText(screen *ebiten.Image, face font.Face, s string, x, y int, clr color.Color) {
	ebitext.Draw(screen, s, face, x, y+face.Metrics().Ascent.Ceil(), clr)
}

// wrapText splits s into lines no wider than maxWidth pixels, breaking at spaces.
func wrapText(face font.Face, s string, maxWidth int) []string {
	if s == "" || font.MeasureString(face, s).Ceil() <= maxWidth {
		return []string{s}
	}
	var lines []string
	var current string
	for _, word := range strings.Fields(s) {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if current != "" && font.MeasureString(face, candidate).Ceil() > maxWidth {
			lines = append(lines, current)
			current = word
			continue
		}
		current = candidate
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

func drawTileInset(screen *ebiten.Image, b session.Board, c pathfinding.GridCoord, clr color.RGBA) {
	x, y := b.CellRect(c)
	inset := b.Cell / 6
	size := b.Cell - inset*2
	if size < 1 {
		inset, size = 0, b.Cell
	}
	drawFilledRect(screen, x+inset, y+inset, size, size, clr)
}

func drawTileMarkerCircle(screen *ebiten.Image, b session.Board, c pathfinding.GridCoord, clr color.RGBA) {
	if b.Cell < 2 {
		return
	}
	cx, cy := b.CellCenter(c)
	radius := float32(b.Cell) * 0.35
	vector.DrawFilledCircle(screen, cx, cy, radius, clr, true)
	vector.StrokeCircle(screen, cx, cy, radius, 1, color.RGBA{255, 255, 255, 255}, true)
}

func withAlpha(c color.RGBA, a uint8) color.RGBA {
	// color.RGBA is alpha-premultiplied
	scale := func(v uint8) uint8 { return uint8(uint16(v) * uint16(a) / 255) }
	return color.RGBA{scale(c.R), scale(c.G), scale(c.B), a}
}

func drawFilledRect(screen *ebiten.Image, x, y, w, h int, clr color.RGBA) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), clr, false)
}

func drawRectBorder(screen *ebiten.Image, x, y, w, h, thickness int, clr color.RGBA) {
	t := float32(thickness)
	fx := float32(x)
	fy := float32(y)
	fw := float32(w)
	fh := float32(h)
	vector.DrawFilledRect(screen, fx, fy, fw, t, clr, false)
	vector.DrawFilledRect(screen, fx, fy+fh-t, fw, t, clr, false)
	vector.DrawFilledRect(screen, fx, fy, t, fh, clr, false)
	vector.DrawFilledRect(screen, fx+fw-t, fy, t, fh, clr, false)
}
