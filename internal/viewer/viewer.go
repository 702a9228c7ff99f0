package viewer

import (
	"fmt"
	"image/color"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"tilepath/internal/config"
	"tilepath/internal/mathutil"
	"tilepath/internal/monitoring"
	"tilepath/internal/viewer/session"
)

const padding = 16

// App is the interactive path viewer. It implements ebiten.Game.
type App struct {
	session *session.Session
	monitor *monitoring.SearchMonitor
	logger  *slog.Logger

	width, height int
	sidebarWidth  int
	stepsPerFrame int
	showSearch    bool
	showLegend    bool
	animating     bool
	palette       palette
	legendLines   []string
}

// New creates the viewer over a prepared session. monitor may be nil.
func New(cfg *config.Config, s *session.Session, monitor *monitoring.SearchMonitor, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	return &App{
		session:       s,
		monitor:       monitor,
		logger:        logger,
		width:         cfg.GetScreenWidth(),
		height:        cfg.GetScreenHeight(),
		sidebarWidth:  cfg.GetSidebarWidth(),
		stepsPerFrame: max(1, cfg.GetStepsPerFrame()),
		showSearch:    cfg.Viewer.ShowSearch,
		palette:       newPalette(cfg.Viewer.Colors),
		legendLines:   s.Map().Legend().Lines(),
	}
}

// Run opens the window and blocks until it is closed.
func Run(cfg *config.Config, app *App) error {
	ebiten.SetWindowSize(cfg.GetScreenWidth(), cfg.GetScreenHeight())
	ebiten.SetWindowTitle(cfg.Display.WindowTitle)
	if cfg.Display.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	return ebiten.RunGame(app)
}

// board lays the current map out in the area left of the sidebar.
func (a *App) board() session.Board {
	size := a.session.Map().Size()
	areaW := a.width - a.sidebarWidth - padding*3
	areaH := a.height - padding*2 - headerHeight
	return session.FitBoard(padding, padding+headerHeight, areaW, areaH, size.Width, size.Height)
}

func (a *App) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	a.handleKeys()
	a.handleMouse()

	if a.animating {
		a.animating = a.session.Advance(a.stepsPerFrame)
	}
	return nil
}

func (a *App) handleKeys() {
	s := a.session
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		s.CycleHeuristic()
	case inpututil.IsKeyJustPressed(ebiten.KeyD):
		s.ToggleDiagonal()
	case inpututil.IsKeyJustPressed(ebiten.KeyB):
		s.ToggleIgnoreBarriers()
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		s.ToggleCrossBorders()
	case inpututil.IsKeyJustPressed(ebiten.KeyO):
		s.ToggleOrigin()
	case inpututil.IsKeyJustPressed(ebiten.KeyV):
		a.showSearch = !a.showSearch
	case inpututil.IsKeyJustPressed(ebiten.KeyTab):
		a.showLegend = !a.showLegend
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		s.Reset()
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		if a.monitor != nil {
			a.monitor.Reset()
		}
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		if a.animating {
			a.animating = false
		} else if !s.Stepping() {
			a.animating = s.BeginStepping() && s.Stepping()
		} else {
			a.animating = true
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyPeriod):
		a.animating = false
		if !s.Stepping() {
			s.BeginStepping()
		}
		s.Advance(1)
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		a.animating = false
		s.Solve()
	case inpututil.IsKeyJustPressed(ebiten.KeyRight), inpututil.IsKeyJustPressed(ebiten.KeyN):
		a.animating = false
		s.NextMap()
		a.legendLines = s.Map().Legend().Lines()
	case inpututil.IsKeyJustPressed(ebiten.KeyLeft), inpututil.IsKeyJustPressed(ebiten.KeyP):
		a.animating = false
		s.PrevMap()
		a.legendLines = s.Map().Legend().Lines()
	default:
		return
	}
	if !s.Stepping() {
		a.animating = false
	}
}

func (a *App) handleMouse() {
	left := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	right := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight)
	middle := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonMiddle)
	if !left && !right && !middle {
		return
	}
	px, py := ebiten.CursorPosition()
	c, ok := a.session.TileAtCanvas(a.board(), px, py)
	if !ok {
		return
	}
	a.animating = false
	switch {
	case middle, left && ebiten.IsKeyPressed(ebiten.KeyShift):
		a.session.ToggleWall(c)
	case left:
		a.session.SetStart(c)
	case right:
		a.session.SetTarget(c)
	}
	a.logger.Debug("tile clicked", "tile", c)
}

func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(a.palette.background)

	b := a.board()
	a.drawHeader(screen)
	a.drawMap(screen, b)
	if a.showSearch {
		a.drawSearch(screen, b)
	}
	a.drawPath(screen, b)
	a.drawEndpoints(screen, b)

	sidebarX := a.width - a.sidebarWidth - padding
	a.drawSidebar(screen, sidebarX, padding, a.sidebarWidth, a.height-padding*2)
}

func (a *App) Layout(_, _ int) (int, int) {
	return a.width, a.height
}

const headerHeight = 36

func (a *App) drawHeader(screen *ebiten.Image) {
	m := a.session.Map()
	idx, n := a.session.MapIndex()
	title := fmt.Sprintf("%s (%d/%d)", m.Name, idx+1, n)
	ebitenutil.DebugPrintAt(screen, title, padding, padding-4)
	ebitenutil.DebugPrintAt(screen,
		"LMB start  RMB target  Shift+LMB wall  Space animate  . step  Enter solve  N/P map  Esc quit",
		padding, padding+12)
}

type palette struct {
	background, grid, open, closed, path, start, target color.RGBA
}

func newPalette(c config.ColorConfig) palette {
	pick := func(rgb [3]int, fallback color.RGBA) color.RGBA {
		if rgb == [3]int{} {
			return fallback
		}
		return colorFromRGB(rgb, 255)
	}
	return palette{
		background: pick(c.Background, color.RGBA{15, 15, 22, 255}),
		grid:       pick(c.Grid, color.RGBA{30, 30, 40, 255}),
		open:       pick(c.Open, color.RGBA{70, 150, 90, 255}),
		closed:     pick(c.Closed, color.RGBA{120, 70, 70, 255}),
		path:       pick(c.Path, color.RGBA{240, 210, 60, 255}),
		start:      pick(c.Start, color.RGBA{50, 200, 255, 255}),
		target:     pick(c.Target, color.RGBA{230, 80, 80, 255}),
	}
}

// colorFromRGB converts a config or legend color; channels outside 0..255
// are clamped.
func colorFromRGB(rgb [3]int, a uint8) color.RGBA {
	channel := func(v int) uint8 {
		return uint8(mathutil.Clamp(v, 0, 255))
	}
	return color.RGBA{channel(rgb[0]), channel(rgb[1]), channel(rgb[2]), a}
}
