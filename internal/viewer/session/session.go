package session

import (
	"errors"
	"fmt"
	"log/slog"

	"tilepath/internal/pathfinding"
	"tilepath/internal/tilemap"
)

// Session is the interactive state behind the viewer: the current map, the
// chosen endpoints, the pathfinder policy and the last search. It does no
// drawing and is driven from a single goroutine.
type Session struct {
	maps     []*tilemap.Map
	mapIndex int
	pf       *pathfinding.Pathfinder
	logger   *slog.Logger

	start, target       pathfinding.GridCoord
	hasStart, hasTarget bool

	result    pathfinding.Result
	hasResult bool
	stepper   *pathfinding.Stepper
	lastErr   error
}

// New creates a session over maps, searching with pf. The pathfinder is
// re-pointed at the current map whenever the map changes.
func New(maps []*tilemap.Map, pf *pathfinding.Pathfinder, logger *slog.Logger) (*Session, error) {
	if len(maps) == 0 {
		return nil, errors.New("session needs at least one map")
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &Session{maps: maps, pf: pf, logger: logger}
	if err := s.selectMap(0); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) selectMap(i int) error {
	m := s.maps[i]
	if err := s.pf.SetMapSize(m.Size()); err != nil {
		return fmt.Errorf("map %s: %w", m.Name, err)
	}
	s.pf.SetOracle(m)
	s.mapIndex = i
	s.logger.Info("map selected", "map", m.Name, "width", m.Size().Width, "height", m.Size().Height)
	s.Reset()
	return nil
}

// Map returns the current map.
func (s *Session) Map() *tilemap.Map {
	return s.maps[s.mapIndex]
}

// MapIndex returns the position of the current map and the number of maps.
func (s *Session) MapIndex() (int, int) {
	return s.mapIndex, len(s.maps)
}

// Pathfinder exposes the pathfinder for reading its configuration.
func (s *Session) Pathfinder() *pathfinding.Pathfinder {
	return s.pf
}

// SelectMap switches to map i.
func (s *Session) SelectMap(i int) error {
	if i < 0 || i >= len(s.maps) {
		return fmt.Errorf("map index %d out of range [0,%d)", i, len(s.maps))
	}
	return s.selectMap(i)
}

// NextMap switches to the following map, wrapping around.
func (s *Session) NextMap() {
	s.switchMap((s.mapIndex + 1) % len(s.maps))
}

// PrevMap switches to the preceding map, wrapping around.
func (s *Session) PrevMap() {
	s.switchMap((s.mapIndex - 1 + len(s.maps)) % len(s.maps))
}

func (s *Session) switchMap(i int) {
	if err := s.selectMap(i); err != nil {
		s.lastErr = err
		s.logger.Warn("map switch failed", "error", err)
	}
}

// Reset restores the map's own start and goal markers and clears the search.
func (s *Session) Reset() {
	m := s.Map()
	s.start, s.hasStart = m.Start()
	s.target, s.hasTarget = m.Goal()
	s.clearSearch()
	s.lastErr = nil
	s.Solve()
}

func (s *Session) clearSearch() {
	s.result = pathfinding.Result{}
	s.hasResult = false
	s.stepper = nil
}

// Start returns the chosen start tile.
func (s *Session) Start() (pathfinding.GridCoord, bool) {
	return s.start, s.hasStart
}

// Target returns the chosen target tile.
func (s *Session) Target() (pathfinding.GridCoord, bool) {
	return s.target, s.hasTarget
}

// SetStart moves the start to c and searches again. Tiles outside the map
// are ignored.
func (s *Session) SetStart(c pathfinding.GridCoord) {
	if !s.pf.InBounds(c) {
		return
	}
	s.start, s.hasStart = c, true
	s.Solve()
}

// SetTarget moves the target to c and searches again.
func (s *Session) SetTarget(c pathfinding.GridCoord) {
	if !s.pf.InBounds(c) {
		return
	}
	s.target, s.hasTarget = c, true
	s.Solve()
}

// ToggleWall swaps a walkable tile for the legend's first blocking tile and
// a blocked tile for the default tile.
func (s *Session) ToggleWall(c pathfinding.GridCoord) {
	m := s.Map()
	ok, err := m.Walkable(c)
	if err != nil {
		s.fail(err)
		return
	}
	key := m.Legend().Default
	if ok {
		wall, found := blockingTile(m.Legend())
		if !found {
			return
		}
		key = wall
	}
	if err := m.SetTile(c, key); err != nil {
		s.fail(err)
		return
	}
	s.Solve()
}

func blockingTile(legend *tilemap.Legend) (string, bool) {
	if td, ok := legend.Tile("wall"); ok && !td.Walkable {
		return td.Key, true
	}
	for _, key := range legend.Keys() {
		if !legend.Tiles[key].Walkable {
			return key, true
		}
	}
	return "", false
}

// ToggleDiagonal flips diagonal movement.
func (s *Session) ToggleDiagonal() {
	s.pf.SetDiagonalMovement(!s.pf.DiagonalMovement())
	s.Solve()
}

// ToggleIgnoreBarriers flips whether diagonal steps ignore their flanks.
func (s *Session) ToggleIgnoreBarriers() {
	s.pf.SetIgnoreDiagonalBarriers(!s.pf.IgnoresDiagonalBarriers())
	s.Solve()
}

// ToggleCrossBorders flips whether one open flank is enough for a diagonal.
func (s *Session) ToggleCrossBorders() {
	s.pf.SetCrossingBorders(!s.pf.CrossesBorders())
	s.Solve()
}

// CycleHeuristic switches to the next heuristic.
func (s *Session) CycleHeuristic() {
	if err := s.pf.SetHeuristic(s.pf.Heuristic().Next()); err != nil {
		s.fail(err)
		return
	}
	s.Solve()
}

// ToggleOrigin swaps the coordinate origin. Searches do not depend on it but
// the waypoints do.
func (s *Session) ToggleOrigin() {
	next := pathfinding.OriginTopLeft
	if s.pf.Origin() == pathfinding.OriginTopLeft {
		next = pathfinding.OriginBottomLeft
	}
	if err := s.pf.SetOrigin(next); err != nil {
		s.fail(err)
		return
	}
	s.Solve()
}

// Solve runs a full search between the endpoints, abandoning any stepwise
// search in progress.
func (s *Session) Solve() {
	s.clearSearch()
	if !s.hasStart || !s.hasTarget {
		return
	}
	r, err := s.pf.SearchTiles(s.start, s.target)
	if err != nil {
		s.fail(err)
		return
	}
	s.result, s.hasResult = r, true
	s.lastErr = nil
}

// BeginStepping starts a stepwise search between the endpoints.
func (s *Session) BeginStepping() bool {
	s.clearSearch()
	if !s.hasStart || !s.hasTarget {
		return false
	}
	st, err := s.pf.NewTileStepper(s.start, s.target)
	if err != nil {
		s.fail(err)
		return false
	}
	s.stepper = st
	s.lastErr = nil
	s.settle()
	return true
}

// Stepping reports whether a stepwise search is still running.
func (s *Session) Stepping() bool {
	return s.stepper != nil && !s.stepper.Done()
}

// Advance expands up to n nodes of the stepwise search. It reports whether
// the search is still running.
func (s *Session) Advance(n int) bool {
	if s.stepper == nil {
		return false
	}
	for i := 0; i < n && !s.stepper.Done(); i++ {
		if _, err := s.stepper.Step(); err != nil {
			s.fail(err)
			return false
		}
	}
	s.settle()
	return s.Stepping()
}

func (s *Session) settle() {
	if s.stepper != nil && s.stepper.Done() {
		s.result, s.hasResult = s.stepper.Result(), true
	}
}

// Result returns the outcome of the last finished search.
func (s *Session) Result() (pathfinding.Result, bool) {
	return s.result, s.hasResult
}

// Err returns the last oracle or configuration failure, if any.
func (s *Session) Err() error {
	return s.lastErr
}

func (s *Session) fail(err error) {
	s.lastErr = err
	s.logger.Warn("search failed", "map", s.Map().Name, "error", err)
}

// SearchView is what the viewer draws for the current search.
type SearchView struct {
	Open, Closed []pathfinding.GridCoord
	Path         []pathfinding.GridCoord
	Current      pathfinding.GridCoord
	HasCurrent   bool
}

// View collects the tiles to draw. While stepping, Path is the best route to
// the most recently expanded tile.
func (s *Session) View() SearchView {
	var v SearchView
	if s.stepper != nil {
		v.Open = s.stepper.Open()
		v.Closed = s.stepper.Closed()
		if partial := s.stepper.PartialPath(); len(partial) > 0 {
			v.Current, v.HasCurrent = partial[len(partial)-1], true
			if s.Stepping() {
				v.Path = partial
			}
		}
	}
	if s.hasResult && s.result.Found {
		v.Path = s.result.Tiles
	}
	return v
}

// TileAtCanvas resolves a canvas pixel to a map tile through the
// pathfinder's coordinate conversion.
func (s *Session) TileAtCanvas(b Board, px, py int) (pathfinding.GridCoord, bool) {
	if !b.Contains(px, py) {
		return pathfinding.GridCoord{}, false
	}
	p := b.ToEngine(px, py, s.pf.TileSize(), s.pf.Origin())
	c := s.pf.ScreenToTile(p)
	return c, s.pf.InBounds(c)
}

// WaypointsOnCanvas converts the found path's waypoints to canvas positions.
func (s *Session) WaypointsOnCanvas(b Board) [][2]float32 {
	if !s.hasResult || !s.result.Found {
		return nil
	}
	points := make([][2]float32, len(s.result.Waypoints))
	for i, wp := range s.result.Waypoints {
		x, y := b.FromEngine(wp, s.pf.TileSize(), s.pf.Origin())
		points[i] = [2]float32{x, y}
	}
	return points
}

// StatusLines summarises the policy and the last search for display.
func (s *Session) StatusLines() []string {
	m := s.Map()
	size := m.Size()
	lines := []string{
		fmt.Sprintf("Map: %s (%d/%d)", m.Name, s.mapIndex+1, len(s.maps)),
		fmt.Sprintf("Tiles: %dx%d", size.Width, size.Height),
		"",
		fmt.Sprintf("[H] Heuristic: %s", s.pf.Heuristic()),
		fmt.Sprintf("[D] Diagonal: %s", onOff(s.pf.DiagonalMovement())),
		fmt.Sprintf("[B] Ignore barriers: %s", onOff(s.pf.IgnoresDiagonalBarriers())),
		fmt.Sprintf("[C] Cross borders: %s", onOff(s.pf.CrossesBorders())),
		fmt.Sprintf("[O] Origin: %s", s.pf.Origin()),
		"",
	}
	if s.hasStart {
		lines = append(lines, fmt.Sprintf("Start: %v", s.start))
	}
	if s.hasTarget {
		lines = append(lines, fmt.Sprintf("Target: %v", s.target))
	}

	switch {
	case s.lastErr != nil:
		lines = append(lines, "Error: "+s.lastErr.Error())
	case s.Stepping():
		lines = append(lines, fmt.Sprintf("Searching... %d open, %d closed",
			len(s.stepper.Open()), len(s.stepper.Closed())))
	case s.hasResult && s.result.Found:
		lines = append(lines,
			fmt.Sprintf("Path: %d tiles, cost %d", len(s.result.Tiles), s.result.Cost),
			fmt.Sprintf("Expanded: %d", s.result.Expanded))
	case s.hasResult:
		lines = append(lines, fmt.Sprintf("No path: %s", s.result.Reason),
			fmt.Sprintf("Expanded: %d", s.result.Expanded))
	}
	return lines
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
