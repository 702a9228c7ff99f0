package pathfinding

import (
	"fmt"
	"log/slog"
	"time"
)

// Recorder receives the outcome of every search run by a Pathfinder.
// Implementations must be safe for concurrent use when the pathfinder (or a
// clone of it) is used from several goroutines.
type Recorder interface {
	RecordSearch(result Result, elapsed time.Duration, err error)
}

// Pathfinder finds shortest walkable paths on a rectangular tile map and
// converts between screen positions and tiles.
//
// Configuration may be changed between searches but not while a search on
// the same instance is running. Each search keeps its own node records, so
// independent instances (see Clone) can search concurrently.
type Pathfinder struct {
	mapSize                MapSize
	tileSize               TileSize
	heuristic              Heuristic
	diagonal               bool
	ignoreDiagonalBarriers bool
	crossBorders           bool
	origin                 Origin
	oracle                 Oracle
	logger                 *slog.Logger
	recorder               Recorder
}

// Option configures a Pathfinder at construction.
type Option func(*Pathfinder)

// WithHeuristic selects the distance estimate. Default Manhattan.
func WithHeuristic(h Heuristic) Option {
	return func(pf *Pathfinder) { pf.heuristic = h }
}

// WithDiagonalMovement allows or forbids diagonal steps. Default true.
func WithDiagonalMovement(allow bool) Option {
	return func(pf *Pathfinder) { pf.diagonal = allow }
}

// WithIgnoreDiagonalBarriers accepts any walkable diagonal tile regardless of
// its two flanking tiles. Default false.
func WithIgnoreDiagonalBarriers(ignore bool) Option {
	return func(pf *Pathfinder) { pf.ignoreDiagonalBarriers = ignore }
}

// WithCrossingBorders accepts a diagonal step when at least one flanking tile
// is walkable; when false both must be. Ignored if diagonal barriers are
// ignored. Default true.
func WithCrossingBorders(allow bool) Option {
	return func(pf *Pathfinder) { pf.crossBorders = allow }
}

// WithOrigin sets the screen corner used by coordinate conversion. Default
// OriginBottomLeft.
func WithOrigin(o Origin) Option {
	return func(pf *Pathfinder) { pf.origin = o }
}

// WithLogger sets the logger used for search diagnostics. Default slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(pf *Pathfinder) {
		if logger != nil {
			pf.logger = logger
		}
	}
}

// WithRecorder attaches a Recorder notified after each search.
func WithRecorder(r Recorder) Option {
	return func(pf *Pathfinder) { pf.recorder = r }
}

// New creates a pathfinder for a map of mapSize tiles, each tileSize screen
// units large. A nil oracle makes every in-bounds tile walkable.
func New(mapSize MapSize, tileSize TileSize, oracle Oracle, opts ...Option) (*Pathfinder, error) {
	pf := &Pathfinder{
		heuristic:    Manhattan,
		diagonal:     true,
		crossBorders: true,
		origin:       OriginBottomLeft,
		oracle:       oracle,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(pf)
	}
	if err := pf.SetMapSize(mapSize); err != nil {
		return nil, err
	}
	if err := pf.SetTileSize(tileSize); err != nil {
		return nil, err
	}
	if err := pf.SetHeuristic(pf.heuristic); err != nil {
		return nil, err
	}
	if err := pf.SetOrigin(pf.origin); err != nil {
		return nil, err
	}
	return pf, nil
}

// Clone returns an independent copy sharing the oracle, logger and recorder.
func (pf *Pathfinder) Clone() *Pathfinder {
	c := *pf
	return &c
}

// SetMapSize changes the map extent.
func (pf *Pathfinder) SetMapSize(size MapSize) error {
	if !size.valid() {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidMapSize, size.Width, size.Height)
	}
	pf.mapSize = size
	return nil
}

// SetTileSize changes the tile extent used for coordinate conversion.
func (pf *Pathfinder) SetTileSize(size TileSize) error {
	if !size.valid() {
		return fmt.Errorf("%w: got %gx%g", ErrInvalidTileSize, size.Width, size.Height)
	}
	pf.tileSize = size
	return nil
}

// SetHeuristic changes the distance estimate.
func (pf *Pathfinder) SetHeuristic(h Heuristic) error {
	if !h.valid() {
		return fmt.Errorf("%w: %d", ErrUnknownHeuristic, int(h))
	}
	pf.heuristic = h
	return nil
}

// SetOrigin changes the coordinate origin.
func (pf *Pathfinder) SetOrigin(o Origin) error {
	if !o.valid() {
		return fmt.Errorf("%w: %d", ErrUnknownOrigin, int(o))
	}
	pf.origin = o
	return nil
}

func (pf *Pathfinder) SetDiagonalMovement(allow bool) {
	pf.diagonal = allow
}

func (pf *Pathfinder) SetIgnoreDiagonalBarriers(ignore bool) {
	pf.ignoreDiagonalBarriers = ignore
}

func (pf *Pathfinder) SetCrossingBorders(allow bool) {
	pf.crossBorders = allow
}

// SetOracle replaces the walkability oracle. nil makes every tile walkable.
func (pf *Pathfinder) SetOracle(oracle Oracle) {
	pf.oracle = oracle
}

func (pf *Pathfinder) MapSize() MapSize {
	return pf.mapSize
}

func (pf *Pathfinder) TileSize() TileSize {
	return pf.tileSize
}

func (pf *Pathfinder) Heuristic() Heuristic {
	return pf.heuristic
}

func (pf *Pathfinder) Origin() Origin {
	return pf.origin
}

func (pf *Pathfinder) DiagonalMovement() bool {
	return pf.diagonal
}

func (pf *Pathfinder) IgnoresDiagonalBarriers() bool {
	return pf.ignoreDiagonalBarriers
}

func (pf *Pathfinder) CrossesBorders() bool {
	return pf.crossBorders
}

// InBounds reports whether c lies inside the map.
func (pf *Pathfinder) InBounds(c GridCoord) bool {
	return pf.mapSize.Contains(c)
}

// TileToScreen returns the screen position of the center of tile c.
func (pf *Pathfinder) TileToScreen(c GridCoord) Point {
	return TileCenter(c, pf.mapSize, pf.tileSize, pf.origin)
}

// ScreenToTile returns the tile containing screen position p.
func (pf *Pathfinder) ScreenToTile(p Point) GridCoord {
	return TileAt(p, pf.mapSize, pf.tileSize, pf.origin)
}

// FindPath returns the screen positions of the tile centers along a shortest
// path from the tile under start to the tile under target, both included.
// It returns nil without an error when no path exists. An error is only
// returned when the oracle fails.
func (pf *Pathfinder) FindPath(start, target Point) ([]Point, error) {
	r, err := pf.Search(start, target)
	if err != nil || !r.Found {
		return nil, err
	}
	return r.Waypoints, nil
}

// FindTilePath is FindPath for callers that already work in tiles.
func (pf *Pathfinder) FindTilePath(start, target GridCoord) ([]GridCoord, error) {
	r, err := pf.SearchTiles(start, target)
	if err != nil || !r.Found {
		return nil, err
	}
	return r.Tiles, nil
}

// Search is FindPath with the full search outcome.
func (pf *Pathfinder) Search(start, target Point) (Result, error) {
	return pf.SearchTiles(pf.ScreenToTile(start), pf.ScreenToTile(target))
}

// SearchTiles runs A* between two tiles.
func (pf *Pathfinder) SearchTiles(start, target GridCoord) (Result, error) {
	began := time.Now()
	result, err := pf.searchTiles(start, target)
	elapsed := time.Since(began)

	switch {
	case err != nil:
		pf.logger.Debug("path search failed", "start", start, "target", target,
			"error", err, "expanded", result.Expanded)
	case result.Found:
		pf.logger.Debug("path found", "start", start, "target", target, "cost", result.Cost,
			"length", len(result.Tiles), "expanded", result.Expanded, "elapsed", elapsed)
	default:
		pf.logger.Debug("no path", "start", start, "target", target, "reason", result.Reason.String(),
			"expanded", result.Expanded, "elapsed", elapsed)
	}
	if pf.recorder != nil {
		pf.recorder.RecordSearch(result, elapsed, err)
	}
	return result, err
}

func (pf *Pathfinder) searchTiles(start, target GridCoord) (Result, error) {
	s, early, err := pf.prepare(start, target)
	if s == nil {
		return early, err
	}
	if _, err := s.run(); err != nil {
		return Result{Start: start, Target: target, Expanded: s.expanded}, err
	}
	return pf.finish(s.result()), nil
}

func (pf *Pathfinder) policy() movementPolicy {
	return movementPolicy{
		mapSize:                pf.mapSize,
		diagonal:               pf.diagonal,
		ignoreDiagonalBarriers: pf.ignoreDiagonalBarriers,
		crossBorders:           pf.crossBorders,
	}
}

// prepare performs the fast rejections and, if the search is worth running,
// returns its initial state. A nil search comes with the final Result.
func (pf *Pathfinder) prepare(start, target GridCoord) (*search, Result, error) {
	r := Result{Start: start, Target: target}
	if start == target {
		r.Reason = ReasonSameTile
		return nil, r, nil
	}
	if !pf.mapSize.Contains(start) || !pf.mapSize.Contains(target) {
		r.Reason = ReasonOutOfBounds
		return nil, r, nil
	}
	ok, err := walkable(pf.oracle, target)
	if err != nil {
		return nil, r, err
	}
	if !ok {
		r.Reason = ReasonTargetBlocked
		return nil, r, nil
	}
	pf.logger.Debug("path search started", "start", start, "target", target,
		"heuristic", pf.heuristic.String(), "diagonal", pf.diagonal,
		"ignore_diagonal_barriers", pf.ignoreDiagonalBarriers, "cross_borders", pf.crossBorders)
	return newSearch(pf.policy(), pf.heuristic, pf.oracle, start, target), r, nil
}

// finish fills in screen waypoints for a found path.
func (pf *Pathfinder) finish(r Result) Result {
	if !r.Found {
		return r
	}
	r.Waypoints = make([]Point, len(r.Tiles))
	for i, c := range r.Tiles {
		r.Waypoints[i] = pf.TileToScreen(c)
	}
	return r
}
