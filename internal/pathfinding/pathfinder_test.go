package pathfinding

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tilepath/internal/mathutil"
)

// gridOracle is a walkability oracle built from ASCII rows. rows[0] is the
// top of the map, so it holds the highest row index. '#' marks a blocked tile.
type gridOracle struct {
	size    MapSize
	blocked map[GridCoord]bool
	calls   int
	outside []GridCoord // out-of-bounds tiles the oracle was asked about
}

func newGridOracle(rows ...string) *gridOracle {
	g := &gridOracle{
		size:    MapSize{Width: len(rows[0]), Height: len(rows)},
		blocked: make(map[GridCoord]bool),
	}
	for i, line := range rows {
		row := len(rows) - 1 - i
		for col, ch := range line {
			if ch == '#' {
				g.blocked[GridCoord{Col: col, Row: row}] = true
			}
		}
	}
	return g
}

func openGrid(width, height int) *gridOracle {
	return &gridOracle{size: MapSize{Width: width, Height: height}, blocked: map[GridCoord]bool{}}
}

func (g *gridOracle) Walkable(c GridCoord) (bool, error) {
	g.calls++
	if !g.size.Contains(c) {
		g.outside = append(g.outside, c)
		return false, nil
	}
	return !g.blocked[c], nil
}

var tile16 = TileSize{Width: 16, Height: 16}

func newTestPathfinder(t testing.TB, oracle *gridOracle, opts ...Option) *Pathfinder {
	t.Helper()
	pf, err := New(oracle.size, tile16, oracle, opts...)
	require.NoError(t, err)
	return pf
}

func assertContiguous(t *testing.T, path []GridCoord, diagonal bool) {
	t.Helper()
	for i := 1; i < len(path); i++ {
		dx := mathutil.Abs(path[i].Col - path[i-1].Col)
		dy := mathutil.Abs(path[i].Row - path[i-1].Row)
		if diagonal {
			assert.True(t, max(dx, dy) == 1, "step %d from %v to %v is not a single move", i, path[i-1], path[i])
		} else {
			assert.Equal(t, 1, dx+dy, "step %d from %v to %v is not a cardinal move", i, path[i-1], path[i])
		}
	}
}

func pathCost(path []GridCoord) int {
	cost := 0
	for i := 1; i < len(path); i++ {
		if path[i].Col != path[i-1].Col && path[i].Row != path[i-1].Row {
			cost += DiagonalCost
		} else {
			cost += StraightCost
		}
	}
	return cost
}

func TestNewRejectsInvalidConfiguration(t *testing.T) {
	_, err := New(MapSize{Width: 0, Height: 5}, tile16, nil)
	assert.ErrorIs(t, err, ErrInvalidMapSize)

	_, err = New(MapSize{Width: 5, Height: -1}, tile16, nil)
	assert.ErrorIs(t, err, ErrInvalidMapSize)

	_, err = New(MapSize{Width: 5, Height: 5}, TileSize{Width: 16, Height: 0}, nil)
	assert.ErrorIs(t, err, ErrInvalidTileSize)

	_, err = New(MapSize{Width: 5, Height: 5}, tile16, nil, WithHeuristic(Heuristic(42)))
	assert.ErrorIs(t, err, ErrUnknownHeuristic)

	_, err = New(MapSize{Width: 5, Height: 5}, tile16, nil, WithOrigin(Origin(7)))
	assert.ErrorIs(t, err, ErrUnknownOrigin)
}

func TestSettersValidate(t *testing.T) {
	pf, err := New(MapSize{Width: 5, Height: 5}, tile16, nil)
	require.NoError(t, err)

	assert.ErrorIs(t, pf.SetMapSize(MapSize{}), ErrInvalidMapSize)
	assert.Equal(t, MapSize{Width: 5, Height: 5}, pf.MapSize(), "failed setter must keep the old value")

	assert.ErrorIs(t, pf.SetTileSize(TileSize{Width: -1, Height: 4}), ErrInvalidTileSize)
	assert.Equal(t, tile16, pf.TileSize())

	require.NoError(t, pf.SetMapSize(MapSize{Width: 9, Height: 3}))
	assert.Equal(t, MapSize{Width: 9, Height: 3}, pf.MapSize())
}

func TestDefaults(t *testing.T) {
	pf, err := New(MapSize{Width: 3, Height: 3}, tile16, nil)
	require.NoError(t, err)
	assert.Equal(t, Manhattan, pf.Heuristic())
	assert.True(t, pf.DiagonalMovement())
	assert.False(t, pf.IgnoresDiagonalBarriers())
	assert.True(t, pf.CrossesBorders())
	assert.Equal(t, OriginBottomLeft, pf.Origin())
}

func TestFindPathSameTile(t *testing.T) {
	for _, size := range []MapSize{{1, 1}, {4, 3}} {
		pf, err := New(size, tile16, nil)
		require.NoError(t, err)

		p := pf.TileToScreen(GridCoord{})
		path, err := pf.FindPath(p, p)
		require.NoError(t, err)
		assert.Nil(t, path)

		// two different pixels of the same tile
		r, err := pf.Search(Point{X: 1, Y: 1}, Point{X: 15, Y: 15})
		require.NoError(t, err)
		assert.False(t, r.Found)
		assert.Equal(t, ReasonSameTile, r.Reason)
	}
}

func TestFindPathTargetBlocked(t *testing.T) {
	oracle := newGridOracle(
		"....",
		"...#",
		"....",
	)
	pf := newTestPathfinder(t, oracle)

	r, err := pf.SearchTiles(GridCoord{0, 0}, GridCoord{3, 1})
	require.NoError(t, err)
	assert.False(t, r.Found)
	assert.Equal(t, ReasonTargetBlocked, r.Reason)
	assert.Zero(t, r.Expanded, "a blocked target must be rejected before searching")

	path, err := pf.FindTilePath(GridCoord{0, 0}, GridCoord{3, 1})
	require.NoError(t, err)
	assert.Nil(t, path)
}

func TestFindPathOutOfBounds(t *testing.T) {
	oracle := openGrid(4, 4)
	pf := newTestPathfinder(t, oracle)

	cases := []struct {
		name          string
		start, target Point
	}{
		{"target right of map", Point{8, 8}, Point{100, 8}},
		{"target above map", Point{8, 8}, Point{8, 64}},
		{"start left of map", Point{-1, 8}, Point{40, 40}},
		{"start below map", Point{8, -0.5}, Point{40, 40}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := pf.Search(tc.start, tc.target)
			require.NoError(t, err)
			assert.False(t, r.Found)
			assert.Equal(t, ReasonOutOfBounds, r.Reason)
		})
	}
	assert.Empty(t, oracle.outside, "the oracle must never be asked about out-of-bounds tiles")
}

func TestFindPathUnreachable(t *testing.T) {
	oracle := newGridOracle(
		"..#..",
		"..#..",
		"..#..",
	)
	pf := newTestPathfinder(t, oracle)

	r, err := pf.SearchTiles(GridCoord{0, 1}, GridCoord{4, 1})
	require.NoError(t, err)
	assert.False(t, r.Found)
	assert.Equal(t, ReasonUnreachable, r.Reason)
	assert.Equal(t, 6, r.Expanded, "every tile left of the wall is expanded exactly once")
}

func TestDiagonalScenarioOpenGrid(t *testing.T) {
	pf := newTestPathfinder(t, openGrid(5, 5))

	path, err := pf.FindPath(pf.TileToScreen(GridCoord{0, 0}), pf.TileToScreen(GridCoord{4, 4}))
	require.NoError(t, err)
	require.Len(t, path, 5)
	for i, p := range path {
		want := Point{X: float64(16*i + 8), Y: float64(16*i + 8)}
		assert.Equal(t, want, p, "waypoint %d", i)
	}

	r, err := pf.SearchTiles(GridCoord{0, 0}, GridCoord{4, 4})
	require.NoError(t, err)
	assert.Equal(t, 4*DiagonalCost, r.Cost)
	assert.Equal(t, 56, r.Cost)
}

func TestCardinalScenarioFunnel(t *testing.T) {
	oracle := newGridOracle(
		".....",
		".....",
		"##.##",
		".....",
		".....",
	)
	pf := newTestPathfinder(t, oracle, WithDiagonalMovement(false))

	r, err := pf.SearchTiles(GridCoord{0, 0}, GridCoord{4, 4})
	require.NoError(t, err)
	require.True(t, r.Found)
	assert.Contains(t, r.Tiles, GridCoord{2, 2})
	assert.Equal(t, 80, r.Cost)
	assertContiguous(t, r.Tiles, false)
	for _, c := range r.Tiles {
		assert.False(t, oracle.blocked[c], "path enters blocked tile %v", c)
	}
}

func TestCardinalPathLengthIsManhattanDistance(t *testing.T) {
	pf := newTestPathfinder(t, openGrid(9, 7), WithDiagonalMovement(false))

	pairs := [][2]GridCoord{
		{{0, 0}, {8, 6}},
		{{8, 6}, {0, 0}},
		{{3, 3}, {3, 0}},
		{{0, 5}, {7, 5}},
		{{1, 6}, {6, 2}},
	}
	for _, pair := range pairs {
		r, err := pf.SearchTiles(pair[0], pair[1])
		require.NoError(t, err)
		require.True(t, r.Found, "%v -> %v", pair[0], pair[1])
		steps := mathutil.Abs(pair[0].Col-pair[1].Col) + mathutil.Abs(pair[0].Row-pair[1].Row)
		assert.Len(t, r.Tiles, steps+1)
		assert.Equal(t, steps*StraightCost, r.Cost)
		assert.Equal(t, pair[0], r.Tiles[0])
		assert.Equal(t, pair[1], r.Tiles[len(r.Tiles)-1])
		assertContiguous(t, r.Tiles, false)
	}
}

func TestDiagonalPathCostIsOctile(t *testing.T) {
	cardinal := newTestPathfinder(t, openGrid(9, 9), WithDiagonalMovement(false))

	for _, h := range []Heuristic{Manhattan, Chebyshev} {
		pf := newTestPathfinder(t, openGrid(9, 9), WithHeuristic(h))
		pairs := [][2]GridCoord{
			{{0, 0}, {4, 1}},
			{{0, 0}, {8, 8}},
			{{2, 7}, {6, 1}},
			{{8, 0}, {0, 3}},
			{{5, 5}, {5, 0}},
		}
		for _, pair := range pairs {
			r, err := pf.SearchTiles(pair[0], pair[1])
			require.NoError(t, err)
			require.True(t, r.Found)

			dx := mathutil.Abs(pair[0].Col - pair[1].Col)
			dy := mathutil.Abs(pair[0].Row - pair[1].Row)
			want := StraightCost*max(dx, dy) + (DiagonalCost-StraightCost)*min(dx, dy)
			assert.Equal(t, want, r.Cost, "%s %v -> %v", h, pair[0], pair[1])
			assert.Equal(t, r.Cost, pathCost(r.Tiles))
			assertContiguous(t, r.Tiles, true)

			rc, err := cardinal.SearchTiles(pair[0], pair[1])
			require.NoError(t, err)
			assert.LessOrEqual(t, r.Cost, rc.Cost)
		}
	}
}

func TestStartTileNeedNotBeWalkable(t *testing.T) {
	oracle := newGridOracle(
		"...",
		".#.",
		"...",
	)
	pf := newTestPathfinder(t, oracle)

	path, err := pf.FindTilePath(GridCoord{1, 1}, GridCoord{2, 2})
	require.NoError(t, err)
	assert.Equal(t, []GridCoord{{1, 1}, {2, 2}}, path)
}

func TestNilOracleTreatsEveryTileAsWalkable(t *testing.T) {
	pf, err := New(MapSize{Width: 6, Height: 2}, tile16, nil, WithDiagonalMovement(false))
	require.NoError(t, err)

	r, err := pf.SearchTiles(GridCoord{0, 0}, GridCoord{5, 1})
	require.NoError(t, err)
	assert.True(t, r.Found)
	assert.Equal(t, 60, r.Cost)
}

func TestWalkableFuncAdapter(t *testing.T) {
	wall := WalkableFunc(func(c GridCoord) bool { return c.Col != 2 || c.Row == 0 })
	pf, err := New(MapSize{Width: 5, Height: 4}, tile16, wall, WithDiagonalMovement(false))
	require.NoError(t, err)

	path, err := pf.FindTilePath(GridCoord{0, 3}, GridCoord{4, 3})
	require.NoError(t, err)
	assert.Contains(t, path, GridCoord{2, 0})
}

func TestCornerCuttingPolicies(t *testing.T) {
	layouts := map[string][]string{
		"no flank blocked": {
			"...",
			"...",
			"...",
		},
		"one flank blocked": {
			"...",
			"...",
			".#.",
		},
		"both flanks blocked": {
			"...",
			"#..",
			".#.",
		},
	}
	const unreachable = -1
	cases := []struct {
		layout       string
		ignore       bool
		crossBorders bool
		wantCost     int
	}{
		{"no flank blocked", false, false, 14},
		{"no flank blocked", false, true, 14},
		{"no flank blocked", true, false, 14},
		{"no flank blocked", true, true, 14},

		{"one flank blocked", false, false, 20},
		{"one flank blocked", false, true, 14},
		{"one flank blocked", true, false, 14},
		{"one flank blocked", true, true, 14},

		{"both flanks blocked", false, false, unreachable},
		{"both flanks blocked", false, true, unreachable},
		{"both flanks blocked", true, false, 14},
		{"both flanks blocked", true, true, 14},
	}
	for _, tc := range cases {
		name := fmt.Sprintf("%s/ignore=%t/cross=%t", tc.layout, tc.ignore, tc.crossBorders)
		t.Run(name, func(t *testing.T) {
			oracle := newGridOracle(layouts[tc.layout]...)
			pf := newTestPathfinder(t, oracle,
				WithIgnoreDiagonalBarriers(tc.ignore),
				WithCrossingBorders(tc.crossBorders),
			)
			r, err := pf.SearchTiles(GridCoord{0, 0}, GridCoord{1, 1})
			require.NoError(t, err)
			if tc.wantCost == unreachable {
				assert.False(t, r.Found)
				assert.Equal(t, ReasonUnreachable, r.Reason)
				return
			}
			require.True(t, r.Found)
			assert.Equal(t, tc.wantCost, r.Cost)
		})
	}
}

func TestDiagonalNeverSqueezesBetweenBlockedFlanks(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 40; trial++ {
		oracle := randomGrid(rng, 12, 10, 0.3)
		pf := newTestPathfinder(t, oracle, WithCrossingBorders(false), WithHeuristic(Chebyshev))
		start, target := randomOpenTile(rng, oracle), randomOpenTile(rng, oracle)

		r, err := pf.SearchTiles(start, target)
		require.NoError(t, err)
		for i := 1; i < len(r.Tiles); i++ {
			a, b := r.Tiles[i-1], r.Tiles[i]
			if a.Col == b.Col || a.Row == b.Row {
				continue
			}
			assert.False(t, oracle.blocked[GridCoord{b.Col, a.Row}], "diagonal %v->%v passes blocked flank", a, b)
			assert.False(t, oracle.blocked[GridCoord{a.Col, b.Row}], "diagonal %v->%v passes blocked flank", a, b)
		}
	}
}

var errSensorOffline = errors.New("sensor offline")

func TestOracleFaultIsPropagated(t *testing.T) {
	bad := GridCoord{Col: 2, Row: 1}
	oracle := OracleFunc(func(c GridCoord) (bool, error) {
		if c == bad {
			return false, errSensorOffline
		}
		return true, nil
	})
	pf, err := New(MapSize{Width: 5, Height: 3}, tile16, oracle)
	require.NoError(t, err)

	r, err := pf.SearchTiles(GridCoord{0, 1}, GridCoord{4, 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, errSensorOffline)
	var oerr *OracleError
	require.ErrorAs(t, err, &oerr)
	assert.Equal(t, bad, oerr.Coord)
	assert.False(t, r.Found)

	path, err := pf.FindTilePath(GridCoord{0, 1}, GridCoord{4, 1})
	assert.ErrorIs(t, err, errSensorOffline)
	assert.Nil(t, path)

	// a failing target check aborts before the search starts
	_, err = pf.SearchTiles(GridCoord{0, 0}, bad)
	assert.ErrorIs(t, err, errSensorOffline)
}

func TestSearchIsRepeatable(t *testing.T) {
	oracle := newGridOracle(
		"........",
		".####...",
		"....#...",
		"..#.#.#.",
		"..#...#.",
	)
	pf := newTestPathfinder(t, oracle)

	first, err := pf.SearchTiles(GridCoord{0, 0}, GridCoord{7, 4})
	require.NoError(t, err)
	require.True(t, first.Found)
	for i := 0; i < 5; i++ {
		again, err := pf.SearchTiles(GridCoord{0, 0}, GridCoord{7, 4})
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

type countingRecorder struct {
	results []Result
	errs    []error
}

func (c *countingRecorder) RecordSearch(r Result, _ time.Duration, err error) {
	c.results = append(c.results, r)
	c.errs = append(c.errs, err)
}

func TestRecorderSeesEverySearch(t *testing.T) {
	rec := &countingRecorder{}
	pf := newTestPathfinder(t, openGrid(4, 4), WithRecorder(rec))

	_, _ = pf.SearchTiles(GridCoord{0, 0}, GridCoord{3, 3})
	_, _ = pf.SearchTiles(GridCoord{1, 1}, GridCoord{1, 1})
	_, _ = pf.FindPath(Point{-5, 0}, Point{8, 8})

	require.Len(t, rec.results, 3)
	assert.True(t, rec.results[0].Found)
	assert.Equal(t, ReasonSameTile, rec.results[1].Reason)
	assert.Equal(t, ReasonOutOfBounds, rec.results[2].Reason)
}

func TestCloneIsIndependent(t *testing.T) {
	pf := newTestPathfinder(t, openGrid(6, 6))
	c := pf.Clone()
	c.SetDiagonalMovement(false)
	require.NoError(t, c.SetHeuristic(Chebyshev))

	assert.True(t, pf.DiagonalMovement())
	assert.Equal(t, Manhattan, pf.Heuristic())

	a, err := pf.SearchTiles(GridCoord{0, 0}, GridCoord{5, 5})
	require.NoError(t, err)
	b, err := c.SearchTiles(GridCoord{0, 0}, GridCoord{5, 5})
	require.NoError(t, err)
	assert.Equal(t, 70, a.Cost)
	assert.Equal(t, 100, b.Cost)
}

// dijkstraCost is a reference shortest-path cost using the same movement
// policy but no heuristic and a linear scan for the minimum.
func dijkstraCost(pf *Pathfinder, start, target GridCoord) (int, bool) {
	dist := map[GridCoord]int{start: 0}
	done := map[GridCoord]bool{}
	policy := pf.policy()
	for {
		best, found := GridCoord{}, false
		for c, d := range dist {
			if done[c] {
				continue
			}
			if !found || d < dist[best] {
				best, found = c, true
			}
		}
		if !found {
			return 0, false
		}
		if best == target {
			return dist[best], true
		}
		done[best] = true
		for _, d := range policy.directions() {
			to, ok, _ := policy.admissible(pf.oracle, best, d, nil)
			if !ok {
				continue
			}
			if old, seen := dist[to]; !seen || dist[best]+d.cost < old {
				dist[to] = dist[best] + d.cost
			}
		}
	}
}

func randomGrid(rng *rand.Rand, width, height int, density float64) *gridOracle {
	g := openGrid(width, height)
	for col := 0; col < width; col++ {
		for row := 0; row < height; row++ {
			if rng.Float64() < density {
				g.blocked[GridCoord{col, row}] = true
			}
		}
	}
	return g
}

func randomOpenTile(rng *rand.Rand, g *gridOracle) GridCoord {
	for {
		c := GridCoord{Col: rng.Intn(g.size.Width), Row: rng.Intn(g.size.Height)}
		if !g.blocked[c] {
			return c
		}
	}
}

func TestSearchMatchesDijkstra(t *testing.T) {
	configs := []struct {
		name string
		opts []Option
	}{
		{"cardinal manhattan", []Option{WithDiagonalMovement(false)}},
		{"diagonal chebyshev", []Option{WithHeuristic(Chebyshev)}},
		{"diagonal chebyshev strict corners", []Option{WithHeuristic(Chebyshev), WithCrossingBorders(false)}},
		{"diagonal chebyshev ignore barriers", []Option{WithHeuristic(Chebyshev), WithIgnoreDiagonalBarriers(true)}},
	}
	for _, cfg := range configs {
		t.Run(cfg.name, func(t *testing.T) {
			rng := rand.New(rand.NewSource(42))
			for trial := 0; trial < 30; trial++ {
				oracle := randomGrid(rng, 10, 8, 0.25)
				pf := newTestPathfinder(t, oracle, cfg.opts...)
				start, target := randomOpenTile(rng, oracle), randomOpenTile(rng, oracle)
				if start == target {
					continue
				}

				r, err := pf.SearchTiles(start, target)
				require.NoError(t, err)
				want, reachable := dijkstraCost(pf, start, target)
				require.Equal(t, reachable, r.Found, "trial %d %v -> %v", trial, start, target)
				if reachable {
					assert.Equal(t, want, r.Cost, "trial %d %v -> %v", trial, start, target)
					assert.Equal(t, r.Cost, pathCost(r.Tiles))
				}
			}
		})
	}
}

func TestTileCoordinateRoundTrip(t *testing.T) {
	size := MapSize{Width: 7, Height: 5}
	tiles := TileSize{Width: 16, Height: 24}
	for _, origin := range []Origin{OriginBottomLeft, OriginTopLeft} {
		pf, err := New(size, tiles, nil, WithOrigin(origin))
		require.NoError(t, err)
		for col := 0; col < size.Width; col++ {
			for row := 0; row < size.Height; row++ {
				c := GridCoord{Col: col, Row: row}
				assert.Equal(t, c, pf.ScreenToTile(pf.TileToScreen(c)), "origin %s", origin)
			}
		}
	}
}

func TestTileToScreen(t *testing.T) {
	size := MapSize{Width: 4, Height: 5}
	tiles := TileSize{Width: 16, Height: 24}

	bl, err := New(size, tiles, nil)
	require.NoError(t, err)
	assert.Equal(t, Point{X: 8, Y: 12}, bl.TileToScreen(GridCoord{0, 0}))
	assert.Equal(t, Point{X: 40, Y: 84}, bl.TileToScreen(GridCoord{2, 3}))

	tl, err := New(size, tiles, nil, WithOrigin(OriginTopLeft))
	require.NoError(t, err)
	assert.Equal(t, Point{X: 8, Y: 108}, tl.TileToScreen(GridCoord{0, 0}))
	assert.Equal(t, Point{X: 40, Y: 36}, tl.TileToScreen(GridCoord{2, 3}))
}

func TestScreenToTile(t *testing.T) {
	size := MapSize{Width: 5, Height: 4}
	bl, err := New(size, tile16, nil)
	require.NoError(t, err)

	assert.Equal(t, GridCoord{2, 0}, bl.ScreenToTile(Point{47, 14}))
	assert.Equal(t, GridCoord{0, 0}, bl.ScreenToTile(Point{0, 0}))
	assert.Equal(t, GridCoord{1, 1}, bl.ScreenToTile(Point{16, 16}), "tile edges belong to the next tile")
	assert.Equal(t, GridCoord{-1, 0}, bl.ScreenToTile(Point{-0.5, 3}))
	assert.False(t, bl.InBounds(bl.ScreenToTile(Point{-0.5, 3})))

	tl, err := New(size, tile16, nil, WithOrigin(OriginTopLeft))
	require.NoError(t, err)
	assert.Equal(t, GridCoord{2, 3}, tl.ScreenToTile(Point{47, 14}))
	assert.Equal(t, GridCoord{0, 0}, tl.ScreenToTile(Point{1, 63}))
	assert.False(t, tl.InBounds(tl.ScreenToTile(Point{1, 64})))
}

func BenchmarkSearchOpenGrid(b *testing.B) {
	pf := newTestPathfinder(b, openGrid(128, 128))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = pf.SearchTiles(GridCoord{0, 0}, GridCoord{127, 127})
	}
}

func BenchmarkSearchRandomObstacles(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	oracle := randomGrid(rng, 128, 128, 0.3)
	oracle.blocked[GridCoord{0, 0}] = false
	oracle.blocked[GridCoord{127, 127}] = false
	pf := newTestPathfinder(b, oracle, WithHeuristic(Chebyshev))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = pf.SearchTiles(GridCoord{0, 0}, GridCoord{127, 127})
	}
}

func TestSearchDebugLogs(t *testing.T) {
	var buf bytes.Buffer
	debug := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	pf := newTestPathfinder(t, openGrid(4, 4), WithLogger(debug))

	_, err := pf.SearchTiles(GridCoord{0, 0}, GridCoord{3, 0})
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, `msg="path found"`)
	assert.Contains(t, out, "start=(0,0)")
	assert.Contains(t, out, "target=(3,0)")
	assert.Contains(t, out, "cost=30")

	buf.Reset()
	_, err = pf.SearchTiles(GridCoord{1, 1}, GridCoord{9, 9})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `reason="endpoint out of bounds"`)

	buf.Reset()
	quiet := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	pf = newTestPathfinder(t, openGrid(4, 4), WithLogger(quiet))
	_, err = pf.SearchTiles(GridCoord{0, 0}, GridCoord{3, 3})
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}
