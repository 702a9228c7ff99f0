package pathfinding

// Oracle decides whether a tile may be entered. Results must be stable for
// the duration of a search; the pathfinder may ask about the same tile more
// than once. A returned error aborts the search.
type Oracle interface {
	Walkable(c GridCoord) (bool, error)
}

// WalkableFunc adapts an infallible predicate to Oracle.
type WalkableFunc func(c GridCoord) bool

// Walkable implements Oracle.
func (f WalkableFunc) Walkable(c GridCoord) (bool, error) {
	return f(c), nil
}

// OracleFunc adapts a fallible predicate to Oracle.
type OracleFunc func(c GridCoord) (bool, error)

// Walkable implements Oracle.
func (f OracleFunc) Walkable(c GridCoord) (bool, error) {
	return f(c)
}

type direction struct {
	dCol, dRow int
	cost       int
}

func (d direction) diagonal() bool {
	return d.dCol != 0 && d.dRow != 0
}

// Cardinal steps come first so that on equal keys straight moves are queued
// before diagonal ones.
var (
	cardinalDirections = []direction{
		{0, 1, StraightCost},  // N
		{1, 0, StraightCost},  // E
		{0, -1, StraightCost}, // S
		{-1, 0, StraightCost}, // W
	}
	allDirections = append(append([]direction(nil), cardinalDirections...),
		direction{1, 1, DiagonalCost},   // NE
		direction{1, -1, DiagonalCost},  // SE
		direction{-1, -1, DiagonalCost}, // SW
		direction{-1, 1, DiagonalCost},  // NW
	)
)

// movementPolicy is the subset of pathfinder settings that shapes neighbor
// expansion.
type movementPolicy struct {
	mapSize                MapSize
	diagonal               bool
	ignoreDiagonalBarriers bool
	crossBorders           bool
}

func (p movementPolicy) directions() []direction {
	if p.diagonal {
		return allDirections
	}
	return cardinalDirections
}

// walkable consults the oracle for an in-bounds tile. A nil oracle treats
// every in-bounds tile as walkable.
func walkable(oracle Oracle, c GridCoord) (bool, error) {
	if oracle == nil {
		return true, nil
	}
	ok, err := oracle.Walkable(c)
	if err != nil {
		return false, &OracleError{Coord: c, Err: err}
	}
	return ok, nil
}

// flankWalkable is walkable with out-of-bounds tiles reported as blocked.
func (p movementPolicy) flankWalkable(oracle Oracle, c GridCoord) (bool, error) {
	if !p.mapSize.Contains(c) {
		return false, nil
	}
	return walkable(oracle, c)
}

// diagonalAllowed applies the corner-cutting rules to a diagonal step from
// `from` in direction d. The step has already passed the bounds and
// walkability checks on its destination.
func (p movementPolicy) diagonalAllowed(oracle Oracle, from GridCoord, d direction) (bool, error) {
	if p.ignoreDiagonalBarriers {
		return true, nil
	}
	horizontal, err := p.flankWalkable(oracle, from.Add(d.dCol, 0))
	if err != nil {
		return false, err
	}
	if horizontal && p.crossBorders {
		return true, nil
	}
	if !horizontal && !p.crossBorders {
		return false, nil
	}
	return p.flankWalkable(oracle, from.Add(0, d.dRow))
}

// admissible reports whether a step from `from` in direction d lands on a
// tile the search may enter. skip lets the caller prune destinations (the
// closed set) before the oracle is consulted.
func (p movementPolicy) admissible(oracle Oracle, from GridCoord, d direction, skip func(GridCoord) bool) (GridCoord, bool, error) {
	to := from.Add(d.dCol, d.dRow)
	if !p.mapSize.Contains(to) {
		return to, false, nil
	}
	if skip != nil && skip(to) {
		return to, false, nil
	}
	ok, err := walkable(oracle, to)
	if err != nil || !ok {
		return to, false, err
	}
	if d.diagonal() {
		ok, err = p.diagonalAllowed(oracle, from, d)
	}
	return to, ok, err
}
