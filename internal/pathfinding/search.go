package pathfinding

// Result describes the outcome of one search.
type Result struct {
	// Found is true when a path from start to target exists.
	Found bool
	// Reason explains a missing path. ReasonNone when Found.
	Reason NoPathReason
	// Start and Target are the endpoints resolved to tiles.
	Start  GridCoord
	Target GridCoord
	// Tiles lists the path from Start to Target inclusive.
	Tiles []GridCoord
	// Waypoints are the tile centers of Tiles in screen units.
	Waypoints []Point
	// Cost is the accumulated movement cost of the path.
	Cost int
	// Expanded counts nodes moved to the closed set.
	Expanded int
}

type searchState int

const (
	stateRunning searchState = iota
	stateFound
	stateExhausted
)

// search holds the session state of one A* run. Nothing in it outlives the
// run or is shared with other runs.
type search struct {
	policy    movementPolicy
	heuristic Heuristic
	oracle    Oracle

	start, target GridCoord

	arena    *nodeArena
	open     openHeap
	expanded int
	current  int
	state    searchState
}

func newSearch(policy movementPolicy, heuristic Heuristic, oracle Oracle, start, target GridCoord) *search {
	arena := newNodeArena(64)
	s := &search{
		policy:    policy,
		heuristic: heuristic,
		oracle:    oracle,
		start:     start,
		target:    target,
		arena:     arena,
		open:      openHeap{arena: arena},
		current:   noParent,
	}
	root := arena.add(start, 0, heuristic.Distance(start, target), noParent)
	s.open.push(root)
	return s
}

func (s *search) isClosed(c GridCoord) bool {
	idx := s.arena.find(c)
	return idx >= 0 && s.arena.at(idx).closed
}

// step expands one node. It returns the new state of the search.
func (s *search) step() (searchState, error) {
	if s.state != stateRunning {
		return s.state, nil
	}
	idx, ok := s.open.pop()
	if !ok {
		s.state = stateExhausted
		return s.state, nil
	}
	node := s.arena.at(idx)
	node.closed = true
	s.expanded++
	s.current = idx

	if node.coord == s.target {
		s.state = stateFound
		return s.state, nil
	}

	from := node.coord
	g := node.g
	for _, d := range s.policy.directions() {
		to, ok, err := s.policy.admissible(s.oracle, from, d, s.isClosed)
		if err != nil {
			return s.state, err
		}
		if !ok {
			continue
		}
		tentative := g + d.cost
		if nidx := s.arena.find(to); nidx < 0 {
			nidx = s.arena.add(to, tentative, s.heuristic.Distance(to, s.target), idx)
			s.open.push(nidx)
		} else if n := s.arena.at(nidx); tentative < n.g {
			n.g = tentative
			n.parent = idx
			s.open.fix(nidx)
		}
	}
	return s.state, nil
}

// run expands nodes until the search finishes or the oracle fails.
func (s *search) run() (searchState, error) {
	for {
		state, err := s.step()
		if err != nil || state != stateRunning {
			return state, err
		}
	}
}

// openTiles lists the coordinates currently in the open set.
func (s *search) openTiles() []GridCoord {
	tiles := make([]GridCoord, 0, s.open.len())
	for _, idx := range s.open.items {
		tiles = append(tiles, s.arena.at(idx).coord)
	}
	return tiles
}

// closedTiles lists the coordinates in the closed set in discovery order.
func (s *search) closedTiles() []GridCoord {
	tiles := make([]GridCoord, 0, s.expanded)
	for i := range s.arena.nodes {
		if s.arena.nodes[i].closed {
			tiles = append(tiles, s.arena.nodes[i].coord)
		}
	}
	return tiles
}

// result assembles the Result for a finished search.
func (s *search) result() Result {
	r := Result{
		Start:    s.start,
		Target:   s.target,
		Expanded: s.expanded,
	}
	switch s.state {
	case stateFound:
		r.Found = true
		r.Tiles = s.arena.trace(s.current)
		r.Cost = s.arena.at(s.current).g
	case stateExhausted:
		r.Reason = ReasonUnreachable
	}
	return r
}
