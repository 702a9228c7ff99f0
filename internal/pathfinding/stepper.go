package pathfinding

import "time"

// StepSnapshot describes the search after one expansion.
type StepSnapshot struct {
	// Current is the tile expanded by this step.
	Current GridCoord
	// StepIndex counts expansions so far, starting at 1.
	StepIndex int
	// Done is set once the search has finished; Result is final from then on.
	Done   bool
	Result Result
}

// Stepper runs a search one expansion at a time, for visualisation and
// debugging. It captures the pathfinder configuration when created, so later
// changes to the pathfinder do not affect it.
type Stepper struct {
	pf      *Pathfinder
	s       *search
	done    bool
	result  Result
	steps   int
	elapsed time.Duration
}

// NewStepper prepares a stepwise search between two screen positions.
func (pf *Pathfinder) NewStepper(start, target Point) (*Stepper, error) {
	return pf.NewTileStepper(pf.ScreenToTile(start), pf.ScreenToTile(target))
}

// NewTileStepper prepares a stepwise search between two tiles. Fast
// rejections (same tile, out of bounds, blocked target) yield a stepper that
// is already done. Only an oracle failure returns an error.
func (pf *Pathfinder) NewTileStepper(start, target GridCoord) (*Stepper, error) {
	st := &Stepper{pf: pf.Clone()}
	s, early, err := st.pf.prepare(start, target)
	if err != nil {
		return nil, err
	}
	if s == nil {
		st.done = true
		st.result = early
		st.record(nil)
		return st, nil
	}
	st.s = s
	return st, nil
}

// Done reports whether the search has finished.
func (st *Stepper) Done() bool {
	return st.done
}

// Result returns the outcome once Done; before that it is the zero Result.
func (st *Stepper) Result() Result {
	return st.result
}

// Step expands the next node. Calling Step after the search finished returns
// the final snapshot again.
func (st *Stepper) Step() (StepSnapshot, error) {
	if st.done {
		return st.snapshot(), nil
	}
	began := time.Now()
	state, err := st.s.step()
	st.elapsed += time.Since(began)
	if err != nil {
		st.done = true
		st.result = Result{Start: st.s.start, Target: st.s.target, Expanded: st.s.expanded}
		st.record(err)
		return st.snapshot(), err
	}
	st.steps = st.s.expanded
	if state != stateRunning {
		st.done = true
		st.result = st.pf.finish(st.s.result())
		st.record(nil)
	}
	return st.snapshot(), nil
}

// Run steps until the search is done.
func (st *Stepper) Run() (Result, error) {
	for !st.done {
		if _, err := st.Step(); err != nil {
			return st.result, err
		}
	}
	return st.result, nil
}

// Open lists tiles in the open set. Empty for rejected searches.
func (st *Stepper) Open() []GridCoord {
	if st.s == nil {
		return nil
	}
	return st.s.openTiles()
}

// Closed lists tiles in the closed set. Empty for rejected searches.
func (st *Stepper) Closed() []GridCoord {
	if st.s == nil {
		return nil
	}
	return st.s.closedTiles()
}

// PartialPath returns the best known route from the start to the most
// recently expanded tile.
func (st *Stepper) PartialPath() []GridCoord {
	if st.s == nil || st.s.current == noParent {
		return nil
	}
	return st.s.arena.trace(st.s.current)
}

func (st *Stepper) snapshot() StepSnapshot {
	snap := StepSnapshot{StepIndex: st.steps, Done: st.done, Result: st.result}
	if st.s != nil && st.s.current != noParent {
		snap.Current = st.s.arena.at(st.s.current).coord
	}
	return snap
}

func (st *Stepper) record(err error) {
	if st.pf.recorder != nil {
		st.pf.recorder.RecordSearch(st.result, st.elapsed, err)
	}
}
