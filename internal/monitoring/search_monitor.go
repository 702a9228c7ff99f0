package monitoring

import (
	"sync"
	"sync/atomic"
	"time"

	"tilepath/internal/pathfinding"
)

// SearchMonitor aggregates statistics over pathfinding searches. It
// implements pathfinding.Recorder and is safe for concurrent use.
type SearchMonitor struct {
	searches atomic.Uint64
	found    atomic.Uint64
	failed   atomic.Uint64 // oracle faults
	expanded atomic.Uint64
	elapsed  atomic.Uint64 // nanoseconds

	// Statistics
	mutex      sync.RWMutex
	reasons    map[pathfinding.NoPathReason]uint64
	lastResult pathfinding.Result
	lastErr    error
	peakNodes  int
	slowest    time.Duration
	startTime  time.Time
}

// Snapshot is a point-in-time copy of the monitor's counters.
type Snapshot struct {
	Searches      uint64
	Found         uint64
	Failed        uint64
	NoPath        map[pathfinding.NoPathReason]uint64
	TotalExpanded uint64
	TotalElapsed  time.Duration
	AvgElapsed    time.Duration
	AvgExpanded   float64
	PeakExpanded  int
	Slowest       time.Duration
	Uptime        time.Duration
	LastResult    pathfinding.Result
	LastError     error
}

// NewSearchMonitor creates an empty monitor.
func NewSearchMonitor() *SearchMonitor {
	return &SearchMonitor{
		reasons:   make(map[pathfinding.NoPathReason]uint64),
		startTime: time.Now(),
	}
}

// RecordSearch implements pathfinding.Recorder.
func (sm *SearchMonitor) RecordSearch(result pathfinding.Result, elapsed time.Duration, err error) {
	sm.searches.Add(1)
	sm.expanded.Add(uint64(result.Expanded))
	sm.elapsed.Add(uint64(elapsed.Nanoseconds()))
	switch {
	case err != nil:
		sm.failed.Add(1)
	case result.Found:
		sm.found.Add(1)
	}

	sm.mutex.Lock()
	defer sm.mutex.Unlock()
	if err == nil && !result.Found {
		sm.reasons[result.Reason]++
	}
	if result.Expanded > sm.peakNodes {
		sm.peakNodes = result.Expanded
	}
	if elapsed > sm.slowest {
		sm.slowest = elapsed
	}
	sm.lastResult = result
	sm.lastErr = err
}

// Snapshot returns the current statistics.
func (sm *SearchMonitor) Snapshot() Snapshot {
	snap := Snapshot{
		Searches:      sm.searches.Load(),
		Found:         sm.found.Load(),
		Failed:        sm.failed.Load(),
		TotalExpanded: sm.expanded.Load(),
		TotalElapsed:  time.Duration(sm.elapsed.Load()),
	}
	if snap.Searches > 0 {
		snap.AvgElapsed = snap.TotalElapsed / time.Duration(snap.Searches)
		snap.AvgExpanded = float64(snap.TotalExpanded) / float64(snap.Searches)
	}

	sm.mutex.RLock()
	defer sm.mutex.RUnlock()
	snap.NoPath = make(map[pathfinding.NoPathReason]uint64, len(sm.reasons))
	for reason, n := range sm.reasons {
		snap.NoPath[reason] = n
	}
	snap.PeakExpanded = sm.peakNodes
	snap.Slowest = sm.slowest
	snap.Uptime = time.Since(sm.startTime)
	snap.LastResult = sm.lastResult
	snap.LastError = sm.lastErr
	return snap
}

// Reset clears all counters.
func (sm *SearchMonitor) Reset() {
	sm.mutex.Lock()
	defer sm.mutex.Unlock()
	sm.searches.Store(0)
	sm.found.Store(0)
	sm.failed.Store(0)
	sm.expanded.Store(0)
	sm.elapsed.Store(0)
	sm.reasons = make(map[pathfinding.NoPathReason]uint64)
	sm.lastResult = pathfinding.Result{}
	sm.lastErr = nil
	sm.peakNodes = 0
	sm.slowest = 0
	sm.startTime = time.Now()
}

// SuccessRate is the fraction of searches that found a path.
func (s Snapshot) SuccessRate() float64 {
	if s.Searches == 0 {
		return 0
	}
	return float64(s.Found) / float64(s.Searches)
}
