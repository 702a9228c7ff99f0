package pathfinding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenHeapOrdersByFThenH(t *testing.T) {
	arena := newNodeArena(8)
	h := openHeap{arena: arena}

	// f = g + h
	push := func(col, g int, hv float64) int {
		idx := arena.add(GridCoord{Col: col}, g, hv, noParent)
		h.push(idx)
		return idx
	}
	a := push(0, 30, 20) // f 50, h 20
	b := push(1, 40, 10) // f 50, h 10
	c := push(2, 10, 30) // f 40
	d := push(3, 20, 40) // f 60
	e := push(4, 45, 5)  // f 50, h 5

	var order []int
	for h.len() > 0 {
		idx, ok := h.pop()
		require.True(t, ok)
		assert.Equal(t, -1, arena.at(idx).heapIndex)
		order = append(order, idx)
	}
	assert.Equal(t, []int{c, e, b, a, d}, order)

	_, ok := h.pop()
	assert.False(t, ok)
}

func TestOpenHeapEqualKeysPopInDiscoveryOrder(t *testing.T) {
	arena := newNodeArena(8)
	h := openHeap{arena: arena}
	for col := 0; col < 6; col++ {
		h.push(arena.add(GridCoord{Col: col}, 10, 10, noParent))
	}
	for want := 0; want < 6; want++ {
		idx, _ := h.pop()
		assert.Equal(t, want, idx)
	}
}

func TestOpenHeapFixAfterDecrease(t *testing.T) {
	arena := newNodeArena(8)
	h := openHeap{arena: arena}
	first := arena.add(GridCoord{Col: 0}, 10, 10, noParent)
	second := arena.add(GridCoord{Col: 1}, 20, 10, noParent)
	third := arena.add(GridCoord{Col: 2}, 30, 10, noParent)
	h.push(first)
	h.push(second)
	h.push(third)

	arena.at(third).g = 0
	h.fix(third)

	idx, _ := h.pop()
	assert.Equal(t, third, idx)
	idx, _ = h.pop()
	assert.Equal(t, first, idx)

	// fixing a node that is no longer queued is a no-op
	h.fix(third)
	assert.Equal(t, 1, h.len())
}

func TestNodeArenaKeepsOneNodePerTile(t *testing.T) {
	pf, err := New(MapSize{Width: 12, Height: 12}, tile16, nil)
	require.NoError(t, err)
	s, _, err := pf.prepare(GridCoord{0, 0}, GridCoord{11, 7})
	require.NoError(t, err)
	require.NotNil(t, s)

	state, err := s.run()
	require.NoError(t, err)
	assert.Equal(t, stateFound, state)

	seen := make(map[GridCoord]bool)
	for i, n := range s.arena.nodes {
		assert.False(t, seen[n.coord], "duplicate node for %v", n.coord)
		seen[n.coord] = true
		assert.Equal(t, i, s.arena.find(n.coord))
		if n.closed {
			assert.Equal(t, -1, n.heapIndex, "closed node %v still queued", n.coord)
		}
	}
	assert.Len(t, s.arena.lookup, len(s.arena.nodes))
}

func TestNodeArenaTrace(t *testing.T) {
	arena := newNodeArena(4)
	a := arena.add(GridCoord{0, 0}, 0, 0, noParent)
	b := arena.add(GridCoord{1, 0}, 10, 0, a)
	c := arena.add(GridCoord{1, 1}, 20, 0, b)
	assert.Equal(t, []GridCoord{{0, 0}, {1, 0}, {1, 1}}, arena.trace(c))
	assert.Equal(t, []GridCoord{{0, 0}}, arena.trace(a))
	assert.Equal(t, -1, arena.find(GridCoord{5, 5}))
}
