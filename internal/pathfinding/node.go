package pathfinding

import "fmt"

// GridCoord addresses one tile of the map. Columns grow to the right and
// rows grow upward from the bottom edge, both starting at zero.
type GridCoord struct {
	Col int
	Row int
}

// String formats the coordinate as "(col,row)".
func (c GridCoord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Col, c.Row)
}

// Add returns c offset by the given column and row deltas.
func (c GridCoord) Add(dCol, dRow int) GridCoord {
	return GridCoord{Col: c.Col + dCol, Row: c.Row + dRow}
}

// noParent marks a node without a predecessor (the start node).
const noParent = -1

// gridNode is the per-search record for one visited tile. Nodes live in the
// search arena and refer to their predecessor by arena index.
type gridNode struct {
	coord     GridCoord
	g         int
	h         float64
	parent    int
	heapIndex int // position in the open heap, -1 when not queued
	closed    bool
}

func (n *gridNode) f() float64 {
	return float64(n.g) + n.h
}

// nodeArena owns every gridNode created during one search. A coordinate maps
// to at most one node.
type nodeArena struct {
	nodes  []gridNode
	lookup map[GridCoord]int
}

func newNodeArena(capacity int) *nodeArena {
	return &nodeArena{
		nodes:  make([]gridNode, 0, capacity),
		lookup: make(map[GridCoord]int, capacity),
	}
}

// find returns the arena index for coord, or -1 if the tile has not been reached.
func (a *nodeArena) find(coord GridCoord) int {
	if idx, ok := a.lookup[coord]; ok {
		return idx
	}
	return -1
}

// add creates the node for coord. The caller guarantees coord is not yet present.
func (a *nodeArena) add(coord GridCoord, g int, h float64, parent int) int {
	idx := len(a.nodes)
	a.nodes = append(a.nodes, gridNode{
		coord:     coord,
		g:         g,
		h:         h,
		parent:    parent,
		heapIndex: -1,
	})
	a.lookup[coord] = idx
	return idx
}

func (a *nodeArena) at(idx int) *gridNode {
	return &a.nodes[idx]
}

// trace walks parent indices from idx back to the start and returns the
// coordinates in start-to-idx order.
func (a *nodeArena) trace(idx int) []GridCoord {
	path := make([]GridCoord, 0, 16)
	for current := idx; current != noParent; current = a.nodes[current].parent {
		path = append(path, a.nodes[current].coord)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
