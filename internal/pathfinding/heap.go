package pathfinding

// openHeap is a binary min-heap of arena indices ordered by f, then h, then
// arena index. Lower h first keeps the search from degrading to breadth-first
// on uniform grids; the index makes ordering fully deterministic.
type openHeap struct {
	arena *nodeArena
	items []int
}

func (h *openHeap) len() int {
	return len(h.items)
}

func (h *openHeap) less(i, j int) bool {
	a := h.arena.at(h.items[i])
	b := h.arena.at(h.items[j])
	fa, fb := a.f(), b.f()
	if fa != fb {
		return fa < fb
	}
	if a.h != b.h {
		return a.h < b.h
	}
	return h.items[i] < h.items[j]
}

func (h *openHeap) swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
	h.arena.at(h.items[i]).heapIndex = i
	h.arena.at(h.items[j]).heapIndex = j
}

func (h *openHeap) push(idx int) {
	h.items = append(h.items, idx)
	pos := len(h.items) - 1
	h.arena.at(idx).heapIndex = pos
	h.up(pos)
}

func (h *openHeap) pop() (int, bool) {
	if len(h.items) == 0 {
		return -1, false
	}
	last := len(h.items) - 1
	h.swap(0, last)
	idx := h.items[last]
	h.items = h.items[:last]
	h.arena.at(idx).heapIndex = -1
	if len(h.items) > 0 {
		h.down(0)
	}
	return idx, true
}

// fix restores heap order after the key of the node at arena index idx decreased.
func (h *openHeap) fix(idx int) {
	pos := h.arena.at(idx).heapIndex
	if pos < 0 {
		return
	}
	h.up(pos)
}

func (h *openHeap) up(i int) {
	for i > 0 {
		p := (i - 1) / 2
		if !h.less(i, p) {
			break
		}
		h.swap(i, p)
		i = p
	}
}

func (h *openHeap) down(i int) {
	n := len(h.items)
	for {
		left := 2*i + 1
		if left >= n {
			break
		}
		smallest := left
		if right := left + 1; right < n && h.less(right, left) {
			smallest = right
		}
		if !h.less(smallest, i) {
			break
		}
		h.swap(i, smallest)
		i = smallest
	}
}
