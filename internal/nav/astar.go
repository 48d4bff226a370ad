package nav

import "container/heap"

var neighborOffsets = [...]Cell{
	{X: 0, Y: -1},
	{X: 1, Y: 0},
	{X: 0, Y: 1},
	{X: -1, Y: 0},
}

type pathNode struct {
	cell   Cell
	g      int
	h      int
	seq    int
	index  int
	parent *pathNode
}

func (n *pathNode) f() int { return n.g + n.h }

// pathQueue orders by f, then h (prefer nodes closer to the goal), then
// insertion sequence so equal-cost ties resolve the same way every run.
type pathQueue []*pathNode

func (pq pathQueue) Len() int { return len(pq) }

func (pq pathQueue) Less(i, j int) bool {
	a, b := pq[i], pq[j]
	if a.f() != b.f() {
		return a.f() < b.f()
	}
	if a.h != b.h {
		return a.h < b.h
	}
	return a.seq < b.seq
}

func (pq pathQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *pathQueue) Push(x any) {
	item := x.(*pathNode)
	item.index = len(*pq)
	*pq = append(*pq, item)
}

func (pq *pathQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*pq = old[:n-1]
	return item
}

// AStar returns the cells from start to goal inclusive, or nil when no path
// exists. Start and goal must be in bounds and walkable. Moves are
// 4-connected with unit cost; the Manhattan heuristic keeps results optimal.
func AStar(g *Grid, start, goal Cell) []Cell {
	if !g.Walkable(start) || !g.Walkable(goal) {
		return nil
	}
	if start == goal {
		return []Cell{start}
	}

	open := &pathQueue{}
	heap.Init(open)
	seq := 0
	heap.Push(open, &pathNode{cell: start, h: start.Manhattan(goal), seq: seq})

	gScore := map[int]int{g.index(start): 0}
	closed := make(map[int]struct{})

	for open.Len() > 0 {
		current := heap.Pop(open).(*pathNode)
		currIdx := g.index(current.cell)
		if _, seen := closed[currIdx]; seen {
			continue
		}
		closed[currIdx] = struct{}{}
		if current.cell == goal {
			return reconstructPath(current)
		}

		for _, d := range neighborOffsets {
			next := Cell{X: current.cell.X + d.X, Y: current.cell.Y + d.Y}
			if !g.Walkable(next) {
				continue
			}
			idx := g.index(next)
			if _, seen := closed[idx]; seen {
				continue
			}
			tentative := current.g + 1
			if prev, ok := gScore[idx]; ok && tentative >= prev {
				continue
			}
			gScore[idx] = tentative
			seq++
			heap.Push(open, &pathNode{
				cell:   next,
				g:      tentative,
				h:      next.Manhattan(goal),
				seq:    seq,
				parent: current,
			})
		}
	}
	return nil
}

func reconstructPath(end *pathNode) []Cell {
	path := make([]Cell, 0, end.g+1)
	for n := end; n != nil; n = n.parent {
		path = append(path, n.cell)
	}
	for i := 0; i < len(path)/2; i++ {
		j := len(path) - 1 - i
		path[i], path[j] = path[j], path[i]
	}
	return path
}
