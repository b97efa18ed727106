package planner

import "github.com/felixgeelhaar/goap-go/domain/world"

// node is one entry of the search arena. Parents are arena indices, so
// the arena can grow without invalidating links.
type node struct {
	state  world.State
	key    string // state fingerprint, computed once
	g      int
	h      int
	parent int // arena index, -1 for the root
	act    int // catalog index of the action taken, -1 for the root
	eff    int // index of the chosen effect within the action, -1 for the root
}

// frontierItem is a heap entry pointing into the arena. Entries are
// never removed when a state is reopened with a better g; stale entries
// are skipped at pop time instead.
type frontierItem struct {
	f    int
	g    int
	seq  uint64 // insertion order, the final tie-breaker
	node int    // arena index
}

// frontier is the open set: a min-heap ordered by f, then g, then
// insertion order, which makes the pop order a total order independent
// of map iteration.
type frontier []frontierItem

func (fr frontier) Len() int { return len(fr) }

func (fr frontier) Less(i, j int) bool {
	a, b := fr[i], fr[j]
	if a.f != b.f {
		return a.f < b.f
	}
	if a.g != b.g {
		return a.g < b.g
	}
	return a.seq < b.seq
}

func (fr frontier) Swap(i, j int) { fr[i], fr[j] = fr[j], fr[i] }

func (fr *frontier) Push(x any) { *fr = append(*fr, x.(frontierItem)) }

func (fr *frontier) Pop() any {
	old := *fr
	n := len(old)
	it := old[n-1]
	*fr = old[:n-1]
	return it
}
