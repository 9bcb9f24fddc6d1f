package bot

import (
	"container/heap"
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/CongDon1207/Four-Connect/internal/domain"
)

// BestFirst is an SSS* search. Instead of walking the tree depth first it keeps an
// OPEN list ordered by merit (an upper bound on the value reachable through a
// node, seen from the root) and always works on the most promising entry. The
// search stops as soon as the root is solved, which usually leaves large parts of
// the tree unvisited.
//
// Entries with equal merit are taken in lexicographic order of their move path,
// so among equally good root moves the lowest column is solved first, the same
// choice Negamax makes.
type BestFirst struct {
	depth int

	mu    sync.Mutex
	stats Stats
}

func NewBestFirst(depth int) *BestFirst {
	return &BestFirst{depth: depth}
}

func (b *BestFirst) Config() SearchConfig {
	return SearchConfig{Algorithm: AlgorithmBestFirst, Depth: b.depth}
}

func (b *BestFirst) LastStats() Stats {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stats
}

type nodeStatus uint8

const (
	statusLive nodeStatus = iota
	statusSolved
)

type sssNode struct {
	pos    domain.Position
	path   []int
	parent *sssNode
	index  int   // position among the parent's moves
	moves  []int // filled when the node is expanded
}

func (n *sssNode) ply() int {
	return len(n.path)
}

// the root is a MAX node, plies alternate from there
func (n *sssNode) isMax() bool {
	return n.ply()%2 == 0
}

func (n *sssNode) child(i int) (*sssNode, error) {
	col := n.moves[i]
	pos, err := n.pos.Play(col)
	if err != nil {
		return nil, err
	}
	path := make([]int, len(n.path)+1)
	copy(path, n.path)
	path[len(n.path)] = col
	return &sssNode{pos: pos, path: path, parent: n, index: i}, nil
}

// isDescendant reports whether n lies strictly below ancestor.
func (n *sssNode) isDescendant(ancestor *sssNode) bool {
	if len(n.path) <= len(ancestor.path) {
		return false
	}
	for i, col := range ancestor.path {
		if n.path[i] != col {
			return false
		}
	}
	return true
}

type openEntry struct {
	node   *sssNode
	status nodeStatus
	merit  int
}

// openList is a max-heap on merit, ties broken by the smaller move path.
type openList []*openEntry

func (o openList) Len() int { return len(o) }

func (o openList) Less(i, j int) bool {
	if o[i].merit != o[j].merit {
		return o[i].merit > o[j].merit
	}
	return comparePaths(o[i].node.path, o[j].node.path) < 0
}

func (o openList) Swap(i, j int) { o[i], o[j] = o[j], o[i] }

func (o *openList) Push(x any) { *o = append(*o, x.(*openEntry)) }

func (o *openList) Pop() any {
	old := *o
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*o = old[:n-1]
	return e
}

// purge drops every entry below ancestor.
func (o *openList) purge(ancestor *sssNode) {
	kept := (*o)[:0]
	for _, e := range *o {
		if !e.node.isDescendant(ancestor) {
			kept = append(kept, e)
		}
	}
	for i := len(kept); i < len(*o); i++ {
		(*o)[i] = nil
	}
	*o = kept
	heap.Init(o)
}

func comparePaths(a, b []int) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return len(a) - len(b)
}

func (b *BestFirst) ChooseMove(ctx context.Context, pos domain.Position) (int, error) {
	start := time.Now()
	if _, err := checkRoot(pos); err != nil {
		return -1, err
	}

	column, score, nodes, err := b.search(ctx, pos)
	if err != nil {
		return -1, err
	}

	stats := Stats{Nodes: nodes, Score: score, Elapsed: time.Since(start)}
	b.mu.Lock()
	b.stats = stats
	b.mu.Unlock()
	observeSearch(AlgorithmBestFirst, stats)

	log.Debug().
		Str("component", "search").
		Str("algorithm", string(AlgorithmBestFirst)).
		Int("depth", b.depth).
		Int("column", column).
		Int("score", score).
		Int64("nodes", nodes).
		Dur("elapsed", stats.Elapsed).
		Msg("move chosen")

	return column, nil
}

func (b *BestFirst) search(ctx context.Context, pos domain.Position) (column, score int, nodes int64, err error) {
	// every candidate root move is followed by depth plies
	horizon := b.depth + 1

	root := &sssNode{pos: pos}
	open := &openList{}
	heap.Push(open, &openEntry{node: root, status: statusLive, merit: infinity})

	column = -1
	for open.Len() > 0 {
		if nodes%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return -1, 0, nodes, err
			}
		}

		e := heap.Pop(open).(*openEntry)
		n := e.node

		if e.status == statusSolved && n.parent == nil {
			return column, e.merit, nodes, nil
		}

		if e.status == statusLive {
			nodes++
			s, terminal := evaluate(&n.pos, horizon-n.ply())
			if terminal {
				// scores are from the mover's side, merits from the root's
				if !n.isMax() {
					s = -s
				}
				heap.Push(open, &openEntry{node: n, status: statusSolved, merit: min(e.merit, s)})
				continue
			}

			n.moves = n.pos.LegalMoves()
			if n.isMax() {
				for i := range n.moves {
					c, err := n.child(i)
					if err != nil {
						return -1, 0, nodes, err
					}
					heap.Push(open, &openEntry{node: c, status: statusLive, merit: e.merit})
				}
			} else {
				c, err := n.child(0)
				if err != nil {
					return -1, 0, nodes, err
				}
				heap.Push(open, &openEntry{node: c, status: statusLive, merit: e.merit})
			}
			continue
		}

		p := n.parent
		if !n.isMax() {
			// a solved MIN node is the best its MAX parent can do
			open.purge(p)
			if p.parent == nil {
				column = n.path[0]
			}
			heap.Push(open, &openEntry{node: p, status: statusSolved, merit: e.merit})
			continue
		}

		// a solved MAX node hands over to its next sibling under the MIN parent
		if next := n.index + 1; next < len(p.moves) {
			c, err := p.child(next)
			if err != nil {
				return -1, 0, nodes, err
			}
			heap.Push(open, &openEntry{node: c, status: statusLive, merit: e.merit})
		} else {
			heap.Push(open, &openEntry{node: p, status: statusSolved, merit: e.merit})
		}
	}

	// the root always gets solved before OPEN runs dry
	return -1, 0, nodes, ErrNoLegalMoves
}
