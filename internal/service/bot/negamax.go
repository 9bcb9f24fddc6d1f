package bot

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/CongDon1207/Four-Connect/internal/domain"
)

// how often (in nodes) a running search looks at its context
const cancelCheckInterval = 1024

// Negamax is a depth bounded negamax search with an alpha-beta window.
// Root moves are tried in ascending column order and the first best one wins.
type Negamax struct {
	depth    int
	parallel bool

	mu    sync.Mutex
	stats Stats
}

func NewNegamax(depth int, parallel bool) *Negamax {
	return &Negamax{depth: depth, parallel: parallel}
}

func (n *Negamax) Config() SearchConfig {
	return SearchConfig{Algorithm: AlgorithmNegamax, Depth: n.depth, Parallel: n.parallel}
}

func (n *Negamax) LastStats() Stats {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.stats
}

func (n *Negamax) ChooseMove(ctx context.Context, pos domain.Position) (int, error) {
	start := time.Now()
	moves, err := checkRoot(pos)
	if err != nil {
		return -1, err
	}

	var nodes atomic.Int64
	var scores []int
	if n.parallel {
		scores, err = n.searchParallel(ctx, pos, moves, &nodes)
	} else {
		scores, err = n.searchSequential(ctx, pos, moves, &nodes)
	}
	if err != nil {
		return -1, err
	}

	// scores are in column order, so a strict comparison keeps the lowest column on ties
	bestIdx := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] > scores[bestIdx] {
			bestIdx = i
		}
	}

	stats := Stats{Nodes: nodes.Load(), Score: scores[bestIdx], Elapsed: time.Since(start)}
	n.mu.Lock()
	n.stats = stats
	n.mu.Unlock()
	observeSearch(AlgorithmNegamax, stats)

	log.Debug().
		Str("component", "search").
		Str("algorithm", string(AlgorithmNegamax)).
		Int("depth", n.depth).
		Int("column", moves[bestIdx]).
		Int("score", stats.Score).
		Int64("nodes", stats.Nodes).
		Dur("elapsed", stats.Elapsed).
		Msg("move chosen")

	return moves[bestIdx], nil
}

// searchSequential narrows the window as better root moves are found. Moves that
// cannot beat the current best come back with an upper bound, which is never
// strictly greater than the best, so the choice matches a full-window search.
func (n *Negamax) searchSequential(ctx context.Context, pos domain.Position, moves []int, nodes *atomic.Int64) ([]int, error) {
	scores := make([]int, len(moves))
	alpha := -infinity
	for i, col := range moves {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		child, err := pos.Play(col)
		if err != nil {
			return nil, err
		}
		score, err := n.negamax(ctx, &child, n.depth, -infinity, -alpha, nodes)
		if err != nil {
			return nil, err
		}
		scores[i] = -score
		if scores[i] > alpha {
			alpha = scores[i]
		}
	}
	return scores, nil
}

// searchParallel gives every root move its own goroutine and its own copy of the
// position. Each one runs with a full window so the scores are exact.
func (n *Negamax) searchParallel(ctx context.Context, pos domain.Position, moves []int, nodes *atomic.Int64) ([]int, error) {
	scores := make([]int, len(moves))
	g, gctx := errgroup.WithContext(ctx)

	for i, col := range moves {
		child, err := pos.Play(col)
		if err != nil {
			return nil, err
		}
		i, child := i, child
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			score, err := n.negamax(gctx, &child, n.depth, -infinity, infinity, nodes)
			if err != nil {
				return err
			}
			scores[i] = -score
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scores, nil
}

func (n *Negamax) negamax(ctx context.Context, pos *domain.Position, remaining, alpha, beta int, nodes *atomic.Int64) (int, error) {
	if nodes.Add(1)%cancelCheckInterval == 0 {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
	}

	if score, terminal := evaluate(pos, remaining); terminal {
		return score, nil
	}

	best := -infinity
	for _, col := range pos.LegalMoves() {
		child, err := pos.Play(col)
		if err != nil {
			return 0, err
		}
		score, err := n.negamax(ctx, &child, remaining-1, -beta, -alpha, nodes)
		if err != nil {
			return 0, err
		}
		score = -score

		if score > best {
			best = score
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			break
		}
	}
	return best, nil
}
