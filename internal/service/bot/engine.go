package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/CongDon1207/Four-Connect/internal/domain"
)

// Algorithm selects the search strategy of an agent.
type Algorithm string

const (
	AlgorithmNegamax   Algorithm = "negamax"
	AlgorithmBestFirst Algorithm = "bestfirst"
)

func (a Algorithm) Valid() bool {
	return a == AlgorithmNegamax || a == AlgorithmBestFirst
}

// SearchConfig fixes how an agent searches. It does not change for the lifetime
// of the agent.
type SearchConfig struct {
	Algorithm Algorithm `json:"algorithm" yaml:"algorithm"`
	// Depth is the number of plies searched after each candidate move.
	Depth int `json:"depth" yaml:"depth"`
	// Parallel searches the root moves concurrently. Negamax only.
	Parallel bool `json:"parallel,omitempty" yaml:"parallel,omitempty"`
}

func (c SearchConfig) Validate() error {
	if !c.Algorithm.Valid() {
		return fmt.Errorf("unknown search algorithm %q", c.Algorithm)
	}
	if c.Depth < 1 {
		return fmt.Errorf("search depth must be positive, got %d", c.Depth)
	}
	return nil
}

// Stats describes the work done by the last ChooseMove call.
type Stats struct {
	Nodes   int64
	Score   int
	Elapsed time.Duration
}

// Agent picks a move for the side to move in pos. Implementations never touch
// any committed game; they only work on copies derived from pos.
type Agent interface {
	ChooseMove(ctx context.Context, pos domain.Position) (int, error)
	Config() SearchConfig
	LastStats() Stats
}

// NewAgent builds the agent for a search configuration.
func NewAgent(cfg SearchConfig) (Agent, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Algorithm {
	case AlgorithmBestFirst:
		return NewBestFirst(cfg.Depth), nil
	default:
		return NewNegamax(cfg.Depth, cfg.Parallel), nil
	}
}

// checkRoot returns the moves available at the root, or ErrNoLegalMoves when the
// position is already decided.
func checkRoot(pos domain.Position) ([]int, error) {
	if pos.Status().IsOver() {
		return nil, ErrNoLegalMoves
	}
	moves := pos.LegalMoves()
	if len(moves) == 0 {
		return nil, ErrNoLegalMoves
	}
	return moves, nil
}
