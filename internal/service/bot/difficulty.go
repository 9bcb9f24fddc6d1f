package bot

import (
	"fmt"
	"sort"
)

const ErrInvalidLevel Error = "invalid difficulty level"

// DifficultyTable maps a difficulty level to the search an agent runs at that level.
type DifficultyTable map[int]SearchConfig

// DefaultDifficultyTable: levels 1-3 run negamax at that depth, levels 4-5 the
// best-first search.
func DefaultDifficultyTable() DifficultyTable {
	return DifficultyTable{
		1: {Algorithm: AlgorithmNegamax, Depth: 1},
		2: {Algorithm: AlgorithmNegamax, Depth: 2},
		3: {Algorithm: AlgorithmNegamax, Depth: 3},
		4: {Algorithm: AlgorithmBestFirst, Depth: 4},
		5: {Algorithm: AlgorithmBestFirst, Depth: 5},
	}
}

// Lookup returns the search configuration of a level.
func (t DifficultyTable) Lookup(level int) (SearchConfig, error) {
	cfg, ok := t[level]
	if !ok {
		return SearchConfig{}, fmt.Errorf("%w: %d", ErrInvalidLevel, level)
	}
	return cfg, nil
}

// NewAgentForLevel builds the agent of a difficulty level.
func (t DifficultyTable) NewAgentForLevel(level int) (Agent, error) {
	cfg, err := t.Lookup(level)
	if err != nil {
		return nil, err
	}
	return NewAgent(cfg)
}

// Levels returns the known levels in ascending order.
func (t DifficultyTable) Levels() []int {
	levels := make([]int, 0, len(t))
	for level := range t {
		levels = append(levels, level)
	}
	sort.Ints(levels)
	return levels
}

func (t DifficultyTable) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("difficulty table is empty")
	}
	for level, cfg := range t {
		if level < 1 {
			return fmt.Errorf("%w: %d", ErrInvalidLevel, level)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("level %d: %w", level, err)
		}
	}
	return nil
}

// WithParallel returns a copy of the table with parallel root search switched on
// or off for every negamax level.
func (t DifficultyTable) WithParallel(parallel bool) DifficultyTable {
	out := make(DifficultyTable, len(t))
	for level, cfg := range t {
		if cfg.Algorithm == AlgorithmNegamax {
			cfg.Parallel = parallel
		}
		out[level] = cfg
	}
	return out
}
