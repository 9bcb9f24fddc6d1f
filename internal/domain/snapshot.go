package domain

import "fmt"

// Snapshot is the serializable form of a Game. Only the move log is stored, the
// boards are rebuilt by replaying it, which also revalidates every move.
type Snapshot struct {
	Moves   []SnapshotMove `json:"moves"`
	Current PlayerID       `json:"current"`
}

type SnapshotMove struct {
	Column int      `json:"column"`
	Player PlayerID `json:"player"`
}

func (g *Game) Snapshot() Snapshot {
	entries := g.history.All()
	moves := make([]SnapshotMove, len(entries))
	for i, e := range entries {
		moves[i] = SnapshotMove{Column: e.Column, Player: e.Mover}
	}
	return Snapshot{Moves: moves, Current: g.current}
}

// RestoreGame replays a snapshot into a fresh Game.
func RestoreGame(s Snapshot) (*Game, error) {
	if !s.Current.IsPlayer() {
		return nil, fmt.Errorf("%w: current player %v", ErrInvalidBoard, s.Current)
	}

	g := NewGame()
	for i, m := range s.Moves {
		if !m.Player.IsPlayer() {
			return nil, fmt.Errorf("%w: move %d has player %v", ErrInvalidBoard, i, m.Player)
		}
		g.current = m.Player
		if err := g.ApplyMove(m.Column); err != nil {
			return nil, fmt.Errorf("replaying move %d: %w", i, err)
		}
	}
	g.current = s.Current
	return g, nil
}
