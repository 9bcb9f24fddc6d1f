package game

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/CongDon1207/Four-Connect/internal/domain"
	"github.com/CongDon1207/Four-Connect/internal/service/bot"
)

// Record is the persisted form of a session.
type Record struct {
	ID        string          `json:"id"`
	Settings  Settings        `json:"settings"`
	Game      domain.Snapshot `json:"game"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// SnapshotStore keeps session records outside the process so a restarted
// server can pick games up again. Load reports found=false for unknown ids.
type SnapshotStore interface {
	Save(ctx context.Context, rec Record) error
	Load(ctx context.Context, id string) (rec Record, found bool, err error)
	Delete(ctx context.Context, id string) error
}

func (s *Session) Record() Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Record{
		ID:        s.ID,
		Settings:  s.Settings,
		Game:      s.game.Snapshot(),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.updatedAt,
	}
}

// RestoreSession rebuilds a session from its record. The game is replayed move
// by move, so a tampered record fails here instead of producing a broken board.
func RestoreSession(rec Record, table bot.DifficultyTable) (*Session, error) {
	s, err := NewSession(rec.ID, rec.Settings, table)
	if err != nil {
		return nil, err
	}

	g, err := domain.RestoreGame(rec.Game)
	if err != nil {
		return nil, errors.Wrapf(err, "restore session %s", rec.ID)
	}

	s.game = g
	s.CreatedAt = rec.CreatedAt
	s.updatedAt = rec.UpdatedAt
	return s, nil
}
