package game

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/CongDon1207/Four-Connect/internal/domain"
	"github.com/CongDon1207/Four-Connect/internal/service/bot"
	"github.com/CongDon1207/Four-Connect/pkg/logger"
)

// Mode says who sits on the other side of the board.
type Mode string

const (
	ModeAI    Mode = "ai"
	ModeHuman Mode = "human"
)

func (m Mode) Valid() bool {
	return m == ModeAI || m == ModeHuman
}

// Error is the driver level error type; engine errors stay domain.Error.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrGameOver        Error = "game is over"
	ErrNotYourTurn     Error = "not your turn"
	ErrSessionNotFound Error = "session not found"
	ErrInvalidMode     Error = "invalid game mode"
)

// Settings are chosen when a session is created and survive resets.
type Settings struct {
	Mode    Mode `json:"mode"`
	Level   int  `json:"level"`
	AIFirst bool `json:"aiFirst"`
}

// Session is one game between a human and either the computer or a second human
// at the same screen. Play, Undo and Reset are serialized by the session mutex.
type Session struct {
	ID        string
	Settings  Settings
	CreatedAt time.Time

	mu            sync.Mutex
	game          *domain.Game
	agent         bot.Agent
	aiPlayer      domain.PlayerID
	searchTimeout time.Duration
	updatedAt     time.Time
	now           func() time.Time
	log           zerolog.Logger
}

// NewSession prepares a session without starting it. In AI mode the agent is
// taken from the difficulty table; in human mode the level is ignored.
func NewSession(id string, settings Settings, table bot.DifficultyTable) (*Session, error) {
	if !settings.Mode.Valid() {
		return nil, errors.Wrapf(ErrInvalidMode, "mode %q", settings.Mode)
	}

	s := &Session{
		ID:        id,
		Settings:  settings,
		CreatedAt: time.Now(),
		game:      domain.NewGame(),
		now:       time.Now,
		log:       logger.Component("session").With().Str("game_id", id).Logger(),
	}
	s.updatedAt = s.CreatedAt

	if settings.Mode == ModeAI {
		agent, err := table.NewAgentForLevel(settings.Level)
		if err != nil {
			return nil, err
		}
		s.agent = agent
		s.aiPlayer = domain.Player2
		if settings.AIFirst {
			s.aiPlayer = domain.Player1
		}
	} else {
		s.Settings.Level = 0
		s.Settings.AIFirst = false
	}
	return s, nil
}

// SetSearchTimeout bounds every AI move. Zero means no bound beyond the caller's context.
func (s *Session) SetSearchTimeout(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchTimeout = d
}

// Start makes the opening AI move when the AI plays first.
func (s *Session) Start(ctx context.Context) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.advance(ctx); err != nil {
		return s.stateLocked(), err
	}
	return s.stateLocked(), nil
}

// AIPlayer returns the side the computer plays, or domain.Empty in human mode.
func (s *Session) AIPlayer() domain.PlayerID {
	return s.aiPlayer
}

// Play commits the human's move in column and, in AI mode, the AI's reply.
// If a previous AI reply never completed, that reply is made first and
// ErrNotYourTurn is returned so the caller can look at the new board.
func (s *Session) Play(ctx context.Context, column int) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.game.IsFinished() {
		return s.stateLocked(), ErrGameOver
	}
	if s.aiToMove() {
		if err := s.advance(ctx); err != nil {
			return s.stateLocked(), err
		}
		return s.stateLocked(), ErrNotYourTurn
	}

	if err := s.commit(column); err != nil {
		return s.stateLocked(), err
	}
	s.log.Debug().Int("column", column).Int("moves", s.game.MoveCount()).Msg("move played")

	if err := s.advance(ctx); err != nil {
		return s.stateLocked(), err
	}
	return s.stateLocked(), nil
}

// Undo takes back the last two moves. When that hands the turn to the AI it
// moves again straight away.
func (s *Session) Undo(ctx context.Context) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.game.Undo(); err != nil {
		return s.stateLocked(), err
	}
	s.touch()
	s.log.Debug().Int("moves", s.game.MoveCount()).Msg("moves taken back")

	if err := s.advance(ctx); err != nil {
		return s.stateLocked(), err
	}
	return s.stateLocked(), nil
}

// Reset starts a new game with the same settings.
func (s *Session) Reset(ctx context.Context) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.game.Reset()
	s.touch()
	s.log.Debug().Msg("game reset")

	if err := s.advance(ctx); err != nil {
		return s.stateLocked(), err
	}
	return s.stateLocked(), nil
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

// LastActive is the time of the last committed change.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}

// commit applies a move for the current player and passes the turn unless the
// move ended the game.
func (s *Session) commit(column int) error {
	if err := s.game.ApplyMove(column); err != nil {
		return err
	}
	if !s.game.IsFinished() {
		s.game.SwitchTurn()
	}
	s.touch()
	return nil
}

func (s *Session) aiToMove() bool {
	return s.agent != nil && !s.game.IsFinished() && s.game.CurrentPlayer() == s.aiPlayer
}

// advance lets the AI move while it is its turn.
func (s *Session) advance(ctx context.Context) error {
	if !s.aiToMove() {
		return nil
	}

	if s.searchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.searchTimeout)
		defer cancel()
	}

	column, err := s.agent.ChooseMove(ctx, s.game.Position())
	if err != nil {
		return errors.Wrap(err, "ai move")
	}
	if err := s.commit(column); err != nil {
		return errors.Wrapf(err, "ai chose column %d", column)
	}

	stats := s.agent.LastStats()
	s.log.Debug().
		Int("column", column).
		Int("score", stats.Score).
		Int64("nodes", stats.Nodes).
		Msg("ai moved")
	return nil
}

func (s *Session) touch() {
	s.updatedAt = s.now()
}
