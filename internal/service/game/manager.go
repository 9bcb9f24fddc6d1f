package game

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/CongDon1207/Four-Connect/internal/service/bot"
	"github.com/CongDon1207/Four-Connect/pkg/logger"
	"github.com/CongDon1207/Four-Connect/pkg/uid"
)

// SessionManager owns the live sessions of the process. Sessions are kept in
// memory; when a store is configured every committed change is also written
// there and sessions missing from memory are looked up in it.
type SessionManager struct {
	sessions map[string]*Session // gameID → Session
	mu       sync.RWMutex

	table         bot.DifficultyTable
	store         SnapshotStore
	searchTimeout time.Duration
	now           func() time.Time
	log           zerolog.Logger
}

type Option func(*SessionManager)

// WithStore persists sessions in store.
func WithStore(store SnapshotStore) Option {
	return func(sm *SessionManager) { sm.store = store }
}

// WithSearchTimeout bounds the time an AI move may take.
func WithSearchTimeout(d time.Duration) Option {
	return func(sm *SessionManager) { sm.searchTimeout = d }
}

func NewSessionManager(table bot.DifficultyTable, opts ...Option) *SessionManager {
	sm := &SessionManager{
		sessions: make(map[string]*Session),
		table:    table,
		now:      time.Now,
		log:      logger.Component("session"),
	}
	for _, opt := range opts {
		opt(sm)
	}
	return sm
}

// Difficulties returns the table new sessions pick their agents from.
func (sm *SessionManager) Difficulties() bot.DifficultyTable {
	return sm.table
}

// Create starts a new session. If the AI opens, its first move is made before
// the session is returned.
func (sm *SessionManager) Create(ctx context.Context, settings Settings) (*Session, error) {
	session, err := NewSession(uid.GenerateGameID(), settings, sm.table)
	if err != nil {
		return nil, err
	}
	session.now = sm.now
	session.CreatedAt = sm.now()
	session.updatedAt = session.CreatedAt
	session.searchTimeout = sm.searchTimeout

	if _, err := session.Start(ctx); err != nil {
		return nil, errors.Wrap(err, "start session")
	}

	sm.mu.Lock()
	sm.sessions[session.ID] = session
	sm.mu.Unlock()

	sm.persist(ctx, session)
	sm.log.Info().
		Str("game_id", session.ID).
		Str("mode", string(settings.Mode)).
		Int("level", session.Settings.Level).
		Bool("ai_first", session.Settings.AIFirst).
		Msg("session created")
	return session, nil
}

// Get returns a live session, reloading it from the store when it is not in memory.
func (sm *SessionManager) Get(ctx context.Context, gameID string) (*Session, error) {
	sm.mu.RLock()
	session, exists := sm.sessions[gameID]
	sm.mu.RUnlock()
	if exists {
		return session, nil
	}

	if sm.store == nil {
		return nil, errors.Wrapf(ErrSessionNotFound, "game %s", gameID)
	}

	rec, found, err := sm.store.Load(ctx, gameID)
	if err != nil {
		return nil, errors.Wrapf(err, "load game %s", gameID)
	}
	if !found {
		return nil, errors.Wrapf(ErrSessionNotFound, "game %s", gameID)
	}

	restored, err := RestoreSession(rec, sm.table)
	if err != nil {
		return nil, err
	}
	restored.now = sm.now
	restored.searchTimeout = sm.searchTimeout

	sm.mu.Lock()
	defer sm.mu.Unlock()
	// another request may have restored it meanwhile
	if session, exists := sm.sessions[gameID]; exists {
		return session, nil
	}
	sm.sessions[gameID] = restored
	sm.log.Info().Str("game_id", gameID).Msg("session restored from store")
	return restored, nil
}

func (sm *SessionManager) Play(ctx context.Context, gameID string, column int) (State, error) {
	return sm.mutate(ctx, gameID, func(s *Session) (State, error) {
		return s.Play(ctx, column)
	})
}

func (sm *SessionManager) Undo(ctx context.Context, gameID string) (State, error) {
	return sm.mutate(ctx, gameID, func(s *Session) (State, error) {
		return s.Undo(ctx)
	})
}

func (sm *SessionManager) Reset(ctx context.Context, gameID string) (State, error) {
	return sm.mutate(ctx, gameID, func(s *Session) (State, error) {
		return s.Reset(ctx)
	})
}

func (sm *SessionManager) mutate(ctx context.Context, gameID string, op func(*Session) (State, error)) (State, error) {
	session, err := sm.Get(ctx, gameID)
	if err != nil {
		return State{}, err
	}

	state, err := op(session)
	// a failed AI reply can still leave the human's move committed
	sm.persist(ctx, session)
	return state, err
}

// Remove discards a session from memory and from the store.
func (sm *SessionManager) Remove(ctx context.Context, gameID string) error {
	sm.mu.Lock()
	_, exists := sm.sessions[gameID]
	delete(sm.sessions, gameID)
	sm.mu.Unlock()

	if sm.store != nil {
		if err := sm.store.Delete(ctx, gameID); err != nil {
			return errors.Wrapf(err, "delete game %s", gameID)
		}
		exists = true
	}
	if !exists {
		return errors.Wrapf(ErrSessionNotFound, "game %s", gameID)
	}

	sm.log.Info().Str("game_id", gameID).Msg("session removed")
	return nil
}

// CleanupIdleSessions drops sessions from memory that have not changed for
// longer than idle and returns how many went. Stored copies expire on their own.
func (sm *SessionManager) CleanupIdleSessions(idle time.Duration) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	count := 0
	now := sm.now()
	for gameID, session := range sm.sessions {
		if now.Sub(session.LastActive()) > idle {
			delete(sm.sessions, gameID)
			count++
		}
	}

	if count > 0 {
		sm.log.Info().Int("removed", count).Msg("idle sessions cleaned up")
	}
	return count
}

// Count returns the number of sessions held in memory.
func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}

func (sm *SessionManager) persist(ctx context.Context, session *Session) {
	if sm.store == nil {
		return
	}
	if err := sm.store.Save(ctx, session.Record()); err != nil {
		sm.log.Warn().Err(err).Str("game_id", session.ID).Msg("failed to save session snapshot")
	}
}
