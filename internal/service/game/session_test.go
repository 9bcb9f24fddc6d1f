package game

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CongDon1207/Four-Connect/internal/domain"
	"github.com/CongDon1207/Four-Connect/internal/service/bot"
)

func newTestSession(t *testing.T, settings Settings) *Session {
	t.Helper()
	s, err := NewSession("game-1", settings, bot.DefaultDifficultyTable())
	require.NoError(t, err)
	_, err = s.Start(context.Background())
	require.NoError(t, err)
	return s
}

func playAll(t *testing.T, s *Session, columns ...int) State {
	t.Helper()
	var state State
	var err error
	for _, col := range columns {
		state, err = s.Play(context.Background(), col)
		require.NoError(t, err)
	}
	return state
}

type failingAgent struct {
	bot.Agent
}

func (failingAgent) ChooseMove(context.Context, domain.Position) (int, error) {
	return -1, context.DeadlineExceeded
}

func TestNewSessionValidation(t *testing.T) {
	_, err := NewSession("x", Settings{Mode: "online"}, bot.DefaultDifficultyTable())
	assert.ErrorIs(t, err, ErrInvalidMode)

	_, err = NewSession("x", Settings{Mode: ModeAI, Level: 9}, bot.DefaultDifficultyTable())
	assert.ErrorIs(t, err, bot.ErrInvalidLevel)

	s, err := NewSession("x", Settings{Mode: ModeHuman, Level: 9, AIFirst: true}, bot.DefaultDifficultyTable())
	require.NoError(t, err)
	assert.Equal(t, Settings{Mode: ModeHuman}, s.Settings)
	assert.Equal(t, domain.Empty, s.AIPlayer())
}

func TestHotSeatGame(t *testing.T) {
	s := newTestSession(t, Settings{Mode: ModeHuman})

	state := playAll(t, s, 0, 1)
	assert.Equal(t, 1, state.CurrentPlayer)
	assert.Equal(t, []int{0, 1}, state.Moves)

	state = playAll(t, s, 0, 1, 0, 1, 0)
	assert.Equal(t, "won", state.Status)
	assert.Equal(t, 1, state.Winner)
	assert.Equal(t, "Player 1 wins!", state.Message)
	assert.Empty(t, state.LegalMoves)
	require.NotNil(t, state.LastMove)
	assert.Equal(t, domain.Move{Column: 0, Row: 2, Player: domain.Player1}, *state.LastMove)

	_, err := s.Play(context.Background(), 3)
	assert.ErrorIs(t, err, ErrGameOver)
}

func TestIllegalMoveLeavesStateAlone(t *testing.T) {
	s := newTestSession(t, Settings{Mode: ModeHuman})
	before := s.State()

	state, err := s.Play(context.Background(), 7)
	assert.ErrorIs(t, err, domain.ErrIllegalMove)
	assert.Equal(t, before.Board, state.Board)
	assert.Equal(t, before.CurrentPlayer, state.CurrentPlayer)
}

func TestAIReplies(t *testing.T) {
	s := newTestSession(t, Settings{Mode: ModeAI, Level: 1})
	assert.Equal(t, domain.Player2, s.AIPlayer())

	state := playAll(t, s, 3)
	assert.Len(t, state.Moves, 2)
	assert.Equal(t, 1, state.CurrentPlayer)
	assert.Equal(t, 2, state.AIPlayer)
	require.NotNil(t, state.LastMove)
	assert.Equal(t, domain.Player2, state.LastMove.Player)
}

func TestAIFirst(t *testing.T) {
	s := newTestSession(t, Settings{Mode: ModeAI, Level: 2, AIFirst: true})
	assert.Equal(t, domain.Player1, s.AIPlayer())

	state := s.State()
	assert.Len(t, state.Moves, 1)
	assert.Equal(t, 2, state.CurrentPlayer)
	assert.False(t, state.CanUndo)

	_, err := s.Undo(context.Background())
	assert.ErrorIs(t, err, domain.ErrInsufficientHistory)

	state = playAll(t, s, 0)
	assert.Len(t, state.Moves, 3)

	state, err = s.Undo(context.Background())
	require.NoError(t, err)
	assert.Len(t, state.Moves, 1)
	assert.Equal(t, 2, state.CurrentPlayer)

	state, err = s.Reset(context.Background())
	require.NoError(t, err)
	assert.Len(t, state.Moves, 1)
	assert.Equal(t, 2, state.CurrentPlayer)
}

func TestUndoHotSeat(t *testing.T) {
	s := newTestSession(t, Settings{Mode: ModeHuman})

	_, err := s.Undo(context.Background())
	assert.ErrorIs(t, err, domain.ErrInsufficientHistory)

	playAll(t, s, 2, 4, 5)
	state, err := s.Undo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{2}, state.Moves)
	assert.Equal(t, 2, state.CurrentPlayer)
}

func TestUndoAfterHumanWinLetsAIMoveAgain(t *testing.T) {
	s := newTestSession(t, Settings{Mode: ModeHuman})
	playAll(t, s, 0, 1, 0, 1, 0, 1, 0)

	// turn the finished hot-seat game into an AI game to reach a won position quickly
	agent, err := bot.DefaultDifficultyTable().NewAgentForLevel(1)
	require.NoError(t, err)
	s.agent = agent
	s.aiPlayer = domain.Player2
	s.Settings = Settings{Mode: ModeAI, Level: 1}
	assert.Equal(t, "You win!", s.State().Message)

	state, err := s.Undo(context.Background())
	require.NoError(t, err)
	assert.Len(t, state.Moves, 6)
	assert.Equal(t, 1, state.CurrentPlayer)
	assert.Equal(t, "active", state.Status)
	// the AI replaced its old reply with a block
	assert.Equal(t, 0, state.LastMove.Column)
}

func TestFailedAIMoveIsResumed(t *testing.T) {
	s := newTestSession(t, Settings{Mode: ModeAI, Level: 1})
	agent := s.agent
	s.agent = failingAgent{Agent: agent}

	state, err := s.Play(context.Background(), 3)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Equal(t, []int{3}, state.Moves)
	assert.Equal(t, 2, state.CurrentPlayer)

	s.agent = agent
	state, err = s.Play(context.Background(), 4)
	assert.ErrorIs(t, err, ErrNotYourTurn)
	assert.Len(t, state.Moves, 2)
	assert.Equal(t, 1, state.CurrentPlayer)
}

func TestOutcomeMessage(t *testing.T) {
	won := func(p domain.PlayerID) domain.Result {
		return domain.Result{Status: domain.StatusWon, Winner: p}
	}

	assert.Equal(t, "AI wins!", OutcomeMessage(ModeAI, domain.Player2, won(domain.Player2)))
	assert.Equal(t, "You win!", OutcomeMessage(ModeAI, domain.Player2, won(domain.Player1)))
	assert.Equal(t, "AI wins!", OutcomeMessage(ModeAI, domain.Player1, won(domain.Player1)))
	assert.Equal(t, "Player 2 wins!", OutcomeMessage(ModeHuman, domain.Empty, won(domain.Player2)))
	assert.Equal(t, "It's a draw.", OutcomeMessage(ModeAI, domain.Player2, domain.Result{Status: domain.StatusDraw}))
	assert.Empty(t, OutcomeMessage(ModeHuman, domain.Empty, domain.Result{Status: domain.StatusActive}))
}

func TestRecordRestore(t *testing.T) {
	s := newTestSession(t, Settings{Mode: ModeAI, Level: 2, AIFirst: true})
	playAll(t, s, 6)

	rec := s.Record()
	restored, err := RestoreSession(rec, bot.DefaultDifficultyTable())
	require.NoError(t, err)

	want, got := s.State(), restored.State()
	assert.Equal(t, want.Board, got.Board)
	assert.Equal(t, want.Moves, got.Moves)
	assert.Equal(t, want.CurrentPlayer, got.CurrentPlayer)
	assert.Equal(t, s.Settings, restored.Settings)
	assert.Equal(t, domain.Player1, restored.AIPlayer())

	rec.Game.Moves[0].Column = 9
	_, err = RestoreSession(rec, bot.DefaultDifficultyTable())
	assert.ErrorIs(t, err, domain.ErrIllegalMove)
}
