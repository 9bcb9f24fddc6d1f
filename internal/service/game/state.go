package game

import (
	"fmt"
	"time"

	"github.com/CongDon1207/Four-Connect/internal/domain"
)

// State is what a renderer needs to draw a session. It is a copy and never
// refers back to the game.
type State struct {
	GameID        string       `json:"gameId"`
	Mode          Mode         `json:"mode"`
	Level         int          `json:"level,omitempty"`
	AIPlayer      int          `json:"aiPlayer,omitempty"`
	Board         [][]int      `json:"board"`
	CurrentPlayer int          `json:"currentPlayer"`
	Status        string       `json:"status"`
	Winner        int          `json:"winner,omitempty"`
	LegalMoves    []int        `json:"legalMoves"`
	Moves         []int        `json:"moves"`
	LastMove      *domain.Move `json:"lastMove,omitempty"`
	CanUndo       bool         `json:"canUndo"`
	Message       string       `json:"message,omitempty"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

func (s *Session) stateLocked() State {
	board := s.game.Board()
	result := s.game.Status()

	st := State{
		GameID:        s.ID,
		Mode:          s.Settings.Mode,
		Level:         s.Settings.Level,
		AIPlayer:      int(s.aiPlayer),
		Board:         board.Ints(),
		CurrentPlayer: int(s.game.CurrentPlayer()),
		Status:        string(result.Status),
		Winner:        int(result.Winner),
		LegalMoves:    s.game.LegalMoves(),
		Moves:         s.game.Moves(),
		CanUndo:       s.game.CanUndo(),
		Message:       s.outcome(result),
		UpdatedAt:     s.updatedAt,
	}
	if result.IsOver() {
		st.LegalMoves = []int{}
	}
	if last, ok := s.game.LastMove(); ok {
		st.LastMove = &last
	}
	return st
}

// outcome is the end of game message, empty while the game is running.
func (s *Session) outcome(result domain.Result) string {
	return OutcomeMessage(s.Settings.Mode, s.aiPlayer, result)
}

// OutcomeMessage words the result of a game the way players see it.
func OutcomeMessage(mode Mode, aiPlayer domain.PlayerID, result domain.Result) string {
	switch result.Status {
	case domain.StatusDraw:
		return "It's a draw."
	case domain.StatusWon:
		if mode == ModeAI {
			if result.Winner == aiPlayer {
				return "AI wins!"
			}
			return "You win!"
		}
		return fmt.Sprintf("Player %d wins!", int(result.Winner))
	}
	return ""
}
