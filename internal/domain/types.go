package domain

import "strconv"

// PlayerID is the content of a single board cell: nobody, or one of the two players.
type PlayerID int

const (
	Empty   PlayerID = 0
	Player1 PlayerID = 1
	Player2 PlayerID = 2
)

const (
	Rows    = 6
	Columns = 7
	ToWin   = 4
)

// Opponent returns the other player. Empty has no opponent and maps to itself.
func (p PlayerID) Opponent() PlayerID {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	}
	return Empty
}

// IsPlayer reports whether p is one of the two players.
func (p PlayerID) IsPlayer() bool {
	return p == Player1 || p == Player2
}

func (p PlayerID) String() string {
	switch p {
	case Empty:
		return "empty"
	case Player1:
		return "player1"
	case Player2:
		return "player2"
	}
	return "player(" + strconv.Itoa(int(p)) + ")"
}

// to represent the game status
type GameStatus string

const (
	StatusActive GameStatus = "active"
	StatusWon    GameStatus = "won"
	StatusDraw   GameStatus = "draw"
)

// Result is the terminal status of a game. Winner is only set when Status is StatusWon.
type Result struct {
	Status GameStatus
	Winner PlayerID
}

func (r Result) IsOver() bool {
	return r.Status != StatusActive
}

// basic errors that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrIllegalMove         Error = "illegal move"
	ErrInsufficientHistory Error = "nothing to undo"
	ErrInvalidBoard        Error = "invalid board"
)
