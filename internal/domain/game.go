package domain

import "fmt"

// Move is a committed move, as reported to renderers.
type Move struct {
	Column int      `json:"column"`
	Row    int      `json:"row"`
	Player PlayerID `json:"player"`
}

// Game owns the board, the player to move and the history of one game.
//
// Applying a move and passing the turn are two separate steps: ApplyMove places
// the current player's token and SwitchTurn hands over. Callers are expected to
// call them in that order after every successful move.
//
// A Game is not safe for concurrent use; the session owning it serializes access.
type Game struct {
	board   Board
	current PlayerID
	history MoveHistory
}

func NewGame() *Game {
	return &Game{
		board:   NewBoard(),
		current: Player1,
	}
}

// LegalMoves lists the playable columns in ascending order.
func (g *Game) LegalMoves() []int {
	return g.board.LegalColumns()
}

func (g *Game) isLegal(column int) bool {
	return isValidColumn(column) && g.board[0][column] == Empty
}

// ApplyMove drops the current player's token into column. It does not pass the turn.
func (g *Game) ApplyMove(column int) error {
	if !g.isLegal(column) {
		return fmt.Errorf("%w: column %d is not playable", ErrIllegalMove, column)
	}

	before := g.board
	row, err := g.board.Apply(column, g.current)
	if err != nil {
		return err
	}

	g.history.Push(HistoryEntry{
		Board:  before,
		Mover:  g.current,
		Column: column,
		Row:    row,
	})
	return nil
}

func (g *Game) SwitchTurn() {
	g.current = g.current.Opponent()
}

// Undo takes back the last two moves, one per player, and gives the turn back to
// whoever made the older of the two. With fewer than two recorded moves nothing
// changes and ErrInsufficientHistory is returned.
func (g *Game) Undo() error {
	if g.history.Len() < 2 {
		return ErrInsufficientHistory
	}

	g.history.Pop()
	older, _ := g.history.Pop()

	g.board = older.Board
	g.current = older.Mover
	return nil
}

// CanUndo reports whether Undo would do anything.
func (g *Game) CanUndo() bool {
	return g.history.Len() >= 2
}

// Winner returns the player owning the first complete line in scan order.
func (g *Game) Winner() (PlayerID, bool) {
	return FindWinner(&g.board)
}

func (g *Game) Status() Result {
	return Evaluate(&g.board)
}

func (g *Game) IsFinished() bool {
	return g.Status().IsOver()
}

// Board returns a copy of the current board.
func (g *Game) Board() Board {
	return g.board
}

func (g *Game) Cell(row, col int) PlayerID {
	return g.board.Cell(row, col)
}

func (g *Game) CurrentPlayer() PlayerID {
	return g.current
}

func (g *Game) MoveCount() int {
	return g.history.Len()
}

// Moves returns the columns played so far, oldest first.
func (g *Game) Moves() []int {
	entries := g.history.All()
	moves := make([]int, len(entries))
	for i, e := range entries {
		moves[i] = e.Column
	}
	return moves
}

// LastMove returns the most recent move, if any.
func (g *Game) LastMove() (Move, bool) {
	last, ok := g.history.Peek()
	if !ok {
		return Move{}, false
	}
	return Move{Column: last.Column, Row: last.Row, Player: last.Mover}, true
}

// Position returns a detached view of the game for search. Nothing done to the
// returned value can reach the game.
func (g *Game) Position() Position {
	return Position{board: g.board, mover: g.current}
}

// Reset puts the game back to its initial state.
func (g *Game) Reset() {
	g.board = NewBoard()
	g.current = Player1
	g.history.Clear()
}
