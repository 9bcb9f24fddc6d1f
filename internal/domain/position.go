package domain

import "fmt"

// Position is a read-only value view of a game: the board plus the player to move.
// Play never modifies the receiver, it returns the child position, so a search can
// explore freely and simply drop whatever it no longer needs.
type Position struct {
	board Board
	mover PlayerID
}

// NewPosition builds a position from a board and the player to move.
func NewPosition(b Board, mover PlayerID) (Position, error) {
	if !mover.IsPlayer() {
		return Position{}, fmt.Errorf("%w: mover %v", ErrInvalidBoard, mover)
	}
	if err := b.Validate(); err != nil {
		return Position{}, err
	}
	return Position{board: b, mover: mover}, nil
}

func (p Position) Board() Board {
	return p.board
}

func (p Position) Mover() PlayerID {
	return p.mover
}

func (p Position) LegalMoves() []int {
	return p.board.LegalColumns()
}

// Play applies the mover's token in column and passes the turn, returning the
// resulting position.
func (p Position) Play(column int) (Position, error) {
	if _, err := p.board.Apply(column, p.mover); err != nil {
		return p, err
	}
	p.mover = p.mover.Opponent()
	return p, nil
}

// Status evaluates the position on its own.
func (p Position) Status() Result {
	return Evaluate(&p.board)
}

// Lost reports whether the player who just moved completed a four, which means
// the side to move has lost.
func (p Position) Lost() bool {
	return HasFour(&p.board, p.mover.Opponent())
}
