package domain

import (
	"fmt"
	"strings"
)

// Board is the 6x7 grid. Row 0 is the top row and Rows-1 the bottom one,
// tokens fall towards the bottom.
//
// Board is a plain array so assigning it copies every cell, which is what the
// history snapshots and the search rely on.
type Board [Rows][Columns]PlayerID

func NewBoard() Board {
	return Board{}
}

func isValidColumn(column int) bool {
	return column >= 0 && column < Columns
}

// Cell returns the content of (row, col). Out of range coordinates read as Empty.
func (b *Board) Cell(row, col int) PlayerID {
	if row < 0 || row >= Rows || !isValidColumn(col) {
		return Empty
	}
	return b[row][col]
}

// LegalColumns lists, in ascending order, the columns whose top cell is still empty.
// An empty result means the board is full.
func (b *Board) LegalColumns() []int {
	legal := make([]int, 0, Columns)
	for col := 0; col < Columns; col++ {
		if b[0][col] == Empty {
			legal = append(legal, col)
		}
	}
	return legal
}

// Apply drops player's token into column and returns the row it landed on.
func (b *Board) Apply(column int, player PlayerID) (int, error) {
	if !player.IsPlayer() {
		return -1, fmt.Errorf("%w: %v cannot move", ErrIllegalMove, player)
	}
	if !isValidColumn(column) {
		return -1, fmt.Errorf("%w: column %d is out of range", ErrIllegalMove, column)
	}

	// shifting the disk from top to bottom till it reaches the end or another disk
	for row := Rows - 1; row >= 0; row-- {
		if b[row][column] == Empty {
			b[row][column] = player
			return row, nil
		}
	}

	return -1, fmt.Errorf("%w: column %d is full", ErrIllegalMove, column)
}

func (b *Board) IsFull() bool {
	for col := 0; col < Columns; col++ {
		if b[0][col] == Empty {
			return false
		}
	}
	return true
}

// Count returns how many tokens player has on the board.
func (b *Board) Count(player PlayerID) int {
	n := 0
	for row := range b {
		for col := range b[row] {
			if b[row][col] == player {
				n++
			}
		}
	}
	return n
}

// Validate checks that every cell holds a known value and that no token floats
// above an empty cell.
func (b *Board) Validate() error {
	for col := 0; col < Columns; col++ {
		seenToken := false
		for row := 0; row < Rows; row++ {
			cell := b[row][col]
			if cell != Empty && !cell.IsPlayer() {
				return fmt.Errorf("%w: unknown cell value %d at (%d,%d)", ErrInvalidBoard, cell, row, col)
			}
			if cell != Empty {
				seenToken = true
			} else if seenToken {
				return fmt.Errorf("%w: empty cell below a token at (%d,%d)", ErrInvalidBoard, row, col)
			}
		}
	}
	return nil
}

// Swapped returns a copy of the board with the two players' tokens exchanged.
func (b Board) Swapped() Board {
	for row := range b {
		for col := range b[row] {
			b[row][col] = b[row][col].Opponent()
		}
	}
	return b
}

// Ints converts the board to plain ints, for JSON payloads and storage.
func (b *Board) Ints() [][]int {
	out := make([][]int, Rows)
	for row := range b {
		out[row] = make([]int, Columns)
		for col := range b[row] {
			out[row][col] = int(b[row][col])
		}
	}
	return out
}

// BoardFromInts is the inverse of Ints. The result is validated.
func BoardFromInts(cells [][]int) (Board, error) {
	var b Board
	if len(cells) != Rows {
		return b, fmt.Errorf("%w: expected %d rows, got %d", ErrInvalidBoard, Rows, len(cells))
	}
	for row := range cells {
		if len(cells[row]) != Columns {
			return b, fmt.Errorf("%w: expected %d columns in row %d, got %d", ErrInvalidBoard, Columns, row, len(cells[row]))
		}
		for col, v := range cells[row] {
			b[row][col] = PlayerID(v)
		}
	}
	if err := b.Validate(); err != nil {
		return Board{}, err
	}
	return b, nil
}

// String renders the board as text, top row first: '.' empty, 'X' player1, 'O' player2.
func (b Board) String() string {
	var sb strings.Builder
	for row := range b {
		for col := range b[row] {
			switch b[row][col] {
			case Player1:
				sb.WriteByte('X')
			case Player2:
				sb.WriteByte('O')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
