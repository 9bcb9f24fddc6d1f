package domain

// FindWinner scans the line index in order and returns the owner of the first
// line whose four cells all hold the same player.
func FindWinner(b *Board) (PlayerID, bool) {
	for i := range lineIndex {
		if owner := lineOwner(b, &lineIndex[i]); owner != Empty {
			return owner, true
		}
	}
	return Empty, false
}

// HasFour reports whether player owns any complete line.
func HasFour(b *Board, player PlayerID) bool {
	for i := range lineIndex {
		if lineOwner(b, &lineIndex[i]) == player {
			return true
		}
	}
	return false
}

func lineOwner(b *Board, line *Line) PlayerID {
	first := b[line[0].Row][line[0].Col]
	if first == Empty {
		return Empty
	}
	for _, p := range line[1:] {
		if b[p.Row][p.Col] != first {
			return Empty
		}
	}
	return first
}

// Evaluate returns the status of a board on its own.
func Evaluate(b *Board) Result {
	if winner, ok := FindWinner(b); ok {
		return Result{Status: StatusWon, Winner: winner}
	}
	if b.IsFull() {
		return Result{Status: StatusDraw}
	}
	return Result{Status: StatusActive}
}
