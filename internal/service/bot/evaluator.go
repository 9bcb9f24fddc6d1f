package bot

import (
	"math"

	"github.com/CongDon1207/Four-Connect/internal/domain"
)

const (
	// LossScore is the value of a lost position for the side to move.
	LossScore = -100
	DrawScore = 0

	infinity = math.MaxInt32
)

type Error string

func (e Error) Error() string {
	return string(e)
}

const ErrNoLegalMoves Error = "no legal moves"

// evaluate scores pos for the side to move. The only knowledge is win or not:
// a position where the previous mover completed four is lost, everything else
// is worth nothing. A loss found with more depth left, i.e. sooner, weighs more
// so the agent takes quick wins and delays losses.
func evaluate(pos *domain.Position, remaining int) (score int, terminal bool) {
	if pos.Lost() {
		return LossScore - remaining, true
	}
	if len(pos.LegalMoves()) == 0 {
		return DrawScore, true
	}
	return DrawScore, remaining == 0
}
