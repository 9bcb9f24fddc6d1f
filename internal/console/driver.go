package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/CongDon1207/Four-Connect/internal/domain"
	"github.com/CongDon1207/Four-Connect/internal/service/game"
)

const (
	movePrompt    = "Your move (0-6 or 'undo' to undo): "
	invalidPrompt = "Invalid move. " + movePrompt
	undoCommand   = "undo"
)

// Driver runs one game in a terminal: it shows the board, asks for moves and
// reports the result. The AI side is played by the session itself.
type Driver struct {
	session  *game.Session
	renderer *Renderer
	in       *bufio.Scanner
	out      io.Writer
}

func NewDriver(session *game.Session, renderer *Renderer, in io.Reader, out io.Writer) *Driver {
	return &Driver{
		session:  session,
		renderer: renderer,
		in:       bufio.NewScanner(in),
		out:      out,
	}
}

// Run plays until the game ends or the input runs out. It returns the final state.
func (d *Driver) Run(ctx context.Context) (game.State, error) {
	state, err := d.session.Start(ctx)
	if err != nil {
		return state, err
	}
	d.show(state)

	for !isOver(state) {
		if err := ctx.Err(); err != nil {
			return state, err
		}

		if state.Mode == game.ModeHuman {
			fmt.Fprintf(d.out, "Player %d to move.\n", state.CurrentPlayer)
		}

		input, ok := d.ask(state)
		if !ok {
			fmt.Fprintln(d.out)
			return state, d.in.Err()
		}

		if input == undoCommand {
			next, err := d.session.Undo(ctx)
			if errors.Is(err, domain.ErrInsufficientHistory) {
				fmt.Fprintln(d.out, "nothing to undo")
				continue
			}
			if err != nil {
				return next, err
			}
			state = next
			d.show(state)
			continue
		}

		column, _ := strconv.Atoi(input)
		state, err = d.session.Play(ctx, column)
		if err != nil {
			return state, err
		}
		d.show(state)
	}

	fmt.Fprintln(d.out, state.Message)
	return state, nil
}

// ask prompts until the player types a legal column or "undo".
func (d *Driver) ask(state game.State) (string, bool) {
	prompt := movePrompt
	for {
		fmt.Fprint(d.out, prompt)
		if !d.in.Scan() {
			return "", false
		}

		input := strings.ToLower(strings.TrimSpace(d.in.Text()))
		if input == undoCommand || isLegal(state, input) {
			return input, true
		}
		prompt = invalidPrompt
	}
}

func (d *Driver) show(state game.State) {
	board, err := domain.BoardFromInts(state.Board)
	if err != nil {
		return
	}
	fmt.Fprintln(d.out, d.renderer.Render(board))
	if state.LastMove != nil && state.Mode == game.ModeAI && int(state.LastMove.Player) == state.AIPlayer {
		fmt.Fprintf(d.out, "AI played column %d.\n", state.LastMove.Column)
	}
}

func isLegal(state game.State, input string) bool {
	column, err := strconv.Atoi(input)
	if err != nil {
		return false
	}
	for _, legal := range state.LegalMoves {
		if legal == column {
			return true
		}
	}
	return false
}

func isOver(state game.State) bool {
	return state.Status != string(domain.StatusActive)
}
