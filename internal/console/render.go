package console

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/CongDon1207/Four-Connect/internal/domain"
)

// Renderer draws boards for a terminal. The plain renderer uses only ASCII
// and no escape codes, which keeps output stable in pipes and tests.
type Renderer struct {
	plain bool

	player1 lipgloss.Style
	player2 lipgloss.Style
	empty   lipgloss.Style
	header  lipgloss.Style
	frame   lipgloss.Style
}

func NewRenderer(plain bool) *Renderer {
	return &Renderer{
		plain:   plain,
		player1: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		player2: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		empty:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		header:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1),
	}
}

// Token returns the symbol drawn for a cell.
func (r *Renderer) Token(p domain.PlayerID) string {
	switch p {
	case domain.Player1:
		if r.plain {
			return "X"
		}
		return r.player1.Render("●")
	case domain.Player2:
		if r.plain {
			return "O"
		}
		return r.player2.Render("●")
	}
	if r.plain {
		return "."
	}
	return r.empty.Render("·")
}

// Render draws the board top row first, with column numbers underneath.
func (r *Renderer) Render(b domain.Board) string {
	var sb strings.Builder
	for row := 0; row < domain.Rows; row++ {
		cells := make([]string, domain.Columns)
		for col := 0; col < domain.Columns; col++ {
			cells[col] = r.Token(b.Cell(row, col))
		}
		sb.WriteString(strings.Join(cells, " "))
		sb.WriteString("\n")
	}

	numbers := make([]string, domain.Columns)
	for col := range numbers {
		numbers[col] = strconv.Itoa(col)
	}
	footer := strings.Join(numbers, " ")

	if r.plain {
		sb.WriteString(footer)
		return sb.String()
	}
	sb.WriteString(r.header.Render(footer))
	return r.frame.Render(sb.String())
}
