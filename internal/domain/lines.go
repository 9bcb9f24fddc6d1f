package domain

// Point is a (row, column) coordinate on the board.
type Point struct {
	Row int
	Col int
}

// Line is one run of ToWin cells that can hold a winning four.
type Line [ToWin]Point

type ray struct {
	start     Point
	direction Point
}

// scanRays lists every scanning ray of the 6x7 board: rows, columns, and both
// diagonal directions. Some diagonal rays appear twice (the corner ones), the
// duplicates are dropped when the index is built.
func scanRays() []ray {
	rays := make([]ray, 0, 32)
	for r := 0; r < Rows; r++ {
		rays = append(rays, ray{Point{r, 0}, Point{0, 1}})
	}
	for c := 0; c < Columns; c++ {
		rays = append(rays, ray{Point{0, c}, Point{1, 0}})
	}
	for r := 0; r <= Rows-ToWin; r++ {
		rays = append(rays, ray{Point{r, 0}, Point{1, 1}})
	}
	for c := 0; c <= Columns-ToWin; c++ {
		rays = append(rays, ray{Point{0, c}, Point{1, 1}})
	}
	for r := 0; r <= Rows-ToWin; r++ {
		rays = append(rays, ray{Point{r, Columns - 1}, Point{1, -1}})
	}
	for c := ToWin - 1; c < Columns; c++ {
		rays = append(rays, ray{Point{0, c}, Point{1, -1}})
	}
	return rays
}

func inBounds(p Point) bool {
	return p.Row >= 0 && p.Row < Rows && p.Col >= 0 && p.Col < Columns
}

func buildLineIndex() []Line {
	seen := make(map[Line]bool)
	var lines []Line

	for _, r := range scanRays() {
		// walk the ray and collect its cells
		var cells []Point
		for p := r.start; inBounds(p); p = (Point{p.Row + r.direction.Row, p.Col + r.direction.Col}) {
			cells = append(cells, p)
		}

		for i := 0; i+ToWin <= len(cells); i++ {
			var line Line
			copy(line[:], cells[i:i+ToWin])
			if seen[line] {
				continue
			}
			seen[line] = true
			lines = append(lines, line)
		}
	}
	return lines
}

// lineIndex is built once and only ever read.
var lineIndex = buildLineIndex()

// Lines returns a copy of the line index in its fixed scanning order.
func Lines() []Line {
	out := make([]Line, len(lineIndex))
	copy(out, lineIndex)
	return out
}
