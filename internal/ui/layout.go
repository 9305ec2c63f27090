package ui

// Grid is the arrangement of the button grid.
type Grid struct {
	Rows int
	Cols int
}

// GridFor maps a button count to rows and columns. Compact grids stay at most
// two rows high; narrow grids stack every button in one column. Counts above
// eight use the eight-button grid.
func GridFor(n int, narrow bool) Grid {
	if narrow {
		if n < 0 {
			n = 0
		}
		return Grid{Rows: n, Cols: 1}
	}
	switch {
	case n <= 0:
		return Grid{}
	case n == 1:
		return Grid{Rows: 1, Cols: 1}
	case n == 2:
		return Grid{Rows: 1, Cols: 2}
	case n == 3:
		return Grid{Rows: 1, Cols: 3}
	case n == 4:
		return Grid{Rows: 2, Cols: 2}
	case n <= 6:
		return Grid{Rows: 2, Cols: 3}
	default:
		return Grid{Rows: 2, Cols: 4}
	}
}

// Cell returns the row and column of button i.
func (g Grid) Cell(i int) (row, col int) {
	if g.Cols <= 0 {
		return 0, 0
	}
	return i / g.Cols, i % g.Cols
}

// Move returns the index reached from i by stepping dr rows and dc columns,
// staying on i when the target is outside the n buttons.
func (g Grid) Move(i, n, dr, dc int) int {
	if g.Cols <= 0 || n <= 0 {
		return 0
	}
	row, col := g.Cell(i)
	row += dr
	col += dc
	if col < 0 || col >= g.Cols || row < 0 {
		return i
	}
	next := row*g.Cols + col
	if next >= n {
		return i
	}
	return next
}

// Terminal thresholds.
const (
	// minButtonWidth is the narrowest a grid cell is drawn.
	minButtonWidth = 12
	// buttonHeight is the height of a grid cell including its border.
	buttonHeight = 5
	// historyPanelHeight is the space the history panel takes when open.
	historyPanelHeight = 12
)
