package cpd

import (
	"strings"
)

// Row is one line of a Grid: the row label followed by one probability per
// outcome of the variable.
type Row struct {
	Label string
	Probs []float64
}

// Grid is a rectangular display table. Column 0 of every row is the label.
type Grid []Row

// Width returns the number of columns including the label column.
func (g Grid) Width() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0].Probs) + 1
}

// Cells returns the grid as strings, label column first.
func (g Grid) Cells() [][]string {
	cells := make([][]string, len(g))
	for i, r := range g {
		line := make([]string, 0, len(r.Probs)+1)
		line = append(line, r.Label)
		for _, p := range r.Probs {
			line = append(line, formatProb(p))
		}
		cells[i] = line
	}
	return cells
}

// BuildGrid lays the CPD of variable out for display. Without parents the
// grid is a single row labelled with the lower-cased variable name. With
// parents there is one row per parent assignment, labelled
// `parent_outcome[, parent_outcome...]`.
func BuildGrid(variable string, n Node) (Grid, error) {
	l, err := NewLayout(variable, n)
	if err != nil {
		return nil, err
	}

	grid := make(Grid, l.Rows)
	for i := range grid {
		grid[i].Probs = make([]float64, l.Cols)
	}

	err = l.Transpose(func(row, col int, p Path) error {
		if l.Rows > 1 {
			grid[row].Label = p.Label()
		}
		grid[row].Probs[col] = p.Prob
		return nil
	})
	if err != nil {
		return nil, err
	}

	if l.Rows <= 1 {
		grid[0].Label = strings.ToLower(variable)
	}
	return grid, nil
}
