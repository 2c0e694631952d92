package cpd

import (
	"fmt"
	"strconv"
)

// Layout is the table shape derived from a CPD's paths. Rows counts parent
// assignments, Cols counts the variable's own outcomes.
type Layout struct {
	Paths []Path
	Rows  int
	Cols  int
}

// NewLayout extracts the paths of a CPD and checks that they form a
// Rows x Cols table: equal path lengths and a leaf count divisible by the
// variable's cardinality.
func NewLayout(variable string, n Node) (*Layout, error) {
	paths, err := ExtractPaths(variable, n)
	if err != nil {
		return nil, err
	}

	card := Cardinality(n)
	if len(paths)%card != 0 {
		return nil, fmt.Errorf("%w: %q has %d probabilities, not a multiple of its %d outcomes", ErrShapeMismatch, variable, len(paths), card)
	}

	width := paths[0].Len()
	for _, p := range paths[1:] {
		if p.Len() != width {
			return nil, fmt.Errorf("%w: %q path %s has %d cells, expected %d", ErrShapeMismatch, variable, p, p.Len(), width)
		}
	}
	if width%2 == 0 {
		return nil, fmt.Errorf("%w: %q path %s has an unpaired parent name", ErrShapeMismatch, variable, paths[0])
	}

	rows := len(paths) / card
	l := &Layout{
		Paths: paths,
		Rows:  rows,
		Cols:  len(paths) / rows,
	}

	// Every column must enumerate the same parent assignments in the same
	// order, otherwise a row would mix probabilities of different
	// assignments.
	err = l.Transpose(func(row, col int, p Path) error {
		if want := l.Paths[row].Label(); p.Label() != want {
			return fmt.Errorf("%w: %q outcome %s row %d is conditioned on %q, expected %q", ErrShapeMismatch, variable, p.Outcome(), row, p.Label(), want)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return l, nil
}

// Transpose visits every path in display order. Paths are extracted
// outcome-major (own outcome, then parent assignment) and are re-indexed
// with x = col*Rows + row so that row is the parent assignment and col the
// own outcome.
func (l *Layout) Transpose(visit func(row, col int, p Path) error) error {
	for col := 0; col < l.Cols; col++ {
		for row := 0; row < l.Rows; row++ {
			x := col*l.Rows + row
			if err := visit(row, col, l.Paths[x]); err != nil {
				return err
			}
		}
	}
	return nil
}

func formatProb(p float64) string {
	return strconv.FormatFloat(p, 'g', -1, 64)
}
