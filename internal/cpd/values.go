package cpd

import (
	"fmt"
)

// Values is a CPD reshaped for a tabular factor: Table has one row per
// outcome of the variable and one column per joint evidence assignment,
// with the last evidence variable varying fastest.
type Values struct {
	Evidence []string
	States   []string
	Columns  []string
	Table    [][]float64
}

// Reshape lays the CPD of variable out for model construction. It shares
// the transposition of BuildGrid; only the orientation of the output table
// differs. A CPD without parents yields a single column.
func Reshape(variable string, n Node) (*Values, error) {
	l, err := NewLayout(variable, n)
	if err != nil {
		return nil, err
	}

	v := &Values{
		States:  make([]string, 0, l.Cols),
		Columns: make([]string, l.Rows),
		Table:   make([][]float64, l.Cols),
	}
	for _, k := range n.Keys() {
		v.States = append(v.States, k.String())
	}
	for i := range v.Table {
		v.Table[i] = make([]float64, l.Rows)
	}

	for _, pair := range l.Paths[0].Evidence() {
		v.Evidence = append(v.Evidence, pair[0].String())
	}

	err = l.Transpose(func(row, col int, p Path) error {
		pairs := p.Evidence()
		if len(pairs) != len(v.Evidence) {
			return fmt.Errorf("%w: %q path %s has %d evidence variables, expected %d", ErrShapeMismatch, variable, p, len(pairs), len(v.Evidence))
		}
		for i, pair := range pairs {
			if pair[0].String() != v.Evidence[i] {
				return fmt.Errorf("%w: %q path %s names evidence %q at position %d, expected %q", ErrShapeMismatch, variable, p, pair[0], i, v.Evidence[i])
			}
		}
		v.Columns[row] = p.Label()
		v.Table[col][row] = p.Prob
		return nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}
