package bayes

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidCPD is returned when a tabular CPD is malformed.
var ErrInvalidCPD = errors.New("invalid CPD")

// ErrInvalidModel is returned when a model fails its consistency check.
var ErrInvalidModel = errors.New("invalid model")

// Tolerance is the allowed deviation of a column sum from 1.
const Tolerance = 1e-6

// TabularCPD is a conditional probability table. Values has one row per
// outcome of Variable and one column per joint assignment of Evidence, the
// last evidence variable varying fastest.
type TabularCPD struct {
	Variable     string
	Cardinality  int
	Values       [][]float64
	Evidence     []string
	EvidenceCard []int

	// States and Columns name the rows and columns, for display only.
	States  []string
	Columns []string
}

// NewTabularCPD validates the table and returns it.
func NewTabularCPD(variable string, card int, values [][]float64, evidence []string, evidenceCard []int) (*TabularCPD, error) {
	if variable == "" {
		return nil, fmt.Errorf("%w: variable name is empty", ErrInvalidCPD)
	}
	if card < 1 {
		return nil, fmt.Errorf("%w: %q: cardinality must be positive, got %d", ErrInvalidCPD, variable, card)
	}
	if len(evidence) != len(evidenceCard) {
		return nil, fmt.Errorf("%w: %q: %d evidence variables but %d evidence cardinalities", ErrInvalidCPD, variable, len(evidence), len(evidenceCard))
	}

	cols := 1
	for i, c := range evidenceCard {
		if c < 1 {
			return nil, fmt.Errorf("%w: %q: evidence %q has cardinality %d", ErrInvalidCPD, variable, evidence[i], c)
		}
		cols *= c
	}

	if len(values) != card {
		return nil, fmt.Errorf("%w: %q: values have %d rows, expected %d", ErrInvalidCPD, variable, len(values), card)
	}
	for r, row := range values {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: %q: row %d has %d columns, expected %d", ErrInvalidCPD, variable, r, len(row), cols)
		}
		for c, p := range row {
			if math.IsNaN(p) || p < 0 || p > 1 {
				return nil, fmt.Errorf("%w: %q: value %v at [%d][%d] is not a probability", ErrInvalidCPD, variable, p, r, c)
			}
		}
	}
	for c := 0; c < cols; c++ {
		var sum float64
		for r := range values {
			sum += values[r][c]
		}
		if math.Abs(sum-1) > Tolerance {
			return nil, fmt.Errorf("%w: %q: column %d sums to %v, expected 1", ErrInvalidCPD, variable, c, sum)
		}
	}

	return &TabularCPD{
		Variable:     variable,
		Cardinality:  card,
		Values:       values,
		Evidence:     evidence,
		EvidenceCard: evidenceCard,
	}, nil
}

// Width returns the number of joint evidence assignments.
func (c *TabularCPD) Width() int {
	if len(c.Values) == 0 {
		return 0
	}
	return len(c.Values[0])
}
