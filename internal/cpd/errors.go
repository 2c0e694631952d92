package cpd

import "errors"

var (
	// ErrInvalidLeaf is returned when a CPD value is neither a probability
	// nor a nested mapping.
	ErrInvalidLeaf = errors.New("CPD leaf must be numeric or a nested mapping")

	// ErrEmptyBranch is returned for a mapping with no entries.
	ErrEmptyBranch = errors.New("CPD mapping must not be empty")

	// ErrShapeMismatch is returned when the paths of a CPD cannot be laid
	// out as a rectangular table.
	ErrShapeMismatch = errors.New("CPD shape mismatch")

	// ErrDuplicateKey is returned when a mapping names the same key twice.
	ErrDuplicateKey = errors.New("CPD mapping has duplicate key")
)
