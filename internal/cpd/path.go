package cpd

import (
	"fmt"
	"strings"
)

// Path is one flattened assignment: the seed name, then alternating
// variable names and outcomes, terminated by a probability.
//
//	[WET 0 RAIN No] 0.9
type Path struct {
	Keys []Key
	Prob float64
}

// Len returns the number of cells in the path, probability included.
func (p Path) Len() int {
	return len(p.Keys) + 1
}

// Outcome returns the variable's own outcome, the key after the seed.
func (p Path) Outcome() Key {
	return p.Keys[1]
}

// Evidence returns the (parent name, parent outcome) pairs found at the even
// offsets after the variable's own outcome.
func (p Path) Evidence() [][2]Key {
	var pairs [][2]Key
	for ll := 2; ll+1 < len(p.Keys); ll += 2 {
		pairs = append(pairs, [2]Key{p.Keys[ll], p.Keys[ll+1]})
	}
	return pairs
}

// Label renders the evidence pairs as `rain_No, sprinkler_Off`. Parent names
// are lower-cased, outcomes are kept verbatim.
func (p Path) Label() string {
	pairs := p.Evidence()
	labels := make([]string, len(pairs))
	for i, pair := range pairs {
		labels[i] = strings.ToLower(pair[0].String()) + "_" + pair[1].String()
	}
	return strings.Join(labels, ", ")
}

// String renders the path for logs and error messages.
func (p Path) String() string {
	parts := make([]string, 0, p.Len())
	for _, k := range p.Keys {
		parts = append(parts, k.String())
	}
	parts = append(parts, formatProb(p.Prob))
	return "[" + strings.Join(parts, " ") + "]"
}

// ExtractPaths walks n depth-first in key order and returns every complete
// path, each prefixed with seed. The result is deterministic for a given
// tree.
func ExtractPaths(seed string, n Node) ([]Path, error) {
	if n.IsLeaf() {
		return nil, fmt.Errorf("%w: CPD of %q must be a mapping, got bare probability %s", ErrInvalidLeaf, seed, formatProb(n.Value()))
	}

	var paths []Path
	var visit func(prefix []Key, n Node) error
	visit = func(prefix []Key, n Node) error {
		if len(n.entries) == 0 {
			return fmt.Errorf("%w: at %s", ErrEmptyBranch, joinKeys(prefix))
		}
		seen := make(map[string]struct{}, len(n.entries))
		for _, e := range n.entries {
			if _, dup := seen[e.Key.String()]; dup {
				return fmt.Errorf("%w: %s at %s", ErrDuplicateKey, e.Key, joinKeys(prefix))
			}
			seen[e.Key.String()] = struct{}{}

			keys := make([]Key, len(prefix), len(prefix)+1)
			copy(keys, prefix)
			keys = append(keys, e.Key)

			if e.Node.IsLeaf() {
				paths = append(paths, Path{Keys: keys, Prob: e.Node.Value()})
				continue
			}
			if err := visit(keys, e.Node); err != nil {
				return err
			}
		}
		return nil
	}

	if err := visit([]Key{NameKey(seed)}, n); err != nil {
		return nil, err
	}
	return paths, nil
}

func joinKeys(keys []Key) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k.String()
	}
	return strings.Join(parts, ".")
}
