// Package cpd models conditional probability tables as ordered trees and
// lays them out for display and for model construction.
//
// A CPD is a Branch whose top-level keys are the variable's own outcomes.
// Below each outcome, every parent contributes two levels: a single-entry
// Branch keyed by the parent's name, then a Branch keyed by the parent's
// outcomes. The innermost values are Leaf probabilities:
//
//	WET = {
//	  0 = { RAIN = { No = 0.9, Yes = 0.2 } }
//	  1 = { RAIN = { No = 0.1, Yes = 0.8 } }
//	}
//
// ExtractPaths flattens the tree depth-first in key order. BuildGrid and
// Reshape then re-index those paths through Transpose so that each grid row
// holds one parent assignment and each column one outcome of the variable.
package cpd
