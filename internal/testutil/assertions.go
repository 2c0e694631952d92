package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/specialistvlad/bayesgridgo/internal/dot"
	"github.com/stretchr/testify/require"
)

// AssertNodeRendered checks that the DOT output declares a node.
func AssertNodeRendered(t *testing.T, result *HarnessResult, id string) {
	t.Helper()
	require.Contains(t, result.Output, fmt.Sprintf("  %q [", id), "expected node %q in the rendered graph", id)
}

// AssertEdgeRendered checks that the DOT output links parent to child.
func AssertEdgeRendered(t *testing.T, result *HarnessResult, parent, child string) {
	t.Helper()
	require.Contains(t, result.Output, fmt.Sprintf("  %q -> %q;", parent, child), "expected edge %s -> %s in the rendered graph", parent, child)
}

// AssertTableRow checks that the probability table of variable has a row
// with the given label and cells.
func AssertTableRow(t *testing.T, result *HarnessResult, variable, label string, probs ...string) {
	t.Helper()

	line := ""
	for _, l := range strings.Split(result.Output, "\n") {
		if strings.Contains(l, fmt.Sprintf("%q [", dot.CPDNodeID(variable))) {
			line = l
			break
		}
	}
	require.NotEmpty(t, line, "expected a probability table for %q", variable)

	row := "<TR><TD>" + label + "</TD>"
	for _, p := range probs {
		row += "<TD>" + p + "</TD>"
	}
	row += "</TR>"
	require.Contains(t, line, row, "expected row %s in the table of %q", row, variable)
}

// AssertCPDPrinted checks that the model summary has a table with title.
func AssertCPDPrinted(t *testing.T, result *HarnessResult, title string) {
	t.Helper()
	require.Contains(t, result.Output, title, "expected %s in the model summary", title)
}
