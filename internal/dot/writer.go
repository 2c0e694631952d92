package dot

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"
)

// WriteDOT serializes g as a DOT digraph.
func WriteDOT(w io.Writer, g *Graph) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "digraph %s {\n", quote(g.Name))
	for _, k := range sortedKeys(g.Attrs) {
		fmt.Fprintf(bw, "  %s=%s;\n", k, quote(g.Attrs[k]))
	}
	if len(g.Attrs) > 0 {
		bw.WriteString("\n")
	}

	bw.WriteString("  // Nodes\n")
	for _, n := range g.nodes {
		fmt.Fprintf(bw, "  %s%s;\n", quote(n.ID), attrList(n.Attrs, n.html))
	}

	bw.WriteString("\n  // Edges\n")
	for _, e := range g.edges {
		fmt.Fprintf(bw, "  %s -> %s%s;\n", quote(e.From), quote(e.To), attrList(e.Attrs, nil))
	}

	bw.WriteString("}\n")
	return bw.Flush()
}

// String returns the DOT text of g.
func (g *Graph) String() string {
	var b strings.Builder
	_ = WriteDOT(&b, g)
	return b.String()
}

func attrList(attrs Attrs, html map[string]bool) string {
	if len(attrs) == 0 {
		return ""
	}
	parts := make([]string, 0, len(attrs))
	for _, k := range sortedKeys(attrs) {
		v := attrs[k]
		if !html[k] {
			v = quote(v)
		}
		parts = append(parts, k+"="+v)
	}
	return " [" + strings.Join(parts, ", ") + "]"
}

// quote writes s as a DOT string, escaping backslashes before quotes.
func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return `"` + s + `"`
}

func sortedKeys(attrs Attrs) []string {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
