// Package label renders a variable's probability grid as a Graphviz
// HTML-like label: a titled table with one header cell per outcome and one
// row per parent assignment.
package label

import (
	"html"
	"strconv"
	"strings"

	"github.com/specialistvlad/bayesgridgo/internal/config"
	"github.com/specialistvlad/bayesgridgo/internal/cpd"
)

const (
	prefix = `<<FONT POINT-SIZE="7"><TABLE BORDER="0" CELLBORDER="1" CELLSPACING="0">`
	footer = `</TABLE></FONT>>`
)

// Render builds the label for v from its grid. Header cells read
// `Legend (variable_key)`; body rows are the grid rows, label column first.
// Text is escaped, so the result is well-formed whatever the description
// holds.
func Render(v *config.Variable, g cpd.Grid) string {
	var b strings.Builder
	name := strings.ToLower(v.Name)

	b.WriteString(prefix)
	b.WriteString(`<TR><TD COLSPAN="`)
	b.WriteString(strconv.Itoa(cpd.Cardinality(v.CPD) + 1))
	b.WriteString(`">`)
	b.WriteString(html.EscapeString(v.Desc))
	b.WriteString(`</TD></TR>`)

	b.WriteString(`<TR><TD></TD>`)
	for _, entry := range v.Headers() {
		b.WriteString(`<TD>`)
		b.WriteString(html.EscapeString(entry.Label + " (" + name + "_" + entry.Key.String() + ")"))
		b.WriteString(`</TD>`)
	}
	b.WriteString(`</TR>`)

	for _, row := range g.Cells() {
		b.WriteString(`<TR>`)
		for _, cell := range row {
			b.WriteString(`<TD>`)
			b.WriteString(html.EscapeString(cell))
			b.WriteString(`</TD>`)
		}
		b.WriteString(`</TR>`)
	}

	b.WriteString(footer)
	return b.String()
}

// ForVariable builds the grid of v and renders it.
func ForVariable(v *config.Variable) (string, error) {
	g, err := cpd.BuildGrid(v.Name, v.CPD)
	if err != nil {
		return "", err
	}
	return Render(v, g), nil
}
