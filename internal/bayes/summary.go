package bayes

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"
)

var titleStyle = lipgloss.NewStyle().Bold(true)

// Summary writes one table per CPD, in topological order.
func (m *Model) Summary(w io.Writer) error {
	cpds := m.CPDs()
	for i, c := range cpds {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%s\n%s\n", titleStyle.Render(title(c)), c.table()); err != nil {
			return err
		}
	}
	return nil
}

func title(c *TabularCPD) string {
	if len(c.Evidence) == 0 {
		return "P(" + c.Variable + ")"
	}
	return "P(" + c.Variable + " | " + strings.Join(c.Evidence, ", ") + ")"
}

// table renders outcomes as rows and evidence assignments as columns.
func (c *TabularCPD) table() string {
	headers := []string{c.Variable}
	if len(c.Evidence) == 0 {
		headers = append(headers, "P")
	} else {
		headers = append(headers, c.Columns...)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...)

	for r, row := range c.Values {
		state := strconv.Itoa(r)
		if r < len(c.States) {
			state = c.States[r]
		}
		cells := []string{state}
		for _, p := range row {
			cells = append(cells, strconv.FormatFloat(p, 'g', -1, 64))
		}
		t.Row(cells...)
	}
	return t.String()
}

type modelDoc struct {
	Nodes []string   `yaml:"nodes"`
	Edges [][]string `yaml:"edges"`
	CPDs  []cpdDoc   `yaml:"cpds"`
}

type cpdDoc struct {
	Variable     string      `yaml:"variable"`
	Cardinality  int         `yaml:"cardinality"`
	States       []string    `yaml:"states,omitempty"`
	Evidence     []string    `yaml:"evidence,omitempty"`
	EvidenceCard []int       `yaml:"evidence_card,omitempty"`
	Values       [][]float64 `yaml:"values"`
}

// WriteYAML exports the structure and every CPD table.
func (m *Model) WriteYAML(w io.Writer) error {
	doc := modelDoc{Nodes: m.Nodes()}
	for _, e := range m.Edges() {
		doc.Edges = append(doc.Edges, []string{e[0], e[1]})
	}
	for _, c := range m.CPDs() {
		doc.CPDs = append(doc.CPDs, cpdDoc{
			Variable:     c.Variable,
			Cardinality:  c.Cardinality,
			States:       c.States,
			Evidence:     c.Evidence,
			EvidenceCard: c.EvidenceCard,
			Values:       c.Values,
		})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode model: %w", err)
	}
	return enc.Close()
}
