package hcl

import (
	"github.com/hashicorp/hcl/v2"
)

// fileRoot decodes all possible top-level blocks from any file.
type fileRoot struct {
	Networks  []*NetworkBlock  `hcl:"network,block"`
	Variables []*VariableBlock `hcl:"variable,block"`
	Edges     []*EdgeBlock     `hcl:"edge,block"`
	Remain    hcl.Body         `hcl:",remain"`
}

// NetworkBlock names the network and optionally describes it.
type NetworkBlock struct {
	Name        string `hcl:"name,label"`
	Description string `hcl:"description,optional"`
}

// VariableBlock represents a `variable` block: one random variable with its
// legend and conditional probability table.
type VariableBlock struct {
	Name    string         `hcl:"name,label"`
	Desc    string         `hcl:"desc,optional"`
	Legend  hcl.Expression `hcl:"legend,optional"`
	CPD     hcl.Expression `hcl:"cpd"`
	Parents []string       `hcl:"parents,optional"`
}

// EdgeBlock represents an `edge "PARENT" "CHILD" {}` block.
type EdgeBlock struct {
	Parent string `hcl:"parent,label"`
	Child  string `hcl:"child,label"`
}
