package yamlcfg

import (
	"fmt"
	"strconv"

	"github.com/specialistvlad/bayesgridgo/internal/config"
	"github.com/specialistvlad/bayesgridgo/internal/cpd"
	"gopkg.in/yaml.v3"
)

func translateVariable(name string, vd *variable) (*config.Variable, error) {
	cpdNode := resolve(&vd.CPD)
	if cpdNode.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: variable %q: cpd: %w, got %s", cpdNode.Line, name, cpd.ErrInvalidLeaf, kindName(cpdNode))
	}
	node, err := translateNode(cpdNode)
	if err != nil {
		return nil, fmt.Errorf("variable %q: cpd: %w", name, err)
	}

	v := &config.Variable{
		Name: name,
		Desc: vd.Desc,
		CPD:  node,
	}

	legend := resolve(&vd.Legend)
	switch legend.Kind {
	case 0:
	case yaml.MappingNode:
		seen := make(map[string]struct{}, len(legend.Content)/2)
		for i := 0; i+1 < len(legend.Content); i += 2 {
			k, val := resolve(legend.Content[i]), resolve(legend.Content[i+1])
			if val.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: variable %q: legend label of %s must be a scalar", val.Line, name, k.Value)
			}
			if _, dup := seen[k.Value]; dup {
				return nil, fmt.Errorf("line %d: variable %q: legend label of %s is defined twice", k.Line, name, k.Value)
			}
			seen[k.Value] = struct{}{}
			v.Legend = append(v.Legend, config.LegendEntry{Key: translateKey(k), Label: val.Value})
		}
	default:
		return nil, fmt.Errorf("line %d: variable %q: legend must be a mapping", legend.Line, name)
	}
	return v, nil
}

// translateNode walks a mapping node in document order.
func translateNode(n *yaml.Node) (cpd.Node, error) {
	n = resolve(n)
	switch n.Kind {
	case yaml.MappingNode:
		if len(n.Content) == 0 {
			return cpd.Node{}, fmt.Errorf("line %d: %w", n.Line, cpd.ErrEmptyBranch)
		}
		entries := make([]cpd.Entry, 0, len(n.Content)/2)
		seen := make(map[string]struct{}, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			kn := resolve(n.Content[i])
			key := translateKey(kn)
			if _, dup := seen[key.String()]; dup {
				return cpd.Node{}, fmt.Errorf("line %d: %w: %s", kn.Line, cpd.ErrDuplicateKey, key)
			}
			seen[key.String()] = struct{}{}
			child, err := translateNode(n.Content[i+1])
			if err != nil {
				return cpd.Node{}, fmt.Errorf("%s: %w", key, err)
			}
			entries = append(entries, cpd.Entry{Key: key, Node: child})
		}
		return cpd.Branch(entries...), nil

	case yaml.ScalarNode:
		if n.Tag != "!!int" && n.Tag != "!!float" {
			return cpd.Node{}, fmt.Errorf("line %d: %w, got %q", n.Line, cpd.ErrInvalidLeaf, n.Value)
		}
		f, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return cpd.Node{}, fmt.Errorf("line %d: %w: %v", n.Line, cpd.ErrInvalidLeaf, err)
		}
		return cpd.Leaf(f), nil

	default:
		return cpd.Node{}, fmt.Errorf("line %d: %w, got %s", n.Line, cpd.ErrInvalidLeaf, kindName(n))
	}
}

func translateKey(n *yaml.Node) cpd.Key {
	if n.Tag == "!!int" {
		return cpd.NumberKey(n.Value)
	}
	return cpd.NameKey(n.Value)
}

// resolve follows aliases and unwraps document nodes.
func resolve(n *yaml.Node) *yaml.Node {
	for n != nil {
		switch {
		case n.Kind == yaml.AliasNode && n.Alias != nil:
			n = n.Alias
		case n.Kind == yaml.DocumentNode && len(n.Content) == 1:
			n = n.Content[0]
		default:
			return n
		}
	}
	return &yaml.Node{}
}

func kindName(n *yaml.Node) string {
	switch n.Kind {
	case yaml.SequenceNode:
		return "a sequence"
	case yaml.MappingNode:
		return "a mapping"
	case yaml.ScalarNode:
		return fmt.Sprintf("scalar %q", n.Value)
	case 0:
		return "nothing"
	default:
		return "an unsupported node"
	}
}
