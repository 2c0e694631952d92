// This file translates the legend and CPD object expressions of a variable
// block into the ordered model types of the config and cpd packages.

package hcl

import (
	"context"
	"fmt"
	"math/big"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/bayesgridgo/internal/config"
	"github.com/specialistvlad/bayesgridgo/internal/cpd"
	"github.com/specialistvlad/bayesgridgo/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// translateVariable converts a decoded variable block into the agnostic model.
func (l *Loader) translateVariable(ctx context.Context, vb *VariableBlock, file string) (*config.Variable, error) {
	logger := ctxlog.FromContext(ctx)

	node, err := translateNode(ctx, vb.CPD)
	if err != nil {
		return nil, fmt.Errorf("variable %q in %s: cpd: %w", vb.Name, file, err)
	}
	if node.IsLeaf() {
		return nil, fmt.Errorf("variable %q in %s: cpd: %w, got a single probability (%s)", vb.Name, file, cpd.ErrInvalidLeaf, vb.CPD.Range())
	}

	v := &config.Variable{
		Name:   vb.Name,
		Desc:   vb.Desc,
		CPD:    node,
		Source: file,
	}

	if isExprDefined(ctx, vb.Legend, "legend") {
		legend, err := translateLegend(vb.Legend)
		if err != nil {
			return nil, fmt.Errorf("variable %q in %s: legend: %w", vb.Name, file, err)
		}
		v.Legend = legend
	}

	logger.Debug("Translated variable.", "variable", v.Name, "outcomes", cpd.Cardinality(v.CPD), "legend", len(v.Legend))
	return v, nil
}

// translateNode walks an object constructor in source order. Nested
// objects become branches; every other expression must evaluate to a
// number.
func translateNode(ctx context.Context, expr hcl.Expression) (cpd.Node, error) {
	obj, ok := expr.(*hclsyntax.ObjectConsExpr)
	if !ok {
		return translateLeaf(expr)
	}

	entries := make([]cpd.Entry, 0, len(obj.Items))
	seen := make(map[string]struct{}, len(obj.Items))
	for _, item := range obj.Items {
		key, err := translateKey(item.KeyExpr)
		if err != nil {
			return cpd.Node{}, err
		}
		if _, dup := seen[key.String()]; dup {
			return cpd.Node{}, fmt.Errorf("%w: %s (%s)", cpd.ErrDuplicateKey, key, item.KeyExpr.Range())
		}
		seen[key.String()] = struct{}{}
		child, err := translateNode(ctx, item.ValueExpr)
		if err != nil {
			return cpd.Node{}, fmt.Errorf("%s: %w", key, err)
		}
		entries = append(entries, cpd.Entry{Key: key, Node: child})
	}
	if len(entries) == 0 {
		return cpd.Node{}, fmt.Errorf("%w (%s)", cpd.ErrEmptyBranch, obj.SrcRange)
	}
	return cpd.Branch(entries...), nil
}

func translateLeaf(expr hcl.Expression) (cpd.Node, error) {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return cpd.Node{}, diags
	}
	if val.IsNull() || !val.IsKnown() || !val.Type().Equals(cty.Number) {
		return cpd.Node{}, fmt.Errorf("%w, got %s (%s)", cpd.ErrInvalidLeaf, val.Type().FriendlyName(), expr.Range())
	}
	f, _ := val.AsBigFloat().Float64()
	return cpd.Leaf(f), nil
}

// translateKey evaluates an object key. Bare identifiers and strings become
// name keys, numeric literals keep their integer text.
func translateKey(expr hcl.Expression) (cpd.Key, error) {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return cpd.Key{}, diags
	}
	if val.IsNull() || !val.IsKnown() {
		return cpd.Key{}, fmt.Errorf("object key must be known and not null (%s)", expr.Range())
	}

	switch {
	case val.Type().Equals(cty.Number):
		return cpd.NumberKey(numberText(val.AsBigFloat())), nil
	case val.Type().Equals(cty.String):
		return cpd.NameKey(val.AsString()), nil
	default:
		return cpd.Key{}, fmt.Errorf("object key must be a string or number, got %s (%s)", val.Type().FriendlyName(), expr.Range())
	}
}

func numberText(f *big.Float) string {
	if f.IsInt() {
		return f.Text('f', 0)
	}
	return f.Text('g', -1)
}

// translateLegend reads `{ 0 = "No", 1 = "Yes" }` in source order.
func translateLegend(expr hcl.Expression) ([]config.LegendEntry, error) {
	obj, ok := expr.(*hclsyntax.ObjectConsExpr)
	if !ok {
		return nil, fmt.Errorf("must be an object, e.g. { 0 = \"No\" } (%s)", expr.Range())
	}

	legend := make([]config.LegendEntry, 0, len(obj.Items))
	seen := make(map[string]struct{}, len(obj.Items))
	for _, item := range obj.Items {
		key, err := translateKey(item.KeyExpr)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[key.String()]; dup {
			return nil, fmt.Errorf("label of %s is defined twice (%s)", key, item.KeyExpr.Range())
		}
		seen[key.String()] = struct{}{}
		val, diags := item.ValueExpr.Value(nil)
		if diags.HasErrors() {
			return nil, diags
		}
		str, err := convert.Convert(val, cty.String)
		if err != nil || str.IsNull() {
			return nil, fmt.Errorf("label of %s must be a string (%s)", key, item.ValueExpr.Range())
		}
		legend = append(legend, config.LegendEntry{Key: key, Label: str.AsString()})
	}
	return legend, nil
}
