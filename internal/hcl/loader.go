package hcl

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/bayesgridgo/internal/config"
	"github.com/specialistvlad/bayesgridgo/internal/ctxlog"
	"github.com/specialistvlad/bayesgridgo/internal/fsutil"
)

// Extension is the file extension the loader reads.
const Extension = ".hcl"

// ErrNoFiles is returned when none of the given paths holds an HCL file.
var ErrNoFiles = errors.New("no HCL files found")

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL network loader.
func NewLoader() *Loader {
	return &Loader{}
}

var _ config.Loader = (*Loader)(nil)

// Load parses every .hcl file under paths and merges their blocks into one
// network. Variables and edges keep file order, then block order.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Network, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.FindFilesByExtension(paths, Extension)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %v", ErrNoFiles, paths)
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	net := &config.Network{}
	parser := hclparse.NewParser()

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		for _, nb := range root.Networks {
			if net.Name != "" && net.Name != nb.Name {
				logger.Warn("Ignoring additional network block.", "file", file, "name", nb.Name, "network", net.Name)
				continue
			}
			net.Name = nb.Name
			if nb.Description != "" {
				net.Desc = nb.Description
			}
		}
		for _, vb := range root.Variables {
			v, err := l.translateVariable(ctx, vb, file)
			if err != nil {
				return nil, err
			}
			net.Variables = append(net.Variables, v)
			for _, parent := range vb.Parents {
				net.AddEdge(parent, vb.Name)
			}
		}
		for _, eb := range root.Edges {
			net.AddEdge(eb.Parent, eb.Child)
		}
	}

	logger.Debug("HCL loading complete.", "network", net.Name, "variables", len(net.Variables), "edges", len(net.Edges))
	return net, nil
}
