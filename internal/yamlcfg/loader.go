// Package yamlcfg provides the YAML implementation of config.Loader. JSON
// files are read by the same code, JSON being a subset of YAML.
//
// Documents are decoded into yaml.Node trees so that the order in which
// outcomes and parent assignments are written is preserved:
//
//	name: sprinkler
//	structure:
//	  - [RAIN, WET]
//	variables:
//	  RAIN:
//	    desc: Rain
//	    legend: {0: "No", 1: "Yes"}
//	    cpd: {0: 0.8, 1: 0.2}
package yamlcfg

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/specialistvlad/bayesgridgo/internal/config"
	"github.com/specialistvlad/bayesgridgo/internal/ctxlog"
	"github.com/specialistvlad/bayesgridgo/internal/fsutil"
	"gopkg.in/yaml.v3"
)

// Extensions lists the file extensions the loader reads.
var Extensions = []string{".yaml", ".yml", ".json"}

// ErrNoFiles is returned when none of the given paths holds a YAML file.
var ErrNoFiles = errors.New("no YAML files found")

// document is the top-level shape of a network file.
type document struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Structure   [][]string `yaml:"structure"`
	Variables   yaml.Node  `yaml:"variables"`
}

// variable is the shape of one entry under `variables`.
type variable struct {
	Desc    string    `yaml:"desc"`
	Legend  yaml.Node `yaml:"legend"`
	CPD     yaml.Node `yaml:"cpd"`
	Parents []string  `yaml:"parents"`
}

// Loader is the YAML-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new YAML network loader.
func NewLoader() *Loader {
	return &Loader{}
}

var _ config.Loader = (*Loader)(nil)

// Load decodes every YAML or JSON file under paths and merges them into one
// network.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Network, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML loader started.", "path_count", len(paths))

	files, err := fsutil.FindFilesByExtension(paths, Extensions...)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %v", ErrNoFiles, paths)
	}

	net := &config.Network{}
	for _, file := range files {
		if err := l.loadFile(ctx, net, file); err != nil {
			return nil, err
		}
	}

	logger.Debug("YAML loading complete.", "network", net.Name, "variables", len(net.Variables), "edges", len(net.Edges))
	return net, nil
}

func (l *Loader) loadFile(ctx context.Context, net *config.Network, file string) error {
	logger := ctxlog.FromContext(ctx)

	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", file, err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to decode YAML file %s: %w", file, err)
	}

	if doc.Name != "" {
		if net.Name != "" && net.Name != doc.Name {
			logger.Warn("Ignoring additional network name.", "file", file, "name", doc.Name, "network", net.Name)
		} else {
			net.Name = doc.Name
		}
	}
	if doc.Description != "" {
		net.Desc = doc.Description
	}

	vars := resolve(&doc.Variables)
	if vars.Kind != 0 && vars.Kind != yaml.MappingNode {
		return fmt.Errorf("%s:%d: variables must be a mapping", file, vars.Line)
	}
	for i := 0; i+1 < len(vars.Content); i += 2 {
		name, body := vars.Content[i], vars.Content[i+1]

		var vd variable
		if err := body.Decode(&vd); err != nil {
			return fmt.Errorf("%s:%d: variable %q: %w", file, body.Line, name.Value, err)
		}
		v, err := translateVariable(name.Value, &vd)
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		v.Source = file
		net.Variables = append(net.Variables, v)
		for _, parent := range vd.Parents {
			net.AddEdge(parent, v.Name)
		}
		logger.Debug("Translated variable.", "variable", v.Name, "file", file)
	}

	for i, pair := range doc.Structure {
		if len(pair) != 2 {
			return fmt.Errorf("%s: structure entry %d must be a [parent, child] pair, got %v", file, i, pair)
		}
		net.AddEdge(pair[0], pair[1])
	}
	return nil
}
