package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/specialistvlad/bayesgridgo/internal/config"
	"github.com/specialistvlad/bayesgridgo/internal/fsutil"
	"github.com/specialistvlad/bayesgridgo/internal/hcl"
	"github.com/specialistvlad/bayesgridgo/internal/yamlcfg"
)

// ErrUnknownFormat is returned when no loader handles a network path.
var ErrUnknownFormat = errors.New("unknown network description format")

// loaderFor picks the loader by file extension. A directory is read as HCL
// unless it holds only YAML or JSON files.
func loaderFor(path string) (config.Loader, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to access network path: %w", err)
	}

	if info.IsDir() {
		files, err := fsutil.FindFilesByExtension([]string{path}, hcl.Extension)
		if err != nil {
			return nil, err
		}
		if len(files) == 0 {
			yamlFiles, err := fsutil.FindFilesByExtension([]string{path}, yamlcfg.Extensions...)
			if err != nil {
				return nil, err
			}
			if len(yamlFiles) > 0 {
				return yamlcfg.NewLoader(), nil
			}
		}
		return hcl.NewLoader(), nil
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case ext == hcl.Extension:
		return hcl.NewLoader(), nil
	case slices.Contains(yamlcfg.Extensions, ext):
		return yamlcfg.NewLoader(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}
