package config

import (
	"context"
)

// Loader is the interface for a format-specific network loader.
type Loader interface {
	// Load reads every file under the given paths and merges their
	// declarations into a single Network.
	Load(ctx context.Context, paths ...string) (*Network, error)
}
