// Package loader reads configuration sources into nested maps.
//
// A TOML file and the process environment are each turned into a
// map[string]any keyed by section, so they can be merged with DeepMerge
// before being decoded into typed settings.
package loader

import "os"

// Loader produces one configuration layer.
type Loader interface {
	// Load returns the layer as nested maps. A source that does not exist
	// yields nil, nil.
	Load() (map[string]any, error)
}

// FileSystem reads whole files. Tests swap in an in-memory one.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
}

type osFS struct{}

func (osFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}
