// Package manifest handles infix.toml host configuration.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileName is the configuration file the CLI looks for.
const FileName = "infix.toml"

// Manifest represents an infix.toml configuration.
type Manifest struct {
	Cache Cache `toml:"cache"`
	REPL  REPL  `toml:"repl"`
	Trace bool  `toml:"trace"`

	// Dir is the directory containing the infix.toml file (set at load time).
	Dir string `toml:"-"`
}

// Cache configures the compiled-program store.
type Cache struct {
	Path string `toml:"path"`
}

// REPL configures interactive mode.
type REPL struct {
	Prompt string `toml:"prompt"`
}

// Default returns the configuration used when no manifest file exists.
func Default() *Manifest {
	return &Manifest{
		REPL: REPL{Prompt: ">> "},
	}
}

// Load parses an infix.toml file from the given directory. A missing file
// is not an error: the defaults are returned instead.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	m := Default()
	if err := toml.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	m.Dir = dir

	// The cache path is relative to the manifest's directory.
	if m.Cache.Path != "" && !filepath.IsAbs(m.Cache.Path) {
		m.Cache.Path = filepath.Join(dir, m.Cache.Path)
	}
	return m, nil
}
