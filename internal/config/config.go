// Package config loads formatter settings from plume.toml, discovered by
// walking upward from a start directory.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file the upward search looks for.
const ManifestName = "plume.toml"

// Config is the full contents of a plume.toml manifest.
type Config struct {
	Format FormatConfig `toml:"format"`
}

// FormatConfig is the [format] table.
type FormatConfig struct {
	IndentWidth int  `toml:"indent_width"`
	UseTabs     bool `toml:"use_tabs"`
}

// Manifest binds a loaded Config to the manifest file it came from.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Default returns the settings used when no manifest exists.
func Default() Config {
	return Config{Format: FormatConfig{IndentWidth: 4}}
}

// Find walks from startDir toward the filesystem root looking for
// plume.toml. The second result is false when no manifest exists.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load parses the manifest at path.
func Load(path string) (*Manifest, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if meta.IsDefined("format", "indent_width") && cfg.Format.IndentWidth <= 0 {
		return nil, fmt.Errorf("%s: [format].indent_width must be positive", path)
	}
	return &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, nil
}

// Discover combines Find and Load. When no manifest exists it returns a
// manifest holding defaults with an empty Path.
func Discover(startDir string) (*Manifest, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &Manifest{Config: Default()}, nil
	}
	return Load(path)
}
