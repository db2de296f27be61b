// Package project locates and parses the glot.toml manifest that configures
// conversion passes rooted in a directory tree.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file searched for upward from the working directory.
const ManifestName = "glot.toml"

// Manifest is a located, parsed glot.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors the manifest layout.
type Config struct {
	Project ProjectConfig `toml:"project"`
	Output  OutputConfig  `toml:"output"`
	Cache   CacheConfig   `toml:"cache"`
}

type ProjectConfig struct {
	// Target names the backend generated code is written for.
	Target string `toml:"target"`
}

type OutputConfig struct {
	// Dir receives generated files in --write mode; empty means next to
	// the input.
	Dir string `toml:"dir"`
	// PreferStructLiteral picks the struct branch for object literals with
	// no static type. Exposed so both branches are exercisable from config.
	PreferStructLiteral *bool `toml:"prefer_struct_literal"`
}

type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

// Default returns the configuration used when no manifest exists.
func Default() Config {
	prefer := true
	return Config{
		Project: ProjectConfig{Target: "csharp"},
		Output:  OutputConfig{PreferStructLiteral: &prefer},
	}
}

// PreferStruct resolves the literal-shape policy with its default.
func (c Config) PreferStruct() bool {
	if c.Output.PreferStructLiteral == nil {
		return true
	}
	return *c.Output.PreferStructLiteral
}

// Find walks upward from startDir looking for the manifest file.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("stat %q: %w", candidate, err)
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
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Project.Target == "" {
		cfg.Project.Target = Default().Project.Target
	}
	return &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, nil
}

// LoadOrDefault finds and parses the nearest manifest, or returns defaults
// when none exists.
func LoadOrDefault(startDir string) (*Manifest, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &Manifest{Config: Default()}, nil
	}
	return Load(path)
}
