package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Limits bounds interpreter resources, mirroring the [limits] table.
type Limits struct {
	MaxCallDepth   int `toml:"max-call-depth"`
	MaxVariables   int `toml:"max-variables"`
	MaxFunctions   int `toml:"max-functions"`
	MaxDiagnostics int `toml:"max-diagnostics"`
}

// REPL holds the [repl] table.
type REPL struct {
	Prompt       string `toml:"prompt"`
	Continuation string `toml:"continuation"`
	History      string `toml:"history"`
}

// Config is the decoded keyva.toml. Zero fields mean "not set"; Normalize
// fills in the defaults.
type Config struct {
	Limits Limits `toml:"limits"`
	REPL   REPL   `toml:"repl"`

	// Path is where the file was found, empty when defaults are in use.
	Path string `toml:"-"`
}

// Default returns the built-in configuration used when no keyva.toml
// exists.
func Default() Config {
	c := Config{}
	c.Normalize()
	return c
}

// Normalize replaces unset fields with their defaults.
func (c *Config) Normalize() {
	if c.Limits.MaxCallDepth <= 0 {
		c.Limits.MaxCallDepth = 100
	}
	if c.Limits.MaxVariables <= 0 {
		c.Limits.MaxVariables = 100
	}
	if c.Limits.MaxFunctions <= 0 {
		c.Limits.MaxFunctions = 100
	}
	if c.Limits.MaxDiagnostics <= 0 {
		c.Limits.MaxDiagnostics = 100
	}
	if c.REPL.Prompt == "" {
		c.REPL.Prompt = "> "
	}
	if c.REPL.Continuation == "" {
		c.REPL.Continuation = "... "
	}
}

// FindKeyvaToml walks up from startDir to locate keyva.toml.
func FindKeyvaToml(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "keyva.toml")
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

// LoadFile decodes one keyva.toml.
func LoadFile(path string) (Config, error) {
	var c Config
	if _, err := toml.DecodeFile(path, &c); err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	c.Path = path
	c.Normalize()
	return c, nil
}

// Discover finds and loads the nearest keyva.toml above startDir, falling
// back to defaults when there is none.
func Discover(startDir string) (Config, error) {
	path, ok, err := FindKeyvaToml(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return LoadFile(path)
}
