// Package config loads the loader's manifest file, mana.yaml, with
// gopkg.in/yaml.v3 (the teacher pack uses the same library for
// frontmatter/settings files). A Manifest only ever supplies defaults:
// CLI flags override it, and it in turn overrides the environment-derived
// standard-library root (spec.md §4.4.1).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Manifest is the on-disk shape of mana.yaml.
type Manifest struct {
	SearchPaths []string `yaml:"search_paths"`
	ProjectRoot string   `yaml:"project_root"`
	StdLibRoot  string   `yaml:"std_lib_root"`
}

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return &m, nil
}

// LoadIfExists behaves like Load but returns an empty, zero-valued Manifest
// instead of an error when path does not exist, so callers can always
// merge a manifest even when the project carries none.
func LoadIfExists(path string) (*Manifest, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Manifest{}, nil
	}
	return Load(path)
}

// DefaultStdLibRoot derives the standard-library root from the process
// environment (spec.md §4.4.1): MANA_LIB always wins; otherwise
// ${HOME}/.mana/lib on POSIX-like hosts or ${USERPROFILE}/.mana/lib on
// Windows-like hosts. Empty if neither variable is set.
func DefaultStdLibRoot() string {
	if lib := os.Getenv("MANA_LIB"); lib != "" {
		return lib
	}

	home := os.Getenv("HOME")
	if runtime.GOOS == "windows" {
		home = os.Getenv("USERPROFILE")
	}
	if home == "" {
		return ""
	}
	return filepath.Join(home, ".mana", "lib")
}

// Resolved is a Manifest's settings merged with the environment default,
// ready to hand to loader.New. Precedence (highest first): explicit flags
// applied by the caller after Resolve returns, manifest fields, then the
// environment default for StdLibRoot.
type Resolved struct {
	SearchPaths []string
	ProjectRoot string
	StdLibRoot  string
}

// Resolve merges m with the environment-derived default std-lib root. m may
// be nil, meaning no manifest was found.
func Resolve(m *Manifest) Resolved {
	r := Resolved{StdLibRoot: DefaultStdLibRoot()}
	if m == nil {
		return r
	}
	r.SearchPaths = m.SearchPaths
	r.ProjectRoot = m.ProjectRoot
	if m.StdLibRoot != "" {
		r.StdLibRoot = m.StdLibRoot
	}
	return r
}
