package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// ErrNotFound is returned when the manifest file does not exist.
var ErrNotFound = errors.New("manifest not found")

// Package is the [package] table.
type Package struct {
	Name string `toml:"name"`
}

// Workspace is the [workspace] table.
type Workspace struct {
	Members        []string `toml:"members"`
	DefaultMembers []string `toml:"default-members"`
}

// Manifest is the subset of Cargo.toml used for diagnostics.
type Manifest struct {
	Package   *Package   `toml:"package"`
	Workspace *Workspace `toml:"workspace"`
}

// IsVirtual reports whether the manifest declares a workspace without a root package.
func (m *Manifest) IsVirtual() bool {
	return m.Package == nil && m.Workspace != nil
}

// Read decodes the manifest at path.
func Read(path string) (*Manifest, error) {
	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
		}

		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err = toml.Unmarshal(contents, &m); err != nil {
		return nil, fmt.Errorf("decode manifest %s: %w", path, err)
	}

	return &m, nil
}
