package release

import "slices"

// BinKind is the cargo target kind of executable targets.
const BinKind = "bin"

// Target is one build target of a package.
type Target struct {
	// Name is the target name; for bin targets it is the executable name.
	Name string `json:"name"`
	// Kind lists the target kinds, e.g. ["bin"] or ["lib", "rlib"].
	Kind []string `json:"kind"`
}

// IsBinary reports whether the target produces an executable.
func (t Target) IsBinary() bool {
	return slices.Contains(t.Kind, BinKind)
}

// Package is a workspace package as reported by cargo metadata.
type Package struct {
	// ID is the opaque package id referenced by workspace member lists.
	ID string `json:"id"`
	// Name is the package name.
	Name string `json:"name"`
	// Version is the package version from its manifest.
	Version string `json:"version"`
	// ManifestPath is the absolute path of the package Cargo.toml.
	ManifestPath string `json:"manifest_path"`
	// Targets are the build targets declared by the package.
	Targets []Target `json:"targets"`
}

// BinaryTargets returns the names of executable targets in declaration order.
func (p *Package) BinaryTargets() []string {
	var names []string

	for _, target := range p.Targets {
		if target.IsBinary() && target.Name != "" {
			names = append(names, target.Name)
		}
	}

	return names
}

// Metadata is the subset of `cargo metadata --format-version 1` the packager reads.
type Metadata struct {
	Packages                []Package `json:"packages"`
	WorkspaceMembers        []string  `json:"workspace_members"`
	WorkspaceDefaultMembers []string  `json:"workspace_default_members"`
	WorkspaceRoot           string    `json:"workspace_root"`
}

// FindPackage returns the package with the given id or nil.
func (m *Metadata) FindPackage(id string) *Package {
	for i := range m.Packages {
		if m.Packages[i].ID == id {
			return &m.Packages[i]
		}
	}

	return nil
}

// RootMemberIDs returns default members, or all members when no defaults are declared.
func (m *Metadata) RootMemberIDs() []string {
	if len(m.WorkspaceDefaultMembers) > 0 {
		return m.WorkspaceDefaultMembers
	}

	return m.WorkspaceMembers
}
