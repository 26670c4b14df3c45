package packager

import (
	"path/filepath"

	"github.com/oshokin/release-packager/internal/domain/release"
)

// ChooseRootPackage picks the package to release from meta.
//
// The package whose manifest resolves to rootManifest wins. Otherwise the
// first default workspace member (or first member) is used, and as a last
// resort the first package. Paths are compared after making them absolute and
// evaluating symlinks, so "./Cargo.toml" and its resolved form are equal.
func ChooseRootPackage(meta *release.Metadata, rootManifest string) (*release.Package, error) {
	if meta == nil || len(meta.Packages) == 0 {
		return nil, errNoPackages
	}

	root := resolvePath(rootManifest)

	for i := range meta.Packages {
		pkg := &meta.Packages[i]
		if pkg.ManifestPath == "" {
			continue
		}

		if resolvePath(pkg.ManifestPath) == root {
			return pkg, nil
		}
	}

	if members := meta.RootMemberIDs(); len(members) > 0 {
		if pkg := meta.FindPackage(members[0]); pkg != nil {
			return pkg, nil
		}
	}

	return &meta.Packages[0], nil
}

// resolvePath returns the absolute, symlink-free form of p. Parts that cannot
// be resolved (for example a manifest that does not exist) are kept as is.
func resolvePath(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return filepath.Clean(p)
	}

	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}

	return abs
}
