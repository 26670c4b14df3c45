package packager

import (
	"errors"
	"fmt"
	"strings"

	"github.com/oshokin/release-packager/internal/config"
)

var (
	// ErrConfiguration marks missing or invalid parameters.
	ErrConfiguration = config.ErrInvalid
	// ErrDiscovery marks failures to obtain metadata or to pick the root package.
	ErrDiscovery = errors.New("metadata discovery failed")
	// ErrResolution marks an empty list of binaries to package.
	ErrResolution = errors.New("no binary targets found to package")
	// ErrLocation marks binaries missing from every candidate directory.
	ErrLocation = errors.New("expected binaries were not found after build")

	errNoPackages = errors.New("cargo metadata returned no packages")
)

// MissingBinariesError lists every binary that could not be located together
// with the detected targets and the directories searched. The full lists are
// kept because CI logs are the only place an operator sees them.
type MissingBinariesError struct {
	// Missing are file names (with executable suffix) that were not found.
	Missing []string
	// Detected are the bin targets reported by cargo metadata.
	Detected []string
	// Searched are the directories searched, as "target/<dir>/release".
	Searched []string
}

func (e *MissingBinariesError) Error() string {
	var b strings.Builder

	b.WriteString("Some expected binaries were not found after build:\n")
	writeList(&b, e.Missing)

	b.WriteString("\nDetected bin targets from cargo metadata:\n")

	if len(e.Detected) == 0 {
		b.WriteString("  (none)\n")
	} else {
		writeList(&b, e.Detected)
	}

	b.WriteString("\nSearched in:\n")
	writeList(&b, e.Searched)

	b.WriteString("\nTip: ensure the build step uses `--bins` and that BUILD_TARGET/RUST_TARGET are set correctly.")

	return b.String()
}

// Unwrap lets errors.Is match ErrLocation.
func (e *MissingBinariesError) Unwrap() error {
	return ErrLocation
}

// newResolutionError explains an empty binary list.
func newResolutionError(detected []string) error {
	listing := "(none)"
	if len(detected) > 0 {
		listing = strings.Join(detected, ", ")
	}

	return fmt.Errorf("%w\nDetected bin targets from cargo metadata: %s\n"+
		"If this is intentional (library-only), remove packaging from the workflow.\n"+
		"Otherwise, check your Cargo.toml targets or BIN_NAMES", ErrResolution, listing)
}

// withWorkspaceHint notes that the package was picked from the members of a
// virtual workspace, which is the usual cause of a library-only selection.
func withWorkspaceHint(err error, manifestPath, pkgName string) error {
	return fmt.Errorf("%w\nNote: %s is a virtual workspace, so %q was selected from its members. "+
		"Set BIN_NAMES or point CARGO_MANIFEST at the member that builds the binaries",
		err, manifestPath, pkgName)
}

func writeList(b *strings.Builder, items []string) {
	for _, item := range items {
		b.WriteString("  - ")
		b.WriteString(item)
		b.WriteByte('\n')
	}
}
