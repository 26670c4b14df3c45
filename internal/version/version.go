package version

import (
	"fmt"
	"runtime"
)

// Build information injected with -ldflags "-X ...".
var (
	// Version is the packager release; also recorded in release manifests.
	Version = "0.1.0"
	// Commit is the short git SHA, or "none" for local builds.
	Commit = "none"
	// BuildTime is the UTC build timestamp.
	BuildTime = "unknown"
)

// Short returns the packager version recorded in release manifests.
func Short() string {
	return Version
}

// Platform is the GOOS/GOARCH pair the packager was built for.
func Platform() string {
	return runtime.GOOS + "/" + runtime.GOARCH
}

// Full describes the build for the version subcommand and --version.
func Full() string {
	return fmt.Sprintf("release-packager %s (commit %s, built %s, %s %s)",
		Version, Commit, BuildTime, runtime.Version(), Platform())
}
