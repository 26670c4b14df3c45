// Package version exposes build metadata of the release-packager binary.
//
// Version, Commit and BuildTime are injected with -ldflags "-X ..." in CI and
// keep placeholder values for local builds.
package version
