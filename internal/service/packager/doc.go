// Package packager turns already-built cargo release binaries into a
// distributable archive.
//
// Run discovers the root package from cargo metadata, resolves the binaries
// to ship, finds each one under the candidate target directories, stages them
// with the project documentation in dist/{package}-{tag}-{target}/ and
// compresses the staging directory into a tar.gz or zip archive.
package packager
