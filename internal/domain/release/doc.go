// Package release contains the core types of the packaging workflow.
//
// It defines the cargo workspace Metadata (packages and their targets) and
// Layout, which derives every output name from package, tag, asset target and
// archive extension.
package release
