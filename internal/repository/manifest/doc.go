// Package manifest reads the workspace root Cargo.toml.
//
// Only the sections that explain root package selection are decoded: the
// [package] name and the [workspace] member lists.
package manifest
