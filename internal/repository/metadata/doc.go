// Package metadata loads cargo workspace metadata.
//
// CargoRepository runs `cargo metadata --no-deps --format-version 1` in the
// workspace; FileRepository reads the same JSON from a file produced earlier
// in the pipeline. Both satisfy Repository, which the packager depends on.
package metadata
