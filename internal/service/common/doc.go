// Package common holds helpers shared by services.
//
// It inspects the process table to detect cargo or rustc processes that may
// still be writing build artifacts.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common
