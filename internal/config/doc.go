// Package config collects the packaging parameters from command-line flags,
// environment variables and an optional YAML file, and validates them.
//
// Precedence is flag, then environment variable, then config file, then the
// built-in default. Environment variable names match the ones CI workflows
// already export (BUILD_TARGET, TAG, ASSET_TARGET, ...).
package config
