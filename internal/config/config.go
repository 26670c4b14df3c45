package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/oshokin/release-packager/internal/archive"
	"github.com/oshokin/release-packager/internal/logger"
)

// Config holds the parameters of one packaging run.
type Config struct {
	// BuildTarget is the primary target directory name under target/.
	BuildTarget string
	// RustTarget is the base triple tried when BuildTarget has no artifacts.
	RustTarget string
	// AssetTarget is the platform label embedded in output names.
	AssetTarget string
	// Tag is the release tag embedded in output names.
	Tag string
	// ArchiveExt selects both the archive format and its extension.
	ArchiveExt string
	// BinNames optionally overrides the detected binaries (comma/space separated).
	BinNames string
	// Manifest is the workspace root manifest used to pick the root package.
	Manifest string
	// Cargo is the cargo executable invoked for metadata.
	Cargo string
	// MetadataFile, when set, is read instead of running cargo metadata.
	MetadataFile string
	// WriteManifest enables the YAML release manifest next to the archive.
	WriteManifest bool
	// LogLevel is the minimum level of log messages.
	LogLevel string
}

// Keys double as flag names and config file keys.
const (
	KeyConfig        = "config"
	KeyBuildTarget   = "build-target"
	KeyRustTarget    = "rust-target"
	KeyAssetTarget   = "asset-target"
	KeyTag           = "tag"
	KeyArchiveExt    = "archive-ext"
	KeyBinNames      = "bin-names"
	KeyManifest      = "manifest"
	KeyCargo         = "cargo"
	KeyMetadataFile  = "metadata-file"
	KeyWriteManifest = "write-manifest"
	KeyLogLevel      = "log-level"
)

const (
	// DefaultArchiveExt is used when no archive extension is configured.
	DefaultArchiveExt = string(archive.TarGz)

	// DefaultManifest is the root manifest relative to the working directory.
	DefaultManifest = "Cargo.toml"

	// DefaultCargo is the cargo executable looked up in PATH.
	DefaultCargo = "cargo"

	// DefaultLogLevel is the default minimum log level.
	DefaultLogLevel = "info"
)

// envNames maps keys to the environment variables that may supply them.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envNames = map[string]string{
	KeyConfig:        "RELEASE_PACKAGER_CONFIG",
	KeyBuildTarget:   "BUILD_TARGET",
	KeyRustTarget:    "RUST_TARGET",
	KeyAssetTarget:   "ASSET_TARGET",
	KeyTag:           "TAG",
	KeyArchiveExt:    "ARCHIVE_EXT",
	KeyBinNames:      "BIN_NAMES",
	KeyManifest:      "CARGO_MANIFEST",
	KeyCargo:         "CARGO",
	KeyMetadataFile:  "CARGO_METADATA_FILE",
	KeyWriteManifest: "WRITE_MANIFEST",
	KeyLogLevel:      "LOG_LEVEL",
}

var (
	// ErrInvalid marks every configuration error; callers match it with errors.Is.
	ErrInvalid = errors.New("invalid configuration")

	errTagRequired         = fmt.Errorf("%w: TAG is required (e.g. TAG=v1.2.3)", ErrInvalid)
	errAssetTargetRequired = fmt.Errorf("%w: ASSET_TARGET is required", ErrInvalid)
	errBuildTargetRequired = fmt.Errorf("%w: BUILD_TARGET is required", ErrInvalid)
)

// RegisterFlags declares every packaging flag on fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringP(KeyConfig, "c", "", "optional YAML file with the same keys as the flags ($RELEASE_PACKAGER_CONFIG)")
	fs.String(KeyBuildTarget, "", "target directory to read binaries from, e.g. x86_64-unknown-linux-gnu.2.32 ($BUILD_TARGET)")
	fs.String(KeyRustTarget, "", "base Rust triple used as a fallback directory ($RUST_TARGET)")
	fs.String(KeyAssetTarget, "", "target string used for naming the release asset ($ASSET_TARGET)")
	fs.String(KeyTag, "", "release tag, e.g. v1.2.3 ($TAG)")
	fs.String(KeyArchiveExt, DefaultArchiveExt, "archive format: "+archive.FormatChoices()+" ($ARCHIVE_EXT)")
	fs.String(KeyBinNames, "", "comma/space separated binaries to package instead of the detected ones ($BIN_NAMES)")
	fs.String(KeyManifest, DefaultManifest, "workspace root manifest ($CARGO_MANIFEST)")
	fs.String(KeyCargo, DefaultCargo, "cargo executable ($CARGO)")
	fs.String(KeyMetadataFile, "", "read cargo metadata JSON from this file instead of running cargo ($CARGO_METADATA_FILE)")
	fs.Bool(KeyWriteManifest, false, "write a YAML release manifest with checksums next to the archive ($WRITE_MANIFEST)")
	fs.String(KeyLogLevel, DefaultLogLevel, "log level: debug, info, warn or error ($LOG_LEVEL)")
}

// Load resolves the configuration from fs, the environment and the optional
// config file, then validates it.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault(KeyArchiveExt, DefaultArchiveExt)
	v.SetDefault(KeyManifest, DefaultManifest)
	v.SetDefault(KeyCargo, DefaultCargo)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)

	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	for key, env := range envNames {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if path := v.GetString(KeyConfig); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("%w: read config file %s: %w", ErrInvalid, path, err)
		}
	}

	cfg := &Config{
		BuildTarget:   v.GetString(KeyBuildTarget),
		RustTarget:    v.GetString(KeyRustTarget),
		AssetTarget:   v.GetString(KeyAssetTarget),
		Tag:           v.GetString(KeyTag),
		ArchiveExt:    v.GetString(KeyArchiveExt),
		BinNames:      v.GetString(KeyBinNames),
		Manifest:      v.GetString(KeyManifest),
		Cargo:         v.GetString(KeyCargo),
		MetadataFile:  v.GetString(KeyMetadataFile),
		WriteManifest: v.GetBool(KeyWriteManifest),
		LogLevel:      v.GetString(KeyLogLevel),
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks required parameters and fills defaults for optional ones.
// Required parameters are checked in the order tag, asset target, build target.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("%w: configuration is not set", ErrInvalid)
	}

	if strings.TrimSpace(cfg.Tag) == "" {
		return errTagRequired
	}

	if strings.TrimSpace(cfg.AssetTarget) == "" {
		return errAssetTargetRequired
	}

	if strings.TrimSpace(cfg.BuildTarget) == "" {
		return errBuildTargetRequired
	}

	if cfg.ArchiveExt == "" {
		cfg.ArchiveExt = DefaultArchiveExt
	}

	format, err := archive.ParseFormat(cfg.ArchiveExt)
	if err != nil {
		return fmt.Errorf("%w: ARCHIVE_EXT: %w", ErrInvalid, err)
	}

	cfg.ArchiveExt = format.Ext()

	if cfg.Manifest == "" {
		cfg.Manifest = DefaultManifest
	}

	if cfg.Cargo == "" {
		cfg.Cargo = DefaultCargo
	}

	if _, ok := logger.ParseLogLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("%w: unknown log level %q", ErrInvalid, cfg.LogLevel)
	}

	return nil
}

// Format returns the validated archive format.
func (c *Config) Format() archive.Format {
	return archive.Format(c.ArchiveExt)
}
