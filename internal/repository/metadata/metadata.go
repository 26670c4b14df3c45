package metadata

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/oshokin/release-packager/internal/domain/release"
	"github.com/oshokin/release-packager/internal/logger"
)

// Repository provides the workspace metadata of the current project.
type Repository interface {
	Load(ctx context.Context) (*release.Metadata, error)
}

// ErrCargoFailed is returned when the cargo process cannot be started or exits non-zero.
var ErrCargoFailed = errors.New("cargo metadata failed")

// cargoMetadataArgs are the arguments passed to cargo.
//
//nolint:gochecknoglobals // Constant argument list.
var cargoMetadataArgs = []string{"metadata", "--no-deps", "--format-version", "1"}

// CargoRepository invokes cargo to describe the workspace.
type CargoRepository struct {
	// cargo is the executable name or path.
	cargo string
	// dir is the working directory of the cargo process.
	dir string
}

// NewCargoRepository creates a repository running cargo in dir.
// An empty cargo defaults to "cargo" looked up in PATH.
func NewCargoRepository(cargo, dir string) *CargoRepository {
	if cargo == "" {
		cargo = "cargo"
	}

	return &CargoRepository{
		cargo: cargo,
		dir:   dir,
	}
}

// Load runs cargo metadata and decodes its output.
func (r *CargoRepository) Load(ctx context.Context) (*release.Metadata, error) {
	logger.DebugKV(ctx, "Running cargo metadata", "cargo", r.cargo, "args", cargoMetadataArgs)

	var stdout, stderr bytes.Buffer

	//nolint:gosec // The cargo path is operator-provided configuration.
	cmd := exec.CommandContext(ctx, r.cargo, cargoMetadataArgs...)
	cmd.Dir = r.dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%w: %w: %s", ErrCargoFailed, err, msg)
		}

		return nil, fmt.Errorf("%w: %w", ErrCargoFailed, err)
	}

	return Decode(stdout.Bytes())
}

// FileRepository reads metadata JSON from disk.
type FileRepository struct {
	// path is the location of the JSON document.
	path string
}

// NewFileRepository creates a repository reading the metadata JSON at path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path: filepath.Clean(path),
	}
}

// Load reads and decodes the metadata file.
func (r *FileRepository) Load(ctx context.Context) (*release.Metadata, error) {
	logger.DebugKV(ctx, "Reading cargo metadata from file", "path", r.path)

	contents, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("read metadata file: %w", err)
	}

	return Decode(contents)
}

// Decode parses the JSON printed by cargo metadata.
func Decode(data []byte) (*release.Metadata, error) {
	var meta release.Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("decode cargo metadata: %w", err)
	}

	return &meta, nil
}
