package packager

import (
	"crypto"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/release-packager/internal/domain/release"
	"github.com/oshokin/release-packager/internal/version"

	// Ensure SHA512 is available for checksum calculation.
	_ "crypto/sha512"
)

const (
	// ManifestSuffix is appended to the archive name to name the release manifest.
	ManifestSuffix = ".yaml"

	// ChecksumFunction hashes the archive and the staged files.
	ChecksumFunction crypto.Hash = crypto.SHA512

	manifestFileMode os.FileMode = 0o644
)

var errHashUnavailable = errors.New("hash function unavailable")

// ReleaseManifest describes one produced archive. Checksums are base64-encoded SHA-512.
type ReleaseManifest struct {
	// Package is the root package name.
	Package string `yaml:"package"`
	// Version is the package version from cargo metadata.
	Version string `yaml:"version,omitempty"`
	// Tag is the release tag.
	Tag string `yaml:"tag"`
	// Target is the asset target.
	Target string `yaml:"target"`
	// Binaries are the packaged binary names.
	Binaries []string `yaml:"binaries"`
	// Archive describes the archive file.
	Archive ArchiveDescription `yaml:"archive"`
	// Files maps archive entry names to their checksums.
	Files map[string]string `yaml:"files"`
	// Packager is the version of release-packager that produced the archive.
	Packager string `yaml:"packager"`
}

// ArchiveDescription identifies the archive file.
type ArchiveDescription struct {
	Name     string `yaml:"name"`
	Format   string `yaml:"format"`
	Checksum string `yaml:"checksum"`
}

// FileChecksum returns the ChecksumFunction digest of the file at path.
func FileChecksum(path string) ([]byte, error) {
	if !ChecksumFunction.Available() {
		return nil, fmt.Errorf("checksum calculation not possible: %w", errHashUnavailable)
	}

	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = f.Close()
	}()

	hasher := ChecksumFunction.New()
	if _, err = io.Copy(hasher, f); err != nil {
		return nil, fmt.Errorf("calculate checksum of %s: %w", path, err)
	}

	return hasher.Sum(nil), nil
}

// newReleaseManifest checksums the archive and every file under stagingDir.
func newReleaseManifest(layout release.Layout, pkgVersion string, binaries []string,
	stagingDir, archivePath string,
) (*ReleaseManifest, error) {
	archiveSum, err := FileChecksum(archivePath)
	if err != nil {
		return nil, err
	}

	m := &ReleaseManifest{
		Package:  layout.PackageName,
		Version:  pkgVersion,
		Tag:      layout.Tag,
		Target:   layout.AssetTarget,
		Binaries: binaries,
		Archive: ArchiveDescription{
			Name:     layout.ArchiveName(),
			Format:   layout.ArchiveExt,
			Checksum: base64.StdEncoding.EncodeToString(archiveSum),
		},
		Files:    make(map[string]string),
		Packager: version.Short(),
	}

	err = filepath.WalkDir(stagingDir, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || !d.Type().IsRegular() {
			return walkErr
		}

		rel, err := filepath.Rel(stagingDir, p)
		if err != nil {
			return err
		}

		sum, err := FileChecksum(p)
		if err != nil {
			return err
		}

		m.Files[layout.OutName()+"/"+filepath.ToSlash(rel)] = base64.StdEncoding.EncodeToString(sum)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("checksum staged files: %w", err)
	}

	return m, nil
}

// writeReleaseManifest stores m as YAML at path.
func writeReleaseManifest(path string, m *ReleaseManifest) error {
	contents, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal release manifest: %w", err)
	}

	if err = os.WriteFile(filepath.Clean(path), contents, manifestFileMode); err != nil {
		return fmt.Errorf("write release manifest: %w", err)
	}

	return nil
}
