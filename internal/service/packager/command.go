package packager

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/oshokin/release-packager/internal/archive"
	"github.com/oshokin/release-packager/internal/config"
	"github.com/oshokin/release-packager/internal/domain/release"
	"github.com/oshokin/release-packager/internal/logger"
	"github.com/oshokin/release-packager/internal/repository/manifest"
	"github.com/oshokin/release-packager/internal/repository/metadata"
	"github.com/oshokin/release-packager/internal/service/common"
)

// Options contains inputs for the packager entry point.
type Options struct {
	// Config holds the packaging parameters; it is validated by Run.
	Config *config.Config
	// WorkDir is the workspace root; inputs are read and outputs written relative to it.
	// Empty means the current working directory.
	WorkDir string
	// Metadata overrides the metadata source chosen from Config.
	Metadata metadata.Repository
	// Stdout receives the success summary. Nil means os.Stdout.
	Stdout io.Writer
}

// Result describes a finished packaging run.
type Result struct {
	// Layout holds the derived output names.
	Layout release.Layout
	// Binaries are the packaged binary names without executable suffix.
	Binaries []string
	// Docs are the documentation files that were staged.
	Docs []string
	// ArchivePath is the created archive.
	ArchivePath string
	// ManifestPath is the release manifest, empty unless enabled.
	ManifestPath string
}

// packager holds the state of a single run.
// It is unexported; callers use Run.
type packager struct {
	// cfg is the validated configuration.
	cfg *config.Config
	// workDir is the workspace root.
	workDir string
	// repo provides cargo metadata.
	repo metadata.Repository
	// rootManifest is the decoded root Cargo.toml, nil when it could not be read.
	rootManifest *manifest.Manifest
	// stdout receives the summary.
	stdout io.Writer
}

// Run executes the packaging workflow and prints the summary on success.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "release-packager")

	pkg, err := newPackager(opts)
	if err != nil {
		return err
	}

	result, err := pkg.Run(ctx)
	if err != nil {
		logger.ErrorKV(ctx, "Packaging failed", "error", err)
		return err
	}

	logger.InfoKV(ctx, "Packaging completed", "archive", result.ArchivePath)

	return nil
}

// newPackager validates opts before any filesystem or subprocess work.
func newPackager(opts *Options) (*packager, error) {
	if opts == nil {
		return nil, fmt.Errorf("%w: options are not set", ErrConfiguration)
	}

	if err := config.Validate(opts.Config); err != nil {
		return nil, err
	}

	workDir := opts.WorkDir
	if workDir == "" {
		workDir = "."
	}

	repo := opts.Metadata
	if repo == nil {
		if opts.Config.MetadataFile != "" {
			repo = metadata.NewFileRepository(filepath.Join(workDir, opts.Config.MetadataFile))
		} else {
			repo = metadata.NewCargoRepository(opts.Config.Cargo, workDir)
		}
	}

	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	return &packager{
		cfg:     opts.Config,
		workDir: workDir,
		repo:    repo,
		stdout:  stdout,
	}, nil
}

// Run performs discovery, resolution, staging and archiving in order.
func (p *packager) Run(ctx context.Context) (*Result, error) {
	rootPkg, err := p.discoverRootPackage(ctx)
	if err != nil {
		return nil, err
	}

	layout := release.NewLayout(rootPkg.Name, p.cfg.Tag, p.cfg.AssetTarget, p.cfg.ArchiveExt)
	ctx = logger.WithKV(ctx, "package", layout.PackageName, "tag", layout.Tag, "target", layout.AssetTarget)

	detected := rootPkg.BinaryTargets()

	names, err := ResolveBinNames(p.cfg.BinNames, detected)
	if err != nil {
		if p.rootManifest != nil && p.rootManifest.IsVirtual() {
			err = withWorkspaceHint(err, p.cfg.Manifest, rootPkg.Name)
		}

		return nil, err
	}

	logger.InfoKV(ctx, "Resolved binaries", "binaries", names, "detected", detected)

	p.warnRunningBuilds(ctx)

	candidates := CandidateTargetDirs(p.cfg.BuildTarget, p.cfg.RustTarget)
	logger.DebugKV(ctx, "Searching target directories", "candidates", candidates)

	located, missing := LocateBinaries(p.workDir, names, candidates, layout.ExecutableSuffix())
	if len(missing) > 0 {
		return nil, &MissingBinariesError{
			Missing:  missing,
			Detected: detected,
			Searched: SearchedDirs(candidates),
		}
	}

	stagingDir := filepath.Join(p.workDir, layout.StagingDir())
	if err = resetDir(stagingDir); err != nil {
		return nil, err
	}

	if err = stageBinaries(ctx, stagingDir, located); err != nil {
		return nil, err
	}

	docs, err := stageDocs(ctx, p.workDir, stagingDir)
	if err != nil {
		return nil, err
	}

	archivePath := filepath.Join(p.workDir, layout.ArchiveName())

	logger.InfoKV(ctx, "Creating archive", "path", archivePath, "format", layout.ArchiveExt)

	if err = archive.Create(p.cfg.Format(), archivePath, stagingDir); err != nil {
		return nil, err
	}

	result := &Result{
		Layout:      layout,
		Binaries:    names,
		Docs:        docs,
		ArchivePath: archivePath,
	}

	if p.cfg.WriteManifest {
		if result.ManifestPath, err = p.writeManifest(ctx, result, rootPkg.Version, stagingDir); err != nil {
			return nil, err
		}
	}

	if err = p.printSummary(result); err != nil {
		return nil, err
	}

	return result, nil
}

// discoverRootPackage loads metadata and selects the package to release.
func (p *packager) discoverRootPackage(ctx context.Context) (*release.Package, error) {
	rootManifest := filepath.Join(p.workDir, p.cfg.Manifest)
	p.rootManifest = p.inspectRootManifest(ctx, rootManifest)

	logger.Info(ctx, "Loading cargo metadata")

	meta, err := p.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDiscovery, err)
	}

	rootPkg, err := ChooseRootPackage(meta, rootManifest)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDiscovery, err)
	}

	logger.InfoKV(ctx, "Selected root package", "name", rootPkg.Name, "manifest", rootPkg.ManifestPath)

	return rootPkg, nil
}

// inspectRootManifest decodes the root manifest for diagnostics.
// Problems reading it are not fatal: cargo metadata stays authoritative.
func (p *packager) inspectRootManifest(ctx context.Context, path string) *manifest.Manifest {
	m, err := manifest.Read(path)
	if err != nil {
		logger.DebugKV(ctx, "Root manifest not inspected", "path", path, "error", err)
		return nil
	}

	if m.IsVirtual() {
		logger.InfoKV(ctx, "Root manifest is a virtual workspace, selecting the root package from workspace members",
			"members", m.Workspace.Members, "default_members", m.Workspace.DefaultMembers)
	}

	return m
}

// warnRunningBuilds logs cargo or rustc processes that may still be writing artifacts.
func (p *packager) warnRunningBuilds(ctx context.Context) {
	running, err := common.RunningProcesses(common.BuildProcessNames...)
	if err != nil {
		logger.DebugKV(ctx, "Unable to inspect running processes", "error", err)
		return
	}

	if len(running) > 0 {
		logger.WarnKV(ctx, "Build processes are still running, binaries may be incomplete", "processes", running)
	}
}

// writeManifest writes the YAML release manifest next to the archive.
func (p *packager) writeManifest(ctx context.Context, result *Result, pkgVersion, stagingDir string) (string, error) {
	m, err := newReleaseManifest(result.Layout, pkgVersion, result.Binaries, stagingDir, result.ArchivePath)
	if err != nil {
		return "", err
	}

	path := result.ArchivePath + ManifestSuffix
	if err = os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("remove previous release manifest: %w", err)
	}

	if err = writeReleaseManifest(path, m); err != nil {
		return "", err
	}

	logger.InfoKV(ctx, "Release manifest written", "path", path)

	return path, nil
}

// printSummary writes the two summary lines consumed by the publishing step.
func (p *packager) printSummary(result *Result) error {
	_, err := fmt.Fprintf(p.stdout, "Packaged bins: %s\nCreated: %s\n",
		strings.Join(result.Binaries, ", "), result.ArchivePath)
	if err != nil {
		return fmt.Errorf("print summary: %w", err)
	}

	return nil
}
