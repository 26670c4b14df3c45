package release

import (
	"fmt"
	"path/filepath"
	"strings"
)

const (
	// DistDirectory holds staging directories relative to the working directory.
	DistDirectory = "dist"

	// DefaultPackageName is used when the root package reports no name.
	DefaultPackageName = "package"

	// windowsMSVCMarker selects the ".exe" suffix for binaries.
	windowsMSVCMarker = "windows-msvc"

	windowsExecutableSuffix = ".exe"
)

// Layout holds the names derived for one packaging run.
type Layout struct {
	// PackageName is the root package name.
	PackageName string
	// Tag is the release tag, e.g. v1.2.3.
	Tag string
	// AssetTarget is the platform label embedded in output names.
	AssetTarget string
	// ArchiveExt is the archive extension without the leading dot.
	ArchiveExt string
}

// NewLayout builds a Layout, substituting DefaultPackageName for an empty package name.
func NewLayout(packageName, tag, assetTarget, archiveExt string) Layout {
	if packageName == "" {
		packageName = DefaultPackageName
	}

	return Layout{
		PackageName: packageName,
		Tag:         tag,
		AssetTarget: assetTarget,
		ArchiveExt:  archiveExt,
	}
}

// OutName is "{package}-{tag}-{asset_target}", the staging directory and archive root name.
func (l Layout) OutName() string {
	return fmt.Sprintf("%s-%s-%s", l.PackageName, l.Tag, l.AssetTarget)
}

// StagingDir is the staging directory relative to the working directory.
func (l Layout) StagingDir() string {
	return filepath.Join(DistDirectory, l.OutName())
}

// ArchiveName is the archive file name placed in the working directory.
func (l Layout) ArchiveName() string {
	return l.OutName() + "." + l.ArchiveExt
}

// ExecutableSuffix is ".exe" for MSVC Windows asset targets and "" otherwise.
func (l Layout) ExecutableSuffix() string {
	return ExecutableSuffix(l.AssetTarget)
}

// ExecutableSuffix returns ".exe" when assetTarget ends with the Windows MSVC marker.
func ExecutableSuffix(assetTarget string) string {
	if strings.HasSuffix(assetTarget, windowsMSVCMarker) {
		return windowsExecutableSuffix
	}

	return ""
}
