package packager

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/otiai10/copy"

	"github.com/oshokin/release-packager/internal/logger"
)

// stagingDirMode is the permission of the staging directory tree.
const stagingDirMode os.FileMode = 0o755

// DocFiles are copied from the workspace root into the staging directory when present.
//
//nolint:gochecknoglobals // Read-only list.
var DocFiles = []string{
	"README.md",
	"README.txt",
	"README",
	"LICENSE",
	"LICENSE.md",
	"LICENSE.txt",
	"LICENSE-MIT",
	"LICENSE-APACHE",
	"COPYING",
}

// copyOptions keep permissions and modification times of the source files.
// Symlinks are followed so the staged copy is the file they point to.
//
//nolint:gochecknoglobals // Immutable after init.
var copyOptions = copy.Options{
	OnSymlink: func(string) copy.SymlinkAction {
		return copy.Deep
	},
	PreserveTimes: true,
}

// resetDir removes dir with all its contents and creates it again, empty.
func resetDir(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("remove staging directory: %w", err)
	}

	if err := os.MkdirAll(dir, stagingDirMode); err != nil {
		return fmt.Errorf("create staging directory: %w", err)
	}

	return nil
}

// stageBinaries copies every located binary into dir under its bare file name.
func stageBinaries(ctx context.Context, dir string, binaries []LocatedBinary) error {
	for _, binary := range binaries {
		logger.InfoKV(ctx, "Staging binary", "file", binary.FileName, "from", binary.Path)

		if err := copy.Copy(binary.Path, filepath.Join(dir, binary.FileName), copyOptions); err != nil {
			return fmt.Errorf("copy %s: %w", binary.FileName, err)
		}
	}

	return nil
}

// stageDocs copies the DocFiles that exist in workDir into dir and returns their names.
func stageDocs(ctx context.Context, workDir, dir string) ([]string, error) {
	var staged []string

	for _, name := range DocFiles {
		src := filepath.Join(workDir, name)

		info, err := os.Stat(src)
		if errors.Is(err, os.ErrNotExist) {
			continue
		} else if err != nil {
			return staged, fmt.Errorf("stat %s: %w", name, err)
		}

		if info.IsDir() {
			continue
		}

		if err = copy.Copy(src, filepath.Join(dir, name), copyOptions); err != nil {
			return staged, fmt.Errorf("copy %s: %w", name, err)
		}

		staged = append(staged, name)
	}

	if len(staged) > 0 {
		logger.DebugKV(ctx, "Staged documentation", "files", staged)
	}

	return staged, nil
}
