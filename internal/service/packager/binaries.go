package packager

import (
	"os"
	"path"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"unicode"
)

const (
	// targetDirectory is cargo's build output root, relative to the workspace.
	targetDirectory = "target"
	// releaseProfile is the profile subdirectory holding release binaries.
	releaseProfile = "release"
)

// versionSuffix matches a trailing ".<major>.<minor>" such as the glibc
// version cargo-zigbuild appends to target triples.
var versionSuffix = regexp.MustCompile(`^(.*)\.\d+\.\d+$`)

// ParseBinNames returns the names in override, split on commas and
// whitespace, or detected when override is blank.
func ParseBinNames(override string, detected []string) []string {
	override = strings.TrimSpace(override)
	if override == "" {
		return detected
	}

	return strings.FieldsFunc(override, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}

// ResolveBinNames is ParseBinNames that fails when nothing is left to package.
func ResolveBinNames(override string, detected []string) ([]string, error) {
	names := ParseBinNames(override, detected)
	if len(names) == 0 {
		return nil, newResolutionError(detected)
	}

	return names, nil
}

// CandidateTargetDirs lists the target subdirectories to search, most
// specific first: buildTarget, rustTarget, then buildTarget without a
// trailing ".<int>.<int>". Empty and repeated entries are skipped; order
// decides which copy of a binary wins.
func CandidateTargetDirs(buildTarget, rustTarget string) []string {
	var candidates []string

	add := func(dir string) {
		if dir != "" && !slices.Contains(candidates, dir) {
			candidates = append(candidates, dir)
		}
	}

	buildTarget = strings.TrimSpace(buildTarget)

	add(buildTarget)
	add(strings.TrimSpace(rustTarget))

	if m := versionSuffix.FindStringSubmatch(buildTarget); m != nil {
		add(m[1])
	}

	return candidates
}

// SearchedDirs renders candidates as "target/<dir>/release" for diagnostics.
func SearchedDirs(candidates []string) []string {
	dirs := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		dirs = append(dirs, path.Join(targetDirectory, candidate, releaseProfile))
	}

	return dirs
}

// LocatedBinary is a binary found on disk.
type LocatedBinary struct {
	// FileName is the binary name including the executable suffix.
	FileName string
	// Path is where the binary was found.
	Path string
	// Candidate is the target directory that contained it.
	Candidate string
}

// LocateBinaries looks up every name under workDir/target/<candidate>/release
// and returns the first match per name plus the file names nobody matched.
func LocateBinaries(workDir string, names, candidates []string, suffix string) ([]LocatedBinary, []string) {
	var (
		located []LocatedBinary
		missing []string
	)

	for _, name := range names {
		fileName := name + suffix

		found := false

		for _, candidate := range candidates {
			p := filepath.Join(workDir, targetDirectory, candidate, releaseProfile, fileName)
			if isFile(p) {
				located = append(located, LocatedBinary{
					FileName:  fileName,
					Path:      p,
					Candidate: candidate,
				})
				found = true

				break
			}
		}

		if !found {
			missing = append(missing, fileName)
		}
	}

	return located, missing
}

func isFile(p string) bool {
	info, err := os.Stat(p)

	return err == nil && !info.IsDir()
}
