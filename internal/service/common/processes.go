//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"os"
	"slices"
	"strings"

	"github.com/mitchellh/go-ps"
)

// BuildProcessNames are executables whose presence means a build may still be running.
//
//nolint:gochecknoglobals // Read-only list.
var BuildProcessNames = []string{"cargo", "rustc", "cargo-zigbuild", "cross"}

// RunningProcesses returns the running executables whose name matches one of
// names, ignoring case and a trailing ".exe". The current process is skipped.
// Each matching name is reported once, in process table order.
func RunningProcesses(names ...string) ([]string, error) {
	wanted := make(map[string]struct{}, len(names))
	for _, name := range names {
		wanted[normalizeExecutable(name)] = struct{}{}
	}

	processList, err := ps.Processes()
	if err != nil {
		return nil, err
	}

	thisProcessID := os.Getpid()

	var found []string

	for _, process := range processList {
		if process.Pid() == thisProcessID {
			continue
		}

		name := normalizeExecutable(process.Executable())
		if _, ok := wanted[name]; !ok || slices.Contains(found, name) {
			continue
		}

		found = append(found, name)
	}

	return found, nil
}

// normalizeExecutable lowercases name and strips a Windows ".exe" suffix.
func normalizeExecutable(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))

	return strings.TrimSuffix(name, ".exe")
}
