package metadata

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleMetadata = `{
  "packages": [
    {
      "name": "mytool",
      "version": "1.0.0",
      "id": "path+file:///work/mytool#1.0.0",
      "manifest_path": "/work/mytool/Cargo.toml",
      "targets": [
        {"kind": ["lib"], "crate_types": ["lib"], "name": "mytool", "src_path": "/work/mytool/src/lib.rs"},
        {"kind": ["bin"], "crate_types": ["bin"], "name": "mytool", "src_path": "/work/mytool/src/main.rs"}
      ]
    }
  ],
  "workspace_members": ["path+file:///work/mytool#1.0.0"],
  "workspace_default_members": ["path+file:///work/mytool#1.0.0"],
  "target_directory": "/work/mytool/target",
  "version": 1,
  "workspace_root": "/work/mytool"
}`

// writeFakeCargo creates an executable shell script standing in for cargo.
// Tests using it do not run in parallel: executing a freshly written file while
// another test forks can fail with "text file busy".
func writeFakeCargo(t *testing.T, body string) string {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("fake cargo is a shell script")
	}

	path := filepath.Join(t.TempDir(), "cargo")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755)) //nolint:gosec // Test executable.

	return path
}

// TestDecode parses the fields the packager relies on and ignores the rest.
func TestDecode(t *testing.T) {
	t.Parallel()

	meta, err := Decode([]byte(sampleMetadata))
	require.NoError(t, err)
	require.Len(t, meta.Packages, 1)

	pkg := meta.Packages[0]
	require.Equal(t, "mytool", pkg.Name)
	require.Equal(t, "/work/mytool/Cargo.toml", pkg.ManifestPath)
	require.Equal(t, []string{"mytool"}, pkg.BinaryTargets())
	require.Equal(t, []string{"path+file:///work/mytool#1.0.0"}, meta.WorkspaceDefaultMembers)
	require.Equal(t, "/work/mytool", meta.WorkspaceRoot)

	_, err = Decode([]byte("warning: not json"))
	require.Error(t, err)
}

// TestFileRepository loads metadata from disk and reports missing files.
func TestFileRepository(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "metadata.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleMetadata), 0o600))

	meta, err := NewFileRepository(path).Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, "mytool", meta.Packages[0].Name)

	_, err = NewFileRepository(filepath.Join(t.TempDir(), "missing.json")).Load(context.Background())
	require.ErrorIs(t, err, os.ErrNotExist)
}

// TestCargoRepository_Success runs a fake cargo that prints metadata and checks its arguments.
func TestCargoRepository_Success(t *testing.T) {
	dir := t.TempDir()
	argsFile := filepath.Join(dir, "args.txt")
	jsonFile := filepath.Join(dir, "metadata.json")
	require.NoError(t, os.WriteFile(jsonFile, []byte(sampleMetadata), 0o600))

	cargo := writeFakeCargo(t, `echo "$@" > "`+argsFile+`"
cat "`+jsonFile+`"
`)

	meta, err := NewCargoRepository(cargo, dir).Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, "mytool", meta.Packages[0].Name)

	args, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	require.Equal(t, "metadata --no-deps --format-version 1\n", string(args))
}

// TestCargoRepository_Failure propagates the exit status and stderr of cargo.
func TestCargoRepository_Failure(t *testing.T) {
	cargo := writeFakeCargo(t, `echo "error: could not find Cargo.toml" >&2
exit 101
`)

	_, err := NewCargoRepository(cargo, t.TempDir()).Load(context.Background())
	require.ErrorIs(t, err, ErrCargoFailed)
	require.ErrorContains(t, err, "could not find Cargo.toml")
	require.ErrorContains(t, err, "exit status 101")
}

// TestCargoRepository_Unavailable reports a missing cargo executable.
func TestCargoRepository_Unavailable(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "no-such-cargo")

	_, err := NewCargoRepository(missing, t.TempDir()).Load(context.Background())
	require.ErrorIs(t, err, ErrCargoFailed)
}

// TestCargoRepository_InvalidOutput fails when cargo prints something other than JSON.
func TestCargoRepository_InvalidOutput(t *testing.T) {
	cargo := writeFakeCargo(t, "echo not-json\n")

	_, err := NewCargoRepository(cargo, t.TempDir()).Load(context.Background())
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrCargoFailed)
}
