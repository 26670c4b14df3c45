package release

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestPackage_BinaryTargets verifies only bin targets are returned, in declaration order.
func TestPackage_BinaryTargets(t *testing.T) {
	t.Parallel()

	pkg := &Package{
		Name: "mytool",
		Targets: []Target{
			{Name: "mytool", Kind: []string{"lib"}},
			{Name: "foo", Kind: []string{"bin"}},
			{Name: "build-script-build", Kind: []string{"custom-build"}},
			{Name: "bar", Kind: []string{"bin"}},
		},
	}

	require.Equal(t, []string{"foo", "bar"}, pkg.BinaryTargets())
	require.Empty(t, (&Package{Name: "lib-only"}).BinaryTargets())
}

// TestMetadata_RootMemberIDs checks the default-members then members fallback.
func TestMetadata_RootMemberIDs(t *testing.T) {
	t.Parallel()

	meta := &Metadata{WorkspaceMembers: []string{"a", "b"}}
	require.Equal(t, []string{"a", "b"}, meta.RootMemberIDs())

	meta.WorkspaceDefaultMembers = []string{"b"}
	require.Equal(t, []string{"b"}, meta.RootMemberIDs())

	meta.Packages = []Package{{ID: "a"}, {ID: "b", Name: "bee"}}
	require.Equal(t, "bee", meta.FindPackage("b").Name)
	require.Nil(t, meta.FindPackage("c"))
}

// TestLayout verifies derived names and the executable suffix.
func TestLayout(t *testing.T) {
	t.Parallel()

	l := NewLayout("mytool", "v1.0.0", "x86_64-unknown-linux-gnu", "tar.gz")
	require.Equal(t, "mytool-v1.0.0-x86_64-unknown-linux-gnu", l.OutName())
	require.Equal(t, filepath.Join("dist", "mytool-v1.0.0-x86_64-unknown-linux-gnu"), l.StagingDir())
	require.Equal(t, "mytool-v1.0.0-x86_64-unknown-linux-gnu.tar.gz", l.ArchiveName())
	require.Empty(t, l.ExecutableSuffix())

	l = NewLayout("", "v2", "x86_64-pc-windows-msvc", "zip")
	require.Equal(t, "package-v2-x86_64-pc-windows-msvc.zip", l.ArchiveName())
	require.Equal(t, ".exe", l.ExecutableSuffix())

	require.Empty(t, ExecutableSuffix("x86_64-pc-windows-gnu"))
	require.Empty(t, ExecutableSuffix("windows-msvc-extra"))
}
