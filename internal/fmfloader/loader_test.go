package fmfloader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_DiscoversLeafAndInheritsDirectoryAttributes(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "main.fmf"), "tag: [base]\n")
	writeFile(t, filepath.Join(root, "smoke.fmf"), "test: ./smoke.sh\n")

	tree, err := Load(root)
	require.NoError(t, err)
	require.False(t, tree.Errors.HasFailures())
	require.Len(t, tree.Leaves, 1)

	leaf := tree.Leaves[0]
	assert.Equal(t, "/smoke", leaf.Name)
	assert.Equal(t, []interface{}{"base"}, leaf.Inherited["tag"])
	assert.Equal(t, []interface{}{"base"}, leaf.Raw["tag"])
	assert.Equal(t, "./smoke.sh", leaf.Raw["test"])
}

func TestLoad_DirectoryChainResolvesMergeMarkers(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "main.fmf"), "tag: [base]\n")
	writeFile(t, filepath.Join(root, "sub", "main.fmf"), "tag+: [extra]\n")
	writeFile(t, filepath.Join(root, "sub", "smoke.fmf"), "test: ./smoke.sh\n")

	tree, err := Load(root)
	require.NoError(t, err)
	require.Len(t, tree.Leaves, 1)

	leaf := tree.Leaves[0]
	assert.Equal(t, "/sub/smoke", leaf.Name)
	assert.Equal(t, []interface{}{"base", "extra"}, leaf.Inherited["tag"])
	assert.Equal(t, []interface{}{"base", "extra"}, leaf.Raw["tag"])
}

func TestLoad_LeafRedeclaringUnmarkedKeyOverridesDirectory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "main.fmf"), "tag: [base]\nrequire: [pkgA]\n")
	writeFile(t, filepath.Join(root, "smoke.fmf"), "test: ./smoke.sh\ntag: [override]\n")

	tree, err := Load(root)
	require.NoError(t, err)
	require.Len(t, tree.Leaves, 1)

	leaf := tree.Leaves[0]
	assert.Equal(t, []interface{}{"override"}, leaf.Raw["tag"])
	assert.Equal(t, []interface{}{"pkgA"}, leaf.Raw["require"])
}

func TestLoad_MalformedYAMLIsCollectedNotFatal(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "good.fmf"), "test: ./ok.sh\n")
	writeFile(t, filepath.Join(root, "bad.fmf"), "test: [unterminated\n")

	tree, err := Load(root)
	require.NoError(t, err)
	assert.True(t, tree.Errors.HasFailures())
	assert.Len(t, tree.Leaves, 1)
}
