package fmfloader

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatch_ReloadsOnFileCreation(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "smoke.fmf"), "test: ./smoke.sh\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	trees, err := Watch(ctx, root)
	require.NoError(t, err)

	writeFile(t, filepath.Join(root, "other.fmf"), "test: ./other.sh\n")

	select {
	case tree := <-trees:
		require.NotNil(t, tree)
		require.Len(t, tree.Leaves, 2)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a reload after file creation")
	}
}

func TestWatch_StopsOnContextCancel(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "smoke.fmf"), "test: ./smoke.sh\n")

	ctx, cancel := context.WithCancel(context.Background())
	trees, err := Watch(ctx, root)
	require.NoError(t, err)

	cancel()

	select {
	case _, ok := <-trees:
		require.False(t, ok, "channel should close once the context is canceled")
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the watch channel to close")
	}
}
