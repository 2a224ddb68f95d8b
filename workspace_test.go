package mediator

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWorkspace(t *testing.T) {
	t.Parallel()
	root := t.TempDir()

	ws, err := acquireWorkspace(root, NopLogger())
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(filepath.Base(ws.dir), "changelog"))
	require.Equal(t, filepath.Join(ws.dir, "changelog.xml"), ws.file)

	// The file exists, empty, before anything is written.
	info, err := os.Stat(ws.file)
	require.NoError(t, err)
	require.Zero(t, info.Size())

	require.NoError(t, ws.writeChangeLog("<databaseChangeLog/>"))
	data, err := os.ReadFile(ws.file)
	require.NoError(t, err)
	require.Equal(t, "<databaseChangeLog/>", string(data))

	ws.release()
	requireEmptyDir(t, root)
	// Releasing twice is harmless.
	ws.release()
}

func TestWorkspaceWriteFailure(t *testing.T) {
	t.Parallel()
	root := t.TempDir()

	ws, err := acquireWorkspace(root, NopLogger())
	require.NoError(t, err)
	// Turn the changelog file into a directory so the write fails.
	require.NoError(t, os.Remove(ws.file))
	require.NoError(t, os.Mkdir(ws.file, 0o700))

	err = ws.writeChangeLog("<databaseChangeLog/>")
	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)

	// Release still cleans up everything the workspace holds.
	ws.release()
	requireEmptyDir(t, root)
}

func TestWorkspaceUnique(t *testing.T) {
	t.Parallel()
	root := t.TempDir()

	a, err := acquireWorkspace(root, NopLogger())
	require.NoError(t, err)
	defer a.release()
	b, err := acquireWorkspace(root, NopLogger())
	require.NoError(t, err)
	defer b.release()

	require.NotEqual(t, a.dir, b.dir)
}

func TestWorkspaceBadRoot(t *testing.T) {
	t.Parallel()
	_, err := acquireWorkspace(filepath.Join(t.TempDir(), "does-not-exist"), NopLogger())
	var wsErr *WorkspaceError
	require.ErrorAs(t, err, &wsErr)
}
