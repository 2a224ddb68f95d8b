package mediator

import (
	"fmt"
	"os"
	"path/filepath"
)

// changelogFilename is the single file materialized inside each workspace.
const changelogFilename = "changelog.xml"

// workspace is an exclusively-owned temporary directory holding the
// materialized changelog for one invocation. It is never shared across
// invocations.
type workspace struct {
	dir  string
	file string
	log  Logger
}

// acquireWorkspace creates a uniquely-named temporary directory under root
// (the default temp directory when root is empty) and an empty changelog.xml
// inside it. On failure nothing is left behind and there is nothing for the
// caller to release.
func acquireWorkspace(root string, log Logger) (*workspace, error) {
	dir, err := os.MkdirTemp(root, "changelog")
	if err != nil {
		return nil, &WorkspaceError{Err: err}
	}
	file := filepath.Join(dir, changelogFilename)
	f, err := os.OpenFile(file, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		if rerr := os.Remove(dir); rerr != nil {
			log.Printf("failed to remove changelog directory %s: %v", dir, rerr)
		}
		return nil, &WorkspaceError{Err: err}
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(file)
		_ = os.Remove(dir)
		return nil, &WorkspaceError{Err: err}
	}
	return &workspace{dir: dir, file: file, log: log}, nil
}

// writeChangeLog writes the changelog text to the workspace file as UTF-8.
func (w *workspace) writeChangeLog(text string) error {
	if err := os.WriteFile(w.file, []byte(text), 0o600); err != nil {
		return &IOError{Err: fmt.Errorf("write %s: %w", w.file, err)}
	}
	return nil
}

// release deletes the changelog file and its directory. Deletion failures are
// logged and swallowed; by this point the migration outcome is already
// decided and a leftover temp file must not change it.
func (w *workspace) release() {
	if err := os.Remove(w.file); err != nil && !os.IsNotExist(err) {
		w.log.Printf("failed to delete changelog file %s: %v", w.file, err)
	}
	if err := os.Remove(w.dir); err != nil && !os.IsNotExist(err) {
		w.log.Printf("failed to delete changelog directory %s: %v", w.dir, err)
	}
}
