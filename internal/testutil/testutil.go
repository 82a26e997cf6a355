// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

// MustMkdirAll creates a directory along with any necessary parents on fsys.
// The test fails immediately if the operation fails.
func MustMkdirAll(t testing.TB, fsys afero.Fs, path string) {
	t.Helper()
	if err := fsys.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("failed to create directory %s: %v", path, err)
	}
}

// MustWriteFile writes content to path on fsys, creating parent directories.
// The test fails immediately if the operation fails.
func MustWriteFile(t testing.TB, fsys afero.Fs, path, content string) {
	t.Helper()
	MustMkdirAll(t, fsys, filepath.Dir(path))
	if err := afero.WriteFile(fsys, path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// MemTree returns an in-memory filesystem holding files (path -> content)
// below root. Paths are slash-separated and relative to root; a path ending
// in "/" creates an empty directory.
func MemTree(t testing.TB, root string, files map[string]string) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	MustMkdirAll(t, fsys, root)
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if rel != "" && rel[len(rel)-1] == '/' {
			MustMkdirAll(t, fsys, p)
			continue
		}
		MustWriteFile(t, fsys, p, content)
	}
	return fsys
}
