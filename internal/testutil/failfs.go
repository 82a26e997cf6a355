// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// FailingFs wraps an afero.Fs and makes Open fail for the listed paths while
// leaving Stat untouched, so an entry is visible but unreadable. FailStat
// makes Stat fail as well.
type FailingFs struct {
	afero.Fs
	fail     map[string]error
	failStat map[string]error
}

// NewFailingFs wraps base. Use Fail and FailStat to register paths.
func NewFailingFs(base afero.Fs) *FailingFs {
	return &FailingFs{Fs: base, fail: make(map[string]error), failStat: make(map[string]error)}
}

// Fail makes Open and OpenFile on path return err (os.ErrPermission when nil).
func (f *FailingFs) Fail(path string, err error) *FailingFs {
	if err == nil {
		err = os.ErrPermission
	}
	f.fail[filepath.Clean(path)] = err
	return f
}

// FailStat makes Stat on path return err (os.ErrPermission when nil).
func (f *FailingFs) FailStat(path string, err error) *FailingFs {
	if err == nil {
		err = os.ErrPermission
	}
	f.failStat[filepath.Clean(path)] = err
	return f
}

// Stat implements afero.Fs.
func (f *FailingFs) Stat(name string) (os.FileInfo, error) {
	if err, ok := f.failStat[filepath.Clean(name)]; ok {
		return nil, &os.PathError{Op: "stat", Path: name, Err: err}
	}
	return f.Fs.Stat(name)
}

// Open implements afero.Fs.
func (f *FailingFs) Open(name string) (afero.File, error) {
	if err, ok := f.fail[filepath.Clean(name)]; ok {
		return nil, &os.PathError{Op: "open", Path: name, Err: err}
	}
	return f.Fs.Open(name)
}

// OpenFile implements afero.Fs.
func (f *FailingFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if err, ok := f.fail[filepath.Clean(name)]; ok {
		return nil, &os.PathError{Op: "open", Path: name, Err: err}
	}
	return f.Fs.OpenFile(name, flag, perm)
}
