// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

type (
	// Marker decides whether a directory holds a project of some ecosystem.
	// A missing entry is a plain miss. Any other filesystem error is returned
	// alongside false so callers can record it.
	Marker interface {
		Match(fsys afero.Fs, dir string) (bool, error)
		String() string
	}

	entryMarker struct {
		name    string
		wantDir bool
		anyKind bool
	}

	topLevelExtMarker struct {
		ext string
	}

	allMarker []Marker

	anyMarker []Marker
)

// Exists matches when an entry of any kind named name exists in the directory.
func Exists(name string) Marker {
	return entryMarker{name: name, anyKind: true}
}

// HasDir matches when name exists in the directory and is a directory.
func HasDir(name string) Marker {
	return entryMarker{name: name, wantDir: true}
}

// HasFile matches when name exists in the directory and is not a directory.
func HasFile(name string) Marker {
	return entryMarker{name: name}
}

// HasTopLevelExt matches when at least one regular file directly inside the
// directory carries the extension ext (without the leading dot). Nested
// directories are not inspected.
func HasTopLevelExt(ext string) Marker {
	return topLevelExtMarker{ext: strings.TrimPrefix(ext, ".")}
}

// AllOf matches when every marker matches. An empty AllOf never matches.
func AllOf(markers ...Marker) Marker {
	return allMarker(markers)
}

// AnyOf matches when at least one marker matches.
func AnyOf(markers ...Marker) Marker {
	return anyMarker(markers)
}

func (m entryMarker) Match(fsys afero.Fs, dir string) (bool, error) {
	info, err := fsys.Stat(filepath.Join(dir, m.name))
	if err != nil {
		return false, missingIsNil(err)
	}
	if m.anyKind {
		return true, nil
	}
	return info.IsDir() == m.wantDir, nil
}

func (m entryMarker) String() string {
	switch {
	case m.anyKind:
		return "`" + m.name + "`"
	case m.wantDir:
		return "`" + m.name + "/`"
	default:
		return "`" + m.name + "` file"
	}
}

func (m topLevelExtMarker) Match(fsys afero.Fs, dir string) (bool, error) {
	entries, err := afero.ReadDir(fsys, dir)
	if err != nil {
		return false, missingIsNil(err)
	}
	var errs []error
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext, ok := Extension(e.Name())
		if !ok || ext != m.ext {
			continue
		}
		// ReadDir may report symlinks; resolve them like a plain stat would.
		info, err := fsys.Stat(filepath.Join(dir, e.Name()))
		if err != nil {
			if err = missingIsNil(err); err != nil {
				errs = append(errs, err)
			}
			continue
		}
		if info.Mode().IsRegular() {
			return true, nil
		}
	}
	return false, errors.Join(errs...)
}

func (m topLevelExtMarker) String() string {
	return "any `*." + m.ext + "` file"
}

func (m allMarker) Match(fsys afero.Fs, dir string) (bool, error) {
	if len(m) == 0 {
		return false, nil
	}
	for _, sub := range m {
		if ok, err := sub.Match(fsys, dir); !ok {
			return false, err
		}
	}
	return true, nil
}

func (m allMarker) String() string {
	return joinMarkers(m, " and ")
}

func (m anyMarker) Match(fsys afero.Fs, dir string) (bool, error) {
	var errs []error
	for _, sub := range m {
		ok, err := sub.Match(fsys, dir)
		if ok {
			return true, nil
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	return false, errors.Join(errs...)
}

func (m anyMarker) String() string {
	return joinMarkers(m, " or ")
}

func joinMarkers(markers []Marker, sep string) string {
	parts := make([]string, len(markers))
	for i, m := range markers {
		parts[i] = m.String()
	}
	return strings.Join(parts, sep)
}

// missingIsNil drops errors that only say the entry does not exist.
func missingIsNil(err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Extension returns the extension of a file name without the leading dot.
// Names without a dot, and dot-files such as ".rs", have no extension.
func Extension(name string) (string, bool) {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 {
		return "", false
	}
	return name[i+1:], true
}
