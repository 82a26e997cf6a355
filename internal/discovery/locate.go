// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// MaxSearchLevels is the number of directories a Locator inspects: the start
// directory plus two ancestors.
const MaxSearchLevels = 3

// Locator searches a start directory and its nearest ancestors for the first
// directory satisfying a Marker.
type Locator struct {
	fsys   afero.Fs
	levels int
}

// NewLocator creates a Locator over fsys that inspects MaxSearchLevels
// directories.
func NewLocator(fsys afero.Fs) *Locator {
	return &Locator{fsys: fsys, levels: MaxSearchLevels}
}

// Locate tests marker against start, then against each parent in turn, for at
// most MaxSearchLevels directories. It returns the first (closest) matching
// directory. The search stops early at the filesystem root.
//
// A marker check that fails with anything other than a missing entry counts
// as no match and is returned as a CodeMarkerCheckFailed diagnostic.
func (l *Locator) Locate(start string, marker Marker) (string, bool, []Diagnostic) {
	var diags []Diagnostic
	dir := filepath.Clean(start)
	for range l.levels {
		ok, err := marker.Match(l.fsys, dir)
		if err != nil {
			diags = append(diags, Diagnostic{
				Severity: SeverityWarning,
				Code:     CodeMarkerCheckFailed,
				Message:  fmt.Sprintf("cannot check %s: %v", marker, err),
				Path:     dir,
				Cause:    err,
			})
		}
		if ok {
			return dir, true, diags
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, diags
}
