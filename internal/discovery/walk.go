// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
)

type (
	// WalkOptions tunes CollectFiles.
	WalkOptions struct {
		// Ignore are doublestar globs matched against slash-separated paths
		// relative to the walk root. Matching directories are pruned and
		// matching files dropped.
		Ignore []string
		// Logger receives debug lines for skipped entries. nil disables logging.
		Logger *log.Logger
	}

	// FileSet is the ordered result of CollectFiles.
	FileSet struct {
		// Root is the directory that was walked.
		Root string
		// Files are the matched file paths (Root joined with the relative
		// path) in walk order.
		Files []string
		// Diagnostics describe entries skipped during the walk.
		Diagnostics []Diagnostic
	}
)

// ErrInvalidIgnorePattern is returned when an ignore glob cannot be parsed.
var ErrInvalidIgnorePattern = errors.New("invalid ignore pattern")

// ValidateIgnorePatterns checks that every pattern is a valid doublestar glob.
func ValidateIgnorePatterns(patterns []string) error {
	for _, pat := range patterns {
		if !doublestar.ValidatePattern(pat) {
			return fmt.Errorf("%w: %q", ErrInvalidIgnorePattern, pat)
		}
	}
	return nil
}

// CollectFiles walks root recursively in lexical order and returns every
// regular file whose extension equals ext exactly. Unreadable entries are
// skipped and reported as diagnostics rather than aborting the walk.
func CollectFiles(fsys afero.Fs, root, ext string, opts WalkOptions) FileSet {
	set := FileSet{Root: root}
	logger := opts.Logger

	record := func(d Diagnostic) {
		set.Diagnostics = append(set.Diagnostics, d)
		if logger != nil {
			logger.Debug("skipping entry", "path", d.Path, "code", d.Code, "err", d.Cause)
		}
	}

	_ = afero.Walk(fsys, root, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			severity, code := SeverityWarning, CodeWalkEntrySkipped
			if path == root {
				severity, code = SeverityError, CodeWalkRootUnreadable
			}
			record(Diagnostic{
				Severity: severity,
				Code:     code,
				Message:  fmt.Sprintf("cannot read %s: %v", path, walkErr),
				Path:     path,
				Cause:    walkErr,
			})
			return nil //nolint:nilerr // unreadable entries are skipped
		}

		rel, err := filepath.Rel(root, path)
		if err != nil || rel == "." {
			return nil //nolint:nilerr // the root itself is never matched
		}
		rel = filepath.ToSlash(rel)

		if info.IsDir() {
			if isIgnored(opts.Ignore, rel) || isIgnored(opts.Ignore, rel+"/") {
				record(Diagnostic{
					Severity: SeverityWarning,
					Code:     CodeIgnoredByPattern,
					Message:  fmt.Sprintf("ignoring directory %s", rel),
					Path:     path,
				})
				return filepath.SkipDir
			}
			return nil
		}

		if !info.Mode().IsRegular() {
			return nil
		}
		if got, ok := Extension(info.Name()); !ok || got != ext {
			return nil
		}
		if isIgnored(opts.Ignore, rel) {
			return nil
		}
		set.Files = append(set.Files, path)
		return nil
	})

	return set
}

// isIgnored reports whether rel matches any ignore pattern.
func isIgnored(patterns []string, rel string) bool {
	for _, pat := range patterns {
		if matched, err := doublestar.Match(pat, rel); err == nil && matched {
			return true
		}
	}
	return false
}
