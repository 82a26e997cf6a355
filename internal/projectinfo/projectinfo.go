// SPDX-License-Identifier: MPL-2.0

// Package projectinfo reads the optional project_info.toml anchor file.
//
// When present in the start directory or one of its two parents, the
// directory holding project_info.toml becomes the origin of ecosystem
// detection. The file may also pin an ecosystem and add ignore patterns;
// any other keys are left alone.
package projectinfo

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/codegrab/codegrab/internal/discovery"
	"github.com/codegrab/codegrab/internal/issue"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
)

const (
	// FileName is the anchor file name.
	FileName = "project_info.toml"
	// LoadOperation names the ActionableError operation for load failures.
	LoadOperation = "load project info"
)

// Info is the subset of project_info.toml codegrab understands.
type Info struct {
	// Dir is the directory holding the file.
	Dir string `toml:"-"`
	// Name is an optional project name, used in console output only.
	Name string `toml:"name"`
	// Ecosystem restricts detection to a single ecosystem when set.
	Ecosystem string `toml:"ecosystem"`
	// Ignore adds doublestar ignore patterns to the walk.
	Ignore []string `toml:"ignore"`
}

// Find returns the closest directory, among start and its two parents, that
// contains project_info.toml. Directories that could not be checked are
// reported as diagnostics.
func Find(fsys afero.Fs, start string) (string, bool, []discovery.Diagnostic) {
	return discovery.NewLocator(fsys).Locate(start, discovery.HasFile(FileName))
}

// Load parses dir/project_info.toml.
func Load(fsys afero.Fs, dir string) (*Info, error) {
	path := filepath.Join(dir, FileName)
	errCtx := issue.NewErrorContext().
		WithOperation(LoadOperation).
		WithResource(path)

	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, errCtx.Wrap(err).BuildError()
	}

	var info Info
	if err := toml.Unmarshal(data, &info); err != nil {
		var decErr *toml.DecodeError
		if errors.As(err, &decErr) {
			row, col := decErr.Position()
			err = fmt.Errorf("line %d, column %d: %w", row, col, err)
		}
		return nil, errCtx.
			WithSuggestion("Check the TOML syntax").
			Wrap(err).
			BuildError()
	}
	if err := discovery.ValidateIgnorePatterns(info.Ignore); err != nil {
		return nil, errCtx.
			WithSuggestion("Fix the ignore patterns; they use doublestar glob syntax").
			Wrap(err).
			BuildError()
	}

	info.Dir = dir
	return &info, nil
}
