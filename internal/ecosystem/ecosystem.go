// SPDX-License-Identifier: MPL-2.0

// Package ecosystem describes the source-language ecosystems codegrab can
// detect. An ecosystem is pure configuration: a marker predicate used to find
// the project root and a file extension used to collect its sources.
package ecosystem

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/codegrab/codegrab/internal/discovery"
)

const (
	// Rust is the built-in Rust ecosystem name.
	Rust = "rust"
	// Python is the built-in Python ecosystem name.
	Python = "python"
	// Go is the built-in Go ecosystem name.
	Go = "go"
)

var (
	// ErrUnknownEcosystem is returned when a name does not resolve to an ecosystem.
	ErrUnknownEcosystem = errors.New("unknown ecosystem")
	// ErrDuplicateEcosystem is returned when two definitions share a name.
	ErrDuplicateEcosystem = errors.New("duplicate ecosystem")
	// ErrInvalidDefinition is returned when a Definition cannot produce an ecosystem.
	ErrInvalidDefinition = errors.New("invalid ecosystem definition")

	namePattern = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)
)

type (
	// Ecosystem couples a project marker with the extension of its sources.
	Ecosystem struct {
		// Name is the lowercase identifier used in config and project_info.toml.
		Name string
		// DisplayName is used in console messages (e.g., "Rust").
		DisplayName string
		// Extension is the source extension without the leading dot.
		Extension string
		// Marker decides whether a directory is a project root.
		Marker discovery.Marker
	}

	// Definition is the declarative form of an ecosystem, as written in the
	// config file. Every non-empty "All" list must be fully present; if any
	// "Any" entry is set, at least one of them must also be present.
	Definition struct {
		Name        string
		DisplayName string
		Extension   string
		FilesAll    []string
		DirsAll     []string
		FilesAny    []string
		DirsAny     []string
		TopLevelExt bool
	}
)

// Builtins returns the built-in ecosystems in default priority order: Rust,
// Python, Go.
func Builtins() []Ecosystem {
	return []Ecosystem{
		{
			Name:        Rust,
			DisplayName: "Rust",
			Extension:   "rs",
			Marker:      discovery.AllOf(discovery.Exists("Cargo.toml"), discovery.HasDir("src")),
		},
		{
			Name:        Python,
			DisplayName: "Python",
			Extension:   "py",
			Marker: discovery.AnyOf(
				discovery.Exists("requirements.txt"),
				discovery.Exists("setup.py"),
				discovery.HasTopLevelExt("py"),
			),
		},
		{
			Name:        Go,
			DisplayName: "Go",
			Extension:   "go",
			Marker:      discovery.AnyOf(discovery.Exists("go.mod"), discovery.HasDir("src")),
		},
	}
}

// Label returns the display name, falling back to Name.
func (e Ecosystem) Label() string {
	if e.DisplayName != "" {
		return e.DisplayName
	}
	return e.Name
}

// Glob returns the doublestar pattern matching the ecosystem's sources.
func (e Ecosystem) Glob() string {
	return "**/*." + e.Extension
}

// Validate checks the Definition fields.
func (d Definition) Validate() error {
	var problems []string
	if !namePattern.MatchString(d.Name) {
		problems = append(problems, fmt.Sprintf("name %q must match %s", d.Name, namePattern))
	}
	ext := strings.TrimPrefix(d.Extension, ".")
	if ext == "" || strings.ContainsAny(ext, `/\`) {
		problems = append(problems, fmt.Sprintf("extension %q is not a file extension", d.Extension))
	}
	if len(d.FilesAll)+len(d.DirsAll)+len(d.FilesAny)+len(d.DirsAny) == 0 && !d.TopLevelExt {
		problems = append(problems, "at least one marker (files_all, dirs_all, files_any, dirs_any, top_level_ext) is required")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w %q: %s", ErrInvalidDefinition, d.Name, strings.Join(problems, "; "))
	}
	return nil
}

// Build turns a Definition into an Ecosystem.
func (d Definition) Build() (Ecosystem, error) {
	if err := d.Validate(); err != nil {
		return Ecosystem{}, err
	}
	ext := strings.TrimPrefix(d.Extension, ".")

	var all []discovery.Marker
	for _, f := range d.FilesAll {
		all = append(all, discovery.HasFile(f))
	}
	for _, dir := range d.DirsAll {
		all = append(all, discovery.HasDir(dir))
	}

	var anyOf []discovery.Marker
	for _, f := range d.FilesAny {
		anyOf = append(anyOf, discovery.HasFile(f))
	}
	for _, dir := range d.DirsAny {
		anyOf = append(anyOf, discovery.HasDir(dir))
	}
	if d.TopLevelExt {
		anyOf = append(anyOf, discovery.HasTopLevelExt(ext))
	}

	var marker discovery.Marker
	switch {
	case len(all) > 0 && len(anyOf) > 0:
		marker = discovery.AllOf(append(all, discovery.AnyOf(anyOf...))...)
	case len(all) > 0:
		marker = discovery.AllOf(all...)
	default:
		marker = discovery.AnyOf(anyOf...)
	}

	return Ecosystem{
		Name:        d.Name,
		DisplayName: d.DisplayName,
		Extension:   ext,
		Marker:      marker,
	}, nil
}
