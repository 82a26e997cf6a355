// SPDX-License-Identifier: MPL-2.0

// Package discovery locates project roots and collects source files beneath
// them.
//
// The package combines two related concerns:
//   - Project location: Locator walks upward from a start directory, testing a
//     Marker against at most MaxSearchLevels directories.
//   - File collection: CollectFiles walks a root downward and returns the
//     files carrying one extension, in a deterministic lexical order.
//
// Both operate on an afero.Fs so callers can substitute an in-memory
// filesystem. Filesystem errors never abort discovery. A marker that cannot
// be checked counts as "no match"; both the locator and the walk surface
// such errors as Diagnostic values.
//
// File organization:
//   - marker.go: Marker predicates and combinators
//   - locate.go: bounded upward search
//   - walk.go: recursive file collection
//   - diagnostic.go: non-fatal diagnostics
package discovery
