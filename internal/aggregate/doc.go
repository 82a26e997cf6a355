// SPDX-License-Identifier: MPL-2.0

// Package aggregate concatenates the sources of one ecosystem under a project
// root into a single text blob.
//
// The blob is a sequence of records, one per file in walk order:
//
//	=== <path> ===
//	<raw contents>
//	<blank line>
//
// Record headers are not escaped. A file whose own contents contain a line of
// the form "=== x ===" is indistinguishable from a real header to a reader of
// the blob.
package aggregate
