// SPDX-License-Identifier: MPL-2.0

package discovery

import "slices"

const (
	// SeverityWarning indicates a recoverable discovery warning.
	SeverityWarning Severity = "warning"
	// SeverityError indicates a non-fatal discovery error diagnostic.
	SeverityError Severity = "error"

	// CodeWalkEntrySkipped reports an entry the walk could not stat or list.
	CodeWalkEntrySkipped DiagnosticCode = "walk_entry_skipped"
	// CodeWalkRootUnreadable reports a walk root that could not be opened.
	CodeWalkRootUnreadable DiagnosticCode = "walk_root_unreadable"
	// CodeIgnoredByPattern reports a directory pruned by an ignore glob.
	CodeIgnoredByPattern DiagnosticCode = "ignored_by_pattern"
	// CodeMarkerCheckFailed reports a marker predicate that hit a filesystem error.
	CodeMarkerCheckFailed DiagnosticCode = "marker_check_failed"
)

type (
	// Severity represents discovery diagnostic severity.
	Severity string

	// DiagnosticCode is a machine-readable identifier for a diagnostic.
	DiagnosticCode string

	// Diagnostic represents a structured discovery diagnostic that is returned
	// to callers (rather than written to stderr) for consistent rendering policy.
	Diagnostic struct {
		// Severity is the diagnostic level (warning or error).
		Severity Severity
		// Code is a machine-readable identifier (e.g., "walk_entry_skipped").
		Code DiagnosticCode
		// Message is the human-readable description.
		Message string
		// Path is the file path associated with this diagnostic (optional).
		Path string
		// Cause is the underlying error (optional, for programmatic inspection).
		Cause error
	}
)

// CountSkipped returns how many diagnostics describe entries the walk could
// not read. Entries pruned by ignore patterns are deliberate and not counted.
func CountSkipped(diags []Diagnostic) int {
	return Count(diags, CodeWalkEntrySkipped, CodeWalkRootUnreadable)
}

// Count returns how many diagnostics carry one of codes.
func Count(diags []Diagnostic, codes ...DiagnosticCode) int {
	n := 0
	for _, d := range diags {
		if slices.Contains(codes, d.Code) {
			n++
		}
	}
	return n
}
