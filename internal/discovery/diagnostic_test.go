// SPDX-License-Identifier: MPL-2.0

package discovery

import "testing"

func TestCountSkipped(t *testing.T) {
	t.Parallel()

	diags := []Diagnostic{
		{Code: CodeWalkEntrySkipped},
		{Code: CodeIgnoredByPattern},
		{Code: CodeWalkRootUnreadable},
		{Code: CodeMarkerCheckFailed},
	}
	if got := CountSkipped(diags); got != 2 {
		t.Errorf("CountSkipped() = %d, want 2", got)
	}
	if got := Count(diags, CodeMarkerCheckFailed); got != 1 {
		t.Errorf("Count(marker_check_failed) = %d, want 1", got)
	}
	if got := Count(diags); got != 0 {
		t.Errorf("Count() with no codes = %d, want 0", got)
	}
}
