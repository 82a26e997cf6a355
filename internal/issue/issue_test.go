// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestId_Constants(t *testing.T) {
	ids := []Id{
		NoProjectDetectedId,
		NoSourcesFoundId,
		SourceReadFailedId,
		ClipboardUnavailableId,
		ConfigLoadFailedId,
		ProjectInfoMissingId,
		ProjectInfoInvalidId,
	}

	seen := make(map[Id]bool)
	for _, id := range ids {
		if seen[id] {
			t.Errorf("duplicate ID: %d", id)
		}
		seen[id] = true
		if Get(id) == nil {
			t.Errorf("Get(%d) returned nil", id)
		}
	}

	if NoProjectDetectedId != 1 {
		t.Errorf("NoProjectDetectedId = %d, want 1", NoProjectDetectedId)
	}
}

func TestGet_EveryId(t *testing.T) {
	for id := NoProjectDetectedId; id <= ProjectInfoInvalidId; id++ {
		iss := Get(id)
		if iss == nil {
			t.Errorf("Get(%d) = nil", id)
			continue
		}
		if iss.Id() != id {
			t.Errorf("Get(%d).Id() = %d", id, iss.Id())
		}
	}
	if Get(ProjectInfoInvalidId+1) != nil {
		t.Error("Get() of an unknown id should be nil")
	}
}

func TestIssue_MarkdownMsg(t *testing.T) {
	issue := Get(NoProjectDetectedId)
	if !strings.Contains(string(issue.MarkdownMsg()), "Cargo.toml") {
		t.Error("NoProjectDetected message should mention the Rust marker")
	}
}

func TestIssue_ExtLinksIsCopy(t *testing.T) {
	issue := Get(ProjectInfoInvalidId)
	links := issue.ExtLinks()
	if len(links) == 0 {
		t.Fatal("ProjectInfoInvalid should carry a link")
	}
	links[0] = "mutated"
	if issue.ExtLinks()[0] == "mutated" {
		t.Error("ExtLinks() should return a copy")
	}
}

func TestIssue_Render(t *testing.T) {
	original := render
	t.Cleanup(func() { render = original })

	var gotStyle, gotMd string
	render = func(in, style string) (string, error) {
		gotMd, gotStyle = in, style
		return "rendered", nil
	}

	out, err := Get(ProjectInfoInvalidId).Render("notty")
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if out != "rendered" || gotStyle != "notty" {
		t.Errorf("Render() = %q with style %q", out, gotStyle)
	}
	if !strings.Contains(gotMd, "## See also:") || !strings.Contains(gotMd, "https://toml.io/en/v1.0.0") {
		t.Errorf("rendered markdown missing links section:\n%s", gotMd)
	}
}
