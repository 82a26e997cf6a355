// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/codegrab/codegrab/internal/aggregate"
	"github.com/codegrab/codegrab/internal/discovery"
	"github.com/codegrab/codegrab/internal/ecosystem"
	"github.com/codegrab/codegrab/internal/grab"
	"github.com/codegrab/codegrab/internal/issue"
	"github.com/codegrab/codegrab/internal/projectinfo"

	"github.com/charmbracelet/x/term"
)

// styledReporter prints grab progress with icons and the shared palette.
type styledReporter struct {
	w io.Writer
}

func (r styledReporter) ProjectInfoFound(info *projectinfo.Info) {
	label := projectinfo.FileName
	if info.Name != "" {
		label += " (" + info.Name + ")"
	}
	fmt.Fprintf(r.w, "%s Found %s in: %s\n", infoIcon, label, PathStyle.Render(info.Dir))
}

func (r styledReporter) ProjectInfoMissing(string) {
	fmt.Fprintf(r.w, "%s %s\n", warningIcon, grab.ProjectInfoMissingMessage())
}

func (r styledReporter) Detected(eco ecosystem.Ecosystem, root string) {
	fmt.Fprintf(r.w, "%s %s\n\n", infoIcon, grab.DetectedMessage(eco, root))
}

func (r styledReporter) Empty(eco ecosystem.Ecosystem) {
	fmt.Fprintf(r.w, "%s %s\n", warningIcon, grab.EmptyMessage(eco))
}

func (r styledReporter) Copied(res *aggregate.Result) {
	fmt.Fprintf(r.w, "%s %s %s\n", successIcon, SuccessStyle.Render(grab.CopiedMessage()),
		SubtitleStyle.Render(fmt.Sprintf("(%d files, %d bytes)", len(res.Files), len(res.Content))))
}

func (r styledReporter) CopyFailed(err error) {
	fmt.Fprintf(r.w, "%s Failed to copy to clipboard: %v\n", warningIcon, err)
}

func (r styledReporter) NotDetected(tried []ecosystem.Ecosystem) {
	fmt.Fprintf(r.w, "%s %s\n", warningIcon, grab.NotDetectedMessage(tried))
}

// renderDiagnostics writes locate and walk diagnostics to stderr. Without
// verbose only counts are shown.
func renderDiagnostics(w io.Writer, diags []discovery.Diagnostic, verbose bool) {
	if !verbose {
		if n := discovery.Count(diags, discovery.CodeMarkerCheckFailed); n > 0 {
			fmt.Fprintf(w, "%s: %d directories could not be checked for project markers (use --verbose for details)\n",
				WarningStyle.Render("warning"), n)
		}
		if n := discovery.CountSkipped(diags); n > 0 {
			fmt.Fprintf(w, "%s: %d unreadable entries were skipped (use --verbose for details)\n",
				WarningStyle.Render("warning"), n)
		}
		return
	}
	for _, diag := range diags {
		prefix := WarningStyle.Render("warning")
		if diag.Severity == discovery.SeverityError {
			prefix = ErrorStyle.Render("error")
		}
		if diag.Path != "" {
			fmt.Fprintf(w, "%s: %s (%s)\n", prefix, diag.Message, diag.Path)
			continue
		}
		fmt.Fprintf(w, "%s: %s\n", prefix, diag.Message)
	}
}

// renderIssue writes the catalog entry for id followed by the error details.
func renderIssue(app *App, id issue.Id, err error, verbose bool) {
	if iss := issue.Get(id); iss != nil {
		if rendered, renderErr := iss.Render(app.IssueStyle); renderErr == nil {
			fmt.Fprint(app.stderr, rendered)
		}
	}
	fmt.Fprintf(app.stderr, "%s %s\n", errorIcon, issue.Format(err, verbose))
}

// issueStyleFor picks a glamour style: colored for terminals, plain otherwise.
func issueStyleFor(w io.Writer) string {
	if f, ok := w.(*os.File); ok && term.IsTerminal(f.Fd()) {
		return "dark"
	}
	return "notty"
}
