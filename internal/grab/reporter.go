// SPDX-License-Identifier: MPL-2.0

package grab

import (
	"fmt"
	"io"
	"strings"

	"github.com/codegrab/codegrab/internal/aggregate"
	"github.com/codegrab/codegrab/internal/ecosystem"
	"github.com/codegrab/codegrab/internal/projectinfo"
)

type (
	// Reporter receives progress events from a run, in order.
	Reporter interface {
		ProjectInfoFound(info *projectinfo.Info)
		ProjectInfoMissing(origin string)
		Detected(eco ecosystem.Ecosystem, root string)
		Empty(eco ecosystem.Ecosystem)
		Copied(res *aggregate.Result)
		CopyFailed(err error)
		NotDetected(tried []ecosystem.Ecosystem)
	}

	// TextReporter writes plain status lines to W.
	TextReporter struct {
		W io.Writer
	}
)

func (r TextReporter) ProjectInfoFound(info *projectinfo.Info) {
	fmt.Fprintf(r.W, "Found `%s` in: %s\n\n", projectinfo.FileName, info.Dir)
}

func (r TextReporter) ProjectInfoMissing(string) {
	fmt.Fprintln(r.W, ProjectInfoMissingMessage())
}

func (r TextReporter) Detected(eco ecosystem.Ecosystem, root string) {
	fmt.Fprintln(r.W, DetectedMessage(eco, root))
	fmt.Fprintln(r.W)
}

func (r TextReporter) Empty(eco ecosystem.Ecosystem) {
	fmt.Fprintln(r.W, EmptyMessage(eco))
}

func (r TextReporter) Copied(*aggregate.Result) {
	fmt.Fprintln(r.W, CopiedMessage())
}

func (r TextReporter) CopyFailed(err error) {
	fmt.Fprintf(r.W, "Failed to copy to clipboard: %v\n", err)
}

func (r TextReporter) NotDetected(tried []ecosystem.Ecosystem) {
	fmt.Fprintln(r.W, NotDetectedMessage(tried))
}

// DetectedMessage is the line announcing a detected project.
func DetectedMessage(eco ecosystem.Ecosystem, root string) string {
	return fmt.Sprintf("Detected %s %s project at: %s", article(eco.Label()), eco.Label(), root)
}

// EmptyMessage is the line reporting a project without sources.
func EmptyMessage(eco ecosystem.Ecosystem) string {
	return fmt.Sprintf("No `.%s` files found or no content was aggregated.", eco.Extension)
}

// CopiedMessage is the success line.
func CopiedMessage() string {
	return "Aggregated contents copied to clipboard successfully!"
}

// ProjectInfoMissingMessage is the line reporting a missing anchor file.
func ProjectInfoMissingMessage() string {
	return fmt.Sprintf("No `%s` found in current or up to two parent directories.", projectinfo.FileName)
}

// NotDetectedMessage lists the ecosystems that were tried.
func NotDetectedMessage(tried []ecosystem.Ecosystem) string {
	labels := make([]string, len(tried))
	for i, e := range tried {
		labels[i] = e.Label()
	}
	return fmt.Sprintf("No supported project detected (tried %s).", joinOr(labels))
}

func joinOr(items []string) string {
	switch len(items) {
	case 0:
		return "nothing"
	case 1:
		return items[0]
	case 2:
		return items[0] + " or " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + ", or " + items[len(items)-1]
	}
}

func article(word string) string {
	if word != "" && strings.ContainsRune("AEIOUaeiou", rune(word[0])) {
		return "an"
	}
	return "a"
}
