// SPDX-License-Identifier: MPL-2.0

package aggregate

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/codegrab/codegrab/internal/discovery"
	"github.com/codegrab/codegrab/internal/ecosystem"
	"github.com/codegrab/codegrab/internal/issue"
	"github.com/codegrab/codegrab/internal/pathtree"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
)

const (
	headerPrefix    = "=== "
	headerSuffix    = " ===\n"
	recordSeparator = "\n\n"
)

// ErrInvalidEncoding is returned when a matched file is not valid UTF-8 text.
var ErrInvalidEncoding = errors.New("file is not valid UTF-8")

// ReadOperation names the ActionableError operation for source read failures.
const ReadOperation = "read source file"

type (
	// Options configures an Aggregator.
	Options struct {
		// Out receives the printed file tree. nil discards it.
		Out io.Writer
		// Logger receives debug output. nil disables logging.
		Logger *log.Logger
		// Ignore are doublestar globs excluded from the walk.
		Ignore []string
	}

	// Aggregator collects and concatenates source files.
	Aggregator struct {
		fsys   afero.Fs
		out    io.Writer
		logger *log.Logger
		ignore []string
	}

	// Result is the outcome of one aggregation.
	Result struct {
		// Root is the directory that was walked.
		Root string
		// Ecosystem is the ecosystem whose sources were collected.
		Ecosystem ecosystem.Ecosystem
		// Files are the aggregated paths in record order.
		Files []string
		// Tree holds Files relative to Root. nil when nothing matched.
		Tree *pathtree.Node
		// Content is the aggregated blob; empty when nothing matched.
		Content string
		// Diagnostics describe entries skipped during the walk.
		Diagnostics []discovery.Diagnostic
	}
)

// New creates an Aggregator reading from fsys.
func New(fsys afero.Fs, opts Options) (*Aggregator, error) {
	if err := discovery.ValidateIgnorePatterns(opts.Ignore); err != nil {
		return nil, err
	}
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	return &Aggregator{
		fsys:   fsys,
		out:    out,
		logger: opts.Logger,
		ignore: opts.Ignore,
	}, nil
}

// Empty reports whether no file matched.
func (r *Result) Empty() bool {
	return len(r.Files) == 0
}

// Skipped returns the number of entries the walk could not read.
func (r *Result) Skipped() int {
	return discovery.CountSkipped(r.Diagnostics)
}

// Aggregate walks root for files carrying eco's extension, prints their tree
// and returns their concatenated contents. When nothing matches, the result
// is empty and nothing is printed. A file that cannot be read aborts the
// whole aggregation.
func (a *Aggregator) Aggregate(root string, eco ecosystem.Ecosystem) (*Result, error) {
	set := discovery.CollectFiles(a.fsys, root, eco.Extension, discovery.WalkOptions{
		Ignore: a.ignore,
		Logger: a.logger,
	})

	res := &Result{
		Root:        root,
		Ecosystem:   eco,
		Files:       set.Files,
		Diagnostics: set.Diagnostics,
	}
	if res.Empty() {
		return res, nil
	}

	res.Tree = BuildTree(root, set.Files)
	a.printTree(res)

	var sb strings.Builder
	for _, path := range set.Files {
		data, err := afero.ReadFile(a.fsys, path)
		if err == nil && !utf8.Valid(data) {
			err = ErrInvalidEncoding
		}
		if err != nil {
			return nil, issue.NewErrorContext().
				WithOperation(ReadOperation).
				WithResource(path).
				WithSuggestion("Check that the file is readable and still exists").
				WithSuggestion("Add an ignore pattern for it in the config file").
				Wrap(err).
				BuildError()
		}
		WriteRecord(&sb, path, string(data))
	}
	res.Content = sb.String()

	if a.logger != nil {
		a.logger.Debug("aggregated sources", "ecosystem", eco.Name, "files", len(res.Files), "bytes", len(res.Content), "skipped", res.Skipped())
	}
	return res, nil
}

func (a *Aggregator) printTree(res *Result) {
	_, err := fmt.Fprintf(a.out, "Tree of `.%s` files in this %s project:\n", res.Ecosystem.Extension, res.Ecosystem.Label())
	if err == nil {
		err = res.Tree.Print(a.out, 0)
	}
	if err == nil {
		_, err = fmt.Fprintln(a.out)
	}
	if err != nil && a.logger != nil {
		a.logger.Warn("failed to print file tree", "err", err)
	}
}

// BuildTree inserts every file, relative to root, into a fresh tree. A path
// that cannot be made relative is inserted as-is.
func BuildTree(root string, files []string) *pathtree.Node {
	tree := pathtree.New("")
	for _, path := range files {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		tree.InsertPath(rel)
	}
	return tree
}

// Header returns the record header line for path.
func Header(path string) string {
	return headerPrefix + path + headerSuffix
}

// WriteRecord appends one record for path to sb.
func WriteRecord(sb *strings.Builder, path, contents string) {
	sb.WriteString(Header(path))
	sb.WriteString(contents)
	sb.WriteString(recordSeparator)
}
