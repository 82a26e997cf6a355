// SPDX-License-Identifier: MPL-2.0

package grab

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/codegrab/codegrab/internal/aggregate"
	"github.com/codegrab/codegrab/internal/clipboard"
	"github.com/codegrab/codegrab/internal/discovery"
	"github.com/codegrab/codegrab/internal/ecosystem"
	"github.com/codegrab/codegrab/internal/projectinfo"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
)

const (
	// StatusNotDetected means no ecosystem marker was found.
	StatusNotDetected Status = iota
	// StatusEmpty means a project was detected but held no matching sources.
	StatusEmpty
	// StatusCopied means the aggregated text reached the sink.
	StatusCopied
	// StatusCopyFailed means aggregation succeeded but the sink rejected it.
	StatusCopyFailed
	// StatusNoProjectInfo means project_info.toml was required but not found.
	StatusNoProjectInfo
)

// ErrNoEcosystems is returned by New when the priority list is empty.
var ErrNoEcosystems = errors.New("no ecosystems configured")

type (
	// Status is the outcome of a run.
	Status int

	// Options configures a Grabber.
	Options struct {
		// Ecosystems are tried in this order.
		Ecosystems []ecosystem.Ecosystem
		// Registry resolves the ecosystem named in project_info.toml. When
		// nil, the built-ins are used.
		Registry *ecosystem.Registry
		// Ignore are doublestar globs excluded from the walk.
		Ignore []string
		// RequireProjectInfo stops the run when no project_info.toml is found.
		RequireProjectInfo bool
		// Out receives the printed file tree. nil discards it.
		Out io.Writer
		// Reporter receives progress events. nil uses a TextReporter on Out.
		Reporter Reporter
		// Logger receives debug output. nil disables logging.
		Logger *log.Logger
	}

	// Grabber runs the pipeline against one filesystem and sink.
	Grabber struct {
		fsys    afero.Fs
		sink    clipboard.Sink
		locator *discovery.Locator
		opts    Options
	}

	// Report describes a finished run.
	Report struct {
		Status Status
		// Origin is the directory detection started from.
		Origin string
		// ProjectInfo is set when a project_info.toml anchored the run.
		ProjectInfo *projectinfo.Info
		// Ecosystem is the detected ecosystem; zero when none matched.
		Ecosystem ecosystem.Ecosystem
		// Root is the detected project root.
		Root string
		// Result is the aggregation outcome, when one ran.
		Result *aggregate.Result
		// CopyErr is the sink error for StatusCopyFailed.
		CopyErr error
		// LocateDiagnostics describe directories whose markers could not be
		// checked while searching for project_info.toml and project roots.
		LocateDiagnostics []discovery.Diagnostic
	}
)

// New creates a Grabber.
func New(fsys afero.Fs, sink clipboard.Sink, opts Options) (*Grabber, error) {
	if len(opts.Ecosystems) == 0 {
		return nil, ErrNoEcosystems
	}
	if err := discovery.ValidateIgnorePatterns(opts.Ignore); err != nil {
		return nil, err
	}
	if opts.Registry == nil {
		reg, err := ecosystem.NewRegistry()
		if err != nil {
			return nil, err
		}
		opts.Registry = reg
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.Reporter == nil {
		opts.Reporter = TextReporter{W: opts.Out}
	}
	return &Grabber{
		fsys:    fsys,
		sink:    sink,
		locator: discovery.NewLocator(fsys),
		opts:    opts,
	}, nil
}

// Run detects the project around origin, aggregates its sources and hands
// them to the sink. Detection misses and sink failures are reported through
// the returned Report, not as errors. An error is returned only when ctx is
// done, project_info.toml is invalid or a source file cannot be read.
func (g *Grabber) Run(ctx context.Context, origin string) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("grab canceled: %w", err)
	}

	report := &Report{Status: StatusNotDetected, Origin: origin}
	rep := g.opts.Reporter

	var info *projectinfo.Info
	infoDir, found, diags := projectinfo.Find(g.fsys, origin)
	report.LocateDiagnostics = append(report.LocateDiagnostics, diags...)
	if found {
		loaded, err := projectinfo.Load(g.fsys, infoDir)
		if err != nil {
			return report, err
		}
		info = loaded
	}
	if info == nil && g.opts.RequireProjectInfo {
		report.Status = StatusNoProjectInfo
		rep.ProjectInfoMissing(origin)
		return report, nil
	}

	candidates := g.opts.Ecosystems
	ignore := g.opts.Ignore
	if info != nil {
		report.ProjectInfo = info
		report.Origin = info.Dir
		rep.ProjectInfoFound(info)
		if info.Ecosystem != "" {
			eco, err := g.opts.Registry.Get(info.Ecosystem)
			if err != nil {
				return report, fmt.Errorf("%s in %s: %w", projectinfo.FileName, info.Dir, err)
			}
			candidates = []ecosystem.Ecosystem{eco}
		}
		ignore = append(slices.Clone(ignore), info.Ignore...)
	}

	agg, err := aggregate.New(g.fsys, aggregate.Options{
		Out:    g.opts.Out,
		Logger: g.opts.Logger,
		Ignore: ignore,
	})
	if err != nil {
		return report, err
	}

	for _, eco := range candidates {
		root, ok, diags := g.locator.Locate(report.Origin, eco.Marker)
		report.LocateDiagnostics = append(report.LocateDiagnostics, diags...)
		if !ok {
			g.debug("ecosystem not detected", "ecosystem", eco.Name, "origin", report.Origin)
			continue
		}

		report.Ecosystem = eco
		report.Root = root
		rep.Detected(eco, root)

		res, err := agg.Aggregate(root, eco)
		if err != nil {
			return report, err
		}
		report.Result = res

		if res.Empty() {
			report.Status = StatusEmpty
			rep.Empty(eco)
			return report, nil
		}

		if err := g.sink.Set(res.Content); err != nil {
			report.Status = StatusCopyFailed
			report.CopyErr = err
			rep.CopyFailed(err)
			return report, nil
		}
		report.Status = StatusCopied
		rep.Copied(res)
		return report, nil
	}

	rep.NotDetected(candidates)
	return report, nil
}

// Diagnostics returns the locate diagnostics followed by those of the walk.
func (r *Report) Diagnostics() []discovery.Diagnostic {
	diags := slices.Clone(r.LocateDiagnostics)
	if r.Result != nil {
		diags = append(diags, r.Result.Diagnostics...)
	}
	return diags
}

func (g *Grabber) debug(msg string, keyvals ...any) {
	if g.opts.Logger != nil {
		g.opts.Logger.Debug(msg, keyvals...)
	}
}

// String returns a short lowercase status name.
func (s Status) String() string {
	switch s {
	case StatusNotDetected:
		return "not-detected"
	case StatusEmpty:
		return "empty"
	case StatusCopied:
		return "copied"
	case StatusCopyFailed:
		return "copy-failed"
	case StatusNoProjectInfo:
		return "no-project-info"
	default:
		return "unknown"
	}
}
