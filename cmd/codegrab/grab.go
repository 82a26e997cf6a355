// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/codegrab/codegrab/internal/aggregate"
	"github.com/codegrab/codegrab/internal/clipboard"
	"github.com/codegrab/codegrab/internal/config"
	"github.com/codegrab/codegrab/internal/grab"
	"github.com/codegrab/codegrab/internal/issue"
	"github.com/codegrab/codegrab/internal/watch"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// runGrab detects, aggregates and copies the project around the working
// directory, then optionally keeps watching it.
func runGrab(cmd *cobra.Command, app *App, flags *rootFlagValues) error {
	ctx := cmd.Context()
	cmd.SilenceUsage = true

	cfg, err := loadConfig(ctx, app, flags)
	if err != nil {
		return fail(cmd, app, issue.ConfigLoadFailedId, err, flags.verbose)
	}
	verbose := flags.verbose || cfg.UI.Verbose
	logger := newLogger(app.stderr, verbose)

	ecos, reg, err := cfg.ResolveEcosystems()
	if err != nil {
		return fail(cmd, app, issue.ConfigLoadFailedId, err, verbose)
	}

	origin, err := app.Getwd()
	if err != nil {
		return fail(cmd, app, issue.NoProjectDetectedId, fmt.Errorf("determine working directory: %w", err), verbose)
	}

	// With --stdout the blob owns stdout; progress moves to stderr.
	out := app.stdout
	sink := app.Clipboard
	if flags.stdout {
		out = app.stderr
		sink = clipboard.Writer{W: app.stdout}
	}

	g, err := grab.New(app.Fs, sink, grab.Options{
		Ecosystems:         ecos,
		Registry:           reg,
		Ignore:             cfg.Ignore,
		RequireProjectInfo: cfg.RequireProjectInfo || flags.requireProjectInfo,
		Out:                out,
		Reporter:           styledReporter{w: out},
		Logger:             logger,
	})
	if err != nil {
		return fail(cmd, app, issue.ConfigLoadFailedId, err, verbose)
	}

	report, err := g.Run(ctx, origin)
	if err != nil {
		id, ok := issueForRunError(err)
		if !ok {
			logger.Debug("grab canceled", "err", err)
			return nil
		}
		return fail(cmd, app, id, err, verbose)
	}
	logger.Debug("grab finished", "status", report.Status, "origin", report.Origin)

	renderDiagnostics(app.stderr, report.Diagnostics(), verbose)
	if id, ok := hintFor(report.Status); ok && verbose {
		if rendered, renderErr := issue.Get(id).Render(app.IssueStyle); renderErr == nil {
			fmt.Fprint(app.stderr, rendered)
		}
	}

	if !flags.watch {
		return nil
	}
	if report.Root == "" {
		fmt.Fprintf(app.stderr, "%s Nothing to watch: no project was detected\n", warningIcon)
		return nil
	}
	return watchProject(ctx, app, g, report, cfg.Ignore, out, logger, verbose)
}

// watchProject re-runs g whenever a source file of the detected ecosystem
// changes below the project root. It blocks until ctx is done.
func watchProject(ctx context.Context, app *App, g *grab.Grabber, first *grab.Report, ignore []string, out io.Writer, logger *log.Logger, verbose bool) error {
	if first.ProjectInfo != nil {
		ignore = append(slices.Clone(ignore), first.ProjectInfo.Ignore...)
	}

	w, err := watch.New(watch.Config{
		Root:     first.Root,
		Patterns: []string{first.Ecosystem.Glob()},
		Ignore:   ignore,
		Logger:   logger,
		OnChange: func(ctx context.Context, changed []string) error {
			fmt.Fprintf(out, "\n%s %d file(s) changed, grabbing again...\n", infoIcon, len(changed))
			report, err := g.Run(ctx, first.Origin)
			if err != nil {
				if id, ok := issueForRunError(err); ok {
					renderIssue(app, id, err, verbose)
				}
				return nil
			}
			renderDiagnostics(app.stderr, report.Diagnostics(), verbose)
			return nil
		},
	})
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	fmt.Fprintf(out, "\n%s Watching %s for %s changes (Ctrl+C to stop)...\n",
		infoIcon, PathStyle.Render(w.Root()), first.Ecosystem.Glob())
	return w.Run(ctx)
}

func loadConfig(ctx context.Context, app *App, flags *rootFlagValues) (*config.Config, error) {
	return app.Config.Load(ctx, config.LoadOptions{ConfigFilePath: flags.configPath})
}

// hintFor returns the catalog entry explaining a non-success status.
func hintFor(status grab.Status) (issue.Id, bool) {
	switch status {
	case grab.StatusNotDetected:
		return issue.NoProjectDetectedId, true
	case grab.StatusEmpty:
		return issue.NoSourcesFoundId, true
	case grab.StatusCopyFailed:
		return issue.ClipboardUnavailableId, true
	case grab.StatusNoProjectInfo:
		return issue.ProjectInfoMissingId, true
	default:
		return 0, false
	}
}

// issueForRunError maps a grab.Run error to its catalog entry. Cancellation
// has no entry. Anything else not raised while reading sources comes from
// project_info.toml.
func issueForRunError(err error) (issue.Id, bool) {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return 0, false
	}
	var ae *issue.ActionableError
	if errors.As(err, &ae) && ae.Operation == aggregate.ReadOperation {
		return issue.SourceReadFailedId, true
	}
	return issue.ProjectInfoInvalidId, true
}

// fail renders err with its issue card and returns an already-reported exit 1.
func fail(cmd *cobra.Command, app *App, id issue.Id, err error, verbose bool) error {
	renderIssue(app, id, err, verbose)
	cmd.SilenceErrors = true
	return &ExitError{Code: 1}
}

// newLogger returns the stderr logger; Debug when verbose, Warn otherwise.
func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: "codegrab",
		Level:  level,
	})
}
