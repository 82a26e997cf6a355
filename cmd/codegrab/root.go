// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the codegrab command line interface.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// rootFlagValues holds the persistent and root-only flag values.
type rootFlagValues struct {
	verbose            bool
	configPath         string
	watch              bool
	stdout             bool
	requireProjectInfo bool
}

// newRootCommand builds the command tree around app.
func newRootCommand(app *App) *cobra.Command {
	flags := &rootFlagValues{}

	root := &cobra.Command{
		Use:   "codegrab",
		Short: "Copy a project's source files to the clipboard",
		Long: TitleStyle.Render("codegrab") + SubtitleStyle.Render(" - copy a project's source files to the clipboard") + `

codegrab looks for a Rust, Python or Go project in the current directory or
up to two parent directories, prints a tree of its source files and copies
them to the clipboard, each prefixed with a "=== <path> ===" header.

` + SubtitleStyle.Render("Detection order:") + `
  Rust     Cargo.toml and src/
  Python   requirements.txt, setup.py or any *.py file
  Go       go.mod or src/

` + SubtitleStyle.Render("Examples:") + `
  codegrab                  Grab the project around the current directory
  codegrab --stdout > out   Write the aggregated text to a file
  codegrab --watch          Re-copy whenever a source file changes
  codegrab ecosystems       List the ecosystems in detection order`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGrab(cmd, app, flags)
		},
	}

	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable verbose output")
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/codegrab/config.cue)")
	root.Flags().BoolVarP(&flags.watch, "watch", "w", false, "re-copy when source files change")
	root.Flags().BoolVar(&flags.stdout, "stdout", false, "write the aggregated text to stdout instead of the clipboard")
	root.Flags().BoolVar(&flags.requireProjectInfo, "require-project-info", false, "stop unless a project_info.toml is found")

	root.AddCommand(newConfigCommand(app, flags))
	root.AddCommand(newEcosystemsCommand(app, flags))

	return root
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI and exits with its status. Called by main.main().
func Execute() {
	os.Exit(Main())
}

// Main runs the CLI with production dependencies and returns the exit code.
func Main() int {
	app := NewApp(Dependencies{})
	return run(context.Background(), app, os.Args[1:])
}

func run(ctx context.Context, app *App, args []string) int {
	root := newRootCommand(app)
	root.SetArgs(args)
	root.SetOut(app.stdout)
	root.SetErr(app.stderr)

	if err := fang.Execute(
		ctx,
		root,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return exitErr.Code
		}
		return 1
	}
	return 0
}
