// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"

	"github.com/codegrab/codegrab/internal/clipboard"
	"github.com/codegrab/codegrab/internal/config"

	"github.com/spf13/afero"
)

type (
	// App wires CLI services and shared dependencies. It is the composition
	// root for the CLI layer; every Cobra handler receives an App reference.
	App struct {
		Config    ConfigProvider
		Fs        afero.Fs
		Clipboard clipboard.Sink
		Getwd     func() (string, error)
		// IssueStyle is the glamour style used for issue cards.
		IssueStyle string
		stdout     io.Writer
		stderr     io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config     ConfigProvider
		Fs         afero.Fs
		Clipboard  clipboard.Sink
		Getwd      func() (string, error)
		IssueStyle string
		Stdout     io.Writer
		Stderr     io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}
)

// NewApp creates a new App with defaults applied to nil dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Fs == nil {
		deps.Fs = afero.NewOsFs()
	}
	if deps.Clipboard == nil {
		deps.Clipboard = clipboard.System{}
	}
	if deps.Getwd == nil {
		deps.Getwd = os.Getwd
	}
	if deps.IssueStyle == "" {
		deps.IssueStyle = issueStyleFor(deps.Stderr)
	}

	return &App{
		Config:     deps.Config,
		Fs:         deps.Fs,
		Clipboard:  deps.Clipboard,
		Getwd:      deps.Getwd,
		IssueStyle: deps.IssueStyle,
		stdout:     deps.Stdout,
		stderr:     deps.Stderr,
	}
}
