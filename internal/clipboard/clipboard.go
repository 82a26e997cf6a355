// SPDX-License-Identifier: MPL-2.0

// Package clipboard provides the sinks that receive the aggregated text.
package clipboard

import (
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/atotto/clipboard"
)

// ErrUnsupported is returned by System when no clipboard backend is available.
var ErrUnsupported = errors.New("clipboard not supported")

type (
	// Sink accepts one text blob.
	Sink interface {
		Set(text string) error
	}

	// System writes to the operating system clipboard.
	System struct{}

	// Writer writes the blob to W instead of a clipboard.
	Writer struct {
		W io.Writer
	}

	// Memory keeps the last blob in memory. Err, when set, is returned from
	// Set without storing anything.
	Memory struct {
		Text  string
		Calls int
		Err   error
	}
)

// Set implements Sink.
func (System) Set(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("%w on %s", ErrUnsupported, runtime.GOOS)
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}

// Set implements Sink.
func (w Writer) Set(text string) error {
	_, err := io.WriteString(w.W, text)
	return err
}

// Set implements Sink.
func (m *Memory) Set(text string) error {
	m.Calls++
	if m.Err != nil {
		return m.Err
	}
	m.Text = text
	return nil
}
