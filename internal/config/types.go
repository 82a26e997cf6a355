// SPDX-License-Identifier: MPL-2.0

package config

import (
	"github.com/codegrab/codegrab/internal/ecosystem"
)

type (
	// Config holds the application configuration.
	Config struct {
		// Priority lists ecosystem names in the order they are tried.
		Priority []string `json:"priority" mapstructure:"priority"`
		// Ignore lists doublestar globs skipped while collecting files.
		Ignore []string `json:"ignore" mapstructure:"ignore"`
		// Ecosystems declares ecosystems beyond the built-ins.
		Ecosystems []EcosystemEntry `json:"ecosystems" mapstructure:"ecosystems"`
		// RequireProjectInfo stops a run when no project_info.toml is found.
		RequireProjectInfo bool `json:"require_project_info" mapstructure:"require_project_info"`
		// UI configures console output.
		UI UIConfig `json:"ui" mapstructure:"ui"`

		// Source is the file the configuration was read from; empty for defaults.
		Source string `json:"-" mapstructure:"-"`
	}

	// EcosystemEntry is a user-defined ecosystem as written in config.cue.
	EcosystemEntry struct {
		Name        string   `json:"name" mapstructure:"name"`
		DisplayName string   `json:"display_name" mapstructure:"display_name"`
		Extension   string   `json:"extension" mapstructure:"extension"`
		FilesAll    []string `json:"files_all" mapstructure:"files_all"`
		DirsAll     []string `json:"dirs_all" mapstructure:"dirs_all"`
		FilesAny    []string `json:"files_any" mapstructure:"files_any"`
		DirsAny     []string `json:"dirs_any" mapstructure:"dirs_any"`
		TopLevelExt bool     `json:"top_level_ext" mapstructure:"top_level_ext"`
	}

	// UIConfig configures console output.
	UIConfig struct {
		// Verbose enables debug logging.
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Priority:   []string{},
		Ignore:     []string{},
		Ecosystems: []EcosystemEntry{},
	}
}

// Definition converts the entry to an ecosystem.Definition.
func (e EcosystemEntry) Definition() ecosystem.Definition {
	return ecosystem.Definition{
		Name:        e.Name,
		DisplayName: e.DisplayName,
		Extension:   e.Extension,
		FilesAll:    e.FilesAll,
		DirsAll:     e.DirsAll,
		FilesAny:    e.FilesAny,
		DirsAny:     e.DirsAny,
		TopLevelExt: e.TopLevelExt,
	}
}

// Registry builds an ecosystem registry with the built-ins plus the
// configured ecosystems.
func (c *Config) Registry() (*ecosystem.Registry, error) {
	defs := make([]ecosystem.Definition, len(c.Ecosystems))
	for i, e := range c.Ecosystems {
		defs[i] = e.Definition()
	}
	return ecosystem.NewRegistry(defs...)
}

// ResolveEcosystems returns the registry and the ecosystems to try, in order.
func (c *Config) ResolveEcosystems() ([]ecosystem.Ecosystem, *ecosystem.Registry, error) {
	reg, err := c.Registry()
	if err != nil {
		return nil, nil, err
	}
	ecos, err := reg.Resolve(c.Priority)
	if err != nil {
		return nil, nil, err
	}
	return ecos, reg, nil
}
