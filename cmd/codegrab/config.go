// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/codegrab/codegrab/internal/config"
	"github.com/codegrab/codegrab/internal/issue"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `codegrab config` command tree.
func newConfigCommand(app *App, flags *rootFlagValues) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage codegrab configuration",
		Long: `Manage codegrab configuration.

Configuration is stored in:
  - Linux: ~/.config/codegrab/config.cue
  - macOS: ~/Library/Application Support/codegrab/config.cue
  - Windows: %APPDATA%\codegrab\config.cue`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd.Context(), app, flags)
			if err != nil {
				return fail(cmd, app, issue.ConfigLoadFailedId, err, flags.verbose)
			}
			showConfig(app.stdout, cfg)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := config.FilePath(config.LoadOptions{ConfigFilePath: flags.configPath})
			if err != nil {
				return err
			}
			fmt.Fprintln(app.stdout, path)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := config.FilePath(config.LoadOptions{ConfigFilePath: flags.configPath})
			if err != nil {
				return err
			}
			created, err := config.CreateDefaultConfig(path)
			if err != nil {
				return fmt.Errorf("failed to create config: %w", err)
			}
			if !created {
				fmt.Fprintf(app.stdout, "%s Configuration already exists at %s\n", warningIcon, path)
				return nil
			}
			fmt.Fprintf(app.stdout, "%s Created default configuration at %s\n", successIcon, path)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd.Context(), app, flags)
			if err != nil {
				return fail(cmd, app, issue.ConfigLoadFailedId, err, flags.verbose)
			}
			fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			return nil
		},
	})

	return cfgCmd
}

func showConfig(w io.Writer, cfg *config.Config) {
	keyStyle := PathStyle
	valueStyle := SuccessStyle
	none := SubtitleStyle.Render("(none configured)")

	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)

	if cfg.Source != "" {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), cfg.Source)
	} else {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(w)

	if ecos, _, err := cfg.ResolveEcosystems(); err == nil {
		names := make([]string, len(ecos))
		for i, e := range ecos {
			names[i] = e.Name
		}
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("priority"), valueStyle.Render(strings.Join(names, ", ")))
	}

	fmt.Fprintf(w, "%s:\n", keyStyle.Render("ignore"))
	if len(cfg.Ignore) == 0 {
		fmt.Fprintf(w, "  %s\n", none)
	}
	for _, pat := range cfg.Ignore {
		fmt.Fprintf(w, "  - %s\n", valueStyle.Render(pat))
	}

	fmt.Fprintf(w, "%s:\n", keyStyle.Render("ecosystems"))
	if len(cfg.Ecosystems) == 0 {
		fmt.Fprintf(w, "  %s\n", none)
	}
	for _, e := range cfg.Ecosystems {
		fmt.Fprintf(w, "  - %s (.%s)\n", valueStyle.Render(e.Name), strings.TrimPrefix(e.Extension, "."))
	}

	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("require_project_info"), valueStyle.Render(fmt.Sprintf("%v", cfg.RequireProjectInfo)))
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(w, "  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))
}
