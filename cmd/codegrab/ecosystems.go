// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/codegrab/codegrab/internal/ecosystem"
	"github.com/codegrab/codegrab/internal/issue"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

// newEcosystemsCommand creates `codegrab ecosystems`, which lists the
// ecosystems in the order they are tried.
func newEcosystemsCommand(app *App, flags *rootFlagValues) *cobra.Command {
	return &cobra.Command{
		Use:   "ecosystems",
		Short: "List supported ecosystems in detection order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd.Context(), app, flags)
			if err != nil {
				return fail(cmd, app, issue.ConfigLoadFailedId, err, flags.verbose)
			}
			ecos, _, err := cfg.ResolveEcosystems()
			if err != nil {
				return fail(cmd, app, issue.ConfigLoadFailedId, err, flags.verbose)
			}

			rendered, err := glamour.Render(ecosystemsMarkdown(ecos), app.IssueStyle)
			if err != nil {
				return fmt.Errorf("render ecosystems: %w", err)
			}
			fmt.Fprint(app.stdout, rendered)
			return nil
		},
	}
}

// ecosystemsMarkdown renders ecos as a markdown table.
func ecosystemsMarkdown(ecos []ecosystem.Ecosystem) string {
	var sb strings.Builder
	sb.WriteString("# Ecosystems\n\n")
	sb.WriteString("Tried in this order; the first match wins.\n\n")
	sb.WriteString("| # | Ecosystem | Sources | Project marker |\n")
	sb.WriteString("|---|---|---|---|\n")
	for i, e := range ecos {
		fmt.Fprintf(&sb, "| %d | %s | `*.%s` | %s |\n",
			i+1, e.Label(), e.Extension, strings.ReplaceAll(e.Marker.String(), "|", `\|`))
	}
	return sb.String()
}
