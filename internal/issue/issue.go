// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
	xslices "golang.org/x/exp/slices"
)

const (
	NoProjectDetectedId Id = iota + 1
	NoSourcesFoundId
	SourceReadFailedId
	ClipboardUnavailableId
	ConfigLoadFailedId
	ProjectInfoMissingId
	ProjectInfoInvalidId
)

type (
	Id int

	MarkdownMsg string

	HttpLink string

	Issue struct {
		id       Id          // ID used to lookup the issue
		mdMsg    MarkdownMsg // Markdown text that will be rendered
		extLinks []HttpLink  // external links that might be useful for the user
	}
)

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) ExtLinks() []HttpLink {
	return xslices.Clone(i.extLinks)
}

// Render returns the issue as terminal-formatted text using the named glamour
// style ("dark", "light", "notty", ...).
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.MarkdownMsg()))
	if links := i.ExtLinks(); len(links) > 0 {
		md.WriteString("\n\n## See also:\n")
		for _, link := range links {
			md.WriteString("- <" + string(link) + ">\n")
		}
	}
	return render(md.String(), stylePath)
}

var (
	render = glamour.Render

	noProjectDetectedIssue = &Issue{
		id: NoProjectDetectedId,
		mdMsg: `
# No supported project detected!

codegrab looked at the current directory and up to two of its parents,
but none of them looks like a project it knows.

## What each ecosystem needs:
- **Rust**: a ` + "`Cargo.toml`" + ` next to a ` + "`src/`" + ` directory
- **Python**: ` + "`requirements.txt`" + `, ` + "`setup.py`" + `, or any ` + "`*.py`" + ` file
- **Go**: ` + "`go.mod`" + ` or a ` + "`src/`" + ` directory

## Things you can try:
- Run codegrab from inside the project directory
- List the ecosystems and their markers:
~~~
$ codegrab ecosystems
~~~
- Define your own ecosystem in the config file:
~~~
$ codegrab config init
~~~`,
	}

	noSourcesFoundIssue = &Issue{
		id: NoSourcesFoundId,
		mdMsg: `
# The project has no matching source files

A project root was detected but it holds no file with the ecosystem's
extension, so nothing was copied.

## Things you can try:
- Check that the ignore patterns in your config do not hide your sources
- Force another ecosystem with ` + "`ecosystem = \"<name>\"`" + ` in ` + "`project_info.toml`",
	}

	sourceReadFailedIssue = &Issue{
		id: SourceReadFailedId,
		mdMsg: `
# Failed to read a source file!

Aggregation stops at the first file that cannot be read, so nothing was
copied to the clipboard.

## Common causes:
- The file was removed or renamed while codegrab was running
- The file is not readable by the current user
- The file is not UTF-8 text

## Things you can try:
- Fix the file permissions and run again
- Exclude the file with an ignore pattern:
~~~cue
ignore: ["**/generated/**"]
~~~`,
	}

	clipboardUnavailableIssue = &Issue{
		id: ClipboardUnavailableId,
		mdMsg: `
# Clipboard not available

The aggregated text could not be placed on the system clipboard.

## Things you can try:
- On Linux, install ` + "`xclip`" + `, ` + "`xsel`" + ` or ` + "`wl-clipboard`" + `
- Print the text instead and redirect it:
~~~
$ codegrab --stdout > context.txt
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The configuration file could not be read or is not valid CUE.

## Things you can try:
- Show where codegrab looks for its configuration:
~~~
$ codegrab config path
~~~
- Recreate a default configuration:
~~~
$ codegrab config init
~~~`,
	}

	projectInfoMissingIssue = &Issue{
		id: ProjectInfoMissingId,
		mdMsg: `
# No project_info.toml found

Your configuration requires a ` + "`project_info.toml`" + ` in the current directory
or one of its two parents.

## Things you can try:
- Create one at the project root:
~~~toml
ecosystem = "rust"
ignore = ["target/**"]
~~~
- Or set ` + "`require_project_info: false`" + ` in the config file`,
	}

	projectInfoInvalidIssue = &Issue{
		id: ProjectInfoInvalidId,
		mdMsg: `
# project_info.toml could not be parsed

## Things you can try:
- Check the TOML syntax
- Use a known ecosystem name (see ` + "`codegrab ecosystems`" + `)`,
		extLinks: []HttpLink{"https://toml.io/en/v1.0.0"},
	}

	issues = map[Id]*Issue{
		noProjectDetectedIssue.Id():    noProjectDetectedIssue,
		noSourcesFoundIssue.Id():       noSourcesFoundIssue,
		sourceReadFailedIssue.Id():     sourceReadFailedIssue,
		clipboardUnavailableIssue.Id(): clipboardUnavailableIssue,
		configLoadFailedIssue.Id():     configLoadFailedIssue,
		projectInfoMissingIssue.Id():   projectInfoMissingIssue,
		projectInfoInvalidIssue.Id():   projectInfoInvalidIssue,
	}
)

func Get(id Id) *Issue {
	return issues[id]
}
