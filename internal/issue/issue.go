// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
)

const (
	ProjectNotFoundId Id = iota + 1
	WorkspaceNotFoundId
	LaunchFileInvalidId
	ConfigLoadFailedId
	HistoryUnavailableId
)

type (
	Id int

	MarkdownMsg string

	HttpLink string

	Issue struct {
		id       Id
		mdMsg    MarkdownMsg
		docLinks []HttpLink
	}
)

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

// Render renders the issue markdown with the named glamour style
// ("dark", "light", "notty", ...).
func (i *Issue) Render(stylePath string) (string, error) {
	var sb strings.Builder
	sb.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 {
		sb.WriteString("\n\n## See also\n")
		for _, link := range i.docLinks {
			sb.WriteString("- <" + string(link) + ">\n")
		}
	}
	return render(sb.String(), stylePath)
}

var (
	render = glamour.Render

	projectNotFoundIssue = &Issue{
		id: ProjectNotFoundId,
		mdMsg: `
# Project not found

A project is a directory directly below the workspace root that contains
a ` + "`.launchrun`" + ` directory.

## Things you can try
- List the projects of the workspace:
~~~
$ launchrun projects
~~~
- Point launchrun at another workspace:
~~~
$ launchrun --workspace ~/src/acme run --list
~~~`,
	}

	workspaceNotFoundIssue = &Issue{
		id: WorkspaceNotFoundId,
		mdMsg: `
# Workspace not found

The workspace root must be an existing directory. It defaults to the
current directory and can be set with ` + "`--workspace`" + ` or the
` + "`workspace`" + ` key of the configuration file.`,
	}

	launchFileInvalidIssue = &Issue{
		id: LaunchFileInvalidId,
		mdMsg: `
# Invalid launch file

Launch files live in ` + "`.launchrun/`" + ` and may be written in CUE, TOML or YAML.

## Example
~~~cue
launches: [
	{
		name:    "server"
		command: ["go", "run", "./cmd/server"]
		debug: command: ["dlv", "debug", "./cmd/server"]
	},
	{
		name:   "seed"
		runner: "virtual"
		script: "echo seeding && ./scripts/seed.sh"
	},
]
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration

launchrun reads ` + "`config.cue`" + ` from its configuration directory, or the
file given with ` + "`--config`" + `.

## Things you can try
- Show where launchrun looks for its configuration:
~~~
$ launchrun config path
~~~
- Recreate the default configuration:
~~~
$ launchrun config init
~~~`,
	}

	historyUnavailableIssue = &Issue{
		id: HistoryUnavailableId,
		mdMsg: `
# Launch history unavailable

The history database could not be opened. Launching still works; set
` + "`history: enabled: false`" + ` in the configuration to silence this.`,
	}

	issues = map[Id]*Issue{
		projectNotFoundIssue.Id():    projectNotFoundIssue,
		workspaceNotFoundIssue.Id():  workspaceNotFoundIssue,
		launchFileInvalidIssue.Id():  launchFileInvalidIssue,
		configLoadFailedIssue.Id():   configLoadFailedIssue,
		historyUnavailableIssue.Id(): historyUnavailableIssue,
	}
)

// Values returns every catalog entry ordered by Id.
func Values() []*Issue {
	out := make([]*Issue, 0, len(issues))
	for _, id := range slices.Sorted(maps.Keys(issues)) {
		out = append(out, issues[id])
	}
	return out
}

func Get(id Id) *Issue {
	return issues[id]
}
