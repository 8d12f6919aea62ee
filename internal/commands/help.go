package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tasktrack/internal/config"
	"tasktrack/internal/exitcode"
	"tasktrack/internal/store"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "tasktrack help" }
func (c *HelpCmd) NeedsStore() bool  { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, st *store.Store, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)

	fmt.Fprintln(out, "\nCommands:")
	for _, cmd := range DefaultRegistry.All() {
		fmt.Fprintf(out, "  %-10s %s\n", cmd.Name(), cmd.Synopsis())
	}
	return exitcode.Success
}

const helpText = `Usage:
  tasktrack                                          List all tasks
  tasktrack list [common flags] [--search <text>]    List tasks, optionally filtered
  tasktrack add [common flags] [--description <text>] [--high-priority] <title...>
  tasktrack toggle [common flags] [--search <text>] [--id] <ref>
  tasktrack rm [common flags] [--search <text>] [--id] <ref>
  tasktrack show [common flags] [--search <text>] [--id] <ref>
  tasktrack watch [common flags] [--interval <duration>] [--count <n>] [--search <text>]
  tasktrack help
  tasktrack version

A <ref> is a task number from the list output or, with --id or when not
numeric, a task ID. Use the same --search for list and toggle/rm/show so
numbers line up.

Common flags:
  --config <dir>     Override config directory
  --base-url <url>   Override the task service URL
  --quiet            Suppress informational output
  --debug            Print debug logs to stderr

Environment:
  TASKTRACK_BASE_URL   Task service URL (default http://localhost:3000)
  TASKTRACK_TIMEOUT    Per-request timeout, e.g. 5s (default none)
`
