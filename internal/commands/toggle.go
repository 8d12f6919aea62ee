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
	Register(&ToggleCmd{})
}

// ToggleCmd implements the toggle command.
// Flips the completed flag of a task relative to the state just fetched.
type ToggleCmd struct {
	search  string
	forceID bool
}

func (c *ToggleCmd) Name() string      { return "toggle" }
func (c *ToggleCmd) Aliases() []string { return []string{"done"} }
func (c *ToggleCmd) Synopsis() string  { return "Toggle a task between open and completed" }
func (c *ToggleCmd) Usage() string     { return "tasktrack toggle [--search <text>] [--id] <ref>" }
func (c *ToggleCmd) NeedsStore() bool  { return true }

func (c *ToggleCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.search, "search", "", "")
	fs.StringVar(&c.search, "s", "", "")
	fs.BoolVar(&c.forceID, "id", false, "")
}

func (c *ToggleCmd) Run(ctx context.Context, cfg *config.Config, st *store.Store, args []string, out, errOut io.Writer) int {
	task, code := loadTask(ctx, st, c.search, c.forceID, args, errOut)
	if code != exitcode.Success {
		return code
	}

	if !st.ToggleCompletion(ctx, task.ID, task.Completed) {
		fmt.Fprintln(errOut, "error: failed to update task")
		return exitcode.BackendError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
