package commands

import (
	"context"
	"flag"
	"io"

	"tasktrack/internal/config"
	"tasktrack/internal/exitcode"
	"tasktrack/internal/output"
	"tasktrack/internal/store"
)

func init() {
	Register(&ShowCmd{})
}

// ShowCmd implements the show command (the detail view).
type ShowCmd struct {
	search  string
	forceID bool
}

func (c *ShowCmd) Name() string      { return "show" }
func (c *ShowCmd) Aliases() []string { return nil }
func (c *ShowCmd) Synopsis() string  { return "Show task details" }
func (c *ShowCmd) Usage() string     { return "tasktrack show [--search <text>] [--id] <ref>" }
func (c *ShowCmd) NeedsStore() bool  { return true }

func (c *ShowCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.search, "search", "", "")
	fs.StringVar(&c.search, "s", "", "")
	fs.BoolVar(&c.forceID, "id", false, "")
}

func (c *ShowCmd) Run(ctx context.Context, cfg *config.Config, st *store.Store, args []string, out, errOut io.Writer) int {
	task, code := loadTask(ctx, st, c.search, c.forceID, args, errOut)
	if code != exitcode.Success {
		return code
	}

	output.FormatDetail(out, task)
	return exitcode.Success
}
