package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"tasktrack/internal/config"
	"tasktrack/internal/exitcode"
	"tasktrack/internal/output"
	"tasktrack/internal/store"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `tasktrack` (no args) and `tasktrack list --search <text>`.
type ListCmd struct {
	search string
}

// SetSearch sets the search query (for testing).
func (c *ListCmd) SetSearch(search string) {
	c.search = search
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string     { return "tasktrack list [--search <text>]" }
func (c *ListCmd) NeedsStore() bool  { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.search, "search", "", "")
	fs.StringVar(&c.search, "s", "", "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, st *store.Store, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	search := strings.TrimSpace(c.search)

	// Fetch failures are already alerted by the store
	if err := st.Fetch(ctx, search); err != nil {
		return exitcode.BackendError
	}

	if search != "" && !cfg.Quiet {
		output.FormatSearchHeader(out, search)
	}
	output.FormatTasks(out, st.Tasks(), cfg.Quiet)
	return exitcode.Success
}
