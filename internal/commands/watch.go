package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"tasktrack/internal/config"
	"tasktrack/internal/exitcode"
	"tasktrack/internal/output"
	"tasktrack/internal/store"
)

// DefaultWatchInterval is how often watch refreshes the list.
const DefaultWatchInterval = 5 * time.Second

func init() {
	Register(&WatchCmd{})
}

// WatchCmd implements the watch command.
// It keeps the list view on screen and refreshes it on every tick, the CLI
// counterpart of a screen refetching when it regains focus.
type WatchCmd struct {
	search   string
	interval time.Duration
	count    int
}

// SetInterval sets the refresh interval (for testing).
func (c *WatchCmd) SetInterval(d time.Duration) {
	c.interval = d
}

// SetCount sets the number of refreshes (for testing).
func (c *WatchCmd) SetCount(n int) {
	c.count = n
}

func (c *WatchCmd) Name() string      { return "watch" }
func (c *WatchCmd) Aliases() []string { return nil }
func (c *WatchCmd) Synopsis() string  { return "Keep refreshing the task list" }
func (c *WatchCmd) Usage() string {
	return "tasktrack watch [--interval <duration>] [--count <n>] [--search <text>]"
}
func (c *WatchCmd) NeedsStore() bool { return true }

func (c *WatchCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.search, "search", "", "")
	fs.StringVar(&c.search, "s", "", "")
	fs.DurationVar(&c.interval, "interval", DefaultWatchInterval, "")
	fs.IntVar(&c.count, "count", 0, "")
}

func (c *WatchCmd) Run(ctx context.Context, cfg *config.Config, st *store.Store, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}
	if c.interval <= 0 {
		fmt.Fprintf(errOut, "error: invalid interval: %v\n", c.interval)
		return exitcode.UserError
	}
	if c.count < 0 {
		fmt.Fprintf(errOut, "error: invalid count: %d\n", c.count)
		return exitcode.UserError
	}

	// First fetch must succeed, later ones may fail transiently
	if err := st.Fetch(ctx, strings.TrimSpace(c.search)); err != nil {
		return exitcode.BackendError
	}
	shown := st.Tasks()
	output.FormatTasks(out, shown, cfg.Quiet)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for refreshes := 0; c.count == 0 || refreshes < c.count; refreshes++ {
		select {
		case <-ctx.Done():
			return exitcode.Success
		case <-ticker.C:
		}

		if err := st.Refresh(ctx); err != nil {
			continue
		}

		// Only redraw when the server state changed
		current := st.Tasks()
		if slices.Equal(shown, current) {
			continue
		}
		fmt.Fprintln(out, output.Separator)
		output.FormatTasks(out, current, cfg.Quiet)
		shown = current
	}
	return exitcode.Success
}

