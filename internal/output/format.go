// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"tasktrack/internal/service"
)

const (
	// Separator frames the detail view.
	Separator = "------------"

	// NoTasks is printed when a list is empty.
	NoTasks = "no tasks found"
)

// FormatTask formats a task line for the list view.
// Format: "{N:>4}  [x] ! {TITLE}\n" where "[x]" is "[ ]" for open tasks and
// "! " only appears for high priority.
func FormatTask(w io.Writer, num int, task service.Task) {
	fmt.Fprintf(w, "%4d  %s %s%s\n", num, checkbox(task.Completed), priorityMark(task.HighPriority), normalizeTitle(task.Title))
}

// FormatTasks formats the whole list view, or NoTasks when empty.
// The empty marker is omitted in quiet mode.
func FormatTasks(w io.Writer, tasks []service.Task, quiet bool) {
	if len(tasks) == 0 {
		if !quiet {
			fmt.Fprintln(w, NoTasks)
		}
		return
	}
	for i, task := range tasks {
		FormatTask(w, i+1, task)
	}
}

// FormatSearchHeader formats the header shown above a filtered list.
func FormatSearchHeader(w io.Writer, query string) {
	fmt.Fprintf(w, "search: %s\n", strings.TrimSpace(query))
}

// FormatDetail formats the detail view of a single task.
func FormatDetail(w io.Writer, task service.Task) {
	description := strings.TrimSpace(task.Description)
	if description == "" {
		description = "(none)"
	}
	status := "open"
	if task.Completed {
		status = "completed"
	}
	priority := "normal"
	if task.HighPriority {
		priority = "high"
	}

	fmt.Fprintln(w, Separator)
	fmt.Fprintln(w, normalizeTitle(task.Title))
	fmt.Fprintln(w, Separator)
	fmt.Fprintf(w, "id:          %s\n", task.ID)
	fmt.Fprintf(w, "status:      %s\n", status)
	fmt.Fprintf(w, "priority:    %s\n", priority)
	fmt.Fprintf(w, "description: %s\n", description)
}

func checkbox(completed bool) string {
	if completed {
		return "[x]"
	}
	return "[ ]"
}

func priorityMark(high bool) string {
	if high {
		return "! "
	}
	return ""
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	// Replace newlines with spaces
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	// Trim and check for empty
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
