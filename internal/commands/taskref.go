package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"tasktrack/internal/exitcode"
	"tasktrack/internal/service"
	"tasktrack/internal/store"
)

// TaskRef represents a parsed task reference.
type TaskRef struct {
	Num int    // 1-based position in the fetched list, 0 if ID is set
	ID  string // task ID, empty if Num is set
}

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ParseTaskRef parses a task reference from args.
//
// Parsing rules:
// 1. No args, or a blank first arg → error: task reference required
// 2. More than one arg → error: unexpected argument: <arg>
// 3. forceID → the arg is a task ID, verbatim
// 4. All digits → 1-based list position (0 is out of range)
// 5. Otherwise → task ID
func ParseTaskRef(args []string, forceID bool) (TaskRef, error) {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return TaskRef{}, ErrTaskRefRequired
	}
	if len(args) > 1 {
		return TaskRef{}, fmt.Errorf("unexpected argument: %s", args[1])
	}

	arg := strings.TrimSpace(args[0])
	if forceID || !isAllDigits(arg) {
		return TaskRef{ID: arg}, nil
	}

	num, err := strconv.Atoi(arg)
	if err != nil {
		return TaskRef{}, fmt.Errorf("invalid task reference: %s", arg)
	}
	if num < 1 {
		return TaskRef{}, fmt.Errorf("task number out of range: %d", num)
	}
	return TaskRef{Num: num}, nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ResolveTaskRef finds the referenced task in the store's current collection.
func ResolveTaskRef(st *store.Store, ref TaskRef) (service.Task, error) {
	if ref.ID != "" {
		task, ok := st.GetByID(ref.ID)
		if !ok {
			return service.Task{}, fmt.Errorf("task not found: %s", ref.ID)
		}
		return task, nil
	}

	tasks := st.Tasks()
	if ref.Num < 1 || ref.Num > len(tasks) {
		return service.Task{}, fmt.Errorf("task number out of range: %d", ref.Num)
	}
	return tasks[ref.Num-1], nil
}

// loadTask fetches the list (filtered by search, so positions match what
// `list --search` printed) and resolves the reference in args.
// On failure it reports to errOut and returns a non-zero exit code.
func loadTask(ctx context.Context, st *store.Store, search string, forceID bool, args []string, errOut io.Writer) (service.Task, int) {
	ref, err := ParseTaskRef(args, forceID)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return service.Task{}, exitcode.UserError
	}

	// Fetch failures are already alerted by the store
	if err := st.Fetch(ctx, search); err != nil {
		return service.Task{}, exitcode.BackendError
	}

	task, err := ResolveTaskRef(st, ref)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return service.Task{}, exitcode.UserError
	}
	return task, exitcode.Success
}
