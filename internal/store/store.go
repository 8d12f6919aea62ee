// Package store holds the process-wide task cache.
//
// The cache is read-through: it is only ever replaced by a full list fetched
// from the remote service, never patched locally. Every mutation is a network
// round trip followed by a mandatory refetch, so when Add, ToggleCompletion
// or Delete returns, Tasks reflects the server as of that moment.
package store

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/go-kratos/kratos/v2/log"

	"tasktrack/internal/service"
)

// ErrEmptyTitle is logged when Add is called with a blank title.
var ErrEmptyTitle = errors.New("title required")

// Alerter surfaces user-facing errors, e.g. a blocking dialog or a stderr line.
type Alerter interface {
	Alert(title, message string)
}

// AlertFunc adapts a function to the Alerter interface.
type AlertFunc func(title, message string)

// Alert implements Alerter.
func (f AlertFunc) Alert(title, message string) { f(title, message) }

// ConnectionErrorTitle is the alert title used when a fetch fails.
const ConnectionErrorTitle = "connection error"

// Store is the shared task cache. Create one per process with New and pass
// it to every view that renders or mutates tasks.
type Store struct {
	svc   service.Service
	alert Alerter
	log   *log.Helper

	mu    sync.RWMutex
	tasks []service.Task
	query string
}

// New creates an empty store backed by svc. Nothing is fetched until the
// first call to Fetch.
func New(svc service.Service, alert Alerter, logger log.Logger) *Store {
	if alert == nil {
		alert = AlertFunc(func(string, string) {})
	}
	return &Store{
		svc:   svc,
		alert: alert,
		log:   log.NewHelper(log.With(logger, "module", "store")),
	}
}

// Fetch replaces the collection with the server's task list, filtered by
// searchQuery when it is not blank. On failure the collection is left as it
// was, an alert is raised and the error is returned. There is no retry.
func (s *Store) Fetch(ctx context.Context, searchQuery string) error {
	tasks, err := s.svc.ListTasks(ctx, searchQuery)
	if err != nil {
		s.log.Errorw("msg", "fetch failed", "search", searchQuery, "error", err)
		s.alert.Alert(ConnectionErrorTitle, "could not load tasks: "+err.Error())
		return err
	}

	s.mu.Lock()
	s.tasks = tasks
	s.query = searchQuery
	s.mu.Unlock()

	s.log.Debugw("msg", "fetched", "search", searchQuery, "count", len(tasks))
	return nil
}

// Refresh refetches using the query of the last successful fetch.
// Views call it when they regain focus.
func (s *Store) Refresh(ctx context.Context) error {
	return s.Fetch(ctx, s.Query())
}

// Add creates a task and refetches. A blank title fails without touching
// the network.
func (s *Store) Add(ctx context.Context, title, description string, highPriority bool) bool {
	title = strings.TrimSpace(title)
	if title == "" {
		s.log.Warnw("msg", "add rejected", "error", ErrEmptyTitle)
		return false
	}

	err := s.svc.CreateTask(ctx, service.NewTask{
		Title:        title,
		Description:  strings.TrimSpace(description),
		HighPriority: highPriority,
	})
	if err != nil {
		s.log.Errorw("msg", "create failed", "title", title, "error", err)
		return false
	}

	s.refetch(ctx)
	return true
}

// ToggleCompletion sets the task's completed flag to !currentStatus and
// refetches.
func (s *Store) ToggleCompletion(ctx context.Context, id string, currentStatus bool) bool {
	if err := s.svc.UpdateTask(ctx, id, service.SetCompleted(!currentStatus)); err != nil {
		s.log.Errorw("msg", "update failed", "id", id, "error", err)
		return false
	}

	s.refetch(ctx)
	return true
}

// Delete removes the task and refetches.
func (s *Store) Delete(ctx context.Context, id string) bool {
	if err := s.svc.DeleteTask(ctx, id); err != nil {
		s.log.Errorw("msg", "delete failed", "id", id, "error", err)
		return false
	}

	s.refetch(ctx)
	return true
}

// GetByID looks the task up in the current collection without a network call.
func (s *Store) GetByID(id string) (service.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return service.Task{}, false
}

// Tasks returns a copy of the current collection in server order.
func (s *Store) Tasks() []service.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]service.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Query returns the search query of the last successful fetch.
func (s *Store) Query() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query
}

// refetch is the unfiltered read that follows every successful write.
// A failure is alerted by Fetch; the mutation still counts as done.
func (s *Store) refetch(ctx context.Context) {
	_ = s.Fetch(ctx, "")
}
