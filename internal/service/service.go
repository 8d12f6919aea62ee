// Package service defines the backend-agnostic interface for task operations.
package service

import (
	"context"
	"errors"
)

// ErrNotFound is returned when the remote service has no task with the given ID.
var ErrNotFound = errors.New("not found")

// Service defines the interface for the remote task service.
// All REST calls go through this interface.
// The store and commands never speak HTTP directly.
type Service interface {
	// ListTasks returns all tasks in server order.
	// A non-empty search is passed to the server as a substring filter.
	ListTasks(ctx context.Context, search string) ([]Task, error)

	// CreateTask creates a new task. The server assigns its ID.
	CreateTask(ctx context.Context, task NewTask) error

	// UpdateTask replaces the fields set in patch on the task with the given ID.
	UpdateTask(ctx context.Context, id string, patch TaskPatch) error

	// DeleteTask deletes a task.
	DeleteTask(ctx context.Context, id string) error
}
