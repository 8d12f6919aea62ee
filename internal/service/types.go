// Package service defines the backend-agnostic interface for task operations.
package service

// Task represents a single task record as stored by the remote service.
type Task struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	Completed    bool   `json:"completed"`
	HighPriority bool   `json:"highPriority"`
}

// NewTask is the payload of a create request.
type NewTask struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	HighPriority bool   `json:"highPriority"`
}

// TaskPatch is the payload of an update request.
// Only non-nil fields are sent.
type TaskPatch struct {
	Title        *string `json:"title,omitempty"`
	Description  *string `json:"description,omitempty"`
	Completed    *bool   `json:"completed,omitempty"`
	HighPriority *bool   `json:"highPriority,omitempty"`
}

// SetCompleted returns a patch that only sets the completed flag.
func SetCompleted(completed bool) TaskPatch {
	return TaskPatch{Completed: &completed}
}
