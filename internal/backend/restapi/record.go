package restapi

import "tasktrack/internal/service"

// taskRecord is the wire form of a task in list responses.
// Document-store backends often expose the identifier as _id.
type taskRecord struct {
	ID           string `json:"id"`
	DocID        string `json:"_id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Completed    bool   `json:"completed"`
	HighPriority bool   `json:"highPriority"`
}

func (r taskRecord) toTask() service.Task {
	id := r.ID
	if id == "" {
		id = r.DocID
	}
	return service.Task{
		ID:           id,
		Title:        r.Title,
		Description:  r.Description,
		Completed:    r.Completed,
		HighPriority: r.HighPriority,
	}
}
