package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"tasktrack/internal/service"
)

// Request is a request observed by FakeServer.
type Request struct {
	Method string
	Path   string
	Query  string
	Body   map[string]any
}

// FakeServer is an httptest server speaking the task REST API.
// Tasks live in memory and IDs are assigned with uuid.
type FakeServer struct {
	*httptest.Server

	mu       sync.Mutex
	tasks    []service.Task
	requests []Request

	failWith int
	docIDs   bool
}

// NewFakeServer starts a FakeServer and registers its shutdown with t.
func NewFakeServer(t *testing.T) *FakeServer {
	t.Helper()

	s := &FakeServer{}
	r := mux.NewRouter()
	r.Use(s.recordMiddleware)
	r.HandleFunc("/api/tasks", s.handleList).Methods(http.MethodGet)
	r.HandleFunc("/api/tasks", s.handleCreate).Methods(http.MethodPost)
	r.HandleFunc("/api/tasks/{id}", s.handleUpdate).Methods(http.MethodPut)
	r.HandleFunc("/api/tasks/{id}", s.handleDelete).Methods(http.MethodDelete)

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

// Seed adds a task with a freshly generated ID and returns it.
func (s *FakeServer) Seed(title string, completed, highPriority bool) service.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	task := service.Task{
		ID:           uuid.NewString(),
		Title:        title,
		Completed:    completed,
		HighPriority: highPriority,
	}
	s.tasks = append(s.tasks, task)
	return task
}

// FailWith makes every subsequent request fail with status.
// Zero restores normal behaviour.
func (s *FakeServer) FailWith(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWith = status
}

// UseDocIDs makes list responses carry the identifier as "_id".
func (s *FakeServer) UseDocIDs() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docIDs = true
}

// Tasks returns a copy of the stored tasks.
func (s *FakeServer) Tasks() []service.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]service.Task(nil), s.tasks...)
}

// Requests returns the requests received so far.
func (s *FakeServer) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

func (s *FakeServer) recordMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "bad body", http.StatusBadRequest)
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(data))

		var body map[string]any
		if len(data) > 0 {
			if err := json.Unmarshal(data, &body); err != nil {
				http.Error(w, "bad json", http.StatusBadRequest)
				return
			}
		}

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Body:   body,
		})
		fail := s.failWith
		s.mu.Unlock()

		if fail != 0 {
			http.Error(w, http.StatusText(fail), fail)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *FakeServer) handleList(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")

	s.mu.Lock()
	out := make([]map[string]any, 0, len(s.tasks))
	for _, t := range s.tasks {
		if !Matches(t, search) {
			continue
		}
		idKey := "id"
		if s.docIDs {
			idKey = "_id"
		}
		out = append(out, map[string]any{
			idKey:          t.ID,
			"title":        t.Title,
			"description":  t.Description,
			"completed":    t.Completed,
			"highPriority": t.HighPriority,
		})
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

func (s *FakeServer) handleCreate(w http.ResponseWriter, r *http.Request) {
	var in service.NewTask
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Title == "" {
		http.Error(w, "title required", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	task := service.Task{
		ID:           uuid.NewString(),
		Title:        in.Title,
		Description:  in.Description,
		HighPriority: in.HighPriority,
	}
	s.tasks = append(s.tasks, task)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, task)
}

func (s *FakeServer) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var patch service.TaskPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			Apply(&s.tasks[i], patch)
			writeJSON(w, http.StatusOK, s.tasks[i])
			return
		}
	}
	http.Error(w, "task not found", http.StatusNotFound)
}

func (s *FakeServer) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.tasks {
		if t.ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	http.Error(w, "task not found", http.StatusNotFound)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
