// Package restapi implements the service.Service interface over the task REST API.
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"google.golang.org/api/googleapi"

	"tasktrack/internal/config"
	"tasktrack/internal/service"
)

const (
	// TasksPath is the collection endpoint relative to the base URL.
	TasksPath = "/api/tasks"

	// SearchParam is the query parameter carrying the list filter.
	SearchParam = "search"
)

// Client implements service.Service using the task REST API.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	timeout time.Duration
	log     *log.Helper
}

// New creates a new REST client from configuration.
func New(cfg *config.Config, logger log.Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	httpClient := &http.Client{
		Transport: newLoggingTransport(http.DefaultTransport, logger),
	}
	c, err := NewWithHTTPClient(cfg.BaseURL, httpClient, logger)
	if err != nil {
		return nil, err
	}
	c.timeout = cfg.Timeout
	return c, nil
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(baseURL string, httpClient *http.Client, logger log.Logger) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	return &Client{
		baseURL: u,
		http:    httpClient,
		log:     log.NewHelper(log.With(logger, "module", "backend/restapi")),
	}, nil
}

// ListTasks returns all tasks in server order, filtered by search when non-empty.
func (c *Client) ListTasks(ctx context.Context, search string) ([]service.Task, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	query := url.Values{}
	if s := strings.TrimSpace(search); s != "" {
		query.Set(SearchParam, s)
	}

	res, err := c.do(ctx, http.MethodGet, TasksPath, query, nil)
	if err != nil {
		return nil, wrapError(err)
	}
	defer res.Body.Close()

	var records []taskRecord
	if err := json.NewDecoder(res.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("invalid task list response: %w", err)
	}

	result := make([]service.Task, 0, len(records))
	for _, r := range records {
		result = append(result, r.toTask())
	}
	return result, nil
}

// CreateTask creates a new task.
func (c *Client) CreateTask(ctx context.Context, task service.NewTask) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	res, err := c.do(ctx, http.MethodPost, TasksPath, nil, task)
	if err != nil {
		return wrapError(err)
	}
	return drain(res)
}

// UpdateTask sends the fields set in patch for the given task.
func (c *Client) UpdateTask(ctx context.Context, id string, patch service.TaskPatch) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	res, err := c.do(ctx, http.MethodPut, taskPath(id), nil, patch)
	if err != nil {
		return wrapError(err)
	}
	return drain(res)
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	res, err := c.do(ctx, http.MethodDelete, taskPath(id), nil, nil)
	if err != nil {
		return wrapError(err)
	}
	return drain(res)
}

// do issues a request and returns the response if its status is 2xx.
// The caller owns the response body on success.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (*http.Response, error) {
	u := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	if err := googleapi.CheckResponse(res); err != nil {
		res.Body.Close()
		return nil, err
	}
	return res, nil
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

// taskPath returns the item endpoint for id.
func taskPath(id string) string {
	return TasksPath + "/" + url.PathEscape(id)
}

// drain discards and closes a response body so the connection can be reused.
func drain(res *http.Response) error {
	defer res.Body.Close()
	_, err := io.Copy(io.Discard, res.Body)
	return err
}

// wrapError wraps API errors with user-friendly messages.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	// Check for timeout
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("request timed out")
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		if apiErr.Code == http.StatusNotFound {
			return service.ErrNotFound
		}
		return fmt.Errorf("server returned %d: %w", apiErr.Code, err)
	}

	return err
}
