package service

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
	"sync"
	"time"

	"myplan/internal/logs"
	"myplan/internal/tasks/data"
)

// ErrNotFound is returned for unknown ids, locally or from a 404.
var ErrNotFound = errors.New("task not found")

// APIError is a non-2xx response from the task API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	body := strings.TrimSpace(e.Body)
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	if body == "" {
		return fmt.Sprintf("task api: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("task api: %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), body)
}

// Unwrap lets errors.Is(err, ErrNotFound) see 404s.
func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	return nil
}

// TaskService defines the interface for task operations.
type TaskService interface {
	List() []data.Task
	Get(idOrPrefix string) (*data.Task, error)
	Create(ctx context.Context, task data.Task) (*data.Task, error)
	Update(ctx context.Context, task data.Task) (*data.Task, error)
	Delete(ctx context.Context, id string) error
	ToggleComplete(ctx context.Context, id string) (*data.Task, error)
	Reload(ctx context.Context) error
}

type taskServiceImpl struct {
	mu      sync.RWMutex
	tasks   []data.Task
	baseURL string
	client  *http.Client
}

// Option configures the HTTP task service.
type Option func(*taskServiceImpl)

// WithHTTPClient replaces the default client.
func WithHTTPClient(c *http.Client) Option {
	return func(s *taskServiceImpl) {
		s.client = c
	}
}

// New returns a service for the collection at baseURL with an empty cache.
// Call Reload to fetch.
func New(baseURL string, timeout time.Duration, opts ...Option) TaskService {
	s := &taskServiceImpl{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewTaskService creates the service and loads the task list.
func NewTaskService(ctx context.Context, baseURL string, timeout time.Duration, opts ...Option) (TaskService, error) {
	svc := New(baseURL, timeout, opts...)
	if err := svc.Reload(ctx); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *taskServiceImpl) Reload(ctx context.Context) error {
	var tasks []data.Task
	if err := s.do(ctx, http.MethodGet, s.baseURL, nil, &tasks); err != nil {
		return fmt.Errorf("loading tasks: %w", err)
	}
	for i := range tasks {
		tasks[i] = data.Hydrate(tasks[i])
	}
	logs.Logger.Printf("Service: loaded %d tasks", len(tasks))

	s.mu.Lock()
	s.tasks = tasks
	s.mu.Unlock()
	return nil
}

func (s *taskServiceImpl) List() []data.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]data.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *taskServiceImpl) Get(idOrPrefix string) (*data.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok, err := data.FindByPrefix(s.tasks, idOrPrefix)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
	}
	return &t, nil
}

func (s *taskServiceImpl) Create(ctx context.Context, task data.Task) (*data.Task, error) {
	task, err := data.Prepare(task)
	if err != nil {
		return nil, err
	}
	task.ID = ""

	var saved data.Task
	if err := s.do(ctx, http.MethodPost, s.baseURL, task, &saved); err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}
	saved = carryTrackerFields(saved, task)
	logs.Logger.Printf("Service: created task %s", saved.ID)

	s.mu.Lock()
	s.tasks = data.UpsertTask(s.tasks, saved)
	s.mu.Unlock()
	return &saved, nil
}

func (s *taskServiceImpl) Update(ctx context.Context, task data.Task) (*data.Task, error) {
	if task.ID == "" {
		return nil, fmt.Errorf("updating task: %w: empty id", ErrNotFound)
	}
	task, err := data.Prepare(task)
	if err != nil {
		return nil, err
	}
	return s.put(ctx, task)
}

// ToggleComplete flips the completed flag and sends the whole task. The
// cache changes only once the server accepts it.
func (s *taskServiceImpl) ToggleComplete(ctx context.Context, id string) (*data.Task, error) {
	current, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	next := *current
	next.Completed = !next.Completed
	return s.put(ctx, next)
}

func (s *taskServiceImpl) put(ctx context.Context, task data.Task) (*data.Task, error) {
	logs.Logger.Printf("Service: Update Task: %s", task.ID)
	var saved data.Task
	if err := s.do(ctx, http.MethodPut, s.taskURL(task.ID), task, &saved); err != nil {
		return nil, fmt.Errorf("updating task %s: %w", task.ID, err)
	}
	saved = carryTrackerFields(saved, task)

	s.mu.Lock()
	s.tasks = data.UpsertTask(s.tasks, saved)
	s.mu.Unlock()
	return &saved, nil
}

func (s *taskServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.do(ctx, http.MethodDelete, s.taskURL(id), nil, nil); err != nil {
		return fmt.Errorf("deleting task %s: %w", id, err)
	}
	logs.Logger.Printf("Service: deleted task %s", id)

	s.mu.Lock()
	s.tasks = data.DeleteTask(s.tasks, id)
	s.mu.Unlock()
	return nil
}

func (s *taskServiceImpl) do(ctx context.Context, method, url string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		logs.Logger.Printf("Service: %s %s failed: %v", method, url, err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		apiErr := &APIError{StatusCode: resp.StatusCode, Body: string(raw)}
		logs.Logger.Printf("Service: %s %s: %v", method, url, apiErr)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// carryTrackerFields restores what a backend without tracker columns drops
// from its echo of a saved task.
func carryTrackerFields(saved, sent data.Task) data.Task {
	if saved.TaskType == "" {
		saved.TaskType = sent.TaskType
		saved.TotalVideos = sent.TotalVideos
		saved.CompletedVideos = sent.CompletedVideos
		saved.LoanAmount = sent.LoanAmount
		saved.LoanOutstanding = sent.LoanOutstanding
		saved.LoanInterestRate = sent.LoanInterestRate
		saved.LoanEmi = sent.LoanEmi
		saved.MeetingStartTime = sent.MeetingStartTime
		saved.MeetingEndTime = sent.MeetingEndTime
		saved.MeetingInfo = sent.MeetingInfo
		saved.MeetingLink = sent.MeetingLink
	}
	if saved.Description == "" {
		saved.Description = sent.Description
	}
	return data.Hydrate(saved)
}

func (s *taskServiceImpl) taskURL(id string) string {
	return s.baseURL + "/" + url.PathEscape(id)
}
